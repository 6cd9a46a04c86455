package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/wbrown/cleanser/internal/logger"
	"github.com/wbrown/cleanser/resources"
)

// run downloads every list named by -list into -dest, printing the paths
// written to out.
func run(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("keyword_downloader", flag.ContinueOnError)
	flags.SetOutput(out)
	var lists listFlag
	flags.Var(&lists, "list",
		"keyword list name, URL, or path to fetch; may be repeated")
	destPath := flags.String("dest", "./",
		"where to download the keyword lists to")
	auth := flags.String("auth", "",
		"bearer token for remote keyword lists")
	quiet := flags.Bool("quiet", false, "only log errors")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if len(lists) == 0 {
		flags.Usage()
		return errors.New("must provide -list")
	}
	logger.Init(logger.Options{Quiet: *quiet})

	for _, id := range lists {
		target, err := resources.DownloadKeywords(id, *destPath, *auth)
		if err != nil {
			return fmt.Errorf("error downloading keyword list: %w", err)
		}
		fmt.Fprintln(out, target)
	}
	return nil
}

type listFlag []string

func (l *listFlag) String() string {
	return fmt.Sprint(*l)
}

func (l *listFlag) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
