package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/wbrown/cleanser"
	"github.com/wbrown/cleanser/internal/logger"
	"github.com/wbrown/cleanser/resources"
)

// A REPL showing how a single Cleanser judges each line typed at it.

const prompt = ">>> "

// repl feeds each input line to c and reports its key and verdict, until
// in is exhausted.
func repl(c *cleanser.Cleanser, in io.Reader, out io.Writer) error {
	normalizer := cleanser.NewNormalizer()
	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, prompt)
		input, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		if input == "" && err == io.EOF {
			fmt.Fprintln(out)
			return nil
		}
		input = strings.TrimSuffix(strings.TrimSuffix(input, "\n"), "\r")
		key, _ := normalizer.Normalize(input)
		verdict := c.Feed(input)
		fmt.Fprintf(out, "%q %d %s (total %d)\n", key,
			len([]rune(key)), verdict, c.Count())
		if err == io.EOF {
			return nil
		}
	}
}

func main() {
	minLength := flag.Int("min-length", cleanser.DefaultMinLength,
		"minimum line length in characters")
	keywordList := flag.String("keywords-file", "",
		"keyword list name, URL, or path")
	identity := flag.String("identity", "hashed",
		"duplicate identifiers [hashed, exact]")
	flag.Parse()
	logger.Init(logger.Options{Level: slog.LevelWarn})

	cfg := cleanser.DefaultConfig()
	cfg.MinLength = *minLength
	cfg.Logger = logger.Logger()
	id, err := cleanser.ParseIdentity(*identity)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	cfg.Identity = id
	if *keywordList != "" {
		list, err := resources.ResolveKeywords(*keywordList, "")
		if err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
		cfg.Keywords = list.Keywords
	}
	c, err := cleanser.New(cfg)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	if err := repl(c, os.Stdin, os.Stdout); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
