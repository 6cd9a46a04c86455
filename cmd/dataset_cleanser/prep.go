package main

import (
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/wbrown/cleanser"
	"github.com/wbrown/cleanser/internal/logger"
	"github.com/wbrown/cleanser/resources"
)

func newPrepCommand(opts *rootOptions) *cobra.Command {
	var (
		minLength    int
		keywords     []string
		keywordLists []string
		identity     string
		output       string
		reorder      string
		auth         string
	)

	cmd := &cobra.Command{
		Use:   "prep [inputs...]",
		Short: "Cleanse text files, directories or s3:// prefixes into one corpus",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *opts.cfg
			flags := cmd.Flags()
			if flags.Changed("min-length") {
				cfg.MinLength = minLength
			}
			if flags.Changed("keywords") {
				cfg.Keywords = keywords
			}
			if flags.Changed("keywords-file") {
				cfg.KeywordLists = keywordLists
			}
			if flags.Changed("identity") {
				cfg.Identity = identity
			}
			if flags.Changed("output") {
				cfg.Output = output
			}
			if flags.Changed("reorder") {
				cfg.Reorder = reorder
			}
			if flags.Changed("auth") {
				cfg.Auth = auth
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			report, err := runPrep(&cfg, args, newS3Client)
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&minLength, "min-length", cleanser.DefaultMinLength,
		"minimum line length in characters")
	flags.StringArrayVarP(&keywords, "keywords", "k", nil,
		"disallowed keyword, may be repeated")
	flags.StringArrayVar(&keywordLists, "keywords-file", nil,
		"keyword list, one keyword per line: an embedded list name, a "+
			"file path or an http(s) URL; may be repeated")
	flags.StringVar(&identity, "identity", "hashed",
		"duplicate identifiers [hashed, exact]")
	flags.StringVarP(&output, "output", "o", "",
		"output file path or s3://bucket/key")
	flags.StringVar(&reorder, "reorder", "",
		"reorder directory inputs [size_ascending, size_descending, "+
			"path_ascending, path_descending, random, none]")
	flags.StringVar(&auth, "auth", "",
		"bearer token for remote keyword lists")

	return cmd
}

// runPrep
// Cleanses every input through a single Cleanser, so duplicates are
// dropped across inputs, and saves the result when an output is set.
func runPrep(cfg *Config, inputs []string,
	s3Client func() (S3Client, error)) (*prepReport, error) {
	begin := time.Now()
	keywords := append([]string(nil), cfg.Keywords...)
	if len(cfg.KeywordLists) > 0 {
		resolved, err := resources.ResolveKeywordLists(cfg.KeywordLists,
			cfg.Auth)
		if err != nil {
			return nil, err
		}
		keywords = append(keywords, resolved...)
	}
	engineCfg, err := cfg.CleanserConfig(keywords)
	if err != nil {
		return nil, err
	}
	engineCfg.Logger = logger.With("component", "cleanser")
	c, err := cleanser.New(engineCfg)
	if err != nil {
		return nil, err
	}

	sources, err := ExpandInputs(inputs, cfg.Reorder, s3Client)
	if err != nil {
		return nil, err
	}
	logger.Info("cleansing inputs",
		"sources", len(sources),
		"min_length", c.MinLength(),
		"keywords", c.Keywords(),
		"identity", cfg.Identity)

	var svc S3Client
	report := &prepReport{Keywords: c.Keywords()}
	for _, src := range sources {
		before := c.Stats().Read
		var accepted int
		if src.Remote {
			if svc == nil {
				if svc, err = s3Client(); err != nil {
					return nil, err
				}
			}
			accepted, err = processS3(c, svc, src.Path)
		} else {
			accepted, err = c.Process(src.Path)
		}
		if err != nil {
			return nil, err
		}
		report.Sources = append(report.Sources, sourceResult{
			Path:     src.Path,
			Size:     src.Size,
			Read:     c.Stats().Read - before,
			Accepted: accepted,
		})
	}

	stats := c.Stats()
	report.Total = c.Count()
	report.Short = stats.Short
	report.Keyword = stats.Keyword
	report.Dupes = stats.Duplicate

	if cfg.Output != "" {
		written, err := save(c, cfg.Output, s3Client)
		if err != nil {
			return nil, err
		}
		report.Output = cfg.Output
		logger.Info("wrote corpus",
			"output", cfg.Output,
			"size", humanize.Bytes(uint64(written)))
	}
	logger.Info("cleansing done",
		"accepted", report.Total,
		"elapsed", time.Since(begin))
	return report, nil
}

func processS3(c *cleanser.Cleanser, svc S3Client, uri string) (int, error) {
	body, err := openS3Object(svc, uri)
	if err != nil {
		return 0, &cleanser.IOError{Op: "open", Path: uri, Err: err}
	}
	defer body.Close()
	return c.ProcessNamedReader(body, uri)
}

func save(c *cleanser.Cleanser, output string,
	s3Client func() (S3Client, error)) (int64, error) {
	if !isS3URI(output) {
		if err := c.Save(output); err != nil {
			return 0, err
		}
		stat, err := os.Stat(output)
		if err != nil {
			return 0, err
		}
		return stat.Size(), nil
	}
	svc, err := s3Client()
	if err != nil {
		return 0, err
	}
	written, err := putS3Object(svc, output, c.WriteTo)
	if err != nil {
		return written, &cleanser.IOError{Op: "write", Path: output, Err: err}
	}
	return written, nil
}
