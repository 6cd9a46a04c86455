package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wbrown/cleanser/internal/logger"
	"github.com/wbrown/cleanser/resources"
)

type rootOptions struct {
	configPath string
	jsonLogs   bool
	debug      bool
	quiet      bool
	cfg        *Config
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "dataset_cleanser",
		Short:         "Filter and deduplicate line-oriented text corpora",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			level, _ := logger.ParseLevel(cfg.LogLevel)
			logger.Init(logger.Options{
				Level:  level,
				Debug:  opts.debug,
				Quiet:  opts.quiet,
				JSON:   opts.jsonLogs || strings.EqualFold(cfg.LogFormat, "json"),
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"TOML configuration file path")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonLogs, "json-logs", false,
		"log as JSON")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false,
		"enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false,
		"only log errors")

	rootCmd.AddCommand(newPrepCommand(opts))
	rootCmd.AddCommand(newListsCommand())

	return rootCmd
}

func newListsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "Show the embedded keyword lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range resources.EmbeddedLists() {
				list, err := resources.ResolveKeywords(name, "")
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", name,
					len(list.Keywords))
			}
			return nil
		},
	}
}
