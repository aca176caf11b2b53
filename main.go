package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tedit/config"
	"tedit/editor"
	"tedit/log"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tedit [files...]",
		Short:   "A terminal text editor",
		Long:    `tedit edits text files in the terminal with syntax highlighting and incremental search.`,
		Version: version,
		RunE:    runEditor,

		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().Int("tab-size", 0, "tab width for every opened file (1-16)")
	cmd.Flags().Bool("literal-tabs", false, "insert literal tabs instead of spaces")
	cmd.Flags().String("syntax", "", "force a syntax by language name")
	cmd.Flags().String("theme", "", "color theme (dark, light, monokai)")
	cmd.Flags().String("log", "", "write a debug log to this file")
	return cmd
}

// optionsFromFlags turns the command-line flags into editor overrides and
// applies the theme flag to cfg.
func optionsFromFlags(cmd *cobra.Command, cfg *config.Config) (editor.Options, error) {
	var opts editor.Options
	flags := cmd.Flags()

	tabSize, _ := flags.GetInt("tab-size")
	if flags.Changed("tab-size") {
		if tabSize < 1 || tabSize > 16 {
			return opts, fmt.Errorf("--tab-size must be between 1 and 16, got %d", tabSize)
		}
		opts.TabSize = tabSize
	}
	if flags.Changed("literal-tabs") {
		literal, _ := flags.GetBool("literal-tabs")
		opts.LiteralTabs = &literal
	}
	opts.Syntax, _ = flags.GetString("syntax")

	if theme, _ := flags.GetString("theme"); theme != "" {
		if _, ok := config.Themes[theme]; !ok {
			return opts, fmt.Errorf("unknown theme %q", theme)
		}
		cfg.Theme = theme
	}
	return opts, nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	if path, _ := cmd.Flags().GetString("log"); path != "" {
		cleanup, err := log.Init(path)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer cleanup()
	}

	cfg, err := config.Load()
	if err != nil {
		log.ErrorErr(log.CatConfig, "config load failed, using defaults", err)
		cfg = config.Default()
	}

	opts, err := optionsFromFlags(cmd, cfg)
	if err != nil {
		return err
	}
	return editor.New(cfg, opts).Run(args)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
