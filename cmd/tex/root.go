package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/tex/pkg/config"
	"github.com/walteh/tex/pkg/operation"
	"github.com/walteh/tex/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	overwrite  bool
	dryRun     bool
	showDiff   bool
	rootDir    string
	ignores    []string
	configFile string
	debugMode  bool
)

// newRootCmd builds the tex command tree
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tex [flags] <rules-regex> <target-regex>",
		Short: "Batch regex replacement across files selected by path pattern",
		Long: `tex applies ordered sets of regex replacement rules, loaded from rule
files, across a collection of target files.

Both positional arguments are regular expressions matched (search, not
anchored) against forward-slash-normalized paths relative to the selection
root. Rule files execute in basename order; each rule file is applied to
every target file.

Rule file format: groups of up to three lines - pattern, replacement,
ignored separator - repeated until end of file.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args[0], args[1])
		},
	}

	cmd.Flags().BoolVarP(&overwrite, "overwrite", "o", false, "overwrite target files without creating backups")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview changes without modifying or backing up files")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a diff preview for changed files")
	cmd.Flags().StringVar(&rootDir, "root", "", "directory to select files under (default: current directory)")
	cmd.Flags().StringArrayVar(&ignores, "ignore", nil, "doublestar glob excluded from selection (repeatable)")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "run-config file (default: "+config.DefaultPath+" if present)")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "enable debug logging")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

// runBatch merges config-file defaults with flags and executes the run
func runBatch(cmd *cobra.Command, rulesPattern, targetPattern string) error {
	ctx := cmd.Context()
	if debugMode {
		ctx = zerolog.Ctx(ctx).Level(zerolog.DebugLevel).WithContext(ctx)
	}

	cfg, err := resolveConfig(ctx)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	opts := operation.Options{
		Root:          rootDir,
		RulesPattern:  rulesPattern,
		TargetPattern: targetPattern,
		Ignores:       ignores,
		Overwrite:     overwrite,
		DryRun:        dryRun,
		ShowDiff:      showDiff,
		Reporter:      status.NewReporter(ctx, cmd.OutOrStdout()),
	}
	applyConfigDefaults(cmd, &opts, cfg)

	op, err := operation.New(opts)
	if err != nil {
		return errors.Errorf("creating operation: %w", err)
	}

	if _, err := op.Execute(ctx); err != nil {
		return err
	}
	return nil
}

// resolveConfig loads the run-config file. An explicitly given --config must
// exist; the default path is only loaded when present.
func resolveConfig(ctx context.Context) (*config.Config, error) {
	if configFile != "" {
		return config.Load(ctx, configFile)
	}
	if _, err := os.Stat(config.DefaultPath); err != nil {
		return &config.Config{}, nil
	}
	return config.Load(ctx, config.DefaultPath)
}

// applyConfigDefaults fills in options the user did not set on the command
// line from the config file. Flags always win.
func applyConfigDefaults(cmd *cobra.Command, opts *operation.Options, cfg *config.Config) {
	if !cmd.Flags().Changed("root") && cfg.Root != "" {
		opts.Root = cfg.Root
	}
	if !cmd.Flags().Changed("ignore") && len(cfg.Ignore) > 0 {
		opts.Ignores = cfg.Ignore
	}
	if !cmd.Flags().Changed("overwrite") {
		opts.Overwrite = cfg.Overwrite
	}
	if !cmd.Flags().Changed("dry-run") {
		opts.DryRun = cfg.DryRun
	}
	if !cmd.Flags().Changed("diff") {
		opts.ShowDiff = cfg.ShowDiff
	}
}

// newVersionCmd prints build version information
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), FormatVersion())
		},
	}
}
