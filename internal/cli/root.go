// Package cli implements the lexgen command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/lexgen/i18n"
	"github.com/reoring/lexgen/internal/config"
	"github.com/reoring/lexgen/internal/ctxlog"
)

var version = "dev"

// SetVersion sets the version reported by --version.
func SetVersion(v string) {
	if v == "" {
		return
	}
	version = v
}

// options holds the global flags.
type options struct {
	configPath string
	format     string
	strict     bool
	logLevel   string
	logFormat  string
	lang       string

	cfg *config.Config
}

// NewRootCommand builds the lexgen command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:     "lexgen",
		Version: version,
		Short:   "Plan code generation for AT Protocol lexicons",
		Long: `lexgen reads AT Protocol lexicon documents and derives the declarations a
code generator must emit: one per definition, plus a placeholder for every
namespace that only exists to hold other declarations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	pf.StringVarP(&opts.format, "format", "o", config.FormatText, "Output format: text, json or yaml")
	pf.BoolVar(&opts.strict, "strict", false, "Treat duplicate JSON keys as errors")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	pf.StringVar(&opts.logFormat, "log-format", config.FormatText, "Log format: text or json")
	pf.StringVar(&opts.lang, "lang", "en", "Issue message language: en or ja")

	root.AddGroup(
		&cobra.Group{ID: "generate", Title: "Generation Commands:"},
		&cobra.Group{ID: "verify", Title: "Verification Commands:"},
	)
	root.AddCommand(
		newPlanCmd(opts),
		newNamespacesCmd(opts),
		newDefinitionsCmd(opts),
		newCheckCmd(opts),
	)
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

// setup merges the config file with the flags that were set explicitly and
// installs the logger on the command context.
func (o *options) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = o.format
	}
	if flags.Changed("strict") {
		cfg.Strict = o.strict
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}
	if flags.Changed("lang") {
		cfg.Language = o.lang
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	o.cfg = cfg

	i18n.SetLanguage(cfg.Language)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := cfg.NewLogger(cmd.ErrOrStderr())
	cmd.SetContext(ctxlog.WithLogger(ctx, logger))
	logger.Debug("configuration loaded", "config", o.configPath, "format", cfg.Format, "strict", cfg.Strict)
	return nil
}

// errNoPaths is returned when neither arguments nor the config name any
// lexicon path.
var errNoPaths = errors.New("no lexicon paths given; pass files or directories or set paths in the config")

// paths returns args, or the configured paths when args is empty.
func (o *options) paths(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(o.cfg.Paths) > 0 {
		return o.cfg.Paths, nil
	}
	return nil, errNoPaths
}
