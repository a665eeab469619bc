// Package commands implements the ztoq command-line interface.
//
// The CLI is built with cobra. Every command gets the loaded configuration
// and a logger through its context; --verbose switches the logger to debug
// level and --config points at an alternative configuration file.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gerunddev/ztoq/internal/config"
	"github.com/gerunddev/ztoq/internal/logger"
	"github.com/spf13/cobra"
)

// Version is the release version, overridden at build time via ldflags
var Version = "0.1.0"

type ctxKey int

const (
	loggerKey ctxKey = iota
	configKey
)

func withLogger(ctx context.Context, l *logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the command logger, or an info-level stderr
// logger when none is attached.
func loggerFromContext(ctx context.Context) *logger.Logger {
	if l, ok := ctx.Value(loggerKey).(*logger.Logger); ok {
		return l
	}
	return logger.New(os.Stderr, log.InfoLevel)
}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	return config.DefaultConfig()
}

// Execute runs the CLI with args taken from the process
func Execute(ctx context.Context) error {
	root, cleanup := NewRootCommand()
	defer cleanup()
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. The returned cleanup closes the
// log file opened for the run, if any.
func NewRootCommand() (*cobra.Command, func()) {
	var (
		verbose    bool
		configPath string
	)
	closeLog := func() {}

	root := &cobra.Command{
		Use:   "ztoq",
		Short: "Convert Zenn Markdown articles into Qiita Markdown",
		Long: `ztoq rewrites Zenn articles for Qiita: frontmatter fields are renamed and
merged, and site-relative image links point at the repository's raw content.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var (
				cfg *config.Config
				err error
			)
			path := configPath
			if path == "" {
				path = config.ConfigPath()
				cfg, err = config.Load()
			} else {
				cfg, err = config.LoadFile(path)
			}
			if err != nil {
				return fmt.Errorf("failed to load config %s: %w", path, err)
			}

			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			l, cleanup, err := logger.Open(cmd.ErrOrStderr(), cfg.LogFile, level)
			if err != nil {
				return err
			}
			closeLog = cleanup
			l.ConfigLoaded(path, cfg.Remote, cfg.PollInterval)

			ctx := withConfig(cmd.Context(), cfg)
			cmd.SetContext(withLogger(ctx, l))
			return nil
		},
	}

	root.SetVersionTemplate("ztoq v{{.Version}}\n")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/ztoq/config.json)")

	root.AddCommand(newConvertCmd())
	root.AddCommand(newConfigCmd(&configPath))
	root.AddCommand(newVersionCmd())

	return root, func() { closeLog() }
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ztoq v%s\n", Version)
		},
	}
}
