package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gerunddev/ztoq/internal/config"
	"github.com/gerunddev/ztoq/internal/convert"
	"github.com/gerunddev/ztoq/internal/gitrepo"
	"github.com/gerunddev/ztoq/internal/images"
	"github.com/gerunddev/ztoq/internal/logger"
	"github.com/gerunddev/ztoq/internal/runner"
	"github.com/gerunddev/ztoq/internal/styles"
	"github.com/gerunddev/ztoq/internal/watch"
	"github.com/spf13/cobra"
)

// ErrOutputRequired is returned when stdout output is not possible
var ErrOutputRequired = errors.New("outputPath is required for directory input and watch mode")

type convertOptions struct {
	watch  bool
	dryRun bool
}

func newConvertCmd() *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert <inputPath> [outputPath]",
		Short: "Convert a Zenn article or directory of articles",
		Long: `Convert a Zenn article, or every Markdown file under a directory, into
Qiita Markdown. Without outputPath a single converted article is printed to
stdout. Fields Qiita assigns (id, updated_at, organization_url_name) are kept
from an existing output file.`,
		Example: `  ztoq convert articles/hello.md public/hello.md
  ztoq convert articles public --watch
  ztoq convert articles public --dry-run`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := ""
			if len(args) == 2 {
				output = args[1]
			}
			return runConvert(cmd.Context(), cmd.OutOrStdout(), args[0], output, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "keep running and reconvert on change")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print a diff instead of writing files")

	return cmd
}

func runConvert(ctx context.Context, out io.Writer, input, output string, opts convertOptions) error {
	log := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("input not found: %w", err)
	}

	conv := newConverter(cfg, log)

	if output == "" {
		if info.IsDir() || opts.watch {
			return ErrOutputRequired
		}
		return printConverted(out, conv, input)
	}

	runOpts := []runner.Option{runner.WithExtensions(cfg.Extensions)}
	if opts.dryRun {
		runOpts = append(runOpts, runner.WithDryRun(out))
	}
	r := runner.New(conv, log, runOpts...)

	dest, result, err := r.Run(input, output)
	if err != nil {
		return err
	}
	if !opts.dryRun {
		reportResult(out, dest, result)
	}

	if !opts.watch {
		return nil
	}

	w := watch.New(r, log, cfg.PollInterval)
	fmt.Fprintln(out, styles.Hint("Watching for changes, press Ctrl+C to stop"))
	if info.IsDir() {
		err = w.WatchDir(ctx, input, output)
	} else {
		err = w.WatchFile(ctx, input, dest)
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}

// newConverter resolves the repository the command runs in. Without usable
// coordinates image links are left as they are.
func newConverter(cfg *config.Config, log *logger.Logger) *convert.Converter {
	base := ""

	cwd, err := os.Getwd()
	if err == nil {
		var coords gitrepo.Coordinates
		coords, err = gitrepo.Resolve(cwd, cfg.Remote)
		if err == nil {
			base = coords.RawBaseURL(cfg.RawURLTemplate)
			log.Debug("image base resolved",
				"owner", coords.Owner,
				"repo", coords.Repo,
				"branch", coords.Branch,
				"base", base)
		}
	}
	if err != nil {
		log.RepoUnavailable(err)
	}

	return convert.NewConverter(images.NewRewriter(base))
}

func printConverted(out io.Writer, conv *convert.Converter, input string) error {
	content, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	converted, err := conv.Convert(string(content), "")
	if err != nil {
		return err
	}

	_, err = io.WriteString(out, converted)
	return err
}

func reportResult(out io.Writer, dest string, result *runner.Result) {
	if result == nil {
		fmt.Fprintln(out, styles.Success("Wrote "+styles.PathStyle.Render(dest)))
		return
	}

	if len(result.Errors) > 0 {
		fmt.Fprintln(out, styles.Warning(result.String()))
		fmt.Fprintln(out, styles.Hint("Failed files are listed in the log above"))
		return
	}
	fmt.Fprintln(out, styles.Success(result.String()))
}
