// Package runner converts single files and directory trees, mirroring the
// input layout under the output path.
package runner

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gerunddev/ztoq/internal/convert"
	"github.com/gerunddev/ztoq/internal/diff"
	"github.com/gerunddev/ztoq/internal/logger"
)

var (
	// ErrOutputNotDir is returned when a directory is converted into a file.
	ErrOutputNotDir = errors.New("output path must be a directory when input is a directory")
	// ErrNotFile marks an input that is missing or not a regular file.
	ErrNotFile = errors.New("not a file")
)

// Runner drives conversions and writes their results
type Runner struct {
	conv       *convert.Converter
	log        *logger.Logger
	extensions []string

	dryRun bool
	out    io.Writer
}

// Option configures a Runner
type Option func(*Runner)

// WithDryRun prints a diff to w instead of writing output files
func WithDryRun(w io.Writer) Option {
	return func(r *Runner) {
		r.dryRun = true
		r.out = w
	}
}

// WithExtensions overrides the Markdown extensions (default .md, .mdx)
func WithExtensions(exts []string) Option {
	return func(r *Runner) {
		r.extensions = exts
	}
}

// New creates a runner
func New(conv *convert.Converter, log *logger.Logger, opts ...Option) *Runner {
	r := &Runner{
		conv:       conv,
		log:        log,
		extensions: []string{".md", ".mdx"},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result represents the result of a directory conversion
type Result struct {
	FilesConverted int
	Skipped        []string
	Errors         []error
	StartTime      time.Time
	EndTime        time.Time
}

// String returns a human-readable summary of the result
func (r *Result) String() string {
	return fmt.Sprintf(
		"Converted %d files, %d skipped, %d errors (took %v)",
		r.FilesConverted,
		len(r.Skipped),
		len(r.Errors),
		r.EndTime.Sub(r.StartTime).Round(time.Millisecond),
	)
}

// IsMarkdown reports whether name ends in one of exts, ignoring case
func IsMarkdown(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// IsMarkdown reports whether name has one of the runner's extensions
func (r *Runner) IsMarkdown(name string) bool {
	return IsMarkdown(name, r.extensions)
}

// ResolveOutputPath picks the destination for a single input file: inside
// output when output is an existing directory, output itself otherwise.
func ResolveOutputPath(input, output string) string {
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, filepath.Base(input))
	}
	return output
}

// Convert reads and converts a single file without writing anything
func (r *Runner) Convert(in, out string) (string, error) {
	info, err := os.Stat(in)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s: %w", in, ErrNotFile)
	}

	content, err := os.ReadFile(in)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", in, err)
	}

	return r.conv.Convert(string(content), out)
}

// ConvertFile converts in and writes the result to out. An input that is
// not a regular file is skipped with a warning.
func (r *Runner) ConvertFile(in, out string) error {
	converted, err := r.Convert(in, out)
	if errors.Is(err, ErrNotFile) {
		r.log.Skipped(in, "not a file")
		return err
	}
	if err != nil {
		return err
	}

	if r.dryRun {
		return r.printDiff(out, converted)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(converted), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	r.log.FileConverted(in, out)
	return nil
}

func (r *Runner) printDiff(out, converted string) error {
	current, err := os.ReadFile(out)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", out, err)
	}

	unified := diff.Unified(out, string(current), converted)
	if unified == "" {
		r.log.Debug("no changes", "dest", out)
		return nil
	}

	_, err = fmt.Fprint(r.out, diff.Render(unified, 120))
	return err
}

// ConvertDir converts every Markdown file under inDir into the same
// relative location under outDir. Failing entries are logged and skipped.
func (r *Runner) ConvertDir(inDir, outDir string) (*Result, error) {
	result := &Result{
		StartTime: time.Now(),
	}
	r.log.DirStarted(inDir, outDir)

	// Don't descend into the output tree when it lives inside the input
	absOut, _ := filepath.Abs(outDir)

	err := filepath.WalkDir(inDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			r.log.FileError(path, err)
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", path, err))
			if d != nil && d.IsDir() && path != inDir {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(inDir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(outDir, rel)

		if d.IsDir() {
			if abs, _ := filepath.Abs(path); path != inDir && abs == absOut {
				return fs.SkipDir
			}
			if r.dryRun {
				return nil
			}
			if err := os.MkdirAll(target, 0755); err != nil {
				r.log.FileError(target, err)
				result.Errors = append(result.Errors, err)
				return fs.SkipDir
			}
			return nil
		}

		if !r.IsMarkdown(d.Name()) {
			return nil
		}

		if err := r.ConvertFile(path, target); err != nil {
			if errors.Is(err, ErrNotFile) {
				result.Skipped = append(result.Skipped, path)
				return nil
			}
			r.log.ConversionError(path, target, err)
			result.Errors = append(result.Errors, err)
			return nil
		}
		result.FilesConverted++
		return nil
	})

	result.EndTime = time.Now()
	if err != nil {
		return result, err
	}

	r.log.DirConverted(inDir, outDir, result.FilesConverted, len(result.Errors), result.EndTime.Sub(result.StartTime))
	return result, nil
}

// Run converts input into output, dispatching on whether input is a
// directory. It returns the destination actually used for file input.
func (r *Runner) Run(input, output string) (string, *Result, error) {
	info, err := os.Stat(input)
	if err != nil {
		return "", nil, fmt.Errorf("failed to stat input: %w", err)
	}

	if !info.IsDir() {
		dest := ResolveOutputPath(input, output)
		if err := r.ConvertFile(input, dest); err != nil {
			return dest, nil, err
		}
		return dest, nil, nil
	}

	if out, err := os.Stat(output); err == nil && !out.IsDir() {
		return output, nil, ErrOutputNotDir
	}
	if !r.dryRun {
		if err := os.MkdirAll(output, 0755); err != nil {
			return output, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	result, err := r.ConvertDir(input, output)
	return output, result, err
}
