// Package diff renders the difference between an existing Qiita article and
// a fresh conversion, for dry runs.
package diff

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Four backticks so fenced code inside the articles can't close the block
const diffFence = "````"

// Unified returns a unified diff of before → after for the file at path.
// Identical inputs yield an empty string.
func Unified(path, before, after string) string {
	if before == after {
		return ""
	}

	name := filepath.Base(path)
	edits := myers.ComputeEdits(span.URIFromPath(name), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(name+" (current)", name+" (converted)", before, edits))
}

// Render wraps a unified diff in a diff code fence and renders it with
// Glamour. Rendering failures fall back to the plain fenced text.
func Render(unified string, width int) string {
	diffMarkdown := fmt.Sprintf("%sdiff\n%s%s\n", diffFence, unified, diffFence)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return diffMarkdown
	}

	rendered, err := renderer.Render(diffMarkdown)
	if err != nil {
		return diffMarkdown
	}

	return rendered
}
