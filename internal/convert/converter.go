package convert

import (
	"github.com/gerunddev/ztoq/internal/images"
)

// Converter turns a Zenn article into a Qiita article: frontmatter first,
// then image paths.
type Converter struct {
	images *images.Rewriter
}

// NewConverter creates a converter. A nil rewriter leaves image paths alone.
func NewConverter(rw *images.Rewriter) *Converter {
	if rw == nil {
		rw = images.NewRewriter("")
	}
	return &Converter{images: rw}
}

// Convert converts content. outputPath is the destination file, read for
// carry-over fields when it already exists.
func (c *Converter) Convert(content, outputPath string) (string, error) {
	out, err := ConvertFrontmatter(content, outputPath)
	if err != nil {
		return "", err
	}
	return c.images.Rewrite(out), nil
}
