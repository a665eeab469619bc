// Package images rewrites site-relative image links into absolute URLs on a
// raw-content host.
package images

import (
	"regexp"
	"strings"
)

const fence = "```"

var (
	// Fenced code blocks, non-greedy across newlines. Inline single-backtick
	// spans are not matched and get rewritten like plain text.
	codeBlockRe = regexp.MustCompile("(?s)```.*?```")
	imageRe     = regexp.MustCompile(`!\[\]\((/.*?)\)`)
)

// Rewriter absolutizes `![](/path)` references against a base URL.
type Rewriter struct {
	base string
}

// NewRewriter creates a rewriter for base, e.g.
// "https://raw.githubusercontent.com/owner/repo/main". An empty base makes
// Rewrite return its input unchanged.
func NewRewriter(base string) *Rewriter {
	return &Rewriter{base: strings.TrimRight(base, "/")}
}

// Enabled reports whether the rewriter has a base URL.
func (r *Rewriter) Enabled() bool {
	return r.base != ""
}

// Rewrite replaces image references outside fenced code blocks.
func (r *Rewriter) Rewrite(content string) string {
	if !r.Enabled() {
		return content
	}

	var b strings.Builder
	b.Grow(len(content))

	last := 0
	for _, loc := range codeBlockRe.FindAllStringIndex(content, -1) {
		b.WriteString(r.replace(content[last:loc[0]]))
		b.WriteString(content[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(r.replace(content[last:]))

	return b.String()
}

func (r *Rewriter) replace(segment string) string {
	if strings.HasPrefix(segment, fence) {
		return segment
	}
	return imageRe.ReplaceAllStringFunc(segment, func(match string) string {
		path := imageRe.FindStringSubmatch(match)[1]
		return "![](" + r.base + path + ")"
	})
}
