package convert

import (
	"fmt"

	"github.com/gerunddev/ztoq/internal/frontmatter"
	"github.com/gerunddev/ztoq/internal/tags"
)

// Zenn-only fields with no Qiita equivalent
var droppedFields = []string{"emoji", "type"}

// ConvertFrontmatter rewrites Zenn frontmatter into Qiita frontmatter.
// The body is passed through unchanged.
//
// outputPath names the previously generated Qiita file, if any; its
// updated_at, id and organization_url_name are carried over so that
// repeated runs keep the identifiers Qiita assigned.
func ConvertFrontmatter(content, outputPath string) (string, error) {
	doc, err := frontmatter.Parse(content)
	if err != nil {
		return "", err
	}

	for _, key := range droppedFields {
		doc.Delete(key)
	}

	// published → private (reversed); absent means private
	if err := doc.Set("private", !frontmatter.Truthy(doc.Get("published"))); err != nil {
		return "", err
	}
	doc.Delete("published")

	merged := tags.Merge(tags.FromTags(doc.Get("tags")), tags.FromTopics(doc.Get("topics")))
	if len(merged) > 0 {
		if err := doc.Set("tags", merged); err != nil {
			return "", err
		}
	} else {
		doc.Delete("tags")
	}
	doc.Delete("topics")

	co, err := frontmatter.ReadCarryOver(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to read previous output: %w", err)
	}
	for _, f := range []struct {
		key   string
		value any
	}{
		{"updated_at", co.UpdatedAt},
		{"id", co.ID},
		{"organization_url_name", co.OrganizationURLName},
	} {
		if err := doc.Set(f.key, f.value); err != nil {
			return "", err
		}
	}

	return doc.Render()
}
