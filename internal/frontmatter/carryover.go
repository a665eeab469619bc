package frontmatter

import (
	"fmt"
	"math"
	"os"

	"github.com/adrg/frontmatter"
)

// CarryOver holds the platform-assigned fields of a previously published
// article. A nil field is written as null.
type CarryOver struct {
	UpdatedAt           any `yaml:"updated_at"`
	ID                  any `yaml:"id"`
	OrganizationURLName any `yaml:"organization_url_name"`
}

// ReadCarryOver reads the carry-over fields from the frontmatter of path.
// A missing or unreadable file is a fresh conversion and yields all nulls.
func ReadCarryOver(path string) (CarryOver, error) {
	var co CarryOver
	if path == "" {
		return co, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return co, nil
	}
	defer f.Close()

	if _, err := frontmatter.Parse(f, &co); err != nil {
		return CarryOver{}, fmt.Errorf("failed to parse frontmatter of %s: %w", path, err)
	}

	return CarryOver{
		UpdatedAt:           nullIfEmpty(co.UpdatedAt),
		ID:                  nullIfEmpty(co.ID),
		OrganizationURLName: nullIfEmpty(co.OrganizationURLName),
	}, nil
}

// nullIfEmpty collapses empty scalar values to nil.
func nullIfEmpty(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		if x == "" {
			return nil
		}
	case bool:
		if !x {
			return nil
		}
	case int:
		if x == 0 {
			return nil
		}
	case int64:
		if x == 0 {
			return nil
		}
	case uint64:
		if x == 0 {
			return nil
		}
	case float64:
		if x == 0 || math.IsNaN(x) {
			return nil
		}
	}
	return v
}
