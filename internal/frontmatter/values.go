package frontmatter

import (
	"math"

	"gopkg.in/yaml.v3"
)

// Truthy reports whether a metadata value counts as set: null, false, zero,
// NaN and the empty string do not; sequences and mappings always do.
func Truthy(n *yaml.Node) bool {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n == nil {
		return false
	}
	if n.Kind != yaml.ScalarNode {
		return true
	}

	switch n.ShortTag() {
	case "!!null":
		return false
	case "!!bool":
		var b bool
		return n.Decode(&b) == nil && b
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return true
		}
		return i != 0
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return true
		}
		return f != 0 && !math.IsNaN(f)
	default:
		return n.Value != ""
	}
}
