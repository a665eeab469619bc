// Package tags normalizes Zenn topics and Qiita tags into Qiita tag objects
// and merges the two lists.
package tags

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gerunddev/ztoq/internal/frontmatter"
	"gopkg.in/yaml.v3"
)

// Tag is a Qiita tag. Name is compared case-insensitively.
type Tag struct {
	Name     string   `yaml:"name"`
	Versions []string `yaml:"versions,omitempty"`
}

// Commas and any Unicode space, including the full-width U+3000
var versionSep = regexp.MustCompile(`[,\s\x{0B}\p{Z}\x{FEFF}]+`)

// Parse normalizes a plain string entry such as "#react@18, 19".
func Parse(s string) Tag {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimSpace(s)

	name, rest, found := strings.Cut(s, "@")
	if !found {
		return Tag{Name: s}
	}
	return Tag{
		Name:     strings.TrimSpace(name),
		Versions: splitVersions(rest),
	}
}

// Normalize converts one YAML entry into a Tag.
func Normalize(n *yaml.Node) Tag {
	n = resolve(n)
	if n != nil && n.Kind == yaml.MappingNode {
		return fromMapping(n)
	}
	return Parse(stringify(n))
}

// FromTags normalizes an existing tags field. Only a sequence counts; any
// other value is ignored.
func FromTags(n *yaml.Node) []Tag {
	n = resolve(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	return fromSequence(n)
}

// FromTopics normalizes a topics field. A sequence yields one tag per
// element, a falsy value none, and any other value a single tag.
func FromTopics(n *yaml.Node) []Tag {
	n = resolve(n)
	if !frontmatter.Truthy(n) {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		return []Tag{Normalize(n)}
	}
	return fromSequence(n)
}

func fromSequence(n *yaml.Node) []Tag {
	out := make([]Tag, 0, len(n.Content))
	for _, item := range n.Content {
		out = append(out, Normalize(item))
	}
	return out
}

// fromMapping handles {name, versions | version} objects. The object's own
// version fields win over an "@" suffix embedded in the name.
func fromMapping(m *yaml.Node) Tag {
	var name string
	if nameNode := field(m, "name"); frontmatter.Truthy(nameNode) {
		name = strings.TrimSpace(stringify(nameNode))
	}

	var versions []string
	versionsNode := field(m, "versions")
	versionNode := field(m, "version")

	switch {
	case versionsNode != nil && versionsNode.Kind == yaml.SequenceNode && len(versionsNode.Content) > 0:
		for _, v := range versionsNode.Content {
			versions = append(versions, strings.TrimSpace(stringify(v)))
		}
	case isString(versionsNode) && strings.TrimSpace(versionsNode.Value) != "":
		versions = splitVersions(versionsNode.Value)
	case isString(versionNode) && strings.TrimSpace(versionNode.Value) != "":
		versions = splitVersions(versionNode.Value)
	default:
		if parsed := Parse(name); len(parsed.Versions) > 0 {
			name = parsed.Name
			versions = parsed.Versions
		}
	}

	if len(versions) == 0 {
		return Tag{Name: name}
	}
	return Tag{Name: name, Versions: versions}
}

func splitVersions(s string) []string {
	var out []string
	for _, v := range versionSep.Split(strings.TrimSpace(s), -1) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// field looks up key in a mapping node.
func field(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return resolve(m.Content[i+1])
		}
	}
	return nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isString(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str"
}

// stringify renders a node the way a loosely typed string conversion would:
// scalars by value, null as "null", sequences comma-joined.
func stringify(n *yaml.Node) string {
	n = resolve(n)
	if n == nil {
		return ""
	}

	switch n.Kind {
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return "null"
		case "!!int":
			var i int64
			if err := n.Decode(&i); err == nil {
				return strconv.FormatInt(i, 10)
			}
		case "!!float":
			var f float64
			if err := n.Decode(&f); err == nil {
				return strconv.FormatFloat(f, 'f', -1, 64)
			}
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err == nil {
				return strconv.FormatBool(b)
			}
		}
		return n.Value
	case yaml.SequenceNode:
		parts := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			parts = append(parts, stringify(c))
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}
