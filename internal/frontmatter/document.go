// Package frontmatter splits Markdown documents into a YAML metadata block
// and a body, and edits the metadata as an ordered mapping.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter opens and closes a frontmatter block.
const Delimiter = "---"

// ErrNotMapping is returned when the frontmatter block is valid YAML but
// not a key/value mapping.
var ErrNotMapping = errors.New("frontmatter is not a mapping")

// Document is a parsed Markdown file: ordered metadata plus untouched body.
type Document struct {
	root *yaml.Node
	Body string
}

// Split separates the frontmatter block from the body.
// The content must start with a "---" line and the block ends at the next
// "---" line. When either line is missing, ok is false and body is the
// whole content.
func Split(content string) (block string, body string, ok bool) {
	if !strings.HasPrefix(content, Delimiter) {
		return "", content, false
	}

	rest := content[len(Delimiter):]
	nl := strings.IndexByte(rest, '\n')
	if nl < 0 || strings.TrimSpace(rest[:nl]) != "" {
		return "", content, false
	}
	rest = rest[nl+1:]

	offset := 0
	for {
		end := strings.IndexByte(rest[offset:], '\n')
		line := rest[offset:]
		next := len(rest)
		if end >= 0 {
			line = rest[offset : offset+end]
			next = offset + end + 1
		}

		if strings.TrimRight(line, " \t\r") == Delimiter {
			return rest[:offset], rest[next:], true
		}

		if end < 0 {
			return "", content, false
		}
		offset = next
	}
}

// Parse splits content and decodes its frontmatter block.
// Content without frontmatter yields an empty mapping.
func Parse(content string) (*Document, error) {
	block, body, _ := Split(content)

	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if strings.TrimSpace(block) != "" {
		var doc yaml.Node
		if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
			return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
		}
		if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
			n := doc.Content[0]
			switch {
			case n.Kind == yaml.MappingNode:
				root = n
			case n.Kind == yaml.ScalarNode && n.Tag == "!!null":
				// "---\n~\n---" and friends
			default:
				return nil, ErrNotMapping
			}
		}
	}

	inlineAliases(root)
	return &Document{root: root, Body: body}, nil
}

// inlineAliases replaces every alias below n with a copy of the node it
// refers to and drops the anchors, so removing a key never leaves a
// dangling reference behind.
func inlineAliases(n *yaml.Node) {
	n.Anchor = ""
	for i, c := range n.Content {
		if c.Kind == yaml.AliasNode && c.Alias != nil {
			c = clone(c.Alias)
			n.Content[i] = c
		}
		inlineAliases(c)
	}
}

func clone(n *yaml.Node) *yaml.Node {
	c := *n
	c.Content = make([]*yaml.Node, len(n.Content))
	for i, child := range n.Content {
		c.Content[i] = clone(child)
	}
	return &c
}

// Keys returns the metadata keys in document order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.root.Content)/2)
	for i := 0; i+1 < len(d.root.Content); i += 2 {
		keys = append(keys, d.root.Content[i].Value)
	}
	return keys
}

// Get returns the value node for key, or nil when the key is absent.
func (d *Document) Get(key string) *yaml.Node {
	for i := 0; i+1 < len(d.root.Content); i += 2 {
		if d.root.Content[i].Value == key {
			return d.root.Content[i+1]
		}
	}
	return nil
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	return d.Get(key) != nil
}

// Delete removes every occurrence of key.
func (d *Document) Delete(key string) {
	content := d.root.Content[:0]
	for i := 0; i+1 < len(d.root.Content); i += 2 {
		if d.root.Content[i].Value == key {
			continue
		}
		content = append(content, d.root.Content[i], d.root.Content[i+1])
	}
	d.root.Content = content
}

// Set encodes value and stores it under key. An existing key keeps its
// position; a new key is appended.
func (d *Document) Set(key string, value any) error {
	var n yaml.Node
	if err := n.Encode(value); err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	d.SetNode(key, &n)
	return nil
}

// SetNode stores a prepared value node under key.
func (d *Document) SetNode(key string, value *yaml.Node) {
	for i := 0; i+1 < len(d.root.Content); i += 2 {
		if d.root.Content[i].Value == key {
			d.root.Content[i+1] = value
			return
		}
	}
	d.root.Content = append(d.root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

// Render writes the metadata back as a frontmatter block followed by the body.
func (d *Document) Render() (string, error) {
	var buf bytes.Buffer
	buf.WriteString(Delimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.root); err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	buf.WriteString(Delimiter + "\n")
	buf.WriteString(d.Body)
	return buf.String(), nil
}
