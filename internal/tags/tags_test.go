package tags

import (
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

// node decodes a YAML snippet into its top-level value node.
func node(t *testing.T, src string) *yaml.Node {
	t.Helper()
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("Failed to parse %q: %v", src, err)
	}
	return doc.Content[0]
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Tag
	}{
		{
			name:     "versions separated by comma",
			input:    "foo@1.x,2.x",
			expected: Tag{Name: "foo", Versions: []string{"1.x", "2.x"}},
		},
		{
			name:     "plain name",
			input:    "  golang  ",
			expected: Tag{Name: "golang"},
		},
		{
			name:     "full-width space between versions",
			input:    "react@18\u300019",
			expected: Tag{Name: "react", Versions: []string{"18", "19"}},
		},
		{
			name:     "hash prefix",
			input:    "#react",
			expected: Tag{Name: "react"},
		},
		{
			name:     "hash prefix with whitespace",
			input:    " # react @ 18 ",
			expected: Tag{Name: "react", Versions: []string{"18"}},
		},
		{
			name:     "versions separated by whitespace and commas",
			input:    "node@18, 20  22",
			expected: Tag{Name: "node", Versions: []string{"18", "20", "22"}},
		},
		{
			name:     "empty remainder",
			input:    "vue@",
			expected: Tag{Name: "vue"},
		},
		{
			name:     "only first at splits",
			input:    "pkg@1@2",
			expected: Tag{Name: "pkg", Versions: []string{"1@2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := Parse(tt.input)
			if !reflect.DeepEqual(actual, tt.expected) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, actual, tt.expected)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		expected Tag
	}{
		{
			name:     "string entry",
			yaml:     `"react@18"`,
			expected: Tag{Name: "react", Versions: []string{"18"}},
		},
		{
			name:     "object without versions",
			yaml:     `{name: " Go "}`,
			expected: Tag{Name: "Go"},
		},
		{
			name:     "object with versions array",
			yaml:     `{name: python, versions: [" 3.11 ", 3.12]}`,
			expected: Tag{Name: "python", Versions: []string{"3.11", "3.12"}},
		},
		{
			name:     "object with versions string",
			yaml:     `{name: node, versions: "18, 20"}`,
			expected: Tag{Name: "node", Versions: []string{"18", "20"}},
		},
		{
			name:     "object with singular version",
			yaml:     `{name: rails, version: "7.1"}`,
			expected: Tag{Name: "rails", Versions: []string{"7.1"}},
		},
		{
			name:     "object with version embedded in name",
			yaml:     `{name: "next@14"}`,
			expected: Tag{Name: "next", Versions: []string{"14"}},
		},
		{
			name:     "object fields win over embedded version",
			yaml:     `{name: "next@14", versions: ["15"]}`,
			expected: Tag{Name: "next@14", Versions: []string{"15"}},
		},
		{
			name:     "empty versions array falls through to version",
			yaml:     `{name: deno, versions: [], version: "2"}`,
			expected: Tag{Name: "deno", Versions: []string{"2"}},
		},
		{
			name:     "numeric version field is ignored",
			yaml:     `{name: java, version: 21}`,
			expected: Tag{Name: "java"},
		},
		{
			name:     "object without name",
			yaml:     `{versions: ["1"]}`,
			expected: Tag{Name: "", Versions: []string{"1"}},
		},
		{
			name:     "number entry",
			yaml:     `42`,
			expected: Tag{Name: "42"},
		},
		{
			name:     "boolean entry",
			yaml:     `true`,
			expected: Tag{Name: "true"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := Normalize(node(t, tt.yaml))
			if !reflect.DeepEqual(actual, tt.expected) {
				t.Errorf("Normalize(%s) = %+v, want %+v", tt.yaml, actual, tt.expected)
			}
		})
	}
}

func TestFromTags(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		expected []Tag
	}{
		{"null", "null", nil},
		{"string is ignored", "foo", nil},
		{"mapping is ignored", "{name: go}", nil},
		{"empty sequence", "[]", []Tag{}},
		{
			name: "sequence",
			yaml: `[zenn, "qiita@1", {name: Go}]`,
			expected: []Tag{
				{Name: "zenn"},
				{Name: "qiita", Versions: []string{"1"}},
				{Name: "Go"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if actual := FromTags(node(t, tt.yaml)); !reflect.DeepEqual(actual, tt.expected) {
				t.Errorf("FromTags(%s) = %#v, want %#v", tt.yaml, actual, tt.expected)
			}
		})
	}

	if got := FromTags(nil); got != nil {
		t.Errorf("FromTags(nil) = %v, want nil", got)
	}
}

func TestFromTopics(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		expected []Tag
	}{
		{"null", "null", nil},
		{"empty string", `""`, nil},
		{"false", "false", nil},
		{"zero", "0", nil},
		{"single string", `"go@1.22"`, []Tag{{Name: "go", Versions: []string{"1.22"}}}},
		{"number", "42", []Tag{{Name: "42"}}},
		{"sequence", `[zenn, "qiita@1"]`, []Tag{{Name: "zenn"}, {Name: "qiita", Versions: []string{"1"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if actual := FromTopics(node(t, tt.yaml)); !reflect.DeepEqual(actual, tt.expected) {
				t.Errorf("FromTopics(%s) = %#v, want %#v", tt.yaml, actual, tt.expected)
			}
		})
	}

	if got := FromTopics(nil); got != nil {
		t.Errorf("FromTopics(nil) = %v, want nil", got)
	}
}
