package tags

import "strings"

// Merge folds tags and then topics into one list keyed by lower-cased name.
//
// The first entry for a name keeps its casing and position. A later entry
// with the same name unions its versions into the first; when neither side
// carries versions it is dropped.
func Merge(tags, topics []Tag) []Tag {
	m := newMerger()
	for _, t := range tags {
		m.add(t)
	}
	for _, t := range topics {
		m.add(t)
	}
	return m.list()
}

type merger struct {
	order []string
	byKey map[string]*Tag
}

func newMerger() *merger {
	return &merger{byKey: make(map[string]*Tag)}
}

func (m *merger) add(t Tag) {
	key := strings.ToLower(t.Name)

	current, ok := m.byKey[key]
	if !ok {
		m.order = append(m.order, key)
		m.byKey[key] = &Tag{Name: t.Name, Versions: copyVersions(t.Versions)}
		return
	}

	if len(current.Versions) == 0 && len(t.Versions) == 0 {
		return
	}
	current.Versions = union(current.Versions, t.Versions)
}

func (m *merger) list() []Tag {
	out := make([]Tag, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, *m.byKey[key])
	}
	return out
}

func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			if seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func copyVersions(v []string) []string {
	if len(v) == 0 {
		return nil
	}
	return append([]string(nil), v...)
}
