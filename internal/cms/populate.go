package cms

import "sort"

// Populate describes which relations to expand in a query. It is one of
// Wildcard, Fields, Nested or Include.
type Populate interface {
	selection() []field
}

type wildcard struct{}

// Wildcard expands the identity of every relation: data { id documentId }.
var Wildcard Populate = wildcard{}

func (wildcard) selection() []field {
	return []field{{name: "data", children: identity()}}
}

// Fields expands each named relation to its identity.
type Fields []string

func (f Fields) selection() []field {
	out := make([]field, 0, len(f))
	for _, name := range f {
		if name == "" {
			continue
		}
		out = append(out, relation(name, nil))
	}
	return out
}

// Include is the boolean leaf of a Nested map. On its own it selects nothing.
type Include bool

func (Include) selection() []field { return nil }

// Nested maps relation names to how each should be expanded. Include(true)
// and Wildcard select the relation's identity, Include(false) skips it, and
// Fields or Nested values recurse one level inside the relation.
type Nested map[string]Populate

func (n Nested) selection() []field {
	keys := make([]string, 0, len(n))
	for k := range n {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]field, 0, len(keys))
	for _, key := range keys {
		switch v := n[key].(type) {
		case Include:
			if v {
				out = append(out, relation(key, nil))
			}
		case wildcard:
			out = append(out, relation(key, nil))
		case Fields, Nested:
			out = append(out, relation(key, v.selection()))
		}
	}
	return out
}

func populateSelection(p Populate) []field {
	if p == nil {
		return nil
	}
	return p.selection()
}
