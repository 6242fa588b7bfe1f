package cms

import "strings"

// field is one node of a GraphQL selection set.
type field struct {
	name     string
	args     string
	children []field
}

func leaf(name string) field { return field{name: name} }

func identity() []field {
	return []field{leaf("id"), leaf("documentId")}
}

// relation selects key { data { id documentId <inner> } }.
func relation(key string, inner []field) field {
	data := field{name: "data", children: append(identity(), inner...)}
	return field{name: key, children: []field{data}}
}

func render(b *strings.Builder, fields []field, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, f := range fields {
		b.WriteString(indent)
		b.WriteString(f.name)
		if f.args != "" {
			b.WriteString("(")
			b.WriteString(f.args)
			b.WriteString(")")
		}
		if len(f.children) > 0 {
			b.WriteString(" {\n")
			render(b, f.children, depth+1)
			b.WriteString(indent)
			b.WriteString("}")
		}
		b.WriteString("\n")
	}
}
