package cms

import "strings"

// Pluralize derives a collection name from a content-type name. The rules are
// deliberately simple and lossy for irregular nouns: "y" becomes "ies", a
// trailing "s" is kept, anything else gains an "s".
func Pluralize(name string) string {
	switch {
	case strings.HasSuffix(name, "y"):
		return strings.TrimSuffix(name, "y") + "ies"
	case strings.HasSuffix(name, "s"):
		return name
	default:
		return name + "s"
	}
}

// Singularize reverses Pluralize for the regular cases.
func Singularize(name string) string {
	switch {
	case strings.HasSuffix(name, "ies"):
		return strings.TrimSuffix(name, "ies") + "y"
	case strings.HasSuffix(name, "s"):
		return strings.TrimSuffix(name, "s")
	default:
		return name
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
