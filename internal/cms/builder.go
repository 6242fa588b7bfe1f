package cms

import (
	"strings"
)

// Pagination is the PaginationArg input. Zero fields are omitted.
type Pagination struct {
	Page     int `json:"page,omitempty"`
	PageSize int `json:"pageSize,omitempty"`
	Start    int `json:"start,omitempty"`
	Limit    int `json:"limit,omitempty"`
}

// Params are the optional query parameters shared by the builders. Only the
// parameters that are set are declared as variables.
type Params struct {
	Filters          map[string]any
	Sort             []string
	Populate         Populate
	Fields           []string
	Pagination       *Pagination
	PublicationState string
	Locale           string
}

// Document is a built GraphQL operation.
type Document struct {
	OperationName string
	Query         string
	Variables     map[string]any
	// Root is the top-level response field holding the result.
	Root string
}

type variable struct {
	name    string
	typ     string
	argName string
	value   any
}

func (v variable) definition() string { return "$" + v.name + ": " + v.typ }
func (v variable) argument() string   { return v.argName + ": $" + v.name }

func collectionVariables(singular string, p Params) []variable {
	var vars []variable
	if filters := buildFilters(p.Filters); filters != nil {
		vars = append(vars, variable{name: "filters", typ: capitalize(singular) + "FiltersInput", argName: "filters", value: filters})
	}
	if len(p.Sort) > 0 {
		vars = append(vars, variable{name: "sort", typ: "[String]", argName: "sort", value: append([]string(nil), p.Sort...)})
	}
	if p.Pagination != nil {
		vars = append(vars, variable{name: "pagination", typ: "PaginationArg", argName: "pagination", value: *p.Pagination})
	}
	if p.PublicationState != "" {
		vars = append(vars, variable{name: "publicationState", typ: "PublicationState", argName: "publicationState", value: p.PublicationState})
	}
	if p.Locale != "" {
		vars = append(vars, variable{name: "locale", typ: "I18NLocaleCode", argName: "locale", value: p.Locale})
	}
	return vars
}

func entrySelection(p Params) []field {
	out := identity()
	for _, f := range p.Fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, leaf(f))
		}
	}
	return append(out, populateSelection(p.Populate)...)
}

func assemble(operation, root string, vars []variable, body []field) Document {
	defs := make([]string, 0, len(vars))
	args := make([]string, 0, len(vars))
	values := make(map[string]any, len(vars))
	for _, v := range vars {
		defs = append(defs, v.definition())
		args = append(args, v.argument())
		values[v.name] = v.value
	}

	var b strings.Builder
	b.WriteString("query ")
	b.WriteString(operation)
	if len(defs) > 0 {
		b.WriteString("(")
		b.WriteString(strings.Join(defs, ", "))
		b.WriteString(")")
	}
	b.WriteString(" {\n")
	render(&b, []field{{name: root, args: strings.Join(args, ", "), children: body}}, 1)
	b.WriteString("}\n")

	return Document{OperationName: operation, Query: b.String(), Variables: values, Root: root}
}

func paginationMeta() field {
	return field{name: "meta", children: []field{{
		name:     "pagination",
		children: []field{leaf("page"), leaf("pageSize"), leaf("pageCount"), leaf("total")},
	}}}
}

// BuildFind builds the collection query for contentType (singular or plural).
func BuildFind(contentType string, p Params) Document {
	plural := Pluralize(contentType)
	body := []field{
		{name: "data", children: entrySelection(p)},
		paginationMeta(),
	}
	return assemble("Get"+capitalize(plural), plural, collectionVariables(Singularize(plural), p), body)
}

// BuildFindOne builds the query for a single collection entry by document id.
func BuildFindOne(contentType, documentID string, p Params) Document {
	singular := Singularize(contentType)
	vars := []variable{{name: "documentId", typ: "ID!", argName: "documentId", value: documentID}}
	if p.Locale != "" {
		vars = append(vars, variable{name: "locale", typ: "I18NLocaleCode", argName: "locale", value: p.Locale})
	}
	return assemble("Get"+capitalize(singular), singular, vars, entrySelection(p))
}

// BuildFindSingle builds the query for a single type. The name is used as is.
func BuildFindSingle(contentType string, p Params) Document {
	var vars []variable
	if p.Locale != "" {
		vars = append(vars, variable{name: "locale", typ: "I18NLocaleCode", argName: "locale", value: p.Locale})
	}
	body := []field{leaf("documentId")}
	for _, f := range p.Fields {
		if f = strings.TrimSpace(f); f != "" {
			body = append(body, leaf(f))
		}
	}
	body = append(body, populateSelection(p.Populate)...)
	return assemble("Get"+capitalize(contentType), contentType, vars, body)
}
