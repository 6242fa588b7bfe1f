package cms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

func mustParse(t *testing.T, doc Document) *ast.QueryDocument {
	t.Helper()
	parsed, err := parser.ParseQuery(&ast.Source{Name: doc.OperationName, Input: doc.Query})
	require.NoError(t, err, doc.Query)
	require.Len(t, parsed.Operations, 1)
	return parsed
}

func TestBuildFindWithoutParams(t *testing.T) {
	doc := BuildFind("brand", Params{})

	want := `query GetBrands {
  brands {
    data {
      id
      documentId
    }
    meta {
      pagination {
        page
        pageSize
        pageCount
        total
      }
    }
  }
}
`
	assert.Equal(t, want, doc.Query)
	assert.Equal(t, "brands", doc.Root)
	assert.NotNil(t, doc.Variables)
	assert.Empty(t, doc.Variables)
	mustParse(t, doc)
}

func TestBuildFindDeclaresOnlyPresentVariables(t *testing.T) {
	doc := BuildFind("products", Params{
		Filters:    map[string]any{"category.slug": map[string]any{"eq": "shirts"}},
		Sort:       []string{"name:asc"},
		Pagination: &Pagination{Page: 2, PageSize: 12},
		Locale:     "ka-GE",
	})

	parsed := mustParse(t, doc)
	op := parsed.Operations[0]
	assert.Equal(t, "GetProducts", op.Name)

	declared := map[string]string{}
	for _, def := range op.VariableDefinitions {
		declared[def.Variable] = def.Type.String()
	}
	assert.Equal(t, map[string]string{
		"filters":    "ProductFiltersInput",
		"sort":       "[String]",
		"pagination": "PaginationArg",
		"locale":     "I18NLocaleCode",
	}, declared)

	require.Len(t, doc.Variables, 4)
	assert.Equal(t, map[string]any{"category": map[string]any{"slug": map[string]any{"eq": "shirts"}}}, doc.Variables["filters"])
	assert.Equal(t, Pagination{Page: 2, PageSize: 12}, doc.Variables["pagination"])
	assert.Equal(t, "ka-GE", doc.Variables["locale"])
	assert.NotContains(t, doc.Query, "publicationState")
	assert.Contains(t, doc.Query, "products(filters: $filters, sort: $sort, pagination: $pagination, locale: $locale)")
}

func TestBuildFindIsDeterministic(t *testing.T) {
	p := Params{
		Filters: map[string]any{"b": 1, "a.x": 2, "a.y": 3},
		Populate: Nested{
			"images":   Wildcard,
			"category": Include(true),
			"brand":    Fields{"logo"},
		},
	}
	first := BuildFind("product", p)
	for i := 0; i < 20; i++ {
		again := BuildFind("product", p)
		require.Equal(t, first.Query, again.Query)
		require.Equal(t, first.Variables, again.Variables)
	}
}

func TestBuildFindOne(t *testing.T) {
	doc := BuildFindOne("categories", "doc-1", Params{Locale: "en", Fields: []string{"name", " ", "slug"}})

	assert.Equal(t, "category", doc.Root)
	assert.Equal(t, "GetCategory", doc.OperationName)
	assert.Equal(t, map[string]any{"documentId": "doc-1", "locale": "en"}, doc.Variables)
	assert.Contains(t, doc.Query, "query GetCategory($documentId: ID!, $locale: I18NLocaleCode)")
	assert.Contains(t, doc.Query, "category(documentId: $documentId, locale: $locale)")
	assert.Contains(t, doc.Query, "    name\n    slug\n")
	mustParse(t, doc)
}

func TestBuildFindSingleUsesNameVerbatim(t *testing.T) {
	doc := BuildFindSingle("layout", Params{Locale: "ka-GE", Populate: Nested{"header": Nested{"links": Include(true)}}})

	assert.Equal(t, "layout", doc.Root)
	assert.Equal(t, "GetLayout", doc.OperationName)
	assert.Equal(t, map[string]any{"locale": "ka-GE"}, doc.Variables)
	assert.NotContains(t, doc.Query, "layouts")
	assert.Contains(t, doc.Query, "header {\n      data {\n        id\n        documentId\n        links {")
	mustParse(t, doc)

	bare := BuildFindSingle("homepage", Params{})
	assert.Empty(t, bare.Variables)
	assert.True(t, strings.HasPrefix(bare.Query, "query GetHomepage {\n"))
}

func TestPopulateVariants(t *testing.T) {
	tests := []struct {
		name     string
		populate Populate
		want     string
	}{
		{name: "nil", populate: nil, want: ""},
		{name: "wildcard", populate: Wildcard, want: "data {\nid\ndocumentId\n}\n"},
		{name: "fields", populate: Fields{"brand", "", "category"}, want: "brand {\ndata {\nid\ndocumentId\n}\n}\ncategory {\ndata {\nid\ndocumentId\n}\n}\n"},
		{name: "include alone", populate: Include(true), want: ""},
		{name: "nested skips false", populate: Nested{"a": Include(false), "b": Include(true)}, want: "b {\ndata {\nid\ndocumentId\n}\n}\n"},
		{name: "nested recursion", populate: Nested{"a": Nested{"b": Wildcard}}, want: "a {\ndata {\nid\ndocumentId\nb {\ndata {\nid\ndocumentId\n}\n}\n}\n}\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var b strings.Builder
			render(&b, populateSelection(tc.populate), 0)
			assert.Equal(t, tc.want, b.String())
		})
	}
}

func TestBuildFilters(t *testing.T) {
	assert.Nil(t, buildFilters(nil))
	assert.Nil(t, buildFilters(map[string]any{}))

	in := map[string]any{
		"brand.slug":   map[string]any{"eq": "nike"},
		"brand.name":   map[string]any{"eq": "Nike"},
		"price":        map[string]any{"lt": 100},
		"title":        "plain",
		"title.nested": "dropped",
	}
	got := buildFilters(in)
	assert.Equal(t, map[string]any{
		"brand": map[string]any{
			"slug": map[string]any{"eq": "nike"},
			"name": map[string]any{"eq": "Nike"},
		},
		"price": map[string]any{"lt": 100},
		"title": "plain",
	}, got)
}

func TestBuildFiltersMergesIntoExistingParent(t *testing.T) {
	existing := map[string]any{"eq": "x"}
	got := buildFilters(map[string]any{"slug": existing, "slug.ne": "y"})
	assert.Equal(t, map[string]any{"slug": map[string]any{"eq": "x", "ne": "y"}}, got)
	assert.Len(t, existing, 1)
}

func TestInflection(t *testing.T) {
	assert.Equal(t, "categories", Pluralize("category"))
	assert.Equal(t, "brands", Pluralize("brand"))
	assert.Equal(t, "brands", Pluralize("brands"))
	assert.Equal(t, "category", Singularize("categories"))
	assert.Equal(t, "brand", Singularize("brands"))
	assert.Equal(t, "brand", Singularize("brand"))
}

func TestMapLocale(t *testing.T) {
	tests := map[string]string{
		"ka-ge":    "ka-GE",
		"en-us":    "en-US",
		"ka":       "ka",
		"":         "",
		"en-gb-x1": "en-GB",
	}
	for in, want := range tests {
		assert.Equal(t, want, MapLocale(in), in)
	}
}
