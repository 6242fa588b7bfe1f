package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/angelmondragon/hubs-storefront/internal/cms"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

type stubCMS struct {
	singles   map[string]cms.Entry
	singleErr error
	responses map[string]string
	queryErr  error
	queries   []map[string]any
	params    []cms.Params
}

func (s *stubCMS) FindSingle(_ context.Context, contentType string, p cms.Params) (cms.Entry, error) {
	s.params = append(s.params, p)
	if s.singleErr != nil {
		return nil, s.singleErr
	}
	return s.singles[contentType], nil
}

func (s *stubCMS) Query(_ context.Context, document string, variables map[string]any, dst any) error {
	s.queries = append(s.queries, variables)
	if s.queryErr != nil {
		return s.queryErr
	}
	for prefix, body := range s.responses {
		if strings.HasPrefix(document, prefix) {
			return json.Unmarshal([]byte(body), dst)
		}
	}
	return nil
}

func newService(t *testing.T, src *stubCMS) *Service {
	t.Helper()
	svc, err := NewService(src, nil)
	require.NoError(t, err)
	return svc
}

func TestLayoutFallsBack(t *testing.T) {
	ctx := context.Background()

	failing := newService(t, &stubCMS{singleErr: errors.New("cms down")})
	header := failing.Layout(ctx)
	assert.Equal(t, "HubsGe", header.LogoAlt)
	require.NotEmpty(t, header.NavigationItems)
	assert.Equal(t, "/products/fan-shop", header.NavigationItems[0].Href)

	empty := newService(t, &stubCMS{singles: map[string]cms.Entry{}})
	assert.Equal(t, FallbackHeader(), empty.Layout(ctx))
}

func TestLayoutDecodesCMSHeader(t *testing.T) {
	src := &stubCMS{singles: map[string]cms.Entry{"header": {
		"documentId":        "h1",
		"promotionalBanner": "Sale",
		"logoAlt":           "Hubs",
		"navigationItems": []any{
			map[string]any{"id": "1", "label": "Fan shop", "href": "/products/fan-shop", "subcategories": []any{
				map[string]any{"id": "2", "label": "Dinamo", "href": "/products/fan-shop/dinamo-tbilisi"},
			}},
		},
	}}}
	header := newService(t, src).Layout(context.Background())

	assert.Equal(t, "Sale", header.PromotionalBanner)
	require.Len(t, header.NavigationItems, 1)
	require.Len(t, header.NavigationItems[0].Subcategories, 1)
	assert.Equal(t, "Dinamo", header.NavigationItems[0].Subcategories[0].Label)
	assert.Contains(t, src.params[0].Fields[2], "navigationItems {")
}

func TestFanShop(t *testing.T) {
	ctx := context.Background()
	src := &stubCMS{singles: map[string]cms.Entry{
		"fanShop": {"documentId": "f1", "slug": "fan-shop"},
		"header":  {"documentId": "h1", "navigationItems": []any{map[string]any{"href": "/x"}}},
	}}
	page := newService(t, src).FanShop(ctx, "ka-ge")
	assert.Equal(t, "fan-shop", page.FanShop["slug"])
	assert.Len(t, page.NavigationItems, 1)
	assert.Equal(t, "ka-GE", src.params[0].Locale)

	failed := newService(t, &stubCMS{singleErr: errors.New("boom")}).FanShop(ctx, "ka")
	assert.Nil(t, failed.FanShop)
	assert.NotNil(t, failed.NavigationItems)
	assert.Empty(t, failed.NavigationItems)
}

func TestProductsFiltersByCategory(t *testing.T) {
	ctx := context.Background()
	src := &stubCMS{
		singles: map[string]cms.Entry{},
		responses: map[string]string{"query Products": `{
			"products_connection": {
				"nodes": [{"name":"Jersey","slug":"jersey","price":120,"discountPrice":99.5,"category":{"name":"Shirts","slug":"shirts"}}],
				"pageInfo": {"page":2,"pageSize":12,"pageCount":3,"total":30}
			},
			"categories": [{"name":"Shirts","slug":"shirts"},{"name":"Hats","slug":"hats"}]
		}`},
	}
	page := newService(t, src).Products(ctx, "en-us", "shirts", 2)

	require.Len(t, page.Products, 1)
	assert.True(t, page.Products[0].Price.Equal(decimal.NewFromInt(120)))
	assert.True(t, page.Products[0].DiscountPrice.Valid)
	assert.Equal(t, 30, page.Pagination.Total)
	require.NotNil(t, page.CategoryName)
	assert.Equal(t, "Shirts", *page.CategoryName)

	vars := src.queries[0]
	assert.Equal(t, "en-US", vars["locale"])
	assert.Equal(t, cms.Pagination{Page: 2, PageSize: ProductsPageSize}, vars["pagination"])
	assert.Equal(t, []string{"name:asc"}, vars["sort"])
	assert.Contains(t, vars, "filters")
}

func TestProductsAllAndFailure(t *testing.T) {
	ctx := context.Background()
	src := &stubCMS{singles: map[string]cms.Entry{}}
	page := newService(t, src).Products(ctx, "ka", AllCategories, 0)
	assert.NotContains(t, src.queries[0], "filters")
	assert.Nil(t, page.CategorySlug)
	assert.Equal(t, cms.Pagination{Page: 1, PageSize: ProductsPageSize}, src.queries[0]["pagination"])

	failed := newService(t, &stubCMS{queryErr: errors.New("boom")}).Products(ctx, "ka", "hats", 1)
	assert.Empty(t, failed.Products)
	assert.Equal(t, cms.PageInfo{Page: 1, PageSize: 12, PageCount: 1, Total: 0}, failed.Pagination)
	require.NotNil(t, failed.CategorySlug)
	assert.Equal(t, "hats", *failed.CategorySlug)
	assert.Nil(t, failed.CategoryName)
}

func TestProductBySlug(t *testing.T) {
	ctx := context.Background()
	src := &stubCMS{responses: map[string]string{"query Product(": `{"products":[{"name":"Jersey","slug":"jersey","documentId":"p1","price":120,"hasBranding":true,"avaliableColors":[{"hexCode":"#fff","colorName":"White"}]}]}`}}
	page := newService(t, src).Product(ctx, "ka", "fan-shop", "football", "jersey")

	require.NotNil(t, page.Product)
	assert.Equal(t, "p1", page.Product.DocumentID)
	assert.True(t, page.Product.HasBranding)
	require.Len(t, page.Product.AvailableColors, 1)
	assert.Equal(t, "football", page.SubCategoryID)
	assert.Equal(t, map[string]any{"slug": map[string]any{"eq": "jersey"}}, src.queries[0]["filters"])

	missing := newService(t, &stubCMS{responses: map[string]string{"query Product(": `{"products":[]}`}}).Product(ctx, "ka", "a", "b", "nope")
	assert.Nil(t, missing.Product)
}

func TestBrands(t *testing.T) {
	ctx := context.Background()
	src := &stubCMS{
		singles:   map[string]cms.Entry{},
		responses: map[string]string{"query BrandPage": `{"brandPage":{"title":"Brands","brand_items":[{"UID":"adidas","name":"Adidas"}]},"brands":[{"UID":"adidas","name":"Adidas"},{"UID":"nike","name":"Nike"}]}`},
	}
	page := newService(t, src).Brands(ctx, "ka")
	require.NotNil(t, page.BrandPage)
	assert.Len(t, page.BrandPage.BrandItems, 1)
	assert.Len(t, page.Brands, 2)
	assert.Equal(t, []string{"UID:asc"}, src.queries[0]["sort"])

	missing := newService(t, &stubCMS{singles: map[string]cms.Entry{}, responses: map[string]string{"query BrandPage": `{"brandPage":null}`}}).Brands(ctx, "ka")
	assert.Nil(t, missing.BrandPage)
	assert.Empty(t, missing.Brands)
	assert.NotEmpty(t, missing.NavigationItems)
}

func TestQueriesParse(t *testing.T) {
	for name, q := range map[string]string{"products": productsQuery, "product": productQuery, "brands": brandPageQuery} {
		_, err := parser.ParseQuery(&ast.Source{Name: name, Input: q})
		require.NoError(t, err, name)
	}
}
