// Package catalog loads the storefront pages from the CMS. Loaders never
// fail on CMS errors; they log and return fallback content.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/angelmondragon/hubs-storefront/internal/cms"
	"github.com/angelmondragon/hubs-storefront/pkg/logger"
)

const (
	ProductsPageSize = 12
	AllCategories    = "all"
)

type contentSource interface {
	FindSingle(ctx context.Context, contentType string, p cms.Params) (cms.Entry, error)
	Query(ctx context.Context, document string, variables map[string]any, dst any) error
}

type Service struct {
	cms  contentSource
	logg *logger.Logger
}

func NewService(source contentSource, logg *logger.Logger) (*Service, error) {
	if source == nil {
		return nil, errors.New("cms client required")
	}
	return &Service{cms: source, logg: logg}, nil
}

// Layout returns the site header, or the built-in header when the CMS has
// none or cannot be reached.
func (s *Service) Layout(ctx context.Context) *Header {
	entry, err := s.cms.FindSingle(ctx, "header", cms.Params{
		Fields: []string{"promotionalBanner", "logoAlt", navigationSelection},
	})
	if err != nil {
		s.logError(ctx, "catalog.header_failed", err)
		return FallbackHeader()
	}
	if entry == nil {
		s.warn(ctx, "catalog.header_missing")
		return FallbackHeader()
	}

	var header Header
	if err := entry.Decode(&header); err != nil {
		s.logError(ctx, "catalog.header_decode_failed", err)
		return FallbackHeader()
	}
	return &header
}

func (s *Service) navigation(ctx context.Context) []NavigationItem {
	items := s.Layout(ctx).NavigationItems
	if items == nil {
		return []NavigationItem{}
	}
	return items
}

// FanShop loads the fan shop single type.
func (s *Service) FanShop(ctx context.Context, locale string) *FanShopPage {
	entry, err := s.cms.FindSingle(ctx, "fanShop", cms.Params{
		Locale: cms.MapLocale(locale),
		Fields: []string{"slug", "productListTitle", "seeMore", fanShopBanner, fanShopProducts},
	})
	if err != nil {
		s.logError(ctx, "catalog.fan_shop_failed", err)
		return &FanShopPage{NavigationItems: []NavigationItem{}}
	}
	if entry == nil {
		s.warn(ctx, "catalog.fan_shop_missing")
	}
	return &FanShopPage{FanShop: entry, NavigationItems: s.navigation(ctx)}
}

type productsResult struct {
	Connection *struct {
		Nodes    []ProductSummary `json:"nodes"`
		PageInfo *cms.PageInfo    `json:"pageInfo"`
	} `json:"products_connection"`
	Categories []Category `json:"categories"`
}

func defaultPagination() cms.PageInfo {
	return cms.PageInfo{Page: 1, PageSize: ProductsPageSize, PageCount: 1, Total: 0}
}

// Products lists one page of a category sorted by name. The category "all"
// lists every product.
func (s *Service) Products(ctx context.Context, locale, categoryID string, page int) *ProductsPage {
	var categorySlug *string
	if categoryID = strings.TrimSpace(categoryID); categoryID != "" && categoryID != AllCategories {
		categorySlug = &categoryID
	}
	if page < 1 {
		page = 1
	}

	vars := map[string]any{
		"locale":     cms.MapLocale(locale),
		"sort":       []string{"name:asc"},
		"pagination": cms.Pagination{Page: page, PageSize: ProductsPageSize},
	}
	if categorySlug != nil {
		vars["filters"] = map[string]any{"category": map[string]any{"slug": map[string]any{"eq": *categorySlug}}}
	}

	var res productsResult
	if err := s.cms.Query(ctx, productsQuery, vars, &res); err != nil {
		s.logError(ctx, "catalog.products_failed", err)
		return &ProductsPage{
			Products:        []ProductSummary{},
			Pagination:      defaultPagination(),
			Categories:      []Category{},
			CategorySlug:    categorySlug,
			NavigationItems: []NavigationItem{},
		}
	}

	out := &ProductsPage{
		Products:        []ProductSummary{},
		Pagination:      defaultPagination(),
		Categories:      res.Categories,
		CategorySlug:    categorySlug,
		NavigationItems: s.navigation(ctx),
	}
	if out.Categories == nil {
		out.Categories = []Category{}
	}
	if res.Connection != nil {
		if res.Connection.Nodes != nil {
			out.Products = res.Connection.Nodes
		}
		if res.Connection.PageInfo != nil {
			out.Pagination = *res.Connection.PageInfo
		}
	}
	if categorySlug != nil {
		for _, c := range out.Categories {
			if c.Slug == *categorySlug {
				name := c.Name
				out.CategoryName = &name
				break
			}
		}
	}
	return out
}

// Product loads a product by slug; the category segments are echoed back.
func (s *Service) Product(ctx context.Context, locale, categoryID, subCategoryID, slug string) *ProductPage {
	out := &ProductPage{CategoryID: categoryID, SubCategoryID: subCategoryID}

	var res struct {
		Products []ProductDetail `json:"products"`
	}
	vars := map[string]any{
		"locale":  cms.MapLocale(locale),
		"filters": map[string]any{"slug": map[string]any{"eq": slug}},
	}
	if err := s.cms.Query(ctx, productQuery, vars, &res); err != nil {
		s.logError(ctx, "catalog.product_failed", err)
		return out
	}
	if len(res.Products) > 0 {
		out.Product = &res.Products[0]
	}
	return out
}

// Brands loads the brand page and the full brand list.
func (s *Service) Brands(ctx context.Context, locale string) *BrandsPage {
	var res struct {
		BrandPage *BrandPage `json:"brandPage"`
		Brands    []Brand    `json:"brands"`
	}
	vars := map[string]any{
		"locale": cms.MapLocale(locale),
		"sort":   []string{"UID:asc"},
	}
	if err := s.cms.Query(ctx, brandPageQuery, vars, &res); err != nil {
		s.logError(ctx, "catalog.brands_failed", err)
		return &BrandsPage{Brands: []Brand{}, NavigationItems: []NavigationItem{}}
	}

	nav := s.navigation(ctx)
	if res.BrandPage == nil {
		s.warn(ctx, "catalog.brand_page_missing")
		return &BrandsPage{Brands: []Brand{}, NavigationItems: nav}
	}
	if res.Brands == nil {
		res.Brands = []Brand{}
	}
	return &BrandsPage{BrandPage: res.BrandPage, Brands: res.Brands, NavigationItems: nav}
}

func (s *Service) logError(ctx context.Context, msg string, err error) {
	if s.logg != nil {
		s.logg.Error(ctx, msg, err)
	}
}

func (s *Service) warn(ctx context.Context, msg string) {
	if s.logg != nil {
		s.logg.Warn(ctx, msg)
	}
}
