package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/hubs-storefront/api/middleware"
	"github.com/angelmondragon/hubs-storefront/api/responses"
	"github.com/angelmondragon/hubs-storefront/api/validators"
	"github.com/angelmondragon/hubs-storefront/internal/catalog"
	"github.com/angelmondragon/hubs-storefront/pkg/logger"
)

const maxSlugLen = 200

// PageLoader supplies the data behind each storefront page. Loaders fall back
// to empty content on CMS failures, so these handlers only fail on bad input.
type PageLoader interface {
	Layout(ctx context.Context) *catalog.Header
	FanShop(ctx context.Context, locale string) *catalog.FanShopPage
	Products(ctx context.Context, locale, categoryID string, page int) *catalog.ProductsPage
	Product(ctx context.Context, locale, categoryID, subCategoryID, slug string) *catalog.ProductPage
	Brands(ctx context.Context, locale string) *catalog.BrandsPage
}

func PageLayout(pages PageLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, pages.Layout(r.Context()))
	}
}

func PageFanShop(pages PageLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locale := middleware.LocaleFromContext(r.Context())
		responses.WriteSuccess(w, pages.FanShop(r.Context(), locale))
	}
}

func PageBrands(pages PageLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locale := middleware.LocaleFromContext(r.Context())
		responses.WriteSuccess(w, pages.Brands(r.Context(), locale))
	}
}

// PageProducts lists a category page; ?page defaults to 1.
func PageProducts(pages PageLoader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParseQueryInt(r, "page", 1, 1, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID := validators.SanitizeString(chi.URLParam(r, "categoryId"), maxSlugLen)
		if categoryID == "" {
			categoryID = catalog.AllCategories
		}
		locale := middleware.LocaleFromContext(r.Context())
		responses.WriteSuccess(w, pages.Products(r.Context(), locale, categoryID, page))
	}
}

func PageProduct(pages PageLoader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug, err := validators.RequireURLParam(r, "itemId", maxSlugLen)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID := validators.SanitizeString(chi.URLParam(r, "categoryId"), maxSlugLen)
		subCategoryID := validators.SanitizeString(chi.URLParam(r, "subCategoryId"), maxSlugLen)
		locale := middleware.LocaleFromContext(r.Context())
		responses.WriteSuccess(w, pages.Product(r.Context(), locale, categoryID, subCategoryID, slug))
	}
}
