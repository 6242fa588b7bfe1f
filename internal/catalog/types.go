package catalog

import (
	"encoding/json"

	"github.com/angelmondragon/hubs-storefront/internal/cms"
	"github.com/shopspring/decimal"
)

type NavigationItem struct {
	ID            string           `json:"id,omitempty"`
	Label         string           `json:"label,omitempty"`
	Href          string           `json:"href"`
	IconSrc       string           `json:"iconSrc,omitempty"`
	Description   string           `json:"description,omitempty"`
	ProductType   string           `json:"productType,omitempty"`
	Subcategories []NavigationItem `json:"subcategories,omitempty"`
}

type Header struct {
	DocumentID        string           `json:"documentId,omitempty"`
	PromotionalBanner string           `json:"promotionalBanner"`
	LogoURL           string           `json:"logoUrl,omitempty"`
	LogoAlt           string           `json:"logoAlt"`
	NavigationItems   []NavigationItem `json:"navigationItems"`
}

type Image struct {
	DocumentID      string `json:"documentId,omitempty"`
	Name            string `json:"name"`
	AlternativeText string `json:"alternativeText,omitempty"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	Ext             string `json:"ext,omitempty"`
	URL             string `json:"url"`
	PreviewURL      string `json:"previewUrl,omitempty"`
}

type Category struct {
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

type ProductSummary struct {
	Name               string              `json:"name"`
	Slug               string              `json:"slug"`
	ShortDescription   string              `json:"shortDescription,omitempty"`
	AverageRating      decimal.NullDecimal `json:"averageRating"`
	Price              decimal.Decimal     `json:"price"`
	DiscountPrice      decimal.NullDecimal `json:"discountPrice"`
	DiscountPercentage decimal.NullDecimal `json:"discountPercentage"`
	IsFavourite        bool                `json:"isFavourite"`
	Category           *Category           `json:"category"`
	Gallery            []Image             `json:"gallery"`
	MainImage          *Image              `json:"mainImage"`
}

type Review struct {
	Comment      string `json:"comment"`
	ReviewerName string `json:"reviewerName"`
	Rating       int    `json:"rating"`
}

type Size struct {
	ProductSize string `json:"productSize"`
}

type Color struct {
	HexCode   string `json:"hexCode"`
	ColorName string `json:"colorName"`
}

type ProductDetail struct {
	ProductSummary
	DocumentID          string          `json:"documentId"`
	DetailedDescription json.RawMessage `json:"detailedDescription,omitempty"`
	HasBranding         bool            `json:"hasBranding"`
	Reviews             []Review        `json:"reviews"`
	AvailableSizes      []Size          `json:"availableSizes"`
	AvailableColors     []Color         `json:"avaliableColors"`
}

type Brand struct {
	UID   string `json:"UID"`
	Name  string `json:"name"`
	Image *Image `json:"image,omitempty"`
}

type BrandPage struct {
	Title      string  `json:"title"`
	ViewMore   string  `json:"viewMore"`
	AllBrands  string  `json:"allBrands"`
	BrandItems []Brand `json:"brand_items"`
}

// Pages.

type FanShopPage struct {
	FanShop         cms.Entry        `json:"fanShop"`
	NavigationItems []NavigationItem `json:"navigationItems"`
}

type ProductsPage struct {
	Products        []ProductSummary `json:"products"`
	Pagination      cms.PageInfo     `json:"pagination"`
	Categories      []Category       `json:"categories"`
	CategorySlug    *string          `json:"categorySlug"`
	CategoryName    *string          `json:"categoryName"`
	NavigationItems []NavigationItem `json:"navigationItems"`
}

type ProductPage struct {
	Product       *ProductDetail `json:"product"`
	CategoryID    string         `json:"categoryId"`
	SubCategoryID string         `json:"subCategoryId"`
}

type BrandsPage struct {
	BrandPage       *BrandPage       `json:"brandPage"`
	Brands          []Brand          `json:"brands"`
	NavigationItems []NavigationItem `json:"navigationItems"`
}
