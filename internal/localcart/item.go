package localcart

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Color identifies a selected product color.
type Color struct {
	HexCode   string `json:"hexCode" validate:"required"`
	ColorName string `json:"colorName"`
}

// Branding is the personalised name and number printed on an item.
type Branding struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// Item is one entry of a visitor's pre-checkout cart.
type Item struct {
	ProductSlug   string              `json:"productSlug" validate:"required"`
	Name          string              `json:"name" validate:"required"`
	Price         decimal.Decimal     `json:"price"`
	DiscountPrice decimal.NullDecimal `json:"discountPrice"`
	ImageURL      string              `json:"imageUrl"`
	Size          *string             `json:"size"`
	Color         *Color              `json:"color"`
	Branding      *Branding           `json:"branding"`
	Quantity      int                 `json:"quantity"`
}

// UnitPrice is the discount price when set, otherwise the list price.
func (i Item) UnitPrice() decimal.Decimal {
	if i.DiscountPrice.Valid {
		return i.DiscountPrice.Decimal
	}
	return i.Price
}

// LineTotal is UnitPrice times Quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SameVariant reports whether two items share slug, size, color and
// branding. A nil attribute only matches another nil attribute.
func (i Item) SameVariant(other Item) bool {
	if i.ProductSlug != other.ProductSlug {
		return false
	}
	if !equalPtr(i.Size, other.Size) {
		return false
	}
	if (i.Color == nil) != (other.Color == nil) {
		return false
	}
	if i.Color != nil && i.Color.HexCode != other.Color.HexCode {
		return false
	}
	if (i.Branding == nil) != (other.Branding == nil) {
		return false
	}
	if i.Branding != nil && *i.Branding != *other.Branding {
		return false
	}
	return true
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// DecodeItems parses a persisted item list. Blank input is an empty cart; a
// corrupt payload also yields an empty cart, together with the decode error.
func DecodeItems(raw string) ([]Item, error) {
	if strings.TrimSpace(raw) == "" {
		return []Item{}, nil
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []Item{}, err
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func encodeItems(items []Item) (string, error) {
	if items == nil {
		items = []Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
