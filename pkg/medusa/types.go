package medusa

import (
	"github.com/shopspring/decimal"
)

// Cart mirrors the store cart payload. Monetary fields are in minor units.
type Cart struct {
	ID              string           `json:"id"`
	RegionID        string           `json:"region_id,omitempty"`
	CustomerID      string           `json:"customer_id,omitempty"`
	Email           string           `json:"email,omitempty"`
	CurrencyCode    string           `json:"currency_code,omitempty"`
	Items           []LineItem       `json:"items"`
	ShippingAddress *Address         `json:"shipping_address,omitempty"`
	ShippingMethods []ShippingMethod `json:"shipping_methods,omitempty"`
	Subtotal        decimal.Decimal  `json:"subtotal"`
	ShippingTotal   decimal.Decimal  `json:"shipping_total"`
	TaxTotal        decimal.Decimal  `json:"tax_total"`
	DiscountTotal   decimal.Decimal  `json:"discount_total"`
	Total           decimal.Decimal  `json:"total"`
}

type LineItem struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Subtitle      string          `json:"subtitle,omitempty"`
	Thumbnail     string          `json:"thumbnail,omitempty"`
	VariantID     string          `json:"variant_id"`
	ProductID     string          `json:"product_id,omitempty"`
	ProductHandle string          `json:"product_handle,omitempty"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Total         decimal.Decimal `json:"total"`
	Metadata      map[string]any  `json:"metadata,omitempty"`
}

type Address struct {
	FirstName   string `json:"first_name,omitempty" validate:"required"`
	LastName    string `json:"last_name,omitempty" validate:"required"`
	Company     string `json:"company,omitempty"`
	Address1    string `json:"address_1,omitempty" validate:"required"`
	Address2    string `json:"address_2,omitempty"`
	City        string `json:"city,omitempty" validate:"required"`
	Province    string `json:"province,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	CountryCode string `json:"country_code,omitempty" validate:"required,len=2"`
	Phone       string `json:"phone,omitempty"`
}

type ShippingMethod struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	ShippingOptionID string          `json:"shipping_option_id"`
	Amount           decimal.Decimal `json:"amount"`
}

type Order struct {
	ID           string          `json:"id"`
	DisplayID    int             `json:"display_id"`
	Status       string          `json:"status"`
	Email        string          `json:"email,omitempty"`
	CurrencyCode string          `json:"currency_code,omitempty"`
	Items        []LineItem      `json:"items,omitempty"`
	Total        decimal.Decimal `json:"total"`
}

type Customer struct {
	ID         string `json:"id"`
	Email      string `json:"email,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	HasAccount bool   `json:"has_account"`
}

type Product struct {
	ID       string    `json:"id"`
	Handle   string    `json:"handle"`
	Title    string    `json:"title"`
	Variants []Variant `json:"variants"`
}

type Variant struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	SKU     string          `json:"sku,omitempty"`
	Options []VariantOption `json:"options"`
}

type VariantOption struct {
	ID     string         `json:"id"`
	Value  string         `json:"value"`
	Option *ProductOption `json:"option,omitempty"`
}

type ProductOption struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// CompletionType tags the two shapes returned by cart completion.
type CompletionType string

const (
	CompletionOrder CompletionType = "order"
	CompletionCart  CompletionType = "cart"
)

// CompleteResult is either {type: order, order} or {type: cart, cart, error}.
type CompleteResult struct {
	Type  CompletionType   `json:"type"`
	Order *Order           `json:"order,omitempty"`
	Cart  *Cart            `json:"cart,omitempty"`
	Error *CompletionError `json:"error,omitempty"`
}

type CompletionError struct {
	Message string `json:"message"`
	Name    string `json:"name,omitempty"`
	Type    string `json:"type,omitempty"`
}

// LineItemDeleteResult carries the updated cart under parent.
type LineItemDeleteResult struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
	Parent  *Cart  `json:"parent,omitempty"`
}

// Request payloads.

type CreateCartRequest struct {
	RegionID string `json:"region_id,omitempty"`
	Email    string `json:"email,omitempty"`
}

type UpdateCartRequest struct {
	Email           string   `json:"email,omitempty"`
	ShippingAddress *Address `json:"shipping_address,omitempty"`
	BillingAddress  *Address `json:"billing_address,omitempty"`
}

type AddLineItemRequest struct {
	VariantID string         `json:"variant_id"`
	Quantity  int            `json:"quantity"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type UpdateLineItemRequest struct {
	Quantity int `json:"quantity"`
}

type AddShippingMethodRequest struct {
	OptionID string         `json:"option_id"`
	Data     map[string]any `json:"data,omitempty"`
}

type CreateCustomerRequest struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}
