package medusa

import (
	"context"
	"net/http"
	"net/url"
)

const productVariantFields = "id,handle,title,*variants,*variants.options,*variants.options.option"

type productsEnvelope struct {
	Products []Product `json:"products"`
	Count    int       `json:"count"`
}

// ProductByHandle returns the product with handle including its variant
// options, or nil when none exists.
func (c *Client) ProductByHandle(ctx context.Context, handle, regionID string) (*Product, error) {
	if err := requireID("product handle", handle); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("handle", handle)
	q.Set("fields", productVariantFields)
	q.Set("limit", "1")
	if regionID != "" {
		q.Set("region_id", regionID)
	}

	var env productsEnvelope
	if err := c.do(ctx, request{op: "product.list", method: http.MethodGet, path: "/store/products", query: q}, &env); err != nil {
		return nil, err
	}
	if len(env.Products) == 0 {
		return nil, nil
	}
	return &env.Products[0], nil
}
