package medusa

import (
	"context"
	"net/http"
)

type cartEnvelope struct {
	Cart *Cart `json:"cart"`
}

func (c *Client) cartCall(ctx context.Context, req request) (*Cart, error) {
	var env cartEnvelope
	if err := c.do(ctx, req, &env); err != nil {
		return nil, err
	}
	return env.Cart, nil
}

func (c *Client) CreateCart(ctx context.Context, in CreateCartRequest) (*Cart, error) {
	return c.cartCall(ctx, request{op: "cart.create", method: http.MethodPost, path: "/store/carts", body: in})
}

func (c *Client) RetrieveCart(ctx context.Context, cartID string) (*Cart, error) {
	if err := requireID("cart id", cartID); err != nil {
		return nil, err
	}
	return c.cartCall(ctx, request{op: "cart.retrieve", method: http.MethodGet, path: pathf("/store/carts/%s", cartID)})
}

func (c *Client) UpdateCart(ctx context.Context, cartID string, in UpdateCartRequest) (*Cart, error) {
	if err := requireID("cart id", cartID); err != nil {
		return nil, err
	}
	return c.cartCall(ctx, request{op: "cart.update", method: http.MethodPost, path: pathf("/store/carts/%s", cartID), body: in})
}

func (c *Client) AddLineItem(ctx context.Context, cartID string, in AddLineItemRequest) (*Cart, error) {
	if err := requireID("cart id", cartID); err != nil {
		return nil, err
	}
	if err := requireID("variant id", in.VariantID); err != nil {
		return nil, err
	}
	return c.cartCall(ctx, request{op: "cart.line_item.create", method: http.MethodPost, path: pathf("/store/carts/%s/line-items", cartID), body: in})
}

func (c *Client) UpdateLineItem(ctx context.Context, cartID, lineItemID string, in UpdateLineItemRequest) (*Cart, error) {
	if err := requireID("cart id", cartID); err != nil {
		return nil, err
	}
	if err := requireID("line item id", lineItemID); err != nil {
		return nil, err
	}
	return c.cartCall(ctx, request{op: "cart.line_item.update", method: http.MethodPost, path: pathf("/store/carts/%s/line-items/%s", cartID, lineItemID), body: in})
}

// DeleteLineItem removes a line item. The updated cart comes back as the
// result's Parent rather than under "cart".
func (c *Client) DeleteLineItem(ctx context.Context, cartID, lineItemID string) (*LineItemDeleteResult, error) {
	if err := requireID("cart id", cartID); err != nil {
		return nil, err
	}
	if err := requireID("line item id", lineItemID); err != nil {
		return nil, err
	}
	var out LineItemDeleteResult
	if err := c.do(ctx, request{op: "cart.line_item.delete", method: http.MethodDelete, path: pathf("/store/carts/%s/line-items/%s", cartID, lineItemID)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddShippingMethod(ctx context.Context, cartID string, in AddShippingMethodRequest) (*Cart, error) {
	if err := requireID("cart id", cartID); err != nil {
		return nil, err
	}
	if err := requireID("shipping option id", in.OptionID); err != nil {
		return nil, err
	}
	return c.cartCall(ctx, request{op: "cart.shipping_method.add", method: http.MethodPost, path: pathf("/store/carts/%s/shipping-methods", cartID), body: in})
}

func (c *Client) CompleteCart(ctx context.Context, cartID string) (*CompleteResult, error) {
	if err := requireID("cart id", cartID); err != nil {
		return nil, err
	}
	var out CompleteResult
	if err := c.do(ctx, request{op: "cart.complete", method: http.MethodPost, path: pathf("/store/carts/%s/complete", cartID)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
