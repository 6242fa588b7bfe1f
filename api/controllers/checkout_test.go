package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/hubs-storefront/internal/checkout"
	"github.com/angelmondragon/hubs-storefront/pkg/medusa"
)

type stubProducts struct {
	products map[string]*medusa.Product
}

func (s stubProducts) ProductByHandle(_ context.Context, handle, _ string) (*medusa.Product, error) {
	return s.products[handle], nil
}

func checkoutRouter(t *testing.T, env *testEnv, svc checkout.Service) http.Handler {
	return env.router(t, func(r chi.Router) {
		r.Post("/local-cart/items", LocalCartAddItem(nil))
		r.Post("/checkout/merge-local-cart", CheckoutMergeLocalCart(svc, nil))
	})
}

func TestCheckoutMergeLocalCart(t *testing.T) {
	env := newTestEnv(t)
	svc, err := checkout.NewService(stubProducts{products: map[string]*medusa.Product{
		"home-jersey": {ID: "prod_1", Variants: []medusa.Variant{
			{ID: "variant_s", Options: []medusa.VariantOption{{Value: "S"}, {Value: "Red"}}},
			{ID: "variant_m", Options: []medusa.VariantOption{{Value: "M"}, {Value: "Red"}}},
		}},
	}}, "reg_ge", nil)
	require.NoError(t, err)
	h := checkoutRouter(t, env, svc)

	do(t, h, http.MethodPost, "/local-cart/items", jerseyItem)
	do(t, h, http.MethodPost, "/local-cart/items", `{"item":{"productSlug":"retired-scarf","name":"Scarf","price":"10"},"quantity":1}`)

	rec := do(t, h, http.MethodPost, "/checkout/merge-local-cart", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got mergeLocalCartResponse
	decodeData(t, rec, &got)
	require.Len(t, got.Report.Merged, 1)
	assert.Equal(t, "variant_m", got.Report.Merged[0].VariantID)
	require.Len(t, got.Report.Failed, 1)
	assert.Equal(t, "retired-scarf", got.Report.Failed[0].ProductSlug)
	require.Len(t, got.LocalCart.Items, 1, "failed item stays local")
	assert.Equal(t, 2, got.Cart.ItemCount)
}

type errMergeService struct{ err error }

func (s errMergeService) MergeLocalCart(_ context.Context, _ checkout.LocalCart, _ checkout.RemoteCart) (*checkout.MergeReport, error) {
	return &checkout.MergeReport{}, s.err
}

func TestCheckoutMergeFailsWhenNothingMerged(t *testing.T) {
	env := newTestEnv(t)
	h := checkoutRouter(t, env, errMergeService{err: errors.New("commerce down")})
	rec := do(t, h, http.MethodPost, "/checkout/merge-local-cart", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
