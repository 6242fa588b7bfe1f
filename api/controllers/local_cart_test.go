package controllers

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/hubs-storefront/pkg/errors"
)

func localCartRouter(t *testing.T, env *testEnv) http.Handler {
	return env.router(t, func(r chi.Router) {
		r.Get("/local-cart", LocalCartGet(nil))
		r.Post("/local-cart/items", LocalCartAddItem(nil))
		r.Patch("/local-cart/items/{index}", LocalCartUpdateItem(nil))
		r.Delete("/local-cart/items/{index}", LocalCartRemoveItem(nil))
		r.Delete("/local-cart", LocalCartClear(nil))
	})
}

const jerseyItem = `{"item":{"productSlug":"home-jersey","name":"Home Jersey","price":"100","discountPrice":"80","size":"M","color":{"hexCode":"#ff0000","colorName":"Red"}},"quantity":2}`

func TestLocalCartLifecycle(t *testing.T) {
	env := newTestEnv(t)
	h := localCartRouter(t, env)

	rec := do(t, h, http.MethodPost, "/local-cart/items", jerseyItem)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Same variant merges into the first entry.
	rec = do(t, h, http.MethodPost, "/local-cart/items", jerseyItem)
	require.Equal(t, http.StatusOK, rec.Code)

	var cart localCartResponse
	rec = do(t, h, http.MethodGet, "/local-cart", "")
	decodeData(t, rec, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.ItemCount)
	assert.Equal(t, "320", cart.Total.String())

	rec = do(t, h, http.MethodPatch, "/local-cart/items/0", `{"quantity":1}`)
	decodeData(t, rec, &cart)
	assert.Equal(t, 1, cart.ItemCount)
	assert.Equal(t, "80", cart.Total.String())

	rec = do(t, h, http.MethodDelete, "/local-cart/items/0", "")
	decodeData(t, rec, &cart)
	assert.Empty(t, cart.Items)
}

func TestLocalCartRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	h := localCartRouter(t, env)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"missing slug", http.MethodPost, "/local-cart/items", `{"item":{"name":"Scarf","price":"10"},"quantity":1}`},
		{"negative price", http.MethodPost, "/local-cart/items", `{"item":{"productSlug":"scarf","name":"Scarf","price":"-1"},"quantity":1}`},
		{"color without hex", http.MethodPost, "/local-cart/items", `{"item":{"productSlug":"scarf","name":"Scarf","price":"1","color":{"colorName":"Red"}},"quantity":1}`},
		{"index out of range", http.MethodPatch, "/local-cart/items/3", `{"quantity":1}`},
		{"index not numeric", http.MethodDelete, "/local-cart/items/first", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, string(pkgerrors.CodeValidation), errorCode(t, rec))
		})
	}
}

func TestLocalCartClear(t *testing.T) {
	env := newTestEnv(t)
	h := localCartRouter(t, env)

	do(t, h, http.MethodPost, "/local-cart/items", jerseyItem)
	rec := do(t, h, http.MethodDelete, "/local-cart", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var cart localCartResponse
	decodeData(t, rec, &cart)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.ItemCount)
}
