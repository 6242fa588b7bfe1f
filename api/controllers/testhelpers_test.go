package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/hubs-storefront/api/middleware"
	"github.com/angelmondragon/hubs-storefront/internal/cart"
	"github.com/angelmondragon/hubs-storefront/internal/session"
	pkgerrors "github.com/angelmondragon/hubs-storefront/pkg/errors"
	"github.com/angelmondragon/hubs-storefront/pkg/kv"
	"github.com/angelmondragon/hubs-storefront/pkg/medusa"
)

// fakeCommerce keeps carts in memory and accepts one customer.
type fakeCommerce struct {
	mu       sync.Mutex
	carts    map[string]*medusa.Cart
	seq      int
	complete *medusa.CompleteResult
	loginErr error
}

func newFakeCommerce() *fakeCommerce {
	return &fakeCommerce{carts: map[string]*medusa.Cart{}}
}

func (f *fakeCommerce) cart(id string) (*medusa.Cart, error) {
	c, ok := f.carts[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
	}
	return c, nil
}

func (f *fakeCommerce) CreateCart(_ context.Context, in medusa.CreateCartRequest) (*medusa.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	c := &medusa.Cart{ID: fmt.Sprintf("cart_%d", f.seq), RegionID: in.RegionID, Items: []medusa.LineItem{}}
	f.carts[c.ID] = c
	return c, nil
}

func (f *fakeCommerce) RetrieveCart(_ context.Context, id string) (*medusa.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cart(id)
}

func (f *fakeCommerce) UpdateCart(_ context.Context, id string, in medusa.UpdateCartRequest) (*medusa.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, err := f.cart(id)
	if err != nil {
		return nil, err
	}
	if in.Email != "" {
		c.Email = in.Email
	}
	if in.ShippingAddress != nil {
		c.ShippingAddress = in.ShippingAddress
	}
	return c, nil
}

func (f *fakeCommerce) AddLineItem(_ context.Context, id string, in medusa.AddLineItemRequest) (*medusa.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, err := f.cart(id)
	if err != nil {
		return nil, err
	}
	price := decimal.NewFromInt(5000)
	c.Items = append(c.Items, medusa.LineItem{
		ID:        fmt.Sprintf("item_%d", len(c.Items)+1),
		VariantID: in.VariantID,
		Quantity:  in.Quantity,
		UnitPrice: price,
		Total:     price.Mul(decimal.NewFromInt(int64(in.Quantity))),
		Metadata:  in.Metadata,
	})
	c.Subtotal = c.Subtotal.Add(price.Mul(decimal.NewFromInt(int64(in.Quantity))))
	c.Total = c.Subtotal
	return c, nil
}

func (f *fakeCommerce) UpdateLineItem(_ context.Context, id, lineID string, in medusa.UpdateLineItemRequest) (*medusa.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, err := f.cart(id)
	if err != nil {
		return nil, err
	}
	for i := range c.Items {
		if c.Items[i].ID == lineID {
			c.Items[i].Quantity = in.Quantity
			return c, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "line item not found")
}

func (f *fakeCommerce) DeleteLineItem(_ context.Context, id, lineID string) (*medusa.LineItemDeleteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, err := f.cart(id)
	if err != nil {
		return nil, err
	}
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ID != lineID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	return &medusa.LineItemDeleteResult{ID: lineID, Deleted: true, Parent: c}, nil
}

func (f *fakeCommerce) AddShippingMethod(_ context.Context, id string, in medusa.AddShippingMethodRequest) (*medusa.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, err := f.cart(id)
	if err != nil {
		return nil, err
	}
	c.ShippingMethods = append(c.ShippingMethods, medusa.ShippingMethod{ShippingOptionID: in.OptionID})
	return c, nil
}

func (f *fakeCommerce) CompleteCart(_ context.Context, id string) (*medusa.CompleteResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.complete != nil {
		return f.complete, nil
	}
	return &medusa.CompleteResult{Type: medusa.CompletionOrder, Order: &medusa.Order{ID: "order_" + id}}, nil
}

func (f *fakeCommerce) Authenticate(_ context.Context, _ string, creds map[string]string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "token_" + creds["email"] + creds["phone"], nil
}

func (f *fakeCommerce) Register(context.Context, string, map[string]string) (string, error) {
	return "reg_token", nil
}

func (f *fakeCommerce) Logout(context.Context, string) error { return nil }

func (f *fakeCommerce) CreateCustomer(_ context.Context, _ string, in medusa.CreateCustomerRequest) (*medusa.Customer, error) {
	return &medusa.Customer{ID: "cus_1", Phone: in.Phone}, nil
}

func (f *fakeCommerce) RetrieveCustomer(_ context.Context, token string) (*medusa.Customer, error) {
	return &medusa.Customer{ID: "cus_1", Email: strings.TrimPrefix(token, "token_")}, nil
}

type testEnv struct {
	commerce *fakeCommerce
	store    *kv.Memory
	factory  *session.Factory
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	commerce := newFakeCommerce()
	store := kv.NewMemory()
	factory, err := session.NewFactory(session.FactoryParams{
		Store:    store,
		Commerce: commerce,
		TTL:      time.Hour,
		Cart:     cart.Config{DefaultRegionID: "reg_ge"},
	})
	require.NoError(t, err)
	return &testEnv{commerce: commerce, store: store, factory: factory}
}

// router mounts handlers behind a middleware that attaches a fresh bundle
// for the fixed test session, the way Session does per request.
func (e *testEnv) router(t *testing.T, mount func(r chi.Router)) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			bundle, err := e.factory.ForSession("sess-test")
			require.NoError(t, err)
			ctx := middleware.WithBundle(middleware.WithSessionID(req.Context(), "sess-test"), bundle)
			ctx = middleware.WithLocale(ctx, "ka")
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	mount(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	envelope := struct {
		Data any `json:"data"`
	}{Data: dst}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	return envelope.Error.Code
}
