package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/hubs-storefront/internal/localcart"
	"github.com/angelmondragon/hubs-storefront/pkg/kv"
	"github.com/angelmondragon/hubs-storefront/pkg/medusa"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type stubProducts map[string]*medusa.Product

func (s stubProducts) ProductByHandle(_ context.Context, handle, _ string) (*medusa.Product, error) {
	return s[handle], nil
}

type addCall struct {
	variantID string
	quantity  int
	metadata  map[string]any
}

type stubRemote struct {
	calls []addCall
	fail  map[string]error
}

func (s *stubRemote) AddItem(_ context.Context, variantID string, quantity int, metadata map[string]any) error {
	if err := s.fail[variantID]; err != nil {
		return err
	}
	s.calls = append(s.calls, addCall{variantID: variantID, quantity: quantity, metadata: metadata})
	return nil
}

func strPtr(s string) *string { return &s }

func jersey() *medusa.Product {
	return &medusa.Product{
		Handle: "home-jersey",
		Variants: []medusa.Variant{
			{ID: "var_s_red", Options: []medusa.VariantOption{{Value: "S"}, {Value: "Red"}}},
			{ID: "var_m_red", Options: []medusa.VariantOption{{Value: "M"}, {Value: "Red"}}},
			{ID: "var_m_blue", Options: []medusa.VariantOption{{Value: "M"}, {Value: "Blue"}}},
		},
	}
}

func newLocal(t *testing.T, items ...localcart.Item) *localcart.Store {
	t.Helper()
	store, err := localcart.NewStore(kv.NewMemory(), nil)
	require.NoError(t, err)
	store.Initialize(context.Background())
	for _, item := range items {
		require.NoError(t, store.AddItem(context.Background(), item, item.Quantity))
	}
	return store
}

func TestMergeLocalCartMovesResolvedItems(t *testing.T) {
	ctx := context.Background()
	svc, err := NewService(stubProducts{"home-jersey": jersey(), "scarf": {Handle: "scarf", Variants: []medusa.Variant{{ID: "var_scarf"}}}}, "reg_ge", nil)
	require.NoError(t, err)

	local := newLocal(t,
		localcart.Item{ProductSlug: "home-jersey", Name: "Jersey", Price: decimal.NewFromInt(120), Size: strPtr("m"), Color: &localcart.Color{HexCode: "#0000ff", ColorName: "Blue"}, Branding: &localcart.Branding{Name: "GIO", Number: "7"}, Quantity: 2},
		localcart.Item{ProductSlug: "scarf", Name: "Scarf", Price: decimal.NewFromInt(30), Quantity: 1},
	)
	remote := &stubRemote{}

	report, err := svc.MergeLocalCart(ctx, local, remote)
	require.NoError(t, err)
	require.Len(t, report.Merged, 2)
	assert.Empty(t, report.Failed)
	assert.Empty(t, local.Items())

	require.Len(t, remote.calls, 2)
	assert.Equal(t, "var_m_blue", remote.calls[0].variantID)
	assert.Equal(t, 2, remote.calls[0].quantity)
	assert.Equal(t, "GIO", remote.calls[0].metadata["branding_name"])
	assert.Equal(t, "7", remote.calls[0].metadata["branding_number"])
	assert.Equal(t, "var_scarf", remote.calls[1].variantID)
}

func TestMergeLocalCartKeepsFailures(t *testing.T) {
	ctx := context.Background()
	addErr := &medusa.APIError{Status: 400, Message: "Variant out of stock"}
	svc, err := NewService(stubProducts{"home-jersey": jersey(), "scarf": {Handle: "scarf", Variants: []medusa.Variant{{ID: "var_scarf"}}}}, "", nil)
	require.NoError(t, err)

	local := newLocal(t,
		localcart.Item{ProductSlug: "missing", Name: "Missing", Price: decimal.NewFromInt(1), Quantity: 1},
		localcart.Item{ProductSlug: "home-jersey", Name: "Jersey", Price: decimal.NewFromInt(120), Size: strPtr("XL"), Quantity: 1},
		localcart.Item{ProductSlug: "scarf", Name: "Scarf", Price: decimal.NewFromInt(30), Quantity: 1},
		localcart.Item{ProductSlug: "home-jersey", Name: "Jersey", Price: decimal.NewFromInt(120), Size: strPtr("S"), Quantity: 3},
	)
	remote := &stubRemote{fail: map[string]error{"var_scarf": addErr}}

	report, err := svc.MergeLocalCart(ctx, local, remote)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
	assert.True(t, errors.Is(err, addErr))

	require.Len(t, report.Merged, 1)
	assert.Equal(t, "var_s_red", report.Merged[0].VariantID)
	require.Len(t, report.Failed, 3)
	assert.Equal(t, "Variant out of stock", report.Failed[2].Reason)

	remaining := local.Items()
	require.Len(t, remaining, 3)
	assert.Equal(t, "missing", remaining[0].ProductSlug)
	assert.Equal(t, "scarf", remaining[2].ProductSlug)
}

func TestMergeLocalCartEmpty(t *testing.T) {
	svc, err := NewService(stubProducts{}, "", nil)
	require.NoError(t, err)

	report, err := svc.MergeLocalCart(context.Background(), newLocal(t), &stubRemote{})
	require.NoError(t, err)
	assert.Empty(t, report.Merged)
	assert.NotNil(t, report.Failed)
}

func TestNewServiceRequiresResolver(t *testing.T) {
	_, err := NewService(nil, "", nil)
	require.Error(t, err)
}
