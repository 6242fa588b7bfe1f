// Package checkout moves a visitor's local cart into the commerce cart.
package checkout

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/angelmondragon/hubs-storefront/internal/localcart"
	pkgerrors "github.com/angelmondragon/hubs-storefront/pkg/errors"
	"github.com/angelmondragon/hubs-storefront/pkg/logger"
	"github.com/angelmondragon/hubs-storefront/pkg/medusa"
	"go.uber.org/multierr"
)

const (
	metaBrandingName   = "branding_name"
	metaBrandingNumber = "branding_number"
	metaSourceSlug     = "product_slug"
)

type productResolver interface {
	ProductByHandle(ctx context.Context, handle, regionID string) (*medusa.Product, error)
}

type LocalCart interface {
	Items() []localcart.Item
	RemoveItem(ctx context.Context, index int) error
}

type RemoteCart interface {
	AddItem(ctx context.Context, variantID string, quantity int, metadata map[string]any) error
}

// Service merges local carts into remote carts.
type Service interface {
	MergeLocalCart(ctx context.Context, local LocalCart, remote RemoteCart) (*MergeReport, error)
}

type service struct {
	products productResolver
	regionID string
	logg     *logger.Logger
}

// NewService builds the merge service. regionID scopes variant lookups.
func NewService(products productResolver, regionID string, logg *logger.Logger) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product resolver required")
	}
	return &service{products: products, regionID: regionID, logg: logg}, nil
}

type MergedItem struct {
	ProductSlug string `json:"productSlug"`
	VariantID   string `json:"variantId"`
	Quantity    int    `json:"quantity"`
}

type FailedItem struct {
	ProductSlug string `json:"productSlug"`
	Index       int    `json:"index"`
	Reason      string `json:"reason"`
}

// MergeReport lists what moved to the remote cart and what stayed local.
type MergeReport struct {
	Merged []MergedItem `json:"merged"`
	Failed []FailedItem `json:"failed"`
}

// MergeLocalCart adds every local item to the remote cart. Merged items are
// removed from the local cart; items that fail stay and are reported. The
// returned error combines the individual failures.
func (s *service) MergeLocalCart(ctx context.Context, local LocalCart, remote RemoteCart) (*MergeReport, error) {
	report := &MergeReport{Merged: []MergedItem{}, Failed: []FailedItem{}}
	items := local.Items()
	if len(items) == 0 {
		return report, nil
	}

	var errs error
	merged := make([]int, 0, len(items))
	for idx, item := range items {
		variantID, err := s.resolveVariant(ctx, item)
		if err == nil {
			err = remote.AddItem(ctx, variantID, item.Quantity, lineItemMetadata(item))
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", item.ProductSlug, err))
			report.Failed = append(report.Failed, FailedItem{ProductSlug: item.ProductSlug, Index: idx, Reason: medusa.ErrorMessage(err)})
			continue
		}
		merged = append(merged, idx)
		report.Merged = append(report.Merged, MergedItem{ProductSlug: item.ProductSlug, VariantID: variantID, Quantity: item.Quantity})
	}

	sort.Sort(sort.Reverse(sort.IntSlice(merged)))
	for _, idx := range merged {
		if err := local.RemoveItem(ctx, idx); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	if errs != nil && s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"merged": len(report.Merged),
			"failed": len(report.Failed),
		})
		s.logg.Warn(logCtx, "checkout.merge_partial")
	}
	return report, errs
}

func (s *service) resolveVariant(ctx context.Context, item localcart.Item) (string, error) {
	product, err := s.products.ProductByHandle(ctx, item.ProductSlug, s.regionID)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", pkgerrors.Newf(pkgerrors.CodeNotFound, "product %q not found", item.ProductSlug)
	}
	variant := matchVariant(product.Variants, item)
	if variant == nil {
		return "", pkgerrors.Newf(pkgerrors.CodeNotFound, "no variant of %q matches the selected options", item.ProductSlug)
	}
	return variant.ID, nil
}

// matchVariant picks the first variant carrying the item's size and color
// among its option values. Without a size or color the first variant wins.
func matchVariant(variants []medusa.Variant, item localcart.Item) *medusa.Variant {
	for i := range variants {
		v := &variants[i]
		if item.Size != nil && !hasOptionValue(v, *item.Size) {
			continue
		}
		if item.Color != nil && !hasOptionValue(v, item.Color.ColorName, item.Color.HexCode) {
			continue
		}
		return v
	}
	return nil
}

func hasOptionValue(v *medusa.Variant, candidates ...string) bool {
	for _, opt := range v.Options {
		for _, c := range candidates {
			if c != "" && strings.EqualFold(strings.TrimSpace(opt.Value), strings.TrimSpace(c)) {
				return true
			}
		}
	}
	return false
}

func lineItemMetadata(item localcart.Item) map[string]any {
	meta := map[string]any{metaSourceSlug: item.ProductSlug}
	if item.Branding != nil {
		meta[metaBrandingName] = item.Branding.Name
		meta[metaBrandingNumber] = item.Branding.Number
	}
	return meta
}
