// Package cart mirrors the session's commerce cart. The cart value is
// always the last one returned by the backend; nothing is updated ahead of a
// response.
package cart

import (
	"context"
	"errors"
	"strings"

	pkgerrors "github.com/angelmondragon/hubs-storefront/pkg/errors"
	"github.com/angelmondragon/hubs-storefront/pkg/kv"
	"github.com/angelmondragon/hubs-storefront/pkg/logger"
	"github.com/angelmondragon/hubs-storefront/pkg/medusa"
	"github.com/angelmondragon/hubs-storefront/pkg/money"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// StorageKey is the durable key holding the commerce cart id.
const StorageKey = "medusa_cart_id"

const (
	msgInitFailed       = "Failed to initialize cart"
	msgCompletionFailed = "Failed to complete cart"
	msgPaymentsDisabled = "Payment sessions are not supported"
)

var (
	ErrNoCart              = pkgerrors.New(pkgerrors.CodeStateConflict, "no cart available")
	ErrCompletionFailed    = pkgerrors.New(pkgerrors.CodeStateConflict, "cart completion failed")
	ErrPaymentsUnsupported = pkgerrors.New(pkgerrors.CodeUnsupported, "payment sessions are not supported")
)

// Commerce is the slice of the commerce API used by the cart store.
type Commerce interface {
	CreateCart(ctx context.Context, in medusa.CreateCartRequest) (*medusa.Cart, error)
	RetrieveCart(ctx context.Context, cartID string) (*medusa.Cart, error)
	UpdateCart(ctx context.Context, cartID string, in medusa.UpdateCartRequest) (*medusa.Cart, error)
	AddLineItem(ctx context.Context, cartID string, in medusa.AddLineItemRequest) (*medusa.Cart, error)
	UpdateLineItem(ctx context.Context, cartID, lineItemID string, in medusa.UpdateLineItemRequest) (*medusa.Cart, error)
	DeleteLineItem(ctx context.Context, cartID, lineItemID string) (*medusa.LineItemDeleteResult, error)
	AddShippingMethod(ctx context.Context, cartID string, in medusa.AddShippingMethodRequest) (*medusa.Cart, error)
	CompleteCart(ctx context.Context, cartID string) (*medusa.CompleteResult, error)
}

type Config struct {
	DefaultRegionID string
}

// State is a read-only view of the store.
type State struct {
	Cart      *medusa.Cart `json:"cart"`
	Loading   bool         `json:"loading"`
	LastError string       `json:"lastError,omitempty"`
}

// Store holds one session's remote cart. It is not safe for concurrent use.
type Store struct {
	client Commerce
	kv     kv.Store
	cfg    Config
	logg   *logger.Logger

	cart      *medusa.Cart
	loading   bool
	lastError string
}

func NewStore(client Commerce, store kv.Store, cfg Config, logg *logger.Logger) (*Store, error) {
	if client == nil {
		return nil, errors.New("commerce client required")
	}
	if store == nil {
		return nil, errors.New("kv store required")
	}
	return &Store{client: client, kv: store, cfg: cfg, logg: logg}, nil
}

func (s *Store) Cart() *medusa.Cart { return s.cart }

func (s *Store) Loading() bool { return s.loading }

func (s *Store) LastError() string { return s.lastError }

func (s *Store) State() State {
	return State{Cart: s.cart, Loading: s.loading, LastError: s.lastError}
}

// Initialize restores the persisted cart, creating a new one when there is
// none or it can no longer be retrieved.
func (s *Store) Initialize(ctx context.Context) error {
	cartID, err := s.kv.Get(ctx, StorageKey)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		s.warn(ctx, "cart.load_id_failed", err)
	}
	cartID = strings.TrimSpace(cartID)

	if cartID != "" {
		s.loading = true
		cart, retrieveErr := s.client.RetrieveCart(ctx, cartID)
		s.loading = false
		if retrieveErr == nil {
			s.cart = cart
			return nil
		}
		logCtx := ctx
		if s.logg != nil {
			logCtx = s.logg.WithCartID(ctx, cartID)
		}
		s.warn(logCtx, "cart.retrieve_failed", retrieveErr)
	}

	if err := s.Create(ctx, ""); err != nil {
		s.lastError = msgInitFailed
		return err
	}
	return nil
}

// Create starts a new cart in regionID, or the default region when empty.
func (s *Store) Create(ctx context.Context, regionID string) error {
	if regionID == "" {
		regionID = s.cfg.DefaultRegionID
	}
	s.begin()
	defer s.end()

	cart, err := s.client.CreateCart(ctx, medusa.CreateCartRequest{RegionID: regionID})
	if err != nil {
		return s.fail(ctx, "cart.create_failed", err)
	}
	s.cart = cart
	if err := s.kv.Set(ctx, StorageKey, cart.ID, 0); err != nil {
		return s.fail(ctx, "cart.persist_id_failed", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist cart id"))
	}
	return nil
}

// AddItem adds a variant, initializing the cart first when needed.
func (s *Store) AddItem(ctx context.Context, variantID string, quantity int, metadata map[string]any) error {
	var initErr error
	if s.cart == nil {
		initErr = s.Initialize(ctx)
	}
	if s.cart == nil {
		return multierr.Append(ErrNoCart, initErr)
	}
	return s.mutate(ctx, "cart.add_item_failed", func(cartID string) (*medusa.Cart, error) {
		return s.client.AddLineItem(ctx, cartID, medusa.AddLineItemRequest{
			VariantID: variantID,
			Quantity:  quantity,
			Metadata:  metadata,
		})
	})
}

func (s *Store) UpdateItem(ctx context.Context, lineItemID string, quantity int) error {
	return s.mutate(ctx, "cart.update_item_failed", func(cartID string) (*medusa.Cart, error) {
		return s.client.UpdateLineItem(ctx, cartID, lineItemID, medusa.UpdateLineItemRequest{Quantity: quantity})
	})
}

// RemoveItem deletes a line item. The backend returns the updated cart as
// the deletion's parent; a missing parent leaves no cart loaded.
func (s *Store) RemoveItem(ctx context.Context, lineItemID string) error {
	return s.mutate(ctx, "cart.remove_item_failed", func(cartID string) (*medusa.Cart, error) {
		res, err := s.client.DeleteLineItem(ctx, cartID, lineItemID)
		if err != nil {
			return nil, err
		}
		return res.Parent, nil
	})
}

func (s *Store) UpdateEmail(ctx context.Context, email string) error {
	return s.mutate(ctx, "cart.update_email_failed", func(cartID string) (*medusa.Cart, error) {
		return s.client.UpdateCart(ctx, cartID, medusa.UpdateCartRequest{Email: email})
	})
}

func (s *Store) SetShippingAddress(ctx context.Context, address medusa.Address) error {
	return s.mutate(ctx, "cart.set_address_failed", func(cartID string) (*medusa.Cart, error) {
		return s.client.UpdateCart(ctx, cartID, medusa.UpdateCartRequest{ShippingAddress: &address})
	})
}

func (s *Store) AddShippingMethod(ctx context.Context, optionID string, data map[string]any) error {
	return s.mutate(ctx, "cart.add_shipping_failed", func(cartID string) (*medusa.Cart, error) {
		return s.client.AddShippingMethod(ctx, cartID, medusa.AddShippingMethodRequest{OptionID: optionID, Data: data})
	})
}

// CreatePaymentSession is not supported by the storefront. Without a cart
// there is nothing to pay for and it does nothing.
func (s *Store) CreatePaymentSession(ctx context.Context) error {
	if s.cart == nil {
		return nil
	}
	s.lastError = msgPaymentsDisabled
	return ErrPaymentsUnsupported
}

// Complete places the order. On success the cart is cleared and the order
// returned. When the backend hands the cart back instead, the cart is
// replaced, lastError carries the backend message and ErrCompletionFailed is
// returned. Any other response yields a nil order and no error.
func (s *Store) Complete(ctx context.Context) (*medusa.Order, error) {
	if s.cart == nil {
		return nil, nil
	}
	s.begin()
	defer s.end()

	res, err := s.client.CompleteCart(ctx, s.cart.ID)
	if err != nil {
		return nil, s.fail(ctx, "cart.complete_failed", err)
	}
	if res == nil {
		return nil, nil
	}

	switch {
	case res.Type == medusa.CompletionOrder && res.Order != nil:
		if err := s.ClearCart(ctx); err != nil {
			s.warn(ctx, "cart.clear_failed", err)
		}
		return res.Order, nil
	case res.Type == medusa.CompletionCart && res.Cart != nil:
		s.cart = res.Cart
		msg := msgCompletionFailed
		if res.Error != nil && res.Error.Message != "" {
			msg = res.Error.Message
		}
		s.lastError = msg
		return nil, pkgerrors.Wrap(pkgerrors.CodeStateConflict, ErrCompletionFailed, msg)
	default:
		return nil, nil
	}
}

// ClearCart forgets the cart and its persisted id.
func (s *Store) ClearCart(ctx context.Context) error {
	s.cart = nil
	s.lastError = ""
	if err := s.kv.Del(ctx, StorageKey); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart id")
	}
	return nil
}

func (s *Store) ItemCount() int {
	if s.cart == nil {
		return 0
	}
	count := 0
	for _, item := range s.cart.Items {
		count += item.Quantity
	}
	return count
}

// Total is the cart total in major units.
func (s *Store) Total() decimal.Decimal {
	if s.cart == nil {
		return decimal.Zero
	}
	return money.FromMinor(s.cart.Total)
}

// Subtotal is the cart subtotal in major units.
func (s *Store) Subtotal() decimal.Decimal {
	if s.cart == nil {
		return decimal.Zero
	}
	return money.FromMinor(s.cart.Subtotal)
}

func (s *Store) mutate(ctx context.Context, event string, fn func(cartID string) (*medusa.Cart, error)) error {
	if s.cart == nil {
		return nil
	}
	s.begin()
	defer s.end()

	cart, err := fn(s.cart.ID)
	if err != nil {
		return s.fail(ctx, event, err)
	}
	s.cart = cart
	return nil
}

func (s *Store) begin() {
	s.loading = true
	s.lastError = ""
}

func (s *Store) end() {
	s.loading = false
}

func (s *Store) fail(ctx context.Context, event string, err error) error {
	s.lastError = medusa.ErrorMessage(err)
	s.warn(ctx, event, err)
	return err
}

func (s *Store) warn(ctx context.Context, event string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), event)
}
