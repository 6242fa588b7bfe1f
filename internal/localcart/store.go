// Package localcart keeps the cart a visitor builds before a commerce cart
// exists. Items live in the session's durable storage.
package localcart

import (
	"context"
	"errors"

	pkgerrors "github.com/angelmondragon/hubs-storefront/pkg/errors"
	"github.com/angelmondragon/hubs-storefront/pkg/kv"
	"github.com/angelmondragon/hubs-storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

// StorageKey is the durable key holding the serialized item list.
const StorageKey = "local_cart_items"

// Store is the local cart of one session. It is not safe for concurrent use.
type Store struct {
	kv          kv.Store
	logg        *logger.Logger
	items       []Item
	initialized bool
}

// NewStore builds a store over session-scoped durable storage.
func NewStore(store kv.Store, logg *logger.Logger) (*Store, error) {
	if store == nil {
		return nil, errors.New("kv store required")
	}
	return &Store{kv: store, logg: logg, items: []Item{}}, nil
}

// Initialize loads the persisted items once. Missing or unreadable data
// leaves the cart empty.
func (s *Store) Initialize(ctx context.Context) {
	if s.initialized {
		return
	}
	s.initialized = true

	raw, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logError(ctx, "localcart.load_failed", err)
		}
		s.items = []Item{}
		return
	}

	items, err := DecodeItems(raw)
	if err != nil {
		s.logError(ctx, "localcart.decode_failed", err)
	}
	s.items = items
}

// Items returns a copy of the current items.
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// AddItem merges item into an existing entry with the same variant or
// appends it. A quantity below one counts as one.
func (s *Store) AddItem(ctx context.Context, item Item, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	for i := range s.items {
		if s.items[i].SameVariant(item) {
			s.items[i].Quantity += quantity
			return s.persist(ctx)
		}
	}
	item.Quantity = quantity
	s.items = append(s.items, item)
	return s.persist(ctx)
}

// RemoveItem deletes the entry at index.
func (s *Store) RemoveItem(ctx context.Context, index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.items = append(s.items[:index:index], s.items[index+1:]...)
	return s.persist(ctx)
}

// UpdateQuantity sets the quantity at index; zero or less removes the entry.
func (s *Store) UpdateQuantity(ctx context.Context, index, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, index)
	}
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.items[index].Quantity = quantity
	return s.persist(ctx)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.items = []Item{}
	return s.persist(ctx)
}

// ItemCount is the sum of quantities.
func (s *Store) ItemCount() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Total is the sum of line totals using discount prices where present.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.items) {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "item index %d out of range", index)
	}
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	raw, err := encodeItems(s.items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode local cart")
	}
	if err := s.kv.Set(ctx, StorageKey, raw, 0); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist local cart")
	}
	return nil
}

func (s *Store) logError(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Error(ctx, msg, err)
}
