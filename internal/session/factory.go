// Package session assembles the per-visitor stores for one request.
package session

import (
	"errors"
	"strings"
	"time"

	"github.com/angelmondragon/hubs-storefront/internal/cart"
	"github.com/angelmondragon/hubs-storefront/internal/customer"
	"github.com/angelmondragon/hubs-storefront/internal/localcart"
	authsession "github.com/angelmondragon/hubs-storefront/pkg/auth/session"
	"github.com/angelmondragon/hubs-storefront/pkg/kv"
	"github.com/angelmondragon/hubs-storefront/pkg/logger"
)

// Commerce is the commerce API surface the session stores need.
type Commerce interface {
	cart.Commerce
	customer.Auth
}

// Bundle holds the stores of one session. Stores are not initialized; callers
// initialize the ones they use.
type Bundle struct {
	SessionID string
	Store     kv.Store
	LocalCart *localcart.Store
	Cart      *cart.Store
	Customer  *customer.Store
}

type FactoryParams struct {
	Store    kv.Store
	Commerce Commerce
	TTL      time.Duration
	Cart     cart.Config
	Customer customer.Config
	Logger   *logger.Logger
}

// Factory builds bundles whose durable keys live under the session namespace.
type Factory struct {
	params FactoryParams
}

func NewFactory(params FactoryParams) (*Factory, error) {
	if params.Store == nil {
		return nil, errors.New("kv store required")
	}
	if params.Commerce == nil {
		return nil, errors.New("commerce client required")
	}
	return &Factory{params: params}, nil
}

func (f *Factory) ForSession(sessionID string) (*Bundle, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, authsession.ErrInvalidSession
	}

	store := kv.Scoped(f.params.Store, authsession.Key(sessionID))
	if f.params.TTL > 0 {
		store = kv.WithDefaultTTL(store, f.params.TTL)
	}

	local, err := localcart.NewStore(store, f.params.Logger)
	if err != nil {
		return nil, err
	}
	remote, err := cart.NewStore(f.params.Commerce, store, f.params.Cart, f.params.Logger)
	if err != nil {
		return nil, err
	}
	cust, err := customer.NewStore(f.params.Commerce, store, f.params.Customer, f.params.Logger)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		SessionID: sessionID,
		Store:     store,
		LocalCart: local,
		Cart:      remote,
		Customer:  cust,
	}, nil
}

// DataKeys lists the durable keys written by the session stores.
func DataKeys() []string {
	return []string{localcart.StorageKey, cart.StorageKey, customer.TokenKey, customer.PendingPhoneKey}
}
