package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/hubs-storefront/api/responses"
	"github.com/angelmondragon/hubs-storefront/api/validators"
	"github.com/angelmondragon/hubs-storefront/internal/localcart"
	pkgerrors "github.com/angelmondragon/hubs-storefront/pkg/errors"
	"github.com/angelmondragon/hubs-storefront/pkg/logger"
)

type localCartResponse struct {
	Items     []localcart.Item `json:"items"`
	ItemCount int              `json:"itemCount"`
	Total     decimal.Decimal  `json:"total"`
}

func newLocalCartResponse(store *localcart.Store) localCartResponse {
	return localCartResponse{Items: store.Items(), ItemCount: store.ItemCount(), Total: store.Total()}
}

type addLocalItemRequest struct {
	Item     localcart.Item `json:"item"`
	Quantity int            `json:"quantity" validate:"gte=0,lte=99"`
}

type updateLocalItemRequest struct {
	Quantity int `json:"quantity" validate:"lte=99"`
}

// localCartHandler loads the session's local cart and hands it to fn.
func localCartHandler(logg *logger.Logger, fn func(w http.ResponseWriter, r *http.Request, store *localcart.Store) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bundle, err := bundleFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store := bundle.LocalCart
		store.Initialize(r.Context())
		if err := fn(w, r, store); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newLocalCartResponse(store))
	}
}

func LocalCartGet(logg *logger.Logger) http.HandlerFunc {
	return localCartHandler(logg, func(http.ResponseWriter, *http.Request, *localcart.Store) error {
		return nil
	})
}

// LocalCartAddItem merges the item into a matching variant or appends it.
func LocalCartAddItem(logg *logger.Logger) http.HandlerFunc {
	return localCartHandler(logg, func(w http.ResponseWriter, r *http.Request, store *localcart.Store) error {
		var body addLocalItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return err
		}
		if body.Item.Price.IsNegative() || (body.Item.DiscountPrice.Valid && body.Item.DiscountPrice.Decimal.IsNegative()) {
			return pkgerrors.New(pkgerrors.CodeValidation, "prices must not be negative").WithDetails(map[string]string{"item.price": "must not be negative"})
		}
		return store.AddItem(r.Context(), body.Item, body.Quantity)
	})
}

// LocalCartUpdateItem sets the quantity of the item at {index}; zero removes it.
func LocalCartUpdateItem(logg *logger.Logger) http.HandlerFunc {
	return localCartHandler(logg, func(w http.ResponseWriter, r *http.Request, store *localcart.Store) error {
		index, err := validators.ParseURLInt(r, "index")
		if err != nil {
			return err
		}
		var body updateLocalItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return err
		}
		return store.UpdateQuantity(r.Context(), index, body.Quantity)
	})
}

func LocalCartRemoveItem(logg *logger.Logger) http.HandlerFunc {
	return localCartHandler(logg, func(w http.ResponseWriter, r *http.Request, store *localcart.Store) error {
		index, err := validators.ParseURLInt(r, "index")
		if err != nil {
			return err
		}
		return store.RemoveItem(r.Context(), index)
	})
}

func LocalCartClear(logg *logger.Logger) http.HandlerFunc {
	return localCartHandler(logg, func(w http.ResponseWriter, r *http.Request, store *localcart.Store) error {
		return store.Clear(r.Context())
	})
}
