package controllers

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/hubs-storefront/api/responses"
	"github.com/angelmondragon/hubs-storefront/api/validators"
	"github.com/angelmondragon/hubs-storefront/internal/cart"
	pkgerrors "github.com/angelmondragon/hubs-storefront/pkg/errors"
	"github.com/angelmondragon/hubs-storefront/pkg/logger"
	"github.com/angelmondragon/hubs-storefront/pkg/medusa"
)

const maxIDLen = 128

type cartResponse struct {
	cart.State
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Total     decimal.Decimal `json:"total"`
}

func newCartResponse(store *cart.Store) cartResponse {
	return cartResponse{
		State:     store.State(),
		ItemCount: store.ItemCount(),
		Subtotal:  store.Subtotal(),
		Total:     store.Total(),
	}
}

type createCartRequest struct {
	RegionID string `json:"region_id" validate:"max=128"`
}

type addLineItemRequest struct {
	VariantID string         `json:"variant_id" validate:"required,max=128"`
	Quantity  int            `json:"quantity" validate:"gte=1,lte=99"`
	Metadata  map[string]any `json:"metadata"`
}

type updateLineItemRequest struct {
	Quantity int `json:"quantity" validate:"gte=1,lte=99"`
}

type updateEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type addShippingMethodRequest struct {
	OptionID string         `json:"option_id" validate:"required,max=128"`
	Data     map[string]any `json:"data"`
}

type completeCartResponse struct {
	Order *medusa.Order `json:"order"`
	Cart  cartResponse  `json:"cart"`
}

// loadCart restores the session cart so mutations have a target.
func loadCart(ctx context.Context, store *cart.Store) error {
	if err := store.Initialize(ctx); err != nil && store.Cart() == nil {
		return err
	}
	return nil
}

// cartHandler resolves and loads the session cart, runs fn and renders the
// resulting cart state.
func cartHandler(logg *logger.Logger, fn func(r *http.Request, store *cart.Store) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bundle, err := bundleFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store := bundle.Cart
		if err := loadCart(r.Context(), store); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if fn != nil {
			if err := fn(r, store); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		responses.WriteSuccess(w, newCartResponse(store))
	}
}

// CartGet returns the session cart, creating one when none exists.
func CartGet(logg *logger.Logger) http.HandlerFunc {
	return cartHandler(logg, nil)
}

// CartCreate replaces the session cart with a new one.
func CartCreate(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bundle, err := bundleFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body createCartRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		if err := bundle.Cart.Create(r.Context(), body.RegionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCartResponse(bundle.Cart))
	}
}

func CartAddLineItem(logg *logger.Logger) http.HandlerFunc {
	return cartHandler(logg, func(r *http.Request, store *cart.Store) error {
		var body addLineItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return err
		}
		return store.AddItem(r.Context(), body.VariantID, body.Quantity, body.Metadata)
	})
}

func CartUpdateLineItem(logg *logger.Logger) http.HandlerFunc {
	return cartHandler(logg, func(r *http.Request, store *cart.Store) error {
		lineItemID, err := validators.RequireURLParam(r, "lineItemId", maxIDLen)
		if err != nil {
			return err
		}
		var body updateLineItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return err
		}
		return store.UpdateItem(r.Context(), lineItemID, body.Quantity)
	})
}

func CartRemoveLineItem(logg *logger.Logger) http.HandlerFunc {
	return cartHandler(logg, func(r *http.Request, store *cart.Store) error {
		lineItemID, err := validators.RequireURLParam(r, "lineItemId", maxIDLen)
		if err != nil {
			return err
		}
		return store.RemoveItem(r.Context(), lineItemID)
	})
}

func CartUpdateEmail(logg *logger.Logger) http.HandlerFunc {
	return cartHandler(logg, func(r *http.Request, store *cart.Store) error {
		var body updateEmailRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return err
		}
		return store.UpdateEmail(r.Context(), body.Email)
	})
}

func CartSetShippingAddress(logg *logger.Logger) http.HandlerFunc {
	return cartHandler(logg, func(r *http.Request, store *cart.Store) error {
		var body medusa.Address
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return err
		}
		return store.SetShippingAddress(r.Context(), body)
	})
}

func CartAddShippingMethod(logg *logger.Logger) http.HandlerFunc {
	return cartHandler(logg, func(r *http.Request, store *cart.Store) error {
		var body addShippingMethodRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return err
		}
		return store.AddShippingMethod(r.Context(), body.OptionID, body.Data)
	})
}

// CartCreatePaymentSession always fails: payments are not enabled.
func CartCreatePaymentSession(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bundle, err := bundleFrom(r)
		if err == nil {
			err = bundle.Cart.CreatePaymentSession(r.Context())
		}
		if err == nil {
			err = cart.ErrPaymentsUnsupported
		}
		responses.WriteError(r.Context(), logg, w, err)
	}
}

// CartComplete places the order. A cart handed back by the backend is a
// 422 carrying the backend message.
func CartComplete(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bundle, err := bundleFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store := bundle.Cart
		if err := loadCart(r.Context(), store); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if current := store.Cart(); current == nil || len(current.Items) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty"))
			return
		}

		order, err := store.Complete(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if order != nil && logg != nil {
			logg.Info(logg.WithField(r.Context(), "order_id", order.ID), "cart.completed")
		}
		responses.WriteSuccess(w, completeCartResponse{Order: order, Cart: newCartResponse(store)})
	}
}
