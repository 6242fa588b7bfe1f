package controllers

import (
	"net/http"

	"github.com/angelmondragon/hubs-storefront/api/responses"
	"github.com/angelmondragon/hubs-storefront/api/validators"
	"github.com/angelmondragon/hubs-storefront/internal/customer"
	"github.com/angelmondragon/hubs-storefront/pkg/logger"
)

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required,max=254"`
	Password   string `json:"password" validate:"required,max=128"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	OTP   string `json:"otp" validate:"required,numeric,min=4,max=8"`
}

// customerHandler runs fn against the session's customer store and renders
// the resulting state.
func customerHandler(logg *logger.Logger, fn func(r *http.Request, store *customer.Store) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bundle, err := bundleFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := fn(r, bundle.Customer); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bundle.Customer.State())
	}
}

// AuthLogin accepts an email or a phone number as identifier.
func AuthLogin(logg *logger.Logger) http.HandlerFunc {
	return customerHandler(logg, func(r *http.Request, store *customer.Store) error {
		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return err
		}
		return store.Login(r.Context(), body.Identifier, body.Password)
	})
}

// AuthRegister creates the customer and leaves the phone pending OTP
// verification.
func AuthRegister(logg *logger.Logger) http.HandlerFunc {
	return customerHandler(logg, func(r *http.Request, store *customer.Store) error {
		var body customer.RegisterInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return err
		}
		return store.Register(r.Context(), body)
	})
}

func AuthVerifyOTP(logg *logger.Logger) http.HandlerFunc {
	return customerHandler(logg, func(r *http.Request, store *customer.Store) error {
		var body verifyOTPRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return err
		}
		return store.VerifyOTP(r.Context(), body.Phone, body.OTP)
	})
}

func AuthLogout(logg *logger.Logger) http.HandlerFunc {
	return customerHandler(logg, func(r *http.Request, store *customer.Store) error {
		return store.Logout(r.Context())
	})
}

// AuthMe returns the current customer state; anonymous sessions get a nil
// customer rather than an error.
func AuthMe(logg *logger.Logger) http.HandlerFunc {
	return customerHandler(logg, func(r *http.Request, store *customer.Store) error {
		store.Initialize(r.Context())
		return nil
	})
}
