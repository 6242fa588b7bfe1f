package controllers

import (
	"net/http"

	"github.com/angelmondragon/hubs-storefront/api/responses"
	"github.com/angelmondragon/hubs-storefront/internal/checkout"
	"github.com/angelmondragon/hubs-storefront/pkg/logger"
)

type mergeLocalCartResponse struct {
	Report    *checkout.MergeReport `json:"report"`
	Cart      cartResponse          `json:"cart"`
	LocalCart localCartResponse     `json:"localCart"`
}

// CheckoutMergeLocalCart moves the local cart into the commerce cart before
// checkout. Partial merges succeed; the report lists the items that stayed
// local. The request fails only when nothing could be merged.
func CheckoutMergeLocalCart(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bundle, err := bundleFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		bundle.LocalCart.Initialize(r.Context())

		report, err := svc.MergeLocalCart(r.Context(), bundle.LocalCart, bundle.Cart)
		if err != nil && (report == nil || len(report.Merged) == 0) {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, mergeLocalCartResponse{
			Report:    report,
			Cart:      newCartResponse(bundle.Cart),
			LocalCart: newLocalCartResponse(bundle.LocalCart),
		})
	}
}
