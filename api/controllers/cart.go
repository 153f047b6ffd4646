package controllers

import (
	"net/http"

	"github.com/shopsmart-labs/shopsmart-backend/api/responses"
	"github.com/shopsmart-labs/shopsmart-backend/api/validators"
	"github.com/shopsmart-labs/shopsmart-backend/internal/cartopt"
	pkgerrors "github.com/shopsmart-labs/shopsmart-backend/pkg/errors"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/logger"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/types"
)

// CartOptimizeRequest is the payload for cart substitution analysis.
type CartOptimizeRequest struct {
	Items       []types.CartItem      `json:"items" validate:"required,min=1,dive"`
	Preferences types.CartPreferences `json:"preferences"`
}

// OptimizeCart evaluates rollback, store-brand, and bundle savings for the
// submitted cart.
func OptimizeCart(svc cartopt.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload CartOptimizeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		for _, item := range payload.Items {
			if item.Quantity < 1 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be at least 1"))
				return
			}
		}

		result := svc.Optimize(r.Context(), payload.Items, payload.Preferences)
		responses.WriteSuccess(w, result)
	}
}
