package controllers

import (
	"net/http"

	"github.com/shopsmart-labs/shopsmart-backend/api/responses"
	"github.com/shopsmart-labs/shopsmart-backend/api/validators"
	"github.com/shopsmart-labs/shopsmart-backend/internal/delivery"
	pkgerrors "github.com/shopsmart-labs/shopsmart-backend/pkg/errors"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/logger"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/types"
)

// DeliveryRequest is the payload for delivery optimization.
type DeliveryRequest struct {
	Products    []types.Product           `json:"products" validate:"required,min=1"`
	Address     DeliveryAddress           `json:"address" validate:"required"`
	Preferences types.DeliveryPreferences `json:"preferences"`
}

// DeliveryAddress mirrors types.Address with validation tags on the fields a
// destination must carry.
type DeliveryAddress struct {
	Line1      string   `json:"line1" validate:"required"`
	Line2      *string  `json:"line2,omitempty"`
	City       string   `json:"city" validate:"required"`
	State      string   `json:"state" validate:"required"`
	PostalCode string   `json:"postal_code" validate:"required"`
	Country    string   `json:"country"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
}

func (a DeliveryAddress) toAddress() types.Address {
	country := a.Country
	if country == "" {
		country = "US"
	}
	return types.Address{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    country,
		Lat:        a.Lat,
		Lng:        a.Lng,
	}
}

// OptimizeDelivery plans warehouse selection and a delivery method for the
// chosen products.
func OptimizeDelivery(svc delivery.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "delivery service unavailable"))
			return
		}

		var payload DeliveryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result := svc.Optimize(r.Context(), payload.Products, payload.Address.toAddress(), payload.Preferences)
		responses.WriteSuccess(w, result)
	}
}
