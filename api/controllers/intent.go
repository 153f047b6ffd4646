package controllers

import (
	"net/http"

	"github.com/shopsmart-labs/shopsmart-backend/api/responses"
	"github.com/shopsmart-labs/shopsmart-backend/api/validators"
	"github.com/shopsmart-labs/shopsmart-backend/internal/intent"
	pkgerrors "github.com/shopsmart-labs/shopsmart-backend/pkg/errors"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/logger"
)

// maxQueryLength bounds free-text input before it reaches the pipeline.
const maxQueryLength = 500

// IntentRequest is the payload for intent classification.
type IntentRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

// ResolveIntent classifies a free-text shopping request.
func ResolveIntent(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload IntentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		text := validators.SanitizeString(payload.Text, maxQueryLength)
		if text == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "text must not be blank"))
			return
		}

		responses.WriteSuccess(w, intent.Resolve(text))
	}
}
