package controllers

import (
	"net/http"

	"github.com/shopsmart-labs/shopsmart-backend/api/responses"
	"github.com/shopsmart-labs/shopsmart-backend/api/validators"
	"github.com/shopsmart-labs/shopsmart-backend/internal/intent"
	"github.com/shopsmart-labs/shopsmart-backend/internal/ranking"
	"github.com/shopsmart-labs/shopsmart-backend/internal/search"
	pkgerrors "github.com/shopsmart-labs/shopsmart-backend/pkg/errors"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/logger"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/types"
)

// SearchRequest is the payload for a product search.
type SearchRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

// SearchResponse is the composed output of the search and ranking stages.
type SearchResponse struct {
	Intent       types.Intent    `json:"intent"`
	Products     []types.Product `json:"products"`
	Query        string          `json:"query"`
	Suggestions  []string        `json:"suggestions,omitempty"`
	TotalResults int             `json:"total_results"`
	SearchTimeMS int64           `json:"search_time_ms"`
	BestMatch    *types.Product  `json:"best_match,omitempty"`
}

// Search runs the full discovery pipeline: intent resolution, candidate
// search, then best-match ranking.
func Search(searchSvc search.Service, rankingSvc ranking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if searchSvc == nil || rankingSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "search service unavailable"))
			return
		}

		var payload SearchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		text := validators.SanitizeString(payload.Text, maxQueryLength)
		if text == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "text must not be blank"))
			return
		}

		resolved := intent.Resolve(text)
		found := searchSvc.Search(r.Context(), resolved)
		ranked := rankingSvc.Rank(r.Context(), resolved, found.Products)

		responses.WriteSuccess(w, SearchResponse{
			Intent:       resolved,
			Products:     ranked.Products,
			Query:        found.Query,
			Suggestions:  found.Suggestions,
			TotalResults: len(ranked.Products),
			SearchTimeMS: found.SearchTimeMS,
			BestMatch:    ranked.BestMatch,
		})
	}
}
