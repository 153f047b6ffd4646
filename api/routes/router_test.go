package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/shopsmart-labs/shopsmart-backend/internal/cartopt"
	"github.com/shopsmart-labs/shopsmart-backend/internal/delivery"
	"github.com/shopsmart-labs/shopsmart-backend/internal/ranking"
	"github.com/shopsmart-labs/shopsmart-backend/internal/search"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/config"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/logger"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/metrics"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/random"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
	registry := prometheus.NewRegistry()
	pipelineMetrics := metrics.NewPipelineMetrics(registry)

	searchService, err := search.NewService(search.ServiceParams{
		Logger:  logg,
		Metrics: pipelineMetrics,
		Random:  random.NewSeeded(1),
	})
	if err != nil {
		t.Fatalf("search.NewService: %v", err)
	}
	rankingService, err := ranking.NewService(ranking.ServiceParams{Logger: logg, Metrics: pipelineMetrics})
	if err != nil {
		t.Fatalf("ranking.NewService: %v", err)
	}
	deliveryService, err := delivery.NewService(delivery.ServiceParams{Logger: logg, Metrics: pipelineMetrics})
	if err != nil {
		t.Fatalf("delivery.NewService: %v", err)
	}
	cartService, err := cartopt.NewService(cartopt.ServiceParams{Logger: logg, Metrics: pipelineMetrics})
	if err != nil {
		t.Fatalf("cartopt.NewService: %v", err)
	}

	cfg := &config.Config{}
	cfg.App.Env = "test"

	return NewRouter(cfg, logg, nil, registry, searchService, rankingService, deliveryService, cartService)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready", "/healthz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s returned %d", path, rec.Code)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics returned %d", rec.Code)
	}
}

func TestIntentEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/intent", `{"text":"add 2 milk to my cart"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("intent returned %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			Type     string `json:"type"`
			Entities struct {
				Product  string `json:"product"`
				Quantity int    `json:"quantity"`
			} `json:"entities"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Type != "add_to_cart" || envelope.Data.Entities.Quantity != 2 {
		t.Fatalf("unexpected intent: %+v", envelope.Data)
	}
}

func TestIntentEndpointRejectsBlankText(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/intent", `{"text":"   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSearchEndpointServesFallback(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/search", `{"text":"find milk"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("search returned %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			Products  []struct{ Name string } `json:"products"`
			BestMatch *struct{ Name string }  `json:"best_match"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Products) == 0 || envelope.Data.BestMatch == nil {
		t.Fatalf("expected fallback products and a best match: %s", rec.Body.String())
	}
}

func TestDeliveryEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"products": [{"id":"p1","name":"Milk","price":"3.48","in_stock":true,"quantity":3}],
		"address": {"line1":"500 Elm St","city":"Dallas","state":"TX","postal_code":"75201"},
		"preferences": {"priority_speed":true}
	}`
	rec := doJSON(t, router, http.MethodPost, "/api/v1/delivery/optimize", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("delivery returned %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			TrackingID          string `json:"tracking_id"`
			RecommendedDelivery struct {
				Type string `json:"type"`
			} `json:"recommended_delivery"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TrackingID == "" || envelope.Data.RecommendedDelivery.Type == "" {
		t.Fatalf("incomplete delivery plan: %s", rec.Body.String())
	}
}

func TestDeliveryEndpointRejectsMissingAddress(t *testing.T) {
	router := newTestRouter(t)

	body := `{"products":[{"id":"p1","name":"Milk","price":"3.48"}],"address":{"line1":"","city":"","state":"","postal_code":""}}`
	rec := doJSON(t, router, http.MethodPost, "/api/v1/delivery/optimize", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCartEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"items": [{
			"id": "line-1",
			"product": {"id":"p1","name":"Generic Milk","brand":"DairyCo","category":"dairy","price":"3.99","in_stock":true,"quantity":10},
			"quantity": 1,
			"added_at": "2026-08-30T12:00:00Z"
		}]
	}`
	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/optimize", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("cart returned %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			TotalSavings             string `json:"total_savings"`
			RecommendedSubstitutions []struct {
				SubstitutionType string `json:"substitution_type"`
			} `json:"recommended_substitutions"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalSavings != "2.01" {
		t.Fatalf("total savings = %q, want 2.01", envelope.Data.TotalSavings)
	}
	if len(envelope.Data.RecommendedSubstitutions) == 0 || envelope.Data.RecommendedSubstitutions[0].SubstitutionType != "rollback" {
		t.Fatalf("expected a rollback substitution: %s", rec.Body.String())
	}
}

func TestCartEndpointRejectsZeroQuantity(t *testing.T) {
	router := newTestRouter(t)

	body := `{"items":[{"id":"line-1","product":{"id":"p1","name":"Milk","price":"3.99"},"quantity":0,"added_at":"2026-08-30T12:00:00Z"}]}`
	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/optimize", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
