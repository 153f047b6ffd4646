package retail

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestClientSearchMapsAliases(t *testing.T) {
	respBody := `{"results":[
		{"product_id":"p-1","title":"Whole Milk","sale_price":3.49,"list_price":4.29,"manufacturer":"DairyCo","stars":4.2,"review_count":310,"available":true,"store":"FreshMart"},
		{"id":"p-2","name":"Almond Milk","price":4.99,"brand":"NuttyCo","rating":4.6,"reviews":42,"in_stock":false,"seller":"GreenGrocer"}
	]}`

	var capturedURL string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		if req.Header.Get("Authorization") != "Bearer test-key" {
			t.Fatalf("authorization header missing")
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	client, err := NewClient("test-key", WithBaseURL("http://retail.test/v1"), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	listings, err := client.Search(context.Background(), "milk", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(capturedURL, "q=milk") || !strings.Contains(capturedURL, "count=5") {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}

	first := listings[0]
	if first.ID != "p-1" || first.Name != "Whole Milk" || first.Brand != "DairyCo" || first.Seller != "FreshMart" {
		t.Fatalf("alias mapping failed: %+v", first)
	}
	if first.Price == nil || *first.Price != 3.49 {
		t.Fatalf("expected sale_price alias, got %+v", first.Price)
	}
	if first.OldPrice == nil || *first.OldPrice != 4.29 {
		t.Fatalf("expected list_price alias, got %+v", first.OldPrice)
	}
	if first.Rating == nil || *first.Rating != 4.2 {
		t.Fatalf("expected stars alias, got %+v", first.Rating)
	}
	if first.Reviews == nil || *first.Reviews != 310 {
		t.Fatalf("expected review_count alias, got %+v", first.Reviews)
	}
	if first.InStock == nil || !*first.InStock {
		t.Fatalf("expected available alias, got %+v", first.InStock)
	}

	second := listings[1]
	if second.ID != "p-2" || second.Brand != "NuttyCo" {
		t.Fatalf("canonical field mapping failed: %+v", second)
	}
	if second.InStock == nil || *second.InStock {
		t.Fatalf("expected in_stock=false, got %+v", second.InStock)
	}
}

func TestClientSearchItemsEnvelopeAndCap(t *testing.T) {
	respBody := `{"items":[{"id":"a","name":"A"},{"id":"b","name":"B"},{"id":"c","name":"C"}]}`
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})
	client, err := NewClient("test-key", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	listings, err := client.Search(context.Background(), "milk", 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("expected cap at 2 listings, got %d", len(listings))
	}
}

func TestClientSearchValidation(t *testing.T) {
	if _, err := NewClient(" "); err == nil {
		t.Fatal("expected error for blank api key")
	}

	var nilClient *Client
	if _, err := nilClient.Search(context.Background(), "milk", 3); err == nil {
		t.Fatal("nil client should report a dependency error")
	}

	client, err := NewClient("test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.Search(context.Background(), "", 3); err == nil {
		t.Fatal("expected validation error for blank query")
	}
}

func TestClientSearchUpstreamFailure(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusInternalServerError,
			Body:       io.NopCloser(strings.NewReader("boom")),
			Header:     http.Header{},
		}, nil
	})
	client, err := NewClient("test-key", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.Search(context.Background(), "milk", 3); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
