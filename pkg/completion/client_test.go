package completion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestClientCompleteRequest(t *testing.T) {
	const expectedURL = "http://completion.test/v1/chat/completions"
	respBody := `{"choices":[{"message":{"content":" 2 "}}]}`

	var capturedURL string
	var capturedHeaders http.Header
	var capturedPayload map[string]any

	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		capturedHeaders = req.Header.Clone()

		bodyBytes, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("read request body: %v", err)
		}
		if err := json.Unmarshal(bodyBytes, &capturedPayload); err != nil {
			t.Fatalf("unmarshal request body: %v", err)
		}

		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(respBody)),
			Header:     http.Header{},
		}, nil
	})

	httpClient := &http.Client{Transport: rt}
	client, err := NewClient("test-key", WithBaseURL("http://completion.test/v1"), WithHTTPClient(httpClient), WithModel("test-model"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	text, err := client.Complete(context.Background(), "pick the best row", []Message{{Role: "user", Content: "rows"}})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if text != "2" {
		t.Fatalf("expected trimmed completion, got %q", text)
	}
	if capturedURL != expectedURL {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if capturedHeaders.Get("Authorization") != "Bearer test-key" {
		t.Fatalf("authorization header missing")
	}
	if capturedPayload["model"] != "test-model" {
		t.Fatalf("unexpected model %v", capturedPayload["model"])
	}
	messages, ok := capturedPayload["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("expected system + user messages, got %v", capturedPayload["messages"])
	}
	first, _ := messages[0].(map[string]any)
	if first["role"] != "system" {
		t.Fatalf("expected system prompt first, got %v", first)
	}
}

func TestClientCompleteFailures(t *testing.T) {
	if _, err := NewClient("   "); err == nil {
		t.Fatal("expected error for blank api key")
	}

	var nilClient *Client
	if _, err := nilClient.Complete(context.Background(), "", []Message{{Role: "user", Content: "x"}}); err == nil {
		t.Fatal("nil client should report a dependency error")
	}

	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusTooManyRequests,
			Body:       io.NopCloser(strings.NewReader(`{"error":"quota"}`)),
			Header:     http.Header{},
		}, nil
	})
	client, err := NewClient("test-key", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.Complete(context.Background(), "", []Message{{Role: "user", Content: "x"}}); err == nil {
		t.Fatal("expected error on non-200 status")
	}

	if _, err := client.Complete(context.Background(), "", nil); err == nil {
		t.Fatal("expected validation error without messages")
	}
}

func TestClientCompleteNoChoices(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"choices":[]}`)),
			Header:     http.Header{},
		}, nil
	})
	client, err := NewClient("test-key", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.Complete(context.Background(), "", []Message{{Role: "user", Content: "x"}}); err == nil {
		t.Fatal("expected error when no choices returned")
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
