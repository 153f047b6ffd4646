package search

import (
	"context"
	"encoding/json"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopsmart-labs/shopsmart-backend/pkg/completion"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/enums"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/logger"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/random"
	pkgredis "github.com/shopsmart-labs/shopsmart-backend/pkg/redis"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/retail"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/similarity"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/types"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

type stubSuggestions struct {
	values []string
	err    error
	calls  int
}

func (s *stubSuggestions) Suggest(_ context.Context, _, _ string) ([]string, error) {
	s.calls++
	return s.values, s.err
}

type stubCompletion struct {
	reply string
	err   error
	calls int
}

func (s *stubCompletion) Complete(_ context.Context, _ string, _ []completion.Message) (string, error) {
	s.calls++
	return s.reply, s.err
}

type stubListings struct {
	listings []retail.Listing
	err      error
	queries  []string
}

func (s *stubListings) Search(_ context.Context, query string, _ int) ([]retail.Listing, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return s.listings, nil
}

type stubCache struct {
	store map[string]string
	sets  int
}

func (s *stubCache) Get(_ context.Context, key string) (string, error) {
	if value, ok := s.store[key]; ok {
		return value, nil
	}
	return "", pkgredis.ErrCacheMiss
}

func (s *stubCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.sets++
	s.store[key] = value.(string)
	return nil
}

func (s *stubCache) SearchCacheKey(query string) string {
	return "test:" + similarity.Normalize(query)
}

func searchIntent(product string) types.Intent {
	return types.Intent{
		Type:          enums.IntentSearchProduct,
		Entities:      types.IntentEntities{Product: product},
		Confidence:    0.8,
		OriginalQuery: "find " + product,
	}
}

func TestSearchServesFallbackCatalogWhenEverySourceIsDown(t *testing.T) {
	svc, err := NewService(ServiceParams{
		Logger: testLogger(),
		Random: random.NewSeeded(1),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result := svc.Search(context.Background(), searchIntent("milk"))
	if result == nil || len(result.Products) == 0 {
		t.Fatal("expected non-empty fallback products")
	}
	for _, product := range result.Products {
		if !product.InStock {
			t.Fatalf("fallback product %q must be in stock", product.Name)
		}
		if !strings.Contains(strings.ToLower(product.Name), "milk") {
			t.Fatalf("unexpected fallback product for milk query: %q", product.Name)
		}
	}
	if result.TotalResults != len(result.Products) {
		t.Fatalf("total %d != len(products) %d", result.TotalResults, len(result.Products))
	}
}

func TestSearchFallsBackToGenericEchoProduct(t *testing.T) {
	svc, err := NewService(ServiceParams{Logger: testLogger(), Random: random.NewSeeded(1)})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result := svc.Search(context.Background(), searchIntent("quantum flux capacitor"))
	if len(result.Products) != 1 {
		t.Fatalf("expected single generic product, got %d", len(result.Products))
	}
	product := result.Products[0]
	if !product.InStock {
		t.Fatal("generic fallback must be in stock")
	}
	if !strings.Contains(strings.ToLower(product.Name), "quantum") {
		t.Fatalf("generic product should echo the query, got %q", product.Name)
	}
}

func TestTitleCaseHandlesMultibyteRunes(t *testing.T) {
	cases := map[string]string{
		"café au lait":     "Café Au Lait",
		"émincé de poulet": "Émincé De Poulet",
		"plain milk":       "Plain Milk",
	}
	for in, want := range cases {
		if got := titleCase(in); got != want {
			t.Fatalf("titleCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSearchNormalizesAndDeduplicatesListings(t *testing.T) {
	price := 3.48
	listings := &stubListings{
		listings: []retail.Listing{
			{Name: "Great Value Whole Milk 1 Gallon", Price: &price},
			{Name: "Great Value Whole Milk, 1 Gallon"},
			{Name: "Fairlife 2% Ultra-Filtered Milk"},
		},
	}

	svc, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Random:   random.NewSeeded(7),
		Listings: listings,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result := svc.Search(context.Background(), searchIntent("milk"))
	if len(result.Products) != 2 {
		t.Fatalf("expected near-duplicate dropped, got %d products", len(result.Products))
	}
	if got := result.Products[0].Name; got != "Great Value Whole Milk 1 Gallon" {
		t.Fatalf("first occurrence should win, got %q", got)
	}
	for i, a := range result.Products {
		for _, b := range result.Products[i+1:] {
			if similarity.Ratio(a.Name, b.Name) > similarity.DedupThreshold {
				t.Fatalf("near duplicates survived: %q vs %q", a.Name, b.Name)
			}
		}
	}
	if got := result.Products[0].Price.InexactFloat64(); got != 3.48 {
		t.Fatalf("source price should be kept, got %v", got)
	}
}

func TestSearchCapsCandidates(t *testing.T) {
	var listings []retail.Listing
	names := []string{"Apples", "Bananas", "Carrots", "Dates", "Eggplant", "Figs", "Grapes", "Honeydew"}
	for _, name := range names {
		listings = append(listings, retail.Listing{Name: name})
	}

	svc, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Random:   random.NewSeeded(3),
		Listings: &stubListings{listings: listings},
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result := svc.Search(context.Background(), searchIntent("fruit"))
	if len(result.Products) > 6 {
		t.Fatalf("candidate list exceeds cap: %d", len(result.Products))
	}
}

func TestSearchFansOutSuggestionVariants(t *testing.T) {
	suggestions := &stubSuggestions{values: []string{"organic milk", "milk", "oat milk"}}
	listings := &stubListings{listings: []retail.Listing{{Name: "Great Value Whole Milk"}}}

	svc, err := NewService(ServiceParams{
		Logger:      testLogger(),
		Random:      random.NewSeeded(5),
		Suggestions: suggestions,
		Listings:    listings,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result := svc.Search(context.Background(), searchIntent("milk"))
	if suggestions.calls != 1 {
		t.Fatalf("expected one suggestion call, got %d", suggestions.calls)
	}
	// "milk" repeats the refined query, so only two variants are added.
	want := []string{"milk", "organic milk", "oat milk"}
	if !reflect.DeepEqual(listings.queries, want) {
		t.Fatalf("variant queries = %v, want %v", listings.queries, want)
	}
	if len(result.Suggestions) != 3 {
		t.Fatalf("suggestions should pass through, got %v", result.Suggestions)
	}
}

func TestSearchEnhancedQueryLeadsTheFanOut(t *testing.T) {
	enhancer := &stubCompletion{reply: "organic whole milk gallon"}
	listings := &stubListings{listings: []retail.Listing{{Name: "Organic Whole Milk"}}}

	svc, err := NewService(ServiceParams{
		Logger:     testLogger(),
		Random:     random.NewSeeded(3),
		Completion: enhancer,
		Listings:   listings,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	svc.Search(context.Background(), searchIntent("milk"))
	if enhancer.calls != 1 {
		t.Fatalf("expected one enhancement call, got %d", enhancer.calls)
	}
	want := []string{"organic whole milk gallon", "milk"}
	if !reflect.DeepEqual(listings.queries, want) {
		t.Fatalf("variant queries = %v, want %v", listings.queries, want)
	}
}

func TestSearchTrimsEnhancementReply(t *testing.T) {
	enhancer := &stubCompletion{reply: "\"fresh milk\"\nBecause shoppers prefer it."}
	listings := &stubListings{listings: []retail.Listing{{Name: "Fresh Milk"}}}

	svc, err := NewService(ServiceParams{
		Logger:     testLogger(),
		Random:     random.NewSeeded(3),
		Completion: enhancer,
		Listings:   listings,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	svc.Search(context.Background(), searchIntent("milk"))
	if len(listings.queries) == 0 || listings.queries[0] != "fresh milk" {
		t.Fatalf("expected trimmed enhanced query first, got %v", listings.queries)
	}
}

func TestSearchIgnoresUnusableEnhancementReplies(t *testing.T) {
	cases := map[string]*stubCompletion{
		"call error":  {err: context.DeadlineExceeded},
		"blank reply": {reply: "   \n  "},
		"rambling":    {reply: strings.Repeat("very specific milk ", 20)},
		"quotes only": {reply: `""`},
	}
	for name, enhancer := range cases {
		listings := &stubListings{listings: []retail.Listing{{Name: "Milk"}}}
		svc, err := NewService(ServiceParams{
			Logger:     testLogger(),
			Random:     random.NewSeeded(3),
			Completion: enhancer,
			Listings:   listings,
		})
		if err != nil {
			t.Fatalf("%s: NewService: %v", name, err)
		}

		result := svc.Search(context.Background(), searchIntent("milk"))
		if !reflect.DeepEqual(listings.queries, []string{"milk"}) {
			t.Fatalf("%s: expected refined query only, got %v", name, listings.queries)
		}
		if len(result.Products) == 0 {
			t.Fatalf("%s: live results should survive enhancement failure", name)
		}
	}
}

func TestSearchIsDeterministicForASeed(t *testing.T) {
	build := func() Service {
		svc, err := NewService(ServiceParams{
			Logger: testLogger(),
			Random: random.NewSeeded(99),
			Listings: &stubListings{listings: []retail.Listing{
				{Name: "Sony WH-CH520 Wireless Headphones"},
				{Name: "JBL Tune 510BT"},
			}},
		})
		if err != nil {
			t.Fatalf("NewService: %v", err)
		}
		return svc
	}

	first := build().Search(context.Background(), searchIntent("headphones"))
	second := build().Search(context.Background(), searchIntent("headphones"))
	if !reflect.DeepEqual(first.Products, second.Products) {
		t.Fatalf("same seed produced different products:\n%v\n%v", first.Products, second.Products)
	}
}

func TestSearchReadsThroughCache(t *testing.T) {
	cached := []types.Product{{ID: "cached-1", Name: "Cached Milk", InStock: true}}
	payload, err := json.Marshal(cached)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	cache := &stubCache{store: map[string]string{"test:milk": string(payload)}}
	listings := &stubListings{listings: []retail.Listing{{Name: "Fresh Milk"}}}

	svc, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Random:   random.NewSeeded(2),
		Listings: listings,
		Cache:    cache,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result := svc.Search(context.Background(), searchIntent("milk"))
	if len(listings.queries) != 0 {
		t.Fatalf("cache hit must skip live lookups, saw queries %v", listings.queries)
	}
	if len(result.Products) != 1 || result.Products[0].ID != "cached-1" {
		t.Fatalf("unexpected cached result: %+v", result.Products)
	}
}

func TestSearchWritesLiveResultsToCache(t *testing.T) {
	cache := &stubCache{store: map[string]string{}}
	listings := &stubListings{listings: []retail.Listing{{Name: "Fresh Milk"}}}

	svc, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Random:   random.NewSeeded(2),
		Listings: listings,
		Cache:    cache,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	svc.Search(context.Background(), searchIntent("milk"))
	if cache.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cache.sets)
	}
}

func TestSearchSurvivesListingFailures(t *testing.T) {
	listings := &stubListings{err: context.DeadlineExceeded}

	svc, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Random:   random.NewSeeded(4),
		Listings: listings,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result := svc.Search(context.Background(), searchIntent("milk"))
	if len(result.Products) == 0 {
		t.Fatal("listing failure must fall back, not empty out")
	}
}

func TestNewServiceRequiresLogger(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected error for missing logger")
	}
}
