// Package search runs the candidate discovery stage: it expands the refined
// query with suggestions, fans out rate-limited retail lookups, normalizes and
// de-duplicates the results, and degrades to a static catalog when every live
// source is unavailable. Search never returns an error to callers.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/time/rate"

	"github.com/shopsmart-labs/shopsmart-backend/internal/queryrank"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/completion"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/logger"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/metrics"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/random"
	pkgredis "github.com/shopsmart-labs/shopsmart-backend/pkg/redis"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/retail"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/similarity"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/types"
)

const (
	defaultMaxCandidates = 6
	defaultResultCount   = 10
	defaultCallTimeout   = 10 * time.Second
	defaultCacheTTL      = 5 * time.Minute

	// maxEnhancedQueryLength rejects rambling completion replies that would
	// make poor retail queries.
	maxEnhancedQueryLength = 100
)

const enhancementSystemPrompt = "You rewrite shopping requests into short retail search queries. " +
	"Reply with the improved query text only, no explanation."

// SuggestionClient expands a topic into related search phrases.
type SuggestionClient interface {
	Suggest(ctx context.Context, topic, intentContext string) ([]string, error)
}

// CompletionClient rewrites the refined query into a sharper retail search
// phrase before the listing fan-out.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt string, messages []completion.Message) (string, error)
}

// ListingClient returns raw product listings for a query.
type ListingClient interface {
	Search(ctx context.Context, query string, count int) ([]retail.Listing, error)
}

// Cache is the read-through store for normalized search results.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SearchCacheKey(query string) string
}

// Result is the output of one candidate search.
type Result struct {
	Products     []types.Product `json:"products"`
	Query        string          `json:"query"`
	Suggestions  []string        `json:"suggestions,omitempty"`
	TotalResults int             `json:"total_results"`
	SearchTimeMS int64           `json:"search_time_ms"`
}

// Service exposes the candidate search stage.
type Service interface {
	Search(ctx context.Context, intent types.Intent) *Result
}

// ServiceParams packages the stage dependencies. Suggestions, Listings and
// Cache are optional; a nil collaborator narrows the pipeline instead of
// failing it.
type ServiceParams struct {
	Suggestions SuggestionClient
	Listings    ListingClient
	Completion  CompletionClient
	Cache       Cache
	Random      random.Source
	Logger      *logger.Logger
	Metrics     *metrics.PipelineMetrics

	MaxCandidates int
	ResultCount   int
	CallDelay     time.Duration
	CallTimeout   time.Duration
	CacheTTL      time.Duration
}

type service struct {
	suggestions SuggestionClient
	listings    ListingClient
	completion  CompletionClient
	cache       Cache
	random      random.Source
	logger      *logger.Logger
	metrics     *metrics.PipelineMetrics
	limiter     *rate.Limiter

	maxCandidates int
	resultCount   int
	callTimeout   time.Duration
	cacheTTL      time.Duration
}

// NewService builds the search stage.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Random == nil {
		params.Random = random.New()
	}
	if params.MaxCandidates <= 0 {
		params.MaxCandidates = defaultMaxCandidates
	}
	if params.ResultCount <= 0 {
		params.ResultCount = defaultResultCount
	}
	if params.CallTimeout <= 0 {
		params.CallTimeout = defaultCallTimeout
	}
	if params.CacheTTL <= 0 {
		params.CacheTTL = defaultCacheTTL
	}

	limit := rate.Inf
	if params.CallDelay > 0 {
		limit = rate.Every(params.CallDelay)
	}

	return &service{
		suggestions:   params.Suggestions,
		listings:      params.Listings,
		completion:    params.Completion,
		cache:         params.Cache,
		random:        params.Random,
		logger:        params.Logger,
		metrics:       params.Metrics,
		limiter:       rate.NewLimiter(limit, 1),
		maxCandidates: params.MaxCandidates,
		resultCount:   params.ResultCount,
		callTimeout:   params.CallTimeout,
		cacheTTL:      params.CacheTTL,
	}, nil
}

// Search resolves candidates for the intent. The result is never nil and the
// product list is never empty.
func (s *service) Search(ctx context.Context, intent types.Intent) *Result {
	start := time.Now()
	defer func() {
		s.metrics.ObserveStageDuration("search", time.Since(start))
	}()

	ctx = s.logger.WithStage(ctx, "search")

	ranked := queryrank.Prioritize(baseQuery(intent))
	refined := ranked.Refined
	if refined == "" {
		refined = baseQuery(intent)
	}
	ctx = s.logger.WithQuery(ctx, refined)

	result := &Result{Query: refined}

	if products, ok := s.cachedProducts(ctx, refined); ok {
		s.metrics.IncSearch("cached")
		result.Products = products
		result.TotalResults = len(products)
		result.SearchTimeMS = time.Since(start).Milliseconds()
		return result
	}

	enhanced := s.enhanceQuery(ctx, refined, intent)
	result.Suggestions = s.suggest(ctx, firstNonEmpty(enhanced, refined), intent)

	products := s.liveCandidates(ctx, enhanced, refined, result.Suggestions, intent)
	if len(products) == 0 {
		s.metrics.IncSearch("fallback")
		s.metrics.IncFallback("search")
		products = lookupFallback(firstNonEmpty(refined, intent.OriginalQuery))
		if len(products) > s.maxCandidates {
			products = products[:s.maxCandidates]
		}
		s.logger.Info(ctx, "serving fallback catalog")
	} else {
		s.metrics.IncSearch("live")
		s.storeCache(ctx, refined, products)
	}

	result.Products = products
	result.TotalResults = len(products)
	result.SearchTimeMS = time.Since(start).Milliseconds()
	return result
}

func baseQuery(intent types.Intent) string {
	if intent.Entities.Product != "" {
		return intent.Entities.Product
	}
	return intent.OriginalQuery
}

// enhanceQuery asks the completion collaborator to sharpen the refined query
// into a retail search phrase. Any failure, blank reply, or oversized reply
// returns "" and the pipeline continues on the refined query alone.
func (s *service) enhanceQuery(ctx context.Context, refined string, intent types.Intent) string {
	if s.completion == nil {
		return ""
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Shopping request: %s\n", intent.OriginalQuery)
	fmt.Fprintf(&prompt, "Current query: %s", refined)
	if intent.Entities.Category != "" {
		fmt.Fprintf(&prompt, "\nCategory: %s", intent.Entities.Category)
	}

	reply, err := s.completion.Complete(callCtx, enhancementSystemPrompt, []completion.Message{
		{Role: "user", Content: prompt.String()},
	})
	if err != nil {
		s.logger.Error(ctx, "query enhancement unavailable", err)
		return ""
	}

	enhanced := strings.TrimSpace(reply)
	if i := strings.IndexByte(enhanced, '\n'); i >= 0 {
		enhanced = strings.TrimSpace(enhanced[:i])
	}
	enhanced = strings.Trim(enhanced, `"`)
	if enhanced == "" || len(enhanced) > maxEnhancedQueryLength {
		return ""
	}
	return enhanced
}

// suggest asks the suggestion collaborator for related phrases. Failures only
// narrow the variant set.
func (s *service) suggest(ctx context.Context, topic string, intent types.Intent) []string {
	if s.suggestions == nil {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	values, err := s.suggestions.Suggest(callCtx, topic, string(intent.Type))
	if err != nil {
		s.logger.Error(ctx, "product suggestions unavailable", err)
		return nil
	}
	return values
}

// liveCandidates fans the refined query and its suggestion variants out to the
// listing source, pacing calls through the limiter. Partial failures are
// aggregated and logged; any listings that did arrive are still used.
func (s *service) liveCandidates(ctx context.Context, enhanced, refined string, suggestions []string, intent types.Intent) []types.Product {
	if s.listings == nil {
		return nil
	}

	var listings []retail.Listing
	var errs error
	for _, variant := range searchVariants(append([]string{enhanced, refined}, suggestions...)) {
		if err := s.limiter.Wait(ctx); err != nil {
			errs = multierr.Append(errs, err)
			break
		}

		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		batch, err := s.listings.Search(callCtx, variant, s.resultCount)
		cancel()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("variant %q: %w", variant, err))
			continue
		}
		listings = append(listings, batch...)
	}
	if errs != nil {
		s.logger.Error(ctx, "retail lookups degraded", errs)
	}
	if len(listings) == 0 {
		return nil
	}

	products := make([]types.Product, 0, len(listings))
	for _, listing := range listings {
		products = append(products, normalizeListing(listing, intent.Entities.Category, s.random))
	}

	deduped, dropped := dedupe(products)
	s.metrics.AddDedupDropped(dropped)
	if len(deduped) > s.maxCandidates {
		deduped = deduped[:s.maxCandidates]
	}
	return deduped
}

// searchVariants drops blank queries and exact repeats, preserving order.
// Order matters: the enhanced query (when present) and the refined query are
// tried first so their results lead the candidate list.
func searchVariants(queries []string) []string {
	seen := map[string]struct{}{}
	variants := make([]string, 0, len(queries))
	for _, variant := range queries {
		key := similarity.Normalize(variant)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		variants = append(variants, variant)
	}
	return variants
}

func (s *service) cachedProducts(ctx context.Context, query string) ([]types.Product, bool) {
	if s.cache == nil {
		return nil, false
	}

	payload, err := s.cache.Get(ctx, s.cache.SearchCacheKey(query))
	if err != nil {
		if !errors.Is(err, pkgredis.ErrCacheMiss) {
			s.logger.Warn(ctx, "search cache read failed")
		}
		return nil, false
	}

	var products []types.Product
	if err := json.Unmarshal([]byte(payload), &products); err != nil {
		s.logger.Warn(ctx, "search cache payload corrupt")
		return nil, false
	}
	if len(products) == 0 {
		return nil, false
	}
	return products, true
}

// storeCache writes live results only. Fallback products are intentionally
// not cached so a recovered upstream is consulted on the next request.
func (s *service) storeCache(ctx context.Context, query string, products []types.Product) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.SearchCacheKey(query), string(payload), s.cacheTTL); err != nil {
		s.logger.Warn(ctx, "search cache write failed")
	}
}
