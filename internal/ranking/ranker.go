// Package ranking orders deduplicated candidates and designates one best
// match. Best-match selection prefers the text-completion collaborator and
// falls back to a local score whenever the call or its parsing fails.
package ranking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopsmart-labs/shopsmart-backend/pkg/completion"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/logger"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/metrics"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/types"
)

const (
	// greatValueDiscountPercent flags deep discounts as deals worth surfacing
	// ahead of their speed peers.
	greatValueDiscountPercent = 20.0

	defaultCallTimeout = 10 * time.Second
)

// greatValuePriceCeiling flags cheap candidates as deals even without a
// listed discount.
var greatValuePriceCeiling = decimal.NewFromInt(50)

// deliverySpeedRank orders the estimated-delivery labels candidates carry.
// Unknown labels sort last.
var deliverySpeedRank = map[string]int{
	"Today":    0,
	"Tomorrow": 1,
	"2 days":   2,
	"3 days":   3,
	"1 week":   4,
}

const unknownSpeedRank = 5

// CompletionClient selects a best-match row from a formatted candidate list.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt string, messages []completion.Message) (string, error)
}

// Result is the ordered candidate list plus the designated best match.
type Result struct {
	Products  []types.Product `json:"products"`
	BestMatch *types.Product  `json:"best_match,omitempty"`
}

// Service exposes the best-match ranking stage.
type Service interface {
	Rank(ctx context.Context, intent types.Intent, products []types.Product) *Result
}

// ServiceParams packages the stage dependencies. Completion is optional.
type ServiceParams struct {
	Completion  CompletionClient
	Logger      *logger.Logger
	Metrics     *metrics.PipelineMetrics
	CallTimeout time.Duration
}

type service struct {
	completion  CompletionClient
	logger      *logger.Logger
	metrics     *metrics.PipelineMetrics
	callTimeout time.Duration
}

// NewService builds the ranking stage.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.CallTimeout <= 0 {
		params.CallTimeout = defaultCallTimeout
	}
	return &service{
		completion:  params.Completion,
		logger:      params.Logger,
		metrics:     params.Metrics,
		callTimeout: params.CallTimeout,
	}, nil
}

// Rank filters out-of-stock candidates, orders the remainder, and designates
// a best match. It never errors; an empty input yields an empty result.
func (s *service) Rank(ctx context.Context, intent types.Intent, products []types.Product) *Result {
	start := time.Now()
	defer func() {
		s.metrics.ObserveStageDuration("ranking", time.Since(start))
	}()

	ctx = s.logger.WithStage(ctx, "ranking")

	ordered := orderCandidates(products)
	result := &Result{Products: ordered}
	if len(ordered) == 0 {
		return result
	}

	best := ordered[s.bestMatchIndex(ctx, intent, ordered)]
	result.BestMatch = &best
	return result
}

// orderCandidates drops unavailable items, computes the great-value flag, and
// sorts by delivery speed, then deals first, then rating, then price.
func orderCandidates(products []types.Product) []types.Product {
	ordered := make([]types.Product, 0, len(products))
	for _, product := range products {
		if !product.InStock || product.Quantity <= 0 {
			continue
		}
		product.IsGreatValue = isGreatValue(product)
		ordered = append(ordered, product)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if ra, rb := speedRank(a.Warehouse.EstimatedDelivery), speedRank(b.Warehouse.EstimatedDelivery); ra != rb {
			return ra < rb
		}
		if a.IsGreatValue != b.IsGreatValue {
			return a.IsGreatValue
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.Price.LessThan(b.Price)
	})
	return ordered
}

func isGreatValue(product types.Product) bool {
	return product.DiscountPercent() > greatValueDiscountPercent ||
		product.Price.LessThan(greatValuePriceCeiling)
}

func speedRank(estimatedDelivery string) int {
	if rank, ok := deliverySpeedRank[estimatedDelivery]; ok {
		return rank
	}
	return unknownSpeedRank
}

// bestMatchIndex asks the completion collaborator to pick a row, falling back
// to the local heuristic on any failure.
func (s *service) bestMatchIndex(ctx context.Context, intent types.Intent, products []types.Product) int {
	if s.completion == nil {
		return heuristicBestIndex(products)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	reply, err := s.completion.Complete(callCtx, bestMatchSystemPrompt, []completion.Message{
		{Role: "user", Content: formatBestMatchRequest(intent, products)},
	})
	if err != nil {
		s.metrics.IncFallback("ranking")
		s.logger.Error(ctx, "best-match selection degraded to heuristic", err)
		return heuristicBestIndex(products)
	}

	index, ok := parseBestMatchIndex(reply, len(products))
	if !ok {
		s.metrics.IncFallback("ranking")
		s.logger.Warn(ctx, "unparseable best-match reply")
		return heuristicBestIndex(products)
	}
	return index
}

// heuristicBestIndex scores rating against a mild price penalty. Ties keep
// the earliest candidate.
func heuristicBestIndex(products []types.Product) int {
	bestIndex := 0
	bestScore := -1.0
	for i, product := range products {
		score := product.Rating * (1 - product.Price.InexactFloat64()/1000)
		if score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}
	return bestIndex
}

const bestMatchSystemPrompt = "You are a shopping assistant. Given a numbered product list and what the " +
	"customer asked for, reply with the number of the single best product. Reply with only the number."

func formatBestMatchRequest(intent types.Intent, products []types.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Customer request: %s\n", intent.OriginalQuery)
	if intent.Entities.Product != "" {
		fmt.Fprintf(&b, "Looking for: %s\n", intent.Entities.Product)
	}
	b.WriteString("Products:\n")
	for i, product := range products {
		fmt.Fprintf(&b, "%d. %s | $%s | %s | %.1f stars (%d reviews) | %.0f%% off | stock %d | delivery %s\n",
			i+1, product.Name, product.Price.StringFixed(2), product.Brand, product.Rating,
			product.Reviews, product.DiscountPercent(), product.Quantity, product.Warehouse.EstimatedDelivery)
	}
	return b.String()
}

// parseBestMatchIndex extracts the 1-based row number leading the reply.
func parseBestMatchIndex(reply string, count int) (int, bool) {
	trimmed := strings.TrimSpace(reply)
	end := 0
	for end < len(trimmed) && trimmed[end] >= '0' && trimmed[end] <= '9' {
		end++
	}
	// Candidate lists are short; a long digit run is a garbage reply, and
	// unbounded accumulation could wrap back into range.
	if end == 0 || end > 3 {
		return 0, false
	}
	value := 0
	for _, c := range trimmed[:end] {
		value = value*10 + int(c-'0')
	}
	if value < 1 || value > count {
		return 0, false
	}
	return value - 1, true
}
