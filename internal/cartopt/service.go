// Package cartopt finds savings in an existing cart: time-boxed rollback
// deals, store-brand swaps, and bundle promotions. Rollbacks always beat
// store-brand swaps for the same line, and only substitution savings move the
// optimized total.
package cartopt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopsmart-labs/shopsmart-backend/pkg/enums"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/logger"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/metrics"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/types"
)

// Substitution confidence levels.
const (
	rollbackConfidence             = 0.9
	greatValuePreferredConfidence  = 0.8
	greatValueConfidence           = 0.7
	baselineSustainabilityScore    = 70
	baselineNutritionScore         = 60
	greatValueSustainabilityCredit = 5
	organicSustainabilityCredit    = 3
	healthyKeywordCredit           = 5
	maxScore                       = 100
)

// healthyKeywords raise the nutrition score when found in cart line names.
var healthyKeywords = []string{"whole grain", "organic", "low sodium", "no sugar"}

// Service exposes the cart substitution stage.
type Service interface {
	Optimize(ctx context.Context, items []types.CartItem, prefs types.CartPreferences) *types.CartOptimization
}

// ServiceParams packages the stage dependencies.
type ServiceParams struct {
	Logger  *logger.Logger
	Metrics *metrics.PipelineMetrics
}

type service struct {
	logger  *logger.Logger
	metrics *metrics.PipelineMetrics
}

// NewService builds the cart substitution stage.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{logger: params.Logger, metrics: params.Metrics}, nil
}

// Optimize evaluates every savings opportunity for the cart. It never errors;
// an empty cart yields the baseline result with zero savings.
func (s *service) Optimize(ctx context.Context, items []types.CartItem, prefs types.CartPreferences) *types.CartOptimization {
	start := time.Now()
	defer func() {
		s.metrics.ObserveStageDuration("cart", time.Since(start))
	}()

	ctx = s.logger.WithStage(ctx, "cart")

	result := &types.CartOptimization{
		OriginalCart:        items,
		TotalOriginalPrice:  originalTotal(items),
		SustainabilityScore: baselineSustainabilityScore,
		NutritionScore:      baselineNutritionScore,
	}
	result.TotalOptimizedPrice = result.TotalOriginalPrice
	result.TotalSavings = decimal.Zero

	if len(items) == 0 {
		return result
	}

	greatValueSubs := 0
	for _, item := range items {
		if rollback, ok := findRollback(item); ok {
			result.RollbackOpportunities = append(result.RollbackOpportunities, rollback)
			result.RecommendedSubstitutions = append(result.RecommendedSubstitutions, types.ProductSubstitution{
				OriginalProduct:  item.Product,
				SuggestedProduct: rollback.Product,
				SubstitutionType: enums.SubstitutionRollback,
				Reason:           fmt.Sprintf("Rollback deal, %s", rollback.TimeRemaining),
				Savings:          rollback.Savings,
				Confidence:       rollbackConfidence,
			})
			s.metrics.IncSubstitution(string(enums.SubstitutionRollback))
			continue
		}

		if prefs.PreferNameBrands {
			continue
		}
		if recommendation, ok := findGreatValue(item); ok {
			result.GreatValueRecommendations = append(result.GreatValueRecommendations, recommendation)
			result.RecommendedSubstitutions = append(result.RecommendedSubstitutions, types.ProductSubstitution{
				OriginalProduct:  item.Product,
				SuggestedProduct: recommendation.GreatValueProduct,
				SubstitutionType: enums.SubstitutionGreatValue,
				Reason:           fmt.Sprintf("Store-brand swap, %s quality", recommendation.QualityComparison),
				Savings:          recommendation.Savings,
				Confidence:       greatValueSubConfidence(prefs),
			})
			greatValueSubs++
			s.metrics.IncSubstitution(string(enums.SubstitutionGreatValue))
		}
	}

	if bundle, ok := bestBundle(items); ok {
		result.BundleDeals = append(result.BundleDeals, bundle)
	}

	for _, substitution := range result.RecommendedSubstitutions {
		result.TotalSavings = result.TotalSavings.Add(substitution.Savings)
	}
	result.TotalOptimizedPrice = result.TotalOriginalPrice.Sub(result.TotalSavings)
	if result.TotalOptimizedPrice.IsNegative() {
		result.TotalOptimizedPrice = decimal.Zero
	}
	if result.TotalOriginalPrice.IsPositive() {
		percentage, _ := result.TotalSavings.Div(result.TotalOriginalPrice).Mul(decimal.NewFromInt(100)).Round(1).Float64()
		result.SavingsPercentage = percentage
	}

	result.SustainabilityScore = sustainabilityScore(items, greatValueSubs)
	result.NutritionScore = nutritionScore(items)

	if len(result.RecommendedSubstitutions) > 0 {
		s.logger.Info(ctx, "cart substitutions found")
	}
	return result
}

func originalTotal(items []types.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func greatValueSubConfidence(prefs types.CartPreferences) float64 {
	if prefs.PreferGreatValue {
		return greatValuePreferredConfidence
	}
	return greatValueConfidence
}

func sustainabilityScore(items []types.CartItem, greatValueSubs int) int {
	score := baselineSustainabilityScore + greatValueSustainabilityCredit*greatValueSubs
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Product.Name), "organic") {
			score += organicSustainabilityCredit
		}
	}
	if score > maxScore {
		score = maxScore
	}
	return score
}

func nutritionScore(items []types.CartItem) int {
	score := baselineNutritionScore
	for _, item := range items {
		name := strings.ToLower(item.Product.Name)
		for _, keyword := range healthyKeywords {
			if strings.Contains(name, keyword) {
				score += healthyKeywordCredit
			}
		}
	}
	if score > maxScore {
		score = maxScore
	}
	return score
}
