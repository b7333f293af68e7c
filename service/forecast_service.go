package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/finsight/receipt-forecast/client"
	"github.com/finsight/receipt-forecast/dto"
)

const (
	// assumedAnnualIncome backs the savings estimate and the rule-based
	// distress ratio. Fixed for now; making it user-configurable is an
	// extension point.
	assumedAnnualIncome = 100000.0

	daysPerYear           = 365
	highExpenseThreshold  = 50000.0
	highDistressThreshold = 0.6
)

// ForecastService turns a single resolved receipt amount into an annual
// outlook. Trained models are advisory: every model failure silently
// degrades to the rule-based computation.
type ForecastService struct {
	models *client.ForecastModels
}

func NewForecastService(models *client.ForecastModels) *ForecastService {
	return &ForecastService{
		models: models,
	}
}

// Forecast computes the annual expense, savings, distress probability and
// advice for a daily amount. A negative amount indicates an upstream bug,
// not adverse input, and is the one condition that errors loudly.
func (s *ForecastService) Forecast(amount float64) (*dto.ForecastResult, error) {
	if amount < 0 {
		return nil, fmt.Errorf("forecast: negative amount %.2f", amount)
	}

	// Naive baseline: today's receipt amount repeated every day of the year.
	annual := amount * daysPerYear
	if s.models != nil {
		if predicted, err := s.models.PredictAnnual(amount); err == nil {
			annual = predicted
		}
	}

	distress := math.Min(1.0, annual/assumedAnnualIncome)
	if s.models != nil {
		if probability, err := s.models.PredictDistress(amount, annual); err == nil {
			distress = probability
		}
	}

	savings := math.Max(0.0, assumedAnnualIncome-annual)

	return &dto.ForecastResult{
		PredictedAnnualExpense: round2(annual),
		PredictedAnnualSavings: round2(savings),
		DistressProbability:    round3(distress),
		Advice:                 generateAdvice(annual, savings, distress),
	}, nil
}

// generateAdvice evaluates the advice rules in fixed order; rules are
// independent and cumulative, and the result is never empty.
func generateAdvice(annual, savings, distress float64) string {
	var tips []string
	if distress > highDistressThreshold {
		tips = append(tips, "High risk detected: consider immediately reviewing recurring subscriptions and non-essential spending.")
	}
	if savings < 0 {
		tips = append(tips, "Projected savings negative: prioritize reducing expenses or increasing income.")
	}
	if annual > highExpenseThreshold {
		tips = append(tips, "Your projected annual expense seems high; try cutting discretionary spending by 10% to start.")
	}
	if len(tips) == 0 {
		tips = append(tips, "Your finances look stable for now. Maintain an emergency fund of 3-6 months of expenses.")
	}
	return strings.Join(tips, " ")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
