package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/finsight/receipt-forecast/client"
	"github.com/stretchr/testify/assert"
)

func newFallbackService(t *testing.T) *ForecastService {
	t.Helper()
	return NewForecastService(client.NewForecastModels(t.TempDir()))
}

func TestForecastRuleBasedFallback(t *testing.T) {
	service := newFallbackService(t)

	result, err := service.Forecast(200)
	assert.NoError(t, err)
	assert.Equal(t, 73000.0, result.PredictedAnnualExpense)
	assert.Equal(t, 27000.0, result.PredictedAnnualSavings)
	assert.Equal(t, 0.73, result.DistressProbability)
	assert.Contains(t, result.Advice, "High risk detected")
	assert.Contains(t, result.Advice, "projected annual expense seems high")
}

func TestForecastResolvedTransferAmount(t *testing.T) {
	service := newFallbackService(t)

	result, err := service.Forecast(1750)
	assert.NoError(t, err)
	assert.Equal(t, 638750.0, result.PredictedAnnualExpense)
	assert.Equal(t, 0.0, result.PredictedAnnualSavings)
	assert.Equal(t, 1.0, result.DistressProbability)
	assert.Contains(t, result.Advice, "projected annual expense seems high")
}

func TestForecastZeroAmount(t *testing.T) {
	service := newFallbackService(t)

	result, err := service.Forecast(0)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, result.PredictedAnnualExpense)
	assert.Equal(t, 100000.0, result.PredictedAnnualSavings)
	assert.Equal(t, 0.0, result.DistressProbability)
	assert.Contains(t, result.Advice, "finances look stable")
}

func TestForecastNegativeAmountFailsLoudly(t *testing.T) {
	service := newFallbackService(t)

	result, err := service.Forecast(-5)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestForecastUsesTrainedModels(t *testing.T) {
	dir := t.TempDir()
	writeModelFile(t, dir, "regression_model.json", `{"intercept": 1000, "coefficient": 300}`)
	writeModelFile(t, dir, "classification_model.json", `{"intercept": -2, "weights": [0, 0]}`)

	service := NewForecastService(client.NewForecastModels(dir))

	result, err := service.Forecast(200)
	assert.NoError(t, err)
	assert.Equal(t, 61000.0, result.PredictedAnnualExpense)
	assert.Equal(t, 39000.0, result.PredictedAnnualSavings)
	assert.InDelta(t, 0.119, result.DistressProbability, 0.001)
}

func TestForecastMalformedModelFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeModelFile(t, dir, "regression_model.json", `not json at all`)
	writeModelFile(t, dir, "classification_model.json", `{"intercept": 0, "weights": [1]}`)

	service := NewForecastService(client.NewForecastModels(dir))

	result, err := service.Forecast(200)
	assert.NoError(t, err)
	assert.Equal(t, 73000.0, result.PredictedAnnualExpense)
	assert.Equal(t, 0.73, result.DistressProbability)
}

func TestGenerateAdviceRulesAreCumulative(t *testing.T) {
	advice := generateAdvice(60000, -1, 0.7)
	assert.Contains(t, advice, "High risk detected")
	assert.Contains(t, advice, "savings negative")
	assert.Contains(t, advice, "projected annual expense seems high")
}

func TestGenerateAdviceNeverEmpty(t *testing.T) {
	advice := generateAdvice(10000, 90000, 0.1)
	assert.Contains(t, advice, "finances look stable")
}

func writeModelFile(t *testing.T, dir, name, content string) {
	t.Helper()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}
