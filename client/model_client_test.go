package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForecastModelsAbsent(t *testing.T) {
	models := NewForecastModels(t.TempDir())

	_, err := models.PredictAnnual(100)
	assert.Error(t, err)

	_, err = models.PredictDistress(100, 36500)
	assert.Error(t, err)
}

func TestForecastModelsPredict(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "regression_model.json", `{"intercept": 500, "coefficient": 360}`)
	writeFile(t, dir, "classification_model.json", `{"intercept": 0, "weights": [0.001, 0.0001]}`)

	models := NewForecastModels(dir)

	annual, err := models.PredictAnnual(100)
	assert.NoError(t, err)
	assert.Equal(t, 36500.0, annual)

	distress, err := models.PredictDistress(100, annual)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, distress, 0.0)
	assert.LessOrEqual(t, distress, 1.0)
}

func TestForecastModelsRejectNonsensicalPrediction(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "regression_model.json", `{"intercept": 0, "coefficient": -1000}`)

	models := NewForecastModels(dir)

	_, err := models.PredictAnnual(100)
	assert.Error(t, err)
}

func TestForecastModelsLoadFailureIsPermanent(t *testing.T) {
	dir := t.TempDir()
	models := NewForecastModels(dir)

	_, err := models.PredictAnnual(100)
	assert.Error(t, err)

	// A model appearing later must not be picked up mid-process.
	writeFile(t, dir, "regression_model.json", `{"intercept": 0, "coefficient": 365}`)
	_, err = models.PredictAnnual(100)
	assert.Error(t, err)
}

func TestForecastModelsMalformedWeights(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "classification_model.json", `{"intercept": 0, "weights": [1, 2, 3]}`)

	models := NewForecastModels(dir)

	_, err := models.PredictDistress(100, 36500)
	assert.Error(t, err)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}
