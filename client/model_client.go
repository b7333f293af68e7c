package client

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"
)

const (
	regressionModelFile     = "regression_model.json"
	classificationModelFile = "classification_model.json"
)

// linearModel predicts annual expense from a single daily amount.
type linearModel struct {
	Intercept   float64 `json:"intercept"`
	Coefficient float64 `json:"coefficient"`
}

// logisticModel predicts distress probability from the daily amount and the
// predicted annual expense.
type logisticModel struct {
	Intercept float64   `json:"intercept"`
	Weights   []float64 `json:"weights"`
}

// ForecastModels is the optional trained-model capability. Models load once
// on first use; a load failure is remembered as permanent absence so callers
// fall back to rule-based computation without retrying the load.
type ForecastModels struct {
	dir      string
	loadOnce sync.Once
	reg      *linearModel
	clf      *logisticModel
}

func NewForecastModels(dir string) *ForecastModels {
	return &ForecastModels{
		dir: dir,
	}
}

func (m *ForecastModels) load() {
	m.loadOnce.Do(func() {
		var reg linearModel
		if err := readModel(filepath.Join(m.dir, regressionModelFile), &reg); err != nil {
			log.Printf("Regression model unavailable: %v", err)
		} else {
			m.reg = &reg
		}

		var clf logisticModel
		if err := readModel(filepath.Join(m.dir, classificationModelFile), &clf); err != nil {
			log.Printf("Classification model unavailable: %v", err)
		} else if len(clf.Weights) != 2 {
			log.Printf("Classification model malformed: want 2 weights, got %d", len(clf.Weights))
		} else {
			m.clf = &clf
		}
	})
}

func readModel(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// PredictAnnual returns the regression model's annual expense prediction for
// a daily amount. The error covers model absence and nonsensical output
// alike; callers substitute the rule-based baseline.
func (m *ForecastModels) PredictAnnual(daily float64) (float64, error) {
	m.load()
	if m.reg == nil {
		return 0, fmt.Errorf("regression model not loaded")
	}

	predicted := m.reg.Intercept + m.reg.Coefficient*daily
	if math.IsNaN(predicted) || math.IsInf(predicted, 0) || predicted < 0 {
		return 0, fmt.Errorf("regression model produced invalid prediction %v", predicted)
	}
	return predicted, nil
}

// PredictDistress returns the classifier's distress probability, clamped to
// [0,1].
func (m *ForecastModels) PredictDistress(daily, annual float64) (float64, error) {
	m.load()
	if m.clf == nil {
		return 0, fmt.Errorf("classification model not loaded")
	}

	z := m.clf.Intercept + m.clf.Weights[0]*daily + m.clf.Weights[1]*annual
	probability := 1.0 / (1.0 + math.Exp(-z))
	if math.IsNaN(probability) {
		return 0, fmt.Errorf("classification model produced invalid probability")
	}
	return math.Min(1.0, math.Max(0.0, probability)), nil
}
