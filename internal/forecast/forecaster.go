// Package forecast wraps the point-prediction model behind a single
// interface so the rest of the pipeline stays agnostic to whether a trained
// model or the deterministic baseline is answering.
package forecast

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Forecaster produces a point sales forecast for an encoded feature vector.
type Forecaster interface {
	Predict(features []float64) (float64, error)
	Name() string
}

// Baseline prediction constants, used when no trained model is available.
const (
	baselineSales   = 6000.0
	baselineWeight  = 100.0
	baselineMinimum = 1000.0
)

// LinearModel is a trained regression model with persisted weights.
type LinearModel struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// Predict computes intercept + coefficients · features.
func (m *LinearModel) Predict(features []float64) (float64, error) {
	if len(features) != len(m.Coefficients) {
		return 0, fmt.Errorf("model expects %d features, got %d", len(m.Coefficients), len(features))
	}
	prediction := m.Intercept
	for i, c := range m.Coefficients {
		prediction += c * features[i]
	}
	return prediction, nil
}

func (m *LinearModel) Name() string {
	return "trained"
}

// BaselineModel is the fallback predictor: a base sales constant plus a small
// feature-derived perturbation, floored so predictions stay positive. It is
// fully deterministic for identical inputs.
type BaselineModel struct{}

func (BaselineModel) Predict(features []float64) (float64, error) {
	var sum float64
	for _, f := range features {
		sum += f
	}
	prediction := baselineSales + sum*baselineWeight
	if prediction < baselineMinimum {
		prediction = baselineMinimum
	}
	return prediction, nil
}

func (BaselineModel) Name() string {
	return "baseline"
}

// NewFromFile loads a trained model from a JSON weights file. When the file
// is absent or unreadable the baseline model is returned instead, so the
// service always starts.
func NewFromFile(path string, logger *logrus.Logger) Forecaster {
	if path == "" {
		logger.Info("No model path configured, using baseline forecaster")
		return BaselineModel{}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.WithError(err).WithField("path", path).Warn("Model file not available, using baseline forecaster")
		return BaselineModel{}
	}

	var model LinearModel
	if err := json.Unmarshal(data, &model); err != nil {
		logger.WithError(err).WithField("path", path).Warn("Model file is not valid, using baseline forecaster")
		return BaselineModel{}
	}
	if len(model.Coefficients) == 0 {
		logger.WithField("path", path).Warn("Model file has no coefficients, using baseline forecaster")
		return BaselineModel{}
	}

	logger.WithField("path", path).Info("Loaded trained forecast model")
	return &model
}
