package timeframe

import (
	"fmt"

	"github.com/computervirtualservices/neurotrade/models"
)

// Mode selects which threshold profile applies.
type Mode string

const (
	ModeClassifier Mode = "classifier"
	ModeRegressor  Mode = "regressor"
)

// Thresholds is one six-value profile for a timeframe:
// momentum, trend_start, uptrend, strong_move, profit1, profit3.
type Thresholds struct {
	Momentum   float64
	TrendStart float64
	Uptrend    float64
	StrongMove float64
	Profit1    float64
	Profit3    float64
}

// Tuple returns the six thresholds in their canonical order.
func (t Thresholds) Tuple() [6]float64 {
	return [6]float64{t.Momentum, t.TrendStart, t.Uptrend, t.StrongMove, t.Profit1, t.Profit3}
}

// profiles keyed by timeframe minutes. Regressor thresholds are log-return
// magnitudes, classifier thresholds are percent moves.
var profiles = map[int]map[Mode]Thresholds{
	1: {
		ModeRegressor:  {0.002, 0.005, 0.010, 0.015, 0.01, 0.03},
		ModeClassifier: {0.2, 0.5, 1.0, 2.0, 0.01, 0.03},
	},
	5: {
		ModeRegressor:  {0.004, 0.010, 0.020, 0.030, 0.01, 0.03},
		ModeClassifier: {0.3, 0.75, 1.5, 2.5, 0.01, 0.03},
	},
	15: {
		ModeRegressor:  {0.006, 0.015, 0.030, 0.045, 0.01, 0.03},
		ModeClassifier: {0.4, 1.0, 2.0, 3.5, 0.01, 0.03},
	},
	30: {
		ModeRegressor:  {0.008, 0.020, 0.040, 0.060, 0.01, 0.03},
		ModeClassifier: {0.6, 1.5, 3.0, 5.0, 0.01, 0.03},
	},
	60: {
		ModeRegressor:  {0.010, 0.025, 0.050, 0.075, 0.01, 0.03},
		ModeClassifier: {0.75, 1.875, 3.75, 6.25, 0.01, 0.03},
	},
	240: {
		ModeRegressor:  {0.015, 0.040, 0.080, 0.120, 0.01, 0.03},
		ModeClassifier: {0.9, 2.25, 4.5, 7.5, 0.01, 0.03},
	},
	1440: {
		ModeRegressor:  {0.020, 0.050, 0.100, 0.150, 0.01, 0.03},
		ModeClassifier: {1.5, 3.75, 7.5, 12.5, 0.01, 0.03},
	},
	10080: {
		ModeRegressor:  {0.040, 0.100, 0.200, 0.300, 0.01, 0.03},
		ModeClassifier: {3.0, 7.5, 15.0, 25.0, 0.01, 0.03},
	},
	21600: {
		ModeRegressor:  {0.080, 0.200, 0.400, 0.600, 0.01, 0.03},
		ModeClassifier: {6.0, 15.0, 30.0, 50.0, 0.01, 0.03},
	},
}

// For returns the threshold profile for a timeframe and mode.
// Незнакомый интервал — это ошибка конфигурации, не дефолт.
func For(minutes int, mode Mode) (Thresholds, error) {
	modes, ok := profiles[minutes]
	if !ok {
		return Thresholds{}, fmt.Errorf("%w: %dm", models.ErrUnsupportedTimeframe, minutes)
	}
	t, ok := modes[mode]
	if !ok {
		return Thresholds{}, fmt.Errorf("unknown threshold mode %q", mode)
	}
	return t, nil
}

// IsSupported reports whether the minute value has a threshold profile.
func IsSupported(minutes int) bool {
	_, ok := profiles[minutes]
	return ok
}

// Supported returns all supported minute values in ascending order.
func Supported() []int {
	return models.SupportedIntervals()
}
