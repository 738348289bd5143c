package models

import (
	"time"
)

// Config holds all application configuration
type Config struct {
	Pair              string  `env:"PAIR" envDefault:"BTC/USD"`
	IntervalMinutes   int     `env:"INTERVAL_MINUTES" envDefault:"60"`
	CandleFile        string  `env:"CANDLE_FILE" envDefault:"candles.csv"`
	Regressor         bool    `env:"REGRESSOR" envDefault:"false"`
	CrossValidate     bool    `env:"CROSS_VALIDATE" envDefault:"true"`
	MomentumThreshold float64 `env:"MOMENTUM_THRESHOLD" envDefault:"5.0"`
	TrainRetries      int     `env:"TRAIN_RETRIES" envDefault:"3"`
	LogLevel          string  `env:"LOG_LEVEL" envDefault:"info"`
}

// Candle represents a single OHLCV observation for one (pair, interval) key.
// Серия свечей всегда упорядочена по времени и адресуется индексом.
type Candle struct {
	Timestamp  int64   `json:"timestamp"`
	Open       float64 `json:"open"`
	High       float64 `json:"high"`
	Low        float64 `json:"low"`
	Close      float64 `json:"close"`
	VWAP       float64 `json:"vwap,omitempty"`
	Volume     float64 `json:"volume"`
	TradeCount int64   `json:"trade_count,omitempty"`
}

// IndicatorSnapshot is one computed indicator row, aligned 1:1 by index with
// a candle series. Keys follow the indicator library names (rsi, macd, atr...).
type IndicatorSnapshot map[string]float64

// Get returns the value for key, or 0 when the field is absent.
func (s IndicatorSnapshot) Get(key string) float64 {
	return s[key]
}

// Has reports whether the field was computed for this bar.
func (s IndicatorSnapshot) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// SRLevels holds nearest support and resistance levels, closest-first.
type SRLevels struct {
	Support    []float64 `json:"support"`
	Resistance []float64 `json:"resistance"`
}

// NearestSupport returns the closest support level, or fallback when none found.
func (l SRLevels) NearestSupport(fallback float64) float64 {
	if len(l.Support) > 0 {
		return l.Support[0]
	}
	return fallback
}

// NearestResistance returns the closest resistance level, or fallback when none found.
func (l SRLevels) NearestResistance(fallback float64) float64 {
	if len(l.Resistance) > 0 {
		return l.Resistance[0]
	}
	return fallback
}

// KeyIndicator is one interpreted indicator value inside a recommendation.
type KeyIndicator struct {
	Value  float64 `json:"value"`
	Signal float64 `json:"signal,omitempty"` // заполняется только для MACD
	Note   string  `json:"note"`
}

// Recommendation is the final actionable payload built per prediction call.
// Never persisted by the pipeline itself.
type Recommendation struct {
	Action              string                  `json:"action"`
	Strength            string                  `json:"strength"`
	Confidence          float64                 `json:"confidence"`
	ConfidenceLevel     string                  `json:"confidence_level"`
	Explanation         string                  `json:"explanation"`
	SuggestedEntry      float64                 `json:"suggested_entry"`
	SuggestedStopLoss   float64                 `json:"suggested_stop_loss"`
	SuggestedTakeProfit float64                 `json:"suggested_take_profit"`
	SupportLevels       []float64               `json:"support_levels"`
	ResistanceLevels    []float64               `json:"resistance_levels"`
	KeyIndicators       map[string]KeyIndicator `json:"key_indicators"`
}

// LabeledDataset is a supervised-learning dataset: one feature vector per
// sample plus either categorical labels or continuous regression targets.
type LabeledDataset struct {
	Samples    [][]float64 `json:"samples"`
	Labels     []string    `json:"labels,omitempty"`
	Targets    []float64   `json:"targets,omitempty"`
	Regression bool        `json:"regression"`
}

// NumSamples returns the number of samples in the dataset.
func (d *LabeledDataset) NumSamples() int {
	return len(d.Samples)
}

// LabelScore is a per-class evaluation entry in a cross-validation report.
type LabelScore struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	Support   int     `json:"support"`
}

// CrossValidationReport summarizes in-sample model evaluation.
// Classification fills Accuracy/PerLabel, regression fills RMSE/RSquared.
type CrossValidationReport struct {
	Accuracy float64               `json:"accuracy,omitempty"`
	PerLabel map[string]LabelScore `json:"per_label,omitempty"`
	RMSE     float64               `json:"rmse,omitempty"`
	RSquared float64               `json:"r_squared,omitempty"`
}

// TrainResult stores the outcome of one training run.
type TrainResult struct {
	Samples           int                    `json:"samples"`
	TrainingTime      time.Duration          `json:"training_time"`
	CrossValidation   *CrossValidationReport `json:"cross_validation,omitempty"`
	FeatureImportance map[string]float64     `json:"feature_importance,omitempty"`
}

// PredictionResult stores the outcome of a prediction
type PredictionResult struct {
	PredictionID   string          `json:"prediction_id"`
	Signal         string          `json:"signal"`
	Confidence     float64         `json:"confidence"`
	Prediction     float64         `json:"prediction,omitempty"` // raw regressor output
	Recommendation *Recommendation `json:"recommendation"`
	Timestamp      time.Time       `json:"timestamp"`
}
