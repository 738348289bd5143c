package models

import "context"

// TrainableModel is the contract with the pluggable ML estimator.
// The pipeline never touches model internals beyond this interface; the
// load/save lifecycle belongs to whoever owns the model instance.
type TrainableModel interface {
	// Train fits the model on a labeled dataset.
	Train(ctx context.Context, dataset *LabeledDataset) error

	// Predict returns a categorical label (classifiers) or a continuous
	// value (regressors) for one feature vector.
	Predict(features []float64) (label string, value float64, err error)

	// Probabilities returns per-label class probabilities. Classifiers only;
	// regressors may return an empty map.
	Probabilities(features []float64) (map[string]float64, error)

	// FeatureImportances returns importance scores keyed by feature name.
	FeatureImportances() map[string]float64

	Save() error
	Load() error

	// IsRegressor reports whether Predict yields a continuous value.
	IsRegressor() bool
}

// FeatureExtractor builds a model-ready numeric vector for bar index i.
type FeatureExtractor interface {
	Extract(snapshots []IndicatorSnapshot, current Candle, i int) []float64
}
