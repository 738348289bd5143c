package labeling

import (
	"fmt"
	"math"

	"github.com/computervirtualservices/neurotrade/internal/metrics"
	"github.com/computervirtualservices/neurotrade/models"
)

const (
	// MinCandles — минимум истории для построения датасета.
	MinCandles = 40
	// Warmup bars are skipped so every sample has settled indicators.
	Warmup = 35
	// maxChange caps regression targets so outliers do not dominate training.
	maxChange = 10.0
)

// Labeler builds supervised datasets from candle and indicator history.
type Labeler struct {
	calc *metrics.Calculator
	fx   models.FeatureExtractor
}

// NewLabeler returns a labeler using the given feature extractor.
func NewLabeler(fx models.FeatureExtractor) *Labeler {
	return &Labeler{calc: metrics.NewCalculator(), fx: fx}
}

// MakeDataset builds a single-timeframe dataset. Classification labels come
// from the rule deriver, regression targets are capped log returns.
func (l *Labeler) MakeDataset(candles []models.Candle, snapshots []models.IndicatorSnapshot, timeframe int, useRegression bool) (*models.LabeledDataset, error) {
	total := len(candles)
	if total < MinCandles {
		return nil, fmt.Errorf("%w: need at least %d candles, got %d",
			models.ErrInsufficientData, MinCandles, total)
	}

	deriver, err := NewDeriver(timeframe)
	if err != nil {
		return nil, err
	}

	avgVol := l.calc.AverageVolatility(snapshots, MinCandles)
	start := Warmup
	end := total - (Lookahead + 1)

	ds := &models.LabeledDataset{Regression: useRegression}
	for i := start; i <= end; i++ {
		ds.Samples = append(ds.Samples, l.fx.Extract(snapshots, candles[i], i))
		if useRegression {
			ds.Targets = append(ds.Targets, priceChangeTarget(candles, i))
		} else {
			ds.Labels = append(ds.Labels, deriver.DeriveLabel(candles, snapshots, i, avgVol))
		}
	}
	return ds, nil
}

// MakeMultiTFDataset builds a dataset whose feature vectors concatenate the
// primary timeframe with the next-higher one.
func (l *Labeler) MakeMultiTFDataset(candles []models.Candle, snapshots, nextSnapshots []models.IndicatorSnapshot, timeframe int, useRegression bool) (*models.LabeledDataset, error) {
	total := len(candles)
	if total < MinCandles {
		return nil, fmt.Errorf("%w: need at least %d candles, got %d",
			models.ErrInsufficientData, MinCandles, total)
	}
	if len(nextSnapshots) < MinCandles {
		return nil, fmt.Errorf("%w: need at least %d higher-timeframe snapshots, got %d",
			models.ErrInsufficientData, MinCandles, len(nextSnapshots))
	}

	deriver, err := NewDeriver(timeframe)
	if err != nil {
		return nil, err
	}

	avgVol := l.calc.AverageVolatility(snapshots, 30)
	start := Warmup
	end := total - (Lookahead + 1)

	ds := &models.LabeledDataset{Regression: useRegression}
	for i := start; i < end; i++ {
		f1 := l.fx.Extract(snapshots, candles[i], i)
		f2 := l.fx.Extract(nextSnapshots, candles[i], i)
		ds.Samples = append(ds.Samples, append(f1, f2...))

		if useRegression {
			ds.Targets = append(ds.Targets, priceChangeTarget(candles, i))
		} else {
			ds.Labels = append(ds.Labels, deriver.DeriveLabel(candles, snapshots, i, avgVol))
		}
	}
	return ds, nil
}

// priceChangeTarget is the capped log return over the lookahead window.
func priceChangeTarget(candles []models.Candle, i int) float64 {
	current := candles[i].Close
	future := candles[i+Lookahead].Close
	if current <= 0.0 || future <= 0.0 {
		return 0.0
	}
	logReturn := math.Log(future / current)
	return math.Max(math.Min(logReturn, maxChange), -maxChange)
}
