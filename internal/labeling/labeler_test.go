package labeling

import (
	"errors"
	"math"
	"testing"

	"github.com/computervirtualservices/neurotrade/internal/features"
	"github.com/computervirtualservices/neurotrade/models"
)

func series(n int) ([]models.Candle, []models.IndicatorSnapshot) {
	names := features.FeatureNames()
	candles := make([]models.Candle, n)
	snapshots := make([]models.IndicatorSnapshot, n)
	for i := range candles {
		close := 100.0 + float64(i)*0.1
		candles[i] = models.Candle{
			Open: close, High: close + 0.5, Low: close - 0.5, Close: close, Volume: 100.0,
		}
		row := models.IndicatorSnapshot{}
		for _, name := range names[:len(names)-6] {
			row[name] = 1.0
		}
		row["close"] = close
		row["high"] = close + 0.5
		row["low"] = close - 0.5
		row["volume"] = 100.0
		snapshots[i] = row
	}
	return candles, snapshots
}

func TestMakeDatasetSampleCount(t *testing.T) {
	l := NewLabeler(features.NewExtractor())

	candles, snapshots := series(60)
	ds, err := l.MakeDataset(candles, snapshots, 60, false)
	if err != nil {
		t.Fatalf("MakeDataset: %v", err)
	}

	// Индексы 35..54 включительно
	if got := ds.NumSamples(); got != 20 {
		t.Errorf("expected 20 samples, got %d", got)
	}
	if len(ds.Labels) != 20 {
		t.Errorf("expected 20 labels, got %d", len(ds.Labels))
	}
	if len(ds.Targets) != 0 {
		t.Errorf("classification dataset must have no targets, got %d", len(ds.Targets))
	}
	for i, sample := range ds.Samples {
		if len(sample) != 36 {
			t.Fatalf("sample %d: expected 36 features, got %d", i, len(sample))
		}
	}
	for i, label := range ds.Labels {
		if label == "" {
			t.Errorf("label %d is empty", i)
		}
	}
}

func TestMakeDatasetRegressionTargets(t *testing.T) {
	l := NewLabeler(features.NewExtractor())

	candles, snapshots := series(60)
	ds, err := l.MakeDataset(candles, snapshots, 60, true)
	if err != nil {
		t.Fatalf("MakeDataset: %v", err)
	}

	if !ds.Regression {
		t.Error("expected regression dataset")
	}
	if len(ds.Targets) != 20 || len(ds.Labels) != 0 {
		t.Fatalf("expected 20 targets and no labels, got %d/%d", len(ds.Targets), len(ds.Labels))
	}

	// Первый сэмпл: i=35, close 103.5 -> 104.0 через 5 баров
	want := math.Log(104.0 / 103.5)
	if got := ds.Targets[0]; math.Abs(got-want) > 1e-9 {
		t.Errorf("target[0]: expected %v, got %v", want, got)
	}
}

func TestMakeDatasetTooFewCandles(t *testing.T) {
	l := NewLabeler(features.NewExtractor())

	candles, snapshots := series(39)
	if _, err := l.MakeDataset(candles, snapshots, 60, false); !errors.Is(err, models.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestMakeDatasetUnsupportedTimeframe(t *testing.T) {
	l := NewLabeler(features.NewExtractor())

	candles, snapshots := series(60)
	if _, err := l.MakeDataset(candles, snapshots, 45, false); !errors.Is(err, models.ErrUnsupportedTimeframe) {
		t.Errorf("expected ErrUnsupportedTimeframe, got %v", err)
	}
}

func TestMakeMultiTFDataset(t *testing.T) {
	l := NewLabeler(features.NewExtractor())

	candles, snapshots := series(60)
	_, next := series(60)

	ds, err := l.MakeMultiTFDataset(candles, snapshots, next, 60, false)
	if err != nil {
		t.Fatalf("MakeMultiTFDataset: %v", err)
	}

	// Верхняя граница исключается: индексы 35..53
	if got := ds.NumSamples(); got != 19 {
		t.Errorf("expected 19 samples, got %d", got)
	}
	for i, sample := range ds.Samples {
		if len(sample) != 72 {
			t.Fatalf("sample %d: expected 72 concatenated features, got %d", i, len(sample))
		}
	}
}

func TestMakeMultiTFDatasetShortHigherTF(t *testing.T) {
	l := NewLabeler(features.NewExtractor())

	candles, snapshots := series(60)
	_, next := series(20)

	if _, err := l.MakeMultiTFDataset(candles, snapshots, next, 60, false); !errors.Is(err, models.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}
