package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/computervirtualservices/neurotrade/internal/features"
	"github.com/computervirtualservices/neurotrade/models"
)

// baselineModel — простая эталонная модель: ближайший центроид для
// классификации, среднее по ближайшим сэмплам для регрессии. Достаточно,
// чтобы прогнать конвейер целиком без внешнего ML-бэкенда.
type baselineModel struct {
	regression bool
	path       string

	centroids map[string][]float64
	counts    map[string]int

	samples [][]float64
	targets []float64
}

func newBaselineModel(regression bool, path string) *baselineModel {
	return &baselineModel{
		regression: regression,
		path:       path,
		centroids:  map[string][]float64{},
		counts:     map[string]int{},
	}
}

func (m *baselineModel) IsRegressor() bool { return m.regression }

func (m *baselineModel) Train(ctx context.Context, ds *models.LabeledDataset) error {
	if ds.NumSamples() == 0 {
		return fmt.Errorf("train baseline: %w", models.ErrInsufficientData)
	}

	if m.regression {
		m.samples = ds.Samples
		m.targets = ds.Targets
		return nil
	}

	m.centroids = map[string][]float64{}
	m.counts = map[string]int{}
	for i, sample := range ds.Samples {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		label := ds.Labels[i]
		centroid, ok := m.centroids[label]
		if !ok {
			centroid = make([]float64, len(sample))
			m.centroids[label] = centroid
		}
		for j, v := range sample {
			centroid[j] += v
		}
		m.counts[label]++
	}
	for label, centroid := range m.centroids {
		n := float64(m.counts[label])
		for j := range centroid {
			centroid[j] /= n
		}
	}
	return nil
}

func (m *baselineModel) Predict(featureVec []float64) (string, float64, error) {
	if m.regression {
		return "", m.nearestTarget(featureVec), nil
	}

	label, _, err := m.nearestCentroid(featureVec)
	return label, 0.0, err
}

func (m *baselineModel) Probabilities(featureVec []float64) (map[string]float64, error) {
	if m.regression || len(m.centroids) == 0 {
		return nil, nil
	}

	// Веса, обратные расстоянию до центроидов
	weights := map[string]float64{}
	total := 0.0
	for label, centroid := range m.centroids {
		w := 1.0 / (1.0 + distance(featureVec, centroid))
		weights[label] = w
		total += w
	}
	for label := range weights {
		weights[label] /= total
	}
	return weights, nil
}

func (m *baselineModel) FeatureImportances() map[string]float64 {
	if m.regression || len(m.centroids) == 0 {
		return nil
	}

	// Разброс координат центроидов по каждому признаку
	names := features.FeatureNames()
	out := map[string]float64{}
	for j, name := range names {
		min, max := math.Inf(1), math.Inf(-1)
		for _, centroid := range m.centroids {
			if j >= len(centroid) {
				continue
			}
			if centroid[j] < min {
				min = centroid[j]
			}
			if centroid[j] > max {
				max = centroid[j]
			}
		}
		if max > min {
			out[name] = max - min
		}
	}
	return out
}

type baselineState struct {
	Regression bool                 `json:"regression"`
	Centroids  map[string][]float64 `json:"centroids,omitempty"`
	Counts     map[string]int       `json:"counts,omitempty"`
	Samples    [][]float64          `json:"samples,omitempty"`
	Targets    []float64            `json:"targets,omitempty"`
}

func (m *baselineModel) Save() error {
	state := baselineState{
		Regression: m.regression,
		Centroids:  m.centroids,
		Counts:     m.counts,
		Samples:    m.samples,
		Targets:    m.targets,
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode baseline model: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("save baseline model: %w", err)
	}
	return nil
}

func (m *baselineModel) Load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("load baseline model: %w", err)
	}
	var state baselineState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("decode baseline model: %w", err)
	}
	m.regression = state.Regression
	m.centroids = state.Centroids
	m.counts = state.Counts
	m.samples = state.Samples
	m.targets = state.Targets
	return nil
}

func (m *baselineModel) nearestCentroid(featureVec []float64) (string, float64, error) {
	if len(m.centroids) == 0 {
		return "", 0, fmt.Errorf("baseline model is not trained")
	}

	best := ""
	bestDist := math.Inf(1)
	for label, centroid := range m.centroids {
		if d := distance(featureVec, centroid); d < bestDist {
			best, bestDist = label, d
		}
	}
	return best, bestDist, nil
}

// nearestTarget averages the targets of the 5 closest training samples.
func (m *baselineModel) nearestTarget(featureVec []float64) float64 {
	const k = 5
	if len(m.samples) == 0 {
		return 0.0
	}

	type scored struct {
		dist   float64
		target float64
	}
	top := make([]scored, 0, k+1)
	for i, sample := range m.samples {
		entry := scored{dist: distance(featureVec, sample), target: m.targets[i]}
		pos := len(top)
		for pos > 0 && top[pos-1].dist > entry.dist {
			pos--
		}
		if pos < k {
			top = append(top, scored{})
			copy(top[pos+1:], top[pos:])
			top[pos] = entry
			if len(top) > k {
				top = top[:k]
			}
		}
	}

	sum := 0.0
	for _, entry := range top {
		sum += entry.target
	}
	return sum / float64(len(top))
}

func distance(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
