package predictor

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/computervirtualservices/neurotrade/internal/features"
	"github.com/computervirtualservices/neurotrade/internal/labeling"
	"github.com/computervirtualservices/neurotrade/internal/levels"
	"github.com/computervirtualservices/neurotrade/internal/metrics"
	"github.com/computervirtualservices/neurotrade/internal/momentum"
	"github.com/computervirtualservices/neurotrade/internal/recommend"
	"github.com/computervirtualservices/neurotrade/internal/timeframe"
	"github.com/computervirtualservices/neurotrade/models"
)

// Predictor ties the model, the labeler and the recommendation stack into
// one prediction pipeline.
type Predictor struct {
	model    models.TrainableModel
	fx       models.FeatureExtractor
	labeler  *labeling.Labeler
	detector *momentum.Detector
	builder  *recommend.Builder
	calc     *metrics.Calculator
	log      zerolog.Logger
}

// Option configures optional predictor behavior.
type Option func(*Predictor)

// WithMomentumThreshold overrides the momentum detector score threshold.
func WithMomentumThreshold(threshold float64) Option {
	return func(p *Predictor) {
		p.detector = momentum.NewDetector(threshold)
	}
}

// New wires a predictor around a trainable model.
func New(model models.TrainableModel, logger zerolog.Logger, opts ...Option) *Predictor {
	fx := features.NewExtractor()
	p := &Predictor{
		model:    model,
		fx:       fx,
		labeler:  labeling.NewLabeler(fx),
		detector: momentum.NewDetector(0),
		builder:  recommend.NewBuilder(levels.NewFinder(0)),
		calc:     metrics.NewCalculator(),
		log:      logger.With().Str("component", "predictor").Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Train builds a single-timeframe dataset and fits the model on it.
func (p *Predictor) Train(ctx context.Context, candles []models.Candle, snapshots []models.IndicatorSnapshot, tf int, crossValidate bool) (*models.TrainResult, error) {
	ds, err := p.labeler.MakeDataset(candles, snapshots, tf, p.model.IsRegressor())
	if err != nil {
		return nil, fmt.Errorf("build dataset: %w", err)
	}
	return p.fit(ctx, ds, tf, crossValidate)
}

// TrainMultiTF fits the model on concatenated primary and higher timeframes.
func (p *Predictor) TrainMultiTF(ctx context.Context, candles []models.Candle, snapshots, nextSnapshots []models.IndicatorSnapshot, tf int, crossValidate bool) (*models.TrainResult, error) {
	ds, err := p.labeler.MakeMultiTFDataset(candles, snapshots, nextSnapshots, tf, p.model.IsRegressor())
	if err != nil {
		return nil, fmt.Errorf("build multi-timeframe dataset: %w", err)
	}
	return p.fit(ctx, ds, tf, crossValidate)
}

func (p *Predictor) fit(ctx context.Context, ds *models.LabeledDataset, tf int, crossValidate bool) (*models.TrainResult, error) {
	p.log.Info().
		Int("samples", ds.NumSamples()).
		Int("timeframe", tf).
		Bool("regression", ds.Regression).
		Msg("training model")

	started := time.Now()
	if err := p.model.Train(ctx, ds); err != nil {
		return nil, fmt.Errorf("train model: %w", err)
	}

	result := &models.TrainResult{
		Samples:           ds.NumSamples(),
		TrainingTime:      time.Since(started),
		FeatureImportance: p.model.FeatureImportances(),
	}

	if crossValidate {
		report, err := p.validate(ds)
		if err != nil {
			return nil, fmt.Errorf("cross-validate: %w", err)
		}
		result.CrossValidation = report
	}

	p.log.Info().
		Dur("elapsed", result.TrainingTime).
		Msg("training finished")
	return result, nil
}

// validate scores the freshly trained model on its own training set. Это
// оценка сверху, не замена отложенной выборке.
func (p *Predictor) validate(ds *models.LabeledDataset) (*models.CrossValidationReport, error) {
	if ds.Regression {
		return p.validateRegression(ds)
	}
	return p.validateClassification(ds)
}

func (p *Predictor) validateClassification(ds *models.LabeledDataset) (*models.CrossValidationReport, error) {
	correct := 0
	actual := map[string]int{}
	predicted := map[string]int{}
	hits := map[string]int{}

	for i, sample := range ds.Samples {
		label, _, err := p.model.Predict(sample)
		if err != nil {
			return nil, err
		}
		want := ds.Labels[i]
		actual[want]++
		predicted[label]++
		if label == want {
			correct++
			hits[want]++
		}
	}

	report := &models.CrossValidationReport{
		PerLabel: map[string]models.LabelScore{},
	}
	if len(ds.Samples) > 0 {
		report.Accuracy = float64(correct) / float64(len(ds.Samples))
	}
	for label, support := range actual {
		score := models.LabelScore{
			Support: support,
			Recall:  float64(hits[label]) / float64(support),
		}
		if predicted[label] > 0 {
			score.Precision = float64(hits[label]) / float64(predicted[label])
		}
		report.PerLabel[label] = score
	}
	return report, nil
}

func (p *Predictor) validateRegression(ds *models.LabeledDataset) (*models.CrossValidationReport, error) {
	n := len(ds.Samples)
	if n == 0 {
		return &models.CrossValidationReport{}, nil
	}

	mean := 0.0
	for _, target := range ds.Targets {
		mean += target
	}
	mean /= float64(n)

	sse, sst := 0.0, 0.0
	for i, sample := range ds.Samples {
		_, value, err := p.model.Predict(sample)
		if err != nil {
			return nil, err
		}
		diff := value - ds.Targets[i]
		sse += diff * diff
		dm := ds.Targets[i] - mean
		sst += dm * dm
	}

	report := &models.CrossValidationReport{
		RMSE: math.Sqrt(sse / float64(n)),
	}
	if sst > 0 {
		report.RSquared = 1.0 - sse/sst
	}
	return report, nil
}

// Predict classifies the latest bar and wraps it into a recommendation.
// Пустая история даёт нейтральный ответ, а не ошибку.
func (p *Predictor) Predict(candles []models.Candle, snapshots []models.IndicatorSnapshot, currentPrice float64, tf int) (*models.PredictionResult, error) {
	if len(candles) == 0 || len(snapshots) == 0 {
		return p.defaultResponse(tf)
	}

	lastBar := candles[len(candles)-1]
	featureVec := p.fx.Extract(snapshots, lastBar, len(snapshots)-1)
	return p.resolve(featureVec, snapshots, currentPrice, tf)
}

// PredictMultiTF classifies using concatenated primary and higher-timeframe
// features.
func (p *Predictor) PredictMultiTF(candles []models.Candle, snapshots, nextSnapshots []models.IndicatorSnapshot, currentPrice float64, tf int) (*models.PredictionResult, error) {
	if len(candles) == 0 || len(snapshots) == 0 {
		return p.defaultResponse(tf)
	}

	lastBar := candles[len(candles)-1]
	f1 := p.fx.Extract(snapshots, lastBar, len(snapshots)-1)
	f2 := p.fx.Extract(nextSnapshots, lastBar, len(nextSnapshots)-1)
	return p.resolve(append(f1, f2...), snapshots, currentPrice, tf)
}

func (p *Predictor) resolve(featureVec []float64, snapshots []models.IndicatorSnapshot, currentPrice float64, tf int) (*models.PredictionResult, error) {
	label, value, err := p.model.Predict(featureVec)
	if err != nil {
		return nil, fmt.Errorf("model predict: %w", err)
	}

	if p.model.IsRegressor() {
		return p.resolveRegression(value, snapshots, currentPrice, tf)
	}

	confidence := p.classifierConfidence(featureVec, label)
	if label == models.SignalNeutral {
		label = p.momentumOverride(snapshots, label)
	}

	rec, err := p.builder.Build(label, confidence, snapshots, currentPrice, tf)
	if err != nil {
		return nil, err
	}

	p.log.Debug().Str("signal", label).Float64("confidence", confidence).Msg("classified bar")
	return p.result(label, confidence, 0.0, rec), nil
}

func (p *Predictor) classifierConfidence(featureVec []float64, label string) float64 {
	probs, err := p.model.Probabilities(featureVec)
	if err != nil || len(probs) == 0 {
		return 0.0
	}
	return probs[label]
}

// resolveRegression maps a predicted log return onto the signal taxonomy.
// ADX gates keep trend labels honest, profit tiers are purely model-driven.
func (p *Predictor) resolveRegression(prediction float64, snapshots []models.IndicatorSnapshot, currentPrice float64, tf int) (*models.PredictionResult, error) {
	thr, err := timeframe.For(tf, timeframe.ModeRegressor)
	if err != nil {
		return nil, err
	}
	noiseBand := thr.Momentum

	barIndex := len(snapshots) - 1
	breakOut := p.calc.DetectBreakoutSnapshots(snapshots, barIndex)
	breakDown := p.calc.DetectBreakdownSnapshots(snapshots, barIndex)

	var last models.IndicatorSnapshot
	if len(snapshots) > 0 {
		last = snapshots[len(snapshots)-1]
	}
	rsi := last.Get("rsi")
	adx := last.Get("adx")

	var signal string
	switch {
	case breakOut:
		signal = models.SignalBreakout
	case breakDown:
		signal = models.SignalBreakdown

	case prediction >= thr.StrongMove && adx >= 30 && last.Get("macd") >= last.Get("macd_signal"):
		signal = models.SignalStrongUptrend
	case prediction >= thr.Uptrend && adx >= 25:
		signal = models.SignalUptrend
	case prediction >= thr.TrendStart && adx >= 20:
		signal = models.SignalUptrendStart

	case prediction >= thr.Profit3:
		signal = models.SignalProfitUp3
	case prediction >= thr.Profit1:
		signal = models.SignalProfitUp1
	case prediction <= -thr.Profit3:
		signal = models.SignalProfitDown3
	case prediction <= -thr.Profit1:
		signal = models.SignalProfitDown1

	case prediction < 0 && rsi > 70:
		signal = models.SignalUptrendEnd

	case prediction <= -thr.StrongMove && adx >= 30:
		signal = models.SignalStrongReversal
	case prediction <= -thr.Uptrend && adx >= 25:
		signal = models.SignalReversal

	case math.Abs(prediction) < noiseBand:
		signal = models.SignalConsolidation
	case math.Abs(prediction) < thr.TrendStart:
		signal = models.SignalChoppy

	case prediction >= thr.Momentum:
		signal = models.SignalMomentumUp
	case prediction <= -thr.Momentum:
		signal = models.SignalMomentumDown

	default:
		signal = models.SignalNeutral
	}

	if signal == models.SignalNeutral {
		signal = p.momentumOverride(snapshots, signal)
	}

	confidence := regressionConfidence(prediction, noiseBand)
	rec, err := p.builder.Build(signal, confidence, snapshots, currentPrice, tf)
	if err != nil {
		return nil, err
	}

	p.log.Debug().
		Str("signal", signal).
		Float64("prediction", prediction).
		Msg("mapped regression output")
	return p.result(signal, confidence, prediction, rec), nil
}

// regressionConfidence grows with the predicted move relative to the noise
// band and saturates at 1.
func regressionConfidence(prediction, noiseBand float64) float64 {
	if noiseBand <= 0 {
		return 0.0
	}
	return math.Min(math.Abs(prediction)/(noiseBand*4.0), 1.0)
}

// momentumOverride upgrades a neutral call when the detector sees momentum.
// Нехватка истории — не повод падать, остаёмся нейтральными.
func (p *Predictor) momentumOverride(snapshots []models.IndicatorSnapshot, current string) string {
	if up, err := p.detector.Up(snapshots); err == nil && up {
		return models.SignalMomentumUp
	}
	if down, err := p.detector.Down(snapshots); err == nil && down {
		return models.SignalMomentumDown
	}
	return current
}

func (p *Predictor) defaultResponse(tf int) (*models.PredictionResult, error) {
	rec, err := p.builder.Build(models.SignalNeutral, 0.0, nil, 0.0, tf)
	if err != nil {
		return nil, err
	}
	return p.result(models.SignalNeutral, 0.0, 0.0, rec), nil
}

func (p *Predictor) result(signal string, confidence, prediction float64, rec models.Recommendation) *models.PredictionResult {
	return &models.PredictionResult{
		PredictionID:   uuid.NewString(),
		Signal:         signal,
		Confidence:     confidence,
		Prediction:     prediction,
		Recommendation: &rec,
		Timestamp:      time.Now().UTC(),
	}
}

// FeatureImportance exposes the model's per-feature weights.
func (p *Predictor) FeatureImportance() map[string]float64 {
	return p.model.FeatureImportances()
}
