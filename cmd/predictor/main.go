package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/computervirtualservices/neurotrade/internal/config"
	"github.com/computervirtualservices/neurotrade/internal/indicators"
	"github.com/computervirtualservices/neurotrade/internal/predictor"
	"github.com/computervirtualservices/neurotrade/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("predictor failed")
	}
}

func run(ctx context.Context, cfg *models.Config, logger zerolog.Logger) error {
	candles, err := readCandles(cfg.CandleFile)
	if err != nil {
		return fmt.Errorf("read candles: %w", err)
	}
	logger.Info().
		Str("pair", cfg.Pair).
		Str("interval", models.IntervalLabel(cfg.IntervalMinutes)).
		Int("candles", len(candles)).
		Msg("loaded candle history")

	builder, err := indicators.NewBuilder(cfg.IntervalMinutes)
	if err != nil {
		return err
	}
	snapshots, err := builder.Build(candles)
	if err != nil {
		return fmt.Errorf("build indicators: %w", err)
	}

	model := newBaselineModel(cfg.Regressor, modelPath(cfg))
	p := predictor.New(model, logger, predictor.WithMomentumThreshold(cfg.MomentumThreshold))

	// Обучение с повторами: временные сбои не должны ронять весь прогон
	var result *models.TrainResult
	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(cfg.TrainRetries))
	err = backoff.Retry(func() error {
		var trainErr error
		result, trainErr = p.Train(ctx, candles, snapshots, cfg.IntervalMinutes, cfg.CrossValidate)
		if trainErr != nil {
			logger.Warn().Err(trainErr).Msg("training attempt failed")
		}
		return trainErr
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	logger.Info().
		Int("samples", result.Samples).
		Dur("elapsed", result.TrainingTime).
		Msg("model trained")
	if result.CrossValidation != nil && !cfg.Regressor {
		logger.Info().
			Float64("accuracy", result.CrossValidation.Accuracy).
			Msg("cross-validation")
	}

	if err := model.Save(); err != nil {
		logger.Warn().Err(err).Msg("could not persist model")
	}

	currentPrice := candles[len(candles)-1].Close
	prediction, err := p.Predict(candles, snapshots, currentPrice, cfg.IntervalMinutes)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}

	out, err := json.MarshalIndent(prediction, "", "  ")
	if err != nil {
		return fmt.Errorf("encode prediction: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func modelPath(cfg *models.Config) string {
	kind := "classifier"
	if cfg.Regressor {
		kind = "regressor"
	}
	return fmt.Sprintf("model_%s_%dm.json", kind, cfg.IntervalMinutes)
}

// readCandles parses rows of
// timestamp,open,high,low,close,vwap,volume,trade_count.
// Строка заголовка допускается и пропускается.
func readCandles(path string) ([]models.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var candles []models.Candle
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) < 7 {
			return nil, fmt.Errorf("line %d: expected at least 7 fields, got %d", line, len(record))
		}

		candle, err := parseCandle(record)
		if err != nil {
			if line == 1 {
				// header
				continue
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		candles = append(candles, candle)
	}

	if len(candles) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", models.ErrInsufficientData, path)
	}
	return candles, nil
}

func parseCandle(record []string) (models.Candle, error) {
	ts, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return models.Candle{}, fmt.Errorf("timestamp %q: %w", record[0], err)
	}
	// Миллисекунды приводим к секундам
	if ts > 1e12 {
		ts = time.UnixMilli(ts).Unix()
	}

	fields := make([]float64, 6)
	for i := 0; i < 6; i++ {
		fields[i], err = strconv.ParseFloat(record[i+1], 64)
		if err != nil {
			return models.Candle{}, fmt.Errorf("field %d %q: %w", i+1, record[i+1], err)
		}
	}

	var tradeCount int64
	if len(record) > 7 && record[7] != "" {
		tradeCount, err = strconv.ParseInt(record[7], 10, 64)
		if err != nil {
			return models.Candle{}, fmt.Errorf("trade_count %q: %w", record[7], err)
		}
	}

	return models.Candle{
		Timestamp:  ts,
		Open:       fields[0],
		High:       fields[1],
		Low:        fields[2],
		Close:      fields[3],
		VWAP:       fields[4],
		Volume:     fields[5],
		TradeCount: tradeCount,
	}, nil
}
