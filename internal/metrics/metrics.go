package metrics

import (
	"math"

	"github.com/computervirtualservices/neurotrade/models"
)

const defaultLookback = 30

// Calculator provides volatility, volume, breakout and breakdown
// calculations from candle and indicator series.
type Calculator struct {
	volumeLookback   int
	breakoutLookback int
}

// NewCalculator returns a calculator with the default 30-bar lookbacks.
func NewCalculator() *Calculator {
	return &Calculator{
		volumeLookback:   defaultLookback,
		breakoutLookback: defaultLookback,
	}
}

// AverageVolatility returns the mean ATR over the last period snapshots,
// falling back to the high-low range when ATR is absent. 0 on empty input.
func (c *Calculator) AverageVolatility(snapshots []models.IndicatorSnapshot, period int) float64 {
	slice := lastN(snapshots, period)
	if len(slice) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, row := range slice {
		if row.Has("atr") {
			sum += row.Get("atr")
		} else {
			sum += row.Get("high") - row.Get("low")
		}
	}
	return sum / float64(len(slice))
}

// AverageVolume returns the mean volume over the last period snapshots.
func (c *Calculator) AverageVolume(snapshots []models.IndicatorSnapshot, period int) float64 {
	slice := lastN(snapshots, period)
	if len(slice) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, row := range slice {
		sum += row.Get("volume")
	}
	return sum / float64(len(slice))
}

// VolatilityFromCandles computes the average (high-low)/open*100 over a
// forward window of candles. Бары с нулевым open пропускаются.
func (c *Calculator) VolatilityFromCandles(candles []models.Candle, startIndex, length int) float64 {
	if startIndex < 0 {
		startIndex = 0
	}
	if startIndex >= len(candles) {
		return 0.0
	}
	end := startIndex + length
	if end > len(candles) {
		end = len(candles)
	}

	slice := candles[startIndex:end]
	if len(slice) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, candle := range slice {
		if candle.Open > 0.0 {
			sum += (candle.High - candle.Low) / candle.Open * 100.0
		}
	}
	return sum / float64(len(slice))
}

// IsHighVolume reports whether volume at index exceeds 1.5x the mean volume
// of the preceding lookback window.
func (c *Calculator) IsHighVolume(candles []models.Candle, index int) bool {
	if index <= 0 || index >= len(candles) {
		return false
	}

	start := index - c.volumeLookback
	if start < 0 {
		start = 0
	}

	sum := 0.0
	count := 0
	for i := start; i < index; i++ {
		sum += candles[i].Volume
		count++
	}
	if count == 0 {
		return false
	}

	avg := sum / float64(count)
	return avg > 0.0 && candles[index].Volume > avg*1.5
}

// DetectBreakout reports whether the current high exceeds the maximum high
// of the preceding lookback window. False without history.
func (c *Calculator) DetectBreakout(candles []models.Candle, index int) bool {
	if index <= 0 || index >= len(candles) {
		return false
	}

	start := index - c.breakoutLookback
	if start < 0 {
		start = 0
	}

	maxHigh := math.Inf(-1)
	for i := start; i < index; i++ {
		if candles[i].High > maxHigh {
			maxHigh = candles[i].High
		}
	}
	return candles[index].High > maxHigh
}

// DetectBreakdown reports whether the current low is below the minimum low
// of the preceding lookback window. False without history.
func (c *Calculator) DetectBreakdown(candles []models.Candle, index int) bool {
	if index <= 0 || index >= len(candles) {
		return false
	}

	start := index - c.breakoutLookback
	if start < 0 {
		start = 0
	}

	minLow := math.Inf(1)
	for i := start; i < index; i++ {
		if candles[i].Low < minLow {
			minLow = candles[i].Low
		}
	}
	return candles[index].Low < minLow
}

// DetectBreakoutSnapshots is DetectBreakout over indicator rows; used at
// inference time when only the snapshot series is at hand.
func (c *Calculator) DetectBreakoutSnapshots(snapshots []models.IndicatorSnapshot, index int) bool {
	if index <= 0 || index >= len(snapshots) {
		return false
	}

	start := index - c.breakoutLookback
	if start < 0 {
		start = 0
	}

	maxHigh := math.Inf(-1)
	for i := start; i < index; i++ {
		if h := snapshots[i].Get("high"); h > maxHigh {
			maxHigh = h
		}
	}
	return snapshots[index].Get("high") > maxHigh
}

// DetectBreakdownSnapshots is DetectBreakdown over indicator rows.
func (c *Calculator) DetectBreakdownSnapshots(snapshots []models.IndicatorSnapshot, index int) bool {
	if index <= 0 || index >= len(snapshots) {
		return false
	}

	start := index - c.breakoutLookback
	if start < 0 {
		start = 0
	}

	minLow := math.Inf(1)
	for i := start; i < index; i++ {
		if l := snapshots[i].Get("low"); l < minLow {
			minLow = l
		}
	}
	return snapshots[index].Get("low") < minLow
}

func lastN(snapshots []models.IndicatorSnapshot, n int) []models.IndicatorSnapshot {
	if n <= 0 || len(snapshots) == 0 {
		return nil
	}
	if len(snapshots) <= n {
		return snapshots
	}
	return snapshots[len(snapshots)-n:]
}
