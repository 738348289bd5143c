package labeling

import (
	"fmt"
	"math"

	"github.com/computervirtualservices/neurotrade/internal/metrics"
	"github.com/computervirtualservices/neurotrade/models"
)

// Lookahead — число будущих баров, по которым оценивается исход сигнала.
const Lookahead = 5

// DeriverConfig holds the per-timeframe thresholds of the label rules.
// Percentages are whole percents, not fractions.
type DeriverConfig struct {
	StrongPct      float64 // lookahead move for STRONG_UPTREND / STRONG_REVERSAL
	StrongTC       float64 // trend consistency for strong moves
	StartPct       float64 // lookahead move for UPTREND_START / REVERSAL
	StartPct1      float64 // first-bar move for trend starts
	EstablishedPct float64 // lookahead move for UPTREND
	EstablishedTC  float64
	EndPullback    float64 // negative first-bar move ending an uptrend
	EndRSI         float64 // overbought gate for UPTREND_END
	Profit3        float64
	Profit1        float64
	ConsPct        float64 // max |move| for CONSOLIDATION
	ConsVol        float64 // volatility multiple separating quiet from active
	ChoppyPct1     float64
	ChoppyTC       float64
}

var deriverConfigs = map[int]DeriverConfig{
	1: {
		StrongPct: 1.0, StrongTC: 0.9,
		StartPct: 0.8, StartPct1: 0.4,
		EstablishedPct: 0.5, EstablishedTC: 0.6,
		EndPullback: -0.2, EndRSI: 80,
		Profit3: 0.6, Profit1: 0.3,
		ConsPct: 0.2, ConsVol: 1.2,
		ChoppyPct1: 0.5, ChoppyTC: 0.2,
	},
	5: {
		StrongPct: 1.5, StrongTC: 0.85,
		StartPct: 1.0, StartPct1: 0.5,
		EstablishedPct: 1.0, EstablishedTC: 0.6,
		EndPullback: -0.3, EndRSI: 75,
		Profit3: 1.0, Profit1: 0.5,
		ConsPct: 0.3, ConsVol: 1.2,
		ChoppyPct1: 1.0, ChoppyTC: 0.3,
	},
	15: {
		StrongPct: 2.0, StrongTC: 0.8,
		StartPct: 1.5, StartPct1: 1.0,
		EstablishedPct: 1.5, EstablishedTC: 0.6,
		EndPullback: -0.5, EndRSI: 70,
		Profit3: 1.5, Profit1: 0.75,
		ConsPct: 0.5, ConsVol: 1.2,
		ChoppyPct1: 1.5, ChoppyTC: 0.3,
	},
	30: {
		StrongPct: 3.0, StrongTC: 0.8,
		StartPct: 2.0, StartPct1: 1.0,
		EstablishedPct: 2.0, EstablishedTC: 0.6,
		EndPullback: -0.5, EndRSI: 75,
		Profit3: 3.0, Profit1: 1.0,
		ConsPct: 1.0, ConsVol: 1.2,
		ChoppyPct1: 1.5, ChoppyTC: 0.3,
	},
	60: {
		StrongPct: 4.0, StrongTC: 0.8,
		StartPct: 3.0, StartPct1: 1.5,
		EstablishedPct: 3.0, EstablishedTC: 0.6,
		EndPullback: -0.75, EndRSI: 70,
		Profit3: 4.0, Profit1: 1.5,
		ConsPct: 1.5, ConsVol: 1.2,
		ChoppyPct1: 2.0, ChoppyTC: 0.3,
	},
	240: {
		StrongPct: 6.0, StrongTC: 0.8,
		StartPct: 4.0, StartPct1: 2.0,
		EstablishedPct: 2.0, EstablishedTC: 0.6,
		EndPullback: -1.0, EndRSI: 75,
		Profit3: 6.0, Profit1: 2.0,
		ConsPct: 2.0, ConsVol: 1.2,
		ChoppyPct1: 3.0, ChoppyTC: 0.3,
	},
	1440: {
		StrongPct: 10.0, StrongTC: 0.8,
		StartPct: 6.0, StartPct1: 3.0,
		EstablishedPct: 2.0, EstablishedTC: 0.6,
		EndPullback: -2.0, EndRSI: 75,
		Profit3: 10.0, Profit1: 3.0,
		ConsPct: 3.0, ConsVol: 1.2,
		ChoppyPct1: 5.0, ChoppyTC: 0.3,
	},
	10080: {
		StrongPct: 20.0, StrongTC: 0.8,
		StartPct: 10.0, StartPct1: 5.0,
		EstablishedPct: 5.0, EstablishedTC: 0.6,
		EndPullback: -5.0, EndRSI: 75,
		Profit3: 20.0, Profit1: 5.0,
		ConsPct: 5.0, ConsVol: 1.2,
		ChoppyPct1: 8.0, ChoppyTC: 0.3,
	},
	21600: {
		StrongPct: 30.0, StrongTC: 0.8,
		StartPct: 15.0, StartPct1: 7.0,
		EstablishedPct: 7.0, EstablishedTC: 0.6,
		EndPullback: -7.0, EndRSI: 75,
		Profit3: 30.0, Profit1: 7.0,
		ConsPct: 7.0, ConsVol: 1.2,
		ChoppyPct1: 12.0, ChoppyTC: 0.3,
	},
}

// Deriver maps one bar plus its lookahead window to a signal label via an
// ordered first-match rule chain.
type Deriver struct {
	cfg  DeriverConfig
	calc *metrics.Calculator
}

// NewDeriver returns the deriver for a timeframe in minutes.
func NewDeriver(timeframe int) (*Deriver, error) {
	cfg, ok := deriverConfigs[timeframe]
	if !ok {
		return nil, fmt.Errorf("%w: %dm", models.ErrUnsupportedTimeframe, timeframe)
	}
	return &Deriver{cfg: cfg, calc: metrics.NewCalculator()}, nil
}

// Config returns the threshold set the deriver was built with.
func (d *Deriver) Config() DeriverConfig {
	return d.cfg
}

// DeriveLabel classifies the bar at index i. The caller guarantees enough
// future bars; missing lookahead closes fall back to the nearest known one.
func (d *Deriver) DeriveLabel(candles []models.Candle, snapshots []models.IndicatorSnapshot, i int, avgVol float64) string {
	cfg := d.cfg

	c0 := candles[i].Close
	c1 := closeAt(candles, i+1, c0)
	c3 := closeAt(candles, i+3, c1)
	cN := closeAt(candles, i+Lookahead, c1)

	chg1 := pct(c1, c0)
	chgN := pct(cN, c0)
	tc := trendConsistency(c0, c1, c3, cN)

	volFuture := d.calc.VolatilityFromCandles(candles, i+1, Lookahead)
	highVol := volFuture > avgVol*cfg.ConsVol
	highV := d.calc.IsHighVolume(candles, i)

	var last, prev models.IndicatorSnapshot
	if i >= 0 && i < len(snapshots) {
		last = snapshots[i]
	}
	prev = last
	if i-1 >= 0 && i-1 < len(snapshots) {
		prev = snapshots[i-1]
	}
	momUp := isMomentumUp(last, prev)
	momDn := isMomentumDown(last, prev)

	breakOut := d.calc.DetectBreakout(candles, i)
	breakDown := d.calc.DetectBreakdown(candles, i)

	switch {
	case breakOut && highVol:
		return models.SignalBreakout
	case breakDown && highVol:
		return models.SignalBreakdown

	case chgN >= cfg.StrongPct && tc >= cfg.StrongTC && momUp:
		return models.SignalStrongUptrend
	case chgN <= -cfg.StrongPct && tc <= -cfg.StrongTC && momDn:
		return models.SignalStrongReversal

	case chgN >= cfg.StartPct && chg1 >= cfg.StartPct1 && momUp:
		return models.SignalUptrendStart
	case chgN <= -cfg.StartPct && chg1 <= -cfg.StartPct1 && momDn:
		return models.SignalReversal

	case chgN >= cfg.EstablishedPct && tc >= cfg.EstablishedTC && !highVol:
		return models.SignalUptrend

	case chgN > 0 && chg1 < cfg.EndPullback && last.Get("rsi") > cfg.EndRSI:
		return models.SignalUptrendEnd

	case momUp && highV:
		return models.SignalMomentumUp
	case momDn && highV:
		return models.SignalMomentumDown

	case chgN >= cfg.Profit3:
		return models.SignalProfitUp3
	case chgN >= cfg.Profit1:
		return models.SignalProfitUp1
	case chgN <= -cfg.Profit3:
		return models.SignalProfitDown3
	case chgN <= -cfg.Profit1:
		return models.SignalProfitDown1

	case math.Abs(chgN) < cfg.ConsPct && volFuture < avgVol*cfg.ConsVol:
		return models.SignalConsolidation
	case math.Abs(chg1) > cfg.ChoppyPct1 && highVol && math.Abs(tc) < cfg.ChoppyTC:
		return models.SignalChoppy

	default:
		return models.SignalNeutral
	}
}

func closeAt(candles []models.Candle, i int, fallback float64) float64 {
	if i >= 0 && i < len(candles) {
		return candles[i].Close
	}
	return fallback
}

func pct(a, b float64) float64 {
	if b == 0.0 {
		return 0.0
	}
	return (a - b) / b * 100.0
}

// trendConsistency weighs the direction of three consecutive legs of the
// lookahead window. Монотонный ход даёт ±1.0.
func trendConsistency(c0, c1, c3, c5 float64) float64 {
	parts := [3]float64{0.4, 0.3, 0.3}
	deltas := [3]float64{c1 - c0, c3 - c1, c5 - c3}

	score := 0.0
	for i, delta := range deltas {
		switch {
		case delta > 0:
			score += parts[i]
		case delta < 0:
			score -= parts[i]
		}
	}
	return score / (parts[0] + parts[1] + parts[2])
}

func isMomentumUp(last, prev models.IndicatorSnapshot) bool {
	return last.Get("macd") > last.Get("macd_signal") &&
		last.Get("macd_hist") > prev.Get("macd_hist") &&
		last.Get("rsi") > 50
}

func isMomentumDown(last, prev models.IndicatorSnapshot) bool {
	return last.Get("macd") < last.Get("macd_signal") &&
		last.Get("macd_hist") < prev.Get("macd_hist") &&
		last.Get("rsi") < 50
}
