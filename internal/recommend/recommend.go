package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/computervirtualservices/neurotrade/internal/levels"
	"github.com/computervirtualservices/neurotrade/internal/tradeparams"
	"github.com/computervirtualservices/neurotrade/models"
)

const (
	confHigh   = 0.80
	confMedium = 0.65
)

type actionStrength struct {
	action   string
	strength string
}

// actionMap translates signals into an action plus a strength grade.
// PROFIT_* значит «ждём ещё X% хода в эту сторону»: вверх — BUY, вниз — SELL.
var actionMap = map[string]actionStrength{
	models.SignalStrongUptrend: {models.ActionBuy, models.StrengthStrong},
	models.SignalUptrendStart:  {models.ActionBuy, models.StrengthMedium},
	models.SignalUptrend:       {models.ActionBuy, models.StrengthMedium},

	models.SignalProfitUp3: {models.ActionBuy, models.StrengthStrong},
	models.SignalProfitUp1: {models.ActionBuy, models.StrengthMedium},

	models.SignalUptrendEnd:     {models.ActionSell, models.StrengthMedium},
	models.SignalStrongReversal: {models.ActionSell, models.StrengthStrong},
	models.SignalReversal:       {models.ActionSell, models.StrengthMedium},

	models.SignalProfitDown1: {models.ActionSell, models.StrengthMedium},
	models.SignalProfitDown3: {models.ActionSell, models.StrengthStrong},

	models.SignalBreakout:  {models.ActionBuy, models.StrengthStrong},
	models.SignalBreakdown: {models.ActionSell, models.StrengthStrong},

	models.SignalMomentumUp:   {models.ActionBuy, models.StrengthLow},
	models.SignalMomentumDown: {models.ActionSell, models.StrengthLow},

	models.SignalConsolidation: {models.ActionHold, models.StrengthNeutral},
	models.SignalChoppy:        {models.ActionAvoid, models.StrengthNeutral},
	models.SignalNeutral:       {models.ActionHold, models.StrengthNeutral},
}

// Builder assembles the full recommendation payload for a predicted signal.
type Builder struct {
	srf *levels.Finder
}

// NewBuilder returns a builder using the given support/resistance finder.
func NewBuilder(srf *levels.Finder) *Builder {
	if srf == nil {
		srf = levels.NewFinder(0)
	}
	return &Builder{srf: srf}
}

// SignalsForAction returns all signals mapped to an action, sorted.
// Регистр действия не важен.
func SignalsForAction(action string) []string {
	action = strings.ToUpper(action)
	var out []string
	for signal, as := range actionMap {
		if as.action == action {
			out = append(out, signal)
		}
	}
	sort.Strings(out)
	return out
}

// Build assembles the recommendation for a signal at the given price.
// Conflicting indicator readings downgrade confidence to LOW and cap it
// at 75 percent.
func (b *Builder) Build(signal string, confidence float64, snapshots []models.IndicatorSnapshot, price float64, interval int) (models.Recommendation, error) {
	as, ok := actionMap[signal]
	if !ok {
		as = actionStrength{models.ActionHold, models.StrengthNeutral}
	}
	confidencePct, level := confidenceLevel(confidence)

	var last models.IndicatorSnapshot
	if len(snapshots) > 0 {
		last = snapshots[len(snapshots)-1]
	}
	keyInd := extractKeyIndicators(last)
	srLevels := b.srf.Levels(snapshots, price)

	gen, err := tradeparams.NewGenerator(interval)
	if err != nil {
		return models.Recommendation{}, err
	}
	tp := gen.Generate(signal, price, last.Get("atr"), srLevels)

	exp := tp.Explanation
	if hasConflictingIndicators(keyInd) {
		level = models.ConfidenceLow
		confidencePct = math.Min(confidencePct, 75.0)
		exp += " Conflicting indicators."
	}

	return models.Recommendation{
		Action:              as.action,
		Strength:            as.strength,
		Confidence:          math.Round(confidencePct*100) / 100,
		ConfidenceLevel:     level,
		Explanation:         exp,
		SuggestedEntry:      tp.Entry,
		SuggestedStopLoss:   tp.StopLoss,
		SuggestedTakeProfit: tp.TakeProfit,
		SupportLevels:       srLevels.Support,
		ResistanceLevels:    srLevels.Resistance,
		KeyIndicators:       keyInd,
	}, nil
}

func confidenceLevel(conf float64) (float64, string) {
	pct := conf * 100.0
	switch {
	case conf >= confHigh:
		return pct, models.ConfidenceHigh
	case conf >= confMedium:
		return pct, models.ConfidenceMedium
	default:
		return pct, models.ConfidenceLow
	}
}

func extractKeyIndicators(last models.IndicatorSnapshot) map[string]models.KeyIndicator {
	rsi := models.KeyIndicator{Note: "Unknown"}
	if last.Has("rsi") {
		rsi = models.KeyIndicator{Value: last.Get("rsi"), Note: interpretRSI(last.Get("rsi"))}
	}

	macd := models.KeyIndicator{Note: "Unknown"}
	if last.Has("macd") && last.Has("macd_signal") {
		note := "Bearish"
		if last.Get("macd") > last.Get("macd_signal") {
			note = "Bullish"
		}
		macd = models.KeyIndicator{
			Value:  last.Get("macd"),
			Signal: last.Get("macd_signal"),
			Note:   note,
		}
	}

	adx := models.KeyIndicator{Note: "Unknown"}
	if last.Has("adx") {
		adx = models.KeyIndicator{Value: last.Get("adx"), Note: interpretADX(last.Get("adx"))}
	}

	return map[string]models.KeyIndicator{
		"rsi":  rsi,
		"macd": macd,
		"adx":  adx,
	}
}

func interpretRSI(rsi float64) string {
	switch {
	case rsi > 70:
		return "Overbought"
	case rsi < 30:
		return "Oversold"
	case rsi > 60:
		return "Bullish"
	case rsi < 40:
		return "Bearish"
	default:
		return "Neutral"
	}
}

func interpretADX(adx float64) string {
	switch {
	case adx > 50:
		return "Strong Trend"
	case adx > 25:
		return "Moderate Trend"
	case adx < 20:
		return "Weak/No Trend"
	default:
		return "Developing Trend"
	}
}

// hasConflictingIndicators: слабый ADX либо разнонаправленные RSI и MACD.
func hasConflictingIndicators(keyInd map[string]models.KeyIndicator) bool {
	adx, ok := keyInd["adx"]
	if ok && adx.Note != "Unknown" && adx.Value < 20.0 {
		return true
	}

	bull, bear := 0, 0
	if rsi, ok := keyInd["rsi"]; ok && rsi.Note != "Unknown" {
		switch {
		case rsi.Value > 60:
			bull++
		case rsi.Value < 40:
			bear++
		}
	}
	if macd, ok := keyInd["macd"]; ok && macd.Note != "Unknown" {
		switch {
		case macd.Value > macd.Signal:
			bull++
		case macd.Value < macd.Signal:
			bear++
		}
	}
	return bull > 0 && bear > 0
}
