package features

import (
	"math"
	"sort"
	"sync"

	"github.com/computervirtualservices/neurotrade/models"
)

// snapshotFields lists every raw value an indicator snapshot carries.
// Порядок тут не важен — карта признаков сортируется по алфавиту.
var snapshotFields = []string{
	"open", "high", "low", "close", "volume",
	"log_return", "price_rel_high", "price_rel_low",
	"smma9", "smma21", "smma50", "smma200",
	"ema9", "ema21",
	"rsi", "stoch_k", "stoch_d",
	"macd", "macd_signal", "macd_hist",
	"adx", "roc10", "vroc", "ult_osc",
	"bb_lower", "bb_middle", "bb_upper", "bb_width",
	"atr", "obv",
}

// momentumFields are appended after the sorted snapshot fields, in this order.
var momentumFields = []string{
	"price_rate_of_change",
	"higher_high",
	"higher_low",
	"volume_change",
	"obv_gradient",
	"support_resistance_proximity",
}

var featureNames = sync.OnceValue(func() []string {
	sorted := make([]string, len(snapshotFields))
	copy(sorted, snapshotFields)
	sort.Strings(sorted)
	return append(sorted, momentumFields...)
})

// FeatureNames returns the canonical feature map: all snapshot fields in
// alphabetical order followed by the six momentum features. The slice is
// shared, do not mutate it.
func FeatureNames() []string {
	return featureNames()
}

// Extractor builds model feature vectors from indicator snapshots.
type Extractor struct{}

// NewExtractor returns a feature extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract builds the feature vector for the snapshot at index i. Raw values
// follow the canonical alphabetical order; fields missing from the snapshot
// are skipped. Моментум-признаки считаются по хвосту всей серии.
func (e *Extractor) Extract(snapshots []models.IndicatorSnapshot, current models.Candle, i int) []float64 {
	var last models.IndicatorSnapshot
	if i >= 0 && i < len(snapshots) {
		last = snapshots[i]
	}

	names := FeatureNames()
	raw := names[:len(names)-len(momentumFields)]

	features := make([]float64, 0, len(names))
	for _, name := range raw {
		if last.Has(name) {
			features = append(features, last.Get(name))
		}
	}

	return append(features, e.momentumFeatures(snapshots, current, last.Get("obv"))...)
}

// momentumFeatures derives the six derived features from the series tail.
func (e *Extractor) momentumFeatures(snapshots []models.IndicatorSnapshot, current models.Candle, obv float64) []float64 {
	if len(snapshots) < 2 {
		return make([]float64, len(momentumFields))
	}

	prev := snapshots[len(snapshots)-2]
	prevClose := prev.Get("close")
	if !prev.Has("close") {
		prevClose = current.Open
	}
	prevVol := prev.Get("volume")
	if !prev.Has("volume") {
		prevVol = current.Volume
	}
	prevObv := prev.Get("obv")
	if !prev.Has("obv") {
		prevObv = obv
	}

	roc := 0.0
	if prevClose != 0.0 {
		roc = (current.Close - prevClose) / prevClose * 100.0
	}
	volDiff := 0.0
	if prevVol != 0.0 {
		volDiff = (current.Volume - prevVol) / prevVol * 100.0
	}
	obvGrad := 0.0
	if prevObv != 0.0 {
		obvGrad = (obv - prevObv) / math.Abs(prevObv)
	}

	maxHigh, minLow := highLowRange(tail(snapshots, 8))
	hh := 0.0
	if current.High > maxHigh {
		hh = 1.0
	}
	hl := 0.0
	if current.Low > minLow {
		hl = 1.0
	}

	srProx := srProximity(tail(snapshots, 20), current.Close)

	return []float64{roc, hh, hl, volDiff, obvGrad, srProx}
}

func highLowRange(rows []models.IndicatorSnapshot) (maxHigh, minLow float64) {
	maxHigh = 0.0
	minLow = math.MaxFloat64
	for _, row := range rows {
		if h := row.Get("high"); h > maxHigh {
			maxHigh = h
		}
		if l := row.Get("low"); l < minLow {
			minLow = l
		}
	}
	return maxHigh, minLow
}

// srProximity: насколько цена ближе к поддержке, чем к сопротивлению, [-1..1].
func srProximity(rows []models.IndicatorSnapshot, close float64) float64 {
	if close == 0.0 {
		return 0.0
	}

	res := math.MaxFloat64
	sup := 0.0
	for _, row := range rows {
		if h := row.Get("high"); h > close && h < res {
			res = h
		}
		if l := row.Get("low"); l < close && l > sup {
			sup = l
		}
	}
	if res == math.MaxFloat64 {
		res = close * 1.05
	}
	if sup <= 0.0 {
		sup = close * 0.95
	}

	supDist := (close - sup) / close
	resDist := (res - close) / close
	if supDist == 0.0 || resDist == 0.0 {
		return 0.0
	}
	return (supDist - resDist) / math.Max(supDist, resDist)
}

func tail(rows []models.IndicatorSnapshot, n int) []models.IndicatorSnapshot {
	if len(rows) <= n {
		return rows
	}
	return rows[len(rows)-n:]
}
