package levels

import (
	"math"
	"sort"

	"github.com/computervirtualservices/neurotrade/models"
)

const (
	defaultLookback = 30
	maxLevels       = 3
)

// Finder detects swing-based support and resistance levels from the tail of
// an indicator series.
type Finder struct {
	lookback int
}

// NewFinder returns a finder over the last lookback rows.
// Pass 0 or less to use the default window of 30.
func NewFinder(lookback int) *Finder {
	if lookback <= 0 {
		lookback = defaultLookback
	}
	return &Finder{lookback: lookback}
}

// Levels returns up to three supports below price and three resistances
// above, each sorted by distance to price. Если свингов нет — процентные
// уровни-заглушки от текущей цены.
func (f *Finder) Levels(snapshots []models.IndicatorSnapshot, price float64) models.SRLevels {
	slice := snapshots
	if len(slice) > f.lookback {
		slice = slice[len(slice)-f.lookback:]
	}

	if len(slice) == 0 {
		return models.SRLevels{
			Support:    []float64{price * 0.95, price * 0.90},
			Resistance: []float64{price * 1.05, price * 1.10},
		}
	}

	lows := make([]float64, len(slice))
	highs := make([]float64, len(slice))
	for i, row := range slice {
		lows[i] = row.Get("low")
		highs[i] = row.Get("high")
	}

	return models.SRLevels{
		Support:    swingLows(lows, price),
		Resistance: swingHighs(highs, price),
	}
}

// swingLows collects 3-point swing lows below price.
func swingLows(lows []float64, price float64) []float64 {
	var candidates []float64
	for i := 1; i < len(lows)-1; i++ {
		if lows[i] < lows[i-1] && lows[i] < lows[i+1] && lows[i] < price {
			candidates = append(candidates, lows[i])
		}
	}
	return closestOrDefault(candidates, price, 0.95, 0.90)
}

// swingHighs collects 3-point swing highs above price.
func swingHighs(highs []float64, price float64) []float64 {
	var candidates []float64
	for i := 1; i < len(highs)-1; i++ {
		if highs[i] > highs[i-1] && highs[i] > highs[i+1] && highs[i] > price {
			candidates = append(candidates, highs[i])
		}
	}
	return closestOrDefault(candidates, price, 1.05, 1.10)
}

func closestOrDefault(candidates []float64, price, fallbackA, fallbackB float64) []float64 {
	if len(candidates) == 0 {
		return []float64{price * fallbackA, price * fallbackB}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return math.Abs(price-candidates[i]) < math.Abs(price-candidates[j])
	})
	if len(candidates) > maxLevels {
		candidates = candidates[:maxLevels]
	}
	return candidates
}
