package momentum

import (
	"fmt"

	"github.com/computervirtualservices/neurotrade/models"
)

// DefaultThreshold — минимальный суммарный балл для срабатывания детектора.
const DefaultThreshold = 5.0

var maKeys = []string{"ema9", "ema21", "smma21", "smma50"}

// Detector scores the last three indicator snapshots against a weighted set
// of momentum factors. Up additionally checks a hidden bullish divergence,
// so the two directions are not mirror images.
type Detector struct {
	threshold float64
}

// NewDetector returns a detector with the given score threshold.
// Pass 0 or less to use DefaultThreshold.
func NewDetector(threshold float64) *Detector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Detector{threshold: threshold}
}

// Up reports upward momentum over the last three snapshots.
func (d *Detector) Up(snapshots []models.IndicatorSnapshot) (bool, error) {
	prev2, prev, last, err := lastThree(snapshots)
	if err != nil {
		return false, err
	}

	score := 0.0
	score += macdScore(prev2, prev, last, true)
	score += rsiScore(prev, last, true)
	score += priceScore(prev2, prev, last, true)
	score += volumeScore(prev, last)
	score += averageScore(last, true)
	score += stochasticScore(last, true)
	score += obvScore(prev, last, true)
	score += hiddenDivergenceScore(prev, last)

	return score >= d.threshold, nil
}

// Down reports downward momentum over the last three snapshots.
func (d *Detector) Down(snapshots []models.IndicatorSnapshot) (bool, error) {
	prev2, prev, last, err := lastThree(snapshots)
	if err != nil {
		return false, err
	}

	score := 0.0
	score += macdScore(prev2, prev, last, false)
	score += rsiScore(prev, last, false)
	score += priceScore(prev2, prev, last, false)
	score += volumeScore(prev, last)
	score += averageScore(last, false)
	score += stochasticScore(last, false)
	score += obvScore(prev, last, false)

	return score >= d.threshold, nil
}

func lastThree(snapshots []models.IndicatorSnapshot) (prev2, prev, last models.IndicatorSnapshot, err error) {
	if len(snapshots) < 3 {
		return nil, nil, nil, fmt.Errorf("%w: need 3 indicator snapshots, have %d",
			models.ErrInsufficientHistory, len(snapshots))
	}
	n := len(snapshots)
	return snapshots[n-3], snapshots[n-2], snapshots[n-1], nil
}

// macdScore: +1 за двухбарный наклон MACD, +2 за свежее пересечение сигнальной.
func macdScore(prev2, prev, last models.IndicatorSnapshot, bullish bool) float64 {
	score := 0.0
	if bullish {
		if last.Get("macd") > prev.Get("macd") && prev.Get("macd") > prev2.Get("macd") {
			score += 1.0
		}
		if last.Get("macd") > last.Get("macd_signal") && prev.Get("macd") <= prev.Get("macd_signal") {
			score += 2.0
		}
		return score
	}
	if last.Get("macd") < prev.Get("macd") && prev.Get("macd") < prev2.Get("macd") {
		score += 1.0
	}
	if last.Get("macd") < last.Get("macd_signal") && prev.Get("macd") >= prev.Get("macd_signal") {
		score += 2.0
	}
	return score
}

func rsiScore(prev, last models.IndicatorSnapshot, bullish bool) float64 {
	rsi := last.Get("rsi")
	if bullish {
		if rsi > prev.Get("rsi") && rsi < 70 {
			return 1.0
		}
		return 0.0
	}
	if rsi < prev.Get("rsi") && rsi > 30 {
		return 1.0
	}
	return 0.0
}

func priceScore(prev2, prev, last models.IndicatorSnapshot, bullish bool) float64 {
	if bullish {
		if last.Get("close") > prev.Get("close") && prev.Get("close") > prev2.Get("close") {
			return 1.5
		}
		return 0.0
	}
	if last.Get("close") < prev.Get("close") && prev.Get("close") < prev2.Get("close") {
		return 1.5
	}
	return 0.0
}

func volumeScore(prev, last models.IndicatorSnapshot) float64 {
	if last.Get("volume") > prev.Get("volume")*1.1 {
		return 1.5
	}
	return 0.0
}

// averageScore: +1 за каждую скользящую, по нужную сторону от цены.
func averageScore(last models.IndicatorSnapshot, above bool) float64 {
	score := 0.0
	close := last.Get("close")
	for _, key := range maKeys {
		if above {
			if close > last.Get(key) {
				score += 1.0
			}
		} else if close < last.Get(key) {
			score += 1.0
		}
	}
	return score
}

func stochasticScore(last models.IndicatorSnapshot, bullish bool) float64 {
	k := last.Get("stoch_k")
	d := last.Get("stoch_d")
	if bullish {
		if k > d && k > 20 && k < 80 {
			return 1.0
		}
		return 0.0
	}
	if k < d && k < 80 && k > 20 {
		return 1.0
	}
	return 0.0
}

func obvScore(prev, last models.IndicatorSnapshot, bullish bool) float64 {
	if bullish {
		if last.Get("obv") > prev.Get("obv") {
			return 1.0
		}
		return 0.0
	}
	if last.Get("obv") < prev.Get("obv") {
		return 1.0
	}
	return 0.0
}

// hiddenDivergenceScore: цена выше при слабеющем RSI над зоной перепроданности.
// Только для бычьего направления.
func hiddenDivergenceScore(prev, last models.IndicatorSnapshot) float64 {
	if last.Get("close") > prev.Get("close") && last.Get("rsi") < prev.Get("rsi") && last.Get("rsi") > 30 {
		return 2.0
	}
	return 0.0
}
