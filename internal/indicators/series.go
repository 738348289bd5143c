package indicators

import "math"

// Series helpers return one value per input bar. Bars before the warmup of
// an indicator carry 0 — вызывающий код пропускает их через Warmup.

func emaSeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	ema := sum / float64(period)
	out[period-1] = ema

	multiplier := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		ema = (values[i]-ema)*multiplier + ema
		out[i] = ema
	}
	return out
}

// smmaSeries is Wilder's smoothed moving average.
func smmaSeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	smma := sum / float64(period)
	out[period-1] = smma

	for i := period; i < len(values); i++ {
		smma = (smma*float64(period-1) + values[i]) / float64(period)
		out[i] = smma
	}
	return out
}

func smaSeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// rsiSeries uses Wilder smoothing of gains and losses.
func rsiSeries(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	if period <= 0 || len(closes) < period+1 {
		return out
	}

	var gains, losses float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

func rocSeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := period; i < len(values); i++ {
		if values[i-period] != 0 {
			out[i] = (values[i] - values[i-period]) / values[i-period] * 100.0
		}
	}
	return out
}

func logReturnSeries(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	for i := period; i < len(closes); i++ {
		if closes[i-period] > 0 && closes[i] > 0 {
			out[i] = math.Log(closes[i] / closes[i-period])
		}
	}
	return out
}

// rollingMax/rollingMin over the trailing period including the current bar.
func rollingMax(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		start := i - period + 1
		if start < 0 {
			start = 0
		}
		max := values[start]
		for j := start + 1; j <= i; j++ {
			if values[j] > max {
				max = values[j]
			}
		}
		out[i] = max
	}
	return out
}

func rollingMin(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		start := i - period + 1
		if start < 0 {
			start = 0
		}
		min := values[start]
		for j := start + 1; j <= i; j++ {
			if values[j] < min {
				min = values[j]
			}
		}
		out[i] = min
	}
	return out
}
