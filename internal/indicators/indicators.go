package indicators

import (
	"fmt"
	"math"

	"github.com/computervirtualservices/neurotrade/internal/timeframe"
	"github.com/computervirtualservices/neurotrade/models"
)

// Builder computes the indicator snapshot series for one timeframe.
// Snapshot rows align 1:1 with the candle slice.
type Builder struct {
	periods timeframe.Periods
}

// NewBuilder returns a snapshot builder for a timeframe in minutes.
func NewBuilder(minutes int) (*Builder, error) {
	periods, err := timeframe.PeriodsFor(minutes)
	if err != nil {
		return nil, fmt.Errorf("indicator periods: %w", err)
	}
	return &Builder{periods: periods}, nil
}

// Build computes one snapshot per candle. Значения до прогрева
// соответствующего индикатора равны нулю.
func (b *Builder) Build(candles []models.Candle) ([]models.IndicatorSnapshot, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("%w: no candles", models.ErrInsufficientData)
	}

	n := len(candles)
	opens := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i, c := range candles {
		opens[i] = c.Open
		highs[i] = c.High
		lows[i] = c.Low
		closes[i] = c.Close
		volumes[i] = c.Volume
	}

	p := b.periods

	logRet := logReturnSeries(closes, p.Return)
	relHigh := rollingMax(highs, p.PriceRel)
	relLow := rollingMin(lows, p.PriceRel)

	smma9 := smmaSeries(closes, p.SMMA9)
	smma21 := smmaSeries(closes, p.SMMA21)
	smma50 := smmaSeries(closes, p.SMMA50)
	smma200 := smmaSeries(closes, p.SMMA200)
	ema9 := emaSeries(closes, p.EMA9)
	ema21 := emaSeries(closes, p.EMA21)

	rsi := rsiSeries(closes, p.RSI)
	stochK, stochD := stochasticSeries(highs, lows, closes, p.StochFastK, p.StochSlowK, p.StochSlowD)
	macd, macdSignal, macdHist := macdSeries(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	adx := adxSeries(highs, lows, closes, p.ADX)
	roc := rocSeries(closes, p.ROC)
	vroc := rocSeries(volumes, p.VolumeROC)
	ultOsc := ultimateOscillatorSeries(highs, lows, closes, p.Ult1, p.Ult2, p.Ult3)
	bbLower, bbMiddle, bbUpper := bollingerSeries(closes, p.BBands, p.BBandsStdDev)
	atr := atrSeries(highs, lows, closes, p.ATR)
	obv := obvSeries(closes, volumes)

	snapshots := make([]models.IndicatorSnapshot, n)
	for i := 0; i < n; i++ {
		width := 0.0
		if bbMiddle[i] != 0 {
			width = (bbUpper[i] - bbLower[i]) / bbMiddle[i]
		}
		priceRelHigh := 0.0
		if relHigh[i] != 0 {
			priceRelHigh = closes[i] / relHigh[i]
		}
		priceRelLow := 0.0
		if relLow[i] != 0 {
			priceRelLow = closes[i] / relLow[i]
		}

		snapshots[i] = models.IndicatorSnapshot{
			"open":           opens[i],
			"high":           highs[i],
			"low":            lows[i],
			"close":          closes[i],
			"volume":         volumes[i],
			"log_return":     logRet[i],
			"price_rel_high": priceRelHigh,
			"price_rel_low":  priceRelLow,
			"smma9":          smma9[i],
			"smma21":         smma21[i],
			"smma50":         smma50[i],
			"smma200":        smma200[i],
			"ema9":           ema9[i],
			"ema21":          ema21[i],
			"rsi":            rsi[i],
			"stoch_k":        stochK[i],
			"stoch_d":        stochD[i],
			"macd":           macd[i],
			"macd_signal":    macdSignal[i],
			"macd_hist":      macdHist[i],
			"adx":            adx[i],
			"roc10":          roc[i],
			"vroc":           vroc[i],
			"ult_osc":        ultOsc[i],
			"bb_lower":       bbLower[i],
			"bb_middle":      bbMiddle[i],
			"bb_upper":       bbUpper[i],
			"bb_width":       width,
			"atr":            atr[i],
			"obv":            obv[i],
		}
	}
	return snapshots, nil
}

// stochasticSeries: fast %K over the high/low range, then two SMA
// smoothing passes for slow %K and %D.
func stochasticSeries(highs, lows, closes []float64, fastK, slowK, slowD int) ([]float64, []float64) {
	n := len(closes)
	fast := make([]float64, n)
	maxHigh := rollingMax(highs, fastK)
	minLow := rollingMin(lows, fastK)
	for i := 0; i < n; i++ {
		if i < fastK-1 {
			continue
		}
		spread := maxHigh[i] - minLow[i]
		if spread > 0 {
			fast[i] = (closes[i] - minLow[i]) / spread * 100.0
		}
	}
	k := smaSeries(fast, slowK)
	d := smaSeries(k, slowD)
	return k, d
}

func macdSeries(closes []float64, fastPeriod, slowPeriod, signalPeriod int) ([]float64, []float64, []float64) {
	n := len(closes)
	macd := make([]float64, n)
	signal := make([]float64, n)
	hist := make([]float64, n)

	fast := emaSeries(closes, fastPeriod)
	slow := emaSeries(closes, slowPeriod)
	for i := slowPeriod - 1; i < n; i++ {
		macd[i] = fast[i] - slow[i]
	}

	// Сигнальная линия — EMA от MACD, считается от первого валидного бара
	if n > slowPeriod-1 {
		tail := emaSeries(macd[slowPeriod-1:], signalPeriod)
		for i, v := range tail {
			signal[slowPeriod-1+i] = v
		}
	}
	for i := 0; i < n; i++ {
		if signal[i] != 0 || macd[i] != 0 {
			hist[i] = macd[i] - signal[i]
		}
	}
	return macd, signal, hist
}

// adxSeries is Wilder's ADX over smoothed directional movement.
func adxSeries(highs, lows, closes []float64, period int) []float64 {
	n := len(closes)
	out := make([]float64, n)
	if n < 2*period {
		return out
	}

	tr := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		tr[i] = trueRange(highs[i], lows[i], closes[i-1])
		upMove := highs[i] - highs[i-1]
		downMove := lows[i-1] - lows[i]
		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
	}

	var trSum, plusSum, minusSum float64
	for i := 1; i <= period; i++ {
		trSum += tr[i]
		plusSum += plusDM[i]
		minusSum += minusDM[i]
	}

	dx := make([]float64, n)
	dx[period] = dxValue(plusSum, minusSum, trSum)
	for i := period + 1; i < n; i++ {
		trSum = trSum - trSum/float64(period) + tr[i]
		plusSum = plusSum - plusSum/float64(period) + plusDM[i]
		minusSum = minusSum - minusSum/float64(period) + minusDM[i]
		dx[i] = dxValue(plusSum, minusSum, trSum)
	}

	// Первое значение ADX — среднее DX, дальше сглаживание Уайлдера
	sum := 0.0
	for i := period; i < 2*period; i++ {
		sum += dx[i]
	}
	adx := sum / float64(period)
	out[2*period-1] = adx
	for i := 2 * period; i < n; i++ {
		adx = (adx*float64(period-1) + dx[i]) / float64(period)
		out[i] = adx
	}
	return out
}

func dxValue(plusSum, minusSum, trSum float64) float64 {
	if trSum == 0 {
		return 0.0
	}
	plusDI := plusSum / trSum * 100.0
	minusDI := minusSum / trSum * 100.0
	if plusDI+minusDI == 0 {
		return 0.0
	}
	return math.Abs(plusDI-minusDI) / (plusDI + minusDI) * 100.0
}

func ultimateOscillatorSeries(highs, lows, closes []float64, p1, p2, p3 int) []float64 {
	n := len(closes)
	out := make([]float64, n)
	if n < p3+1 {
		return out
	}

	bp := make([]float64, n)
	tr := make([]float64, n)
	for i := 1; i < n; i++ {
		trueLow := math.Min(lows[i], closes[i-1])
		trueHigh := math.Max(highs[i], closes[i-1])
		bp[i] = closes[i] - trueLow
		tr[i] = trueHigh - trueLow
	}

	for i := p3; i < n; i++ {
		a1 := windowRatio(bp, tr, i, p1)
		a2 := windowRatio(bp, tr, i, p2)
		a3 := windowRatio(bp, tr, i, p3)
		out[i] = 100.0 * (4.0*a1 + 2.0*a2 + a3) / 7.0
	}
	return out
}

func windowRatio(bp, tr []float64, end, period int) float64 {
	var bpSum, trSum float64
	for i := end - period + 1; i <= end; i++ {
		bpSum += bp[i]
		trSum += tr[i]
	}
	if trSum == 0 {
		return 0.0
	}
	return bpSum / trSum
}

func bollingerSeries(closes []float64, period int, stdDev float64) ([]float64, []float64, []float64) {
	n := len(closes)
	lower := make([]float64, n)
	middle := smaSeries(closes, period)
	upper := make([]float64, n)

	for i := period - 1; i < n; i++ {
		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			diff := closes[j] - middle[i]
			variance += diff * diff
		}
		sd := math.Sqrt(variance / float64(period))
		upper[i] = middle[i] + stdDev*sd
		lower[i] = middle[i] - stdDev*sd
	}
	return lower, middle, upper
}

// atrSeries is Wilder-smoothed true range.
func atrSeries(highs, lows, closes []float64, period int) []float64 {
	n := len(closes)
	out := make([]float64, n)
	if n < period+1 {
		return out
	}

	sum := 0.0
	for i := 1; i <= period; i++ {
		sum += trueRange(highs[i], lows[i], closes[i-1])
	}
	atr := sum / float64(period)
	out[period] = atr

	for i := period + 1; i < n; i++ {
		atr = (atr*float64(period-1) + trueRange(highs[i], lows[i], closes[i-1])) / float64(period)
		out[i] = atr
	}
	return out
}

func trueRange(high, low, prevClose float64) float64 {
	tr := high - low
	if d := math.Abs(high - prevClose); d > tr {
		tr = d
	}
	if d := math.Abs(low - prevClose); d > tr {
		tr = d
	}
	return tr
}

func obvSeries(closes, volumes []float64) []float64 {
	out := make([]float64, len(closes))
	if len(closes) == 0 {
		return out
	}
	obv := 0.0
	for i := 1; i < len(closes); i++ {
		switch {
		case closes[i] > closes[i-1]:
			obv += volumes[i]
		case closes[i] < closes[i-1]:
			obv -= volumes[i]
		}
		out[i] = obv
	}
	return out
}
