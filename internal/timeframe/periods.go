package timeframe

import (
	"fmt"

	"github.com/computervirtualservices/neurotrade/models"
)

// Periods holds the indicator lookback lengths used to build snapshot rows
// for one timeframe. These are bar counts, not minutes.
type Periods struct {
	Return       int // log-return lookback
	PriceRel     int // price relative high/low window
	ROC          int
	VolumeROC    int
	EMA9         int
	EMA21        int
	SMMA9        int
	SMMA21       int
	SMMA50       int
	SMMA200      int
	RSI          int
	MACDFast     int
	MACDSlow     int
	MACDSignal   int
	StochFastK   int
	StochSlowK   int
	StochSlowD   int
	Ult1         int
	Ult2         int
	Ult3         int
	ATR          int
	BBands       int
	BBandsStdDev float64
	ADX          int
}

// defaultPeriods is the standard profile shared by every timeframe: the bar
// counts stay constant, so a 14-bar RSI means 14 hours on 1H and 14 days on 1D.
var defaultPeriods = Periods{
	Return:       10,
	PriceRel:     14,
	ROC:          10,
	VolumeROC:    10,
	EMA9:         9,
	EMA21:        21,
	SMMA9:        9,
	SMMA21:       21,
	SMMA50:       50,
	SMMA200:      200,
	RSI:          14,
	MACDFast:     12,
	MACDSlow:     26,
	MACDSignal:   9,
	StochFastK:   14,
	StochSlowK:   10,
	StochSlowD:   3,
	Ult1:         7,
	Ult2:         14,
	Ult3:         28,
	ATR:          14,
	BBands:       20,
	BBandsStdDev: 2.0,
	ADX:          14,
}

// PeriodsFor returns the indicator period profile for a timeframe.
func PeriodsFor(minutes int) (Periods, error) {
	if !IsSupported(minutes) {
		return Periods{}, fmt.Errorf("%w: %dm", models.ErrUnsupportedTimeframe, minutes)
	}
	return defaultPeriods, nil
}
