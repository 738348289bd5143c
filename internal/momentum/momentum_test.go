package momentum

import (
	"errors"
	"testing"

	"github.com/computervirtualservices/neurotrade/models"
)

// bullishRows: наклон MACD (+1.0), рост цены (+1.5), всплеск объёма (+1.5)
// и скрытая бычья дивергенция (+2.0) = 6.0. Остальные факторы выключены:
// скользящие выше цены, stoch_k ниже stoch_d, OBV ровный, RSI слабеет.
func bullishRows() []models.IndicatorSnapshot {
	base := models.IndicatorSnapshot{
		"macd_signal": 0.0,
		"ema9":        200.0, "ema21": 200.0, "smma21": 200.0, "smma50": 200.0,
		"stoch_k": 10.0, "stoch_d": 20.0,
		"obv": 1000.0,
	}
	rows := make([]models.IndicatorSnapshot, 3)
	closes := []float64{100.0, 101.0, 102.0}
	macds := []float64{0.1, 0.2, 0.3}
	rsis := []float64{60.0, 55.0, 50.0}
	volumes := []float64{100.0, 100.0, 120.0}
	for i := range rows {
		row := models.IndicatorSnapshot{}
		for k, v := range base {
			row[k] = v
		}
		row["close"] = closes[i]
		row["macd"] = macds[i]
		row["rsi"] = rsis[i]
		row["volume"] = volumes[i]
		rows[i] = row
	}
	return rows
}

// bearishRows: зеркало bullishRows, но без дивергенции — её у медведей нет.
// Наклон MACD (+1.0), падение цены (+1.5), всплеск объёма (+1.5) = 4.0.
func bearishRows() []models.IndicatorSnapshot {
	base := models.IndicatorSnapshot{
		"macd_signal": 0.0,
		"ema9":        50.0, "ema21": 50.0, "smma21": 50.0, "smma50": 50.0,
		"stoch_k": 90.0, "stoch_d": 80.0,
		"obv": 1000.0,
	}
	rows := make([]models.IndicatorSnapshot, 3)
	closes := []float64{102.0, 101.0, 100.0}
	macds := []float64{0.3, 0.2, 0.1}
	rsis := []float64{50.0, 55.0, 60.0}
	volumes := []float64{100.0, 100.0, 120.0}
	for i := range rows {
		row := models.IndicatorSnapshot{}
		for k, v := range base {
			row[k] = v
		}
		row["close"] = closes[i]
		row["macd"] = macds[i]
		row["rsi"] = rsis[i]
		row["volume"] = volumes[i]
		rows[i] = row
	}
	return rows
}

func TestUpHiddenDivergenceCrossesThreshold(t *testing.T) {
	d := NewDetector(0)

	up, err := d.Up(bullishRows())
	if err != nil {
		t.Fatalf("Up: %v", err)
	}
	if !up {
		t.Error("score 6.0 >= 5.0: expected upward momentum")
	}
}

func TestDownLacksDivergenceBonus(t *testing.T) {
	d := NewDetector(0)

	down, err := d.Down(bearishRows())
	if err != nil {
		t.Fatalf("Down: %v", err)
	}
	if down {
		t.Error("score 4.0 < 5.0: mirrored evidence must not trigger Down")
	}

	// С порогом 4.0 те же данные уже срабатывают
	lenient := NewDetector(4.0)
	down, err = lenient.Down(bearishRows())
	if err != nil {
		t.Fatalf("Down: %v", err)
	}
	if !down {
		t.Error("score 4.0 >= 4.0: expected downward momentum at lower threshold")
	}
}

func TestInsufficientHistory(t *testing.T) {
	d := NewDetector(0)

	rows := bullishRows()[:2]
	if _, err := d.Up(rows); !errors.Is(err, models.ErrInsufficientHistory) {
		t.Errorf("Up with 2 rows: expected ErrInsufficientHistory, got %v", err)
	}
	if _, err := d.Down(nil); !errors.Is(err, models.ErrInsufficientHistory) {
		t.Errorf("Down with no rows: expected ErrInsufficientHistory, got %v", err)
	}
}

func TestNoMomentumOnFlatSeries(t *testing.T) {
	d := NewDetector(0)

	flat := models.IndicatorSnapshot{
		"close": 100.0, "macd": 0.0, "macd_signal": 0.0, "rsi": 50.0,
		"volume": 100.0, "ema9": 100.0, "ema21": 100.0, "smma21": 100.0,
		"smma50": 100.0, "stoch_k": 50.0, "stoch_d": 50.0, "obv": 1000.0,
	}
	rows := []models.IndicatorSnapshot{flat, flat, flat}

	up, err := d.Up(rows)
	if err != nil {
		t.Fatalf("Up: %v", err)
	}
	down, err := d.Down(rows)
	if err != nil {
		t.Fatalf("Down: %v", err)
	}
	if up || down {
		t.Errorf("flat series: expected no momentum, got up=%v down=%v", up, down)
	}
}
