package labeling

import (
	"errors"
	"testing"

	"github.com/computervirtualservices/neurotrade/models"
)

// risingSeries: 31 плоский бар на 100, затем пять растущих закрытий 101..105.
// Индекс 30 — размечаемый бар: впереди ход +5% с идеальной согласованностью.
func risingSeries(barHigh float64) ([]models.Candle, []models.IndicatorSnapshot) {
	candles := make([]models.Candle, 0, 36)
	snapshots := make([]models.IndicatorSnapshot, 0, 36)

	for i := 0; i < 30; i++ {
		candles = append(candles, models.Candle{
			Open: 100.0, High: 100.5, Low: 99.5, Close: 100.0, Volume: 100.0,
		})
		snapshots = append(snapshots, models.IndicatorSnapshot{
			"macd": 0.0, "macd_signal": 0.0, "macd_hist": 0.1, "rsi": 50.0,
		})
	}

	// Размечаемый бар с бычьим моментумом
	candles = append(candles, models.Candle{
		Open: 100.0, High: barHigh, Low: 99.5, Close: 100.0, Volume: 100.0,
	})
	snapshots = append(snapshots, models.IndicatorSnapshot{
		"macd": 1.0, "macd_signal": 0.5, "macd_hist": 0.5, "rsi": 60.0,
	})

	// Будущее окно: рост с широкими диапазонами
	for j := 1; j <= 5; j++ {
		close := 100.0 + float64(j)
		candles = append(candles, models.Candle{
			Open: close, High: close * 1.05, Low: close * 0.95, Close: close, Volume: 100.0,
		})
		snapshots = append(snapshots, models.IndicatorSnapshot{
			"macd": 1.0, "macd_signal": 0.5, "macd_hist": 0.5, "rsi": 60.0,
		})
	}
	return candles, snapshots
}

func TestDeriveLabelBreakoutWinsOverStrongUptrend(t *testing.T) {
	d, err := NewDeriver(60)
	if err != nil {
		t.Fatalf("NewDeriver: %v", err)
	}

	// Хай 110 пробивает максимум окна, волатильность впереди высокая
	candles, snapshots := risingSeries(110.0)
	got := d.DeriveLabel(candles, snapshots, 30, 1.0)
	if got != models.SignalBreakout {
		t.Errorf("expected BREAKOUT, got %s", got)
	}
}

func TestDeriveLabelStrongUptrend(t *testing.T) {
	d, err := NewDeriver(60)
	if err != nil {
		t.Fatalf("NewDeriver: %v", err)
	}

	// Без пробоя тот же ход даёт STRONG_UPTREND: +5% >= 4.0, tc=1.0 >= 0.8
	candles, snapshots := risingSeries(100.5)
	got := d.DeriveLabel(candles, snapshots, 30, 1.0)
	if got != models.SignalStrongUptrend {
		t.Errorf("expected STRONG_UPTREND, got %s", got)
	}
}

func TestDeriveLabelConsolidation(t *testing.T) {
	d, err := NewDeriver(60)
	if err != nil {
		t.Fatalf("NewDeriver: %v", err)
	}

	candles := make([]models.Candle, 36)
	snapshots := make([]models.IndicatorSnapshot, 36)
	for i := range candles {
		candles[i] = models.Candle{Open: 100.0, High: 100.1, Low: 99.9, Close: 100.0, Volume: 100.0}
		snapshots[i] = models.IndicatorSnapshot{
			"macd": 0.0, "macd_signal": 0.0, "macd_hist": 0.0, "rsi": 50.0,
		}
	}

	got := d.DeriveLabel(candles, snapshots, 30, 5.0)
	if got != models.SignalConsolidation {
		t.Errorf("expected CONSOLIDATION, got %s", got)
	}
}

func TestDeriveLabelProfitTiers(t *testing.T) {
	d, err := NewDeriver(60)
	if err != nil {
		t.Fatalf("NewDeriver: %v", err)
	}

	// Ход +2% без моментума: только PROFIT_UP_1 (1.5 <= 2 < 4)
	candles := make([]models.Candle, 0, 36)
	snapshots := make([]models.IndicatorSnapshot, 0, 36)
	for i := 0; i < 31; i++ {
		candles = append(candles, models.Candle{Open: 100.0, High: 100.5, Low: 99.5, Close: 100.0, Volume: 100.0})
		snapshots = append(snapshots, models.IndicatorSnapshot{
			"macd": 0.0, "macd_signal": 1.0, "macd_hist": 0.0, "rsi": 50.0,
		})
	}
	future := []float64{100.0, 101.0, 100.5, 101.5, 102.0}
	for _, close := range future {
		candles = append(candles, models.Candle{Open: close, High: close + 0.2, Low: close - 0.2, Close: close, Volume: 100.0})
		snapshots = append(snapshots, models.IndicatorSnapshot{
			"macd": 0.0, "macd_signal": 1.0, "macd_hist": 0.0, "rsi": 50.0,
		})
	}

	got := d.DeriveLabel(candles, snapshots, 30, 5.0)
	if got != models.SignalProfitUp1 {
		t.Errorf("expected PROFIT_UP_1, got %s", got)
	}
}

func TestNewDeriverUnsupportedTimeframe(t *testing.T) {
	if _, err := NewDeriver(120); !errors.Is(err, models.ErrUnsupportedTimeframe) {
		t.Errorf("expected ErrUnsupportedTimeframe, got %v", err)
	}
}

func TestTrendConsistency(t *testing.T) {
	cases := []struct {
		name           string
		c0, c1, c3, c5 float64
		want           float64
	}{
		{"монотонный рост", 100, 101, 103, 105, 1.0},
		{"монотонное падение", 105, 103, 101, 100, -1.0},
		{"первая нога против", 100, 99, 103, 105, 0.2},
		{"плоско", 100, 100, 100, 100, 0.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := trendConsistency(tc.c0, tc.c1, tc.c3, tc.c5)
			if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
