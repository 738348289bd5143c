package indicators

import (
	"errors"
	"math"
	"testing"

	"github.com/computervirtualservices/neurotrade/internal/features"
	"github.com/computervirtualservices/neurotrade/models"
)

func candleSeries(n int) []models.Candle {
	candles := make([]models.Candle, n)
	for i := range candles {
		// Лёгкая синусоида вокруг растущего тренда
		close := 100.0 + float64(i)*0.2 + 2.0*math.Sin(float64(i)/5.0)
		candles[i] = models.Candle{
			Timestamp: int64(i) * 3600,
			Open:      close - 0.1,
			High:      close + 1.0,
			Low:       close - 1.0,
			Close:     close,
			Volume:    100.0 + float64(i%7)*10.0,
		}
	}
	return candles
}

func TestBuildAlignment(t *testing.T) {
	b, err := NewBuilder(60)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}

	candles := candleSeries(250)
	snapshots, err := b.Build(candles)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(snapshots) != len(candles) {
		t.Fatalf("expected %d snapshots, got %d", len(candles), len(snapshots))
	}

	// Каждая строка несёт все сырые поля карты признаков
	names := features.FeatureNames()
	last := snapshots[len(snapshots)-1]
	for _, name := range names[:30] {
		if !last.Has(name) {
			t.Errorf("snapshot missing field %q", name)
		}
	}
}

func TestBuildWarmupZeros(t *testing.T) {
	b, err := NewBuilder(60)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}

	snapshots, err := b.Build(candleSeries(250))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	early := snapshots[5]
	for _, field := range []string{"rsi", "atr", "adx", "macd", "bb_middle", "smma21", "ult_osc"} {
		if early.Get(field) != 0.0 {
			t.Errorf("field %s at bar 5: expected 0 during warmup, got %v", field, early.Get(field))
		}
	}

	// Сырые значения есть с первого бара
	if early.Get("close") == 0.0 || early.Get("volume") == 0.0 {
		t.Error("raw candle fields must be present from bar 0")
	}
}

func TestBuildIndicatorSanity(t *testing.T) {
	b, err := NewBuilder(60)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}

	snapshots, err := b.Build(candleSeries(250))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	last := snapshots[len(snapshots)-1]

	if rsi := last.Get("rsi"); rsi <= 0.0 || rsi > 100.0 {
		t.Errorf("rsi out of range: %v", rsi)
	}
	if adx := last.Get("adx"); adx < 0.0 || adx > 100.0 {
		t.Errorf("adx out of range: %v", adx)
	}
	if k := last.Get("stoch_k"); k < 0.0 || k > 100.0 {
		t.Errorf("stoch_k out of range: %v", k)
	}
	if atr := last.Get("atr"); atr <= 0.0 {
		t.Errorf("atr must be positive on a moving series: %v", atr)
	}
	if last.Get("bb_lower") >= last.Get("bb_middle") || last.Get("bb_middle") >= last.Get("bb_upper") {
		t.Errorf("bollinger bands out of order: %v %v %v",
			last.Get("bb_lower"), last.Get("bb_middle"), last.Get("bb_upper"))
	}
	if hist := last.Get("macd_hist"); math.Abs(hist-(last.Get("macd")-last.Get("macd_signal"))) > 1e-9 {
		t.Errorf("macd_hist must equal macd-signal, got %v", hist)
	}
	if rel := last.Get("price_rel_high"); rel <= 0.0 || rel > 1.0 {
		t.Errorf("price_rel_high must be in (0,1]: %v", rel)
	}
	if rel := last.Get("price_rel_low"); rel < 1.0 {
		t.Errorf("price_rel_low must be >= 1: %v", rel)
	}
}

func TestBuildRisingSeriesBias(t *testing.T) {
	b, err := NewBuilder(60)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}

	// Монотонный рост: RSI у потолка, OBV растёт
	candles := make([]models.Candle, 100)
	for i := range candles {
		close := 100.0 + float64(i)
		candles[i] = models.Candle{
			Open: close - 0.5, High: close + 1.0, Low: close - 1.0, Close: close, Volume: 100.0,
		}
	}
	snapshots, err := b.Build(candles)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	last := snapshots[len(snapshots)-1]

	if rsi := last.Get("rsi"); rsi < 99.0 {
		t.Errorf("monotonic rise: expected rsi near 100, got %v", rsi)
	}
	if obv := last.Get("obv"); obv != 99.0*100.0 {
		t.Errorf("expected obv 9900, got %v", obv)
	}
	if macd := last.Get("macd"); macd <= 0.0 {
		t.Errorf("rising series: expected positive macd, got %v", macd)
	}
}

func TestNewBuilderUnsupportedTimeframe(t *testing.T) {
	if _, err := NewBuilder(45); !errors.Is(err, models.ErrUnsupportedTimeframe) {
		t.Errorf("expected ErrUnsupportedTimeframe, got %v", err)
	}
}

func TestBuildEmptyInput(t *testing.T) {
	b, err := NewBuilder(60)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if _, err := b.Build(nil); !errors.Is(err, models.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}
