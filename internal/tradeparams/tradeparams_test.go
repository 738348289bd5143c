package tradeparams

import (
	"errors"
	"math"
	"testing"

	"github.com/computervirtualservices/neurotrade/models"
)

func TestGenerateATRMultipliers(t *testing.T) {
	g, err := NewGenerator(60)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	got := g.Generate(models.SignalStrongUptrend, 100.0, 2.0, models.SRLevels{})
	if got.Entry != 100.0 {
		t.Errorf("entry: expected 100, got %v", got.Entry)
	}
	// sl = 100 - 1.0*2, tp = 100 + 2.0*2
	if got.StopLoss != 98.0 || got.TakeProfit != 104.0 {
		t.Errorf("expected sl=98 tp=104, got sl=%v tp=%v", got.StopLoss, got.TakeProfit)
	}
	if got.Explanation != "Strong 1h uptrend." {
		t.Errorf("unexpected explanation: %q", got.Explanation)
	}
}

func TestGenerateZeroMultipliersUseLevels(t *testing.T) {
	g, err := NewGenerator(60)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	levels := models.SRLevels{
		Support:    []float64{97.5},
		Resistance: []float64{103.5},
	}
	got := g.Generate(models.SignalUptrend, 100.0, 2.0, levels)
	if got.StopLoss != 97.5 {
		t.Errorf("stop-loss should track nearest support: expected 97.5, got %v", got.StopLoss)
	}
	if got.TakeProfit != 103.5 {
		t.Errorf("take-profit should track nearest resistance: expected 103.5, got %v", got.TakeProfit)
	}
}

func TestGenerateZeroMultipliersWithoutLevels(t *testing.T) {
	g, err := NewGenerator(60)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	got := g.Generate(models.SignalNeutral, 200.0, 2.0, models.SRLevels{})
	if math.Abs(got.StopLoss-199.0) > 1e-9 {
		t.Errorf("expected fallback stop 199.0, got %v", got.StopLoss)
	}
	if math.Abs(got.TakeProfit-201.0) > 1e-9 {
		t.Errorf("expected fallback target 201.0, got %v", got.TakeProfit)
	}
}

func TestGenerateZeroATRForcesFallbackSizing(t *testing.T) {
	g, err := NewGenerator(60)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	got := g.Generate(models.SignalStrongUptrend, 100.0, 0.0, models.SRLevels{})
	if math.Abs(got.StopLoss-99.7) > 1e-9 || math.Abs(got.TakeProfit-100.3) > 1e-9 {
		t.Errorf("expected forced ±0.3%% levels, got sl=%v tp=%v", got.StopLoss, got.TakeProfit)
	}
	if got.Explanation != "Strong 1h uptrend. (fallback sizing)" {
		t.Errorf("unexpected explanation: %q", got.Explanation)
	}
}

func TestGenerateUnknownSignal(t *testing.T) {
	g, err := NewGenerator(60)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	got := g.Generate("UNKNOWN", 100.0, 2.0, models.SRLevels{})
	if got.Entry != 100.0 || got.StopLoss != 0.0 || got.TakeProfit != 0.0 || got.Explanation != "" {
		t.Errorf("unknown signal should leave levels empty, got %+v", got)
	}
}

func TestConfigCoversAllSignalsPerTimeframe(t *testing.T) {
	for tf, table := range config {
		if len(table) != len(models.AllSignals) {
			t.Errorf("timeframe %dm: expected %d signals, got %d", tf, len(models.AllSignals), len(table))
		}
		for _, signal := range models.AllSignals {
			if _, ok := table[signal]; !ok {
				t.Errorf("timeframe %dm: missing signal %s", tf, signal)
			}
		}
	}
}

func TestNewGeneratorUnsupportedTimeframe(t *testing.T) {
	if _, err := NewGenerator(90); !errors.Is(err, models.ErrUnsupportedTimeframe) {
		t.Errorf("expected ErrUnsupportedTimeframe, got %v", err)
	}
}
