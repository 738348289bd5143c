package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Pair != "BTC/USD" {
		t.Errorf("expected default pair BTC/USD, got %s", cfg.Pair)
	}
	if cfg.IntervalMinutes != 60 {
		t.Errorf("expected default interval 60, got %d", cfg.IntervalMinutes)
	}
	if !cfg.CrossValidate {
		t.Error("cross-validation should default to on")
	}
	if cfg.MomentumThreshold != 5.0 {
		t.Errorf("expected momentum threshold 5.0, got %v", cfg.MomentumThreshold)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PAIR", "ETH/USD")
	t.Setenv("INTERVAL_MINUTES", "240")
	t.Setenv("REGRESSOR", "true")
	t.Setenv("TRAIN_RETRIES", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Pair != "ETH/USD" || cfg.IntervalMinutes != 240 {
		t.Errorf("env overrides ignored: %+v", cfg)
	}
	if !cfg.Regressor || cfg.TrainRetries != 5 {
		t.Errorf("env overrides ignored: %+v", cfg)
	}
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("INTERVAL_MINUTES", "not-a-number")
	t.Setenv("REGRESSOR", "maybe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IntervalMinutes != 60 {
		t.Errorf("bad int should fall back to 60, got %d", cfg.IntervalMinutes)
	}
	if cfg.Regressor {
		t.Error("bad bool should fall back to false")
	}
}
