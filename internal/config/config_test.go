package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.RefreshInterval != 5*time.Minute {
		t.Errorf("RefreshInterval = %v, want 5m", cfg.RefreshInterval)
	}
	if cfg.StakeETH != 1.0 {
		t.Errorf("StakeETH = %v, want 1.0", cfg.StakeETH)
	}
	if cfg.DefaultETHPriceUSD != 1600.0 {
		t.Errorf("DefaultETHPriceUSD = %v, want 1600", cfg.DefaultETHPriceUSD)
	}
	if cfg.GasUnitsRebalance != 210000 {
		t.Errorf("GasUnitsRebalance = %v, want 210000", cfg.GasUnitsRebalance)
	}
	if cfg.MinTVLUsd != 10000.0 {
		t.Errorf("MinTVLUsd = %v, want 10000", cfg.MinTVLUsd)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("REFRESH_INTERVAL", "90s")
	t.Setenv("STAKE_ETH", "32")
	t.Setenv("MIN_TVL_USD", "250000")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.RefreshInterval != 90*time.Second {
		t.Errorf("RefreshInterval = %v", cfg.RefreshInterval)
	}
	if cfg.StakeETH != 32 {
		t.Errorf("StakeETH = %v", cfg.StakeETH)
	}
	if cfg.MinTVLUsd != 250000 {
		t.Errorf("MinTVLUsd = %v", cfg.MinTVLUsd)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestLoadRejectsGarbageValues(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "soon")
	t.Setenv("STAKE_ETH", "lots")
	t.Setenv("GAS_UNITS_REBALANCE", "-")

	cfg := Load()
	if cfg.RefreshInterval != 5*time.Minute {
		t.Errorf("RefreshInterval = %v, want default", cfg.RefreshInterval)
	}
	if cfg.StakeETH != 1.0 {
		t.Errorf("StakeETH = %v, want default", cfg.StakeETH)
	}
	if cfg.GasUnitsRebalance != 210000 {
		t.Errorf("GasUnitsRebalance = %v, want default", cfg.GasUnitsRebalance)
	}
}
