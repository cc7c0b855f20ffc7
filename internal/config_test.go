package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_DefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("EBICHART_API_BASE_URL", "")
	t.Setenv("EBICHART_EXPORT_DIR", "")
	t.Setenv("EBICHART_LOG_LEVEL", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.API.BaseURL != "https://api.coingecko.com/api/v3" || cfg.API.Asset != "bitcoin" || cfg.API.AssetName != "Bitcoin" {
		t.Errorf("api defaults = %+v", cfg.API)
	}
	sel, err := cfg.Selection()
	if err != nil {
		t.Fatalf("selection: %v", err)
	}
	if sel != (Selection{Timeframe: Timeframe7D, Style: ChartLine, View: ViewChart}) {
		t.Errorf("selection = %+v", sel)
	}
}

func TestLoadConfig_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
api:
  base_url: https://example.test/api/v3/
  asset: ethereum
  currency: EUR
dashboard:
  timeframe: 30
  chart_style: bar
  view: summary
export:
  dir: /tmp/from-file
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EBICHART_API_BASE_URL", "")
	t.Setenv("EBICHART_EXPORT_DIR", "/tmp/from-env")
	t.Setenv("EBICHART_LOG_LEVEL", "debug")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "https://example.test/api/v3" {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.API.AssetName != "Ethereum" || cfg.API.Currency != "eur" {
		t.Errorf("api = %+v", cfg.API)
	}
	if cfg.Export.Dir != "/tmp/from-env" || cfg.Log.Level != "debug" {
		t.Errorf("env overrides not applied: dir=%q level=%q", cfg.Export.Dir, cfg.Log.Level)
	}
	sel, err := cfg.Selection()
	if err != nil {
		t.Fatalf("selection: %v", err)
	}
	if sel != (Selection{Timeframe: Timeframe30D, Style: ChartBar, View: ViewSummary}) {
		t.Errorf("selection = %+v", sel)
	}
}

func TestConfig_ValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"timeframe", func(c *Config) { c.Dashboard.Timeframe = 14 }},
		{"chart style", func(c *Config) { c.Dashboard.ChartStyle = "candles" }},
		{"view", func(c *Config) { c.Dashboard.View = "Portfolio" }},
		{"base url", func(c *Config) { c.API.BaseURL = "ftp://example.test" }},
		{"timeout", func(c *Config) { c.API.TimeoutSec = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.applyDefaults()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestParseHelpers(t *testing.T) {
	if _, err := ParseTimeframe(365); err != nil {
		t.Errorf("365 should be valid: %v", err)
	}
	if v, err := ParseView("statistics"); err != nil || v != ViewStatistics {
		t.Errorf("ParseView = %v, %v", v, err)
	}
	if s, err := ParseChartStyle(" BAR "); err != nil || s != ChartBar {
		t.Errorf("ParseChartStyle = %v, %v", s, err)
	}
	if Timeframe30D.Label() != "1m" || Timeframe365D.Label() != "1y" {
		t.Error("unexpected timeframe labels")
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Debug("logger ready")

	if _, err := NewLogger("loud", false); err == nil {
		t.Error("expected error for unknown level")
	}
}
