package internal

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// APIConfig points the client at the market-data service.
type APIConfig struct {
	BaseURL    string `yaml:"base_url"`
	Asset      string `yaml:"asset"`
	AssetName  string `yaml:"asset_name"`
	Currency   string `yaml:"currency"`
	TimeoutSec int    `yaml:"timeout_sec"`
	UserAgent  string `yaml:"user_agent"`
}

// Config holds all application configuration.
type Config struct {
	API       APIConfig `yaml:"api"`
	Dashboard struct {
		Timeframe  int    `yaml:"timeframe"`
		ChartStyle string `yaml:"chart_style"`
		View       string `yaml:"view"`
	} `yaml:"dashboard"`
	Export struct {
		Dir string `yaml:"dir"`
	} `yaml:"export"`
	Window struct {
		Width  int    `yaml:"width"`
		Height int    `yaml:"height"`
		Title  string `yaml:"title"`
	} `yaml:"window"`
	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
}

// LoadConfig reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults fill the gaps.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("EBICHART_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("EBICHART_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv("EBICHART_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "https://api.coingecko.com/api/v3"
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.Asset == "" {
		c.API.Asset = "bitcoin"
	}
	if c.API.AssetName == "" {
		c.API.AssetName = strings.ToUpper(c.API.Asset[:1]) + c.API.Asset[1:]
	}
	if c.API.Currency == "" {
		c.API.Currency = "usd"
	}
	c.API.Currency = strings.ToLower(c.API.Currency)
	if c.API.TimeoutSec == 0 {
		c.API.TimeoutSec = 15
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = "ebichart/1.0"
	}
	if c.Dashboard.Timeframe == 0 {
		c.Dashboard.Timeframe = int(Timeframe7D)
	}
	if c.Dashboard.ChartStyle == "" {
		c.Dashboard.ChartStyle = ChartLine.String()
	}
	if c.Dashboard.View == "" {
		c.Dashboard.View = ViewChart.String()
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
	if c.Window.Width == 0 {
		c.Window.Width = 960
	}
	if c.Window.Height == 0 {
		c.Window.Height = 640
	}
	if c.Window.Title == "" {
		c.Window.Title = "EbiChart"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.TimeoutSec < 0 {
		return fmt.Errorf("api.timeout_sec must not be negative")
	}
	if _, err := c.Selection(); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive")
	}
	return nil
}

// Selection converts the dashboard defaults into a typed selection.
func (c *Config) Selection() (Selection, error) {
	tf, err := ParseTimeframe(c.Dashboard.Timeframe)
	if err != nil {
		return Selection{}, fmt.Errorf("dashboard.timeframe: %w", err)
	}
	style, err := ParseChartStyle(c.Dashboard.ChartStyle)
	if err != nil {
		return Selection{}, fmt.Errorf("dashboard.chart_style: %w", err)
	}
	view, err := ParseView(c.Dashboard.View)
	if err != nil {
		return Selection{}, fmt.Errorf("dashboard.view: %w", err)
	}
	return Selection{Timeframe: tf, Style: style, View: view}, nil
}
