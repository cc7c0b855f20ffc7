package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var ErrMalformedPayload = errors.New("malformed payload")

// Client talks to a CoinGecko-compatible market-data API for one asset/currency pair.
type Client struct {
	baseURL   string
	asset     string
	currency  string
	userAgent string
	http      *http.Client
}

func NewClient(cfg APIConfig) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		asset:     cfg.Asset,
		currency:  cfg.Currency,
		userAgent: cfg.UserAgent,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
	}
}

type marketChartResponse struct {
	Prices       [][]*float64 `json:"prices"`
	TotalVolumes [][]*float64 `json:"total_volumes"`
}

// FetchMarketChart returns price and volume history over the last tf days.
func (c *Client) FetchMarketChart(ctx context.Context, tf Timeframe) (MarketChart, error) {
	q := url.Values{}
	q.Set("vs_currency", c.currency)
	q.Set("days", strconv.Itoa(tf.Days()))
	u := fmt.Sprintf("%s/coins/%s/market_chart?%s", c.baseURL, url.PathEscape(c.asset), q.Encode())

	body, err := c.get(ctx, u)
	if err != nil {
		return MarketChart{}, fmt.Errorf("market chart [%s %dd]: %w", c.asset, tf.Days(), err)
	}

	var resp marketChartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return MarketChart{}, fmt.Errorf("market chart [%s]: %w: %v", c.asset, ErrMalformedPayload, err)
	}
	if resp.Prices == nil {
		return MarketChart{}, fmt.Errorf("market chart [%s]: %w: missing prices", c.asset, ErrMalformedPayload)
	}

	prices, err := toPoints(resp.Prices)
	if err != nil {
		return MarketChart{}, fmt.Errorf("market chart [%s] prices: %w", c.asset, err)
	}
	volumes, err := toPoints(resp.TotalVolumes)
	if err != nil {
		return MarketChart{}, fmt.Errorf("market chart [%s] volumes: %w", c.asset, err)
	}
	return MarketChart{Prices: prices, Volumes: volumes}, nil
}

// FetchSpotPrice returns the current price of the asset keyed by quote currency.
func (c *Client) FetchSpotPrice(ctx context.Context) (SpotSnapshot, error) {
	q := url.Values{}
	q.Set("ids", c.asset)
	q.Set("vs_currencies", c.currency)
	u := fmt.Sprintf("%s/simple/price?%s", c.baseURL, q.Encode())

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("simple price [%s]: %w", c.asset, err)
	}

	var resp map[string]map[string]*float64
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("simple price [%s]: %w: %v", c.asset, ErrMalformedPayload, err)
	}
	quotes, ok := resp[c.asset]
	if !ok {
		return nil, fmt.Errorf("simple price [%s]: %w: asset missing", c.asset, ErrMalformedPayload)
	}
	snap := make(SpotSnapshot, len(quotes))
	for currency, price := range quotes {
		if price == nil {
			return nil, fmt.Errorf("simple price [%s]: %w: null %s quote", c.asset, ErrMalformedPayload, currency)
		}
		snap[currency] = *price
	}
	return snap, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("body read error: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("API error: %s - %s", resp.Status, string(body))
	}
	return body, nil
}

// toPoints rejects the whole series on any short or null pair.
func toPoints(pairs [][]*float64) ([]PricePoint, error) {
	points := make([]PricePoint, 0, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("%w: entry %d has %d values", ErrMalformedPayload, i, len(p))
		}
		if p[0] == nil || p[1] == nil {
			return nil, fmt.Errorf("%w: entry %d has a null value", ErrMalformedPayload, i)
		}
		points = append(points, PricePoint{
			Timestamp: time.UnixMilli(int64(*p[0])).UTC(),
			Price:     *p[1],
		})
	}
	return points, nil
}
