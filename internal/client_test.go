package internal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(APIConfig{
		BaseURL:    srv.URL,
		Asset:      "bitcoin",
		Currency:   "usd",
		TimeoutSec: 5,
		UserAgent:  "ebichart-test",
	})
}

func TestClient_FetchMarketChart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/bitcoin/market_chart" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("vs_currency"); got != "usd" {
			t.Errorf("vs_currency = %q", got)
		}
		if got := r.URL.Query().Get("days"); got != "7" {
			t.Errorf("days = %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "ebichart-test" {
			t.Errorf("user agent = %q", got)
		}
		w.Write([]byte(`{
			"prices": [[1704067200000, 100.5], [1704153600000, 110.25]],
			"market_caps": [[1704067200000, 1], [1704153600000, 2]],
			"total_volumes": [[1704067200000, 1000], [1704153600000, 2000]]
		}`))
	})

	chart, err := c.FetchMarketChart(context.Background(), Timeframe7D)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chart.Prices) != 2 || len(chart.Volumes) != 2 {
		t.Fatalf("got %d prices, %d volumes", len(chart.Prices), len(chart.Volumes))
	}
	if !chart.Prices[0].Timestamp.Equal(jan1) || chart.Prices[0].Price != 100.5 {
		t.Errorf("first point = %+v", chart.Prices[0])
	}
	if !chart.Prices[1].Timestamp.Equal(jan2) || chart.Prices[1].Price != 110.25 {
		t.Errorf("second point = %+v", chart.Prices[1])
	}
	if chart.Volumes[1].Price != 2000 {
		t.Errorf("second volume = %v", chart.Volumes[1].Price)
	}
}

func TestClient_FetchMarketChart_EmptyPrices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"prices": [], "total_volumes": []}`))
	})

	chart, err := c.FetchMarketChart(context.Background(), Timeframe1D)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chart.Prices) != 0 {
		t.Errorf("expected empty series, got %d", len(chart.Prices))
	}
}

func TestClient_FetchMarketChart_Failures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		malformed bool
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"status":{"error_code":429}}`},
		{name: "server error", status: http.StatusInternalServerError, body: `oops`},
		{name: "not json", status: http.StatusOK, body: `<html>`, malformed: true},
		{name: "missing prices", status: http.StatusOK, body: `{"total_volumes": []}`, malformed: true},
		{name: "short pair", status: http.StatusOK, body: `{"prices": [[1704067200000]]}`, malformed: true},
		{name: "null price", status: http.StatusOK, body: `{"prices": [[1704067200000,null],[1704153600000,110]], "total_volumes": []}`, malformed: true},
		{name: "null timestamp", status: http.StatusOK, body: `{"prices": [[null,100]]}`, malformed: true},
		{name: "null volume", status: http.StatusOK, body: `{"prices": [[1704067200000,100]], "total_volumes": [[1704067200000,null]]}`, malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.FetchMarketChart(context.Background(), Timeframe30D)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrMalformedPayload); got != tt.malformed {
				t.Errorf("errors.Is(ErrMalformedPayload) = %v, want %v (err: %v)", got, tt.malformed, err)
			}
		})
	}
}

func TestClient_FetchSpotPrice(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("ids"); got != "bitcoin" {
			t.Errorf("ids = %q", got)
		}
		if got := r.URL.Query().Get("vs_currencies"); got != "usd" {
			t.Errorf("vs_currencies = %q", got)
		}
		w.Write([]byte(`{"bitcoin":{"usd":67000.5}}`))
	})

	snap, err := c.FetchSpotPrice(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p, ok := snap.Price("USD"); !ok || p != 67000.5 {
		t.Errorf("price = %v, %v", p, ok)
	}
}

func TestClient_FetchSpotPrice_MissingAsset(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ethereum":{"usd":3000}}`))
	})

	if _, err := c.FetchSpotPrice(context.Background()); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("expected malformed payload error, got %v", err)
	}
}

func TestClient_FetchSpotPrice_NullQuote(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"bitcoin":{"usd":null}}`))
	})

	if _, err := c.FetchSpotPrice(context.Background()); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("expected malformed payload error, got %v", err)
	}
}

func TestClient_HonoursContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"prices": []}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.FetchMarketChart(ctx, Timeframe7D); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
