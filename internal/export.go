package internal

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TimestampLayout is RFC 3339 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// CSVHeader returns the header row for a quote currency, e.g. "Price (USD)".
func CSVHeader(currency string) []string {
	return []string{"Timestamp", fmt.Sprintf("Price (%s)", strings.ToUpper(currency))}
}

// WriteCSV writes the series as a two-column table. An empty series yields the header only.
func WriteCSV(w io.Writer, series []PricePoint, currency string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader(currency)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range series {
		row := []string{
			p.Timestamp.UTC().Format(TimestampLayout),
			decimal.NewFromFloat(p.Price).StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ExportFilename is deterministic for an asset and window, e.g. bitcoin_prices_7_days.csv.
func ExportFilename(asset string, tf Timeframe) string {
	return fmt.Sprintf("%s_prices_%d_days.csv", strings.ToLower(asset), tf.Days())
}

// Exporter saves series snapshots as CSV files in one directory.
type Exporter struct {
	dir      string
	asset    string
	currency string
	log      *zap.Logger
}

func NewExporter(dir, asset, currency string, logger *zap.Logger) *Exporter {
	return &Exporter{dir: dir, asset: asset, currency: currency, log: logger}
}

// Export writes the series and returns the path of the saved file.
func (e *Exporter) Export(series []PricePoint, tf Timeframe) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, series, e.currency); err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}
	path := filepath.Join(e.dir, ExportFilename(e.asset, tf))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	e.log.Info("series exported",
		zap.String("path", path),
		zap.Int("rows", len(series)),
		zap.Int("days", tf.Days()),
	)
	return path, nil
}
