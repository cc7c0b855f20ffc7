package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/temidaradev/esset/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/temidaradev/ebichart/internal"
)

const glyphsToPreload = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789.,:;/$%()+-! "
const baseFontSize = 14

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := internal.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}
	defaults, err := cfg.Selection()
	if err != nil {
		log.Fatalf("dashboard defaults: %v", err)
	}

	logger, err := internal.NewLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	deviceScale := ebiten.Monitor().DeviceScaleFactor()
	scaledFontSize := baseFontSize * deviceScale
	fontFace, err := esset.GetFont(goregular.TTF, int(scaledFontSize))
	if err != nil {
		logger.Fatal("font could not be loaded", zap.Float64("size", scaledFontSize), zap.Error(err))
	}

	logger.Debug("glyph caching")
	tempImage := ebiten.NewImage(1, 1)
	text.Draw(tempImage, glyphsToPreload, fontFace, &text.DrawOptions{})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := internal.NewClient(cfg.API)
	exporter := internal.NewExporter(cfg.Export.Dir, cfg.API.Asset, cfg.API.Currency, logger)
	dash := internal.NewDashboard(ctx, client, exporter, defaults, logger)
	defer dash.Close()

	g := NewGame(ctx, dash, internal.Labels{
		AssetName: cfg.API.AssetName,
		Currency:  cfg.API.Currency,
	}, fontFace, deviceScale, logger)

	logger.Info("dashboard starting",
		zap.String("asset", cfg.API.Asset),
		zap.String("currency", cfg.API.Currency),
		zap.Int("days", defaults.Timeframe.Days()),
		zap.Stringer("view", defaults.View),
	)
	dash.Start()

	ebiten.SetWindowTitle(cfg.Window.Title)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game loop exited", zap.Error(err))
	}
	logger.Info("dashboard stopped")
}
