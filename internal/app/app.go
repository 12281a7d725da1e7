package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chrissnell/carbonchart/internal/chart"
	"github.com/chrissnell/carbonchart/internal/controllers/restserver"
	"github.com/chrissnell/carbonchart/internal/dataset"
	"github.com/chrissnell/carbonchart/internal/series"
	"github.com/chrissnell/carbonchart/pkg/config"
	"go.uber.org/zap"
)

// App represents the main application
type App struct {
	cfg    *config.ConfigData
	logger *zap.SugaredLogger
}

// New creates a new application instance
func New(cfg *config.ConfigData, logger *zap.SugaredLogger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

// Run builds the chart and hands it to the configured renderer. For the
// browser renderer it blocks until SIGINT/SIGTERM or ctx cancellation.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case <-sigs:
			a.logger.Info("shutdown signal received, initiating graceful shutdown...")
			cancel()
		case <-ctx.Done():
		}
	}()

	spec, err := a.BuildChart(ctx)
	if err != nil {
		return err
	}

	renderer, err := NewRenderer(a.cfg, a.logger)
	if err != nil {
		return err
	}

	a.logger.Infow("rendering chart", "renderer", a.cfg.Chart.Renderer, "title", spec.Title)
	if err := renderer.Render(ctx, spec); err != nil {
		return fmt.Errorf("error rendering chart: %w", err)
	}
	if a.cfg.Chart.Output != "" && a.cfg.Chart.Renderer != config.RendererBrowser {
		a.logger.Infof("chart written to %s", a.cfg.Chart.Output)
	}
	return nil
}

// BuildChart loads the dataset, aligns both series and assembles the chart.
func (a *App) BuildChart(ctx context.Context) (*chart.Spec, error) {
	src, err := dataset.New(a.cfg.Dataset, a.logger)
	if err != nil {
		return nil, fmt.Errorf("error opening dataset: %w", err)
	}
	defer src.Close()

	gas, err := src.GasRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading gas records: %w", err)
	}
	temps, err := src.Temperatures(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading temperatures: %w", err)
	}
	a.logger.Debugw("dataset loaded", "gas_records", len(gas), "temperature_years", len(temps))

	co2, err := series.CO2Series(gas, a.cfg.Chart.Province)
	if err != nil {
		return nil, fmt.Errorf("error building CO2 series: %w", err)
	}
	temp, err := series.TempSeries(temps)
	if err != nil {
		return nil, fmt.Errorf("error building temperature series: %w", err)
	}
	a.logger.Debugw("series aligned", "co2", co2.String(), "temperature", temp.String())

	return chart.Build(co2, temp, a.cfg.Chart.Province, a.cfg.Chart.Station, StyleFromConfig(a.cfg.Chart.Style))
}

// NewRenderer returns the renderer selected by chart.renderer
func NewRenderer(cfg *config.ConfigData, logger *zap.SugaredLogger) (chart.Renderer, error) {
	switch cfg.Chart.Renderer {
	case config.RendererBrowser:
		return restserver.NewBrowserRenderer(cfg.Server, logger), nil
	case config.RendererHTML:
		return chart.NewHTMLRenderer(cfg.Chart.Output), nil
	case config.RendererPNG:
		return chart.NewPNGRenderer(cfg.Chart.Output), nil
	default:
		return nil, fmt.Errorf("unsupported renderer: %s", cfg.Chart.Renderer)
	}
}

// StyleFromConfig converts configured styling; empty values keep chart defaults.
func StyleFromConfig(s config.StyleData) chart.Style {
	style := chart.Style{
		BackgroundColor:     s.BackgroundColor,
		PlotBackgroundColor: s.PlotBackgroundColor,
		TitleTemplate:       s.TitleTemplate,
	}
	copy(style.LineColors[:], s.LineColors)
	return style
}
