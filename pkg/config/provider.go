package config

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// LoadConfig loads the configuration and fills in defaults. Callers run
	// Validate once any command-line overrides have been applied.
	LoadConfig() (*ConfigData, error)

	IsReadOnly() bool
	Close() error
}

// Dataset source types
const (
	DatasetYAML     = "yaml"
	DatasetSQLite   = "sqlite"
	DatasetPostgres = "postgres"
)

// Renderer types
const (
	RendererBrowser = "browser"
	RendererHTML    = "html"
	RendererPNG     = "png"
)

const (
	DefaultListenAddr = "127.0.0.1"
	DefaultPort       = 8080
)

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Dataset DatasetData `json:"dataset" yaml:"dataset"`
	Chart   ChartData   `json:"chart" yaml:"chart"`
	Server  ServerData  `json:"server,omitempty" yaml:"server,omitempty"`
}

// DatasetData selects where gas records and temperature readings come from
type DatasetData struct {
	Type string `json:"type" yaml:"type"`
	// Path is the YAML document or SQLite database file
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// DSN is the PostgreSQL connection string
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
	// Station restricts database sources to one station's gas readings
	Station string `json:"station,omitempty" yaml:"station,omitempty"`
}

// ChartData holds what to plot and how to render it
type ChartData struct {
	Province string    `json:"province" yaml:"province"`
	Station  string    `json:"station" yaml:"station"`
	Renderer string    `json:"renderer,omitempty" yaml:"renderer,omitempty"`
	Output   string    `json:"output,omitempty" yaml:"output,omitempty"`
	Style    StyleData `json:"style,omitempty" yaml:"style,omitempty"`
}

// StyleData is the chart styling; empty fields fall back to chart defaults
type StyleData struct {
	LineColors          []string `json:"line_colors,omitempty" yaml:"line_colors,omitempty"`
	BackgroundColor     string   `json:"background_color,omitempty" yaml:"background_color,omitempty"`
	PlotBackgroundColor string   `json:"plot_background_color,omitempty" yaml:"plot_background_color,omitempty"`
	TitleTemplate       string   `json:"title_template,omitempty" yaml:"title_template,omitempty"`
}

// ServerData configures the HTTP server used by the browser renderer
type ServerData struct {
	ListenAddr  string `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty"`
	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`
	OpenBrowser *bool  `json:"open_browser,omitempty" yaml:"open_browser,omitempty"`
}

// ShouldOpenBrowser reports whether the browser renderer launches a browser.
// Unset means yes.
func (s ServerData) ShouldOpenBrowser() bool {
	return s.OpenBrowser == nil || *s.OpenBrowser
}

// Addr returns the host:port the server listens on
func (s ServerData) Addr() string {
	return fmt.Sprintf("%s:%d", s.ListenAddr, s.Port)
}

// ApplyDefaults fills unset fields in place
func (c *ConfigData) ApplyDefaults() {
	if c.Dataset.Type == "" {
		c.Dataset.Type = DatasetYAML
	}
	if c.Chart.Renderer == "" {
		c.Chart.Renderer = RendererBrowser
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
}

// Validate checks the configuration for missing or unsupported values
func (c *ConfigData) Validate() error {
	var errs []error

	switch c.Dataset.Type {
	case DatasetYAML, DatasetSQLite:
		if c.Dataset.Path == "" {
			errs = append(errs, fmt.Errorf("dataset.path is required for %s datasets", c.Dataset.Type))
		}
	case DatasetPostgres:
		if c.Dataset.DSN == "" {
			errs = append(errs, errors.New("dataset.dsn is required for postgres datasets"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported dataset.type %q", c.Dataset.Type))
	}

	if strings.TrimSpace(c.Chart.Province) == "" {
		errs = append(errs, errors.New("chart.province is required"))
	}

	switch c.Chart.Renderer {
	case RendererBrowser:
	case RendererHTML, RendererPNG:
		if c.Chart.Output == "" {
			errs = append(errs, fmt.Errorf("chart.output is required for the %s renderer", c.Chart.Renderer))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported chart.renderer %q", c.Chart.Renderer))
	}

	if n := len(c.Chart.Style.LineColors); n != 0 && n != 2 {
		errs = append(errs, fmt.Errorf("chart.style.line_colors needs 2 colors, got %d", n))
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}

	return errors.Join(errs...)
}

