package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestYAMLProviderLoadConfig(t *testing.T) {
	path := writeFile(t, "config.yaml", `
dataset:
  type: sqlite
  path: /var/lib/carbonchart/data.db
  station: Toronto
chart:
  province: ON
  station: Toronto
  renderer: png
  output: chart.png
  style:
    line_colors: ["#000000", "rgb(1,2,3)"]
    title_template: "{{.Province}}"
server:
  port: 9090
  open_browser: false
`)

	cfg, err := NewYAMLProvider(path).LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Dataset.Type != DatasetSQLite || cfg.Dataset.Station != "Toronto" {
		t.Errorf("Dataset = %+v", cfg.Dataset)
	}
	if cfg.Chart.Province != "ON" || cfg.Chart.Renderer != RendererPNG || cfg.Chart.Output != "chart.png" {
		t.Errorf("Chart = %+v", cfg.Chart)
	}
	if !reflect.DeepEqual(cfg.Chart.Style.LineColors, []string{"#000000", "rgb(1,2,3)"}) {
		t.Errorf("LineColors = %v", cfg.Chart.Style.LineColors)
	}
	if cfg.Server.Port != 9090 || cfg.Server.ListenAddr != DefaultListenAddr {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.ShouldOpenBrowser() {
		t.Error("ShouldOpenBrowser() = true, expected false")
	}
}

func TestYAMLProviderDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `
dataset:
  path: data.yaml
chart:
  province: ON
`)

	cfg, err := NewYAMLProvider(path).LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Dataset.Type != DatasetYAML {
		t.Errorf("Dataset.Type = %q, expected %q", cfg.Dataset.Type, DatasetYAML)
	}
	if cfg.Chart.Renderer != RendererBrowser {
		t.Errorf("Chart.Renderer = %q, expected %q", cfg.Chart.Renderer, RendererBrowser)
	}
	if cfg.Server.Addr() != "127.0.0.1:8080" {
		t.Errorf("Server.Addr() = %q", cfg.Server.Addr())
	}
	if !cfg.Server.ShouldOpenBrowser() {
		t.Error("ShouldOpenBrowser() = false, expected true when unset")
	}
}

func TestYAMLProviderErrors(t *testing.T) {
	path := writeFile(t, "config.yaml", "dataset:\n  path: a.yaml\nchart:\n  province: ON\n  colour: red\n")
	if _, err := NewYAMLProvider(path).LoadConfig(); err == nil || !strings.Contains(err.Error(), "colour") {
		t.Errorf("LoadConfig() error = %v, expected unknown key colour", err)
	}

	if _, err := NewYAMLProvider(filepath.Join(t.TempDir(), "missing.yaml")).LoadConfig(); err == nil {
		t.Error("LoadConfig() on missing file returned nil error")
	}
}

func TestLoadConfigLeavesValidationToCaller(t *testing.T) {
	path := writeFile(t, "config.yaml", "chart:\n  station: Toronto\n")
	cfg, err := NewYAMLProvider(path).LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Dataset.Type != DatasetYAML || cfg.Chart.Renderer != RendererBrowser {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "chart.province is required") {
		t.Errorf("Validate() error = %v, expected missing province", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing province",
			content: "dataset:\n  path: a.yaml\n",
			wantErr: "chart.province is required",
		},
		{
			name:    "postgres without dsn",
			content: "dataset:\n  type: postgres\nchart:\n  province: ON\n",
			wantErr: "dataset.dsn is required",
		},
		{
			name:    "png without output",
			content: "dataset:\n  path: a.yaml\nchart:\n  province: ON\n  renderer: png\n",
			wantErr: "chart.output is required",
		},
		{
			name:    "bad renderer",
			content: "dataset:\n  path: a.yaml\nchart:\n  province: ON\n  renderer: pdf\n",
			wantErr: "unsupported chart.renderer",
		},
		{
			name:    "one line color",
			content: "dataset:\n  path: a.yaml\nchart:\n  province: ON\n  style:\n    line_colors: [red]\n",
			wantErr: "needs 2 colors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "config.yaml", tt.content)
			cfg, err := NewYAMLProvider(path).LoadConfig()
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, expected it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestSQLiteProviderRoundTrip(t *testing.T) {
	provider, err := NewSQLiteProvider(filepath.Join(t.TempDir(), "config.db"))
	if err != nil {
		t.Fatalf("NewSQLiteProvider() error = %v", err)
	}
	defer provider.Close()

	if provider.IsReadOnly() {
		t.Error("IsReadOnly() = true, expected false")
	}

	open := false
	want := &ConfigData{
		Dataset: DatasetData{Type: DatasetPostgres, DSN: "postgres://localhost/climate", Station: "Toronto"},
		Chart: ChartData{
			Province: "ON",
			Station:  "Toronto",
			Renderer: RendererHTML,
			Output:   "chart.html",
			Style: StyleData{
				LineColors:          []string{"#0E9CB3", "rgb(128,0,0)"},
				PlotBackgroundColor: "rgb(255,228,174)",
				TitleTemplate:       "CO2 at {{.Station}}",
			},
		},
		Server: ServerData{ListenAddr: "0.0.0.0", Port: 8081, OpenBrowser: &open},
	}

	if err := provider.SaveConfig(want); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	got, err := provider.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadConfig() = %+v, expected %+v", got, want)
	}
}

func TestSQLiteProviderRejectsUnknownSetting(t *testing.T) {
	provider, err := NewSQLiteProvider(filepath.Join(t.TempDir(), "config.db"))
	if err != nil {
		t.Fatalf("NewSQLiteProvider() error = %v", err)
	}
	defer provider.Close()

	if _, err := provider.db.Exec(`INSERT INTO settings (section, key, value) VALUES ('chart', 'colour', 'red')`); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if _, err := provider.LoadConfig(); err == nil || !strings.Contains(err.Error(), "unknown setting chart.colour") {
		t.Errorf("LoadConfig() error = %v, expected unknown setting", err)
	}
}
