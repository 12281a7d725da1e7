package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/chrissnell/carbonchart/internal/app"
	"github.com/chrissnell/carbonchart/internal/log"
	"github.com/chrissnell/carbonchart/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "config.yaml", "Path to configuration source:\n\t\t\t  YAML: config.yaml\n\t\t\t  SQLite: config.db (see 'config-convert')")
	cfgBackend := flag.String("config-backend", "yaml", "Configuration backend type: 'yaml' or 'sqlite'")
	province := flag.String("province", "", "Province to chart (overrides chart.province)")
	station := flag.String("station", "", "Station name for the chart title (overrides chart.station)")
	renderer := flag.String("output", "", "Renderer: 'browser', 'html' or 'png' (overrides chart.renderer)")
	outFile := flag.String("out", "", "Output file for the html and png renderers (overrides chart.output)")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("carbonchart %s\n", version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfgData, err := prepareConfig(*cfgFile, *cfgBackend, *province, *station, *renderer, *outFile)
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	log.Debugw("configuration loaded", "province", cfgData.Chart.Province, "renderer", cfgData.Chart.Renderer, "dataset", cfgData.Dataset.Type)

	application := app.New(cfgData, log.GetSugaredLogger())
	if err := application.Run(context.Background()); err != nil {
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}

// prepareConfig loads the configuration, applies the flag overrides and only
// then validates, so flags can supply values the file leaves out.
func prepareConfig(cfgFile, cfgBackend, province, station, renderer, outFile string) (*config.ConfigData, error) {
	cfgData, err := loadConfig(cfgFile, cfgBackend)
	if err != nil {
		return nil, err
	}

	applyOverrides(cfgData, province, station, renderer, outFile)
	if err := cfgData.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfgData, nil
}

func loadConfig(cfgFile, cfgBackend string) (*config.ConfigData, error) {
	filename, _ := filepath.Abs(cfgFile)

	var provider config.ConfigProvider
	var err error

	switch cfgBackend {
	case "yaml":
		provider = config.NewYAMLProvider(filename)
	case "sqlite":
		provider, err = config.NewSQLiteProvider(filename)
		if err != nil {
			return nil, fmt.Errorf("error creating SQLite provider: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration backend: %s. Use 'yaml' or 'sqlite'", cfgBackend)
	}
	defer provider.Close()

	cfgData, err := provider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}

	return cfgData, nil
}

func applyOverrides(cfg *config.ConfigData, province, station, renderer, outFile string) {
	if province != "" {
		cfg.Chart.Province = province
	}
	if station != "" {
		cfg.Chart.Station = station
	}
	if renderer != "" {
		cfg.Chart.Renderer = renderer
	}
	if outFile != "" {
		cfg.Chart.Output = outFile
	}
}
