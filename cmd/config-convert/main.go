package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chrissnell/carbonchart/pkg/config"
)

func main() {
	var (
		yamlFile   = flag.String("yaml", "", "Path to YAML configuration file (required)")
		sqliteFile = flag.String("sqlite", "", "Path to SQLite database file (required)")
		force      = flag.Bool("force", false, "Overwrite existing SQLite database")
		dryRun     = flag.Bool("dry-run", false, "Show what would be done without executing")
	)
	flag.Parse()

	if *yamlFile == "" || *sqliteFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -yaml <config.yaml> -sqlite <config.db>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := convert(*yamlFile, *sqliteFile, *force, *dryRun); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func convert(yamlFile, sqliteFile string, force, dryRun bool) error {
	if _, err := os.Stat(yamlFile); os.IsNotExist(err) {
		return fmt.Errorf("YAML file does not exist: %s", yamlFile)
	}

	if _, err := os.Stat(sqliteFile); err == nil {
		if !force {
			return fmt.Errorf("SQLite file already exists: %s (use -force to overwrite)", sqliteFile)
		}
		if !dryRun {
			if err := os.Remove(sqliteFile); err != nil {
				return fmt.Errorf("removing existing SQLite file: %w", err)
			}
		}
	}

	fmt.Printf("Converting YAML configuration to SQLite...\n")
	fmt.Printf("  Source: %s\n", yamlFile)
	fmt.Printf("  Target: %s\n", sqliteFile)

	configData, err := config.NewYAMLProvider(yamlFile).LoadConfig()
	if err != nil {
		return fmt.Errorf("loading YAML configuration: %w", err)
	}

	if dryRun {
		printConfigSummary(configData)
		fmt.Println("DRY RUN complete - no database created")
		return nil
	}

	provider, err := config.NewSQLiteProvider(sqliteFile)
	if err != nil {
		return err
	}
	defer provider.Close()

	if err := provider.SaveConfig(configData); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}

	// Read it back so a bad conversion fails here rather than at startup.
	if _, err := provider.LoadConfig(); err != nil {
		return fmt.Errorf("verifying converted configuration: %w", err)
	}

	fmt.Println("Conversion completed successfully")
	return nil
}

func printConfigSummary(c *config.ConfigData) {
	fmt.Println("Configuration summary:")
	fmt.Printf("  Dataset:  %s %s%s\n", c.Dataset.Type, c.Dataset.Path, c.Dataset.DSN)
	fmt.Printf("  Chart:    %s / %s via %s\n", c.Chart.Province, c.Chart.Station, c.Chart.Renderer)
	fmt.Printf("  Server:   %s\n", c.Server.Addr())
}
