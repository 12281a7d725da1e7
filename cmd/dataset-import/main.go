// dataset-import loads a YAML dataset into the SQLite or PostgreSQL tables
// read by carbonchart.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/chrissnell/carbonchart/internal/dataset"
	"github.com/chrissnell/carbonchart/internal/log"
)

type importer interface {
	InitSchema(ctx context.Context) error
	Import(ctx context.Context, station string, doc dataset.Document) error
	Close() error
}

func main() {
	var (
		yamlFile = flag.String("yaml", "", "Path to YAML dataset (required)")
		sqlite   = flag.String("sqlite", "", "Target SQLite database file")
		dsn      = flag.String("postgres", "", "Target PostgreSQL connection string")
		station  = flag.String("station", "", "Station the records belong to")
		debug    = flag.Bool("debug", false, "Turn on debugging output")
	)
	flag.Parse()

	if *yamlFile == "" || (*sqlite == "") == (*dsn == "") {
		fmt.Fprintf(os.Stderr, "Usage: %s -yaml <dataset.yaml> (-sqlite <data.db> | -postgres <dsn>) [-station name]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	var (
		target importer
		err    error
	)
	if *sqlite != "" {
		target, err = dataset.NewSQLiteSource(*sqlite, "")
	} else {
		target, err = dataset.NewPostgresSource(*dsn, "", log.GetSugaredLogger())
	}
	if err != nil {
		log.Fatalf("Failed to open target: %v", err)
	}
	defer target.Close()

	if err := run(context.Background(), *yamlFile, *station, target); err != nil {
		log.Errorf("Import failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, yamlFile, station string, target importer) error {
	src := dataset.NewYAMLSource(yamlFile)

	gas, err := src.GasRecords(ctx)
	if err != nil {
		return err
	}
	temps, err := src.Temperatures(ctx)
	if err != nil {
		return err
	}

	if err := target.InitSchema(ctx); err != nil {
		return err
	}
	if err := target.Import(ctx, station, dataset.Document{Gas: gas, Temperatures: temps}); err != nil {
		return err
	}

	log.Infow("dataset imported", "gas_records", len(gas), "temperature_years", len(temps), "station", station)
	return nil
}
