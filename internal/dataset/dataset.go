// Package dataset loads already-structured gas records and daily temperature
// readings for the series pipeline.
package dataset

import (
	"context"
	"fmt"
	"strconv"

	"github.com/chrissnell/carbonchart/internal/series"
	"github.com/chrissnell/carbonchart/pkg/config"
	"go.uber.org/zap"
)

// Source supplies the two raw inputs of the pipeline.
type Source interface {
	GasRecords(ctx context.Context) ([]series.GasRecord, error)
	Temperatures(ctx context.Context) ([]series.YearReadings, error)
	Close() error
}

// New opens the source selected by the dataset configuration.
func New(cfg config.DatasetData, logger *zap.SugaredLogger) (Source, error) {
	switch cfg.Type {
	case config.DatasetYAML:
		return NewYAMLSource(cfg.Path), nil
	case config.DatasetSQLite:
		return NewSQLiteSource(cfg.Path, cfg.Station)
	case config.DatasetPostgres:
		return NewPostgresSource(cfg.DSN, cfg.Station, logger)
	default:
		return nil, fmt.Errorf("unsupported dataset type: %s", cfg.Type)
	}
}

type temperatureRow struct {
	Year    int
	Celsius float64
}

// groupByYear folds rows ordered by year into one YearReadings per year.
func groupByYear(rows []temperatureRow) []series.YearReadings {
	var table []series.YearReadings
	for i, r := range rows {
		if i == 0 || r.Year != rows[i-1].Year {
			table = append(table, series.YearReadings{Year: strconv.Itoa(r.Year)})
		}
		last := &table[len(table)-1]
		last.Readings = append(last.Readings, r.Celsius)
	}
	return table
}
