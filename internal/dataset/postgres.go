package dataset

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chrissnell/carbonchart/internal/log"
	"github.com/chrissnell/carbonchart/internal/series"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GasReading is the gorm model of the gas_readings table.
type GasReading struct {
	ID       uint    `gorm:"primaryKey"`
	Year     int     `gorm:"not null;index:idx_gas_station_year,priority:2"`
	Province string  `gorm:"not null"`
	Station  string  `gorm:"not null;default:'';index:idx_gas_station_year,priority:1"`
	CO2      float64 `gorm:"column:co2;not null"`
}

func (GasReading) TableName() string { return "gas_readings" }

// DailyTemperature is the gorm model of the daily_temperatures table.
type DailyTemperature struct {
	ID      uint    `gorm:"primaryKey"`
	Station string  `gorm:"not null;default:'';index:idx_temp_station_year,priority:1"`
	Year    int     `gorm:"not null;index:idx_temp_station_year,priority:2"`
	Day     int     `gorm:"not null"`
	Celsius float64 `gorm:"not null"`
}

func (DailyTemperature) TableName() string { return "daily_temperatures" }

// PostgresSource reads the dataset tables from PostgreSQL (or TimescaleDB).
type PostgresSource struct {
	db      *gorm.DB
	station string
	logger  *zap.SugaredLogger
}

func NewPostgresSource(dsn, station string, logger *zap.SugaredLogger) (*PostgresSource, error) {
	dbLogger := gormLogger()

	logger.Info("connecting to PostgreSQL...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("unable to connect to PostgreSQL: %w", err)
	}
	logger.Info("PostgreSQL connection successful")

	return &PostgresSource{db: db, station: station, logger: logger}, nil
}

func gormLogger() gormlogger.Interface {
	return gormlogger.New(
		zap.NewStdLog(log.GetZapLogger()),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// InitSchema creates or migrates the dataset tables.
func (s *PostgresSource) InitSchema(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&GasReading{}, &DailyTemperature{})
}

func (s *PostgresSource) scoped(ctx context.Context) *gorm.DB {
	q := s.db.WithContext(ctx)
	if s.station != "" {
		q = q.Where("station = ?", s.station)
	}
	return q
}

func (s *PostgresSource) GasRecords(ctx context.Context) ([]series.GasRecord, error) {
	var rows []GasReading
	if err := s.scoped(ctx).Order("year, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query gas readings: %w", err)
	}
	s.logger.Debugw("loaded gas readings", "rows", len(rows), "station", s.station)
	return gasRecordsFromModels(rows), nil
}

func (s *PostgresSource) Temperatures(ctx context.Context) ([]series.YearReadings, error) {
	var rows []DailyTemperature
	if err := s.scoped(ctx).Order("year, day").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query daily temperatures: %w", err)
	}
	s.logger.Debugw("loaded daily temperatures", "rows", len(rows), "station", s.station)
	return temperaturesFromModels(rows), nil
}

func (s *PostgresSource) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gasRecordsFromModels(rows []GasReading) []series.GasRecord {
	records := make([]series.GasRecord, len(rows))
	for i, r := range rows {
		records[i] = series.GasRecord{Year: r.Year, Province: r.Province, CO2: r.CO2}
	}
	return records
}

func temperaturesFromModels(rows []DailyTemperature) []series.YearReadings {
	temps := make([]temperatureRow, len(rows))
	for i, r := range rows {
		temps[i] = temperatureRow{Year: r.Year, Celsius: r.Celsius}
	}
	return groupByYear(temps)
}

// Import replaces the given station's rows with the contents of a Document,
// in one transaction.
func (s *PostgresSource) Import(ctx context.Context, station string, doc Document) error {
	gas, temps, err := modelsFromDocument(station, doc)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("station = ?", station).Delete(&GasReading{}).Error; err != nil {
			return fmt.Errorf("failed to clear gas readings for station %q: %w", station, err)
		}
		if err := tx.Where("station = ?", station).Delete(&DailyTemperature{}).Error; err != nil {
			return fmt.Errorf("failed to clear daily temperatures for station %q: %w", station, err)
		}
		if len(gas) > 0 {
			if err := tx.CreateInBatches(gas, 500).Error; err != nil {
				return fmt.Errorf("failed to insert gas readings: %w", err)
			}
		}
		if len(temps) > 0 {
			if err := tx.CreateInBatches(temps, 500).Error; err != nil {
				return fmt.Errorf("failed to insert daily temperatures: %w", err)
			}
		}
		return nil
	})
}

func modelsFromDocument(station string, doc Document) ([]GasReading, []DailyTemperature, error) {
	gas := make([]GasReading, len(doc.Gas))
	for i, r := range doc.Gas {
		gas[i] = GasReading{Year: r.Year, Province: r.Province, Station: station, CO2: r.CO2}
	}

	var temps []DailyTemperature
	for _, yr := range doc.Temperatures {
		year, err := strconv.Atoi(strings.TrimSpace(yr.Year))
		if err != nil {
			return nil, nil, fmt.Errorf("invalid temperature year %q: %w", yr.Year, err)
		}
		for i, c := range yr.Readings {
			temps = append(temps, DailyTemperature{Station: station, Year: year, Day: i + 1, Celsius: c})
		}
	}
	return gas, temps, nil
}
