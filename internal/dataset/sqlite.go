package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/chrissnell/carbonchart/internal/series"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS gas_readings (
	year     INTEGER NOT NULL,
	province TEXT    NOT NULL,
	station  TEXT    NOT NULL DEFAULT '',
	co2      REAL    NOT NULL
);
CREATE TABLE IF NOT EXISTS daily_temperatures (
	station TEXT    NOT NULL DEFAULT '',
	year    INTEGER NOT NULL,
	day     INTEGER NOT NULL,
	celsius REAL    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_gas_readings_station ON gas_readings (station, year);
CREATE INDEX IF NOT EXISTS idx_daily_temperatures_station ON daily_temperatures (station, year, day);
`

// SQLiteSource reads the gas_readings and daily_temperatures tables. When
// station is set, only that station's rows are returned.
type SQLiteSource struct {
	db      *sql.DB
	station string
}

func NewSQLiteSource(path, station string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}
	return &SQLiteSource{db: db, station: station}, nil
}

// InitSchema creates the dataset tables if they do not exist.
func (s *SQLiteSource) InitSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to create dataset schema: %w", err)
	}
	return nil
}

func (s *SQLiteSource) stationFilter() (string, []any) {
	if s.station == "" {
		return "", nil
	}
	return " WHERE station = ?", []any{s.station}
}

func (s *SQLiteSource) GasRecords(ctx context.Context) ([]series.GasRecord, error) {
	where, args := s.stationFilter()
	rows, err := s.db.QueryContext(ctx,
		`SELECT year, province, co2 FROM gas_readings`+where+` ORDER BY year, rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query gas readings: %w", err)
	}
	defer rows.Close()

	var records []series.GasRecord
	for rows.Next() {
		var r series.GasRecord
		if err := rows.Scan(&r.Year, &r.Province, &r.CO2); err != nil {
			return nil, fmt.Errorf("failed to scan gas reading: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLiteSource) Temperatures(ctx context.Context) ([]series.YearReadings, error) {
	where, args := s.stationFilter()
	rows, err := s.db.QueryContext(ctx,
		`SELECT year, celsius FROM daily_temperatures`+where+` ORDER BY year, day`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily temperatures: %w", err)
	}
	defer rows.Close()

	var temps []temperatureRow
	for rows.Next() {
		var r temperatureRow
		if err := rows.Scan(&r.Year, &r.Celsius); err != nil {
			return nil, fmt.Errorf("failed to scan daily temperature: %w", err)
		}
		temps = append(temps, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groupByYear(temps), nil
}

// Import replaces the given station's rows with the contents of a Document. Day
// numbers are the reading's position within its year, starting at 1.
func (s *SQLiteSource) Import(ctx context.Context, station string, doc Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"gas_readings", "daily_temperatures"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE station = ?`, station); err != nil {
			return fmt.Errorf("failed to clear %s for station %q: %w", table, station, err)
		}
	}

	for _, r := range doc.Gas {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO gas_readings (year, province, station, co2) VALUES (?, ?, ?, ?)`,
			r.Year, r.Province, station, r.CO2); err != nil {
			return fmt.Errorf("failed to insert gas reading: %w", err)
		}
	}

	for _, yr := range doc.Temperatures {
		year, err := strconv.Atoi(strings.TrimSpace(yr.Year))
		if err != nil {
			return fmt.Errorf("invalid temperature year %q: %w", yr.Year, err)
		}
		for i, c := range yr.Readings {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO daily_temperatures (station, year, day, celsius) VALUES (?, ?, ?, ?)`,
				station, year, i+1, c); err != nil {
				return fmt.Errorf("failed to insert temperature for %s: %w", yr.Year, err)
			}
		}
	}

	return tx.Commit()
}

func (s *SQLiteSource) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
