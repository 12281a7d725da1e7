package config

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

const settingsSchema = `
CREATE TABLE IF NOT EXISTS settings (
	section TEXT NOT NULL,
	key     TEXT NOT NULL,
	value   TEXT NOT NULL,
	PRIMARY KEY (section, key)
)`

// SQLiteProvider implements ConfigProvider on a settings table of
// (section, key, value) rows
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	if _, err := db.Exec(settingsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create settings table: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	rows, err := s.db.Query(`SELECT section, key, value FROM settings ORDER BY section, key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	config := &ConfigData{}
	for rows.Next() {
		var section, key, value string
		if err := rows.Scan(&section, &key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		if err := config.set(section, key, value); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	config.ApplyDefaults()
	return config, nil
}

// SaveConfig replaces all stored settings with the given configuration
func (s *SQLiteProvider) SaveConfig(config *ConfigData) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM settings`); err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}

	for _, kv := range config.settings() {
		if kv.value == "" {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO settings (section, key, value) VALUES (?, ?, ?)`,
			kv.section, kv.key, kv.value); err != nil {
			return fmt.Errorf("failed to insert setting %s.%s: %w", kv.section, kv.key, err)
		}
	}

	return tx.Commit()
}

// IsReadOnly returns false since SQLite settings can be rewritten with SaveConfig
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type setting struct {
	section, key, value string
}

func (c *ConfigData) settings() []setting {
	port := ""
	if c.Server.Port != 0 {
		port = strconv.Itoa(c.Server.Port)
	}
	openBrowser := ""
	if c.Server.OpenBrowser != nil {
		openBrowser = strconv.FormatBool(*c.Server.OpenBrowser)
	}

	return []setting{
		{"dataset", "type", c.Dataset.Type},
		{"dataset", "path", c.Dataset.Path},
		{"dataset", "dsn", c.Dataset.DSN},
		{"dataset", "station", c.Dataset.Station},
		{"chart", "province", c.Chart.Province},
		{"chart", "station", c.Chart.Station},
		{"chart", "renderer", c.Chart.Renderer},
		{"chart", "output", c.Chart.Output},
		{"style", "line_colors", strings.Join(c.Chart.Style.LineColors, "|")},
		{"style", "background_color", c.Chart.Style.BackgroundColor},
		{"style", "plot_background_color", c.Chart.Style.PlotBackgroundColor},
		{"style", "title_template", c.Chart.Style.TitleTemplate},
		{"server", "listen_addr", c.Server.ListenAddr},
		{"server", "port", port},
		{"server", "open_browser", openBrowser},
	}
}

func (c *ConfigData) set(section, key, value string) error {
	switch section + "." + key {
	case "dataset.type":
		c.Dataset.Type = value
	case "dataset.path":
		c.Dataset.Path = value
	case "dataset.dsn":
		c.Dataset.DSN = value
	case "dataset.station":
		c.Dataset.Station = value
	case "chart.province":
		c.Chart.Province = value
	case "chart.station":
		c.Chart.Station = value
	case "chart.renderer":
		c.Chart.Renderer = value
	case "chart.output":
		c.Chart.Output = value
	case "style.line_colors":
		c.Chart.Style.LineColors = strings.Split(value, "|")
	case "style.background_color":
		c.Chart.Style.BackgroundColor = value
	case "style.plot_background_color":
		c.Chart.Style.PlotBackgroundColor = value
	case "style.title_template":
		c.Chart.Style.TitleTemplate = value
	case "server.listen_addr":
		c.Server.ListenAddr = value
	case "server.port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid server.port %q: %w", value, err)
		}
		c.Server.Port = port
	case "server.open_browser":
		open, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid server.open_browser %q: %w", value, err)
		}
		c.Server.OpenBrowser = &open
	default:
		return fmt.Errorf("unknown setting %s.%s", section, key)
	}
	return nil
}
