package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chrissnell/carbonchart/pkg/config"
)

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	yamlFile := filepath.Join(dir, "config.yaml")
	sqliteFile := filepath.Join(dir, "config.db")
	content := "dataset:\n  type: sqlite\n  path: data.db\nchart:\n  province: ON\n  station: Toronto\nserver:\n  port: 9000\n"
	if err := os.WriteFile(yamlFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := convert(yamlFile, sqliteFile, false, true); err != nil {
		t.Fatalf("dry run error = %v", err)
	}
	if _, err := os.Stat(sqliteFile); !os.IsNotExist(err) {
		t.Fatal("dry run created the database")
	}

	if err := convert(yamlFile, sqliteFile, false, false); err != nil {
		t.Fatalf("convert() error = %v", err)
	}
	if err := convert(yamlFile, sqliteFile, false, false); err == nil {
		t.Error("convert() over an existing database without -force returned nil error")
	}
	if err := convert(yamlFile, sqliteFile, true, false); err != nil {
		t.Fatalf("convert() with force error = %v", err)
	}

	provider, err := config.NewSQLiteProvider(sqliteFile)
	if err != nil {
		t.Fatal(err)
	}
	defer provider.Close()

	cfg, err := provider.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Dataset.Type != config.DatasetSQLite || cfg.Chart.Station != "Toronto" || cfg.Server.Port != 9000 {
		t.Errorf("converted config = %+v", cfg)
	}
}
