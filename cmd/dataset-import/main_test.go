package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/chrissnell/carbonchart/internal/dataset"
)

func TestRunSQLite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	yamlFile := filepath.Join(dir, "dataset.yaml")
	content := "gas:\n  - {year: 2000, province: ON, co2: 5}\ntemperatures:\n  - year: 2000\n    readings: [1, 3]\n"
	if err := os.WriteFile(yamlFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	target, err := dataset.NewSQLiteSource(filepath.Join(dir, "data.db"), "Toronto")
	if err != nil {
		t.Fatal(err)
	}
	defer target.Close()

	if err := run(ctx, yamlFile, "Toronto", target); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	gas, err := target.GasRecords(ctx)
	if err != nil || len(gas) != 1 || gas[0].CO2 != 5 {
		t.Errorf("GasRecords() = %v, %v", gas, err)
	}
	temps, err := target.Temperatures(ctx)
	if err != nil || len(temps) != 1 || len(temps[0].Readings) != 2 {
		t.Errorf("Temperatures() = %v, %v", temps, err)
	}

	if err := run(ctx, filepath.Join(dir, "missing.yaml"), "", target); err == nil {
		t.Error("run() with a missing dataset returned nil error")
	}
}
