package dataset

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/chrissnell/carbonchart/internal/series"
	"gopkg.in/yaml.v3"
)

// Document is the YAML dataset layout:
//
//	gas:
//	  - {year: 2000, province: ON, co2: 369.7}
//	temperatures:
//	  - year: 2000
//	    readings: [-5.1, -4.8, ...]
type Document struct {
	Gas          []series.GasRecord    `yaml:"gas"`
	Temperatures []series.YearReadings `yaml:"temperatures"`
}

// YAMLSource reads a Document from a file once and serves it from memory.
type YAMLSource struct {
	path string

	once sync.Once
	doc  Document
	err  error
}

func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{path: path}
}

func (s *YAMLSource) load() (Document, error) {
	s.once.Do(func() {
		data, err := os.ReadFile(s.path)
		if err != nil {
			s.err = fmt.Errorf("error reading dataset: %w", err)
			return
		}
		if err := yaml.Unmarshal(data, &s.doc); err != nil {
			s.err = fmt.Errorf("error parsing dataset %s: %w", s.path, err)
		}
	})
	return s.doc, s.err
}

func (s *YAMLSource) GasRecords(ctx context.Context) ([]series.GasRecord, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Gas, nil
}

func (s *YAMLSource) Temperatures(ctx context.Context) ([]series.YearReadings, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Temperatures, nil
}

func (s *YAMLSource) Close() error {
	return nil
}

// WriteYAML saves a Document in the layout YAMLSource reads.
func WriteYAML(path string, doc Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
