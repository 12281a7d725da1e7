package series

import (
	"fmt"
	"math"
)

// GasRecord is a single carbon-dioxide concentration reading for a province.
type GasRecord struct {
	Year     int     `json:"year" yaml:"year"`
	Province string  `json:"province" yaml:"province"`
	CO2      float64 `json:"co2" yaml:"co2"`
}

// YearReadings holds the daily temperature readings (Celsius) for one year.
// A temperature table is an ordered []YearReadings. Year is kept as a string
// because upstream tables key years by text; it must parse as an integer.
type YearReadings struct {
	Year     string    `json:"year" yaml:"year"`
	Readings []float64 `json:"readings" yaml:"readings"`
}

// AnomalyEntry is a year's average temperature minus the mean of all yearly
// averages.
type AnomalyEntry struct {
	Year    int     `json:"year"`
	Anomaly float64 `json:"anomaly"`
}

// Series is a pair of positionally aligned year and value sequences.
type Series struct {
	Years  []int     `json:"years" msgpack:"years"`
	Values []float64 `json:"values" msgpack:"values"`
}

// NewSeries builds a Series, rejecting axes of different lengths.
func NewSeries(years []int, values []float64) (Series, error) {
	if len(years) != len(values) {
		return Series{}, &LengthMismatchError{Years: len(years), Values: len(values)}
	}
	return Series{Years: years, Values: values}, nil
}

// Len returns the number of points in the series.
func (s Series) Len() int {
	return len(s.Values)
}

// Span returns the first and last year of the series.
func (s Series) Span() (first, last int, ok bool) {
	if len(s.Years) == 0 {
		return 0, 0, false
	}
	return s.Years[0], s.Years[len(s.Years)-1], true
}

func (s Series) String() string {
	first, last, ok := s.Span()
	if !ok {
		return "series(empty)"
	}
	return fmt.Sprintf("series(%d-%d, %d points)", first, last, s.Len())
}

// alignedYears returns the year axis for ascending source years. The years
// must be exactly first, first+1, ..., first+n-1 so that each value lands on
// its own year.
func alignedYears(sorted []int) ([]int, error) {
	first, last := sorted[0], sorted[len(sorted)-1]
	for i, y := range sorted {
		if y == first+i {
			continue
		}
		if span := yearSpan(first, last); span != len(sorted) {
			return nil, &LengthMismatchError{Years: span, Values: len(sorted)}
		}
		return nil, &MisalignedYearError{Year: y, Expected: first + i}
	}
	return yearRange(first, len(sorted)), nil
}

// yearSpan returns the number of years in [first, last], saturating at
// math.MaxInt.
func yearSpan(first, last int) int {
	d := uint(last - first)
	if d >= math.MaxInt {
		return math.MaxInt
	}
	return int(d) + 1
}

// yearRange returns count consecutive years starting at first.
func yearRange(first, count int) []int {
	years := make([]int, count)
	for i := range years {
		years[i] = first + i
	}
	return years
}
