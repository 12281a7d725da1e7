package series

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// YearlyAverage returns the arithmetic mean of one year's readings.
func YearlyAverage(year string, readings []float64) (float64, error) {
	if len(readings) == 0 {
		return 0, &NoReadingsError{Year: year}
	}
	return stat.Mean(readings, nil), nil
}

// TemperatureAnomaly computes, for every year in the table, the yearly average
// minus the unweighted mean of all yearly averages. Entries are returned in
// ascending year order regardless of table order.
func TemperatureAnomaly(table []YearReadings) ([]AnomalyEntry, error) {
	if len(table) == 0 {
		return nil, ErrEmptyInput
	}

	entries := make([]AnomalyEntry, len(table))
	averages := make([]float64, len(table))
	for i, yr := range table {
		year, err := parseYear(yr.Year)
		if err != nil {
			return nil, err
		}
		avg, err := YearlyAverage(yr.Year, yr.Readings)
		if err != nil {
			return nil, err
		}
		entries[i] = AnomalyEntry{Year: year, Anomaly: avg}
		averages[i] = avg
	}

	// Mean of means: each year weighs the same regardless of reading count.
	baseline := stat.Mean(averages, nil)
	for i := range entries {
		entries[i].Anomaly -= baseline
	}

	slices.SortStableFunc(entries, func(a, b AnomalyEntry) int {
		return cmp.Compare(a.Year, b.Year)
	})
	return entries, nil
}

// TempSeries builds the temperature-anomaly series. The year axis is the
// contiguous range between the earliest and latest table year.
func TempSeries(table []YearReadings) (Series, error) {
	entries, err := TemperatureAnomaly(table)
	if err != nil {
		return Series{}, err
	}

	sorted := make([]int, len(entries))
	values := make([]float64, len(entries))
	for i, e := range entries {
		sorted[i] = e.Year
		values[i] = e.Anomaly
	}

	years, err := alignedYears(sorted)
	if err != nil {
		return Series{}, err
	}

	return NewSeries(years, values)
}

func parseYear(key string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return 0, &YearKeyError{Key: key, Err: err}
	}
	return year, nil
}
