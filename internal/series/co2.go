package series

import (
	"cmp"
	"slices"
)

// FilterByProvince returns the records whose province matches, preserving
// their relative order.
func FilterByProvince(records []GasRecord, province string) ([]GasRecord, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	filtered := make([]GasRecord, 0, len(records))
	for _, r := range records {
		if r.Province == province {
			filtered = append(filtered, r)
		}
	}

	if len(filtered) == 0 {
		return nil, &NotFoundError{Province: province}
	}
	return filtered, nil
}

// CO2Series builds the carbon-dioxide series for a province. The year axis is
// the contiguous range between the earliest and latest filtered year; values
// follow ascending year order.
func CO2Series(records []GasRecord, province string) (Series, error) {
	filtered, err := FilterByProvince(records, province)
	if err != nil {
		return Series{}, err
	}

	// Stable so that same-year records keep their input order.
	slices.SortStableFunc(filtered, func(a, b GasRecord) int {
		return cmp.Compare(a.Year, b.Year)
	})

	sorted := make([]int, len(filtered))
	values := make([]float64, len(filtered))
	for i, r := range filtered {
		sorted[i] = r.Year
		values[i] = r.CO2
	}

	years, err := alignedYears(sorted)
	if err != nil {
		return Series{}, err
	}

	return NewSeries(years, values)
}
