// Package series reshapes raw carbon-dioxide records and daily temperature
// readings into year-aligned series for dual-axis charting.
//
// Every function in this package is pure: inputs are never modified and each
// call returns freshly allocated slices.
//
// Source years are sorted ascending before the year axis is derived, and the
// year axis is always the contiguous range from the first to the last year.
// When that range does not line up one-to-one with the values (duplicate or
// missing years) the call fails with an error wrapping ErrLengthMismatch: a
// *LengthMismatchError when the counts differ, or a *MisalignedYearError when
// a duplicate offsets a gap.
package series
