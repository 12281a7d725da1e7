package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

const DefaultTitleTemplate = "Carbon dioxide levels and anomaly temperatures for {{.Station}}, {{.Province}}"

// Style is the chart's visual configuration. Colors are CSS hex (#rgb,
// #rrggbb) or rgb(r,g,b) strings so the same values drive the HTML and PNG
// renderers.
type Style struct {
	// LineColors holds the CO2 trace color then the temperature trace color.
	LineColors          [2]string `json:"lineColors"`
	BackgroundColor     string    `json:"backgroundColor"`
	PlotBackgroundColor string    `json:"plotBackgroundColor"`
	TitleTemplate       string    `json:"titleTemplate"`
}

func DefaultStyle() Style {
	return Style{
		LineColors:          [2]string{"#0E9CB3", "#800000"},
		BackgroundColor:     "#FFE4AE",
		PlotBackgroundColor: "rgb(255,228,174)",
		TitleTemplate:       DefaultTitleTemplate,
	}
}

// WithDefaults returns a copy of s with empty fields taken from DefaultStyle.
func (s Style) WithDefaults() Style {
	d := DefaultStyle()
	for i := range s.LineColors {
		if s.LineColors[i] == "" {
			s.LineColors[i] = d.LineColors[i]
		}
	}
	if s.BackgroundColor == "" {
		s.BackgroundColor = d.BackgroundColor
	}
	if s.PlotBackgroundColor == "" {
		s.PlotBackgroundColor = d.PlotBackgroundColor
	}
	if s.TitleTemplate == "" {
		s.TitleTemplate = d.TitleTemplate
	}
	return s
}

func (s Style) validate() error {
	for _, c := range []string{s.LineColors[0], s.LineColors[1], s.BackgroundColor, s.PlotBackgroundColor} {
		if _, err := ParseColor(c); err != nil {
			return err
		}
	}
	return nil
}

// ParseColor parses "#rgb", "#rrggbb" and "rgb(r,g,b)" color strings.
func ParseColor(s string) (color.RGBA, error) {
	v := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(v, "#"):
		hex := v[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil

	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		parts := strings.Split(v[len("rgb("):len(v)-1], ",")
		if len(parts) != 3 {
			return color.RGBA{}, fmt.Errorf("invalid rgb color %q", s)
		}
		var rgb [3]uint8
		for i, p := range parts {
			n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("invalid rgb color %q: %w", s, err)
			}
			rgb[i] = uint8(n)
		}
		return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}, nil
	}

	return color.RGBA{}, fmt.Errorf("unsupported color %q", s)
}
