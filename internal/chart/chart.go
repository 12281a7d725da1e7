// Package chart turns a CO2 series and a temperature-anomaly series into a
// dual-axis chart description and renders it.
package chart

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/chrissnell/carbonchart/internal/series"
)

const (
	XAxisLabel  = "Years"
	CO2Label    = "Carbon dioxide levels"
	TempLabel   = "Temperatures in Celsius"
	CO2Name     = "CO2"
	TempName    = "Temperatures"
	ModeMarkers = "lines+markers"
)

// Renderer draws a chart. Implementations may block (the browser renderer
// serves until ctx is cancelled).
type Renderer interface {
	Render(ctx context.Context, spec *Spec) error
}

// Trace is one plotted series.
type Trace struct {
	Name   string    `json:"name"`
	Years  []int     `json:"years"`
	Values []float64 `json:"values"`
	Color  string    `json:"color"`
	Mode   string    `json:"mode"`
	// Secondary places the trace on the right-hand y-axis.
	Secondary bool `json:"secondary"`
}

// Spec is everything a renderer needs: the two traces on a shared x-axis and
// the title and axis labels.
type Spec struct {
	Title       string  `json:"title"`
	Province    string  `json:"province"`
	Station     string  `json:"station"`
	XAxisLabel  string  `json:"xAxisLabel"`
	YAxisLabel  string  `json:"yAxisLabel"`
	Y2AxisLabel string  `json:"y2AxisLabel"`
	Traces      []Trace `json:"traces"`
	Style       Style   `json:"style"`
}

// Build assembles the chart: CO2 on the primary axis, temperature anomaly on
// the secondary axis, title rendered from the style's template.
func Build(co2, temp series.Series, province, station string, style Style) (*Spec, error) {
	style = style.WithDefaults()
	if err := style.validate(); err != nil {
		return nil, fmt.Errorf("invalid chart style: %w", err)
	}

	title, err := renderTitle(style.TitleTemplate, province, station)
	if err != nil {
		return nil, err
	}

	return &Spec{
		Title:       title,
		Province:    province,
		Station:     station,
		XAxisLabel:  XAxisLabel,
		YAxisLabel:  CO2Label,
		Y2AxisLabel: TempLabel,
		Traces: []Trace{
			{Name: CO2Name, Years: co2.Years, Values: co2.Values, Color: style.LineColors[0], Mode: ModeMarkers},
			{Name: TempName, Years: temp.Years, Values: temp.Values, Color: style.LineColors[1], Mode: ModeMarkers, Secondary: true},
		},
		Style: style,
	}, nil
}

func renderTitle(tmpl, province, station string) (string, error) {
	t, err := template.New("title").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("invalid title template: %w", err)
	}

	var b strings.Builder
	err = t.Execute(&b, struct{ Province, Station string }{province, station})
	if err != nil {
		return "", fmt.Errorf("error rendering title: %w", err)
	}
	return b.String(), nil
}

// xRange returns the smallest and largest year over all traces.
func (s *Spec) xRange() (lo, hi int, ok bool) {
	for _, tr := range s.Traces {
		for _, y := range tr.Years {
			if !ok || y < lo {
				lo = y
			}
			if !ok || y > hi {
				hi = y
			}
			ok = true
		}
	}
	return lo, hi, ok
}
