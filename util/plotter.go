package util

import (
	"io"

	"weather-dashboard/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const CHART_TITLE = "Daily Temperatures"

// echarts skips "-" points, leaving a gap in the line.
const MISSING_POINT = "-"

// NewTemperatureChart builds a line chart with one series per track, labelled by date.
func NewTemperatureChart(series models.ChartSeries) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: CHART_TITLE,
			Width:     "100%",
			Height:    "420px",
		}),
		charts.WithTitleOpts(opts.Title{Title: CHART_TITLE}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "°C"}),
	)

	line.SetXAxis(series.Labels)
	for _, track := range series.Tracks {
		line.AddSeries(track.Label, toLineData(track.Data),
			charts.WithLineStyleOpts(opts.LineStyle{Color: track.BorderColor}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: track.BorderColor}),
		)
	}
	return line
}

// RenderTemperatureChart writes the chart as a standalone HTML page.
func RenderTemperatureChart(w io.Writer, series models.ChartSeries) error {
	return NewTemperatureChart(series).Render(w)
}

func toLineData(values []*float64) []opts.LineData {
	data := make([]opts.LineData, 0, len(values))
	for _, v := range values {
		if v == nil {
			data = append(data, opts.LineData{Value: MISSING_POINT})
			continue
		}
		data = append(data, opts.LineData{Value: *v})
	}
	return data
}
