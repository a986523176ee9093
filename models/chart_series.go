package models

// Track is one line of the temperature chart.
type Track struct {
	Label           string     `json:"label"`
	Data            []*float64 `json:"data"`
	BorderColor     string     `json:"border_color"`
	BackgroundColor string     `json:"background_color"`
}

// ChartSeries is the chart-ready shape of a DailySeries: x-axis labels plus one track per metric.
type ChartSeries struct {
	Labels []string `json:"labels"`
	Tracks []Track  `json:"tracks"`
}

// TableRow is one day of the temperature table, columns in display order.
type TableRow struct {
	Date string   `json:"date"`
	Max  *float64 `json:"max"`
	Min  *float64 `json:"min"`
	Mean *float64 `json:"mean"`
}

// WeatherView is what the JSON endpoint returns for a successful fetch.
type WeatherView struct {
	Chart ChartSeries `json:"chart"`
	Table []TableRow  `json:"table"`
}
