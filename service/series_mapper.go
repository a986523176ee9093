package services

import "weather-dashboard/models"

// Track labels and colors, in the fixed order the chart draws them.
const (
	LABEL_MAX_TEMPERATURE  = "Max Temperature (°C)"
	LABEL_MIN_TEMPERATURE  = "Min Temperature (°C)"
	LABEL_MEAN_TEMPERATURE = "Mean Temperature (°C)"

	COLOR_MAX_BORDER      = "rgb(255, 99, 132)"
	COLOR_MAX_BACKGROUND  = "rgba(255, 99, 132, 0.5)"
	COLOR_MIN_BORDER      = "rgb(54, 162, 235)"
	COLOR_MIN_BACKGROUND  = "rgba(54, 162, 235, 0.5)"
	COLOR_MEAN_BORDER     = "rgb(75, 192, 192)"
	COLOR_MEAN_BACKGROUND = "rgba(75, 192, 192, 0.5)"
)

// TableColumns are the table headers, in column order.
var TableColumns = []string{"Date", "Max Temp (°C)", "Min Temp (°C)", "Mean Temp (°C)"}

// MapSeries turns a validated DailySeries into chart and table shapes.
// A nil series maps to an empty chart and a nil table.
func MapSeries(series *models.DailySeries) (models.ChartSeries, []models.TableRow) {
	return MapChart(series), MapTable(series)
}

// MapChart builds the x-axis labels and the max/min/mean tracks.
func MapChart(series *models.DailySeries) models.ChartSeries {
	if series == nil {
		return models.ChartSeries{
			Labels: []string{},
			Tracks: []models.Track{
				newTrack(LABEL_MAX_TEMPERATURE, nil, COLOR_MAX_BORDER, COLOR_MAX_BACKGROUND),
				newTrack(LABEL_MIN_TEMPERATURE, nil, COLOR_MIN_BORDER, COLOR_MIN_BACKGROUND),
				newTrack(LABEL_MEAN_TEMPERATURE, nil, COLOR_MEAN_BORDER, COLOR_MEAN_BACKGROUND),
			},
		}
	}

	return models.ChartSeries{
		Labels: append([]string{}, series.Time...),
		Tracks: []models.Track{
			newTrack(LABEL_MAX_TEMPERATURE, series.Temperature2mMax, COLOR_MAX_BORDER, COLOR_MAX_BACKGROUND),
			newTrack(LABEL_MIN_TEMPERATURE, series.Temperature2mMin, COLOR_MIN_BORDER, COLOR_MIN_BACKGROUND),
			newTrack(LABEL_MEAN_TEMPERATURE, series.Temperature2mMean, COLOR_MEAN_BORDER, COLOR_MEAN_BACKGROUND),
		},
	}
}

// MapTable builds one row per day: date, max, min, mean.
func MapTable(series *models.DailySeries) []models.TableRow {
	if series == nil {
		return nil
	}

	rows := make([]models.TableRow, len(series.Time))
	for i, date := range series.Time {
		rows[i] = models.TableRow{
			Date: date,
			Max:  series.Temperature2mMax[i],
			Min:  series.Temperature2mMin[i],
			Mean: series.Temperature2mMean[i],
		}
	}
	return rows
}

func newTrack(label string, values []*float64, border, background string) models.Track {
	return models.Track{
		Label:           label,
		Data:            append([]*float64{}, values...),
		BorderColor:     border,
		BackgroundColor: background,
	}
}
