package util

import (
	"encoding/json"
	"fmt"
	"os"

	"weather-dashboard/models"
)

// ReadWeatherResponseFromJSON loads a recorded historical forecast API response from JSON on disk.
func ReadWeatherResponseFromJSON(filePath string) (*models.WeatherResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.WeatherResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal WeatherResponse: %w", err)
	}
	return &resp, nil
}

// PrintDailySeriesPartially logs the first few days of a series, for manual runs.
func PrintDailySeriesPartially(series *models.DailySeries, limit int) {
	if series == nil {
		fmt.Println("DailySeries: <nil>")
		return
	}
	fmt.Printf("DailySeries: %d days\n", series.Len())
	for i := 0; i < series.Len() && i < limit; i++ {
		fmt.Printf("  %s max=%s min=%s mean=%s\n",
			series.Time[i],
			FormatTemperature(series.Temperature2mMax[i]),
			FormatTemperature(series.Temperature2mMin[i]),
			FormatTemperature(series.Temperature2mMean[i]))
	}
}

// FormatTemperature renders a nullable reading for display; missing values render empty.
func FormatTemperature(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%g", *v)
}
