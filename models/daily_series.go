package models

import (
	"errors"
	"fmt"
)

// Daily metric names requested from the historical forecast API, in request order.
const (
	METRIC_TEMPERATURE_MAX           = "temperature_2m_max"
	METRIC_TEMPERATURE_MIN           = "temperature_2m_min"
	METRIC_TEMPERATURE_MEAN          = "temperature_2m_mean"
	METRIC_APPARENT_TEMPERATURE_MAX  = "apparent_temperature_max"
	METRIC_APPARENT_TEMPERATURE_MIN  = "apparent_temperature_min"
	METRIC_APPARENT_TEMPERATURE_MEAN = "apparent_temperature_mean"
)

// DailyMetrics is the fixed list sent as the `daily` query parameter.
var DailyMetrics = []string{
	METRIC_TEMPERATURE_MAX,
	METRIC_TEMPERATURE_MIN,
	METRIC_TEMPERATURE_MEAN,
	METRIC_APPARENT_TEMPERATURE_MAX,
	METRIC_APPARENT_TEMPERATURE_MIN,
	METRIC_APPARENT_TEMPERATURE_MEAN,
}

var ErrMisalignedSeries = errors.New("daily series arrays are not aligned with time")

// DailySeries is the `daily` block of the API response: parallel arrays indexed like Time.
// A nil entry is a day the API has no value for.
type DailySeries struct {
	Time                    []string   `json:"time"`
	Temperature2mMax        []*float64 `json:"temperature_2m_max"`
	Temperature2mMin        []*float64 `json:"temperature_2m_min"`
	Temperature2mMean       []*float64 `json:"temperature_2m_mean"`
	ApparentTemperatureMax  []*float64 `json:"apparent_temperature_max,omitempty"`
	ApparentTemperatureMin  []*float64 `json:"apparent_temperature_min,omitempty"`
	ApparentTemperatureMean []*float64 `json:"apparent_temperature_mean,omitempty"`
}

// Len returns the number of days in the series.
func (d *DailySeries) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Time)
}

// Validate checks that every displayed track has one value per entry in Time.
// Apparent temperature tracks are not displayed and may be absent, but when
// present they must be aligned too.
func (d *DailySeries) Validate() error {
	n := len(d.Time)
	required := map[string][]*float64{
		METRIC_TEMPERATURE_MAX:  d.Temperature2mMax,
		METRIC_TEMPERATURE_MIN:  d.Temperature2mMin,
		METRIC_TEMPERATURE_MEAN: d.Temperature2mMean,
	}
	for name, values := range required {
		if len(values) != n {
			return fmt.Errorf("%w: %s has %d values, time has %d", ErrMisalignedSeries, name, len(values), n)
		}
	}

	optional := map[string][]*float64{
		METRIC_APPARENT_TEMPERATURE_MAX:  d.ApparentTemperatureMax,
		METRIC_APPARENT_TEMPERATURE_MIN:  d.ApparentTemperatureMin,
		METRIC_APPARENT_TEMPERATURE_MEAN: d.ApparentTemperatureMean,
	}
	for name, values := range optional {
		if values != nil && len(values) != n {
			return fmt.Errorf("%w: %s has %d values, time has %d", ErrMisalignedSeries, name, len(values), n)
		}
	}
	return nil
}

// WeatherResponse is the subset of the historical forecast API response we read.
type WeatherResponse struct {
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Timezone  string       `json:"timezone"`
	Daily     *DailySeries `json:"daily"`
}
