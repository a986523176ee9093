package openmeteo

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"weather-dashboard/models"
	"weather-dashboard/util"
)

const DATE_LAYOUT = "2006-01-02"
const MOCK_MAX_DAYS = 366 * 5

// OpenMeteoApiClientMock serves canned or synthesized series and records every call.
type OpenMeteoApiClientMock struct {
	mu     sync.Mutex
	calls  []models.QueryInput
	series *models.DailySeries
	err    error

	// OnCall, when set, runs inside GetDailySeries before it returns.
	OnCall func(input models.QueryInput)
}

// NewOpenMeteoApiClientMock creates a mock that synthesizes a plausible series for any valid request.
func NewOpenMeteoApiClientMock() *OpenMeteoApiClientMock {
	return &OpenMeteoApiClientMock{}
}

// NewOpenMeteoApiClientMockWithSeries creates a mock that always returns series.
func NewOpenMeteoApiClientMockWithSeries(series *models.DailySeries) *OpenMeteoApiClientMock {
	return &OpenMeteoApiClientMock{series: series}
}

// NewOpenMeteoApiClientMockWithError creates a mock whose every call fails with err.
func NewOpenMeteoApiClientMockWithError(err error) *OpenMeteoApiClientMock {
	return &OpenMeteoApiClientMock{err: err}
}

// NewOpenMeteoApiClientMockFromJSON creates a mock returning the daily block of a recorded response.
func NewOpenMeteoApiClientMockFromJSON(path string) (*OpenMeteoApiClientMock, error) {
	response, err := util.ReadWeatherResponseFromJSON(path)
	if err != nil {
		return nil, err
	}
	if response.Daily == nil {
		return nil, fmt.Errorf("fixture %s has no daily block", path)
	}
	if err := response.Daily.Validate(); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	util.PrintDailySeriesPartially(response.Daily, 3)
	return NewOpenMeteoApiClientMockWithSeries(response.Daily), nil
}

// GetDailySeries records the call and returns the configured outcome.
func (c *OpenMeteoApiClientMock) GetDailySeries(ctx context.Context, input models.QueryInput) (*models.DailySeries, error) {
	c.mu.Lock()
	c.calls = append(c.calls, input)
	series, err := c.series, c.err
	c.mu.Unlock()

	if c.OnCall != nil {
		c.OnCall(input)
	}

	if err := ctx.Err(); err != nil {
		return nil, &ClientError{Kind: KIND_NETWORK, Err: err}
	}
	if err != nil {
		return nil, err
	}
	if series != nil {
		return series, nil
	}
	return synthesize(input)
}

// Calls returns the inputs of every call made so far.
func (c *OpenMeteoApiClientMock) Calls() []models.QueryInput {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.QueryInput, len(c.calls))
	copy(out, c.calls)
	return out
}

// synthesize builds a seasonal temperature curve so the dashboard is usable without network access.
func synthesize(input models.QueryInput) (*models.DailySeries, error) {
	lat, err := strconv.ParseFloat(input.Latitude, 64)
	if err != nil {
		return nil, &ClientError{Kind: KIND_STATUS, Err: fmt.Errorf("invalid latitude %q", input.Latitude)}
	}
	start, err := time.Parse(DATE_LAYOUT, input.StartDate)
	if err != nil {
		return nil, &ClientError{Kind: KIND_STATUS, Err: fmt.Errorf("invalid start_date %q", input.StartDate)}
	}
	end, err := time.Parse(DATE_LAYOUT, input.EndDate)
	if err != nil {
		return nil, &ClientError{Kind: KIND_STATUS, Err: fmt.Errorf("invalid end_date %q", input.EndDate)}
	}
	if end.Before(start) {
		return nil, &ClientError{Kind: KIND_STATUS, Err: fmt.Errorf("end_date %s is before start_date %s", input.EndDate, input.StartDate)}
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days > MOCK_MAX_DAYS {
		return nil, &ClientError{Kind: KIND_STATUS, Err: fmt.Errorf("date range of %d days exceeds %d", days, MOCK_MAX_DAYS)}
	}

	series := &models.DailySeries{}
	base := 25 - math.Abs(lat)*0.35
	// Seasons are mirrored south of the equator.
	phase := 200.0
	if lat < 0 {
		phase = 17.5
	}
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		seasonal := 10 * math.Cos(2*math.Pi*(float64(day.YearDay())-phase)/365)
		mean := round1(base + seasonal)

		series.Time = append(series.Time, day.Format(DATE_LAYOUT))
		series.Temperature2mMax = append(series.Temperature2mMax, ptr(round1(mean+4.5)))
		series.Temperature2mMin = append(series.Temperature2mMin, ptr(round1(mean-4.5)))
		series.Temperature2mMean = append(series.Temperature2mMean, ptr(mean))
		series.ApparentTemperatureMax = append(series.ApparentTemperatureMax, ptr(round1(mean+3)))
		series.ApparentTemperatureMin = append(series.ApparentTemperatureMin, ptr(round1(mean-6.5)))
		series.ApparentTemperatureMean = append(series.ApparentTemperatureMean, ptr(round1(mean-1.5)))
	}
	return series, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func ptr(v float64) *float64 {
	return &v
}
