package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"weather-dashboard/api"
	"weather-dashboard/models"

	"github.com/sony/gobreaker"
)

const FORECAST_ENDPOINT = "/forecast"
const TIMEZONE_AUTO = "auto"

// OpenMeteoApiClient embeds the common HTTPClient and guards it with a circuit breaker.
// It never retries: one trigger is one request.
type OpenMeteoApiClient struct {
	*api.HTTPClient
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoApiClient creates a client whose breaker opens after maxFailures
// consecutive failures and stays open for openTimeout.
func NewOpenMeteoApiClient(httpClient *api.HTTPClient, maxFailures uint32, openTimeout time.Duration) *OpenMeteoApiClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// A rejected request (bad coordinates, bad dates) says nothing about upstream health.
		IsSuccessful: func(err error) bool {
			// Nor does a caller that went away before the answer arrived.
			if errors.Is(err, context.Canceled) {
				return true
			}
			var statusErr *api.StatusError
			if errors.As(err, &statusErr) {
				return statusErr.StatusCode < http.StatusInternalServerError
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[OpenMeteoApiClient] breaker %s: %s -> %s", name, from, to)
		},
	})

	return &OpenMeteoApiClient{
		HTTPClient: httpClient,
		circuit:    cb,
	}
}

// BuildQuery maps the form fields onto the API query parameters.
func BuildQuery(input models.QueryInput) url.Values {
	values := url.Values{}
	values.Set("latitude", input.Latitude)
	values.Set("longitude", input.Longitude)
	values.Set("start_date", input.StartDate)
	values.Set("end_date", input.EndDate)
	values.Set("daily", strings.Join(models.DailyMetrics, ","))
	values.Set("timezone", TIMEZONE_AUTO)
	return values
}

// GetDailySeries fetches the daily temperature aggregates for the input's location and date range.
func (c *OpenMeteoApiClient) GetDailySeries(ctx context.Context, input models.QueryInput) (*models.DailySeries, error) {
	result, err := c.circuit.Execute(func() (interface{}, error) {
		var response models.WeatherResponse
		if err := c.Get(ctx, FORECAST_ENDPOINT, BuildQuery(input), nil, &response); err != nil {
			return nil, err
		}
		return &response, nil
	})
	if err != nil {
		return nil, classify(err)
	}

	response := result.(*models.WeatherResponse)
	if response.Daily == nil {
		return nil, &ClientError{Kind: KIND_MALFORMED, Err: errors.New("response has no daily block")}
	}
	if err := response.Daily.Validate(); err != nil {
		return nil, &ClientError{Kind: KIND_MALFORMED, Err: err}
	}

	return response.Daily, nil
}

func classify(err error) *ClientError {
	var statusErr *api.StatusError
	var decodeErr *api.DecodeError

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return &ClientError{Kind: KIND_CIRCUIT_OPEN, Err: err}
	case errors.As(err, &statusErr):
		return &ClientError{Kind: KIND_STATUS, Err: err}
	case errors.As(err, &decodeErr):
		return &ClientError{Kind: KIND_DECODE, Err: err}
	default:
		return &ClientError{Kind: KIND_NETWORK, Err: fmt.Errorf("request failed: %w", err)}
	}
}
