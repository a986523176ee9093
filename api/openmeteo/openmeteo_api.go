package openmeteo

import (
	"context"
	"fmt"

	"weather-dashboard/models"
)

// ErrorKind classifies why a call to the API failed.
type ErrorKind string

const (
	KIND_NETWORK      ErrorKind = "network"
	KIND_STATUS       ErrorKind = "status"
	KIND_DECODE       ErrorKind = "decode"
	KIND_MALFORMED    ErrorKind = "malformed"
	KIND_CIRCUIT_OPEN ErrorKind = "circuit_open"
)

// ClientError is the single failure type returned by WeatherAPI implementations.
type ClientError struct {
	Kind ErrorKind
	Err  error
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("open-meteo %s error: %v", e.Kind, e.Err)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// WeatherAPI defines the interface for interacting with the historical forecast API
type WeatherAPI interface {
	GetDailySeries(ctx context.Context, input models.QueryInput) (*models.DailySeries, error)
}
