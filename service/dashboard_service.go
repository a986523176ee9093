package services

import (
	"context"
	"log"
	"time"

	"weather-dashboard/api/openmeteo"
	"weather-dashboard/metrics"
	"weather-dashboard/models"
)

// StateObserver receives a copy of the state after every lifecycle transition.
type StateObserver func(state models.UIState)

// DashboardService runs the fetch lifecycle. It is the only code that mutates a UIState.
type DashboardService struct {
	validator  *QueryValidator
	weatherApi openmeteo.WeatherAPI
	metrics    *metrics.DashboardMetrics
}

// NewDashboardService constructs a new DashboardService. dashboardMetrics may be nil.
func NewDashboardService(
	weatherApi openmeteo.WeatherAPI,
	dashboardMetrics *metrics.DashboardMetrics) *DashboardService {

	return &DashboardService{
		validator:  NewQueryValidator(),
		weatherApi: weatherApi,
		metrics:    dashboardMetrics,
	}
}

// FetchWeather runs one Idle -> Validating -> Fetching -> {Success, Failed} -> Idle cycle on state.
//
// A rejected input sets the validation message and never touches Loading or
// the previous data. An accepted input clears the error and holds Loading
// true until the call settles. A failed call keeps the previous WeatherData.
// A state that is already loading is left untouched and ErrFetchInFlight is returned.
func (ds *DashboardService) FetchWeather(ctx context.Context, state *models.UIState, input models.QueryInput, observe StateObserver) error {
	if state.Loading {
		ds.metrics.ObserveOutcome(metrics.OUTCOME_IN_FLIGHT)
		return ErrFetchInFlight
	}

	state.Input = input
	ds.transition(state, models.PHASE_VALIDATING, observe)

	if err := ds.validator.Validate(input); err != nil {
		state.Error = MSG_ALL_FIELDS_REQUIRED
		state.ErrorKind = KIND_VALIDATION
		ds.metrics.ObserveOutcome(metrics.OUTCOME_REJECTED)
		ds.transition(state, models.PHASE_IDLE, observe)
		return err
	}

	state.Error = ""
	state.ErrorKind = ""
	state.Loading = true
	ds.transition(state, models.PHASE_FETCHING, observe)

	err := ds.fetch(ctx, state, input)
	if err != nil {
		log.Printf("[DashboardService] %s: %v", input.ToString(), err)
		ds.metrics.ObserveOutcome(metrics.OUTCOME_FAILED)
		ds.transition(state, models.PHASE_FAILED, observe)
	} else {
		ds.metrics.ObserveOutcome(metrics.OUTCOME_SUCCESS)
		ds.transition(state, models.PHASE_SUCCESS, observe)
	}

	ds.transition(state, models.PHASE_IDLE, observe)
	return err
}

// FetchView runs the lifecycle on a throwaway state and returns the mapped chart and table.
func (ds *DashboardService) FetchView(ctx context.Context, input models.QueryInput) (*models.WeatherView, error) {
	state := models.NewUIState()
	if err := ds.FetchWeather(ctx, state, input, nil); err != nil {
		return nil, err
	}

	chart, table := MapSeries(state.WeatherData)
	return &models.WeatherView{Chart: chart, Table: table}, nil
}

func (ds *DashboardService) fetch(ctx context.Context, state *models.UIState, input models.QueryInput) error {
	start := time.Now()
	defer func() {
		state.Loading = false
		ds.metrics.ObserveDuration(time.Since(start))
	}()

	series, err := ds.weatherApi.GetDailySeries(ctx, input)
	if err != nil {
		fetchErr := newFetchError(err)
		state.Error = MSG_FETCH_FAILED
		state.ErrorKind = fetchErr.Kind
		return fetchErr
	}

	state.WeatherData = series
	return nil
}

func (ds *DashboardService) transition(state *models.UIState, phase models.FetchPhase, observe StateObserver) {
	state.Phase = phase
	if observe != nil {
		observe(state.Clone())
	}
}
