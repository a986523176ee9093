package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"weather-dashboard/api/openmeteo"
	redisdao "weather-dashboard/dao/redis"
	"weather-dashboard/db"
	"weather-dashboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionService(client openmeteo.WeatherAPI) (*SessionService, *redisdao.RedisSessionDAO) {
	store := redisdao.NewRedisSessionDAO(db.NewMockRedisClient(context.Background()), time.Hour)
	return NewSessionService(store, NewDashboardService(client, nil)), store
}

func TestSessionService_LoadUnknownSessionIsIdle(t *testing.T) {
	ss, _ := newSessionService(openmeteo.NewOpenMeteoApiClientMock())

	state, err := ss.Load(ss.NewSessionID())

	require.NoError(t, err)
	assert.Equal(t, models.NewUIState(), state)
}

func TestSessionService_TriggerPersistsSettledState(t *testing.T) {
	ss, store := newSessionService(openmeteo.NewOpenMeteoApiClientMockWithSeries(scenarioASeries()))
	id := ss.NewSessionID()

	state, err := ss.Trigger(context.Background(), id, completeInput())
	require.NoError(t, err)
	assert.Equal(t, 3, state.WeatherData.Len())

	stored, found, err := store.GetState(id)
	require.NoError(t, err)
	require.True(t, found)
	assert.False(t, stored.Loading)
	assert.Equal(t, models.PHASE_IDLE, stored.Phase)
	assert.Equal(t, 3, stored.WeatherData.Len())
	assert.Equal(t, completeInput(), stored.Input)
}

func TestSessionService_TriggerPersistsValidationError(t *testing.T) {
	client := openmeteo.NewOpenMeteoApiClientMock()
	ss, store := newSessionService(client)
	id := ss.NewSessionID()
	input := completeInput()
	input.Longitude = ""

	_, err := ss.Trigger(context.Background(), id, input)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	stored, _, _ := store.GetState(id)
	assert.Equal(t, MSG_ALL_FIELDS_REQUIRED, stored.Error)
	assert.Empty(t, client.Calls())
}

func TestSessionService_SecondTriggerWhileLoadingIsRefused(t *testing.T) {
	client := openmeteo.NewOpenMeteoApiClientMockWithSeries(scenarioASeries())
	entered := make(chan struct{})
	release := make(chan struct{})
	client.OnCall = func(models.QueryInput) {
		close(entered)
		<-release
	}
	ss, _ := newSessionService(client)
	id := ss.NewSessionID()

	done := make(chan error, 1)
	go func() {
		_, err := ss.Trigger(context.Background(), id, completeInput())
		done <- err
	}()
	<-entered

	// The first fetch is in flight: the stored state says so and a second trigger is refused.
	state, err := ss.Trigger(context.Background(), id, completeInput())
	assert.ErrorIs(t, err, ErrFetchInFlight)
	require.NotNil(t, state)
	assert.True(t, state.Loading)
	assert.Equal(t, models.PHASE_FETCHING, state.Phase)

	close(release)
	require.NoError(t, <-done)
	assert.Len(t, client.Calls(), 1)

	settled, err := ss.Load(id)
	require.NoError(t, err)
	assert.False(t, settled.Loading)
}

func TestSessionService_SessionsAreIndependent(t *testing.T) {
	ss, _ := newSessionService(openmeteo.NewOpenMeteoApiClientMockWithSeries(scenarioASeries()))
	a, b := ss.NewSessionID(), ss.NewSessionID()

	_, err := ss.Trigger(context.Background(), a, completeInput())
	require.NoError(t, err)

	other, err := ss.Load(b)
	require.NoError(t, err)
	assert.Nil(t, other.WeatherData)
}

func TestSessionService_ClearsStaleLoadingFlag(t *testing.T) {
	ss, store := newSessionService(openmeteo.NewOpenMeteoApiClientMockWithSeries(scenarioASeries()))
	id := ss.NewSessionID()
	require.NoError(t, store.SaveState(id, models.UIState{Loading: true, Phase: models.PHASE_FETCHING}))

	state, err := ss.Trigger(context.Background(), id, completeInput())

	require.NoError(t, err)
	assert.False(t, state.Loading)
	assert.Equal(t, 3, state.WeatherData.Len())
}

func TestSessionService_IsValidSessionID(t *testing.T) {
	ss, _ := newSessionService(openmeteo.NewOpenMeteoApiClientMock())

	assert.True(t, ss.IsValidSessionID(ss.NewSessionID()))
	assert.False(t, ss.IsValidSessionID("not-a-session"))
	assert.False(t, ss.IsValidSessionID(""))
}

func TestSessionService_LoadDropsCorruptState(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	store := redisdao.NewRedisSessionDAO(client, time.Hour)
	ss := NewSessionService(store, NewDashboardService(openmeteo.NewOpenMeteoApiClientMock(), nil))
	require.NoError(t, client.Set("dashboard_session_v1:abc", "{not json", 0))

	state, err := ss.Load("abc")

	require.NoError(t, err)
	assert.Equal(t, models.NewUIState(), state)
	_, err = client.Get("dashboard_session_v1:abc")
	assert.ErrorIs(t, err, db.ErrKeyNotFound)
}
