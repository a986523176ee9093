package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"weather-dashboard/api/openmeteo"
	"weather-dashboard/config"
	redisdao "weather-dashboard/dao/redis"
	"weather-dashboard/db"
	"weather-dashboard/models"
	services "weather-dashboard/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floats(values ...float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		v := values[i]
		out[i] = &v
	}
	return out
}

func scenarioASeries() *models.DailySeries {
	return &models.DailySeries{
		Time:              []string{"2023-01-01", "2023-01-02", "2023-01-03"},
		Temperature2mMax:  floats(5, 6, 7),
		Temperature2mMin:  floats(0, 1, 2),
		Temperature2mMean: floats(2, 3, 4),
	}
}

func scenarioAForm() url.Values {
	return url.Values{
		"latitude":   {"40.7"},
		"longitude":  {"-74.0"},
		"start_date": {"2023-01-01"},
		"end_date":   {"2023-01-03"},
	}
}

type dashboardFixture struct {
	handler *DashboardHandler
	store   *redisdao.RedisSessionDAO
	client  *openmeteo.OpenMeteoApiClientMock
}

func newDashboardFixture(client *openmeteo.OpenMeteoApiClientMock) *dashboardFixture {
	store := redisdao.NewRedisSessionDAO(db.NewMockRedisClient(context.Background()), time.Hour)
	sessions := services.NewSessionService(store, services.NewDashboardService(client, nil))
	return &dashboardFixture{
		handler: NewDashboardHandler(sessions, time.Hour),
		store:   store,
		client:  client,
	}
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == config.SESSION_COOKIE_NAME {
			return c
		}
	}
	t.Fatalf("no %s cookie set", config.SESSION_COOKIE_NAME)
	return nil
}

func (f *dashboardFixture) get(cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	f.handler.GetDashboard(rr, req)
	return rr
}

func (f *dashboardFixture) post(cookie *http.Cookie, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/fetch", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	f.handler.PostFetch(rr, req)
	return rr
}

func TestGetDashboard_NewSession(t *testing.T) {
	f := newDashboardFixture(openmeteo.NewOpenMeteoApiClientMock())

	rr := f.get(nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	cookie := sessionCookie(t, rr)
	assert.True(t, cookie.HttpOnly)
	body := rr.Body.String()
	assert.Contains(t, body, "Weather Dashboard")
	assert.Contains(t, body, BUTTON_LABEL_IDLE)
	assert.Contains(t, body, `src="/chart"`)
	assert.NotContains(t, body, "<table>")
	assert.NotContains(t, body, `class="error"`)
	assert.NotContains(t, body, `<button type="submit" disabled>`)
}

func TestPostFetch_ScenarioA_RendersTable(t *testing.T) {
	f := newDashboardFixture(openmeteo.NewOpenMeteoApiClientMockWithSeries(scenarioASeries()))
	cookie := sessionCookie(t, f.get(nil))

	rr := f.post(cookie, scenarioAForm())

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	require.Len(t, f.client.Calls(), 1)

	body := f.get(cookie).Body.String()
	assert.Contains(t, body, "<table>")
	assert.Contains(t, body, "Max Temp (°C)")
	assert.Equal(t, 3, strings.Count(body, "<td>2023-01-0"))
	assert.Contains(t, body, `value="40.7"`)
	assert.Contains(t, body, `value="2023-01-03"`)
}

func TestPostFetch_ScenarioB_ShowsValidationError(t *testing.T) {
	f := newDashboardFixture(openmeteo.NewOpenMeteoApiClientMockWithSeries(scenarioASeries()))
	cookie := sessionCookie(t, f.get(nil))
	form := scenarioAForm()
	form.Set("longitude", "")

	rr := f.post(cookie, form)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Empty(t, f.client.Calls())
	body := f.get(cookie).Body.String()
	assert.Contains(t, body, services.MSG_ALL_FIELDS_REQUIRED)
	assert.NotContains(t, body, "<table>")
}

func TestPostFetch_ScenarioC_ShowsFetchErrorAndKeepsTable(t *testing.T) {
	f := newDashboardFixture(openmeteo.NewOpenMeteoApiClientMockWithSeries(scenarioASeries()))
	cookie := sessionCookie(t, f.get(nil))
	f.post(cookie, scenarioAForm())

	// Same session, upstream now failing.
	failing := openmeteo.NewOpenMeteoApiClientMockWithError(errors.New("connection refused"))
	sessions := services.NewSessionService(f.store, services.NewDashboardService(failing, nil))
	f.handler = NewDashboardHandler(sessions, time.Hour)

	rr := f.post(cookie, scenarioAForm())

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	body := f.get(cookie).Body.String()
	assert.Contains(t, body, "Failed to fetch data. Please check inputs or try again later.")
	assert.Contains(t, body, "<table>")
	assert.Contains(t, body, BUTTON_LABEL_IDLE)
}

func TestGetDashboard_LoadingDisablesButton(t *testing.T) {
	f := newDashboardFixture(openmeteo.NewOpenMeteoApiClientMock())
	cookie := sessionCookie(t, f.get(nil))
	require.NoError(t, f.store.SaveState(cookie.Value, models.UIState{Loading: true, Phase: models.PHASE_FETCHING}))

	body := f.get(cookie).Body.String()

	assert.Contains(t, body, BUTTON_LABEL_LOADING)
	assert.Contains(t, body, `<button type="submit" disabled>`)
}

func TestGetDashboard_InvalidCookieGetsNewSession(t *testing.T) {
	f := newDashboardFixture(openmeteo.NewOpenMeteoApiClientMock())

	rr := f.get(&http.Cookie{Name: config.SESSION_COOKIE_NAME, Value: "../../etc"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEqual(t, "../../etc", sessionCookie(t, rr).Value)
}

func TestGetChart(t *testing.T) {
	f := newDashboardFixture(openmeteo.NewOpenMeteoApiClientMockWithSeries(scenarioASeries()))
	cookie := sessionCookie(t, f.get(nil))
	f.post(cookie, scenarioAForm())

	req := httptest.NewRequest(http.MethodGet, "/chart", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	f.handler.GetChart(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "echarts")
}

func TestGetChart_NoDataStillRenders(t *testing.T) {
	f := newDashboardFixture(openmeteo.NewOpenMeteoApiClientMock())

	rr := httptest.NewRecorder()
	f.handler.GetChart(rr, httptest.NewRequest(http.MethodGet, "/chart", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Body.String())
}
