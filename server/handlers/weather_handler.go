package handlers

import (
	"errors"
	"log"
	"net/http"

	"weather-dashboard/models"
	services "weather-dashboard/service"
)

type WeatherHandler struct {
	dashboard *services.DashboardService
}

func NewWeatherHandler(dashboard *services.DashboardService) *WeatherHandler {
	return &WeatherHandler{dashboard: dashboard}
}

// GetWeather handles GET /v1/weather: a stateless fetch returning the chart series and table.
// expects ?latitude=&longitude=&start_date=&end_date=
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	input := models.QueryInput{
		Latitude:  vals.Get(LATITUDE_FORM_ARG),
		Longitude: vals.Get(LONGITUDE_FORM_ARG),
		StartDate: vals.Get(START_DATE_FORM_ARG),
		EndDate:   vals.Get(END_DATE_FORM_ARG),
	}

	view, err := h.dashboard.FetchView(r.Context(), input)
	if err != nil {
		var validationErr *services.ValidationError
		var fetchErr *services.FetchError
		switch {
		case errors.As(err, &validationErr):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": validationErr.Message()})
		case errors.As(err, &fetchErr):
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": fetchErr.Message()})
		default:
			log.Println("[WeatherHandler] Error fetching weather:", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Ping handles GET /ping
func (h *WeatherHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}
