package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	services "weather-dashboard/service"
)

// isUserFacing reports whether err is one of the outcomes the page displays itself.
func isUserFacing(err error) bool {
	var validationErr *services.ValidationError
	var fetchErr *services.FetchError
	return errors.As(err, &validationErr) ||
		errors.As(err, &fetchErr) ||
		errors.Is(err, services.ErrFetchInFlight)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Println("Error encoding response:", err)
	}
}
