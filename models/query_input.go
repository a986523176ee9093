package models

import "fmt"

// QueryInput holds the four form fields exactly as the user typed them.
type QueryInput struct {
	Latitude  string `json:"latitude" validate:"required"`
	Longitude string `json:"longitude" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

func (q QueryInput) ToString() string {
	return fmt.Sprintf("QueryInput(lat=%s, lon=%s, start=%s, end=%s)",
		q.Latitude, q.Longitude, q.StartDate, q.EndDate)
}
