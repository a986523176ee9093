package models

// FetchPhase is a step of the fetch lifecycle.
type FetchPhase string

const (
	PHASE_IDLE       FetchPhase = "idle"
	PHASE_VALIDATING FetchPhase = "validating"
	PHASE_FETCHING   FetchPhase = "fetching"
	PHASE_SUCCESS    FetchPhase = "success"
	PHASE_FAILED     FetchPhase = "failed"
)

// UIState is everything the dashboard page renders for one session.
// WeatherData and Error are overwritten on each attempt, never merged.
type UIState struct {
	Input       QueryInput   `json:"input"`
	WeatherData *DailySeries `json:"weather_data,omitempty"`
	Loading     bool         `json:"loading"`
	Error       string       `json:"error,omitempty"`

	// ErrorKind keeps the structured cause of Error; it is never rendered.
	ErrorKind string     `json:"error_kind,omitempty"`
	Phase     FetchPhase `json:"phase"`
}

// NewUIState returns the state of a page that has not fetched anything yet.
func NewUIState() *UIState {
	return &UIState{Phase: PHASE_IDLE}
}

// Clone returns a shallow copy of s. A DailySeries is never mutated after
// decoding, so the copy shares it.
func (s *UIState) Clone() UIState {
	return *s
}
