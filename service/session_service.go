package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	redisdao "weather-dashboard/dao/redis"
	"weather-dashboard/metrics"
	"weather-dashboard/models"

	"github.com/google/uuid"
)

// SessionStore persists one UIState per browser session.
type SessionStore interface {
	SaveState(sessionID string, state models.UIState) error
	GetState(sessionID string) (*models.UIState, bool, error)
	DeleteState(sessionID string) error
}

// SessionService ties browser sessions to the fetch lifecycle. A session can
// have at most one fetch in flight; further triggers are refused until it settles.
type SessionService struct {
	store     SessionStore
	dashboard *DashboardService

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewSessionService constructs a new SessionService.
func NewSessionService(store SessionStore, dashboard *DashboardService) *SessionService {
	return &SessionService{
		store:     store,
		dashboard: dashboard,
		inFlight:  make(map[string]struct{}),
	}
}

// NewSessionID returns a fresh random session id.
func (ss *SessionService) NewSessionID() string {
	return uuid.NewString()
}

// IsValidSessionID reports whether id looks like one NewSessionID produced.
func (ss *SessionService) IsValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Load returns the session's state, or a fresh idle state for an unknown session.
func (ss *SessionService) Load(sessionID string) (*models.UIState, error) {
	state, found, err := ss.getState(sessionID)
	if err != nil {
		return nil, err
	}
	if !found {
		return models.NewUIState(), nil
	}
	return state, nil
}

// getState reads the stored state. An undecodable state is dropped and
// reported as not found, so the session starts over instead of failing forever.
func (ss *SessionService) getState(sessionID string) (*models.UIState, bool, error) {
	state, found, err := ss.store.GetState(sessionID)
	if errors.Is(err, redisdao.ErrCorruptState) {
		log.Printf("[SessionService] Dropping corrupt state for session %s: %v", sessionID, err)
		if err := ss.store.DeleteState(sessionID); err != nil {
			return nil, false, fmt.Errorf("failed to drop session %s: %w", sessionID, err)
		}
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	return state, found, nil
}

// Trigger runs one fetch lifecycle for the session and persists every transition,
// so a page rendered mid-fetch shows the loading state. If the session already
// has a fetch in flight the stored state is returned with ErrFetchInFlight.
func (ss *SessionService) Trigger(ctx context.Context, sessionID string, input models.QueryInput) (*models.UIState, error) {
	if !ss.begin(sessionID) {
		ss.dashboard.metrics.ObserveOutcome(metrics.OUTCOME_IN_FLIGHT)
		state, err := ss.Load(sessionID)
		if err != nil {
			return nil, err
		}
		return state, ErrFetchInFlight
	}
	defer ss.end(sessionID)

	state, err := ss.Load(sessionID)
	if err != nil {
		return nil, err
	}

	// This process owns the session's only in-flight slot, so a stored
	// Loading flag was left behind by a fetch that never settled.
	if state.Loading {
		log.Printf("[SessionService] Clearing stale loading flag for session %s", sessionID)
		state.Loading = false
		state.Phase = models.PHASE_IDLE
	}

	observe := func(s models.UIState) {
		if err := ss.store.SaveState(sessionID, s); err != nil {
			log.Printf("[SessionService] Failed to save state for session %s: %v", sessionID, err)
		}
	}

	err = ss.dashboard.FetchWeather(ctx, state, input, observe)
	return state, err
}

// ClearStaleLoading resets a stored Loading flag for a session with no fetch in flight.
// It reports whether a flag was cleared.
func (ss *SessionService) ClearStaleLoading(sessionID string) (bool, error) {
	if !ss.begin(sessionID) {
		return false, nil
	}
	defer ss.end(sessionID)

	state, found, err := ss.getState(sessionID)
	if err != nil {
		return false, err
	}
	if !found || !state.Loading {
		return false, nil
	}

	state.Loading = false
	state.Phase = models.PHASE_IDLE
	if err := ss.store.SaveState(sessionID, *state); err != nil {
		return false, err
	}
	return true, nil
}

func (ss *SessionService) begin(sessionID string) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if _, busy := ss.inFlight[sessionID]; busy {
		return false
	}
	ss.inFlight[sessionID] = struct{}{}
	return true
}

func (ss *SessionService) end(sessionID string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.inFlight, sessionID)
}
