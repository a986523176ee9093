package services

import (
	"context"
	"log"
	"time"
)

// SessionLister enumerates the sessions with stored state.
type SessionLister interface {
	ListSessionIDs() ([]string, error)
}

// SessionSweeperService periodically clears Loading flags left behind by fetches
// that never settled, e.g. after a restart mid-request.
type SessionSweeperService struct {
	lister   SessionLister
	sessions *SessionService
}

// NewSessionSweeperService constructs a new sweeper with dependencies.
func NewSessionSweeperService(lister SessionLister, sessions *SessionService) *SessionSweeperService {
	return &SessionSweeperService{
		lister:   lister,
		sessions: sessions,
	}
}

// StartPeriodicJob launches the background loop at the given interval until ctx is done.
func (sw *SessionSweeperService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go sw.startPeriodicJob(ctx, interval)
}

func (sw *SessionSweeperService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[SessionSweeperService] Stopping periodic sweep.")
			return
		case <-ticker.C:
			if _, err := sw.SweepStaleSessions(); err != nil {
				log.Printf("[SessionSweeperService] SweepStaleSessions returned error: %v", err)
			}
		}
	}
}

// SweepStaleSessions clears stale Loading flags and returns how many sessions it reset.
// Sessions with a fetch in flight in this process are left alone.
func (sw *SessionSweeperService) SweepStaleSessions() (int, error) {
	ids, err := sw.lister.ListSessionIDs()
	if err != nil {
		return 0, err
	}

	cleared := 0
	for _, id := range ids {
		ok, err := sw.sessions.ClearStaleLoading(id)
		if err != nil {
			log.Printf("[SessionSweeperService] Failed to sweep session %s: %v", id, err)
			continue
		}
		if ok {
			log.Printf("[SessionSweeperService] Cleared stale loading flag for session %s", id)
			cleared++
		}
	}
	return cleared, nil
}
