package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"weather-dashboard/db"
	"weather-dashboard/models"
)

const SESSION_STATE_KEY_FORMAT = "dashboard_session_v1:%s"

// ErrCorruptState is returned when a stored state cannot be decoded.
var ErrCorruptState = errors.New("corrupt session state")

// RedisSessionDAO stores one UIState per browser session.
type RedisSessionDAO struct {
	client db.RedisClient
	ttl    time.Duration
}

// NewRedisSessionDAO initializes a RedisSessionDAO; states expire ttl after their last save.
func NewRedisSessionDAO(client db.RedisClient, ttl time.Duration) *RedisSessionDAO {
	return &RedisSessionDAO{client: client, ttl: ttl}
}

// SaveState writes the session's state and refreshes its expiry.
func (dao *RedisSessionDAO) SaveState(sessionID string, state models.UIState) error {
	key := fmt.Sprintf(SESSION_STATE_KEY_FORMAT, sessionID)
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state for session %s: %w", sessionID, err)
	}
	if err := dao.client.Set(key, string(data), dao.ttl); err != nil {
		return fmt.Errorf("failed to set session state in redis: %w", err)
	}
	return nil
}

// GetState returns the session's state; found is false when the session is new or expired.
func (dao *RedisSessionDAO) GetState(sessionID string) (state *models.UIState, found bool, err error) {
	key := fmt.Sprintf(SESSION_STATE_KEY_FORMAT, sessionID)
	str, err := dao.client.Get(key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get session state from redis: %w", err)
	}

	var s models.UIState
	if err := json.Unmarshal([]byte(str), &s); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return &s, true, nil
}

// DeleteState drops the session's state.
func (dao *RedisSessionDAO) DeleteState(sessionID string) error {
	key := fmt.Sprintf(SESSION_STATE_KEY_FORMAT, sessionID)
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("failed to delete session key %s: %w", key, err)
	}
	log.Printf("[RedisSessionDAO] Deleted session state for %s", sessionID)
	return nil
}

// ListSessionIDs returns the ids of all sessions with stored state.
func (dao *RedisSessionDAO) ListSessionIDs() ([]string, error) {
	pattern := fmt.Sprintf(SESSION_STATE_KEY_FORMAT, "*")
	keys, err := dao.client.Keys(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list session keys: %w", err)
	}
	prefix := fmt.Sprintf(SESSION_STATE_KEY_FORMAT, "")
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids, nil
}
