package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/2beens/stravastats/pkg"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	DefaultStateTTL  = 10 * time.Minute
	sessionKeyPrefix = "stravastats-session||"
	sessionsSetKey   = "stravastats-sessions"
	stateKeyPrefix   = "stravastats-oauth-state||"
	sessionIDSize    = 35
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidState    = errors.New("invalid oauth state")
)

// SessionStore keeps login sessions and pending oauth states in redis.
type SessionStore struct {
	redisClient *redis.Client
	ttl         time.Duration
	stateTTL    time.Duration
	// ability to inject random string generator func for session ids (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
	// and for oauth states
	NewStateFunc func() string
}

func NewSessionStore(ttl time.Duration, redisClient *redis.Client) *SessionStore {
	return &SessionStore{
		ttl:            ttl,
		stateTTL:       DefaultStateTTL,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
		NewStateFunc:   uuid.NewString,
	}
}

func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

func (s *SessionStore) Create(ctx context.Context, athleteID int64, token *oauth2.Token, createdAt time.Time) (*Session, error) {
	id, err := s.RandStringFunc(sessionIDSize)
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	session := &Session{
		ID:        id,
		AthleteID: athleteID,
		Token:     token,
		CreatedAt: createdAt,
	}
	sessionJson, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}

	if err := s.redisClient.Set(ctx, sessionKeyPrefix+id, string(sessionJson), s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("redis set session: %w", err)
	}

	// add session to list of sessions
	if err := s.redisClient.SAdd(ctx, sessionsSetKey, id).Err(); err != nil {
		return nil, fmt.Errorf("redis add session to set: %w", err)
	}

	return session, nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*Session, error) {
	sessionJson, err := s.redisClient.Get(ctx, sessionKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal([]byte(sessionJson), session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	if time.Since(session.CreatedAt) > s.ttl {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

// UpdateToken stores a refreshed token, keeping the session expiry as it is.
func (s *SessionStore) UpdateToken(ctx context.Context, session *Session, token *oauth2.Token) error {
	updated := *session
	updated.Token = token
	sessionJson, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.redisClient.Set(ctx, sessionKeyPrefix+session.ID, string(sessionJson), redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("redis update session: %w", err)
	}

	session.Token = token
	return nil
}

// Delete removes the session and reports whether it existed.
func (s *SessionStore) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.redisClient.Del(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("redis del session: %w", err)
	}

	// remove session from the list of sessions
	if err := s.redisClient.SRem(ctx, sessionsSetKey, id).Err(); err != nil {
		return false, fmt.Errorf("redis remove session from set: %w", err)
	}

	return deleted > 0, nil
}

// NewState creates a random oauth state, valid for a single callback within the state TTL.
func (s *SessionStore) NewState(ctx context.Context) (string, error) {
	state := s.NewStateFunc()
	if err := s.redisClient.Set(ctx, stateKeyPrefix+state, 1, s.stateTTL).Err(); err != nil {
		return "", fmt.Errorf("redis set oauth state: %w", err)
	}
	return state, nil
}

func (s *SessionStore) ConsumeState(ctx context.Context, state string) error {
	if state == "" {
		return ErrInvalidState
	}
	deleted, err := s.redisClient.Del(ctx, stateKeyPrefix+state).Result()
	if err != nil {
		return fmt.Errorf("redis del oauth state: %w", err)
	}
	if deleted == 0 {
		return ErrInvalidState
	}
	return nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (s *SessionStore) ScanAndClean(ctx context.Context) {
	sessionIDs, err := s.redisClient.SMembers(ctx, sessionsSetKey).Result()
	if err != nil {
		log.Errorf("!!! session store, scan and clean, get sessions: %s", err)
		return
	}

	if len(sessionIDs) == 0 {
		log.Debugln("=> session store, scan and clean abort, no sessions")
		return
	}

	log.Debugf("=> session store, scan and clean [%d sessions] start ...", len(sessionIDs))
	var toRemove []string
	for _, id := range sessionIDs {
		session, err := s.Get(ctx, id)
		if errors.Is(err, ErrSessionNotFound) {
			toRemove = append(toRemove, id)
			continue
		}
		if err != nil {
			log.Errorf("=> session store, scan and clean session %s: %s", id, err)
			continue
		}
		if !session.HasValidToken(time.Now()) {
			toRemove = append(toRemove, id)
		}
	}

	for _, id := range toRemove {
		log.Debugf("=>\twill clean the session: %s", id)
		if _, err := s.Delete(ctx, id); err != nil {
			log.Errorf("=> session store, clean session %s: %s", id, err)
		}
	}
}
