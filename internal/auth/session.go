package auth

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// Session binds a logged-in athlete to their Strava token.
type Session struct {
	ID        string        `json:"id"`
	AthleteID int64         `json:"athlete_id"`
	Token     *oauth2.Token `json:"token"`
	CreatedAt time.Time     `json:"created_at"`
}

// HasValidToken reports whether the session can still call the API: the access token has not
// expired yet, or it can be refreshed.
func (s *Session) HasValidToken(now time.Time) bool {
	if s == nil || s.Token == nil || s.Token.AccessToken == "" {
		return false
	}
	if s.Token.Expiry.IsZero() || s.Token.Expiry.After(now) {
		return true
	}
	return s.Token.RefreshToken != ""
}

type sessionCtxKey struct{}

func ContextWithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, session)
}

// SessionFromContext returns the session put into ctx by the session middleware, if any.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionCtxKey{}).(*Session)
	return session, ok && session != nil
}
