package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/stravastats/internal/auth"
	"github.com/2beens/stravastats/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type sessionGetter interface {
	Get(ctx context.Context, id string) (*auth.Session, error)
}

type AuthMiddlewareHandler struct {
	sessions             sessionGetter
	allowedPaths         map[string]bool
	allowedPathsPrefixes []string
	now                  func() time.Time
}

func NewAuthMiddlewareHandler(sessions sessionGetter) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		sessions: sessions,
		allowedPaths: map[string]bool{
			// login:
			"/strava/auth":          true,
			"/strava/auth/redirect": true,
			"/strava/logout":        true,

			"/position/default": true,
		},
		allowedPathsPrefixes: []string{
			"/version",
		},
		now: time.Now,
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	if h.allowedPaths[path] {
		return true
	}
	for _, prefix := range h.allowedPathsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// AuthCheck lets through requests of a logged-in athlete, with the session put into the request context.
func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			// preflight requests carry no credentials
			if r.Method == http.MethodOptions || h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			sessionID := auth.SessionIDFromRequest(r)
			if sessionID == "" {
				log.Tracef("[missing session] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-session")
				return
			}

			session, err := h.sessions.Get(ctx, sessionID)
			if err != nil {
				if !errors.Is(err, auth.ErrSessionNotFound) {
					log.Errorf("[failed session check] => %s: %s", r.URL.Path, err)
					span.RecordError(err)
				}
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "session-check-err")
				return
			}

			if !session.HasValidToken(h.now()) {
				log.Tracef("[expired token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "token-expired")
				return
			}

			span.SetAttributes(attribute.Int64("athlete", session.AthleteID))
			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.ContextWithSession(r.Context(), session)))
		})
	}
}
