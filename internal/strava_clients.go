package internal

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/2beens/stravastats/internal/activities"
	"github.com/2beens/stravastats/internal/athlete"
	"github.com/2beens/stravastats/internal/auth"
	"github.com/2beens/stravastats/internal/strava"
	"github.com/2beens/stravastats/internal/telemetry/metrics"
)

type tokenUpdater interface {
	UpdateToken(ctx context.Context, session *auth.Session, token *oauth2.Token) error
}

// stravaClients builds strava api clients authorized on behalf of the session athlete.
type stravaClients struct {
	oauthConfig    *oauth2.Config
	baseURL        string
	httpClient     *http.Client
	cache          *strava.ResponseCache
	sessions       tokenUpdater
	metricsManager *metrics.Manager
}

var (
	_ activities.AthleteResolver = (*stravaClients)(nil)
	_ athlete.ClientResolver     = (*stravaClients)(nil)
	_ auth.AthleteLookup         = (*stravaClients)(nil)
)

// oauthContext carries the traced http client into token refreshes. Token sources outlive
// the request that created them, so it is not derived from a request context.
func (c *stravaClients) oauthContext() context.Context {
	return context.WithValue(context.Background(), oauth2.HTTPClient, c.httpClient)
}

func (c *stravaClients) newClient(tokenSource oauth2.TokenSource, cacheNamespace string) *strava.Client {
	var cache *strava.ResponseCache
	if cacheNamespace != "" {
		cache = c.cache
	}
	return strava.NewClient(strava.NewClientParams{
		BaseURL:        c.baseURL,
		HttpClient:     oauth2.NewClient(c.oauthContext(), tokenSource),
		Cache:          cache,
		CacheNamespace: cacheNamespace,
		MetricsManager: c.metricsManager,
	})
}

func (c *stravaClients) clientForSession(session *auth.Session) *strava.Client {
	tokenSource := &sessionTokenSource{
		source:   c.oauthConfig.TokenSource(c.oauthContext(), session.Token),
		session:  session,
		sessions: c.sessions,
		current:  session.Token,
	}
	return c.newClient(tokenSource, strconv.FormatInt(session.AthleteID, 10))
}

func (c *stravaClients) ResolveAthlete(r *http.Request) (*activities.RequestAthlete, error) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		return nil, activities.ErrNoAthlete
	}
	return &activities.RequestAthlete{
		ID:        session.AthleteID,
		SessionID: session.ID,
		Fetcher:   c.clientForSession(session),
	}, nil
}

func (c *stravaClients) ResolveClient(r *http.Request) (int64, athlete.API, error) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		return 0, nil, activities.ErrNoAthlete
	}
	return session.AthleteID, c.clientForSession(session), nil
}

// LookupAthlete reads the athlete of a freshly exchanged token, bypassing the response cache.
func (c *stravaClients) LookupAthlete(ctx context.Context, token *oauth2.Token) (*strava.Athlete, error) {
	client := c.newClient(oauth2.StaticTokenSource(token), "")
	athlete, err := client.GetLoggedInAthlete(ctx)
	if err != nil {
		return nil, fmt.Errorf("get logged in athlete: %w", err)
	}
	return athlete, nil
}

// sessionTokenSource persists refreshed tokens into the session.
type sessionTokenSource struct {
	mu       sync.Mutex
	source   oauth2.TokenSource
	session  *auth.Session
	sessions tokenUpdater
	current  *oauth2.Token
}

func (s *sessionTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.source.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.AccessToken == token.AccessToken {
		return token, nil
	}

	s.current = token
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.sessions.UpdateToken(ctx, s.session, token); err != nil {
		log.Errorf("athlete [%d]: persist refreshed token: %s", s.session.AthleteID, err)
	} else {
		log.Debugf("athlete [%d]: refreshed token persisted", s.session.AthleteID)
	}

	return token, nil
}
