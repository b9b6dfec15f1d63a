package internal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/2beens/stravastats/internal/activities"
	"github.com/2beens/stravastats/internal/auth"
	"github.com/2beens/stravastats/internal/strava"
	"github.com/2beens/stravastats/internal/telemetry/metrics"
)

type recordingTokenUpdater struct {
	mu      sync.Mutex
	updates []*oauth2.Token
	err     error
}

func (u *recordingTokenUpdater) UpdateToken(_ context.Context, session *auth.Session, token *oauth2.Token) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.updates = append(u.updates, token)
	if u.err != nil {
		return u.err
	}
	session.Token = token
	return nil
}

type stravaTestEnv struct {
	clients        *stravaClients
	updater        *recordingTokenUpdater
	mu             sync.Mutex
	bearerTokens   []string
	tokenRefreshes int
}

func newStravaTestEnv(t *testing.T) *stravaTestEnv {
	t.Helper()
	env := &stravaTestEnv{updater: &recordingTokenUpdater{}}

	stravaServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.mu.Lock()
		env.bearerTokens = append(env.bearerTokens, r.Header.Get("Authorization"))
		env.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/athlete":
			_, _ = w.Write([]byte(`{"id":77,"firstname":"Ana","lastname":"Rider"}`))
		case "/athlete/activities":
			_, _ = w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(stravaServer.Close)

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		env.mu.Lock()
		env.tokenRefreshes++
		env.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"refreshed","token_type":"Bearer","refresh_token":"refresh-2","expires_in":21600}`))
	}))
	t.Cleanup(tokenServer.Close)

	oauthConfig := strava.NewOAuthConfig("client-id", "client-secret", "http://localhost/cb")
	oauthConfig.Endpoint.TokenURL = tokenServer.URL + "/oauth/token"

	env.clients = &stravaClients{
		oauthConfig:    oauthConfig,
		baseURL:        stravaServer.URL,
		httpClient:     stravaServer.Client(),
		cache:          strava.NewResponseCache(1024 * 1024),
		sessions:       env.updater,
		metricsManager: metrics.NewTestManager(),
	}
	return env
}

func TestStravaClients_ResolveAthlete(t *testing.T) {
	env := newStravaTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	_, err := env.clients.ResolveAthlete(req)
	assert.ErrorIs(t, err, activities.ErrNoAthlete)
	_, _, err = env.clients.ResolveClient(req)
	assert.ErrorIs(t, err, activities.ErrNoAthlete)

	session := &auth.Session{
		ID:        "session-1",
		AthleteID: 77,
		Token:     &oauth2.Token{AccessToken: "access", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour)},
	}
	req = req.WithContext(auth.ContextWithSession(req.Context(), session))

	requestAthlete, err := env.clients.ResolveAthlete(req)
	require.NoError(t, err)
	assert.Equal(t, int64(77), requestAthlete.ID)
	assert.Equal(t, "session-1", requestAthlete.SessionID)

	collection, err := requestAthlete.Fetcher.FetchActivitiesPage(context.Background(), 1, 200)
	require.NoError(t, err)
	assert.Empty(t, collection)

	athleteID, api, err := env.clients.ResolveClient(req)
	require.NoError(t, err)
	assert.Equal(t, int64(77), athleteID)
	athlete, err := api.GetLoggedInAthlete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana Rider", athlete.FullName())

	assert.Equal(t, []string{"Bearer access", "Bearer access"}, env.bearerTokens)
	assert.Equal(t, 0, env.tokenRefreshes)
	assert.Empty(t, env.updater.updates)
}

func TestStravaClients_RefreshedTokenPersisted(t *testing.T) {
	env := newStravaTestEnv(t)

	session := &auth.Session{
		ID:        "session-1",
		AthleteID: 77,
		Token: &oauth2.Token{
			AccessToken:  "expired",
			TokenType:    "Bearer",
			RefreshToken: "refresh-1",
			Expiry:       time.Now().Add(-time.Hour),
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	req = req.WithContext(auth.ContextWithSession(req.Context(), session))

	requestAthlete, err := env.clients.ResolveAthlete(req)
	require.NoError(t, err)

	for page := 1; page <= 2; page++ {
		_, err = requestAthlete.Fetcher.FetchActivitiesPage(context.Background(), page, 200)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, env.tokenRefreshes)
	assert.Equal(t, []string{"Bearer refreshed", "Bearer refreshed"}, env.bearerTokens)
	require.Len(t, env.updater.updates, 1)
	assert.Equal(t, "refreshed", env.updater.updates[0].AccessToken)
	assert.Equal(t, "refresh-2", session.Token.RefreshToken)
}

func TestStravaClients_LookupAthlete(t *testing.T) {
	env := newStravaTestEnv(t)

	athlete, err := env.clients.LookupAthlete(context.Background(), &oauth2.Token{AccessToken: "fresh", TokenType: "Bearer"})
	require.NoError(t, err)
	assert.Equal(t, int64(77), athlete.ID)
	assert.Equal(t, []string{"Bearer fresh"}, env.bearerTokens)

	// never served from the cache
	_, err = env.clients.LookupAthlete(context.Background(), &oauth2.Token{AccessToken: "other", TokenType: "Bearer"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer fresh", "Bearer other"}, env.bearerTokens)
}

type staticTokenSource struct {
	token *oauth2.Token
	err   error
}

func (s *staticTokenSource) Token() (*oauth2.Token, error) {
	return s.token, s.err
}

func TestSessionTokenSource(t *testing.T) {
	initial := &oauth2.Token{AccessToken: "a"}
	session := &auth.Session{ID: "s", AthleteID: 1, Token: initial}
	source := &staticTokenSource{token: initial}
	updater := &recordingTokenUpdater{}

	ts := &sessionTokenSource{source: source, session: session, sessions: updater, current: initial}

	token, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "a", token.AccessToken)
	assert.Empty(t, updater.updates)

	source.token = &oauth2.Token{AccessToken: "b"}
	_, err = ts.Token()
	require.NoError(t, err)
	_, err = ts.Token()
	require.NoError(t, err)
	require.Len(t, updater.updates, 1)
	assert.Equal(t, "b", updater.updates[0].AccessToken)

	// a failed update does not fail the request
	updater.err = errors.New("redis down")
	source.token = &oauth2.Token{AccessToken: "c"}
	token, err = ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "c", token.AccessToken)

	source.err = errors.New("refresh failed")
	_, err = ts.Token()
	assert.Error(t, err)
}
