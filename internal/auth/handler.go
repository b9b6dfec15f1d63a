package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/oauth2"

	"github.com/2beens/stravastats/internal/strava"
	"github.com/2beens/stravastats/internal/telemetry/metrics"
	"github.com/2beens/stravastats/internal/telemetry/tracing"
	"github.com/2beens/stravastats/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth

const (
	SessionCookieName  = "stravastats_session"
	SessionTokenHeader = "X-Session-Token"

	requiredScope = "activity:read_all"
)

// AthleteLookup reads the athlete a freshly exchanged token belongs to.
type AthleteLookup interface {
	LookupAthlete(ctx context.Context, token *oauth2.Token) (*strava.Athlete, error)
}

type sessionStore interface {
	TTL() time.Duration
	Create(ctx context.Context, athleteID int64, token *oauth2.Token, createdAt time.Time) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) (bool, error)
	NewState(ctx context.Context) (string, error)
	ConsumeState(ctx context.Context, state string) error
}

type Handler struct {
	oauthConfig    *oauth2.Config
	sessions       sessionStore
	athletes       AthleteLookup
	httpClient     *http.Client
	metricsManager *metrics.Manager
	frontendURL    string
	cookieSecure   bool
	onLogout       func(session *Session)
}

type NewHandlerParams struct {
	OAuthConfig *oauth2.Config
	Sessions    sessionStore
	Athletes    AthleteLookup
	// HttpClient is used for the token exchange, http.DefaultClient if nil
	HttpClient     *http.Client
	MetricsManager *metrics.Manager
	FrontendURL    string
	CookieSecure   bool
	// OnLogout is called after a session is removed
	OnLogout func(session *Session)
}

func NewHandler(params NewHandlerParams) *Handler {
	return &Handler{
		oauthConfig:    params.OAuthConfig,
		sessions:       params.Sessions,
		athletes:       params.Athletes,
		httpClient:     params.HttpClient,
		metricsManager: params.MetricsManager,
		frontendURL:    params.FrontendURL,
		cookieSecure:   params.CookieSecure,
		onLogout:       params.OnLogout,
	}
}

// SetupRoutes registers the auth routes. Login middlewares wrap only the two login routes.
func (h *Handler) SetupRoutes(router *mux.Router, loginMiddlewares ...mux.MiddlewareFunc) {
	loginRouter := router.NewRoute().Subrouter()
	loginRouter.Use(loginMiddlewares...)
	loginRouter.HandleFunc("/strava/auth", h.HandleAuth).Methods("GET").Name("strava-auth")
	loginRouter.HandleFunc("/strava/auth/redirect", h.HandleAuthRedirect).Methods("GET").Name("strava-auth-redirect")

	router.HandleFunc("/strava/logout", h.HandleLogout).Methods("GET", "POST", "OPTIONS").Name("strava-logout")
	router.HandleFunc("/strava/session", h.HandleSession).Methods("GET", "OPTIONS").Name("strava-session")
}

// SessionIDFromRequest reads the session id from the session cookie, or from the session header.
func SessionIDFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return r.Header.Get(SessionTokenHeader)
}

func (h *Handler) HandleAuth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.auth")
	defer span.End()

	state, err := h.sessions.NewState(ctx)
	if err != nil {
		log.Errorf("strava auth, new state: %s", err)
		span.SetStatus(codes.Error, err.Error())
		http.Error(w, "failed to start login", http.StatusInternalServerError)
		return
	}

	authURL := h.oauthConfig.AuthCodeURL(state, oauth2.SetAuthURLParam("approval_prompt", "auto"))
	http.Redirect(w, r, authURL, http.StatusFound)
}

func (h *Handler) HandleAuthRedirect(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.authRedirect")
	defer span.End()

	query := r.URL.Query()
	if authErr := query.Get("error"); authErr != "" {
		log.Warnf("strava auth denied: %s", authErr)
		h.redirectToFrontend(w, r, authErr)
		return
	}

	if err := h.sessions.ConsumeState(ctx, query.Get("state")); err != nil {
		log.Warnf("strava auth redirect, state: %s", err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, ErrInvalidState) {
			http.Error(w, "invalid state", http.StatusBadRequest)
			return
		}
		http.Error(w, "failed to check state", http.StatusInternalServerError)
		return
	}

	if !scopeGranted(query.Get("scope"), requiredScope) {
		log.Warnf("strava auth redirect, scope not granted: [%s]", query.Get("scope"))
		h.redirectToFrontend(w, r, "insufficient_scope")
		return
	}

	code := query.Get("code")
	if code == "" {
		http.Error(w, "missing code", http.StatusBadRequest)
		return
	}

	exchangeCtx := ctx
	if h.httpClient != nil {
		exchangeCtx = context.WithValue(ctx, oauth2.HTTPClient, h.httpClient)
	}
	token, err := h.oauthConfig.Exchange(exchangeCtx, code)
	if err != nil {
		log.Errorf("strava auth redirect, exchange code: %s", err)
		span.SetStatus(codes.Error, err.Error())
		http.Error(w, "failed to exchange code", http.StatusBadGateway)
		return
	}

	athlete, err := h.athletes.LookupAthlete(ctx, token)
	if err != nil {
		log.Errorf("strava auth redirect, get athlete: %s", err)
		span.SetStatus(codes.Error, err.Error())
		http.Error(w, "failed to get athlete", http.StatusBadGateway)
		return
	}
	span.SetAttributes(attribute.Int64("athlete", athlete.ID))

	session, err := h.sessions.Create(ctx, athlete.ID, token, time.Now())
	if err != nil {
		log.Errorf("strava auth redirect, create session: %s", err)
		span.SetStatus(codes.Error, err.Error())
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	if h.metricsManager != nil {
		h.metricsManager.CounterLogins.Inc()
	}
	log.Printf("athlete [%d] %s logged in", athlete.ID, athlete.FullName())

	h.redirectToFrontend(w, r, "")
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	// the cookie is cleared in any case
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	sessionID := SessionIDFromRequest(r)
	if sessionID == "" {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	session, err := h.sessions.Get(ctx, sessionID)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		log.Errorf("logout, get session: %s", err)
		span.SetStatus(codes.Error, err.Error())
		http.Error(w, "failed to logout", http.StatusInternalServerError)
		return
	}

	if _, err := h.sessions.Delete(ctx, sessionID); err != nil {
		log.Errorf("logout, delete session: %s", err)
		span.SetStatus(codes.Error, err.Error())
		http.Error(w, "failed to logout", http.StatusInternalServerError)
		return
	}

	if session != nil {
		log.Debugf("athlete [%d] logged out", session.AthleteID)
		if h.onLogout != nil {
			h.onLogout(session)
		}
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}

type sessionResponse struct {
	AthleteID      int64      `json:"athlete_id"`
	CreatedAt      time.Time  `json:"created_at"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty"`
}

// HandleSession describes the current session, put into the request context by the session middleware.
func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	session, ok := SessionFromContext(r.Context())
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	resp := sessionResponse{
		AthleteID: session.AthleteID,
		CreatedAt: session.CreatedAt,
	}
	if session.Token != nil && !session.Token.Expiry.IsZero() {
		expiry := session.Token.Expiry
		resp.TokenExpiresAt = &expiry
	}
	pkg.SendJsonResponse(w, http.StatusOK, resp)
}

func (h *Handler) redirectToFrontend(w http.ResponseWriter, r *http.Request, authErr string) {
	target := h.frontendURL
	if target == "" {
		target = "/"
	}
	if authErr != "" {
		if u, err := url.Parse(target); err == nil {
			q := u.Query()
			q.Set("auth_error", authErr)
			u.RawQuery = q.Encode()
			target = u.String()
		}
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// scopeGranted checks the comma separated scope list strava sends back with the code.
func scopeGranted(granted, scope string) bool {
	for _, s := range strings.Split(granted, ",") {
		if strings.TrimSpace(s) == scope {
			return true
		}
	}
	return false
}
