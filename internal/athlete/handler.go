package athlete

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/2beens/stravastats/internal/strava"
	"github.com/2beens/stravastats/internal/telemetry/tracing"
	"github.com/2beens/stravastats/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=athlete_test

// API is the part of the strava client the profile needs.
type API interface {
	GetLoggedInAthlete(ctx context.Context) (*strava.Athlete, error)
	GetAthleteStats(ctx context.Context, athleteID int64) (*strava.AthleteStats, error)
}

// ClientResolver gives the strava api of the athlete a request was made by.
type ClientResolver interface {
	ResolveClient(r *http.Request) (athleteID int64, api API, err error)
}

type Handler struct {
	resolver ClientResolver
}

func NewHandler(resolver ClientResolver) *Handler {
	return &Handler{
		resolver: resolver,
	}
}

type Profile struct {
	Athlete *strava.Athlete      `json:"athlete"`
	Stats   *strava.AthleteStats `json:"stats"`
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/athlete", h.HandleProfile).Methods("GET", "OPTIONS").Name("athlete-profile")
}

func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "athleteHandler.profile")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	athleteID, api, err := h.resolver.ResolveClient(r)
	if err != nil {
		log.Debugf("athlete profile, resolve client: %s", err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	span.SetAttributes(attribute.Int64("athlete", athleteID))

	profile := Profile{}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile.Athlete, err = api.GetLoggedInAthlete(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		profile.Stats, err = api.GetAthleteStats(gCtx, athleteID)
		return err
	})
	if err := g.Wait(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeStravaError(w, athleteID, err)
		return
	}

	pkg.SendJsonResponse(w, http.StatusOK, profile)
}

func writeStravaError(w http.ResponseWriter, athleteID int64, err error) {
	switch {
	case errors.Is(err, strava.ErrUnauthorized):
		log.Warnf("athlete [%d] profile: %s", athleteID, err)
		http.Error(w, "strava authorization expired", http.StatusUnauthorized)
	case errors.Is(err, strava.ErrRateLimited):
		log.Warnf("athlete [%d] profile: %s", athleteID, err)
		http.Error(w, "strava rate limit reached, try again later", http.StatusTooManyRequests)
	default:
		log.Errorf("athlete [%d] profile: %s", athleteID, err)
		http.Error(w, "failed to get athlete profile", http.StatusBadGateway)
	}
}
