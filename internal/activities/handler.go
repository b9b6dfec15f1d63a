package activities

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/stravastats/internal/telemetry/tracing"
	"github.com/2beens/stravastats/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=activities_test

var ErrNoAthlete = errors.New("no athlete in request")

// RequestAthlete is the athlete a request acts for, with a fetcher authorized on their behalf.
type RequestAthlete struct {
	ID        int64
	SessionID string
	Fetcher   PageFetcher
}

type AthleteResolver interface {
	ResolveAthlete(r *http.Request) (*RequestAthlete, error)
}

type historyService interface {
	Status(athleteID int64) Status
	Collection(ctx context.Context, athleteID int64, fetcher PageFetcher) (Collection, error)
	Reload(ctx context.Context, athleteID int64, fetcher PageFetcher) error
	Engine(ctx context.Context, athleteID int64, sessionID string, fetcher PageFetcher) (*Engine, error)
}

type Handler struct {
	service  historyService
	resolver AthleteResolver
}

func NewHandler(service historyService, resolver AthleteResolver) *Handler {
	return &Handler{
		service:  service,
		resolver: resolver,
	}
}

type setCriterionRequest struct {
	Value json.RawMessage `json:"value"`
}

type filteredResponse struct {
	Page
	Filter Filter `json:"filter"`
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/activities/status", h.HandleStatus).Methods("GET", "OPTIONS").Name("activities-status")
	router.HandleFunc("/activities/reload", h.HandleReload).Methods("POST", "OPTIONS").Name("activities-reload")
	router.HandleFunc("/activities", h.HandleList).Methods("GET", "OPTIONS").Name("activities-list")
	router.HandleFunc("/activities/summary", h.HandleSummary).Methods("GET", "OPTIONS").Name("activities-summary")
	router.HandleFunc("/activities/filter/{criterion}", h.HandleSetCriterion).Methods("PUT", "OPTIONS").Name("activities-filter-set")
	router.HandleFunc("/activities/filter", h.HandleResetFilter).Methods("DELETE", "OPTIONS").Name("activities-filter-reset")
	router.HandleFunc("/activities/filtered", h.HandleFiltered).Methods("GET", "OPTIONS").Name("activities-filtered")
}

func handledOptions(w http.ResponseWriter, r *http.Request, allow string) bool {
	if r.Method != http.MethodOptions {
		return false
	}
	w.Header().Add("Allow", allow)
	w.WriteHeader(http.StatusOK)
	return true
}

func (h *Handler) resolveAthlete(w http.ResponseWriter, r *http.Request) (*RequestAthlete, bool) {
	athlete, err := h.resolver.ResolveAthlete(r)
	if err != nil {
		log.Debugf("resolve athlete: %s", err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return athlete, true
}

// writeHistoryError answers a request that could not get the activity history.
// While the history is loading, the current load status is returned with 202.
func (h *Handler) writeHistoryError(w http.ResponseWriter, athleteID int64, err error) {
	switch {
	case errors.Is(err, ErrHistoryLoading):
		pkg.SendJsonResponse(w, http.StatusAccepted, h.service.Status(athleteID))
	case errors.Is(err, ErrHistoryLoadFailed):
		log.Warnf("athlete [%d]: %s", athleteID, err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		log.Errorf("athlete [%d]: get activities: %s", athleteID, err)
		http.Error(w, "failed to get activities", http.StatusInternalServerError)
	}
}

func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "activitiesHandler.status")
	defer span.End()

	if handledOptions(w, r, "GET, OPTIONS") {
		return
	}

	athlete, ok := h.resolveAthlete(w, r)
	if !ok {
		return
	}

	pkg.SendJsonResponse(w, http.StatusOK, h.service.Status(athlete.ID))
}

func (h *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "activitiesHandler.reload")
	defer span.End()

	if handledOptions(w, r, "POST, OPTIONS") {
		return
	}

	athlete, ok := h.resolveAthlete(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int64("athlete_id", athlete.ID))

	if err := h.service.Reload(ctx, athlete.ID, athlete.Fetcher); err != nil {
		log.Errorf("athlete [%d]: reload activities: %s", athlete.ID, err)
		http.Error(w, "failed to reload activities", http.StatusInternalServerError)
		return
	}

	pkg.SendJsonResponse(w, http.StatusAccepted, h.service.Status(athlete.ID))
}

// HandleList filters the history with the filter given in the query, and returns one page of it.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "activitiesHandler.list")
	defer span.End()

	if handledOptions(w, r, "GET, OPTIONS") {
		return
	}

	athlete, ok := h.resolveAthlete(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter, err := ParseFilter(query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	offset, limit := ParsePaging(query)

	collection, err := h.service.Collection(ctx, athlete.ID, athlete.Fetcher)
	if err != nil {
		h.writeHistoryError(w, athlete.ID, err)
		return
	}

	filtered := Apply(collection, filter)
	span.SetAttributes(
		attribute.Int("activities.total", len(collection)),
		attribute.Int("activities.filtered", len(filtered)),
	)

	pkg.SendJsonResponse(w, http.StatusOK, NewPage(filtered, offset, limit))
}

func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "activitiesHandler.summary")
	defer span.End()

	if handledOptions(w, r, "GET, OPTIONS") {
		return
	}

	athlete, ok := h.resolveAthlete(w, r)
	if !ok {
		return
	}

	filter, err := ParseFilter(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	collection, err := h.service.Collection(ctx, athlete.ID, athlete.Fetcher)
	if err != nil {
		h.writeHistoryError(w, athlete.ID, err)
		return
	}

	pkg.SendJsonResponse(w, http.StatusOK, Summarize(Apply(collection, filter)))
}

// HandleSetCriterion changes one criterion of the session filter. The first page of the
// new result is returned, as a filter change always starts from the first page.
func (h *Handler) HandleSetCriterion(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "activitiesHandler.setCriterion")
	defer span.End()

	if handledOptions(w, r, "PUT, OPTIONS") {
		return
	}

	athlete, ok := h.resolveAthlete(w, r)
	if !ok {
		return
	}

	criterion := mux.Vars(r)["criterion"]
	span.SetAttributes(attribute.String("criterion", criterion))

	var req setCriterionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debugf("set criterion [%s], decode body: %s", criterion, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	engine, err := h.service.Engine(ctx, athlete.ID, athlete.SessionID, athlete.Fetcher)
	if err != nil {
		h.writeHistoryError(w, athlete.ID, err)
		return
	}

	if err := SetCriterion(engine, criterion, req.Value); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, limit := ParsePaging(r.URL.Query())
	h.writeFiltered(w, engine, 0, limit)
}

func (h *Handler) HandleResetFilter(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "activitiesHandler.resetFilter")
	defer span.End()

	if handledOptions(w, r, "DELETE, OPTIONS") {
		return
	}

	athlete, ok := h.resolveAthlete(w, r)
	if !ok {
		return
	}

	engine, err := h.service.Engine(ctx, athlete.ID, athlete.SessionID, athlete.Fetcher)
	if err != nil {
		h.writeHistoryError(w, athlete.ID, err)
		return
	}
	engine.Reset()

	_, limit := ParsePaging(r.URL.Query())
	h.writeFiltered(w, engine, 0, limit)
}

func (h *Handler) HandleFiltered(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "activitiesHandler.filtered")
	defer span.End()

	if handledOptions(w, r, "GET, OPTIONS") {
		return
	}

	athlete, ok := h.resolveAthlete(w, r)
	if !ok {
		return
	}

	engine, err := h.service.Engine(ctx, athlete.ID, athlete.SessionID, athlete.Fetcher)
	if err != nil {
		h.writeHistoryError(w, athlete.ID, err)
		return
	}

	offset, limit := ParsePaging(r.URL.Query())
	h.writeFiltered(w, engine, offset, limit)
}

func (h *Handler) writeFiltered(w http.ResponseWriter, engine *Engine, offset, limit int) {
	pkg.SendJsonResponse(w, http.StatusOK, filteredResponse{
		Page:   engine.Page(offset, limit),
		Filter: engine.Filter(),
	})
}
