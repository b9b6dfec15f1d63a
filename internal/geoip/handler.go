package geoip

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/stravastats/pkg"
)

type positionResolver interface {
	PositionForIP(ctx context.Context, userIp string) Position
}

type Handler struct {
	resolver positionResolver
}

func NewHandler(resolver positionResolver) *Handler {
	return &Handler{
		resolver: resolver,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/position/default", h.HandleDefaultPosition).Methods("GET").Name("position-default")
}

// HandleDefaultPosition suggests the initial map center for the position filter.
func (h *Handler) HandleDefaultPosition(w http.ResponseWriter, r *http.Request) {
	userIp, err := pkg.ReadUserIP(r)
	if err != nil {
		log.Debugf("default position, read user ip: %s", err)
		pkg.SendJsonResponse(w, http.StatusOK, DefaultPosition())
		return
	}

	pkg.SendJsonResponse(w, http.StatusOK, h.resolver.PositionForIP(r.Context(), userIp))
}
