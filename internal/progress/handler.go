package progress

import (
	"net/http"

	"github.com/2beens/getfitpro/internal/telemetry/tracing"
	"github.com/2beens/getfitpro/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	aggregator *Aggregator
}

func NewHandler(aggregator *Aggregator) *Handler {
	return &Handler{aggregator: aggregator}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/progress", h.HandleOverview).Methods("GET").Name("progress")
}

func (h *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.overview")
	defer span.End()

	overview, err := h.aggregator.Overview(ctx)
	if err != nil {
		log.Errorf("progress overview: %s", err)
		http.Error(w, "failed to load progress", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, overview, http.StatusOK)
}
