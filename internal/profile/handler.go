package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/getfitpro/internal/telemetry/tracing"
	"github.com/2beens/getfitpro/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/profile", h.HandleGet).Methods("GET").Name("get-profile")
	r.HandleFunc("/profile", h.HandleUpdate).Methods("PUT").Name("update-profile")
	r.HandleFunc("/profile/reset", h.HandleReset).Methods("POST").Name("reset-progress")
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.get")
	defer span.End()

	p, err := h.service.Load(ctx)
	if err != nil {
		log.Errorf("get profile: %s", err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, p, http.StatusOK)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.update")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var patch Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Errorf("update profile, unmarshal json params: %s", err)
		http.Error(w, "invalid profile update", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(ctx, patch)
	if errors.Is(err, ErrInvalidPatch) {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("update profile: %s", err)
		http.Error(w, "failed to update profile", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.reset")
	defer span.End()

	result, err := h.service.ResetProgress(ctx)
	if err != nil {
		log.Errorf("reset progress: %s", err)
		http.Error(w, "failed to reset progress", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, result, http.StatusOK)
}
