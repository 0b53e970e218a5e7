package coach

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/getfitpro/internal/profile"
	"github.com/2beens/getfitpro/internal/telemetry/metrics"
	"github.com/2beens/getfitpro/internal/telemetry/tracing"
	"github.com/2beens/getfitpro/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const transientNotice = "coach is unavailable right now, please try again in a moment"

// MaxFormCheckBodySize caps a form check upload, base64 photo included.
const MaxFormCheckBodySize = 10 << 20

type profileLoader interface {
	Load(ctx context.Context) (profile.Profile, error)
}

// Handler proxies the AI coach features for the local user.
type Handler struct {
	client   *Client
	profiles profileLoader
	metrics  *metrics.Manager
}

func NewHandler(client *Client, profiles profileLoader, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		client:   client,
		profiles: profiles,
		metrics:  metricsManager,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/ai/recommendations", h.HandleRecommendations).Methods("POST").Name("ai-recommendations")
	r.HandleFunc("/ai/rest-day", h.HandleRestDay).Methods("POST").Name("ai-rest-day")
	r.HandleFunc("/ai/form-check", h.HandleFormCheck).Methods("POST").Name("ai-form-check")
}

func (h *Handler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.ai.recommendations")
	defer span.End()

	userID, ok := h.userID(ctx, w)
	if !ok {
		return
	}

	resp, err := h.client.Recommendations(ctx, userID)
	if err != nil {
		h.writeCoachError(w, "recommendations", err)
		return
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) HandleRestDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.ai.rest_day")
	defer span.End()

	userID, ok := h.userID(ctx, w)
	if !ok {
		return
	}

	suggestion, err := h.client.RestDaySuggestion(ctx, userID)
	if err != nil {
		h.writeCoachError(w, "rest_day", err)
		return
	}

	pkg.WriteJSON(w, suggestion, http.StatusOK)
}

func (h *Handler) HandleFormCheck(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.ai.form_check")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxFormCheckBodySize)
	var req FormCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			log.Warnf("form check, body over %d bytes", maxBytesErr.Limit)
			pkg.WriteJSONError(w, "photo too large", http.StatusRequestEntityTooLarge)
			return
		}
		log.Errorf("form check, unmarshal json params: %s", err)
		http.Error(w, "invalid form check request", http.StatusBadRequest)
		return
	}

	analysis, err := h.client.FormCheck(ctx, req)
	if errors.Is(err, ErrInvalidRequest) {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.writeCoachError(w, "form_check", err)
		return
	}

	pkg.WriteJSON(w, analysis, http.StatusOK)
}

func (h *Handler) userID(ctx context.Context, w http.ResponseWriter) (string, bool) {
	p, err := h.profiles.Load(ctx)
	if err != nil {
		log.Errorf("ai proxy, load profile: %s", err)
		http.Error(w, "failed to load profile", http.StatusInternalServerError)
		return "", false
	}
	return p.ID, true
}

func (h *Handler) writeCoachError(w http.ResponseWriter, operation string, err error) {
	log.Errorf("coach %s: %s", operation, err)
	h.metrics.CounterCoachFailures.WithLabelValues(operation).Inc()
	pkg.WriteJSONError(w, transientNotice, http.StatusBadGateway)
}
