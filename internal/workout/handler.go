package workout

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/getfitpro/internal/profile"
	"github.com/2beens/getfitpro/internal/registry"
	"github.com/2beens/getfitpro/internal/telemetry/tracing"
	"github.com/2beens/getfitpro/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type SessionResponse struct {
	ID string `json:"id"`
	View
	Profile  *profile.Profile `json:"profile,omitempty"`
	Redirect string           `json:"redirect,omitempty"`
}

type StartSessionRequest struct {
	PlanID string `json:"planId"`
}

type Handler struct {
	catalog  *Catalog
	builder  *Builder
	recorder completionRecorder
	sessions *registry.Registry[*Session]
}

func NewHandler(
	catalog *Catalog,
	builder *Builder,
	recorder completionRecorder,
	sessions *registry.Registry[*Session],
) *Handler {
	return &Handler{
		catalog:  catalog,
		builder:  builder,
		recorder: recorder,
		sessions: sessions,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/dashboard", h.HandleDashboard).Methods("GET").Name("dashboard")
	r.HandleFunc("/workouts/plans", h.HandleListPlans).Methods("GET").Name("list-plans")
	r.HandleFunc("/workouts/plans", h.HandleCreatePlan).Methods("POST").Name("create-plan")
	r.HandleFunc("/workouts/sessions", h.HandleNewSession).Methods("POST").Name("new-session")
	r.HandleFunc("/workouts/sessions/{id}", h.HandleGetSession).Methods("GET").Name("get-session")
	r.HandleFunc("/workouts/sessions/{id}/start", h.HandleStart).Methods("POST").Name("start-session")
	r.HandleFunc("/workouts/sessions/{id}/exercises/{index}/toggle", h.HandleToggle).Methods("POST").Name("toggle-exercise")
	r.HandleFunc("/workouts/sessions/{id}/complete", h.HandleComplete).Methods("POST").Name("complete-session")
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.dashboard")
	defer span.End()

	dashboard, err := LoadDashboard(ctx, h.catalog)
	if err != nil {
		log.Errorf("load dashboard: %s", err)
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, dashboard, http.StatusOK)
}

func (h *Handler) HandleListPlans(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.plans")
	defer span.End()

	plans, err := h.catalog.Plans(ctx)
	if err != nil {
		log.Errorf("list plans: %s", err)
		http.Error(w, "failed to list workout plans", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, plans, http.StatusOK)
}

func (h *Handler) HandleCreatePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.create_plan")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req CustomWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("create plan, unmarshal json params: %s", err)
		http.Error(w, "invalid workout", http.StatusBadRequest)
		return
	}

	p, err := h.builder.Create(ctx, req)
	switch {
	case errors.Is(err, ErrInvalidWorkout):
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrNotSynced):
		log.Errorf("create plan: %s", err)
		pkg.WriteJSONError(w, "failed to save workout, please try again", http.StatusBadGateway)
		return
	case err != nil:
		log.Errorf("create plan: %s", err)
		http.Error(w, "failed to save workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, p, http.StatusCreated)
}

func (h *Handler) HandleNewSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.new_session")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("new session, unmarshal json params: %s", err)
		http.Error(w, "invalid session request", http.StatusBadRequest)
		return
	}

	p, err := h.catalog.Find(ctx, req.PlanID)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	session, err := NewSession(p, h.recorder)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	id := h.sessions.Add(session)
	span.SetAttributes(attribute.String("session.id", id), attribute.String("plan.id", p.ID))

	pkg.WriteJSON(w, SessionResponse{ID: id, View: session.View()}, http.StatusCreated)
}

func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	id, session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}
	pkg.WriteJSON(w, SessionResponse{ID: id, View: session.View()}, http.StatusOK)
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	id, session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	if err := session.Start(); err != nil {
		writeSessionError(w, err)
		return
	}

	pkg.WriteJSON(w, SessionResponse{ID: id, View: session.View()}, http.StatusOK)
}

func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	id, session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		pkg.WriteJSONError(w, "exercise index must be a number", http.StatusBadRequest)
		return
	}

	if err := session.ToggleExercise(index); err != nil {
		writeSessionError(w, err)
		return
	}

	pkg.WriteJSON(w, SessionResponse{ID: id, View: session.View()}, http.StatusOK)
}

func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.complete")
	defer span.End()

	id, session, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	updated, err := session.Complete(ctx)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	pkg.WriteJSON(w, SessionResponse{
		ID:       id,
		View:     session.View(),
		Profile:  &updated,
		Redirect: "/dashboard",
	}, http.StatusOK)
}

func (h *Handler) sessionFromRequest(w http.ResponseWriter, r *http.Request) (string, *Session, bool) {
	id := mux.Vars(r)["id"]
	session, ok := h.sessions.Get(id)
	if !ok {
		pkg.WriteJSONError(w, "workout session not found", http.StatusNotFound)
		return "", nil, false
	}
	return id, session, true
}

func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPlanNotFound):
		pkg.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrEmptyPlan), errors.Is(err, ErrExerciseIndex):
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrAlreadyStarted), errors.Is(err, ErrNotStarted), errors.Is(err, ErrIncomplete):
		pkg.WriteJSONError(w, err.Error(), http.StatusConflict)
	default:
		log.Errorf("workout session: %s", err)
		http.Error(w, "failed to save workout", http.StatusInternalServerError)
	}
}
