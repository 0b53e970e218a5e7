package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/getfitpro/internal/registry"
	"github.com/2beens/getfitpro/internal/telemetry/metrics"
	"github.com/2beens/getfitpro/internal/telemetry/tracing"
	"github.com/2beens/getfitpro/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type FlowResponse struct {
	ID string `json:"id"`
	State
	Redirect string `json:"redirect,omitempty"`
}

// Link tells the client how to reach a related resource.
type Link struct {
	Method string `json:"method"`
	Href   string `json:"href"`
}

// Entry is what GET /quiz returns: the questionnaire and how to begin a flow.
type Entry struct {
	Completed bool       `json:"completed"`
	Questions []Question `json:"questions"`
	Start     Link       `json:"start"`
}

type SelectRequest struct {
	Value string `json:"value"`
}

type Handler struct {
	repo    *Repo
	flows   *registry.Registry[*Flow]
	metrics *metrics.Manager
}

func NewHandler(repo *Repo, flows *registry.Registry[*Flow], metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		flows:   flows,
		metrics: metricsManager,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/quiz", h.HandleEntry).Methods("GET").Name("quiz-entry")
	r.HandleFunc("/quiz", h.HandleStart).Methods("POST").Name("quiz-start")
	r.HandleFunc("/quiz/questions", h.HandleQuestions).Methods("GET").Name("quiz-questions")
	r.HandleFunc("/quiz/{id}", h.HandleGet).Methods("GET").Name("quiz-get")
	r.HandleFunc("/quiz/{id}/select", h.HandleSelect).Methods("POST").Name("quiz-select")
	r.HandleFunc("/quiz/{id}/next", h.HandleNext).Methods("POST").Name("quiz-next")
	r.HandleFunc("/quiz/{id}/back", h.HandleBack).Methods("POST").Name("quiz-back")
}

func (h *Handler) HandleQuestions(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, Questions(), http.StatusOK)
}

func (h *Handler) HandleEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.quiz.entry")
	defer span.End()

	completed, err := h.repo.Exists(ctx)
	if err != nil {
		log.Errorf("quiz entry: %s", err)
		http.Error(w, "failed to check quiz state", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, Entry{
		Completed: completed,
		Questions: Questions(),
		Start:     Link{Method: http.MethodPost, Href: "/quiz"},
	}, http.StatusOK)
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.quiz.start")
	defer span.End()

	flow := NewFlow(h.repo)
	id := h.flows.Add(flow)
	span.SetAttributes(attribute.String("flow.id", id))

	pkg.WriteJSON(w, FlowResponse{ID: id, State: flow.State()}, http.StatusCreated)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, flow, ok := h.flowFromRequest(w, r)
	if !ok {
		return
	}
	pkg.WriteJSON(w, FlowResponse{ID: id, State: flow.State()}, http.StatusOK)
}

func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	id, flow, ok := h.flowFromRequest(w, r)
	if !ok {
		return
	}

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("quiz select, unmarshal json params: %s", err)
		http.Error(w, "invalid select request", http.StatusBadRequest)
		return
	}

	if err := flow.SelectOption(req.Value); err != nil {
		writeFlowError(w, err)
		return
	}

	pkg.WriteJSON(w, FlowResponse{ID: id, State: flow.State()}, http.StatusOK)
}

func (h *Handler) HandleNext(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.quiz.next")
	defer span.End()

	id, flow, ok := h.flowFromRequest(w, r)
	if !ok {
		return
	}

	done, err := flow.Next(ctx)
	if err != nil {
		writeFlowError(w, err)
		return
	}

	resp := FlowResponse{ID: id, State: flow.State()}
	if done {
		h.flows.Remove(id)
		h.metrics.CounterQuizCompleted.Inc()
		resp.Redirect = "/dashboard"
		log.Debugf("quiz flow [%s] completed", id)
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) HandleBack(w http.ResponseWriter, r *http.Request) {
	id, flow, ok := h.flowFromRequest(w, r)
	if !ok {
		return
	}

	if err := flow.Back(); err != nil {
		writeFlowError(w, err)
		return
	}

	pkg.WriteJSON(w, FlowResponse{ID: id, State: flow.State()}, http.StatusOK)
}

func (h *Handler) flowFromRequest(w http.ResponseWriter, r *http.Request) (string, *Flow, bool) {
	id := mux.Vars(r)["id"]
	flow, ok := h.flows.Get(id)
	if !ok {
		pkg.WriteJSONError(w, "quiz flow not found", http.StatusNotFound)
		return "", nil, false
	}
	return id, flow, true
}

func writeFlowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoSelection), errors.Is(err, ErrInvalidOption):
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrFirstQuestion), errors.Is(err, ErrFlowCompleted):
		pkg.WriteJSONError(w, err.Error(), http.StatusConflict)
	default:
		log.Errorf("quiz flow: %s", err)
		http.Error(w, "failed to save quiz answers", http.StatusInternalServerError)
	}
}
