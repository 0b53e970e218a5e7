package exercises

import (
	"net/http"

	"github.com/2beens/getfitpro/internal/telemetry/tracing"
	"github.com/2beens/getfitpro/pkg"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/exercises", h.HandleList).Methods("GET").Name("list-exercises")
}

// HandleList serves the library filtered by the search, category and
// difficulty query parameters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	query := r.URL.Query()
	found := Find(Filter{
		Search:     query.Get("search"),
		Category:   query.Get("category"),
		Difficulty: query.Get("difficulty"),
	})
	span.SetAttributes(attribute.Int("found", len(found)))

	pkg.WriteJSON(w, found, http.StatusOK)
}
