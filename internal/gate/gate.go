package gate

import (
	"context"
	"net/http"

	"github.com/2beens/getfitpro/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

// QuizPath is where users without a completed quiz are sent.
const QuizPath = "/quiz"

//go:generate mockgen -source=$GOFILE -destination=gate_mocks_test.go -package=gate_test

type answersChecker interface {
	Exists(ctx context.Context) (bool, error)
}

// Gate lets a request reach the protected resources only once the
// onboarding quiz answers are stored.
type Gate struct {
	checker answersChecker
}

func New(checker answersChecker) *Gate {
	return &Gate{checker: checker}
}

func (g *Gate) IsOnboarded(ctx context.Context) (bool, error) {
	return g.checker.Exists(ctx)
}

func (g *Gate) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.gate")
			onboarded, err := g.IsOnboarded(ctx)
			span.End()

			if err != nil {
				log.Errorf("gate check for [%s]: %s", r.URL.Path, err)
				http.Error(w, "failed to check onboarding state", http.StatusInternalServerError)
				return
			}
			if !onboarded {
				// 303 so every method lands on GET /quiz
				http.Redirect(w, r, QuizPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
