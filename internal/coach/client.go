package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/2beens/getfitpro/internal/plan"
	"github.com/2beens/getfitpro/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	megabyte                  = 1024 * 1024
	recommendationsTTLSeconds = 60 * 60
)

var (
	ErrUnexpectedStatus = errors.New("unexpected coach response status")
	ErrInvalidRequest   = errors.New("invalid coach request")
)

// Client talks to the coach backend. Calls are not retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *freecache.Cache
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		cache:      freecache.NewCache(8 * megabyte),
	}
}

// Recommendations are cached per user for an hour.
func (c *Client) Recommendations(ctx context.Context, userID string) (_ *RecommendationsResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.recommendations")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	cacheKey := []byte("recommendations::" + userID)
	if cached, err := c.cache.Get(cacheKey); err == nil {
		var resp RecommendationsResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return &resp, nil
		}
		log.Warnf("drop corrupted recommendations cache entry for [%s]", userID)
		c.cache.Del(cacheKey)
	}

	raw, err := c.post(ctx, "/api/ai/workout-recommendations", userRequest{UserID: userID})
	if err != nil {
		return nil, err
	}

	var resp RecommendationsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	if resp.Recommendations == nil {
		resp.Recommendations = []Recommendation{}
	}

	if err := c.cache.Set(cacheKey, raw, recommendationsTTLSeconds); err != nil {
		log.Errorf("cache recommendations for [%s]: %s", userID, err)
	}

	return &resp, nil
}

func (c *Client) RestDaySuggestion(ctx context.Context, userID string) (_ *RestDaySuggestion, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.rest_day")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	raw, err := c.post(ctx, "/api/ai/rest-day-suggestion", userRequest{UserID: userID})
	if err != nil {
		return nil, err
	}

	var suggestion RestDaySuggestion
	if err := json.Unmarshal(raw, &suggestion); err != nil {
		return nil, fmt.Errorf("decode rest day suggestion: %w", err)
	}
	return &suggestion, nil
}

func (c *Client) FormCheck(ctx context.Context, req FormCheckRequest) (_ *FormAnalysis, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.form_check")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if strings.TrimSpace(req.ExerciseName) == "" || req.ImageBase64 == "" {
		return nil, fmt.Errorf("%w: exercise name and image are required", ErrInvalidRequest)
	}
	span.SetAttributes(attribute.String("exercise", req.ExerciseName))

	raw, err := c.post(ctx, "/api/ai/form-check", req)
	if err != nil {
		return nil, err
	}

	var analysis FormAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, fmt.Errorf("decode form analysis: %w", err)
	}
	if analysis.Score < 0 || analysis.Score > 10 {
		return nil, fmt.Errorf("form analysis score out of range: %v", analysis.Score)
	}
	return &analysis, nil
}

// ResetProgress asks the backend to drop the user's progress. The response
// body is ignored, any 2xx counts as an acknowledgement.
func (c *Client) ResetProgress(ctx context.Context, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.reset_progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	// local progress is reset either way, old recommendations no longer apply
	c.cache.Del([]byte("recommendations::" + userID))
	_, err = c.post(ctx, "/api/users/"+url.PathEscape(userID)+"/progress/reset", struct{}{})
	return err
}

func (c *Client) CreateWorkout(ctx context.Context, userID string, p plan.Plan) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.create_workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = c.post(ctx, "/api/users/"+url.PathEscape(userID)+"/workouts", createWorkoutRequest{
		Name:         p.Name,
		Duration:     p.Duration,
		Difficulty:   p.Difficulty,
		Type:         p.Type,
		Exercises:    p.Exercises,
		ScheduledFor: p.ScheduledFor,
	})
	return err
}

func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	reqBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Errorf("close coach response body: %s", err)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s -> %d", ErrUnexpectedStatus, path, resp.StatusCode)
	}

	return respBody, nil
}
