package exercises_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/getfitpro/internal/exercises"
	"github.com/2beens/getfitpro/internal/icon"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(list []exercises.Exercise) []string {
	res := make([]string, 0, len(list))
	for _, e := range list {
		res = append(res, e.Name)
	}
	return res
}

func TestLibrary(t *testing.T) {
	lib := exercises.Library()
	require.Len(t, lib, 8)
	for _, e := range lib {
		assert.True(t, e.Icon.IsValid(), e.Name)
		assert.True(t, e.Difficulty.IsValid(), e.Name)
	}
	for _, c := range exercises.Categories() {
		assert.True(t, c.Icon().IsValid(), c)
	}
	assert.Equal(t, icon.Target, exercises.Core.Icon())
}

func TestFind(t *testing.T) {
	for _, tc := range []struct {
		name   string
		filter exercises.Filter
		want   []string
	}{
		{
			name:   "everything",
			filter: exercises.Filter{Category: exercises.All, Difficulty: exercises.All},
			want:   names(exercises.Library()),
		},
		{
			name:   "category",
			filter: exercises.Filter{Category: "Back"},
			want:   []string{"Deadlifts", "Pull-ups"},
		},
		{
			name:   "difficulty",
			filter: exercises.Filter{Difficulty: "Advanced"},
			want:   []string{"Deadlifts"},
		},
		{
			name:   "search matches description case insensitive",
			filter: exercises.Filter{Search: "CORE"},
			want:   []string{"Squats", "Plank"},
		},
		{
			name:   "combined",
			filter: exercises.Filter{Search: "push", Category: "Chest", Difficulty: "Beginner"},
			want:   []string{"Push-ups"},
		},
		{
			name:   "nothing",
			filter: exercises.Filter{Search: "zumba"},
			want:   []string{},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, names(exercises.Find(tc.filter)))
		})
	}
}

func TestHandler_HandleList(t *testing.T) {
	r := mux.NewRouter()
	exercises.NewHandler().SetupRoutes(r)

	req, err := http.NewRequest("GET", "/exercises?category=Legs&search=lunge", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var found []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "Lunges", found[0]["name"])
	assert.Equal(t, "trending-up", found[0]["icon"])
	assert.Equal(t, "10-12 each", found[0]["reps"])
}
