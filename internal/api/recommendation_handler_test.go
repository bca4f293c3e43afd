package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniplanner/planner-api/internal/domain/planner"
)

func TestRecommendationHandler_Recommendations(t *testing.T) {
	t.Parallel()

	t.Run("passes explicit limit", func(t *testing.T) {
		svc := &stubRecommendationService{}
		handler := NewRecommendationHandler(svc, nil)

		req := newAuthedRequest(t, "GET", "/recommendations?limit=2", uuid.New(), "")
		recorder := httptest.NewRecorder()
		handler.Recommendations(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, 2, svc.lastLimit)
	})

	t.Run("omitted limit defers to service default", func(t *testing.T) {
		svc := &stubRecommendationService{}
		handler := NewRecommendationHandler(svc, nil)

		req := newAuthedRequest(t, "GET", "/recommendations", uuid.New(), "")
		recorder := httptest.NewRecorder()
		handler.Recommendations(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, 0, svc.lastLimit)
	})

	t.Run("rejects non-numeric limit", func(t *testing.T) {
		handler := NewRecommendationHandler(&stubRecommendationService{}, nil)

		req := newAuthedRequest(t, "GET", "/recommendations?limit=many", uuid.New(), "")
		recorder := httptest.NewRecorder()
		handler.Recommendations(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestRecommendationHandler_WeeklyLoad(t *testing.T) {
	t.Parallel()

	handler := NewRecommendationHandler(&stubRecommendationService{}, nil)

	req := newAuthedRequest(t, "GET", "/recommendations/weekly-load", uuid.New(), "")
	recorder := httptest.NewRecorder()
	handler.WeeklyLoad(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var report planner.LoadReport
	decodeBody(t, recorder, &report)
	assert.Equal(t, "light load", report.Verdict)
}

func TestRecommendationHandler_StudyPlan(t *testing.T) {
	t.Parallel()

	t.Run("explicit daily hours", func(t *testing.T) {
		svc := &stubRecommendationService{}
		handler := NewRecommendationHandler(svc, nil)

		req := newAuthedRequest(t, "GET", "/recommendations/study-plan?daily_hours=3.5", uuid.New(), "")
		recorder := httptest.NewRecorder()
		handler.StudyPlan(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, 3.5, svc.lastDailyHours)
	})

	t.Run("omitted daily hours defers to study profile", func(t *testing.T) {
		svc := &stubRecommendationService{}
		handler := NewRecommendationHandler(svc, nil)

		req := newAuthedRequest(t, "GET", "/recommendations/study-plan", uuid.New(), "")
		recorder := httptest.NewRecorder()
		handler.StudyPlan(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, 0.0, svc.lastDailyHours)
	})

	t.Run("rejects negative daily hours", func(t *testing.T) {
		handler := NewRecommendationHandler(&stubRecommendationService{}, nil)

		req := newAuthedRequest(t, "GET", "/recommendations/study-plan?daily_hours=-1", uuid.New(), "")
		recorder := httptest.NewRecorder()
		handler.StudyPlan(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestRecommendationHandler_Stats(t *testing.T) {
	t.Parallel()

	handler := NewRecommendationHandler(&stubRecommendationService{}, nil)

	req := newAuthedRequest(t, "GET", "/recommendations/stats", uuid.New(), "")
	recorder := httptest.NewRecorder()
	handler.Stats(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
