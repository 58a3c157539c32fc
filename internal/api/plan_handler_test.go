package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pulseai/coach-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlanService struct {
	planID string
	err    error
}

func (s *stubPlanService) Generate(_ context.Context, _ string) (string, error) {
	return s.planID, s.err
}

func newPlanRouter(svc service.PlanService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/plans/generate", NewPlanHandler(svc).GeneratePlan)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGeneratePlanSuccess(t *testing.T) {
	router := newPlanRouter(&stubPlanService{planID: "66f1a2b3c4d5e6f7a8b9c0d1"})

	rec := postJSON(router, "/plans/generate", `{"userId":"abc"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "66f1a2b3c4d5e6f7a8b9c0d1", body["planId"])
}

func TestGeneratePlanErrorMapping(t *testing.T) {
	cases := []struct {
		code       string
		wantStatus int
	}{
		{service.CodeMissingUserID, http.StatusBadRequest},
		{service.CodeProfileNotFound, http.StatusNotFound},
		{service.CodeAIError, http.StatusBadGateway},
		{service.CodeAIEmpty, http.StatusBadGateway},
		{service.CodeParseError, http.StatusInternalServerError},
		{service.CodeInvalidFormat, http.StatusInternalServerError},
		{service.CodeDBError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			router := newPlanRouter(&stubPlanService{err: &service.Error{Code: tc.code, Message: "boom"}})

			rec := postJSON(router, "/plans/generate", `{"userId":"abc"}`)
			assert.Equal(t, tc.wantStatus, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body["code"])
			assert.Equal(t, "boom", body["error"])
		})
	}
}

func TestGeneratePlanMalformedBody(t *testing.T) {
	router := newPlanRouter(&stubPlanService{})

	rec := postJSON(router, "/plans/generate", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, service.CodeMissingUserID, body["code"])
}
