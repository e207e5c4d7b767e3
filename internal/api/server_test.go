package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurmatsinghsour/SweatHogChatBot/internal/domain"
	"github.com/gurmatsinghsour/SweatHogChatBot/internal/history"
	"github.com/gurmatsinghsour/SweatHogChatBot/internal/service"
	"github.com/gurmatsinghsour/SweatHogChatBot/internal/session"
)

// stubConfigManager serves a fixed config to the server.
type stubConfigManager struct {
	config *domain.Config
}

func (m *stubConfigManager) GetConfig() *domain.Config { return m.config }
func (m *stubConfigManager) Validate() error           { return nil }

// stubScorer scripts the scoring service.
type stubScorer struct {
	outcome *domain.RemoteOutcome
	report  *domain.ReportReference
	err     error
}

func (s *stubScorer) Predict(_ context.Context, _ *domain.PredictionRequest) (*domain.RemoteOutcome, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.outcome, nil
}

func (s *stubScorer) PredictWithReport(_ context.Context, _ *domain.PredictionRequest) (*domain.ReportReference, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

type serverFixture struct {
	server   *Server
	profiles *session.Store
	history  history.Store
}

func newTestServer(t *testing.T, scorer domain.RiskScorer, withHistory bool) *serverFixture {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	manager := &stubConfigManager{config: &domain.Config{
		Logging: domain.LoggingConfig{Level: "error"},
	}}

	profiles, err := session.NewStore(logger, domain.SessionConfig{
		MaxSessions: 64,
		TTL:         time.Hour,
	})
	require.NoError(t, err)
	t.Cleanup(func() { profiles.Close() })

	var historyStore history.Store
	if withHistory {
		store, err := history.NewSQLiteStore(filepath.Join(t.TempDir(), "assessments.db"))
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
		historyStore = store
	}

	chooser := service.FirstChooser{}
	validator := service.NewValidator(logger, chooser)
	predictor := service.NewPredictor(logger, scorer, chooser, historyStore)
	reporter := service.NewReporter(logger, scorer, chooser)

	return &serverFixture{
		server:   NewServer(manager, logger, validator, predictor, reporter, profiles, historyStore),
		profiles: profiles,
		history:  historyStore,
	}
}

func doJSON(t *testing.T, handler http.Handler, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	fx := newTestServer(t, &stubScorer{}, false)

	rec := doJSON(t, fx.server.Handler(), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestServer_Validate(t *testing.T) {
	fx := newTestServer(t, &stubScorer{}, false)

	rec := doJSON(t, fx.server.Handler(), http.MethodPost, "/webhook/validate", map[string]string{
		"session_id": "s1",
		"field":      domain.SlotAge,
		"value":      "45",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp validateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Value)
	assert.Equal(t, "[40-50)", *resp.Value)
	require.Len(t, resp.Messages, 1)
	assert.Contains(t, resp.Messages[0].Text, "[40-50)")

	// The canonical value landed in the session profile.
	profile, err := fx.profiles.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "[40-50)", profile[domain.SlotAge])
}

func TestServer_Validate_RejectedValueIsNull(t *testing.T) {
	fx := newTestServer(t, &stubScorer{}, false)

	rec := doJSON(t, fx.server.Handler(), http.MethodPost, "/webhook/validate", map[string]string{
		"session_id": "s1",
		"field":      domain.SlotAge,
		"value":      "-5",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp validateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Value)
	require.Len(t, resp.Messages, 1)
	assert.NotEmpty(t, resp.Messages[0].Text)

	// Nothing was stored for the rejected value.
	profile, err := fx.profiles.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, profile.FilledCount())
}

func TestServer_Validate_BadRequests(t *testing.T) {
	fx := newTestServer(t, &stubScorer{}, false)

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{"Missing session", map[string]string{"field": domain.SlotAge, "value": "45"}},
		{"Missing field", map[string]string{"session_id": "s1", "value": "45"}},
		{"Unknown field", map[string]string{"session_id": "s1", "field": "blood_type", "value": "O"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, fx.server.Handler(), http.MethodPost, "/webhook/validate", tt.payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestServer_Action_Predict(t *testing.T) {
	scorer := &stubScorer{outcome: &domain.RemoteOutcome{
		ConfidenceScore: 0.85,
		Remedy:          "Increase follow-up frequency.",
	}}
	fx := newTestServer(t, scorer, false)

	rec := doJSON(t, fx.server.Handler(), http.MethodPost, "/webhook/action", map[string]interface{}{
		"session_id": "s1",
		"action":     "predict",
		"slots": map[string]string{
			domain.SlotAge:    "[70-80)",
			domain.SlotGender: domain.GenderMale,
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp actionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 3)
	assert.Contains(t, resp.Messages[1].Text, "RISK LEVEL: HIGH")
	assert.Contains(t, resp.Messages[1].Text, "Increase follow-up frequency.")
}

func TestServer_Action_PredictFallsBack(t *testing.T) {
	scorer := &stubScorer{err: errors.New("connection refused")}
	fx := newTestServer(t, scorer, false)

	rec := doJSON(t, fx.server.Handler(), http.MethodPost, "/webhook/action", map[string]interface{}{
		"session_id": "s1",
		"action":     "predict",
	})

	// Remote failure still answers 200 with a local assessment.
	require.Equal(t, http.StatusOK, rec.Code)

	var resp actionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 3)
	assert.Contains(t, resp.Messages[2].Text, "LOCAL DIABETES READMISSION RISK ASSESSMENT")
}

func TestServer_Action_Process(t *testing.T) {
	fx := newTestServer(t, &stubScorer{}, false)

	rec := doJSON(t, fx.server.Handler(), http.MethodPost, "/webhook/action", map[string]interface{}{
		"session_id": "s1",
		"action":     "process",
		"slots": map[string]string{
			domain.SlotAge:    "[30-40)",
			domain.SlotGender: domain.GenderFemale,
			"not_a_slot":      "ignored",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp actionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 1)
	// Unknown slots do not count toward the collected fields.
	assert.Contains(t, resp.Messages[0].Text, "2")
}

func TestServer_Action_GenerateReport(t *testing.T) {
	scorer := &stubScorer{report: &domain.ReportReference{
		Filename:    "report_1.pdf",
		DownloadURL: "http://localhost:8080/download_report/report_1.pdf",
	}}
	fx := newTestServer(t, scorer, false)

	rec := doJSON(t, fx.server.Handler(), http.MethodPost, "/webhook/action", map[string]interface{}{
		"session_id": "s1",
		"action":     "generate_report",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp actionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 3)
	assert.Contains(t, resp.Messages[2].Text, "download_report/report_1.pdf")
}

func TestServer_Action_UnknownAction(t *testing.T) {
	fx := newTestServer(t, &stubScorer{}, false)

	rec := doJSON(t, fx.server.Handler(), http.MethodPost, "/webhook/action", map[string]interface{}{
		"session_id": "s1",
		"action":     "explode",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_GetProfile(t *testing.T) {
	fx := newTestServer(t, &stubScorer{}, false)

	require.NoError(t, fx.profiles.Put(context.Background(), "s9", domain.MedicalProfile{
		domain.SlotAge: "[60-70)",
	}))

	rec := doJSON(t, fx.server.Handler(), http.MethodGet, "/sessions/s9/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		SessionID string                `json:"session_id"`
		Filled    int                   `json:"filled"`
		Profile   domain.MedicalProfile `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "s9", resp.SessionID)
	assert.Equal(t, 1, resp.Filled)
	assert.Equal(t, "[60-70)", resp.Profile[domain.SlotAge])
}

func TestServer_History(t *testing.T) {
	scorer := &stubScorer{outcome: &domain.RemoteOutcome{ConfidenceScore: 0.2}}
	fx := newTestServer(t, scorer, true)

	// Run one prediction so something is on record.
	rec := doJSON(t, fx.server.Handler(), http.MethodPost, "/webhook/action", map[string]interface{}{
		"session_id": "s1",
		"action":     "predict",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, fx.server.Handler(), http.MethodGet, "/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Total       int64                `json:"total"`
		Assessments []*domain.Assessment `json:"assessments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Assessments, 1)
	assert.Equal(t, "s1", resp.Assessments[0].SessionID)
	assert.Equal(t, domain.RiskLow, resp.Assessments[0].RiskLevel)
}

func TestServer_History_Disabled(t *testing.T) {
	fx := newTestServer(t, &stubScorer{}, false)

	rec := doJSON(t, fx.server.Handler(), http.MethodGet, "/history", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_SecurityHeaders(t *testing.T) {
	fx := newTestServer(t, &stubScorer{}, false)

	rec := doJSON(t, fx.server.Handler(), http.MethodGet, "/health", nil)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Frame-Options"))
}
