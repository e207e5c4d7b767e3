package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gurmatsinghsour/SweatHogChatBot/internal/domain"
)

// Actions the conversational runtime can trigger once the form is
// complete.
const (
	actionProcess        = "process"
	actionPredict        = "predict"
	actionGenerateReport = "generate_report"
)

// botMessage is one chat message for the runtime to render.
type botMessage struct {
	Text string `json:"text"`
}

// validateRequest is the per-field validation webhook payload.
type validateRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Field     string `json:"field" binding:"required"`
	Value     string `json:"value"`
}

// validateResponse carries the canonical value (null when rejected)
// plus the feedback to utter.
type validateResponse struct {
	Field    string       `json:"field"`
	Value    *string      `json:"value"`
	Messages []botMessage `json:"messages"`
}

// actionRequest is the whole-profile action webhook payload. Slots
// optionally carries canonical values the runtime tracked itself; they
// override the stored profile for this invocation.
type actionRequest struct {
	SessionID string            `json:"session_id" binding:"required"`
	Action    string            `json:"action" binding:"required"`
	Slots     map[string]string `json:"slots,omitempty"`
}

// actionResponse carries the messages to utter.
type actionResponse struct {
	Messages []botMessage `json:"messages"`
}

// knownSlots indexes the form's slot names for request validation.
var knownSlots = func() map[string]bool {
	m := make(map[string]bool, len(domain.FormSlots))
	for _, slot := range domain.FormSlots {
		m[slot] = true
	}
	return m
}()

// toMessages wraps plain strings as bot messages.
func toMessages(texts []string) []botMessage {
	out := make([]botMessage, 0, len(texts))
	for _, t := range texts {
		out = append(out, botMessage{Text: t})
	}
	return out
}

// handleValidate validates one raw field value and stores the
// canonical result in the session's profile.
func (s *Server) handleValidate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewBotError(
			domain.ErrInvalidInput, "invalid validation request", err.Error(), c.GetString("correlation_id")))
		return
	}

	if !knownSlots[req.Field] {
		c.JSON(http.StatusBadRequest, domain.NewBotError(
			domain.ErrInvalidInput, "unknown field: "+req.Field, "", c.GetString("correlation_id")))
		return
	}

	result := s.validator.Validate(req.Field, req.Value)

	resp := validateResponse{
		Field:    req.Field,
		Messages: []botMessage{{Text: result.Message}},
	}

	if result.Accepted() {
		value := result.Value
		resp.Value = &value

		profile := s.loadProfile(c, req.SessionID)
		profile.Set(req.Field, result.Value)
		if err := s.profiles.Put(c.Request.Context(), req.SessionID, profile); err != nil {
			s.logger.WithError(err).WithField("session_id", req.SessionID).
				Warn("Failed to persist session profile")
		}
	}

	c.JSON(http.StatusOK, resp)
}

// handleAction runs a whole-profile action. Every path ends with at
// least one message; remote failures degrade inside the services and
// never surface as HTTP errors.
func (s *Server) handleAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewBotError(
			domain.ErrInvalidInput, "invalid action request", err.Error(), c.GetString("correlation_id")))
		return
	}

	profile := s.loadProfile(c, req.SessionID)
	for slot, value := range req.Slots {
		if knownSlots[slot] {
			profile.Set(slot, value)
		}
	}

	var messages []string
	switch req.Action {
	case actionProcess:
		messages = []string{s.predictor.AcknowledgeCollection(profile)}
	case actionPredict:
		_, messages = s.predictor.Assess(c.Request.Context(), req.SessionID, profile)
	case actionGenerateReport:
		messages = s.reporter.Generate(c.Request.Context(), req.SessionID, profile)
	default:
		c.JSON(http.StatusBadRequest, domain.NewBotError(
			domain.ErrInvalidInput, "unknown action: "+req.Action, "", c.GetString("correlation_id")))
		return
	}

	c.JSON(http.StatusOK, actionResponse{Messages: toMessages(messages)})
}

// handleGetProfile returns the canonical profile stored for a session.
func (s *Server) handleGetProfile(c *gin.Context) {
	sessionID := c.Param("id")
	profile := s.loadProfile(c, sessionID)

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"filled":     profile.FilledCount(),
		"profile":    profile,
	})
}

// handleHistory lists recorded assessments, newest first.
func (s *Server) handleHistory(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusServiceUnavailable, domain.NewBotError(
			domain.ErrHistoryStore, "assessment history is disabled", "", c.GetString("correlation_id")))
		return
	}

	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	assessments, err := s.history.List(c.Request.Context(), limit, offset)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list assessment history")
		c.JSON(http.StatusInternalServerError, domain.NewBotError(
			domain.ErrHistoryStore, "failed to list assessments", "", c.GetString("correlation_id")))
		return
	}

	total, err := s.history.Count(c.Request.Context())
	if err != nil {
		s.logger.WithError(err).Warn("Failed to count assessment history")
	}

	c.JSON(http.StatusOK, gin.H{
		"total":       total,
		"assessments": assessments,
	})
}

// loadProfile fetches a session's profile, falling back to an empty
// one on store failure so the conversation can continue.
func (s *Server) loadProfile(c *gin.Context, sessionID string) domain.MedicalProfile {
	profile, err := s.profiles.Get(c.Request.Context(), sessionID)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"session_id": sessionID,
		}).Warn("Failed to load session profile, starting fresh")
		return domain.MedicalProfile{}
	}
	return profile
}

// queryInt parses an integer query parameter with a default.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
