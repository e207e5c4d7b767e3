package domain

import "time"

// Outcome sources recorded with an assessment.
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)

// Assessment is one completed risk assessment, kept for operator
// review. Confidence is only meaningful for remote outcomes and risk
// factors only for local ones; the unused field is zero.
type Assessment struct {
	ID              int64     `json:"id"`
	SessionID       string    `json:"session_id"`
	RiskLevel       RiskLevel `json:"risk_level"`
	Source          string    `json:"source"`
	ConfidenceScore float64   `json:"confidence_score"`
	RiskFactors     int       `json:"risk_factors"`
	FieldsProvided  int       `json:"fields_provided"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewAssessment builds an assessment row from a prediction outcome.
func NewAssessment(sessionID string, profile MedicalProfile, outcome PredictionOutcome) *Assessment {
	a := &Assessment{
		SessionID:      sessionID,
		RiskLevel:      outcome.RiskLevel(),
		FieldsProvided: profile.FilledCount(),
	}
	if outcome.IsRemote() {
		a.Source = SourceRemote
		a.ConfidenceScore = outcome.Remote.ConfidenceScore
	} else {
		a.Source = SourceLocal
		if outcome.Local != nil {
			a.RiskFactors = outcome.Local.RiskFactors
		}
	}
	return a
}
