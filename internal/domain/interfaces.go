package domain

import "context"

// RiskScorer abstracts the remote scoring service. Implementations
// must honor the request timeouts from configuration; they return an
// error for any non-200 status, timeout, or transport failure and
// never fabricate a result.
type RiskScorer interface {
	// Predict submits a prediction request and returns the service's
	// scored outcome.
	Predict(ctx context.Context, req *PredictionRequest) (*RemoteOutcome, error)

	// PredictWithReport submits the same request to the report
	// endpoint and returns a reference to the generated PDF.
	PredictWithReport(ctx context.Context, req *PredictionRequest) (*ReportReference, error)
}

// ProfileStore keeps per-session medical profiles between webhook
// invocations. Each session owns an independent profile.
type ProfileStore interface {
	Get(ctx context.Context, sessionID string) (MedicalProfile, error)
	Put(ctx context.Context, sessionID string, profile MedicalProfile) error
	Delete(ctx context.Context, sessionID string) error
}

// AssessmentRecorder persists completed assessments for later review.
// Recording is best-effort: a failure must never block the
// conversation.
type AssessmentRecorder interface {
	Record(ctx context.Context, a *Assessment) error
}

// ConfigManager provides access to the loaded configuration.
type ConfigManager interface {
	GetConfig() *Config
	Validate() error
}
