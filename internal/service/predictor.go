package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gurmatsinghsour/SweatHogChatBot/internal/domain"
)

// defaultRemedy is used when the scoring service omits remedy text.
const defaultRemedy = "No specific insights available"

// recommendations is the fixed advice list attached to every remote
// assessment.
var recommendations = []string{
	"Follow up with your healthcare team regularly",
	"Monitor your blood glucose levels consistently",
	"Maintain medication adherence as prescribed",
	"Consider lifestyle modifications for optimal health",
	"Stay proactive about your diabetes management",
}

// fallbackRecommendations is the shorter advice list for local
// assessments.
var fallbackRecommendations = []string{
	"Continue regular medical follow-ups",
	"Maintain consistent medication schedule",
	"Monitor blood glucose regularly",
	"Focus on healthy lifestyle choices",
}

// Predictor runs the whole-profile risk assessment: build the scoring
// request, call the remote service, and degrade to the local fallback
// analyzer on any remote failure. An assessment never ends without a
// final user-visible message.
type Predictor struct {
	logger   *logrus.Logger
	scorer   domain.RiskScorer
	fallback *FallbackAnalyzer
	chooser  Chooser
	recorder domain.AssessmentRecorder
}

// NewPredictor creates a predictor. recorder may be nil when history
// is disabled.
func NewPredictor(logger *logrus.Logger, scorer domain.RiskScorer, chooser Chooser, recorder domain.AssessmentRecorder) *Predictor {
	return &Predictor{
		logger:   logger,
		scorer:   scorer,
		fallback: NewFallbackAnalyzer(),
		chooser:  chooser,
		recorder: recorder,
	}
}

// AcknowledgeCollection returns the message emitted once the form has
// gathered its fields, before the prediction runs.
func (p *Predictor) AcknowledgeCollection(profile domain.MedicalProfile) string {
	return fmt.Sprintf(p.chooser.Pick(completionMessages), profile.FilledCount())
}

// Assess performs one prediction for a session's profile. The returned
// outcome holds exactly one variant - remote when the scoring call
// succeeded, local otherwise - and the messages always end with a
// final assessment.
func (p *Predictor) Assess(ctx context.Context, sessionID string, profile domain.MedicalProfile) (domain.PredictionOutcome, []string) {
	messages := []string{p.chooser.Pick(analysisIntros)}

	req := BuildRequest(profile)

	remote, err := p.scorer.Predict(ctx, req)
	var outcome domain.PredictionOutcome
	if err != nil {
		p.logger.WithError(err).WithField("session_id", sessionID).
			Warn("Scoring service unavailable, using local analysis")

		messages = append(messages, p.chooser.Pick(fallbackIntros))
		outcome = domain.FromLocal(p.fallback.Analyze(profile))
		messages = append(messages, formatLocalAssessment(outcome.Local))
	} else {
		outcome = domain.FromRemote(remote)
		messages = append(messages, formatRemoteAssessment(remote, profile.FilledCount()))
		messages = append(messages, p.chooser.Pick(reportOffers))
	}

	p.record(ctx, sessionID, profile, outcome)

	p.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"risk_level": outcome.RiskLevel(),
		"remote":     outcome.IsRemote(),
	}).Info("Assessment completed")

	return outcome, messages
}

// record persists the assessment when a recorder is configured.
// History is best-effort and never blocks the conversation.
func (p *Predictor) record(ctx context.Context, sessionID string, profile domain.MedicalProfile, outcome domain.PredictionOutcome) {
	if p.recorder == nil {
		return
	}
	if err := p.recorder.Record(ctx, domain.NewAssessment(sessionID, profile, outcome)); err != nil {
		p.logger.WithError(err).Warn("Failed to record assessment history")
	}
}

// formatRemoteAssessment renders the scoring service's outcome as the
// multi-section chat message.
func formatRemoteAssessment(o *domain.RemoteOutcome, fieldsProvided int) string {
	remedy := o.Remedy
	if remedy == "" {
		remedy = defaultRemedy
	}

	var b strings.Builder
	b.WriteString("AI-POWERED DIABETES READMISSION RISK ASSESSMENT\n\n")
	fmt.Fprintf(&b, "RISK LEVEL: %s\n", o.RiskLevel())
	fmt.Fprintf(&b, "Confidence Score: %.3f\n", o.ConfidenceScore)
	fmt.Fprintf(&b, "Estimated Risk Probability: %.1f%%\n\n", o.ConfidenceScore*100)
	b.WriteString("MEDICAL INSIGHTS:\n")
	b.WriteString(remedy)
	b.WriteString("\n\nPERSONALIZED RECOMMENDATIONS:\n")
	for _, r := range recommendations {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	b.WriteString("\nMEDICAL DISCLAIMER:\n")
	b.WriteString("This assessment is for informational purposes only. Please discuss these results with your healthcare provider for personalized medical guidance.\n\n")
	fmt.Fprintf(&b, "Analysis based on %d medical parameters.", fieldsProvided)
	return b.String()
}

// formatLocalAssessment renders the fallback analyzer's outcome.
func formatLocalAssessment(o *domain.LocalOutcome) string {
	var b strings.Builder
	b.WriteString("LOCAL DIABETES READMISSION RISK ASSESSMENT\n\n")
	fmt.Fprintf(&b, "RISK LEVEL: %s\n", o.RiskLevel())
	fmt.Fprintf(&b, "Risk Factors Identified: %d\n\n", o.RiskFactors)
	b.WriteString("GENERAL RECOMMENDATIONS:\n")
	for _, r := range fallbackRecommendations {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	b.WriteString("\nNOTE: This is a basic assessment. For detailed insights, please try again later when our scoring service is available.")
	return b.String()
}
