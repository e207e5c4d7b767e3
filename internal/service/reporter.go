package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gurmatsinghsour/SweatHogChatBot/internal/domain"
)

// Report requester feedback that does not vary.
const (
	reportStartMessage       = "Generating your comprehensive PDF medical report... This may take a moment!"
	reportUnavailableMessage = "Report was generated but the download link is not available. Please try again."
	reportFailureMessage     = "I'm unable to reach the report generation service at the moment. Please try again later."
)

// Reporter obtains a PDF report reference for a completed profile. It
// rebuilds the prediction request with the same builder the predictor
// uses, so the report always describes the same payload that was
// scored.
type Reporter struct {
	logger  *logrus.Logger
	scorer  domain.RiskScorer
	chooser Chooser
}

// NewReporter creates a report requester.
func NewReporter(logger *logrus.Logger, scorer domain.RiskScorer, chooser Chooser) *Reporter {
	return &Reporter{logger: logger, scorer: scorer, chooser: chooser}
}

// Generate requests a PDF report and returns the chat messages to
// emit. Failures become a transient-error message; nothing propagates
// past this boundary.
func (r *Reporter) Generate(ctx context.Context, sessionID string, profile domain.MedicalProfile) []string {
	messages := []string{reportStartMessage}

	req := BuildRequest(profile)

	ref, err := r.scorer.PredictWithReport(ctx, req)
	if err != nil {
		r.logger.WithError(err).WithField("session_id", sessionID).
			Error("Report generation failed")
		return append(messages, reportFailureMessage)
	}

	if ref == nil || ref.Filename == "" {
		r.logger.WithField("session_id", sessionID).
			Warn("Report response carried no filename")
		return append(messages, reportUnavailableMessage)
	}

	r.logger.WithFields(logrus.Fields{
		"session_id":      sessionID,
		"report_filename": ref.Filename,
	}).Info("PDF report generated")

	messages = append(messages, r.chooser.Pick(reportSuccessMessages))
	return append(messages, formatReportDetails(ref))
}

// formatReportDetails renders the download link and retrieval
// instructions. The service keeps reports for 24 hours.
func formatReportDetails(ref *domain.ReportReference) string {
	var b strings.Builder
	b.WriteString("YOUR MEDICAL REPORT IS READY!\n\n")
	fmt.Fprintf(&b, "Download Link: %s\n\n", ref.DownloadURL)
	b.WriteString("Report Contains:\n")
	b.WriteString("- Complete risk assessment analysis\n")
	b.WriteString("- Generated medical insights\n")
	b.WriteString("- Personalized recommendations\n")
	b.WriteString("- Detailed data summary\n\n")
	b.WriteString("To download your report, open the link above or save it with:\n")
	fmt.Fprintf(&b, "curl -o medical_report.pdf %s\n\n", ref.DownloadURL)
	b.WriteString("Report Availability: your report will be available for download for the next 24 hours.")
	return b.String()
}
