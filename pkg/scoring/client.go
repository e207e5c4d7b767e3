// Package scoring provides the HTTP client for the readmission
// scoring service: prediction, report generation, and the circuit
// breaker wrapper that guards both.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/gurmatsinghsour/SweatHogChatBot/internal/domain"
)

// Client handles interactions with the scoring service. Prediction and
// report generation use separate HTTP clients because their timeouts
// differ (report rendering is slow).
type Client struct {
	config        domain.ScoringConfig
	predictClient *http.Client
	reportClient  *http.Client
	rateLimit     *rate.Limiter
}

// NewClient creates a scoring service client.
func NewClient(config domain.ScoringConfig) *Client {
	limit := config.RateLimit
	if limit <= 0 {
		limit = 10
	}
	return &Client{
		config: config,
		predictClient: &http.Client{
			Timeout: config.PredictTimeout,
		},
		reportClient: &http.Client{
			Timeout: config.ReportTimeout,
		},
		rateLimit: rate.NewLimiter(rate.Limit(limit), 1),
	}
}

// predictResponse mirrors the /predict JSON body. ConfidenceScore is a
// pointer so an omitted field is distinguishable from a literal zero.
type predictResponse struct {
	ConfidenceScore *float64 `json:"confidence_score"`
	Remedy          string   `json:"remedy"`
	Status          string   `json:"status"`
}

// reportResponse mirrors the /predict_with_report JSON body.
type reportResponse struct {
	ReportFilename string `json:"report_filename"`
}

// Predict submits a prediction request and returns the scored outcome.
// Any non-200 status, transport failure, or malformed body is an
// error; the caller decides how to degrade.
func (c *Client) Predict(ctx context.Context, req *domain.PredictionRequest) (*domain.RemoteOutcome, error) {
	body, err := c.post(ctx, c.predictClient, c.config.PredictURL(), req)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	var parsed predictResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("predict: failed to parse response: %w", err)
	}

	outcome := &domain.RemoteOutcome{
		ConfidenceScore: 0.5,
		Remedy:          parsed.Remedy,
		Status:          parsed.Status,
	}
	if parsed.ConfidenceScore != nil {
		outcome.ConfidenceScore = *parsed.ConfidenceScore
	}
	return outcome, nil
}

// PredictWithReport submits the request to the report endpoint and
// returns a reference to the generated PDF. A response without a
// filename yields a reference with an empty Filename, not an error.
func (c *Client) PredictWithReport(ctx context.Context, req *domain.PredictionRequest) (*domain.ReportReference, error) {
	body, err := c.post(ctx, c.reportClient, c.config.ReportURL(), req)
	if err != nil {
		return nil, fmt.Errorf("predict with report: %w", err)
	}

	var parsed reportResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("predict with report: failed to parse response: %w", err)
	}

	ref := &domain.ReportReference{Filename: parsed.ReportFilename}
	if ref.Filename != "" {
		ref.DownloadURL = c.config.DownloadURL(ref.Filename)
	}
	return ref, nil
}

// post sends one JSON request and returns the response body of a 200.
func (c *Client) post(ctx context.Context, client *http.Client, url string, payload interface{}) ([]byte, error) {
	if err := c.rateLimit.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scoring service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// Timeouts reports the configured call deadlines; the API health
// endpoint surfaces them.
func (c *Client) Timeouts() (predict, report time.Duration) {
	return c.config.PredictTimeout, c.config.ReportTimeout
}
