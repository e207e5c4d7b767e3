package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/gurmatsinghsour/SweatHogChatBot/internal/domain"
)

// ResilientClient wraps the scoring client with circuit breakers so a
// flapping service stops being hammered and the conversation degrades
// to the local fallback immediately. A tripped breaker surfaces as an
// ordinary error; callers treat it like any other remote failure.
type ResilientClient struct {
	client *Client

	predictBreaker *gobreaker.CircuitBreaker
	reportBreaker  *gobreaker.CircuitBreaker
}

// NewResilientClient creates a resilient scoring client.
func NewResilientClient(config domain.ScoringConfig, logger *logrus.Logger) *ResilientClient {
	onStateChange := func(name string, from gobreaker.State, to gobreaker.State) {
		logger.WithFields(logrus.Fields{
			"breaker": name,
			"from":    from.String(),
			"to":      to.String(),
		}).Warn("Circuit breaker state changed")
	}

	predictBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ScoringPredict",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: onStateChange,
	})

	reportBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ScoringReport",
		MaxRequests: 3, // report rendering is expensive, probe gently
		Interval:    30 * time.Second,
		Timeout:     90 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 2 && failureRatio >= 0.5
		},
		OnStateChange: onStateChange,
	})

	return &ResilientClient{
		client:         NewClient(config),
		predictBreaker: predictBreaker,
		reportBreaker:  reportBreaker,
	}
}

// Predict calls the prediction endpoint through the circuit breaker.
func (r *ResilientClient) Predict(ctx context.Context, req *domain.PredictionRequest) (*domain.RemoteOutcome, error) {
	result, err := r.predictBreaker.Execute(func() (interface{}, error) {
		return r.client.Predict(ctx, req)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState {
			return nil, fmt.Errorf("scoring service unavailable (circuit breaker open)")
		}
		return nil, err
	}
	return result.(*domain.RemoteOutcome), nil
}

// PredictWithReport calls the report endpoint through the circuit
// breaker.
func (r *ResilientClient) PredictWithReport(ctx context.Context, req *domain.PredictionRequest) (*domain.ReportReference, error) {
	result, err := r.reportBreaker.Execute(func() (interface{}, error) {
		return r.client.PredictWithReport(ctx, req)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState {
			return nil, fmt.Errorf("report service unavailable (circuit breaker open)")
		}
		return nil, err
	}
	return result.(*domain.ReportReference), nil
}

// BreakerCounts returns call statistics for both circuit breakers.
func (r *ResilientClient) BreakerCounts() map[string]gobreaker.Counts {
	return map[string]gobreaker.Counts{
		"predict": r.predictBreaker.Counts(),
		"report":  r.reportBreaker.Counts(),
	}
}

// BreakerStates returns the current state of both circuit breakers.
func (r *ResilientClient) BreakerStates() map[string]gobreaker.State {
	return map[string]gobreaker.State{
		"predict": r.predictBreaker.State(),
		"report":  r.reportBreaker.State(),
	}
}
