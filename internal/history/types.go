// Package history provides persistent storage for completed risk
// assessments so operators can review what the bot told users.
package history

import (
	"context"
	"io"
	"time"

	"github.com/gurmatsinghsour/SweatHogChatBot/internal/domain"
)

// Store defines the interface for assessment history storage.
type Store interface {
	// Record stores one completed assessment.
	Record(ctx context.Context, a *domain.Assessment) error

	// List returns assessments with pagination, newest first.
	List(ctx context.Context, limit, offset int) ([]*domain.Assessment, error)

	// Count returns the total number of stored assessments.
	Count(ctx context.Context) (int64, error)

	// ExportJSON exports all assessments to a JSON writer.
	ExportJSON(ctx context.Context, writer io.Writer) error

	// Close closes the store and releases resources.
	Close() error
}

// Export is the JSON export envelope.
type Export struct {
	Version     string               `json:"version"`
	ExportedAt  time.Time            `json:"exported_at"`
	Count       int                  `json:"count"`
	Assessments []*domain.Assessment `json:"assessments"`
}
