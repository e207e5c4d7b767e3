package history

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurmatsinghsour/SweatHogChatBot/internal/domain"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "assessments.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func remoteAssessment(sessionID string, confidence float64) *domain.Assessment {
	return domain.NewAssessment(sessionID,
		domain.MedicalProfile{domain.SlotAge: "[50-60)"},
		domain.FromRemote(&domain.RemoteOutcome{ConfidenceScore: confidence}))
}

func TestSQLiteStore_RecordAndList(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	a := remoteAssessment("s1", 0.82)
	require.NoError(t, store.Record(ctx, a))
	assert.Greater(t, a.ID, int64(0))

	listed, err := store.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	got := listed[0]
	assert.Equal(t, "s1", got.SessionID)
	assert.Equal(t, domain.RiskHigh, got.RiskLevel)
	assert.Equal(t, domain.SourceRemote, got.Source)
	assert.Equal(t, 0.82, got.ConfidenceScore)
	assert.Equal(t, 1, got.FieldsProvided)
}

func TestSQLiteStore_RecordLocalOutcome(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	a := domain.NewAssessment("s2",
		domain.MedicalProfile{},
		domain.FromLocal(&domain.LocalOutcome{RiskFactors: 2}))
	require.NoError(t, store.Record(ctx, a))

	listed, err := store.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, domain.SourceLocal, listed[0].Source)
	assert.Equal(t, 2, listed[0].RiskFactors)
	assert.Equal(t, domain.RiskModerate, listed[0].RiskLevel)
	assert.Equal(t, 0.0, listed[0].ConfidenceScore)
}

func TestSQLiteStore_ListPagination(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		a := remoteAssessment("s1", 0.5)
		a.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.Record(ctx, a))
	}

	page, err := store.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	// Newest first.
	assert.True(t, page[0].CreatedAt.After(page[1].CreatedAt) || page[0].CreatedAt.Equal(page[1].CreatedAt))

	rest, err := store.List(ctx, 10, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 3)
}

func TestSQLiteStore_Count(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Record(ctx, remoteAssessment("s1", 0.4)))
	}

	count, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestSQLiteStore_ExportJSON(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, remoteAssessment("s1", 0.9)))
	require.NoError(t, store.Record(ctx, remoteAssessment("s2", 0.1)))

	var buf bytes.Buffer
	require.NoError(t, store.ExportJSON(ctx, &buf))

	var export Export
	require.NoError(t, json.Unmarshal(buf.Bytes(), &export))
	assert.Equal(t, "1.0", export.Version)
	assert.Equal(t, 2, export.Count)
	assert.Len(t, export.Assessments, 2)
	assert.False(t, export.ExportedAt.IsZero())
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "assessments.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, remoteAssessment("s1", 0.6)))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
