package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteOutcome_RiskLevel(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		want       RiskLevel
	}{
		{"Low score", 0.2, RiskLow},
		{"Zero score", 0.0, RiskLow},
		{"Mid score", 0.5, RiskModerate},
		{"High score", 0.9, RiskHigh},
		{"Lower boundary falls into higher bucket", 0.3, RiskModerate},
		{"Upper boundary falls into higher bucket", 0.7, RiskHigh},
		{"Just below lower boundary", 0.29999, RiskLow},
		{"Just below upper boundary", 0.69999, RiskModerate},
		{"Maximum", 1.0, RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &RemoteOutcome{ConfidenceScore: tt.confidence}
			if got := o.RiskLevel(); got != tt.want {
				t.Errorf("RiskLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLocalOutcome_RiskLevel(t *testing.T) {
	tests := []struct {
		factors int
		want    RiskLevel
	}{
		{0, RiskLow},
		{1, RiskLow},
		{2, RiskModerate},
		{3, RiskHigh},
		{4, RiskHigh},
	}

	for _, tt := range tests {
		o := &LocalOutcome{RiskFactors: tt.factors}
		if got := o.RiskLevel(); got != tt.want {
			t.Errorf("RiskLevel() with %d factors = %v, want %v", tt.factors, got, tt.want)
		}
	}
}

func TestPredictionOutcome_ExactlyOneVariant(t *testing.T) {
	remote := FromRemote(&RemoteOutcome{ConfidenceScore: 0.9})
	assert.True(t, remote.IsRemote())
	assert.Nil(t, remote.Local)
	assert.Equal(t, RiskHigh, remote.RiskLevel())

	local := FromLocal(&LocalOutcome{RiskFactors: 2})
	assert.False(t, local.IsRemote())
	assert.Nil(t, local.Remote)
	assert.Equal(t, RiskModerate, local.RiskLevel())
}

func TestMedicalProfile_SetAndClone(t *testing.T) {
	p := MedicalProfile{}
	p.Set(SlotGender, GenderMale)
	p.Set(SlotAge, "[40-50)")

	assert.Equal(t, 2, p.FilledCount())

	// Empty values clear the slot rather than storing emptiness.
	p.Set(SlotGender, "")
	assert.Equal(t, 1, p.FilledCount())
	_, ok := p.Get(SlotGender)
	assert.False(t, ok)

	clone := p.Clone()
	clone.Set(SlotAge, "[20-30)")
	assert.Equal(t, "[40-50)", p[SlotAge], "clone must not alias the original")
}

func TestScoringConfig_URLs(t *testing.T) {
	cfg := ScoringConfig{BaseURL: "http://localhost:8080/"}

	assert.Equal(t, "http://localhost:8080/predict", cfg.PredictURL())
	assert.Equal(t, "http://localhost:8080/predict_with_report", cfg.ReportURL())
	assert.Equal(t, "http://localhost:8080/download_report/report_1.pdf", cfg.DownloadURL("report_1.pdf"))
}

func TestNewAssessment(t *testing.T) {
	profile := MedicalProfile{SlotAge: "[40-50)", SlotGender: GenderMale}

	remote := NewAssessment("s-1", profile, FromRemote(&RemoteOutcome{ConfidenceScore: 0.8}))
	assert.Equal(t, SourceRemote, remote.Source)
	assert.Equal(t, RiskHigh, remote.RiskLevel)
	assert.Equal(t, 0.8, remote.ConfidenceScore)
	assert.Equal(t, 2, remote.FieldsProvided)

	local := NewAssessment("s-1", profile, FromLocal(&LocalOutcome{RiskFactors: 3}))
	assert.Equal(t, SourceLocal, local.Source)
	assert.Equal(t, 3, local.RiskFactors)
	assert.Equal(t, RiskHigh, local.RiskLevel)
}
