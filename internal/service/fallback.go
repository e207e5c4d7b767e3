package service

import (
	"strconv"
	"strings"

	"github.com/gurmatsinghsour/SweatHogChatBot/internal/domain"
)

// FallbackAnalyzer derives a readmission risk estimate from local
// heuristics when the scoring service cannot be reached. Pure and
// total: any profile, including an empty one, yields an outcome.
type FallbackAnalyzer struct{}

// NewFallbackAnalyzer creates a fallback analyzer.
func NewFallbackAnalyzer() *FallbackAnalyzer {
	return &FallbackAnalyzer{}
}

// Analyze counts risk factors: a long hospital stay, repeated
// inpatient visits, no diabetes medication, and an elevated A1C
// result. Slots that fail numeric parsing simply do not contribute.
func (a *FallbackAnalyzer) Analyze(p domain.MedicalProfile) *domain.LocalOutcome {
	factors := 0

	if v, err := parseCount(p[domain.SlotTimeInHospital]); err == nil && v > 7 {
		factors++
	}
	if v, err := parseCount(p[domain.SlotNumberInpatient]); err == nil && v > 2 {
		factors++
	}
	if p[domain.SlotDiabetesMed] == domain.AnswerNo {
		factors++
	}
	switch p[domain.SlotA1CResult] {
	case ">7", ">8":
		factors++
	}

	return &domain.LocalOutcome{RiskFactors: factors}
}

// parseCount parses a numeric slot value.
func parseCount(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}
