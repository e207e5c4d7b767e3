package domain

// RiskLevel is a three-level readmission risk label.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
)

// String implements fmt.Stringer.
func (r RiskLevel) String() string {
	return string(r)
}

// RemoteOutcome is the scoring service's answer to a prediction
// request: a confidence score in [0,1], free-text remedy, and a status
// string.
type RemoteOutcome struct {
	ConfidenceScore float64 `json:"confidence_score"`
	Remedy          string  `json:"remedy"`
	Status          string  `json:"status"`
}

// RiskLevel buckets the confidence score. Boundaries are inclusive on
// the higher bucket: 0.3 is MODERATE and 0.7 is HIGH.
func (o *RemoteOutcome) RiskLevel() RiskLevel {
	switch {
	case o.ConfidenceScore < 0.3:
		return RiskLow
	case o.ConfidenceScore < 0.7:
		return RiskModerate
	default:
		return RiskHigh
	}
}

// LocalOutcome is the fallback analyzer's answer: a count of risk
// factors found by local heuristics. Its thresholds are an independent
// scale and are not calibrated against remote confidence scores.
type LocalOutcome struct {
	RiskFactors int `json:"risk_factors"`
}

// RiskLevel buckets the factor count: at most one factor is LOW,
// exactly two is MODERATE, three or more is HIGH.
func (o *LocalOutcome) RiskLevel() RiskLevel {
	switch {
	case o.RiskFactors <= 1:
		return RiskLow
	case o.RiskFactors == 2:
		return RiskModerate
	default:
		return RiskHigh
	}
}

// PredictionOutcome is the result of one prediction: exactly one of
// Remote or Local is set. Remote failures surface here as a Local
// variant rather than as an error, so callers handle both branches
// explicitly instead of relying on intercepted exceptions.
type PredictionOutcome struct {
	Remote *RemoteOutcome
	Local  *LocalOutcome
}

// FromRemote wraps a scoring service response.
func FromRemote(r *RemoteOutcome) PredictionOutcome {
	return PredictionOutcome{Remote: r}
}

// FromLocal wraps a fallback analysis result.
func FromLocal(l *LocalOutcome) PredictionOutcome {
	return PredictionOutcome{Local: l}
}

// IsRemote reports whether the outcome came from the scoring service.
func (o PredictionOutcome) IsRemote() bool {
	return o.Remote != nil
}

// RiskLevel returns the label of whichever variant is set.
func (o PredictionOutcome) RiskLevel() RiskLevel {
	if o.Remote != nil {
		return o.Remote.RiskLevel()
	}
	if o.Local != nil {
		return o.Local.RiskLevel()
	}
	return RiskLow
}
