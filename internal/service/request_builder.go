package service

import (
	"strconv"
	"strings"

	"github.com/gurmatsinghsour/SweatHogChatBot/internal/domain"
)

// Per-field defaults substituted when a profile value is absent or
// fails conversion. The scoring model requires every feature, so the
// mapping from profile to request is total.
const (
	defaultAge            = "[30-40)"
	defaultGender         = domain.GenderFemale
	defaultTimeInHospital = 3
	defaultMedications    = 5
	defaultLabProcedures  = 10
	defaultProcedures     = 1
	defaultDiagnoses      = 2
	defaultInpatient      = 0
	defaultOutpatient     = 1
	defaultEmergency      = 0

	// diagnosisCode is the primary diagnosis attached to every
	// request; the form does not collect it.
	diagnosisCode = "250.00"

	// defaultCategoryCode is used by every categorical code table for
	// absent or unrecognized labels.
	defaultCategoryCode = 1
)

// Code tables mapping human labels to the scoring model's categorical
// codes.
var (
	admissionTypeCodes = map[string]int{
		"Emergency": 1,
		"Urgent":    2,
		"Elective":  3,
	}

	dischargeDispositionCodes = map[string]int{
		"Home":                     1,
		"Skilled Nursing Facility": 2,
		"Rehabilitation":           3,
		"Long-term Care":           4,
		"Home Health Care":         5,
	}

	admissionSourceCodes = map[string]int{
		"Emergency Room":         1,
		"Physician Referral":     2,
		"Clinic Referral":        3,
		"Transfer from Hospital": 4,
	}
)

// parseOrDefault converts a raw slot value to a number, substituting
// the per-field default on absence or parse failure. Every numeric
// field goes through this one function.
func parseOrDefault(raw string, def float64) float64 {
	if strings.TrimSpace(raw) == "" {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return def
	}
	return v
}

// codeOrDefault looks a label up in a categorical code table.
func codeOrDefault(table map[string]int, label string) int {
	if code, ok := table[label]; ok {
		return code
	}
	return defaultCategoryCode
}

// BuildRequest derives the scoring payload from a profile. It is a
// pure function: the same profile always produces an identical
// request, and the profile is never modified.
func BuildRequest(p domain.MedicalProfile) *domain.PredictionRequest {
	return &domain.PredictionRequest{
		Age:                  p.GetOr(domain.SlotAge, defaultAge),
		Gender:               p.GetOr(domain.SlotGender, defaultGender),
		TimeInHospital:       parseOrDefault(p[domain.SlotTimeInHospital], defaultTimeInHospital),
		AdmissionType:        codeOrDefault(admissionTypeCodes, p[domain.SlotAdmissionType]),
		DischargeDisposition: codeOrDefault(dischargeDispositionCodes, p[domain.SlotDischargeDisposition]),
		AdmissionSource:      codeOrDefault(admissionSourceCodes, p[domain.SlotAdmissionSource]),
		NumMedications:       parseOrDefault(p[domain.SlotNumMedications], defaultMedications),
		NumLabProcedures:     parseOrDefault(p[domain.SlotNumLabProcedures], defaultLabProcedures),
		NumProcedures:        parseOrDefault(p[domain.SlotNumProcedures], defaultProcedures),
		NumberDiagnoses:      parseOrDefault(p[domain.SlotNumberDiagnoses], defaultDiagnoses),
		NumberInpatient:      parseOrDefault(p[domain.SlotNumberInpatient], defaultInpatient),
		NumberOutpatient:     parseOrDefault(p[domain.SlotNumberOutpatient], defaultOutpatient),
		NumberEmergency:      parseOrDefault(p[domain.SlotNumberEmergency], defaultEmergency),
		DiabetesMed:          p.GetOr(domain.SlotDiabetesMed, "No"),
		Change:               p.GetOr(domain.SlotChange, "No"),
		A1CResult:            p.GetOr(domain.SlotA1CResult, "None"),
		MaxGluSerum:          p.GetOr(domain.SlotMaxGluSerum, "None"),
		Insulin:              p.GetOr(domain.SlotInsulin, "No"),
		Metformin:            p.GetOr(domain.SlotMetformin, "No"),
		Diagnosis1:           diagnosisCode,
	}
}
