package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gurmatsinghsour/SweatHogChatBot/internal/domain"
)

// ValidationResult is the outcome of validating one raw field value.
// Value holds the canonical form, or "" when the input was rejected;
// Message is the single piece of user feedback every validation emits.
type ValidationResult struct {
	Value   string `json:"value"`
	Message string `json:"message"`
}

// Accepted reports whether a canonical value was produced.
func (r ValidationResult) Accepted() bool {
	return r.Value != ""
}

// Alias sets for enum slots. Matching is an exact membership test on
// the trimmed, lowercased input - never a substring or fuzzy match.
var (
	maleAliases = map[string]bool{
		"male": true, "m": true, "man": true, "boy": true, "guy": true, "gentleman": true,
	}
	femaleAliases = map[string]bool{
		"female": true, "f": true, "woman": true, "girl": true, "lady": true,
	}
	yesAliases = map[string]bool{
		"yes": true, "y": true, "true": true, "1": true,
	}
	noAliases = map[string]bool{
		"no": true, "n": true, "false": true, "0": true,
	}
)

// yesNoSlots are the medication and treatment flags that normalize to
// Yes/No.
var yesNoSlots = map[string]bool{
	domain.SlotDiabetesMed: true,
	domain.SlotChange:      true,
	domain.SlotInsulin:     true,
	domain.SlotMetformin:   true,
}

// enumSlots are lab-result slots with a small fixed value set. The
// canonical spelling is the map value.
var enumSlots = map[string]map[string]string{
	domain.SlotA1CResult: {
		"none": "None", "norm": "Norm", ">7": ">7", ">8": ">8",
	},
	domain.SlotMaxGluSerum: {
		"none": "None", "norm": "Norm", ">200": ">200", ">300": ">300",
	},
}

// labelSlots are categorical slots whose human labels feed the request
// builder's code tables. Matching is case-insensitive on the full
// label; the canonical spelling is the map value.
var labelSlots = map[string]map[string]string{
	domain.SlotAdmissionType: {
		"emergency": "Emergency", "urgent": "Urgent", "elective": "Elective",
	},
	domain.SlotDischargeDisposition: {
		"home":                     "Home",
		"skilled nursing facility": "Skilled Nursing Facility",
		"rehabilitation":           "Rehabilitation",
		"long-term care":           "Long-term Care",
		"home health care":         "Home Health Care",
	},
	domain.SlotAdmissionSource: {
		"emergency room":         "Emergency Room",
		"physician referral":     "Physician Referral",
		"clinic referral":        "Clinic Referral",
		"transfer from hospital": "Transfer from Hospital",
	},
}

// countSlots are the numeric slots. They must parse as a non-negative
// number; the canonical form is the trimmed input.
var countSlots = map[string]bool{
	domain.SlotTimeInHospital:   true,
	domain.SlotNumMedications:   true,
	domain.SlotNumLabProcedures: true,
	domain.SlotNumProcedures:    true,
	domain.SlotNumberDiagnoses:  true,
	domain.SlotNumberInpatient:  true,
	domain.SlotNumberOutpatient: true,
	domain.SlotNumberEmergency:  true,
}

// Validator normalizes raw form input one field at a time. Stateless
// per call: canonical values or explicit absence go back to the
// caller, never raw user text.
type Validator struct {
	logger  *logrus.Logger
	chooser Chooser
}

// NewValidator creates a field validator.
func NewValidator(logger *logrus.Logger, chooser Chooser) *Validator {
	return &Validator{logger: logger, chooser: chooser}
}

// Validate dispatches on the slot name and normalizes the raw value.
// Every call returns exactly one feedback message and either a
// canonical value or an empty (absent) one.
func (v *Validator) Validate(slot, raw string) ValidationResult {
	var res ValidationResult
	switch {
	case slot == domain.SlotAge:
		res = v.validateAge(raw)
	case slot == domain.SlotGender:
		res = v.validateGender(raw)
	case yesNoSlots[slot]:
		res = v.validateYesNo(raw)
	case enumSlots[slot] != nil:
		res = v.validateEnum(slot, raw)
	case labelSlots[slot] != nil:
		res = v.validateLabel(slot, raw)
	case countSlots[slot]:
		res = v.validateCount(slot, raw)
	default:
		res = v.validateFreeText(raw)
	}

	v.logger.WithFields(logrus.Fields{
		"slot":     slot,
		"accepted": res.Accepted(),
	}).Debug("Field validated")

	return res
}

// validateAge parses an integer age and maps it to a decade bracket.
// Brackets are half-open with the lower bound inclusive; ages of 100
// and above share the centenarian label.
func (v *Validator) validateAge(raw string) ValidationResult {
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return ValidationResult{Message: v.chooser.Pick(numberHelpResponses)}
	}

	switch {
	case age < 0:
		return ValidationResult{Message: v.chooser.Pick(negativeAgeResponses)}
	case age > 120:
		return ValidationResult{Message: v.chooser.Pick(superhumanAgeResponses)}
	case age >= 100:
		return ValidationResult{
			Value:   domain.AgeBracketCentenarian,
			Message: fmt.Sprintf("Wow, %d years young! %s", age, v.chooser.Pick(centenarianResponses)),
		}
	}

	bracket := ageBracket(age)
	encouragement := v.chooser.Pick(encouragementFor(age))
	return ValidationResult{
		Value:   bracket,
		Message: fmt.Sprintf("Perfect! You're %d years old, which puts you in the %s age bracket. %s", age, bracket, encouragement),
	}
}

// ageBracket returns the decade bucket for an age in [0,100).
func ageBracket(age int) string {
	decade := age / 10
	return fmt.Sprintf("[%d-%d)", decade*10, decade*10+10)
}

// validateGender matches the input against the male and female alias
// sets.
func (v *Validator) validateGender(raw string) ValidationResult {
	normalized := strings.ToLower(strings.TrimSpace(raw))

	switch {
	case maleAliases[normalized]:
		return ValidationResult{Value: domain.GenderMale, Message: v.chooser.Pick(genderConfirmations[domain.GenderMale])}
	case femaleAliases[normalized]:
		return ValidationResult{Value: domain.GenderFemale, Message: v.chooser.Pick(genderConfirmations[domain.GenderFemale])}
	default:
		return ValidationResult{Message: v.chooser.Pick(genderHelpResponses)}
	}
}

// validateYesNo normalizes medication and treatment flags.
func (v *Validator) validateYesNo(raw string) ValidationResult {
	normalized := strings.ToLower(strings.TrimSpace(raw))

	switch {
	case yesAliases[normalized]:
		return ValidationResult{Value: domain.AnswerYes, Message: v.chooser.Pick(yesConfirmations)}
	case noAliases[normalized]:
		return ValidationResult{Value: domain.AnswerNo, Message: v.chooser.Pick(noConfirmations)}
	default:
		return ValidationResult{Message: v.chooser.Pick(yesNoHelpResponses)}
	}
}

// validateEnum matches lab-result slots against their fixed value set.
func (v *Validator) validateEnum(slot, raw string) ValidationResult {
	set := enumSlots[slot]
	if canonical, ok := set[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return ValidationResult{
			Value:   canonical,
			Message: fmt.Sprintf("Recorded %s. Thanks!", canonical),
		}
	}

	options := enumOptions(set)
	return ValidationResult{
		Message: fmt.Sprintf("I didn't recognize that result. Please answer one of: %s.", options),
	}
}

// validateLabel matches categorical slots against their label tables.
func (v *Validator) validateLabel(slot, raw string) ValidationResult {
	table := labelSlots[slot]
	if canonical, ok := table[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return ValidationResult{
			Value:   canonical,
			Message: fmt.Sprintf("Got it - %s. Moving on!", canonical),
		}
	}

	return ValidationResult{
		Message: fmt.Sprintf("I didn't catch that. Please choose one of: %s.", enumOptions(table)),
	}
}

// validateCount accepts non-negative numbers for the visit and
// procedure counters.
func (v *Validator) validateCount(slot, raw string) ValidationResult {
	trimmed := strings.TrimSpace(raw)
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return ValidationResult{Message: "I need a number here - for example 0, 2, or 14. How many?"}
	}
	if n < 0 {
		return ValidationResult{Message: "That can't be negative. Please give me a count of zero or more."}
	}
	return ValidationResult{
		Value:   trimmed,
		Message: fmt.Sprintf("Recorded %s. Thanks for the detail!", trimmed),
	}
}

// validateFreeText covers the remaining passthrough slots (race).
// Anything non-empty is accepted as-is after trimming.
func (v *Validator) validateFreeText(raw string) ValidationResult {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ValidationResult{Message: "I didn't catch that - could you repeat it?"}
	}
	return ValidationResult{Value: trimmed, Message: "Noted, thank you!"}
}

// enumOptions renders a value set's canonical members for feedback
// text, in a stable order.
func enumOptions(set map[string]string) string {
	seen := map[string]bool{}
	var opts []string
	for _, canonical := range set {
		if !seen[canonical] {
			seen[canonical] = true
			opts = append(opts, canonical)
		}
	}
	sort.Strings(opts)
	return strings.Join(opts, ", ")
}
