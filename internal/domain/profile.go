package domain

// Slot names for the medical intake form. The names match the scoring
// service's feature names so they double as wire keys.
const (
	SlotAge                  = "age"
	SlotGender               = "gender"
	SlotRace                 = "race"
	SlotTimeInHospital       = "time_in_hospital"
	SlotAdmissionType        = "admission_type_id"
	SlotDischargeDisposition = "discharge_disposition_id"
	SlotAdmissionSource      = "admission_source_id"
	SlotNumMedications       = "num_medications"
	SlotNumLabProcedures     = "num_lab_procedures"
	SlotNumProcedures        = "num_procedures"
	SlotNumberDiagnoses      = "number_diagnoses"
	SlotNumberInpatient      = "number_inpatient"
	SlotNumberOutpatient     = "number_outpatient"
	SlotNumberEmergency      = "number_emergency"
	SlotDiabetesMed          = "diabetesMed"
	SlotChange               = "change"
	SlotA1CResult            = "A1Cresult"
	SlotMaxGluSerum          = "max_glu_serum"
	SlotInsulin              = "insulin"
	SlotMetformin            = "metformin"
)

// FormSlots lists every slot the intake form collects, in the order
// the conversation asks for them.
var FormSlots = []string{
	SlotAge,
	SlotGender,
	SlotRace,
	SlotTimeInHospital,
	SlotAdmissionType,
	SlotDischargeDisposition,
	SlotAdmissionSource,
	SlotNumMedications,
	SlotNumLabProcedures,
	SlotNumProcedures,
	SlotNumberDiagnoses,
	SlotNumberInpatient,
	SlotNumberOutpatient,
	SlotNumberEmergency,
	SlotDiabetesMed,
	SlotChange,
	SlotA1CResult,
	SlotMaxGluSerum,
	SlotInsulin,
	SlotMetformin,
}

// Canonical values produced by the validator. Once a slot is filled it
// holds one of these (or a bracket/numeric label), never raw user text.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	AnswerYes    = "Yes"
	AnswerNo     = "No"
)

// AgeBracketCentenarian is the label for validated ages of 100 and
// above; every younger age lands in a half-open decade bracket.
const AgeBracketCentenarian = "[90-100)+"

// MedicalProfile maps slot names to their canonical validated values.
// A missing key means the slot is absent. Profiles are built
// incrementally as fields validate and read once when a prediction is
// requested.
type MedicalProfile map[string]string

// Get returns the canonical value for a slot and whether it is set.
func (p MedicalProfile) Get(slot string) (string, bool) {
	v, ok := p[slot]
	return v, ok
}

// GetOr returns the canonical value for a slot, or def when absent.
func (p MedicalProfile) GetOr(slot, def string) string {
	if v, ok := p[slot]; ok && v != "" {
		return v
	}
	return def
}

// Set stores a canonical value. Empty values are treated as absent and
// clear the slot instead of storing unvalidated emptiness.
func (p MedicalProfile) Set(slot, value string) {
	if value == "" {
		delete(p, slot)
		return
	}
	p[slot] = value
}

// FilledCount reports how many slots currently hold a value.
func (p MedicalProfile) FilledCount() int {
	n := 0
	for _, v := range p {
		if v != "" {
			n++
		}
	}
	return n
}

// Clone returns an independent copy so a prediction reads a stable
// snapshot while the form keeps collecting.
func (p MedicalProfile) Clone() MedicalProfile {
	out := make(MedicalProfile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
