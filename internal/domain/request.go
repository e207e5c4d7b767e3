package domain

// PredictionRequest is the fixed-schema payload the scoring service
// expects. It is derived from a MedicalProfile by the request builder,
// created fresh per prediction, and never mutated or persisted.
type PredictionRequest struct {
	Age                  string  `json:"age"`
	Gender               string  `json:"gender"`
	TimeInHospital       float64 `json:"time_in_hospital"`
	AdmissionType        int     `json:"admission_type"`
	DischargeDisposition int     `json:"discharge_disposition"`
	AdmissionSource      int     `json:"admission_source"`
	NumMedications       float64 `json:"num_medications"`
	NumLabProcedures     float64 `json:"num_lab_procedures"`
	NumProcedures        float64 `json:"num_procedures"`
	NumberDiagnoses      float64 `json:"number_diagnoses"`
	NumberInpatient      float64 `json:"number_inpatient"`
	NumberOutpatient     float64 `json:"number_outpatient"`
	NumberEmergency      float64 `json:"number_emergency"`
	DiabetesMed          string  `json:"diabetesMed"`
	Change               string  `json:"change"`
	A1CResult            string  `json:"A1Cresult"`
	MaxGluSerum          string  `json:"max_glu_serum"`
	Insulin              string  `json:"insulin"`
	Metformin            string  `json:"metformin"`
	Diagnosis1           string  `json:"diagnosis_1"`
}

// ReportReference identifies a generated PDF report on the scoring
// service. The file stays retrievable for a service-defined retention
// window (24 hours); expiry is not tracked on this side.
type ReportReference struct {
	Filename    string `json:"report_filename"`
	DownloadURL string `json:"download_url"`
}
