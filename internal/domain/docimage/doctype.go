// Package docimage runs the two-stage document image pipeline: a Reader
// model extracts structured findings from photos of clinical documents, then
// an Interpreter model turns those findings into prose.
package docimage

import "fmt"

// DocType classifies the photographed document and selects the Reader's
// extraction profile.
type DocType string

const (
	TypeLabReport        DocType = "lab_report"
	TypePrescription     DocType = "prescription"
	TypeDischargeSummary DocType = "discharge_summary"
	TypeReferralLetter   DocType = "referral_letter"
	TypeImagingReport    DocType = "imaging_report"
	TypeVitalSignsChart  DocType = "vital_signs_chart"
	TypeECG              DocType = "ecg"
	TypeOther            DocType = "other"
)

// readerProfile tells the Reader what to look for and how to shape its JSON
// for one document type.
type readerProfile struct {
	focus string
	shape string
}

var readerProfiles = map[DocType]readerProfile{
	TypeLabReport: {
		focus: "laboratory results: every analyte with its value, unit, reference range and an abnormal flag where the report marks one; also the collection date and the laboratory name",
		shape: `{"results": [{"analyte": "", "value": "", "unit": "", "reference_range": "", "flag": ""}], "collected_at": "", "lab": ""}`,
	},
	TypePrescription: {
		focus: "prescribed medications: drug name, strength, dose, route, frequency and duration, plus prescriber and date",
		shape: `{"medications": [{"drug": "", "strength": "", "dose": "", "route": "", "frequency": "", "duration": ""}], "prescriber": "", "date": ""}`,
	},
	TypeDischargeSummary: {
		focus: "admission and discharge dates, discharge diagnoses, the hospital course, discharge medications and follow-up instructions",
		shape: `{"admitted": "", "discharged": "", "diagnoses": [""], "course": "", "medications": [""], "follow_up": ""}`,
	},
	TypeReferralLetter: {
		focus: "referring and receiving clinicians, the reason for referral, the clinical question asked, and relevant history mentioned",
		shape: `{"from": "", "to": "", "reason": "", "question": "", "history": ""}`,
	},
	TypeImagingReport: {
		focus: "the imaging modality and body region, technique, findings and the reporting radiologist's impression",
		shape: `{"modality": "", "region": "", "technique": "", "findings": "", "impression": ""}`,
	},
	TypeVitalSignsChart: {
		focus: "each charted observation set: timestamp, blood pressure, heart rate, respiratory rate, temperature, oxygen saturation and any early-warning score",
		shape: `{"observations": [{"time": "", "bp": "", "hr": "", "rr": "", "temp": "", "spo2": "", "score": ""}]}`,
	},
	TypeECG: {
		focus: "rate, rhythm, axis, intervals (PR, QRS, QTc), morphology abnormalities and the machine interpretation line if printed",
		shape: `{"rate": "", "rhythm": "", "axis": "", "intervals": {"pr": "", "qrs": "", "qtc": ""}, "abnormalities": [""], "machine_read": ""}`,
	},
	TypeOther: {
		focus: "whatever clinically relevant structured content the document carries: headings, named values, dates, medications, diagnoses",
		shape: `{"document_kind": "", "content": {}}`,
	},
}

// ParseDocType validates the caller-supplied type. Empty defaults to other;
// anything outside the taxonomy is rejected.
func ParseDocType(s string) (DocType, error) {
	if s == "" {
		return TypeOther, nil
	}
	d := DocType(s)
	if _, ok := readerProfiles[d]; !ok {
		return "", fmt.Errorf("unknown document type %q", s)
	}
	return d, nil
}
