package models

import (
	"snpscope/console/models/constants"
)

// VariantRequest is the canonical descriptor of a single variant
// to be scored. All three notations are mandatory; no cross-field
// consistency is enforced client-side (the backend is authoritative).
type VariantRequest struct {
	Gene          string `json:"gene"`
	CdnaChange    string `json:"cdna_change"`
	ProteinChange string `json:"protein_change"`
}

type FeatureImportance struct {
	Feature     string  `json:"feature"`
	Importance  float64 `json:"importance"`
	Description string  `json:"description,omitempty"`
}

// ShapExplanation carries per-feature attributions as ranked by the
// backend (|importance| descending). The order is meaningful and is
// never re-sorted on this side.
type ShapExplanation struct {
	BaseValue   float64             `json:"base_value"`
	SummaryText string              `json:"summary_text"`
	Features    []FeatureImportance `json:"features"`
}

type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// PredictionResult is a scored variant as accepted from the backend.
// Classification is the backend's verdict and is never re-derived
// from Probability here.
type PredictionResult struct {
	VariantId          string                   `json:"variantId"`
	Classification     constants.Classification `json:"classification"`
	Probability        float64                  `json:"probability"`
	ConfidenceInterval ConfidenceInterval       `json:"confidenceInterval"`
	ShapExplanation    ShapExplanation          `json:"shapExplanation"`
	StructuralImpact   string                   `json:"structuralImpact,omitempty"`
	WarningFlags       []string                 `json:"warningFlags"`
}

// BatchJob is the session's read-only projection of one batch
// submission. The backend owns status/progress/results; the batch
// service is the only writer of this struct.
type BatchJob struct {
	JobId     string             `json:"jobId"`
	Filename  string             `json:"filename"`
	State     constants.JobState `json:"state"`
	Progress  int                `json:"progress"`
	Results   []PredictionResult `json:"results"`
	Message   string             `json:"message"`
	CreatedAt string             `json:"createdAt"`
	UpdatedAt string             `json:"updatedAt"`
}
