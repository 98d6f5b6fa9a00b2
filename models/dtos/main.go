package dtos

import (
	"time"
)

// ---- wire shapes (snake_case per the backend API)

type SingleVariantRequestDto struct {
	Gene          string `json:"gene"`
	CdnaChange    string `json:"cdna_change"`
	ProteinChange string `json:"protein_change"`
}

type FeatureImportanceDto struct {
	Feature     string  `json:"feature" mapstructure:"feature"`
	Importance  float64 `json:"importance" mapstructure:"importance"`
	Description string  `json:"description,omitempty" mapstructure:"description"`
}

type ShapExplanationDto struct {
	BaseValue   float64                `json:"base_value" mapstructure:"base_value"`
	SummaryText string                 `json:"summary_text" mapstructure:"summary_text"`
	Features    []FeatureImportanceDto `json:"features" mapstructure:"features"`
}

type PredictionResponseDto struct {
	VariantId          string              `json:"variant_id" mapstructure:"variant_id"`
	Classification     string              `json:"classification" mapstructure:"classification"`
	Probability        float64             `json:"probability" mapstructure:"probability"`
	ConfidenceInterval []float64           `json:"confidence_interval" mapstructure:"confidence_interval"`
	ShapExplanation    *ShapExplanationDto `json:"shap_explanation,omitempty" mapstructure:"shap_explanation"`
	StructuralImpact   string              `json:"structural_impact,omitempty" mapstructure:"structural_impact"`
	WarningFlags       []string            `json:"warning_flags,omitempty" mapstructure:"warning_flags"`
}

type BatchSubmissionResponseDto struct {
	Message string `json:"message,omitempty" mapstructure:"message"`
	JobId   string `json:"job_id" mapstructure:"job_id"`
}

// JobStatusDto is one status observation for a batch job; Results is
// present (and required) only when Status is Completed.
type JobStatusDto struct {
	JobId    string                  `json:"job_id" mapstructure:"job_id"`
	Status   string                  `json:"status" mapstructure:"status"`
	Progress int                     `json:"progress" mapstructure:"progress"`
	Message  string                  `json:"message,omitempty" mapstructure:"message"`
	Results  []PredictionResponseDto `json:"results,omitempty" mapstructure:"results"`
}

// ---- general error response shape

type GeneralError struct {
	Message string `json:"message"`
}

type GeneralErrorResponseDto struct {
	Code      int            `json:"code"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Errors    []GeneralError `json:"errors"`
}
