package inference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"snpscope/console/models"
	"snpscope/console/models/cerrors"
	"snpscope/console/models/constants/classification"
)

func testConfig(backendUrl string) *models.Config {
	cfg := &models.Config{}
	cfg.Console.BackendUrl = backendUrl
	cfg.Console.RequestTimeoutSeconds = 5
	cfg.Console.InferenceConcurrency = 2
	return cfg
}

var brca1Request = &models.VariantRequest{
	Gene:          "BRCA1",
	CdnaChange:    "c.181T>G",
	ProteinChange: "p.Cys61Gly",
}

const brca1ResponseBody = `{
	"variant_id": "BRCA1:c.181T>G",
	"classification": "Pathogenic",
	"probability": 0.82,
	"confidence_interval": [0.72, 0.92],
	"shap_explanation": {
		"base_value": 0.5,
		"summary_text": "The model prediction was heavily influenced by conservation_score, which increased the pathogenic probability.",
		"features": [
			{"feature": "conservation_score", "importance": 0.31},
			{"feature": "gnomad_maf", "importance": -0.12},
			{"feature": "grantham_dist", "importance": 0.05}
		]
	},
	"structural_impact": "High likelihood of destabilizing protein core.",
	"warning_flags": []
}`

func newBackendStub(t *testing.T, statusCode int, responseBody string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/v1/predict-single", r.URL.Path)

		// the wire body is snake_case
		requestBody, _ := io.ReadAll(r.Body)
		var fields map[string]interface{}
		assert.NoError(t, json.Unmarshal(requestBody, &fields))
		assert.Equal(t, "BRCA1", fields["gene"])
		assert.Equal(t, "c.181T>G", fields["cdna_change"])
		assert.Equal(t, "p.Cys61Gly", fields["protein_change"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, responseBody)
	}))
}

func TestInferAcceptsWellFormedResponse(t *testing.T) {
	ts := newBackendStub(t, http.StatusOK, brca1ResponseBody)
	defer ts.Close()

	iz := NewInferenceService(testConfig(ts.URL))
	result, err := iz.Infer(context.Background(), brca1Request)

	assert.NoError(t, err)
	assert.Equal(t, "BRCA1:c.181T>G", result.VariantId)
	assert.Equal(t, classification.Pathogenic, result.Classification)
	assert.Equal(t, 0.82, result.Probability)
	assert.True(t, result.ConfidenceInterval.Lower <= result.Probability)
	assert.True(t, result.Probability <= result.ConfidenceInterval.Upper)

	// backend feature ranking is preserved verbatim
	assert.Equal(t, "conservation_score", result.ShapExplanation.Features[0].Feature)
	assert.Equal(t, "gnomad_maf", result.ShapExplanation.Features[1].Feature)
	assert.Equal(t, "grantham_dist", result.ShapExplanation.Features[2].Feature)

	assert.Equal(t, "High likelihood of destabilizing protein core.", result.StructuralImpact)
	assert.Empty(t, result.WarningFlags)
}

func TestInferSurfacesTransportErrorOnServerFailure(t *testing.T) {
	ts := newBackendStub(t, http.StatusInternalServerError, `{"detail": "model unavailable"}`)
	defer ts.Close()

	iz := NewInferenceService(testConfig(ts.URL))
	result, err := iz.Infer(context.Background(), brca1Request)

	// a failed inference is not a zero-probability prediction
	assert.Nil(t, result)

	var transportErr *cerrors.TransportError
	assert.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusInternalServerError, transportErr.StatusCode)
}

func TestInferSurfacesTransportErrorOnConnectionFailure(t *testing.T) {
	ts := newBackendStub(t, http.StatusOK, brca1ResponseBody)
	ts.Close() // nothing listening

	iz := NewInferenceService(testConfig(ts.URL))
	result, err := iz.Infer(context.Background(), brca1Request)

	assert.Nil(t, result)

	var transportErr *cerrors.TransportError
	assert.True(t, errors.As(err, &transportErr))
}

func TestInferRejectsMalformedResponses(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", `<html>busy</html>`},
		{"missing classification", `{"variant_id": "x", "probability": 0.5, "confidence_interval": [0.4, 0.6]}`},
		{"missing interval", `{"variant_id": "x", "classification": "Benign", "probability": 0.5}`},
		{"unknown classification", `{"variant_id": "x", "classification": "Uncertain", "probability": 0.5, "confidence_interval": [0.4, 0.6]}`},
		{"probability above one", `{"variant_id": "x", "classification": "Pathogenic", "probability": 1.2, "confidence_interval": [0.9, 1.0]}`},
		{"inverted interval", `{"variant_id": "x", "classification": "Pathogenic", "probability": 0.8, "confidence_interval": [0.9, 0.7]}`},
		{"probability outside interval", `{"variant_id": "x", "classification": "Pathogenic", "probability": 0.95, "confidence_interval": [0.7, 0.9]}`},
		{"interval not a pair", `{"variant_id": "x", "classification": "Pathogenic", "probability": 0.8, "confidence_interval": [0.8]}`},
		{"empty variant id", `{"variant_id": "", "classification": "Benign", "probability": 0.1, "confidence_interval": [0.0, 0.2]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newBackendStub(t, http.StatusOK, tc.body)
			defer ts.Close()

			iz := NewInferenceService(testConfig(ts.URL))
			result, err := iz.Infer(context.Background(), brca1Request)

			// never clamped into validity
			assert.Nil(t, result)

			var malformedErr *cerrors.MalformedResponseError
			assert.True(t, errors.As(err, &malformedErr), "got %v", err)
		})
	}
}

func TestInferSetScoresAllVariantsInOrder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestBody, _ := io.ReadAll(r.Body)
		var fields map[string]interface{}
		json.Unmarshal(requestBody, &fields)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"variant_id": "%s:%s",
			"classification": "Benign",
			"probability": 0.1,
			"confidence_interval": [0.05, 0.2]
		}`, fields["gene"], fields["cdna_change"])
	}))
	defer ts.Close()

	iz := NewInferenceService(testConfig(ts.URL))
	requests := []*models.VariantRequest{
		{Gene: "BRCA1", CdnaChange: "c.181T>G", ProteinChange: "p.Cys61Gly"},
		{Gene: "TP53", CdnaChange: "c.742C>T", ProteinChange: "p.Arg248Trp"},
		{Gene: "PTEN", CdnaChange: "c.388C>T", ProteinChange: "p.Arg130Ter"},
	}

	results, err := iz.InferSet(context.Background(), requests)

	assert.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, "BRCA1:c.181T>G", results[0].VariantId)
	assert.Equal(t, "TP53:c.742C>T", results[1].VariantId)
	assert.Equal(t, "PTEN:c.388C>T", results[2].VariantId)
}

func TestInferSetFailsAsAWhole(t *testing.T) {
	ts := newBackendStub(t, http.StatusBadGateway, `{}`)
	defer ts.Close()

	iz := NewInferenceService(testConfig(ts.URL))
	results, err := iz.InferSet(context.Background(), []*models.VariantRequest{brca1Request})

	assert.Nil(t, results)
	assert.Error(t, err)
}
