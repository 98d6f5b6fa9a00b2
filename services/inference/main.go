package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Jeffail/gabs"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/sync/errgroup"

	"snpscope/console/models"
	"snpscope/console/models/cerrors"
	"snpscope/console/models/constants/classification"
	"snpscope/console/models/dtos"
	"snpscope/console/utils"
)

const predictSinglePath = "/api/v1/predict-single"

type (
	InferenceService struct {
		Config *models.Config
		Client *http.Client
	}
)

func NewInferenceService(cfg *models.Config) *InferenceService {
	return &InferenceService{
		Config: cfg,
		Client: &http.Client{
			Timeout: time.Duration(cfg.Console.RequestTimeoutSeconds) * time.Second,
		},
	}
}

// Infer submits exactly one variant for scoring and returns the
// backend's verdict. No retry, no caching; every call is a fresh
// evaluation. A transport failure or non-2xx status surfaces as a
// TransportError, a structurally invalid payload as a
// MalformedResponseError; neither is ever coerced into a result.
func (i *InferenceService) Infer(ctx context.Context, request *models.VariantRequest) (*models.PredictionResult, error) {
	requestDto := dtos.SingleVariantRequestDto{
		Gene:          request.Gene,
		CdnaChange:    request.CdnaChange,
		ProteinChange: request.ProteinChange,
	}
	requestBody, _ := json.Marshal(requestDto)

	url := i.Config.Console.BackendUrl + predictSinglePath
	responseBody, statusCode, responseErr := utils.PostAndReturnBody(ctx, i.Client, url, "application/json", bytes.NewBuffer(requestBody))
	if responseErr != nil {
		return nil, &cerrors.TransportError{Op: "predict-single", Err: responseErr}
	}
	if !utils.Is2xx(statusCode) {
		return nil, &cerrors.TransportError{Op: "predict-single", StatusCode: statusCode}
	}

	container, parseErr := gabs.ParseJSON(responseBody)
	if parseErr != nil {
		return nil, &cerrors.MalformedResponseError{Op: "predict-single", Detail: "body is not valid JSON"}
	}

	return DecodePredictionContainer("predict-single", container)
}

// InferSet fans Infer out over a set of variants with bounded
// concurrency. Each variant still gets its own independent request;
// the first failure cancels the remainder.
func (i *InferenceService) InferSet(ctx context.Context, requests []*models.VariantRequest) ([]*models.PredictionResult, error) {
	results := make([]*models.PredictionResult, len(requests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(utils.MaxInt(i.Config.Console.InferenceConcurrency, 1))

	for index, request := range requests {
		index, request := index, request
		g.Go(func() error {
			result, err := i.Infer(gctx, request)
			if err != nil {
				return err
			}
			results[index] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// -- decoding & validation

var requiredPredictionFields = []string{"variant_id", "classification", "probability", "confidence_interval"}

// DecodePredictionContainer turns one parsed prediction payload into
// a validated PredictionResult. Shared between the single-variant
// client and the batch controller's result materialization.
func DecodePredictionContainer(op string, container *gabs.Container) (*models.PredictionResult, error) {
	for _, field := range requiredPredictionFields {
		if !container.ExistsP(field) {
			return nil, &cerrors.MalformedResponseError{Op: op, Detail: fmt.Sprintf("missing required field '%s'", field)}
		}
	}

	var responseDto dtos.PredictionResponseDto
	if decodeErr := mapstructure.Decode(container.Data(), &responseDto); decodeErr != nil {
		return nil, &cerrors.MalformedResponseError{Op: op, Detail: decodeErr.Error()}
	}

	return DecodePredictionDto(op, &responseDto)
}

// DecodePredictionDto validates one already-typed prediction payload
func DecodePredictionDto(op string, responseDto *dtos.PredictionResponseDto) (*models.PredictionResult, error) {
	malformed := func(detail string) error {
		return &cerrors.MalformedResponseError{Op: op, Detail: detail}
	}

	if responseDto.VariantId == "" {
		return nil, malformed("empty variant_id")
	}

	class := classification.CastToClassification(responseDto.Classification)
	if !classification.IsKnown(class) {
		return nil, malformed(fmt.Sprintf("unknown classification '%s'", responseDto.Classification))
	}

	probability := responseDto.Probability
	if probability < 0 || probability > 1 {
		return nil, malformed(fmt.Sprintf("probability %f out of [0,1]", probability))
	}

	if len(responseDto.ConfidenceInterval) != 2 {
		return nil, malformed("confidence_interval is not a [lower, upper] pair")
	}
	lower, upper := responseDto.ConfidenceInterval[0], responseDto.ConfidenceInterval[1]
	if lower < 0 || upper > 1 || lower > upper {
		return nil, malformed(fmt.Sprintf("invalid confidence interval [%f, %f]", lower, upper))
	}
	if probability < lower || probability > upper {
		return nil, malformed(fmt.Sprintf("probability %f outside confidence interval [%f, %f]", probability, lower, upper))
	}

	result := &models.PredictionResult{
		VariantId:          responseDto.VariantId,
		Classification:     class,
		Probability:        probability,
		ConfidenceInterval: models.ConfidenceInterval{Lower: lower, Upper: upper},
		StructuralImpact:   responseDto.StructuralImpact,
		WarningFlags:       responseDto.WarningFlags,
	}
	if result.WarningFlags == nil {
		result.WarningFlags = []string{}
	}

	if responseDto.ShapExplanation != nil {
		// preserve the backend's feature ranking as-is
		features := make([]models.FeatureImportance, 0, len(responseDto.ShapExplanation.Features))
		for _, featureDto := range responseDto.ShapExplanation.Features {
			features = append(features, models.FeatureImportance{
				Feature:     featureDto.Feature,
				Importance:  featureDto.Importance,
				Description: featureDto.Description,
			})
		}
		result.ShapExplanation = models.ShapExplanation{
			BaseValue:   responseDto.ShapExplanation.BaseValue,
			SummaryText: responseDto.ShapExplanation.SummaryText,
			Features:    features,
		}
	}

	return result, nil
}
