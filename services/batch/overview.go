package batch

import (
	. "github.com/ahmetb/go-linq"

	"snpscope/console/models"
	"snpscope/console/models/constants/classification"
	jobState "snpscope/console/models/constants/job-state"
)

// ResultsOverview summarizes a completed job's result set for
// display. Returns nil unless the current job is Completed.
func (b *BatchService) ResultsOverview() map[string]interface{} {
	b.jobMux.RLock()
	defer b.jobMux.RUnlock()

	if b.currentJob == nil || b.currentJob.State != jobState.Completed {
		return nil
	}
	results := b.currentJob.Results

	pathogenicCount := From(results).CountWithT(func(r models.PredictionResult) bool {
		return r.Classification == classification.Pathogenic
	})
	benignCount := From(results).CountWithT(func(r models.PredictionResult) bool {
		return r.Classification == classification.Benign
	})
	uncertainCount := From(results).CountWithT(func(r models.PredictionResult) bool {
		return classification.DisplayLabel(r.Classification, r.Probability) == "Benign (VUS)"
	})
	flaggedCount := From(results).CountWithT(func(r models.PredictionResult) bool {
		return len(r.WarningFlags) > 0
	})

	meanProbability := 0.0
	if len(results) > 0 {
		meanProbability = From(results).SelectT(func(r models.PredictionResult) float64 {
			return r.Probability
		}).Average()
	}

	return map[string]interface{}{
		"jobId":           b.currentJob.JobId,
		"total":           len(results),
		"pathogenic":      pathogenicCount,
		"benign":          benignCount,
		"uncertainBand":   uncertainCount,
		"withWarnings":    flaggedCount,
		"meanProbability": meanProbability,
	}
}
