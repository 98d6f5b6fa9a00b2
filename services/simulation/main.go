package simulation

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"snpscope/console/models"
	jobState "snpscope/console/models/constants/job-state"
	"snpscope/console/models/dtos"
	"snpscope/console/utils"
)

/*
	Stands in for the real inference backend: deterministic mock
	scoring plus an in-memory batch job registry whose jobs advance
	through Queued -> Processing -> Completed on a background timer.
	Useful for local development and for exercising the console's
	job lifecycle end to end.
*/

type (
	SimulationService struct {
		Config *models.Config

		JobRegistry    map[string]*dtos.JobStatusDto
		JobRegistryMux sync.RWMutex
	}
)

func NewSimulationService(cfg *models.Config) *SimulationService {
	return &SimulationService{
		Config:      cfg,
		JobRegistry: map[string]*dtos.JobStatusDto{},
	}
}

// -- mock scoring

var featureNames = []string{
	"conservation_score",
	"blosum62",
	"grantham_dist",
	"gnomad_maf",
	"domain_annotation",
	"structural_proxy",
}

// Score produces a reproducible mock prediction for one variant,
// seeded from the gene and protein change so that repeated identical
// requests score identically.
func (s *SimulationService) Score(gene string, cdnaChange string, proteinChange string) *dtos.PredictionResponseDto {
	var seed int64
	for _, r := range gene + proteinChange {
		seed += int64(r)
	}
	rng := rand.New(rand.NewSource(seed))

	conservation := rng.Float64()
	blosum := float64(rng.Intn(15) - 4)
	grantham := float64(rng.Intn(210) + 5)
	gnomadMaf := rng.Float64() * rng.Float64() * 0.1 // right-skewed, most are small
	domainAnnotation := float64(rng.Intn(2))
	structuralProxy := rng.Float64()

	// crude linear stand-in for the real model
	probability := utils.ClampFloat(
		0.45*conservation+0.25*structuralProxy+0.15*(grantham/215.0)-0.1*(blosum/11.0)-2.0*gnomadMaf+0.2*domainAnnotation*rng.Float64(),
		0.01, 0.99)

	classLabel := "Benign"
	if probability >= 0.5 {
		classLabel = "Pathogenic"
	}

	importances := []dtos.FeatureImportanceDto{
		{Feature: featureNames[0], Importance: 0.45 * (conservation - 0.5)},
		{Feature: featureNames[1], Importance: -0.1 * (blosum / 11.0)},
		{Feature: featureNames[2], Importance: 0.15 * ((grantham / 215.0) - 0.5)},
		{Feature: featureNames[3], Importance: -2.0 * gnomadMaf},
		{Feature: featureNames[4], Importance: 0.1 * (domainAnnotation - 0.5)},
		{Feature: featureNames[5], Importance: 0.25 * (structuralProxy - 0.5)},
	}
	sort.SliceStable(importances, func(i, j int) bool {
		return abs(importances[i].Importance) > abs(importances[j].Importance)
	})
	topFeatures := importances[:5]

	direction := "increased"
	if topFeatures[0].Importance <= 0 {
		direction = "decreased"
	}
	summaryText := fmt.Sprintf("The model prediction was heavily influenced by %s, which %s the pathogenic probability.", topFeatures[0].Feature, direction)

	responseDto := &dtos.PredictionResponseDto{
		VariantId:          fmt.Sprintf("%s:%s", gene, cdnaChange),
		Classification:     classLabel,
		Probability:        probability,
		ConfidenceInterval: []float64{utils.ClampFloat(probability-0.1, 0, 1), utils.ClampFloat(probability+0.1, 0, 1)},
		ShapExplanation: &dtos.ShapExplanationDto{
			BaseValue:   0.5,
			SummaryText: summaryText,
			Features:    topFeatures,
		},
		WarningFlags: []string{},
	}
	if structuralProxy > 0.8 {
		responseDto.StructuralImpact = "High likelihood of destabilizing protein core."
	}
	if domainAnnotation == 0 {
		responseDto.WarningFlags = append(responseDto.WarningFlags, "No explicit active domain mapped.")
	}

	return responseDto
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// -- batch jobs

// reference cohort used to fabricate batch results
var cohort = []models.VariantRequest{
	{Gene: "BRCA1", CdnaChange: "c.181T>G", ProteinChange: "p.Cys61Gly"},
	{Gene: "TP53", CdnaChange: "c.742C>T", ProteinChange: "p.Arg248Trp"},
	{Gene: "APOE", CdnaChange: "c.388T>C", ProteinChange: "p.Cys130Arg"},
	{Gene: "PTEN", CdnaChange: "c.388C>T", ProteinChange: "p.Arg130Ter"},
	{Gene: "MYC", CdnaChange: "c.135C>A", ProteinChange: "p.Ser45Arg"},
}

// StartBatch registers a new job and spins up a goroutine that walks
// it through the lifecycle, stepping progress until completion.
func (s *SimulationService) StartBatch(recordCount int) string {
	if recordCount < 1 {
		recordCount = len(cohort)
	}
	if recordCount > s.Config.Simulator.MaxBatchRecords {
		recordCount = s.Config.Simulator.MaxBatchRecords
	}

	jobId := uuid.New().String()
	s.JobRegistryMux.Lock()
	s.JobRegistry[jobId] = &dtos.JobStatusDto{
		JobId:    jobId,
		Status:   string(jobState.Queued),
		Progress: 0,
	}
	s.JobRegistryMux.Unlock()

	fmt.Printf("[%s] - Queueing a new batch scoring job %s (%d records)\n", time.Now(), jobId, recordCount)

	go s.runJob(jobId, recordCount)

	return jobId
}

func (s *SimulationService) runJob(jobId string, recordCount int) {
	step := time.Duration(s.Config.Simulator.ProgressStepMillis) * time.Millisecond

	for progress := 10; progress <= 100; progress += 10 {
		time.Sleep(step)

		s.JobRegistryMux.Lock()
		job, present := s.JobRegistry[jobId]
		if !present {
			s.JobRegistryMux.Unlock()
			return
		}
		job.Progress = progress

		if s.Config.Simulator.FailBatches && progress >= 50 {
			job.Status = string(jobState.Failed)
			job.Message = "simulated processing failure"
			s.JobRegistryMux.Unlock()
			return
		}

		if progress < 100 {
			job.Status = string(jobState.Processing)
		} else {
			job.Status = string(jobState.Completed)
			job.Results = s.fabricateResults(recordCount)
			fmt.Printf("[%s] - Batch scoring job %s completed\n", time.Now(), jobId)
		}
		s.JobRegistryMux.Unlock()
	}
}

func (s *SimulationService) fabricateResults(recordCount int) []dtos.PredictionResponseDto {
	results := make([]dtos.PredictionResponseDto, 0, recordCount)
	for index := 0; index < recordCount; index++ {
		variant := cohort[index%len(cohort)]
		scored := s.Score(variant.Gene, variant.CdnaChange, variant.ProteinChange)
		if index >= len(cohort) {
			scored.VariantId = fmt.Sprintf("%s#%d", scored.VariantId, index/len(cohort)+1)
		}
		results = append(results, *scored)
	}
	return results
}

// Status reports the current observation for a job, or false when
// the handle is unknown
func (s *SimulationService) Status(jobId string) (*dtos.JobStatusDto, bool) {
	s.JobRegistryMux.RLock()
	defer s.JobRegistryMux.RUnlock()

	job, present := s.JobRegistry[jobId]
	if !present {
		return nil, false
	}

	snapshot := *job
	if job.Results != nil {
		snapshot.Results = make([]dtos.PredictionResponseDto, len(job.Results))
		copy(snapshot.Results, job.Results)
	}
	return &snapshot, true
}
