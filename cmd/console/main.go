package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"

	"snpscope/console/models"
	"snpscope/console/models/constants/classification"
	jobState "snpscope/console/models/constants/job-state"
	"snpscope/console/services/batch"
	"snpscope/console/services/inference"
	"snpscope/console/services/sanitation"
	"snpscope/console/worksheets"
)

func main() {
	// Gather environment variables
	var cfg models.Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	var (
		gene          = flag.String("gene", "", "gene symbol (e.g. BRCA1)")
		cdnaChange    = flag.String("cdna", "", "cDNA change (e.g. c.181T>G)")
		proteinChange = flag.String("protein", "", "protein change (e.g. p.Cys61Gly)")
		worksheetPath = flag.String("worksheet", "", "YAML worksheet of variants to score")
		vcfPath       = flag.String("vcf", "", "VCF file to submit as a batch job")
	)
	flag.Parse()

	fmt.Printf("Using : \n"+

		"\tBackend Url : %s \n"+
		"\tRequest Timeout : %ds \n"+
		"\tPoll Interval : %ds \n"+
		"\tUpload Cap : %d bytes\n\n",

		cfg.Console.BackendUrl,
		cfg.Console.RequestTimeoutSeconds,
		cfg.Console.PollIntervalSeconds,
		cfg.Console.MaxUploadBytes)
	// --

	switch {
	case *vcfPath != "":
		runBatch(&cfg, *vcfPath)
	case *worksheetPath != "":
		runWorksheet(&cfg, *worksheetPath)
	case *gene != "" || *cdnaChange != "" || *proteinChange != "":
		runSingle(&cfg, *gene, *cdnaChange, *proteinChange)
	default:
		fmt.Println("Nothing to do : provide -gene/-cdna/-protein, -worksheet, or -vcf")
		flag.Usage()
		os.Exit(2)
	}
}

func runSingle(cfg *models.Config, gene string, cdnaChange string, proteinChange string) {
	variant, normalizeErr := sanitation.NormalizeVariant(gene, cdnaChange, proteinChange)
	if normalizeErr != nil {
		fmt.Printf("Rejected : %v\n", normalizeErr)
		os.Exit(1)
	}

	iz := inference.NewInferenceService(cfg)
	result, inferErr := iz.Infer(context.Background(), variant)
	if inferErr != nil {
		fmt.Printf("Inference failed : %v\n", inferErr)
		os.Exit(1)
	}

	printResult(result)
}

func runWorksheet(cfg *models.Config, worksheetPath string) {
	variants, loadErr := worksheets.LoadWorksheet(worksheetPath)
	if loadErr != nil {
		fmt.Printf("Rejected : %v\n", loadErr)
		os.Exit(1)
	}

	iz := inference.NewInferenceService(cfg)
	results, inferErr := iz.InferSet(context.Background(), variants)
	if inferErr != nil {
		fmt.Printf("Inference failed : %v\n", inferErr)
		os.Exit(1)
	}

	for _, result := range results {
		printResult(result)
	}
}

func runBatch(cfg *models.Config, vcfPath string) {
	file, openErr := os.Open(vcfPath)
	if openErr != nil {
		fmt.Printf("Rejected : %v\n", openErr)
		os.Exit(1)
	}
	defer file.Close()

	fileInfo, statErr := file.Stat()
	if statErr != nil {
		fmt.Printf("Rejected : %v\n", statErr)
		os.Exit(1)
	}

	bz := batch.NewBatchService(cfg)
	job, submitErr := bz.Submit(context.Background(), fileInfo.Name(), file, fileInfo.Size())
	if submitErr != nil {
		fmt.Printf("Submission failed : %v\n", submitErr)
		os.Exit(1)
	}
	fmt.Printf("Job %s : %s\n", job.JobId, job.State)

	// watch the slot until the backend settles the job
	lastProgress := -1
	for {
		time.Sleep(500 * time.Millisecond)

		snapshot := bz.Job()
		if snapshot == nil {
			break
		}
		if snapshot.Progress != lastProgress {
			fmt.Printf("Job %s : %s (%d%%)\n", snapshot.JobId, snapshot.State, snapshot.Progress)
			lastProgress = snapshot.Progress
		}
		if jobState.IsTerminal(snapshot.State) {
			break
		}
	}

	if batchErr := bz.Err(); batchErr != nil {
		fmt.Printf("Batch failed : %v\n", batchErr)
		os.Exit(1)
	}

	snapshot := bz.Job()
	if snapshot != nil {
		for index := range snapshot.Results {
			printResult(&snapshot.Results[index])
		}
	}
	if overview := bz.ResultsOverview(); overview != nil {
		fmt.Printf("\nOverview : %v\n", overview)
	}
}

func printResult(result *models.PredictionResult) {
	fmt.Printf("\n%s\n", result.VariantId)
	fmt.Printf("\tClassification : %s\n", classification.DisplayLabel(result.Classification, result.Probability))
	fmt.Printf("\tProbability : %.2f [%.2f, %.2f]\n",
		result.Probability, result.ConfidenceInterval.Lower, result.ConfidenceInterval.Upper)
	if result.ShapExplanation.SummaryText != "" {
		fmt.Printf("\t%s\n", result.ShapExplanation.SummaryText)
	}
	for _, feature := range result.ShapExplanation.Features {
		fmt.Printf("\t\t%s : %+.3f\n", feature.Feature, feature.Importance)
	}
	if result.StructuralImpact != "" {
		fmt.Printf("\tStructural : %s\n", result.StructuralImpact)
	}
	for _, warning := range result.WarningFlags {
		fmt.Printf("\tWarning : %s\n", warning)
	}
}
