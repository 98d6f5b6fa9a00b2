package simulator

import (
	"bufio"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo"
	echoMiddleware "github.com/labstack/echo/middleware"

	"snpscope/console/contexts"
	"snpscope/console/middleware"
	"snpscope/console/models"
	"snpscope/console/models/dtos"
	"snpscope/console/models/dtos/errors"
	"snpscope/console/services/simulation"
)

// NewServer wires the simulated inference backend: the same HTTP
// surface the real service exposes, backed by SimulationService.
func NewServer(cfg *models.Config, sim *simulation.SimulationService) *echo.Echo {
	e := echo.New()

	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST},
	}))

	// -- Override handlers with a custom console context
	//		to be able to provide the config and service singletons
	e.Use(func(h echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &contexts.ConsoleContext{
				Context:           c,
				Config:            cfg,
				SimulationService: sim,
			}
			return h(cc)
		}
	})

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"service": "snpscope-simulator",
			"message": "Welcome to the SNPscope inference simulator!",
		})
	})

	e.POST("/api/v1/predict-single", PredictSingle,
		// middleware
		middleware.MandateVariantRequestBody)
	e.POST("/api/v1/predict-batch", PredictBatch,
		// middleware
		middleware.MandateUploadFileAttribute)
	e.GET("/api/v1/predict-batch/:jobId/status", BatchStatus)
	e.GET("/api/v1/predict-batch/jobs", AllBatchJobs)

	return e
}

func PredictSingle(c echo.Context) error {
	fmt.Printf("[%s] - PredictSingle hit!\n", time.Now())
	cc := c.(*contexts.ConsoleContext)

	variant := cc.Variant
	responseDto := cc.SimulationService.Score(variant.Gene, variant.CdnaChange, variant.ProteinChange)

	return c.JSON(http.StatusOK, responseDto)
}

func PredictBatch(c echo.Context) error {
	fmt.Printf("[%s] - PredictBatch hit!\n", time.Now())
	cc := c.(*contexts.ConsoleContext)

	file, openErr := cc.UploadFile.Open()
	if openErr != nil {
		return c.JSON(http.StatusInternalServerError, errors.CreateSimpleInternalServerError("Failed to open uploaded file!"))
	}
	defer file.Close()

	// count vcf records (meta/header lines don't score)
	recordCount := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			recordCount++
		}
	}
	if scanErr := scanner.Err(); scanErr != nil {
		return c.JSON(http.StatusInternalServerError, errors.CreateSimpleInternalServerError(fmt.Sprintf("Failed to scan uploaded file : %s", scanErr)))
	}

	jobId := cc.SimulationService.StartBatch(recordCount)

	return c.JSON(http.StatusOK, dtos.BatchSubmissionResponseDto{
		Message: "Batch processing started.",
		JobId:   jobId,
	})
}

func BatchStatus(c echo.Context) error {
	cc := c.(*contexts.ConsoleContext)
	jobId := c.Param("jobId")

	observation, present := cc.SimulationService.Status(jobId)
	if !present {
		return c.JSON(http.StatusNotFound, errors.CreateSimpleNotFound(fmt.Sprintf("No batch job '%s'!", jobId)))
	}

	return c.JSON(http.StatusOK, observation)
}

func AllBatchJobs(c echo.Context) error {
	cc := c.(*contexts.ConsoleContext)

	sim := cc.SimulationService
	sim.JobRegistryMux.RLock()
	defer sim.JobRegistryMux.RUnlock()

	// transform the id-to-job map to an array
	m := make([]*dtos.JobStatusDto, 0, len(sim.JobRegistry))
	for _, job := range sim.JobRegistry {
		m = append(m, job)
	}
	return c.JSON(http.StatusOK, m)
}
