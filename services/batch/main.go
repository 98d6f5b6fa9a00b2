package batch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/Jeffail/gabs"
	"github.com/cenkalti/backoff"
	"github.com/go-co-op/gocron"
	"github.com/mitchellh/mapstructure"

	"snpscope/console/models"
	"snpscope/console/models/cerrors"
	"snpscope/console/models/constants"
	jobState "snpscope/console/models/constants/job-state"
	"snpscope/console/models/dtos"
	"snpscope/console/services/inference"
	"snpscope/console/utils"
)

const (
	predictBatchPath    = "/api/v1/predict-batch"
	batchStatusPathTmpl = "/api/v1/predict-batch/%s/status"
)

type (
	// BatchService owns the session's single batch job slot. It is
	// the only writer of the slot; everyone else reads snapshots
	// committed between observations.
	BatchService struct {
		Config *models.Config
		Client *http.Client

		jobMux     sync.RWMutex
		currentJob *models.BatchJob

		scheduler      *gocron.Scheduler
		observeBackoff *backoff.ExponentialBackOff
		holdUntil      time.Time
	}
)

func NewBatchService(cfg *models.Config) *BatchService {
	observeBackoff := backoff.NewExponentialBackOff()
	// the poll loop never gives up on its own; terminal states or a
	// discard are the only ways out
	observeBackoff.MaxElapsedTime = 0

	return &BatchService{
		Config: cfg,
		Client: &http.Client{
			Timeout: time.Duration(cfg.Console.RequestTimeoutSeconds) * time.Second,
		},
		observeBackoff: observeBackoff,
	}
}

// Submit uploads one VCF and occupies the job slot. A job already in
// flight is rejected with JobInFlightError, an oversized file with
// FileTooLargeError before any transport is attempted.
func (b *BatchService) Submit(ctx context.Context, filename string, content io.Reader, size int64) (*models.BatchJob, error) {
	b.jobMux.Lock()
	if b.currentJob != nil && jobState.IsActive(b.currentJob.State) {
		inFlightId := b.currentJob.JobId
		b.jobMux.Unlock()
		return nil, &cerrors.JobInFlightError{JobId: inFlightId}
	}
	if size > b.Config.Console.MaxUploadBytes {
		b.jobMux.Unlock()
		return nil, &cerrors.FileTooLargeError{Filename: filename, Size: size, Limit: b.Config.Console.MaxUploadBytes}
	}

	// a new submission supersedes any completed/failed predecessor
	b.stopObserverLocked()
	newJob := &models.BatchJob{
		Filename:  filename,
		State:     jobState.Submitting,
		CreatedAt: time.Now().String(),
		UpdatedAt: time.Now().String(),
	}
	b.currentJob = newJob
	b.jobMux.Unlock()

	fmt.Printf("[%s] - Submitting batch file %s (%d bytes)\n", time.Now(), filename, size)

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)
	part, formErr := writer.CreateFormFile("file", filename)
	if formErr == nil {
		_, formErr = io.Copy(part, content)
	}
	writer.Close()
	if formErr != nil {
		transportErr := &cerrors.TransportError{Op: "predict-batch", Err: formErr}
		b.failSubmission(newJob, transportErr.Error())
		return nil, transportErr
	}

	url := b.Config.Console.BackendUrl + predictBatchPath
	responseBody, statusCode, responseErr := utils.PostAndReturnBody(ctx, b.Client, url, writer.FormDataContentType(), &requestBody)
	if responseErr != nil {
		transportErr := &cerrors.TransportError{Op: "predict-batch", Err: responseErr}
		b.failSubmission(newJob, transportErr.Error())
		return nil, transportErr
	}
	if !utils.Is2xx(statusCode) {
		transportErr := &cerrors.TransportError{Op: "predict-batch", StatusCode: statusCode}
		b.failSubmission(newJob, transportErr.Error())
		return nil, transportErr
	}

	container, parseErr := gabs.ParseJSON(responseBody)
	if parseErr != nil || !container.ExistsP("job_id") {
		malformedErr := &cerrors.MalformedResponseError{Op: "predict-batch", Detail: "submission ack carries no job_id"}
		log.Printf("predict-batch: %v\n", malformedErr)
		b.failSubmission(newJob, malformedErr.Error())
		return nil, malformedErr
	}
	jobId, _ := container.Path("job_id").Data().(string)

	b.jobMux.Lock()
	if b.currentJob != newJob {
		// slot was discarded while the upload was in flight
		b.jobMux.Unlock()
		return nil, &cerrors.BatchError{JobId: jobId, Message: "job discarded during submission"}
	}
	newJob.JobId = jobId
	newJob.State = jobState.Queued
	newJob.UpdatedAt = time.Now().String()
	snapshot := copyJob(newJob)
	b.startObserverLocked(jobId)
	b.jobMux.Unlock()

	fmt.Printf("[%s] - Batch job %s queued\n", time.Now(), jobId)
	return snapshot, nil
}

// failSubmission records a terminal Failed outcome for a submission
// that never obtained a job handle
func (b *BatchService) failSubmission(job *models.BatchJob, message string) {
	b.jobMux.Lock()
	defer b.jobMux.Unlock()
	if b.currentJob != job {
		return
	}
	job.State = jobState.Failed
	job.Message = message
	job.UpdatedAt = time.Now().String()
}

// -- status observation

// ApplyObservation applies the transition rules to one observed
// (status, progress) pair and reports whether it was applied.
// Observations for a stale jobId, for a terminal job, or carrying
// older information than already recorded are discarded.
func (b *BatchService) ApplyObservation(observation *dtos.JobStatusDto) bool {
	b.jobMux.Lock()
	defer b.jobMux.Unlock()

	job := b.currentJob
	if job == nil || job.JobId == "" || observation.JobId != job.JobId {
		return false
	}
	if jobState.IsTerminal(job.State) {
		// terminal states are sticky
		return false
	}

	observedState := jobState.CastToJobState(observation.Status)
	if jobState.Rank(observedState) < jobState.Rank(job.State) {
		return false
	}
	if jobState.Rank(observedState) == jobState.Rank(job.State) && observation.Progress < job.Progress {
		// out-of-order response; displayed progress never regresses
		return false
	}

	job.State = observedState
	job.Progress = utils.MaxInt(job.Progress, observation.Progress)
	job.UpdatedAt = time.Now().String()

	switch observedState {
	case jobState.Completed:
		results, materializeErr := materializeResults(observation.Results)
		if materializeErr != nil {
			// a malformed results payload is never accepted partially
			log.Printf("batch-status: %v\n", materializeErr)
			job.State = jobState.Failed
			job.Message = materializeErr.Error()
			job.Results = nil
		} else {
			job.Results = results
		}
		b.stopObserverLocked()
	case jobState.Failed:
		job.Message = observation.Message
		job.Results = nil
		b.stopObserverLocked()
	}

	return true
}

func materializeResults(resultDtos []dtos.PredictionResponseDto) ([]models.PredictionResult, error) {
	if len(resultDtos) == 0 {
		return nil, &cerrors.MalformedResponseError{Op: "batch-status", Detail: "completed without a results payload"}
	}

	results := make([]models.PredictionResult, 0, len(resultDtos))
	for index := range resultDtos {
		result, decodeErr := inference.DecodePredictionDto("batch-status", &resultDtos[index])
		if decodeErr != nil {
			return nil, decodeErr
		}
		results = append(results, *result)
	}
	return results, nil
}

// observeOnce performs one scheduled poll of the status endpoint. A
// transport failure or unreadable body yields no new information and
// only pushes the next attempt out; it never changes job state.
func (b *BatchService) observeOnce(jobId string) {
	b.jobMux.RLock()
	held := time.Now().Before(b.holdUntil)
	b.jobMux.RUnlock()
	if held {
		return
	}

	url := b.Config.Console.BackendUrl + fmt.Sprintf(batchStatusPathTmpl, jobId)
	responseBody, statusCode, responseErr := utils.GetAndReturnBody(context.Background(), b.Client, url)
	if responseErr != nil || !utils.Is2xx(statusCode) {
		if b.Config.Debug {
			fmt.Printf("[%s] - Status observation for %s yielded nothing new (status %d, err %v)\n", time.Now(), jobId, statusCode, responseErr)
		}
		b.deferNextObservation()
		return
	}

	observation, decodeErr := decodeObservation(responseBody)
	if decodeErr != nil {
		log.Printf("batch-status: %v\n", decodeErr)
		b.deferNextObservation()
		return
	}

	b.jobMux.Lock()
	b.observeBackoff.Reset()
	b.holdUntil = time.Time{}
	b.jobMux.Unlock()

	b.ApplyObservation(observation)
}

func decodeObservation(responseBody []byte) (*dtos.JobStatusDto, error) {
	container, parseErr := gabs.ParseJSON(responseBody)
	if parseErr != nil {
		return nil, &cerrors.MalformedResponseError{Op: "batch-status", Detail: "body is not valid JSON"}
	}
	for _, field := range []string{"job_id", "status", "progress"} {
		if !container.ExistsP(field) {
			return nil, &cerrors.MalformedResponseError{Op: "batch-status", Detail: fmt.Sprintf("missing required field '%s'", field)}
		}
	}

	var observation dtos.JobStatusDto
	decoder, _ := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true, // progress arrives as a JSON number
		Result:           &observation,
	})
	if decodeErr := decoder.Decode(container.Data()); decodeErr != nil {
		return nil, &cerrors.MalformedResponseError{Op: "batch-status", Detail: decodeErr.Error()}
	}
	return &observation, nil
}

func (b *BatchService) deferNextObservation() {
	b.jobMux.Lock()
	defer b.jobMux.Unlock()
	b.holdUntil = time.Now().Add(b.observeBackoff.NextBackOff())
}

// -- poll loop lifecycle (callers hold jobMux)

func (b *BatchService) startObserverLocked(jobId string) {
	s := gocron.NewScheduler(time.UTC)
	s.Every(b.Config.Console.PollIntervalSeconds).Seconds().Do(func() {
		b.observeOnce(jobId)
	})
	s.StartAsync()
	b.scheduler = s
	b.observeBackoff.Reset()
	b.holdUntil = time.Time{}
}

func (b *BatchService) stopObserverLocked() {
	if b.scheduler != nil {
		b.scheduler.Stop()
		b.scheduler = nil
	}
}

// -- read side

// Job returns a snapshot of the current job, or nil when Idle
func (b *BatchService) Job() *models.BatchJob {
	b.jobMux.RLock()
	defer b.jobMux.RUnlock()
	if b.currentJob == nil {
		return nil
	}
	return copyJob(b.currentJob)
}

func (b *BatchService) State() constants.JobState {
	b.jobMux.RLock()
	defer b.jobMux.RUnlock()
	if b.currentJob == nil {
		return jobState.Idle
	}
	return b.currentJob.State
}

// Err surfaces the terminal failure of the current job, if any
func (b *BatchService) Err() error {
	b.jobMux.RLock()
	defer b.jobMux.RUnlock()
	if b.currentJob == nil || b.currentJob.State != jobState.Failed {
		return nil
	}
	return &cerrors.BatchError{JobId: b.currentJob.JobId, Message: b.currentJob.Message}
}

// Discard resets the slot to Idle. In-flight observation activity
// for the previous jobId becomes a no-op.
func (b *BatchService) Discard() {
	b.jobMux.Lock()
	defer b.jobMux.Unlock()
	b.stopObserverLocked()
	b.currentJob = nil
	b.observeBackoff.Reset()
	b.holdUntil = time.Time{}
}

func copyJob(job *models.BatchJob) *models.BatchJob {
	snapshot := *job
	if job.Results != nil {
		snapshot.Results = make([]models.PredictionResult, len(job.Results))
		copy(snapshot.Results, job.Results)
	}
	return &snapshot
}
