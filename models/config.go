package models

type Config struct {
	Debug bool `yaml:"debug" envconfig:"SNPSCOPE_DEBUG"`

	Console struct {
		BackendUrl            string `yaml:"backendUrl" envconfig:"SNPSCOPE_BACKEND_URL" default:"http://localhost:8000"`
		RequestTimeoutSeconds int    `yaml:"requestTimeoutSeconds" envconfig:"SNPSCOPE_REQUEST_TIMEOUT_SECONDS" default:"30"`
		PollIntervalSeconds   int    `yaml:"pollIntervalSeconds" envconfig:"SNPSCOPE_POLL_INTERVAL_SECONDS" default:"2"`
		MaxUploadBytes        int64  `yaml:"maxUploadBytes" envconfig:"SNPSCOPE_MAX_UPLOAD_BYTES" default:"10485760"`
		InferenceConcurrency  int    `yaml:"inferenceConcurrency" envconfig:"SNPSCOPE_INFERENCE_CONCURRENCY" default:"4"`
	} `yaml:"console"`

	Simulator struct {
		Port               string `yaml:"port" envconfig:"SNPSCOPE_SIMULATOR_PORT" default:"8000"`
		ProgressStepMillis int    `yaml:"progressStepMillis" envconfig:"SNPSCOPE_SIMULATOR_PROGRESS_STEP_MILLIS" default:"500"`
		MaxBatchRecords    int    `yaml:"maxBatchRecords" envconfig:"SNPSCOPE_SIMULATOR_MAX_BATCH_RECORDS" default:"500"`
		FailBatches        bool   `yaml:"failBatches" envconfig:"SNPSCOPE_SIMULATOR_FAIL_BATCHES"`
	} `yaml:"simulator"`
}
