package worker

// CombinePayload parameterizes a dataset combine job. Empty fields fall
// back to the configured data directory and combined output path.
type CombinePayload struct {
	DataDir string `json:"data_dir,omitempty"`
	Output  string `json:"output,omitempty"`
}

// InsightsPrewarmPayload parameterizes an insight prewarm job. Force
// regenerates even when a cached result exists.
type InsightsPrewarmPayload struct {
	Force bool `json:"force,omitempty"`
}
