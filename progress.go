package webgrab

// Outcome is the result of one attempted retrieval. Outcomes are
// independent: a failed retrieval never affects its siblings.
type Outcome struct {
	// URL is the source URL of the resource.
	URL string `json:"url"`

	// LocalPath is where the resource was written. Empty when the
	// retrieval did not succeed.
	LocalPath string `json:"localPath,omitempty"`

	// Err describes why the retrieval failed, nil on success.
	Err error `json:"-"`

	// Succeeded reports whether the resource was written to LocalPath.
	Succeeded bool `json:"succeeded"`
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	// ProgressStarted is emitted once before any retrieval begins.
	ProgressStarted ProgressType = iota
	// ProgressCompleted is emitted for each successful retrieval.
	ProgressCompleted
	// ProgressFailed is emitted for each failed retrieval.
	ProgressFailed
	// ProgressSkipped is emitted for each job not started because of
	// cancellation. Skipped jobs still count toward Completed.
	ProgressSkipped
	// ProgressFinished is emitted once after every job has resolved.
	ProgressFinished
)

// ProgressEvent reports progress during a retrieval run. Completed is the
// number of jobs resolved so far; it increases monotonically and reaches
// Total exactly once every job has resolved.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressFunc is a callback for reporting retrieval progress. It is
// invoked from the pipeline's collector goroutine; implementations must not
// block workers.
type ProgressFunc func(event ProgressEvent)
