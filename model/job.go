package model

const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

const (
	SyncKindCatalog = "catalog"
	SyncKindDaily   = "daily"
)

// SyncJob tracks one queued or finished sync run.
type SyncJob struct {
	ID         int    `json:"id"`
	Kind       string `json:"kind"`
	Status     string `json:"status"`
	Inserted   int    `json:"inserted"`
	Updated    int    `json:"updated"`
	Linked     int    `json:"linked"`
	Skipped    int    `json:"skipped"`
	Error      string `json:"error,omitempty"`
	CreatedAt  string `json:"created_at"`
	FinishedAt string `json:"finished_at,omitempty"`
}
