package synchronizer

import "time"

// Config holds synchronizer queue settings.
type Config struct {
	QueueSize    int
	MaxRetries   int
	RetryBackoff time.Duration
}

// projectSyncJob is one queued full-project sync request.
type projectSyncJob struct {
	ID        string // job id, uuid
	ProjectID int64
}
