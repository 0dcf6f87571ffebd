package jobs

import (
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDashboardWarmup refreshes the cached dashboard snapshot.
	TaskDashboardWarmup = "dashboard:warmup"
	// TaskGrantIntegrityScan reports grants that reference unlinked
	// category/action pairs.
	TaskGrantIntegrityScan = "acl:integrity_scan"
)

// NewDashboardWarmupTask constructs a warmup task. The task carries no
// payload; the snapshot is always global.
func NewDashboardWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskDashboardWarmup, nil)
}

// NewGrantIntegrityScanTask constructs an integrity scan task.
func NewGrantIntegrityScanTask() *asynq.Task {
	return asynq.NewTask(TaskGrantIntegrityScan, nil)
}
