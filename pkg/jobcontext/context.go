package jobcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type KeyContext string

var (
	keyJobID        KeyContext = "job_id"
	keyJobType      KeyContext = "job_type"
	keyDataset      KeyContext = "dataset"
	keyJobStartTime KeyContext = "job_start_time"
)

// JobMetadata holds metadata for a background job execution
type JobMetadata struct {
	JobID     uuid.UUID
	JobType   string
	Dataset   string
	StartTime time.Time
}

// JobBegin initializes a job context with metadata and a timeout so stalled
// imports cannot hang forever.
func JobBegin(parentCtx context.Context, jobType string, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parentCtx, timeout)

	ctx = context.WithValue(ctx, keyJobID, uuid.New())
	ctx = context.WithValue(ctx, keyJobType, jobType)
	ctx = context.WithValue(ctx, keyJobStartTime, time.Now())

	return ctx, cancel
}

// WithDataset tags the context with the dataset currently being processed
func WithDataset(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, keyDataset, name)
}

// GetJobID extracts job ID from context
func GetJobID(ctx context.Context) (uuid.UUID, bool) {
	jobID, ok := ctx.Value(keyJobID).(uuid.UUID)
	return jobID, ok
}

// GetJobType extracts job type from context
func GetJobType(ctx context.Context) (string, bool) {
	jobType, ok := ctx.Value(keyJobType).(string)
	return jobType, ok
}

// GetDataset extracts the dataset name from context
func GetDataset(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(keyDataset).(string)
	return name, ok
}

// Elapsed returns time since the job started, zero if unknown
func Elapsed(ctx context.Context) time.Duration {
	start, ok := ctx.Value(keyJobStartTime).(time.Time)
	if !ok {
		return 0
	}
	return time.Since(start)
}

// Metadata collects all job metadata present on the context
func Metadata(ctx context.Context) JobMetadata {
	md := JobMetadata{}
	if id, ok := GetJobID(ctx); ok {
		md.JobID = id
	}
	if jt, ok := GetJobType(ctx); ok {
		md.JobType = jt
	}
	if ds, ok := GetDataset(ctx); ok {
		md.Dataset = ds
	}
	if start, ok := ctx.Value(keyJobStartTime).(time.Time); ok {
		md.StartTime = start
	}
	return md
}
