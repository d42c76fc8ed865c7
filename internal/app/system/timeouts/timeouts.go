// Package timeouts provides centralized timeout values for handler and
// CLI operations.
//
// These are used with context.WithTimeout around database calls. Using
// shared values keeps deadlines consistent and easy to adjust.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads and simple writes
//   - Medium: list queries, search, multi-step reads
//   - Batch: bulk jobs such as the language backfill
package timeouts

import "time"

const (
	// Ping is the timeout for health checks.
	Ping = 2 * time.Second
	// Short is the timeout for single-document operations.
	Short = 5 * time.Second
	// Medium is the timeout for list and search queries.
	Medium = 10 * time.Second
	// Batch is the timeout for one page of a bulk job.
	Batch = 60 * time.Second
)
