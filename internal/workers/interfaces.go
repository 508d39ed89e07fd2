// Package workers provides the background jobs keeping the local library in
// step with the server: the periodic sync trigger and the failed-job retry
// sweep. It defines the Worker interface and a Workers aggregate that
// starts and stops them as a unit.
package workers

import "context"

// Worker is the interface implemented by every background job.
//
// Start launches the worker's goroutine and returns immediately; the
// goroutine exits when ctx is cancelled or Stop is called. Stop blocks
// until the goroutine has fully exited and is safe to call when the worker
// is not running.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
