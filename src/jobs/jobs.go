package jobs

import (
	"context"
	"time"

	"github.com/carafeforum/carafe/src/logging"
	"github.com/rs/zerolog"
)

// A Job tracks a background task that can be canceled from the outside and
// reports when its work is completely done. The job's own code should watch
// Canceled() and call Finish() when it wraps up.
type Job struct {
	Name   string
	Ctx    context.Context
	Logger zerolog.Logger
	cancel func()
	done   chan struct{}
}

func New(name string) *Job {
	logger := logging.With().Str("job", name).Logger()
	ctx, cancel := context.WithCancel(context.Background())
	ctx = logging.AttachLoggerToContext(&logger, ctx)
	return &Job{
		Name:   name,
		Ctx:    ctx,
		Logger: logger,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Signals the job to finish its work and shut down.
func (j *Job) Cancel() {
	j.cancel()
}

func (j *Job) Canceled() <-chan struct{} {
	return j.Ctx.Done()
}

// Marks the job as completely done. Called by the job's own code.
func (j *Job) Finish() *Job {
	close(j.done)
	return j
}

func (j *Job) Finished() <-chan struct{} {
	return j.done
}

// A utility for canceling and waiting on several jobs at once.
type Jobs []*Job

// Cancels all tracked jobs and waits for them to finish, up to the timeout.
// Returns the names of all jobs that did not finish in time.
func (jobs Jobs) CancelAndWait(timeout time.Duration) []string {
	for _, job := range jobs {
		job.Cancel()
	}

	allDone := make(chan struct{})
	go func() {
		for _, job := range jobs {
			<-job.Finished()
		}
		close(allDone)
	}()

	select {
	case <-time.After(timeout):
		return jobs.ListUnfinished()
	case <-allDone:
		return nil
	}
}

func (jobs Jobs) ListUnfinished() []string {
	unfinished := []string{}
	for _, job := range jobs {
		select {
		case <-job.Finished():
			continue
		default:
			unfinished = append(unfinished, job.Name)
		}
	}
	return unfinished
}
