package parallel

import (
	"context"
	"errors"

	"github.com/gogpu/pixfilter"
	"github.com/gogpu/pixfilter/geom"
	"github.com/gogpu/pixfilter/surface"
)

// ErrClosed is the error of jobs that were not run because the pool was
// closed.
var ErrClosed = errors.New("parallel: pool closed")

// Job is one FilterBitmap invocation. The pool takes over the reference to
// Input. Jobs must not share surfaces.
type Job struct {
	Filters pixfilter.FilterList
	Input   *surface.Surface
	Src     geom.Rect
	Dest    geom.Rect
	Options []pixfilter.Option
}

// Result is the outcome of the job at the same index.
type Result struct {
	Output *surface.Surface
	Err    error
}

// Run executes jobs on the pool and returns one Result per job, in order.
// Jobs that have not started when ctx is done are skipped with ctx.Err()
// and their input is released.
func (p *WorkerPool) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	ran := make([]bool, len(jobs))
	work := make([]func(), len(jobs))
	for i := range jobs {
		work[i] = func() {
			ran[i] = true
			j := &jobs[i]
			if err := ctx.Err(); err != nil {
				j.Input.DecRef()
				results[i].Err = err
				return
			}
			pixfilter.Logger().Debug("parallel: job", "index", i, "filters", len(j.Filters), "dest", j.Dest)
			results[i].Output, results[i].Err = pixfilter.Run(j.Filters, j.Input, j.Src, j.Dest, j.Options...)
		}
	}
	p.ExecuteAll(work)

	for i := range jobs {
		if !ran[i] {
			jobs[i].Input.DecRef()
			results[i].Err = ErrClosed
		}
	}
	return results
}
