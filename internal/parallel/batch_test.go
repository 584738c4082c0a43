package parallel

import (
	"context"
	"errors"
	"testing"

	"github.com/gogpu/pixfilter"
	"github.com/gogpu/pixfilter/surface"
)

func newJob(argb uint32, filters pixfilter.FilterList) Job {
	s := surface.Alloc(6, 6, surface.FormatBGRA)
	s.Fill(argb)
	return Job{
		Filters: filters,
		Input:   s,
		Src:     s.Bounds(),
		Dest:    filters.FilteredObjectRect(s.Bounds()),
	}
}

func TestRunJobs(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	jobs := make([]Job, 12)
	for i := range jobs {
		jobs[i] = newJob(0xff000000|uint32(i), pixfilter.FilterList{
			pixfilter.NewBlurFilter(1, 3, 3),
			pixfilter.NewIdentityColorMatrix(),
		})
	}
	inputs := make([]*surface.Surface, len(jobs))
	for i := range jobs {
		inputs[i] = jobs[i].Input
	}

	results := pool.Run(context.Background(), jobs)
	if len(results) != len(jobs) {
		t.Fatalf("len(results) = %d", len(results))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("job %d: %v", i, r.Err)
		}
		if r.Output.Width() != 8 || r.Output.Height() != 8 {
			t.Errorf("job %d: size %dx%d", i, r.Output.Width(), r.Output.Height())
		}
		// Results stay in job order.
		if got := r.Output.Pixel(4, 4); got != 0xff000000|uint32(i) {
			t.Errorf("job %d: center = %#08x", i, got)
		}
		if !inputs[i].Released() {
			t.Errorf("job %d: input not released", i)
		}
		r.Output.DecRef()
	}
}

func TestRunCanceled(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []Job{newJob(0xffffffff, pixfilter.FilterList{pixfilter.NewInvertFilter()})}
	in := jobs[0].Input
	results := pool.Run(ctx, jobs)
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", results[0].Err)
	}
	if results[0].Output != nil {
		t.Error("canceled job produced output")
	}
	if !in.Released() {
		t.Error("canceled job leaked its input")
	}
}

func TestRunClosedPool(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	jobs := []Job{newJob(0xffffffff, pixfilter.FilterList{pixfilter.NewInvertFilter()})}
	in := jobs[0].Input
	results := pool.Run(context.Background(), jobs)
	if !errors.Is(results[0].Err, ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", results[0].Err)
	}
	if !in.Released() {
		t.Error("input leaked on a closed pool")
	}
}
