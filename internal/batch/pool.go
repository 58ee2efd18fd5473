// Package batch runs whole-catalog analyses through a bounded worker
// pool. Jobs expose submit/await/cancel and report partial failures as
// structured counts instead of best-effort logging.
package batch

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"lyriclens/internal/analysis"
	"lyriclens/internal/logging"
)

// ErrUnknownJob is returned by Await and Cancel for job IDs the pool has
// never seen.
var ErrUnknownJob = errors.New("unknown batch job")

// Analyzer is the narrow surface the pool needs from the pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, song analysis.Song) (*analysis.AnalysisResult, error)
}

// Progress is a point-in-time snapshot of a job.
type Progress struct {
	Total     int  `json:"total"`
	Done      int  `json:"done"`
	Failed    int  `json:"failed"`
	Cancelled bool `json:"cancelled"`
}

// Result is the final outcome of one job. Results holds the successful
// analyses in submission order; Failures records the per-song errors.
type Result struct {
	JobID    string
	Progress Progress
	Results  []*analysis.AnalysisResult
	Failures map[string]error // song title -> error
}

// Pool is a bounded-concurrency batch runner.
type Pool struct {
	analyzer Analyzer
	workers  int

	mu   sync.Mutex
	jobs map[string]*job
}

type job struct {
	id      string
	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.Mutex
	result  Result
	started bool
}

// NewPool builds a pool around an analyzer. workers <= 0 means 4.
func NewPool(analyzer Analyzer, workers int) *Pool {
	if workers <= 0 {
		workers = 4
	}
	return &Pool{
		analyzer: analyzer,
		workers:  workers,
		jobs:     make(map[string]*job),
	}
}

// Submit starts analyzing songs in the background and returns the job ID
// immediately.
func (p *Pool) Submit(ctx context.Context, songs []analysis.Song) string {
	jctx, cancel := context.WithCancel(ctx)
	j := &job{
		id:     uuid.NewString(),
		cancel: cancel,
		done:   make(chan struct{}),
		result: Result{
			Progress: Progress{Total: len(songs)},
			Failures: make(map[string]error),
		},
	}
	j.result.JobID = j.id
	j.result.Results = make([]*analysis.AnalysisResult, len(songs))

	p.mu.Lock()
	p.jobs[j.id] = j
	p.mu.Unlock()

	logging.Batch("job %s submitted: %d songs, %d workers", j.id, len(songs), p.workers)
	go p.run(jctx, j, songs)
	return j.id
}

func (p *Pool) run(ctx context.Context, j *job, songs []analysis.Song) {
	defer close(j.done)
	defer j.cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, song := range songs {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			res, err := p.analyzer.Analyze(gctx, song)
			j.mu.Lock()
			defer j.mu.Unlock()
			if err != nil {
				j.result.Progress.Failed++
				j.result.Failures[song.Title] = err
				logging.Batch("job %s: %q failed: %v", j.id, song.Title, err)
				return nil // a failed song never aborts the batch
			}
			j.result.Results[i] = res
			j.result.Progress.Done++
			return nil
		})
	}
	_ = g.Wait()

	j.mu.Lock()
	if ctx.Err() != nil {
		j.result.Progress.Cancelled = true
	}
	// Compact away slots for failed or cancelled songs.
	compacted := j.result.Results[:0]
	for _, r := range j.result.Results {
		if r != nil {
			compacted = append(compacted, r)
		}
	}
	j.result.Results = compacted
	prog := j.result.Progress
	j.mu.Unlock()

	logging.Batch("job %s finished: done=%d failed=%d cancelled=%v", j.id, prog.Done, prog.Failed, prog.Cancelled)
}

// Await blocks until the job finishes or ctx is cancelled, then returns
// the job's final result.
func (p *Pool) Await(ctx context.Context, jobID string) (*Result, error) {
	j, err := p.get(jobID)
	if err != nil {
		return nil, err
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-j.done:
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	out := j.result
	return &out, nil
}

// Progress reports a job's current counters without blocking.
func (p *Pool) Progress(jobID string) (Progress, error) {
	j, err := p.get(jobID)
	if err != nil {
		return Progress{}, err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result.Progress, nil
}

// Cancel stops a running job. Songs already analyzed stay in the result.
func (p *Pool) Cancel(jobID string) error {
	j, err := p.get(jobID)
	if err != nil {
		return err
	}
	j.cancel()
	return nil
}

func (p *Pool) get(jobID string) (*job, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	j, ok := p.jobs[jobID]
	if !ok {
		return nil, ErrUnknownJob
	}
	return j, nil
}
