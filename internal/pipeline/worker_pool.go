package pipeline

import (
	"context"
	"runtime"
	"sync"

	"go-dental-forensics/pkg/models"
)

// WorkerPool runs independent jobs across a fixed set of goroutines.
type WorkerPool struct {
	workers  int
	jobQueue chan func()
	once     sync.Once
}

// NewWorkerPool creates a pool with the given worker count; zero or negative
// means one worker per CPU.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &WorkerPool{
		workers:  workers,
		jobQueue: make(chan func(), workers*2),
	}
}

// Start launches the workers.
func (wp *WorkerPool) Start() {
	wp.once.Do(func() {
		for i := 0; i < wp.workers; i++ {
			go wp.worker()
		}
	})
}

func (wp *WorkerPool) worker() {
	for job := range wp.jobQueue {
		job()
	}
}

// Submit queues a job.
func (wp *WorkerPool) Submit(job func()) {
	wp.jobQueue <- job
}

// Close shuts the pool down once all queued jobs are drained.
func (wp *WorkerPool) Close() {
	close(wp.jobQueue)
}

// BatchItem is one image in a batch run.
type BatchItem struct {
	Data    []byte
	Options Options
}

// BatchResult pairs a batch item's index with its report or error.
type BatchResult struct {
	Index  int
	Report *models.ForensicReport
	Err    error
}

// RunBatch processes independent images across a worker pool. Stages within
// one image run in strict order; no ordering holds between images. Results
// are indexed by input position.
func (p *Pipeline) RunBatch(ctx context.Context, items []BatchItem, workers int) []BatchResult {
	results := make([]BatchResult, len(items))
	if len(items) == 0 {
		return results
	}

	pool := NewWorkerPool(workers)
	pool.Start()
	defer pool.Close()

	var wg sync.WaitGroup
	for i, item := range items {
		i, item := i, item
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			report, err := p.Run(ctx, item.Data, item.Options)
			results[i] = BatchResult{Index: i, Report: report, Err: err}
		})
	}
	wg.Wait()
	return results
}
