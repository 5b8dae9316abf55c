package renderer

import (
	"context"
	"image"
	"math/rand"
	"runtime"
	"sync"
)

// RowTask represents one image row for the worker pool
type RowTask struct {
	Row    int
	Random *rand.Rand // Row-specific random generator for deterministic results
}

// RowResult contains the result from rendering a row
type RowResult struct {
	Row     int
	Samples int
	Error   error
}

// WorkerPool manages parallel row rendering.
// Rows cover disjoint pixels of the shared image, so workers write without locking.
type WorkerPool struct {
	ctx         context.Context
	raytracer   *Raytracer
	img         *image.RGBA
	taskQueue   chan RowTask
	resultQueue chan RowResult
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(ctx context.Context, raytracer *Raytracer, img *image.RGBA, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	// Buffer every row so submitting and reporting never block
	rows := img.Bounds().Dy()

	return &WorkerPool{
		ctx:         ctx,
		raytracer:   raytracer,
		img:         img,
		taskQueue:   make(chan RowTask, rows),
		resultQueue: make(chan RowResult, rows),
		numWorkers:  numWorkers,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		// Drain remaining rows quickly once the render is cancelled
		if err := wp.ctx.Err(); err != nil {
			wp.resultQueue <- RowResult{Row: task.Row, Error: err}
			continue
		}

		samples := wp.raytracer.renderRow(wp.img, task.Row, task.Random)
		wp.resultQueue <- RowResult{Row: task.Row, Samples: samples}
	}
}
