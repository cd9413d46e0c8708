package renderer

import (
	"context"
	"runtime"
	"sync"
)

// TileTask is one unit of work: render a tile up to the pass's target
// sample count
type TileTask struct {
	Tile          *Tile
	PassNumber    int
	TargetSamples int
	TaskID        int // Index into the tile list, for deterministic bookkeeping
}

// TileResult reports a finished (or aborted) tile task
type TileResult struct {
	TaskID int
	Stats  RenderStats
	Err    error
}

// WorkerPool renders tiles in parallel. Tiles write to disjoint frame
// buffer regions and each tile owns its sampler, so workers share no
// mutable state beyond the channels.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	numWorkers  int
	fb          *FrameBuffer
	tileRender  *TileRenderer
	wg          sync.WaitGroup
}

// NewWorkerPool creates a pool of numWorkers goroutines rendering into
// the shared frame buffer. A non-positive worker count uses the CPU
// count.
func NewWorkerPool(tileRender *TileRenderer, fb *FrameBuffer, tileCount, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		taskQueue:   make(chan TileTask, tileCount),
		resultQueue: make(chan TileResult, tileCount),
		numWorkers:  numWorkers,
		fb:          fb,
		tileRender:  tileRender,
	}
}

// Start launches the workers. They exit when the task queue is closed
// or the context is cancelled.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run(ctx)
	}
}

// Stop closes the task queue and waits for all workers to drain
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// Submit enqueues a tile task
func (wp *WorkerPool) Submit(task TileTask) {
	wp.taskQueue <- task
}

// GetResult blocks until a tile result is available
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// NumWorkers returns the worker count
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

func (wp *WorkerPool) run(ctx context.Context) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		// A cancelled context aborts the task before any pixel work;
		// partially accumulated state is discarded by the caller
		if err := ctx.Err(); err != nil {
			wp.resultQueue <- TileResult{TaskID: task.TaskID, Err: err}
			continue
		}

		stats := wp.tileRender.RenderTile(task.Tile, wp.fb, task.TargetSamples)
		wp.resultQueue <- TileResult{TaskID: task.TaskID, Stats: stats}
	}
}
