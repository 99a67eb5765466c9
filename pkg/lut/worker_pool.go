package lut

import (
	"context"
	"runtime"
	"sync"
)

// TileTask represents a tile to fill
type TileTask struct {
	Tile   *Tile
	TaskID int
	Table  *Table // Shared table; tiles cover disjoint cells
}

// TileResult contains the result from filling a tile
type TileResult struct {
	TaskID int
	Cells  int
	Misses int
	Error  error
}

// WorkerPool fills table tiles in parallel
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual tile tasks
type Worker struct {
	ID          int
	builder     *Builder
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a worker pool able to buffer maxTiles tasks and results
func NewWorkerPool(builder *Builder, maxTiles int, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTiles),
		resultQueue: make(chan TileResult, maxTiles),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			builder:     builder,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// Submit queues a tile task. It blocks once maxTiles tasks are pending.
func (wp *WorkerPool) Submit(task TileTask) {
	wp.taskQueue <- task
}

// Result waits for a completed tile. ok is false after Stop.
func (wp *WorkerPool) Result() (result TileResult, ok bool) {
	result, ok = <-wp.resultQueue
	return result, ok
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Drain remaining tasks quickly once cancelled
		if err := ctx.Err(); err != nil {
			w.resultQueue <- TileResult{TaskID: task.TaskID, Error: err}
			continue
		}

		cells, misses := w.builder.fillTile(task.Tile, task.Table)
		w.resultQueue <- TileResult{
			TaskID: task.TaskID,
			Cells:  cells,
			Misses: misses,
		}
	}
}
