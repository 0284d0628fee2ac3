// Package visionqueue implements the in-process task queue that sits
// between the HTTP surface and the vision pipeline workers: a FIFO input
// queue, a worker pool draining it concurrently, a per-task result
// channel for synchronous callers to wait on, and per-user subscription
// channels for push delivery. It is the in-process
// equivalent of the original Redis list/pub-sub design (vision_input,
// vision_output, vision_errors lists plus a vision_done:<user> channel),
// collapsed onto Go channels since a single API process owns the queue.
package visionqueue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"bodyscan-engine/internal/logger"
	"bodyscan-engine/internal/models"
	"bodyscan-engine/internal/vision"
)

// Task is a single queued vision-analysis request.
type Task struct {
	ID        string
	Input     vision.Input
	ImagePath string
	ImageData []byte
	QueuedAt  time.Time
}

// Result is the outcome of processing one Task, mirroring the original
// worker's distinction between a completed record and an error entry.
type Result struct {
	TaskID string
	Record models.VisionRecord
	Err    error
}

// Queue is a bounded FIFO of pending tasks plus the bookkeeping needed to
// let HTTP handlers wait on a specific task's result.
type Queue struct {
	pipeline *vision.Pipeline
	log      *logger.Logger

	tasks chan Task

	mu          sync.Mutex
	waiters     map[string]chan Result
	subscribers map[string][]chan Result
	completed   uint64
	errored     uint64

	onResult func(Result)
}

// SetResultHook registers a callback invoked for every processed task's
// result before fan-out to waiters and subscribers, the in-process
// analogue of the original worker durably appending every outcome to the
// vision_output/vision_errors lists regardless of whether a consumer was
// listening yet. Typically used to persist the result.
func (q *Queue) SetResultHook(fn func(Result)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.onResult = fn
}

// New builds a Queue holding the given pipeline; workers started by Run
// process tasks with their own instances from Run's factory. capacity bounds the
// number of tasks that may be pending at once; submissions beyond it
// block the caller (applying backpressure) rather than growing unbounded.
func New(pipeline *vision.Pipeline, log *logger.Logger, capacity int) *Queue {
	if capacity <= 0 {
		capacity = 64
	}
	return &Queue{
		pipeline:    pipeline,
		log:         log,
		tasks:       make(chan Task, capacity),
		waiters:     make(map[string]chan Result),
		subscribers: make(map[string][]chan Result),
	}
}

// Enqueue submits a task and returns immediately; its result is obtained
// later via Wait or a user-scoped subscription.
func (q *Queue) Enqueue(task Task) {
	q.mu.Lock()
	q.waiters[task.ID] = make(chan Result, 1)
	q.mu.Unlock()
	q.tasks <- task
}

// Subscribe registers a per-user push channel (§4.4 "subscribe(userId) ->
// channel"): every result produced for a task whose Input.UserID matches
// userID is additionally delivered here, independent of whether a
// synchronous Wait claims it first. The returned cancel func must be
// called once the caller stops listening, to release the channel.
func (q *Queue) Subscribe(userID string) (<-chan Result, func()) {
	ch := make(chan Result, 8)
	q.mu.Lock()
	q.subscribers[userID] = append(q.subscribers[userID], ch)
	q.mu.Unlock()

	cancel := func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		subs := q.subscribers[userID]
		for i, c := range subs {
			if c == ch {
				q.subscribers[userID] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		if len(q.subscribers[userID]) == 0 {
			delete(q.subscribers, userID)
		}
	}
	return ch, cancel
}

// Wait blocks until the named task's result is available or ctx expires.
// A result not claimed before the caller gives up is left unread in the
// task's buffered channel (the result hook still receives it), mirroring
// the original queue's "non-matching entries go back on the list" semantics
// collapsed into "no subscriber, nothing to deliver to".
func (q *Queue) Wait(ctx context.Context, taskID string) (Result, error) {
	q.mu.Lock()
	ch, ok := q.waiters[taskID]
	q.mu.Unlock()
	if !ok {
		return Result{}, fmt.Errorf("no task queued with id %s", taskID)
	}
	select {
	case res := <-ch:
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Stats reports the current queue depth and lifetime completion counters,
// the Go analogue of the original worker's health_check queue_length /
// completed_count / error_count triple.
type Stats struct {
	QueueLength    int
	CompletedCount uint64
	ErrorCount     uint64
}

func (q *Queue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Stats{
		QueueLength:    len(q.tasks),
		CompletedCount: q.completed,
		ErrorCount:     q.errored,
	}
}

// Run starts concurrency workers draining the queue until ctx is
// cancelled. Each worker processes tasks sequentially through its own
// pipeline instance (the pipeline itself is not safe for concurrent use,
// so Run fans out across `concurrency` independent pipeline instances via
// the factory rather than sharing one). A failed task is not retried;
// each worker spaces failed tasks at least 1s apart before delivering the
// error, so an isolated failure adds no delay.
func Run(ctx context.Context, q *Queue, concurrency int, newPipeline func() *vision.Pipeline) error {
	if concurrency <= 0 {
		concurrency = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < concurrency; i++ {
		workerID := i
		g.Go(func() error {
			return q.runWorker(ctx, workerID, newPipeline())
		})
	}
	return g.Wait()
}

func (q *Queue) runWorker(ctx context.Context, workerID int, pipeline *vision.Pipeline) error {
	limiter := rate.NewLimiter(rate.Every(time.Second), 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task := <-q.tasks:
			q.process(ctx, workerID, pipeline, task, limiter)
		}
	}
}

func (q *Queue) process(ctx context.Context, workerID int, pipeline *vision.Pipeline, task Task, limiter *rate.Limiter) {
	start := time.Now()
	reader, closeFn, err := task.open()
	if err != nil {
		q.deliver(task.ID, task.Input.UserID, Result{TaskID: task.ID, Err: err})
		q.noteError()
		return
	}
	defer closeFn()

	record, procErr := pipeline.Process(ctx, reader, task.Input)
	if procErr != nil {
		q.log.Error("vision worker task failed", "worker", workerID, "taskId", task.ID, "error", procErr.Error())
		q.noteError()
		if err := limiter.Wait(ctx); err != nil {
			return
		}
	} else {
		q.log.Info("vision worker task completed", "worker", workerID, "taskId", task.ID, "durationSeconds", time.Since(start).Seconds())
		q.noteCompleted()
	}
	q.deliver(task.ID, task.Input.UserID, Result{TaskID: task.ID, Record: record, Err: procErr})
}

// deliver hands the result to the synchronous waiter (if one is still
// registered) and fans it out to every per-user subscriber, independent
// of which delivery mode a caller is using (§5 "whichever fires first
// wins; the other must be idempotent-safe to ignore").
func (q *Queue) deliver(taskID, userID string, res Result) {
	q.mu.Lock()
	ch, ok := q.waiters[taskID]
	delete(q.waiters, taskID)
	subs := append([]chan Result{}, q.subscribers[userID]...)
	hook := q.onResult
	q.mu.Unlock()

	if hook != nil {
		hook(res)
	}

	if ok {
		ch <- res
	}
	for _, sub := range subs {
		select {
		case sub <- res:
		default:
		}
	}
}

func (q *Queue) noteCompleted() {
	q.mu.Lock()
	q.completed++
	q.mu.Unlock()
}

func (q *Queue) noteError() {
	q.mu.Lock()
	q.errored++
	q.mu.Unlock()
}
