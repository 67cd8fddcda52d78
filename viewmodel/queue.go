package viewmodel

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// task is one asynchronous unit of work. fail runs instead of run when the
// queue stops before the task starts, and after run when run panics.
type task struct {
	name string
	run  func(ctx context.Context)
	fail func(err error)
}

// taskQueue runs tasks one at a time in FIFO order on a single goroutine
type taskQueue struct {
	logger  *slog.Logger
	mu      sync.Mutex
	pending []task
	running bool
	stopped bool
	wake    chan struct{}
	exited  chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
}

func newTaskQueue(logger *slog.Logger) *taskQueue {
	ctx, cancel := context.WithCancel(context.Background())
	return &taskQueue{
		logger: logger,
		wake:   make(chan struct{}, 1),
		exited: make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins processing queued tasks
func (q *taskQueue) Start() {
	q.mu.Lock()
	if q.running || q.stopped {
		q.mu.Unlock()
		return
	}
	q.running = true
	q.mu.Unlock()

	q.logger.Debug("task queue started")

	go q.run()
}

// Stop cancels the in-flight task's context, drops every queued task and waits
// for the runner goroutine to exit. It must not be called from inside a task.
func (q *taskQueue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	wasRunning := q.running
	q.running = false
	dropped := q.pending
	q.pending = nil
	q.mu.Unlock()

	q.cancel()

	if len(dropped) > 0 {
		q.logger.Debug("task queue stopped, dropping queued tasks", "count", len(dropped))
	}
	for _, t := range dropped {
		if t.fail != nil {
			t.fail(ErrClosed)
		}
	}

	if wasRunning {
		<-q.exited
	}
}

// Enqueue appends a task. On a stopped queue the task fails with ErrClosed right away.
func (q *taskQueue) Enqueue(t task) bool {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		if t.fail != nil {
			t.fail(ErrClosed)
		}
		return false
	}
	q.pending = append(q.pending, t)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

func (q *taskQueue) run() {
	defer close(q.exited)

	for {
		select {
		case <-q.ctx.Done():
			return
		case <-q.wake:
		}

		for {
			t, ok := q.next()
			if !ok {
				break
			}
			q.execute(t)
		}
	}
}

func (q *taskQueue) next() (task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.stopped || len(q.pending) == 0 {
		return task{}, false
	}
	t := q.pending[0]
	q.pending[0] = task{}
	q.pending = q.pending[1:]
	return t, true
}

func (q *taskQueue) execute(t task) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("task panicked",
				"task", t.name,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			if t.fail != nil {
				t.fail(fmt.Errorf("%s panicked: %v", t.name, r))
			}
		}
	}()

	t.run(q.ctx)
}
