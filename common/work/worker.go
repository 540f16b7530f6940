package work

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidChannelSize = errors.New("invalid channel size")
	ErrPoolStopped        = errors.New("worker pool has been stopped")
	ErrTaskTimeout        = errors.New("task execution timeout")
)

const (
	defaultTaskTimeout     = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	resultSendTimeout      = time.Second
)

// TaskResult is what one Executor produced
type TaskResult[T any] struct {
	TaskID   string
	Result   T
	Error    error
	Duration time.Duration
}

// IsSuccess reports whether the task returned without error
func (tr *TaskResult[T]) IsSuccess() bool {
	return tr.Error == nil
}

// Executor is a unit of work producing a T
type Executor[T any] interface {
	ExecutorID() string
	Execute(ctx context.Context) (T, error)
	OnError(error)
}

// PoolConfig sizes a Pool. Zero timeouts fall back to defaults.
type PoolConfig struct {
	NumWorkers      int
	TaskChannelSize int
	// ResultChanSize should cover every submitted task when the caller
	// reads results only after submitting; a full channel drops results.
	ResultChanSize  int
	TaskTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// PoolStats are counters over the lifetime of a Pool
type PoolStats struct {
	ActiveWorkers  int64
	TasksQueued    int64
	TasksCompleted int64
	TasksFailed    int64
}

// Pool runs Executors on a fixed number of goroutines and reports each outcome on Results
type Pool[T any] struct {
	config  PoolConfig
	tasks   chan Executor[T]
	results chan TaskResult[T]
	quit    chan struct{}
	wg      sync.WaitGroup

	activeWorkers  atomic.Int64
	tasksQueued    atomic.Int64
	tasksCompleted atomic.Int64
	tasksFailed    atomic.Int64

	mu      sync.RWMutex
	started bool
	stopped bool
}

// NewWorkerPoolWithConfig validates config and builds an unstarted pool
func NewWorkerPoolWithConfig[T any](config PoolConfig) (*Pool[T], error) {
	if config.NumWorkers <= 0 {
		return nil, ErrInvalidWorkerCount
	}
	if config.TaskChannelSize < 0 {
		return nil, ErrInvalidChannelSize
	}
	if config.ResultChanSize < 0 {
		config.ResultChanSize = config.NumWorkers * 2
	}
	if config.TaskTimeout <= 0 {
		config.TaskTimeout = defaultTaskTimeout
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = defaultShutdownTimeout
	}

	return &Pool[T]{
		config:  config,
		tasks:   make(chan Executor[T], config.TaskChannelSize),
		results: make(chan TaskResult[T], config.ResultChanSize),
		quit:    make(chan struct{}),
	}, nil
}

// Start launches the workers once; later calls are no-ops
func (p *Pool[T]) Start(ctx context.Context, poolID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}
	if p.stopped {
		log.Error().Str("workerPoolID", poolID).Msg("Cannot start a stopped pool")
		return
	}
	p.started = true

	for i := 0; i < p.config.NumWorkers; i++ {
		p.wg.Add(1)
		go p.work(ctx, poolID, i)
	}

	log.Debug().
		Str("workerPoolID", poolID).
		Int("numWorkers", p.config.NumWorkers).
		Msg("Worker pool started")
}

// Stop closes the queue and waits up to ShutdownTimeout for the workers.
// It is safe to call more than once.
func (p *Pool[T]) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	p.mu.Unlock()

	close(p.quit)
	close(p.tasks)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Debug().Msg("All workers stopped gracefully")
	case <-time.After(p.config.ShutdownTimeout):
		log.Warn().Dur("timeout", p.config.ShutdownTimeout).Msg("Shutdown timeout exceeded")
	}

	close(p.results)
}

// AddTask queues task, blocking while the queue is full
func (p *Pool[T]) AddTask(ctx context.Context, task Executor[T]) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return ErrPoolStopped
	}

	select {
	case p.tasks <- task:
		p.tasksQueued.Add(1)
		return nil
	case <-p.quit:
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Results delivers one TaskResult per executed task
func (p *Pool[T]) Results() <-chan TaskResult[T] {
	return p.results
}

// Stats snapshots the pool counters
func (p *Pool[T]) Stats() PoolStats {
	return PoolStats{
		ActiveWorkers:  p.activeWorkers.Load(),
		TasksQueued:    p.tasksQueued.Load(),
		TasksCompleted: p.tasksCompleted.Load(),
		TasksFailed:    p.tasksFailed.Load(),
	}
}

func (p *Pool[T]) work(ctx context.Context, poolID string, workerID int) {
	defer p.wg.Done()
	p.activeWorkers.Add(1)
	defer p.activeWorkers.Add(-1)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.quit:
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			p.execute(ctx, task, poolID, workerID)
		}
	}
}

func (p *Pool[T]) execute(ctx context.Context, task Executor[T], poolID string, workerID int) {
	taskID := task.ExecutorID()
	start := time.Now()

	taskCtx, cancel := context.WithTimeout(ctx, p.config.TaskTimeout)
	defer cancel()

	result, err := task.Execute(taskCtx)
	if err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(taskCtx.Err(), context.DeadlineExceeded)) {
		err = ErrTaskTimeout
	}
	if err != nil {
		p.tasksFailed.Add(1)
		task.OnError(err)
	}

	res := TaskResult[T]{
		TaskID:   taskID,
		Result:   result,
		Error:    err,
		Duration: time.Since(start),
	}

	select {
	case p.results <- res:
	case <-time.After(resultSendTimeout):
		log.Warn().Str("taskID", taskID).Msg("Result channel full, dropping result")
	case <-p.quit:
		log.Debug().Str("taskID", taskID).Msg("Pool shutting down, dropping result")
	}
	p.tasksCompleted.Add(1)

	log.Trace().
		Str("workerPoolID", poolID).
		Int("workerID", workerID).
		Str("taskID", taskID).
		Dur("duration", res.Duration).
		Bool("success", err == nil).
		Msg("Task completed")
}
