package work

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func newPool[T any](numWorkers, taskChannelSize int) (*Pool[T], error) {
	return NewWorkerPoolWithConfig[T](PoolConfig{NumWorkers: numWorkers, TaskChannelSize: taskChannelSize})
}

func TestNewWorkerPoolWithConfig(t *testing.T) {
	tests := []struct {
		name            string
		numWorkers      int
		taskChannelSize int
		expectError     bool
	}{
		{"valid pool", 5, 10, false},
		{"zero workers", 0, 10, true},
		{"negative workers", -1, 10, true},
		{"negative channel size", 5, -1, true},
		{"zero channel size", 5, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := newPool[string](tt.numWorkers, tt.taskChannelSize)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			if pool == nil {
				t.Error("Expected pool but got nil")
			}
		})
	}
}

func TestWorkerPoolBasicOperation(t *testing.T) {
	ctx := context.Background()
	pool, err := newPool[string](2, 5)
	if err != nil {
		t.Fatal(err)
	}

	pool.Start(ctx, "test-pool")
	defer pool.Stop()

	var executedCount int64
	task, err := NewTask[string](
		func(ctx context.Context) (string, error) {
			atomic.AddInt64(&executedCount, 1)
			return "test result", nil
		},
		WithErrorHandler[string](func(err error) {
			t.Errorf("Unexpected error: %v", err)
		}),
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := pool.AddTask(ctx, task); err != nil {
		t.Fatal(err)
	}

	select {
	case result := <-pool.Results():
		if !result.IsSuccess() {
			t.Errorf("Task failed: %v", result.Error)
		}
		if result.Result != "test result" {
			t.Errorf("Expected 'test result', got '%s'", result.Result)
		}
		if result.TaskID != task.ExecutorID() {
			t.Errorf("Expected task ID %s, got %s", task.ExecutorID(), result.TaskID)
		}
		if atomic.LoadInt64(&executedCount) != 1 {
			t.Errorf("Expected 1 execution, got %d", executedCount)
		}
	case <-time.After(3 * time.Second):
		t.Error("Timeout waiting for result")
	}
}

func TestWorkerPoolConcurrency(t *testing.T) {
	ctx := context.Background()
	const numTasks = 10

	pool, err := NewWorkerPoolWithConfig[int](PoolConfig{
		NumWorkers:      3,
		TaskChannelSize: numTasks,
		ResultChanSize:  numTasks,
	})
	if err != nil {
		t.Fatal(err)
	}

	pool.Start(ctx, "concurrency-test-pool")
	defer pool.Stop()

	var completedTasks int64
	for i := 0; i < numTasks; i++ {
		taskNum := i
		task, err := NewTask[int](
			func(ctx context.Context) (int, error) {
				time.Sleep(20 * time.Millisecond)
				atomic.AddInt64(&completedTasks, 1)
				return taskNum * 2, nil
			},
			WithID[int](fmt.Sprintf("task-%d", taskNum)),
		)
		if err != nil {
			t.Fatal(err)
		}

		if err := pool.AddTask(ctx, task); err != nil {
			t.Fatal(err)
		}
	}

	sum := 0
	for i := 0; i < numTasks; i++ {
		select {
		case result := <-pool.Results():
			if !result.IsSuccess() {
				t.Errorf("Task failed: %v", result.Error)
			}
			sum += result.Result
		case <-time.After(5 * time.Second):
			t.Fatal("Timeout waiting for results")
		}
	}

	// 2 * (0+1+...+9)
	if sum != 90 {
		t.Errorf("Expected results to sum to 90, got %d", sum)
	}
	if atomic.LoadInt64(&completedTasks) != numTasks {
		t.Errorf("Expected %d completed tasks, got %d", numTasks, completedTasks)
	}
}

func TestWorkerPoolTimeout(t *testing.T) {
	ctx := context.Background()
	pool, err := NewWorkerPoolWithConfig[string](PoolConfig{
		NumWorkers:      1,
		TaskChannelSize: 1,
		TaskTimeout:     100 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}

	pool.Start(ctx, "timeout-test-pool")
	defer pool.Stop()

	var handled atomic.Bool
	task, err := NewTask[string](
		func(ctx context.Context) (string, error) {
			select {
			case <-time.After(2 * time.Second):
				return "should not complete", nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		},
		WithErrorHandler[string](func(err error) {
			handled.Store(true)
		}),
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := pool.AddTask(ctx, task); err != nil {
		t.Fatal(err)
	}

	select {
	case result := <-pool.Results():
		if result.IsSuccess() {
			t.Error("Expected task to timeout")
		}
		if !errors.Is(result.Error, ErrTaskTimeout) {
			t.Errorf("Expected timeout error, got: %v", result.Error)
		}
		if !handled.Load() {
			t.Error("Expected error handler to be called")
		}
	case <-time.After(3 * time.Second):
		t.Error("Timeout waiting for result")
	}
}

func TestWorkerPoolGracefulShutdown(t *testing.T) {
	ctx := context.Background()
	pool, err := newPool[string](2, 5)
	if err != nil {
		t.Fatal(err)
	}

	pool.Start(ctx, "shutdown-test-pool")
	pool.Stop()

	task, err := NewTask[string](
		func(ctx context.Context) (string, error) {
			return "should not execute", nil
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	err = pool.AddTask(ctx, task)
	if !errors.Is(err, ErrPoolStopped) {
		t.Errorf("Expected ErrPoolStopped, got: %v", err)
	}

	// Stop is idempotent
	pool.Stop()
}

func TestWorkerPoolStats(t *testing.T) {
	ctx := context.Background()
	pool, err := newPool[string](2, 5)
	if err != nil {
		t.Fatal(err)
	}

	pool.Start(ctx, "stats-test-pool")
	defer pool.Stop()

	time.Sleep(50 * time.Millisecond)

	stats := pool.Stats()
	if stats.ActiveWorkers != 2 {
		t.Errorf("Expected 2 active workers, got %d", stats.ActiveWorkers)
	}
	if stats.TasksQueued != 0 {
		t.Errorf("Expected 0 queued tasks, got %d", stats.TasksQueued)
	}

	task, err := NewTask[string](
		func(ctx context.Context) (string, error) {
			return "test", nil
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := pool.AddTask(ctx, task); err != nil {
		t.Fatal(err)
	}

	<-pool.Results()

	time.Sleep(100 * time.Millisecond)
	stats = pool.Stats()
	if stats.TasksQueued != 1 {
		t.Errorf("Expected 1 queued task, got %d", stats.TasksQueued)
	}
	if stats.TasksCompleted != 1 {
		t.Errorf("Expected 1 completed task, got %d", stats.TasksCompleted)
	}

	var handled error
	failing, err := NewTask[string](
		func(ctx context.Context) (string, error) {
			return "", errors.New("boom")
		},
		WithErrorHandler[string](func(err error) {
			handled = err
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := pool.AddTask(ctx, failing); err != nil {
		t.Fatal(err)
	}
	<-pool.Results()
	if handled == nil || handled.Error() != "boom" {
		t.Errorf("Expected error handler to receive boom, got %v", handled)
	}

	time.Sleep(100 * time.Millisecond)
	stats = pool.Stats()
	if stats.TasksFailed != 1 {
		t.Errorf("Expected 1 failed task, got %d", stats.TasksFailed)
	}
}
