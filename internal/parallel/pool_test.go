// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package parallel

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogpu/pathkit"
)

// =============================================================================
// Creation
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit", 4, 4},
		{"zero uses GOMAXPROCS", 0, runtime.GOMAXPROCS(0)},
		{"negative uses GOMAXPROCS", -5, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewWorkerPool(tt.workers)
			defer pool.Close()
			if pool.Workers() != tt.want {
				t.Errorf("Workers() = %d, want %d", pool.Workers(), tt.want)
			}
			if !pool.IsRunning() {
				t.Error("pool not running after creation")
			}
			if pool.QueuedWork() != 0 {
				t.Errorf("QueuedWork() = %d, want 0", pool.QueuedWork())
			}
		})
	}
}

// =============================================================================
// ExecuteAll / Submit
// =============================================================================

func TestWorkerPool_ExecuteAll(t *testing.T) {
	for _, workers := range []int{1, 4, 32} {
		pool := NewWorkerPool(workers)

		var counter atomic.Int64
		jobs := make([]func(), 500)
		for i := range jobs {
			jobs[i] = func() { counter.Add(1) }
		}
		pool.ExecuteAll(jobs)

		if counter.Load() != 500 {
			t.Errorf("workers=%d: counter = %d, want 500", workers, counter.Load())
		}
		pool.Close()
		if pool.Completed() != 500 {
			t.Errorf("workers=%d: Completed() = %d, want 500", workers, pool.Completed())
		}
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
	if pool.Completed() != 0 {
		t.Errorf("Completed() = %d, want 0", pool.Completed())
	}
}

func TestWorkerPool_Submit(t *testing.T) {
	pool := NewWorkerPool(4)

	var counter atomic.Int64
	const n = 20
	done := make(chan struct{})
	for i := 0; i < n; i++ {
		pool.Submit(func() {
			if counter.Add(1) == n {
				close(done)
			}
		})
	}
	pool.Submit(nil)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Errorf("timeout waiting for submitted jobs, counter = %d", counter.Load())
	}
	pool.Close()
}

func TestWorkerPool_CloseDrainsQueue(t *testing.T) {
	pool := NewWorkerPool(2)

	var counter atomic.Int64
	for iter := 0; iter < 10; iter++ {
		pool.Submit(func() { counter.Add(1) })
	}
	pool.Close()

	if counter.Load() != 10 {
		t.Errorf("counter = %d after Close, want 10", counter.Load())
	}
}

func TestWorkerPool_OperationsAfterClose(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("pool running after Close")
	}

	var executed atomic.Bool
	pool.ExecuteAll([]func(){func() { executed.Store(true) }})
	pool.Submit(func() { executed.Store(true) })
	time.Sleep(20 * time.Millisecond)

	if executed.Load() {
		t.Error("job executed on closed pool")
	}
}

func TestWorkerPool_ConcurrentCallers(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	var wg sync.WaitGroup
	for iter := 0; iter < 10; iter++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			jobs := make([]func(), 50)
			for i := range jobs {
				jobs[i] = func() { counter.Add(1) }
			}
			pool.ExecuteAll(jobs)
		}()
	}
	wg.Wait()

	if counter.Load() != 500 {
		t.Errorf("counter = %d, want 500", counter.Load())
	}
}

func TestWorkerPool_UnevenJobs(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var slow, fast atomic.Int64
	jobs := make([]func(), 100)
	for i := range jobs {
		if i%10 == 0 {
			jobs[i] = func() {
				time.Sleep(5 * time.Millisecond)
				slow.Add(1)
			}
		} else {
			jobs[i] = func() { fast.Add(1) }
		}
	}
	pool.ExecuteAll(jobs)

	if slow.Load() != 10 || fast.Load() != 90 {
		t.Errorf("slow=%d fast=%d, want 10 and 90", slow.Load(), fast.Load())
	}
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for iter := 0; iter < 5; iter++ {
		pool := NewWorkerPool(4)
		jobs := make([]func(), 100)
		for j := range jobs {
			jobs[j] = func() {}
		}
		pool.ExecuteAll(jobs)
		pool.Close()
	}

	runtime.GC()
	time.Sleep(100 * time.Millisecond)
	if final := runtime.NumGoroutine(); final > baseline+2 {
		t.Errorf("goroutines: baseline=%d final=%d", baseline, final)
	}
}

// =============================================================================
// Map
// =============================================================================

func TestMap_PreservesOrder(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	sizes := make([]float64, 64)
	for i := range sizes {
		sizes[i] = float64(i + 1)
	}
	lengths, err := Map(context.Background(), pool, sizes, func(_ context.Context, s float64) float64 {
		square := pathkit.BuildPath(pathkit.NonZero).Rect(0, 0, s, s).Build()
		return pathkit.PathLength(square)
	})
	if err != nil {
		t.Fatalf("Map() error: %v", err)
	}
	for i, l := range lengths {
		if want := 4 * sizes[i]; math.Abs(l-want) > 1e-9 {
			t.Errorf("lengths[%d] = %v, want %v", i, l, want)
		}
	}
}

func TestMap_OffsetJobs(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	paths := []pathkit.VectorPath{
		pathkit.BuildPath(pathkit.NonZero).Rect(0, 0, 100, 100).Build(),
		pathkit.BuildPath(pathkit.NonZero).Circle(0, 0, 50).Build(),
		{},
	}
	results, err := Map(context.Background(), pool, paths, func(_ context.Context, p pathkit.VectorPath) pathkit.OffsetResult {
		return pathkit.OffsetPath(p, pathkit.OffsetConfig{Distance: 5})
	})
	if err != nil {
		t.Fatalf("Map() error: %v", err)
	}
	wantPaths := []int{1, 1, 0}
	for i, r := range results {
		if !r.Success || len(r.Paths) != wantPaths[i] {
			t.Errorf("results[%d]: success=%v paths=%d, want %d", i, r.Success, len(r.Paths), wantPaths[i])
		}
	}
}

func TestMap_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	out, err := Map(context.Background(), pool, []int(nil), func(context.Context, int) int { return 1 })
	if err != nil || len(out) != 0 {
		t.Errorf("Map(nil) = %v, %v", out, err)
	}
}

func TestMap_Cancelled(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int64
	out, err := Map(ctx, pool, []int{1, 2, 3}, func(context.Context, int) int {
		calls.Add(1)
		return 1
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Map() error = %v, want context.Canceled", err)
	}
	if calls.Load() != 0 {
		t.Errorf("fn called %d times after cancel", calls.Load())
	}
	if len(out) != 3 || out[0] != 0 {
		t.Errorf("out = %v, want three zero slots", out)
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkWorkerPool_ExecuteAll(b *testing.B) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	jobs := make([]func(), 256)
	for i := range jobs {
		jobs[i] = func() {}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ExecuteAll(jobs)
	}
}

func BenchmarkMap_Dash(b *testing.B) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	circle := pathkit.BuildPath(pathkit.NonZero).Circle(0, 0, 100).Build()
	paths := make([]pathkit.VectorPath, 64)
	for i := range paths {
		paths[i] = circle
	}
	cfg := pathkit.NewDashConfig(6, 4)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Map(ctx, pool, paths, func(_ context.Context, p pathkit.VectorPath) pathkit.DashResult {
			return pathkit.ApplyDashPattern(p, cfg)
		})
	}
}
