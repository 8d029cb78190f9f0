package concurrency

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_RunsAllJobs(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Start()

	var ran atomic.Int32
	const jobs = 20
	for i := 0; i < jobs; i++ {
		err := pool.Submit(JobFunc(func() error {
			ran.Add(1)
			return nil
		}))
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	got := 0
	for range [jobs]struct{}{} {
		<-pool.Results()
		got++
	}
	if err := pool.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if ran.Load() != jobs || got != jobs {
		t.Errorf("ran %d jobs, collected %d results, want %d", ran.Load(), got, jobs)
	}
}

func TestParallelExecutor_ErrorsIndexAligned(t *testing.T) {
	boom := errors.New("boom")
	fns := []func() error{
		func() error { return nil },
		func() error { return boom },
		func() error { return nil },
	}

	results := NewParallelExecutor(2).Execute(fns)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0] != nil || results[2] != nil {
		t.Error("unexpected errors for succeeding functions")
	}
	if !errors.Is(results[1], boom) {
		t.Errorf("results[1] = %v, want boom", results[1])
	}
}

func TestParallelExecutor_Empty(t *testing.T) {
	if got := NewParallelExecutor(4).Execute(nil); got != nil {
		t.Errorf("Execute(nil) = %v, want nil", got)
	}
}
