package utils

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// WorkerPool runs named jobs on a bounded number of goroutines and collects
// their errors.
type WorkerPool struct {
	semaphore chan struct{}
	wg        sync.WaitGroup

	mu   sync.Mutex
	errs []error
}

// NewWorkerPool creates a WorkerPool with the given concurrency.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{semaphore: make(chan struct{}, maxWorkers)}
}

// Submit enqueues a job for execution in the pool. It blocks while all
// workers are busy.
func (wp *WorkerPool) Submit(name string, job func() error) {
	wp.wg.Add(1)
	wp.semaphore <- struct{}{}

	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.semaphore }()

		if err := job(); err != nil {
			wp.mu.Lock()
			wp.errs = append(wp.errs, fmt.Errorf("%s: %w", name, err))
			wp.mu.Unlock()
		}
	}()
}

// Wait blocks until all submitted jobs have completed and returns their
// joined errors, or nil.
func (wp *WorkerPool) Wait() error {
	wp.wg.Wait()
	wp.mu.Lock()
	defer wp.mu.Unlock()
	return errors.Join(wp.errs...)
}

// Throttle enforces a minimum interval between consecutive calls to Wait.
type Throttle struct {
	mu          sync.Mutex
	minInterval time.Duration
	last        time.Time
}

// NewThrottle creates a Throttle. A zero interval never sleeps.
func NewThrottle(minInterval time.Duration) *Throttle {
	return &Throttle{minInterval: minInterval}
}

// Wait sleeps until at least minInterval has passed since the previous call.
func (t *Throttle) Wait() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.last.IsZero() {
		if elapsed := time.Since(t.last); elapsed < t.minInterval {
			time.Sleep(t.minInterval - elapsed)
		}
	}
	t.last = time.Now()
}

// StringSet is a thread-safe set of strings.
type StringSet struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewStringSet creates an empty StringSet.
func NewStringSet() *StringSet {
	return &StringSet{seen: make(map[string]struct{})}
}

// Add returns true if s was newly added, false if already present.
func (s *StringSet) Add(v string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[v]; exists {
		return false
	}
	s.seen[v] = struct{}{}
	return true
}

// Contains returns true if v is in the set.
func (s *StringSet) Contains(v string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.seen[v]
	return exists
}

// Size returns the number of unique values tracked.
func (s *StringSet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}
