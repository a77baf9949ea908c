package services

import (
	"context"
	"log"
	"sync"
	"time"
)

// SyncJob is one best-effort remote operation.
type SyncJob func(ctx context.Context) error

// SyncQueue runs remote sync jobs in the background so local mutations
// never wait on the network. Each job gets a bounded number of attempts
// with exponential backoff; after that it is logged and dropped, never
// surfaced to the user or rolled back locally.
type SyncQueue struct {
	jobs        chan SyncJob
	wg          sync.WaitGroup
	maxAttempts int
	baseDelay   time.Duration
	jobTimeout  time.Duration
}

// NewSyncQueue builds a queue retrying maxAttempts times starting at
// baseDelay (doubling per attempt).
func NewSyncQueue(maxAttempts int, baseDelay time.Duration) *SyncQueue {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	return &SyncQueue{
		jobs:        make(chan SyncJob, 64),
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		jobTimeout:  15 * time.Second,
	}
}

// Start launches the worker goroutine.
func (q *SyncQueue) Start() {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for job := range q.jobs {
			q.process(job)
		}
	}()
}

// Enqueue queues a job without blocking; when the buffer is full the job
// is dropped (the next mutation enqueues a fresh snapshot anyway).
func (q *SyncQueue) Enqueue(job SyncJob) {
	select {
	case q.jobs <- job:
	default:
		log.Println("[Sync] queue full, dropping job")
	}
}

// Stop drains the queue and waits for the worker to finish.
func (q *SyncQueue) Stop() {
	close(q.jobs)
	q.wg.Wait()
}

func (q *SyncQueue) process(job SyncJob) {
	delay := q.baseDelay
	for attempt := 1; attempt <= q.maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), q.jobTimeout)
		err := job(ctx)
		cancel()
		if err == nil {
			return
		}
		log.Printf("[Sync] attempt %d failed: %v", attempt, err)
		if attempt < q.maxAttempts {
			time.Sleep(delay)
			delay *= 2
		}
	}
	log.Println("[Sync] all retry attempts failed")
}
