package queue

import (
	"log"
	"sync"
)

// ConcurrentQueue runs submitted tasks with a bounded number of
// workers.
type ConcurrentQueue struct {
	capacity int
	sem      chan struct{}
	wg       sync.WaitGroup
}

// NewConcurrentQueue creates a queue running at most capacity tasks at
// once. Capacity must be positive.
func NewConcurrentQueue(capacity int) *ConcurrentQueue {
	if capacity <= 0 {
		panic("queue capacity must be greater than 0")
	}
	return &ConcurrentQueue{
		capacity: capacity,
		sem:      make(chan struct{}, capacity),
	}
}

// Go submits a task for asynchronous execution. The goroutine blocks
// on the semaphore until a slot frees up, so Go itself never blocks.
func (q *ConcurrentQueue) Go(task func()) {
	q.wg.Add(1)
	go func() {
		q.sem <- struct{}{}
		defer func() {
			<-q.sem
			q.wg.Done()
		}()

		defer func() {
			if r := recover(); r != nil {
				log.Printf("task panic recovered: %v", r)
			}
		}()

		task()
	}()
}

// TryGo submits the task only if a slot is free right now.
func (q *ConcurrentQueue) TryGo(task func()) bool {
	select {
	case q.sem <- struct{}{}:
		q.wg.Add(1)
		go func() {
			defer func() {
				<-q.sem
				q.wg.Done()
				if r := recover(); r != nil {
					log.Printf("task panic recovered: %v", r)
				}
			}()
			task()
		}()
		return true
	default:
		return false
	}
}

// Wait blocks until every submitted task has finished.
func (q *ConcurrentQueue) Wait() {
	q.wg.Wait()
}

// CurrentCount returns the number of tasks currently running.
func (q *ConcurrentQueue) CurrentCount() int {
	return len(q.sem)
}
