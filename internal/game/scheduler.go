package game

import (
	"container/list"
	"sync"
	"time"
)

// Scheduler runs a deferred combat step
type Scheduler interface {
	After(d time.Duration, step func())
}

// TimerScheduler defers steps on the runtime timer. A zero delay runs inline.
type TimerScheduler struct{}

// After schedules step after d
func (TimerScheduler) After(d time.Duration, step func()) {
	if d <= 0 {
		step()
		return
	}
	time.AfterFunc(d, step)
}

// StepQueue holds deferred steps until they are drained. Tests and
// turn-by-turn clients use it to control when the enemy acts.
type StepQueue struct {
	pending *list.List // func()
	mu      sync.Mutex
}

// NewStepQueue creates an empty queue
func NewStepQueue() *StepQueue {
	return &StepQueue{pending: list.New()}
}

// After enqueues step; the delay is ignored
func (q *StepQueue) After(_ time.Duration, step func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending.PushBack(step)
}

// Drain runs every pending step in order, including steps they enqueue.
// It returns how many ran.
func (q *StepQueue) Drain() int {
	ran := 0
	for {
		q.mu.Lock()
		elem := q.pending.Front()
		if elem == nil {
			q.mu.Unlock()
			return ran
		}
		q.pending.Remove(elem)
		q.mu.Unlock()

		elem.Value.(func())()
		ran++
	}
}

// Count returns the number of pending steps
func (q *StepQueue) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending.Len()
}
