package capture

import (
	"container/heap"
	"time"

	"github.com/litescript/ls-orbits/internal/scene"
)

// TaskKind identifies what a scheduled task does when it comes due.
type TaskKind int

const (
	TaskEnableAttraction TaskKind = iota // Target is a ball
	TaskAdvance                          // Target is the capturing planet
	TaskReset                            // No target
)

func (k TaskKind) String() string {
	switch k {
	case TaskEnableAttraction:
		return "enable-attraction"
	case TaskAdvance:
		return "advance"
	case TaskReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Task is a deferred action. It refers to entities by ID only; the manager
// checks the ID and epoch are still valid before acting.
type Task struct {
	At     time.Duration
	Kind   TaskKind
	Target scene.ID
	Epoch  uint64

	seq uint64 // Tie-breaker keeping FIFO order for equal At
}

// Queue is a time-ordered task queue.
type Queue struct {
	h   taskHeap
	seq uint64
}

// Push schedules a task.
func (q *Queue) Push(t Task) {
	q.seq++
	t.seq = q.seq
	heap.Push(&q.h, t)
}

// PopDue removes and returns the earliest task due at or before now.
func (q *Queue) PopDue(now time.Duration) (Task, bool) {
	if len(q.h) == 0 || q.h[0].At > now {
		return Task{}, false
	}
	return heap.Pop(&q.h).(Task), true
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	return len(q.h)
}

// Pending returns a copy of pending tasks in firing order.
func (q *Queue) Pending() []Task {
	cp := make(taskHeap, len(q.h))
	copy(cp, q.h)

	out := make([]Task, 0, len(cp))
	for len(cp) > 0 {
		out = append(out, heap.Pop(&cp).(Task))
	}
	return out
}

type taskHeap []Task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].At != h[j].At {
		return h[i].At < h[j].At
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) { *h = append(*h, x.(Task)) }

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	*h = old[:n-1]
	return t
}
