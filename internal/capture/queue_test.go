package capture

import (
	"testing"
	"time"
)

func TestQueueOrdersByTime(t *testing.T) {
	var q Queue
	q.Push(Task{At: 3 * time.Second, Kind: TaskAdvance, Target: 3})
	q.Push(Task{At: 1 * time.Second, Kind: TaskEnableAttraction, Target: 1})
	q.Push(Task{At: 2 * time.Second, Kind: TaskReset})

	if _, ok := q.PopDue(500 * time.Millisecond); ok {
		t.Fatal("nothing should be due at 500ms")
	}

	var got []time.Duration
	for {
		task, ok := q.PopDue(10 * time.Second)
		if !ok {
			break
		}
		got = append(got, task.At)
	}

	want := []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}
	if len(got) != len(want) {
		t.Fatalf("popped %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pop %d at %v, want %v", i, got[i], want[i])
		}
	}
}

func TestQueueFIFOForEqualTimes(t *testing.T) {
	var q Queue
	for id := 1; id <= 5; id++ {
		q.Push(Task{At: time.Second, Target: sceneID(id)})
	}

	for want := 1; want <= 5; want++ {
		task, ok := q.PopDue(time.Second)
		if !ok {
			t.Fatalf("expected task %d", want)
		}
		if task.Target != sceneID(want) {
			t.Errorf("popped target %d, want %d", task.Target, want)
		}
	}
}

func TestQueuePendingDoesNotConsume(t *testing.T) {
	var q Queue
	q.Push(Task{At: 2 * time.Second})
	q.Push(Task{At: time.Second})

	pending := q.Pending()
	if len(pending) != 2 || pending[0].At != time.Second {
		t.Errorf("Pending = %+v", pending)
	}
	if q.Len() != 2 {
		t.Errorf("Len after Pending = %d, want 2", q.Len())
	}
}

func TestTaskKindString(t *testing.T) {
	kinds := map[TaskKind]string{
		TaskEnableAttraction: "enable-attraction",
		TaskAdvance:          "advance",
		TaskReset:            "reset",
		TaskKind(99):         "unknown",
	}
	for k, want := range kinds {
		if k.String() != want {
			t.Errorf("TaskKind(%d).String() = %q, want %q", int(k), k.String(), want)
		}
	}
}
