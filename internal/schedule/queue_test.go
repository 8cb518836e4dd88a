package schedule

import (
	"reflect"
	"testing"
)

func TestQueueFiresInOrder(t *testing.T) {
	var q Queue[string]
	q.After(3, "a", "third")
	q.After(1, "a", "first")
	q.After(3, "b", "third-b")
	q.After(2, "a", "second")

	var got []string
	for range 4 {
		got = append(got, q.Advance()...)
	}

	want := []string{"first", "second", "third", "third-b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fired = %v, expected %v", got, want)
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", q.Len())
	}
}

func TestQueueZeroDelayRunsNextTick(t *testing.T) {
	var q Queue[int]
	q.After(0, "g", 7)

	if got := q.Advance(); !reflect.DeepEqual(got, []int{7}) {
		t.Errorf("Advance() = %v, expected [7]", got)
	}
}

func TestQueueCancelGroup(t *testing.T) {
	var q Queue[int]
	q.After(5, "rota", 1)
	q.After(10, "rota", 2)
	q.After(5, "spawn", 3)

	if n := q.CancelGroup("rota"); n != 2 {
		t.Errorf("CancelGroup() = %d, expected 2", n)
	}
	if q.Pending("rota") != 0 {
		t.Error("rota entries should be gone")
	}

	var got []int
	for range 10 {
		got = append(got, q.Advance()...)
	}
	if !reflect.DeepEqual(got, []int{3}) {
		t.Errorf("fired = %v, expected [3]", got)
	}
}

func TestQueueCancelSingle(t *testing.T) {
	var q Queue[int]
	id := q.After(2, "g", 1)
	q.After(2, "g", 2)

	if !q.Cancel(id) {
		t.Fatal("Cancel() should succeed for a pending entry")
	}
	if q.Cancel(id) {
		t.Error("Cancel() should fail the second time")
	}

	q.Advance()
	if got := q.Advance(); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("Advance() = %v, expected [2]", got)
	}
}

func TestQueueRemaining(t *testing.T) {
	var q Queue[int]
	if _, ok := q.Remaining("g"); ok {
		t.Error("Remaining() should report nothing pending")
	}

	q.After(60, "g", 1)
	q.Advance()
	q.Advance()

	left, ok := q.Remaining("g")
	if !ok || left != 58 {
		t.Errorf("Remaining() = %d, %v; expected 58, true", left, ok)
	}
}

func TestQueueScheduleDuringDrain(t *testing.T) {
	var q Queue[int]
	q.After(1, "g", 1)

	for _, v := range q.Advance() {
		// Rescheduling from a handler must not fire in the same tick.
		q.After(0, "g", v+1)
	}
	if q.Now() != 1 {
		t.Errorf("Now() = %d, expected 1", q.Now())
	}
	if got := q.Advance(); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("Advance() = %v, expected [2]", got)
	}
}

func TestQueueReset(t *testing.T) {
	var q Queue[int]
	q.After(1, "g", 1)
	q.Advance()
	q.After(1, "g", 2)
	q.Reset()

	if q.Now() != 0 || q.Len() != 0 {
		t.Errorf("after Reset: Now()=%d Len()=%d, expected 0, 0", q.Now(), q.Len())
	}
}
