// Package schedule provides a tick-keyed queue of deferred actions.
//
// Actions are plain values drained by the owner once per tick, so every delayed
// effect runs on the simulation goroutine between physics steps. Each entry
// belongs to a Group; cancelling a group invalidates everything scheduled for
// a phase that ended early.
package schedule

import "sort"

// Group tags entries that share a lifetime (for example, one game mode).
type Group string

// ID identifies a scheduled entry for individual cancellation.
type ID uint64

type entry[T any] struct {
	id     ID
	due    uint64
	group  Group
	action T
}

// Queue holds actions ordered by due tick, then by insertion order.
// The zero value is ready to use.
type Queue[T any] struct {
	now     uint64
	nextID  ID
	entries []entry[T]
}

// Now returns the current tick of the queue.
func (q *Queue[T]) Now() uint64 {
	return q.now
}

// After schedules action to be returned by the Advance call that reaches
// Now()+delay. A delay of 0 is treated as 1: nothing runs in the tick that
// scheduled it.
func (q *Queue[T]) After(delay uint64, group Group, action T) ID {
	if delay == 0 {
		delay = 1
	}
	q.nextID++
	e := entry[T]{id: q.nextID, due: q.now + delay, group: group, action: action}

	// Insert after every entry due at or before e.due to keep FIFO order per tick.
	i := sort.Search(len(q.entries), func(i int) bool {
		return q.entries[i].due > e.due
	})
	q.entries = append(q.entries, entry[T]{})
	copy(q.entries[i+1:], q.entries[i:])
	q.entries[i] = e
	return e.id
}

// Cancel removes a single entry. Returns false if it already ran or was cancelled.
func (q *Queue[T]) Cancel(id ID) bool {
	for i, e := range q.entries {
		if e.id == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

// CancelGroup removes every pending entry of the group and returns how many were removed.
func (q *Queue[T]) CancelGroup(group Group) int {
	kept := q.entries[:0]
	removed := 0
	for _, e := range q.entries {
		if e.group == group {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	// Clear the tail so dropped actions can be collected.
	for i := len(kept); i < len(q.entries); i++ {
		q.entries[i] = entry[T]{}
	}
	q.entries = kept
	return removed
}

// Pending returns the number of entries waiting in the group.
func (q *Queue[T]) Pending(group Group) int {
	n := 0
	for _, e := range q.entries {
		if e.group == group {
			n++
		}
	}
	return n
}

// Remaining returns the ticks left until the first entry of the group is due,
// and false if the group has nothing pending.
func (q *Queue[T]) Remaining(group Group) (uint64, bool) {
	for _, e := range q.entries {
		if e.group == group {
			return e.due - q.now, true
		}
	}
	return 0, false
}

// Len returns the total number of pending entries.
func (q *Queue[T]) Len() int {
	return len(q.entries)
}

// Advance moves the queue one tick forward and returns the actions now due,
// in due order. Actions scheduled while the caller processes the result are
// due no earlier than the next tick.
func (q *Queue[T]) Advance() []T {
	q.now++

	n := 0
	for n < len(q.entries) && q.entries[n].due <= q.now {
		n++
	}
	if n == 0 {
		return nil
	}

	due := make([]T, n)
	for i := range n {
		due[i] = q.entries[i].action
	}
	q.entries = append(q.entries[:0], q.entries[n:]...)
	return due
}

// Reset drops every entry and rewinds the clock.
func (q *Queue[T]) Reset() {
	q.now = 0
	q.entries = nil
}
