package trigger

import (
	"container/heap"
	"time"

	"microjournal/notify"
)

// pending is one registered trigger waiting to fire.
type pending struct {
	id      ID
	at      time.Time
	rule    Rule
	content notify.Content
	payload string
	index   int // position in the heap's backing array
}

// firingQueue orders pending triggers by fire time and keeps a by-ID map so
// cancellation doesn't have to scan.
type firingQueue struct {
	backingArray []*pending
	byID         map[ID]*pending
}

func newFiringQueue() *firingQueue {
	q := &firingQueue{
		backingArray: []*pending{},
		byID:         make(map[ID]*pending),
	}
	heap.Init(q)
	return q
}

func (q *firingQueue) Len() int {
	return len(q.backingArray)
}

func (q *firingQueue) Less(i, j int) bool {
	return q.backingArray[i].at.Before(q.backingArray[j].at)
}

func (q *firingQueue) Swap(i, j int) {
	q.backingArray[i], q.backingArray[j] = q.backingArray[j], q.backingArray[i]
	q.backingArray[i].index = i
	q.backingArray[j].index = j
}

func (q *firingQueue) Push(x any) {
	p, ok := x.(*pending)
	if !ok {
		return
	}

	p.index = len(q.backingArray)
	q.byID[p.id] = p
	q.backingArray = append(q.backingArray, p)
}

func (q *firingQueue) Pop() any {
	n := len(q.backingArray)
	if n == 0 {
		return nil
	}

	popped := q.backingArray[n-1]
	q.backingArray[n-1] = nil
	q.backingArray = q.backingArray[:n-1]
	delete(q.byID, popped.id)

	return popped
}

// peek returns the earliest pending trigger without removing it.
func (q *firingQueue) peek() *pending {
	if len(q.backingArray) == 0 {
		return nil
	}
	return q.backingArray[0]
}

// remove drops the trigger with the given ID. Returns false when unknown.
func (q *firingQueue) remove(id ID) bool {
	p, ok := q.byID[id]
	if !ok {
		return false
	}
	heap.Remove(q, p.index)
	return true
}
