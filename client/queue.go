package client

import (
	"context"
	"log"
	"sync"
	"time"
)

type syncTask struct {
	key string
	run func(ctx context.Context) error
}

// syncQueue serializes background sync work: a single worker drains tasks in
// enqueue order, so two mutations of the same cart line can never race their
// network calls. Failures are logged and dropped; the local store stays the
// source of truth for the active session.
type syncQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	tasks   []*syncTask
	index   map[string]*syncTask
	running bool
	closed  bool
}

func newSyncQueue() *syncQueue {
	q := &syncQueue{index: make(map[string]*syncTask)}
	q.cond = sync.NewCond(&q.mu)
	go q.drain()
	return q
}

// Enqueue schedules run under a conflict key. A pending task with the same
// key is replaced and moved to the tail: only the latest local state for a
// key is worth pushing, and it syncs after everything queued before it.
func (q *syncQueue) Enqueue(key string, run func(ctx context.Context) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	if t, ok := q.index[key]; ok {
		t.run = run
		for i, pending := range q.tasks {
			if pending == t {
				q.tasks = append(append(q.tasks[:i], q.tasks[i+1:]...), t)
				break
			}
		}
		return
	}
	t := &syncTask{key: key, run: run}
	q.tasks = append(q.tasks, t)
	q.index[key] = t
	q.cond.Broadcast()
}

func (q *syncQueue) drain() {
	for {
		q.mu.Lock()
		for len(q.tasks) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.tasks) == 0 && q.closed {
			q.mu.Unlock()
			return
		}
		t := q.tasks[0]
		q.tasks = q.tasks[1:]
		delete(q.index, t.key)
		q.running = true
		q.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := t.run(ctx); err != nil {
			log.Printf("⚠️ Background sync failed (%s): %v", t.key, err)
		}
		cancel()

		q.mu.Lock()
		q.running = false
		q.cond.Broadcast()
		q.mu.Unlock()
	}
}

// Wait blocks until every queued task has finished.
func (q *syncQueue) Wait() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.tasks) > 0 || q.running {
		q.cond.Wait()
	}
}

func (q *syncQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()
}
