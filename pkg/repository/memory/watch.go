package memory

import (
	"context"
	"sync"
)

// watcher fans out change notifications to subscribers of one entity type.
type watcher struct {
	mu   sync.Mutex
	subs map[uint64]func()
	next uint64
}

func newWatcher() *watcher {
	return &watcher{subs: make(map[uint64]func())}
}

func (w *watcher) subscribe(push func()) (cancel func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.next
	w.next++
	w.subs[id] = push

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subs, id)
	}
}

func (w *watcher) notify() {
	w.mu.Lock()
	pushes := make([]func(), 0, len(w.subs))
	for _, push := range w.subs {
		pushes = append(pushes, push)
	}
	w.mu.Unlock()

	for _, push := range pushes {
		push()
	}
}

// watchSnapshots delivers the current snapshot immediately and a fresh one on
// every notify. The channel holds at most one pending snapshot; a slow
// subscriber only ever misses intermediate states, never the latest one.
func watchSnapshots[T any](ctx context.Context, w *watcher, snapshot func() []T) <-chan []T {
	ch := make(chan []T, 1)

	push := func() {
		snap := snapshot()
		select {
		case <-ctx.Done():
			return
		default:
		}
		for {
			select {
			case ch <- snap:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	}

	push()
	cancel := w.subscribe(push)
	go func() {
		<-ctx.Done()
		cancel()
	}()

	return ch
}
