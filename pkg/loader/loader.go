// Package loader provides a generic, per-request batch loader. It collapses
// many single-key lookups issued during one execution into one batched fetch
// per unique key set and caches results for the loader's lifetime.
//
// Batching is an explicit dispatch primitive rather than an implicit
// scheduler tick: Load enqueues a key and hands back a Thunk; the open batch
// is dispatched exactly once, when the first thunk is forced, when MaxBatch
// keys have accumulated, or when the Wait timer fires, whichever comes first.
// Every load issued before that point shares the single underlying fetch.
//
// A Loader is intended to live for exactly one request. Build a fresh set of
// loaders per execution; no cache state may cross requests.
package loader

import (
	"context"
	"sync"
	"time"
)

// Thunk is a deferred load result. Forcing it blocks until the batch it
// belongs to has been dispatched and resolved.
type Thunk[V any] func() (V, error)

// FetchFunc performs one batched fetch for a deduplicated set of keys.
// Keys with no matching record must simply be absent from the result map;
// list-valued fetchers should map missing keys to empty slices themselves
// when empty-not-nil cardinality is required.
type FetchFunc[K comparable, V any] func(ctx context.Context, keys []K) (map[K]V, error)

// Config tunes batching behavior
type Config struct {
	// Wait is the maximum time an open batch waits for more keys before
	// dispatching. Zero disables the timer; the batch then dispatches when
	// the first thunk is forced or MaxBatch is reached.
	Wait time.Duration

	// MaxBatch caps the number of keys per fetch. Zero means no cap.
	MaxBatch int

	// OnDispatch, when set, observes the size of every dispatched batch
	OnDispatch func(batchSize int)
}

// Loader batches and caches lookups for a single foreign-key relation
type Loader[K comparable, V any] struct {
	fetch  FetchFunc[K, V]
	config Config

	mu    sync.Mutex
	cache map[K]Thunk[V]
	batch *batch[K, V]
}

// batch accumulates keys until dispatched. done is closed after results and
// err are set; thunks block on it.
type batch[K comparable, V any] struct {
	keys       []K
	results    map[K]V
	err        error
	done       chan struct{}
	dispatched bool
}

// New creates a loader around the given batched fetch function
func New[K comparable, V any](fetch FetchFunc[K, V], config Config) *Loader[K, V] {
	return &Loader[K, V]{
		fetch:  fetch,
		config: config,
		cache:  make(map[K]Thunk[V]),
	}
}

// Load enqueues a key on the open batch and returns a Thunk for its result.
// Repeated loads of the same key return the same cached thunk and never
// trigger a second fetch.
func (l *Loader[K, V]) Load(ctx context.Context, key K) Thunk[V] {
	l.mu.Lock()

	if thunk, ok := l.cache[key]; ok {
		l.mu.Unlock()
		return thunk
	}

	if l.batch == nil {
		b := &batch[K, V]{done: make(chan struct{})}
		l.batch = b
		if l.config.Wait > 0 {
			time.AfterFunc(l.config.Wait, func() {
				l.dispatch(ctx, b)
			})
		}
	}

	b := l.batch
	b.keys = append(b.keys, key)
	full := l.config.MaxBatch > 0 && len(b.keys) >= l.config.MaxBatch

	thunk := Thunk[V](func() (V, error) {
		l.dispatch(ctx, b)
		<-b.done
		if b.err != nil {
			var zero V
			return zero, b.err
		}
		// Absent keys resolve to the zero value; cardinality policy for
		// list-valued relations is enforced by the fetch function
		return b.results[key], nil
	})
	l.cache[key] = thunk
	l.mu.Unlock()

	if full {
		l.dispatch(ctx, b)
	}
	return thunk
}

// LoadMany enqueues every key and returns a Thunk yielding results in key
// order. All keys join the same batch when loaded before dispatch.
func (l *Loader[K, V]) LoadMany(ctx context.Context, keys []K) Thunk[[]V] {
	thunks := make([]Thunk[V], len(keys))
	for i, key := range keys {
		thunks[i] = l.Load(ctx, key)
	}
	return func() ([]V, error) {
		values := make([]V, len(thunks))
		for i, thunk := range thunks {
			value, err := thunk()
			if err != nil {
				return nil, err
			}
			values[i] = value
		}
		return values, nil
	}
}

// Prime seeds the cache with an already-known value, so later loads of the
// key resolve without joining a batch
func (l *Loader[K, V]) Prime(key K, value V) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.cache[key]; !ok {
		l.cache[key] = func() (V, error) { return value, nil }
	}
}

// dispatch runs the batched fetch exactly once. A fetch error fails every
// pending thunk of the batch with that same error; there is no partial
// success.
func (l *Loader[K, V]) dispatch(ctx context.Context, b *batch[K, V]) {
	l.mu.Lock()
	if b.dispatched {
		l.mu.Unlock()
		return
	}
	b.dispatched = true
	if l.batch == b {
		l.batch = nil
	}
	keys := b.keys
	l.mu.Unlock()

	if l.config.OnDispatch != nil {
		l.config.OnDispatch(len(keys))
	}

	b.results, b.err = l.fetch(ctx, keys)
	close(b.done)
}
