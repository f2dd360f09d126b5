package batch

import (
	"context"
	"sync"
)

// State is the lifecycle state of a Future.
type State int

// Future states. Completed and Failed are terminal.
const (
	StateDispatched State = iota
	StateCompleted
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateDispatched:
		return "dispatched"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Callbacks receive the outcome of an asynchronous call. Either may be nil.
type Callbacks[T any] struct {
	OnSuccess func(result T)
	OnFailure func(err error)
}

// ListCallbacks receive the outcome of an asynchronous list.
// Progress is called with the items of each page as it arrives; returning false stops
// the list and completes it with the items accumulated so far.
type ListCallbacks[T any] struct {
	Callbacks[[]T]

	Progress func(items []T) bool
}

// Future is the pending result of an asynchronous call.
type Future[T any] struct {
	mu     sync.Mutex
	state  State
	result T
	err    error
	done   chan struct{}
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{state: StateDispatched, done: make(chan struct{})}
}

// State returns the current state.
func (f *Future[T]) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state
}

// Done is closed once the future reaches a terminal state.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future settles and returns its result.
func (f *Future[T]) Wait() (T, error) {
	<-f.done

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.result, f.err
}

// complete moves the future to Completed. It returns ErrFutureSettled if it already settled.
func (f *Future[T]) complete(result T, callbacks Callbacks[T]) error {
	f.mu.Lock()

	if f.state != StateDispatched {
		f.mu.Unlock()

		return ErrFutureSettled
	}

	f.state = StateCompleted
	f.result = result
	f.mu.Unlock()

	if callbacks.OnSuccess != nil {
		callbacks.OnSuccess(result)
	}

	close(f.done)

	return nil
}

// fail moves the future to Failed. It returns ErrFutureSettled if it already settled.
func (f *Future[T]) fail(err error, callbacks Callbacks[T]) error {
	f.mu.Lock()

	if f.state != StateDispatched {
		f.mu.Unlock()

		return ErrFutureSettled
	}

	f.state = StateFailed
	f.err = err
	f.mu.Unlock()

	if callbacks.OnFailure != nil {
		callbacks.OnFailure(err)
	}

	close(f.done)

	return nil
}

// Go runs call in its own goroutine and returns a future for its result.
func Go[T any](ctx context.Context, call func(ctx context.Context) (T, error), callbacks Callbacks[T]) *Future[T] {
	future := newFuture[T]()

	go func() {
		result, err := call(ctx)
		if err != nil {
			_ = future.fail(err, callbacks)

			return
		}

		_ = future.complete(result, callbacks)
	}()

	return future
}

// ListAsync fetches the pages of handler without blocking the caller.
// Each page fetch runs in its own goroutine; its completion either dispatches the fetch of
// the next page or settles the future, so at most one page is in flight at a time.
func ListAsync[T any](ctx context.Context, handler PagingHandler[T], callbacks ListCallbacks[T]) *Future[[]T] {
	future := newFuture[[]T]()
	run := &listRun[T]{
		ctx:       ctx,
		handler:   handler,
		callbacks: callbacks,
		future:    future,
		items:     []T{},
	}

	run.dispatch("")

	return future
}

// listRun carries the accumulated state of one asynchronous list. It is touched by exactly
// one goroutine at a time since each fetch is started from the completion of the previous one.
type listRun[T any] struct {
	ctx       context.Context //nolint:containedctx
	handler   PagingHandler[T]
	callbacks ListCallbacks[T]
	future    *Future[[]T]
	items     []T
}

func (r *listRun[T]) dispatch(link string) {
	go func() {
		page, err := r.handler.fetch(r.ctx, link)
		r.onPage(page, err)
	}()
}

func (r *listRun[T]) onPage(page *Page[T], err error) {
	if err != nil {
		_ = r.future.fail(err, r.callbacks.Callbacks)

		return
	}

	r.items = append(r.items, page.Items...)

	proceed := true
	if r.callbacks.Progress != nil {
		proceed = r.callbacks.Progress(page.Items)
	}

	if proceed && page.NextLink != "" {
		r.dispatch(page.NextLink)

		return
	}

	_ = r.future.complete(r.items, r.callbacks.Callbacks)
}
