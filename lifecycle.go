package docconv

import (
	"context"
	"sync"
	"sync/atomic"
)

// The package-level engine used by Init, Convert and Teardown.
var (
	defaultMu     sync.Mutex
	defaultEngine atomic.Pointer[Engine]
)

// Init creates the package-level engine. Calling Init again before Teardown
// fails with a lifecycle error.
func Init(opts ...Option) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultEngine.Load() != nil {
		return &Error{Kind: KindLifecycle, Op: "init", Message: "already initialized"}
	}
	e, err := New(opts...)
	if err != nil {
		return err
	}
	defaultEngine.Store(e)
	return nil
}

// Convert runs a conversion on the package-level engine. It fails with a
// lifecycle error before Init and after Teardown.
func Convert(ctx context.Context, req Request) error {
	e := defaultEngine.Load()
	if e == nil {
		return &Error{
			Kind:    KindLifecycle,
			Op:      "convert " + req.From.String() + "->" + req.To.String(),
			Message: "Init has not been called",
		}
	}
	return e.Convert(ctx, req)
}

// Teardown releases the package-level engine. Calling it without a preceding
// Init fails with a lifecycle error.
func Teardown() error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	e := defaultEngine.Swap(nil)
	if e == nil {
		return &Error{Kind: KindLifecycle, Op: "teardown", Message: "not initialized"}
	}
	e.Teardown()
	return nil
}
