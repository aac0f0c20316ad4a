package cad

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrClosed is returned for calls submitted after the apartment shut down.
var ErrClosed = errors.New("automation apartment closed")

// apartment runs functions on a single goroutine pinned to one OS thread.
// COM objects created there must only be touched from inside do.
type apartment struct {
	calls chan func()
	quit  chan struct{}
	done  chan struct{}
	once  sync.Once
}

// startApartment starts the worker thread and runs init on it. If init fails
// the worker exits and the error is returned. uninit runs on the same thread
// after close.
func startApartment(init func() error, uninit func()) (*apartment, error) {
	a := &apartment{
		calls: make(chan func()),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	ready := make(chan error, 1)
	go a.loop(init, uninit, ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return a, nil
}

func (a *apartment) loop(init func() error, uninit func(), ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(a.done)

	if err := init(); err != nil {
		ready <- err
		return
	}
	defer uninit()
	ready <- nil

	for {
		select {
		case fn := <-a.calls:
			fn()
		case <-a.quit:
			return
		}
	}
}

// do runs fn on the apartment thread and waits for its result. A cancelled ctx
// stops the wait; fn itself is not interrupted once started.
func (a *apartment) do(ctx context.Context, fn func() error) error {
	errc := make(chan error, 1)
	select {
	case a.calls <- func() { errc <- fn() }:
	case <-a.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close stops the worker and waits for uninit to finish. Safe to call twice.
func (a *apartment) close() {
	a.once.Do(func() { close(a.quit) })
	<-a.done
}
