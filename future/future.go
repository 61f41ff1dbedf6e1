// Copyright 2024 The Solaris Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package future

import (
	"context"
	"fmt"
	"sync"

	"github.com/solarisdb/await/chans"
)

// Future represents a result of an asynchronous computation. The object is
// settled not more than once, either by Complete() or by Fail(), and the done
// channel is closed at that moment. All the reads made after the done channel
// is closed observe the same terminal value and error.
type Future[T any] struct {
	// start is not nil for the cold futures only, activate() runs it via
	// startOnce on the first observation
	start     func()
	startOnce sync.Once

	res      T
	err      error
	done     chan struct{}
	doneOnce sync.Once
}

// New returns a not settled Future, which should be completed by the Complete()
// or Fail() calls later
func New[T any]() *Future[T] {
	f := new(Future[T])
	f.done = make(chan struct{})
	return f
}

// Resolved returns a Future, which is already settled with the value v
func Resolved[T any](v T) *Future[T] {
	f := New[T]()
	f.Complete(v)
	return f
}

// Failed returns a Future, which is already settled with the error err
func Failed[T any](err error) *Future[T] {
	f := New[T]()
	f.Fail(err)
	return f
}

// Complete settles the Future with the value v. It returns true if the call
// defined the terminal state, or false if the Future was settled before
func (f *Future[T]) Complete(v T) bool {
	return f.settle(v, nil)
}

// Fail settles the Future with the error err, which must not be nil. It returns
// true if the call defined the terminal state, or false if the Future was
// settled before
func (f *Future[T]) Fail(err error) bool {
	if err == nil {
		panic("cannot fail the future with the nil error")
	}
	var v T
	return f.settle(v, err)
}

// Done returns the channel, which is closed when the Future is settled. Calling
// Done on a cold future starts its computation
func (f *Future[T]) Done() <-chan struct{} {
	f.activate()
	return f.done
}

// Result returns the terminal value and error. The call blocks until the Future
// is settled. Calling Result on a cold future starts its computation
func (f *Future[T]) Result() (T, error) {
	f.activate()
	<-f.done
	return f.res, f.err
}

// Err returns the terminal error, or nil if the Future is completed with a value.
// The call blocks until the Future is settled. Calling Err on a cold future
// starts its computation
func (f *Future[T]) Err() error {
	f.activate()
	<-f.done
	return f.err
}

// Wait blocks until the Future is settled or the ctx is closed, whatever happens
// first. It returns ctx.Err() if the context was closed before the terminal
// state was reached. Calling Wait on a cold future starts its computation
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	f.activate()
	select {
	case <-f.done:
		return f.res, f.err
	case <-ctx.Done():
		var v T
		return v, ctx.Err()
	}
}

// IsDone returns whether the Future is settled. The call never blocks and it
// does not start a cold future computation
func (f *Future[T]) IsDone() bool {
	return !chans.IsOpened(f.done)
}

// String implements fmt.Stringify
func (f *Future[T]) String() string {
	if !f.IsDone() {
		return "{done: false}"
	}
	return fmt.Sprintf("{done: true, err: %v}", f.err)
}

func (f *Future[T]) settle(v T, err error) bool {
	won := false
	f.doneOnce.Do(func() {
		f.res = v
		f.err = err
		close(f.done)
		won = true
	})
	return won
}

func (f *Future[T]) activate() {
	if f.start != nil {
		f.startOnce.Do(f.start)
	}
}
