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

	errors2 "github.com/solarisdb/await/errors"
)

// Go starts the computation fn in a separate goroutine right away and returns
// the Future for its result. The ctx is passed to the fn as is, the Future
// itself does not watch it
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	if fn == nil {
		panic("cannot run the nil function")
	}
	f := New[T]()
	go f.run(ctx, fn)
	return f
}

// Lazy returns a cold Future - the computation fn is not started until somebody
// shows an interest in the result by calling Done(), Result(), Err() or Wait().
// No matter how many observers the Future has, the fn runs not more than once
func Lazy[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	if fn == nil {
		panic("cannot run the nil function")
	}
	f := New[T]()
	f.start = func() {
		go f.run(ctx, fn)
	}
	return f
}

// run executes the fn and settles the future by its result. The panics are turned
// to the failed state, so a misbehaving computation does not crash the process
func (f *Future[T]) run(ctx context.Context, fn func(ctx context.Context) (T, error)) {
	defer func() {
		if r := recover(); r != nil {
			var v T
			f.settle(v, fmt.Errorf("the computation panicked (%v): %w", r, errors2.ErrInternal))
		}
	}()
	f.settle(fn(ctx))
}
