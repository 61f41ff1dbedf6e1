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

package await

import (
	"context"
	"time"

	context2 "github.com/solarisdb/await/context"
	errors2 "github.com/solarisdb/await/errors"
	"github.com/solarisdb/await/future"
	"github.com/solarisdb/await/watchdog"
)

type (
	// Operation represents an asynchronous computation, which is already in
	// flight. The await functions never schedule or re-run the computation,
	// they only observe its terminal state
	Operation[T any] interface {
		// Done returns the channel, which is closed when the operation reaches
		// its terminal state
		Done() <-chan struct{}
		// Result returns the terminal value and error. The call may block
		// until the operation is done
		Result() (T, error)
	}

	// VoidOperation represents an asynchronous computation, which signals the
	// completion fact only
	VoidOperation interface {
		// Done returns the channel, which is closed when the operation reaches
		// its terminal state
		Done() <-chan struct{}
		// Err returns the terminal error. The call may block until the
		// operation is done
		Err() error
	}
)

var _ Operation[int] = (*future.Future[int])(nil)
var _ VoidOperation = (*future.Void)(nil)

// WithTimeout waits up to d for the in-flight operation op and returns the
// Future of the wait outcome. The Future repeats the op result as is, value or
// error, if op reaches its terminal state in time. Otherwise it fails with
// errors.ErrTimeout, or with errors.ErrCanceled if the ctx was closed before
// the deadline fired.
//
// The ctx maybe nil when the caller has no cancellation intentions. The op
// itself is not affected in any way, it keeps running even when the wait gives
// up on it.
func WithTimeout[T any](ctx context.Context, op Operation[T], d time.Duration) *future.Future[T] {
	return WithTimeoutCause(ctx, op, d, errors2.ErrTimeout)
}

// WithDeadline is like WithTimeout, but the wait is limited by the absolute
// time point at instead of the duration
func WithDeadline[T any](ctx context.Context, op Operation[T], at time.Time) *future.Future[T] {
	return WithTimeoutCause(ctx, op, time.Until(at), errors2.ErrTimeout)
}

// WithTimeoutVoid is the completion-only form of WithTimeout for the
// operations that produce no value
func WithTimeoutVoid(ctx context.Context, op VoidOperation, d time.Duration) *future.Void {
	if op == nil {
		panic("cannot await the nil operation")
	}
	return WithTimeoutCause[struct{}](ctx, voidOp{op}, d, errors2.ErrTimeout)
}

// WithTimeoutCause is the WithTimeout, which fails the result with the cause
// provided instead of errors.ErrTimeout when the deadline fires first. The
// cancellation is still reported as errors.ErrCanceled. The nil cause falls
// back to errors.ErrTimeout
func WithTimeoutCause[T any](ctx context.Context, op Operation[T], d time.Duration, cause error) *future.Future[T] {
	if op == nil {
		panic("cannot await the nil operation")
	}
	if cause == nil {
		cause = errors2.ErrTimeout
	}
	if ctx == nil {
		ctx = context.Background()
	}
	res := future.New[T]()
	// reading the done channel starts a cold operation, so it must happen
	// exactly once and before the deadline timer is armed
	opDone := op.Done()
	inner, cancel := context2.WithCancelError(ctx)
	tmr := watchdog.Arm(func() { cancel(cause) }, d)
	go func() {
		defer tmr.Disarm()
		defer cancel(nil)
		select {
		case <-opDone:
		case <-inner.Done():
		}
		// the operation result wins the ties, check it first
		select {
		case <-opDone:
			if v, err := op.Result(); err != nil {
				res.Fail(err)
			} else {
				res.Complete(v)
			}
			return
		default:
		}
		if ctx.Err() != nil {
			// the caller cancellation takes precedence over the deadline
			res.Fail(errors2.ErrCanceled)
			return
		}
		res.Fail(cause)
	}()
	return res
}

// voidOp adapts VoidOperation to the value producing form by the empty value
type voidOp struct {
	op VoidOperation
}

func (v voidOp) Done() <-chan struct{} {
	return v.op.Done()
}

func (v voidOp) Result() (struct{}, error) {
	return struct{}{}, v.op.Err()
}
