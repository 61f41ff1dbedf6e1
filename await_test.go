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
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	errors2 "github.com/solarisdb/await/errors"
	"github.com/solarisdb/await/future"
	"github.com/stretchr/testify/assert"
)

func TestWithTimeout_InTime(t *testing.T) {
	op := future.Go(context.Background(), func(_ context.Context) (int, error) {
		time.Sleep(10 * time.Millisecond)
		return 42, nil
	})
	start := time.Now()
	v, err := WithTimeout(context.Background(), op, 500*time.Millisecond).Result()
	assert.Nil(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, time.Now().Sub(start) < 250*time.Millisecond)
}

func TestWithTimeout_Timeout(t *testing.T) {
	op := future.New[int]()
	start := time.Now()
	v, err := WithTimeout(context.Background(), op, 60*time.Millisecond).Result()
	elapsed := time.Now().Sub(start)
	assert.Equal(t, 0, v)
	assert.Equal(t, errors2.ErrTimeout, err)
	assert.False(t, errors2.Is(err, errors2.ErrCanceled))
	assert.True(t, elapsed >= 60*time.Millisecond)
	assert.True(t, elapsed < time.Second)
}

func TestWithTimeout_Canceled(t *testing.T) {
	op := future.New[int]()
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()
	start := time.Now()
	_, err := WithTimeout(ctx, op, 500*time.Millisecond).Result()
	elapsed := time.Now().Sub(start)
	assert.Equal(t, errors2.ErrCanceled, err)
	assert.False(t, errors2.Is(err, errors2.ErrTimeout))
	assert.True(t, elapsed >= 30*time.Millisecond)
	assert.True(t, elapsed < 250*time.Millisecond)
}

func TestWithTimeout_ZeroTimeout(t *testing.T) {
	op := future.New[int]()
	start := time.Now()
	_, err := WithTimeout(context.Background(), op, 0).Result()
	assert.Equal(t, errors2.ErrTimeout, err)
	assert.True(t, time.Now().Sub(start) < 100*time.Millisecond)

	_, err = WithTimeout(context.Background(), op, -time.Second).Result()
	assert.Equal(t, errors2.ErrTimeout, err)
}

func TestWithTimeout_DoneOpWinsTheTie(t *testing.T) {
	op := future.Resolved(42)
	for i := 0; i < 100; i++ {
		v, err := WithTimeout(context.Background(), op, 0).Result()
		assert.Nil(t, err)
		assert.Equal(t, 42, v)
	}
}

func TestWithTimeout_FailurePassedThrough(t *testing.T) {
	opErr := fmt.Errorf("the operation gave up")
	op := future.Failed[int](opErr)
	_, err := WithTimeout(context.Background(), op, 100*time.Millisecond).Result()
	assert.Equal(t, opErr, err)
	assert.False(t, errors2.Is(err, errors2.ErrTimeout))
	assert.False(t, errors2.Is(err, errors2.ErrCanceled))
}

func TestWithTimeout_CanceledBeforeCall(t *testing.T) {
	op := future.New[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	_, err := WithTimeout(ctx, op, time.Minute).Result()
	assert.Equal(t, errors2.ErrCanceled, err)
	assert.True(t, time.Now().Sub(start) < 100*time.Millisecond)
}

func TestWithTimeout_CancellationBeatsTimeout(t *testing.T) {
	op := future.New[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// both the cancellation and the deadline are ready at the race time
	_, err := WithTimeout(ctx, op, 0).Result()
	assert.Equal(t, errors2.ErrCanceled, err)
}

func TestWithTimeout_NilCtx(t *testing.T) {
	v, err := WithTimeout(nil, future.Resolved("ok"), 50*time.Millisecond).Result()
	assert.Nil(t, err)
	assert.Equal(t, "ok", v)

	_, err = WithTimeout(nil, future.New[int](), 20*time.Millisecond).Result()
	assert.Equal(t, errors2.ErrTimeout, err)
}

func TestWithTimeout_NilOp(t *testing.T) {
	assert.Panics(t, func() {
		WithTimeout[int](context.Background(), nil, time.Second)
	})
}

func TestWithTimeout_LateCompletionIgnored(t *testing.T) {
	op := future.Go(context.Background(), func(_ context.Context) (int, error) {
		time.Sleep(80 * time.Millisecond)
		return 42, nil
	})
	res := WithTimeout(context.Background(), op, 20*time.Millisecond)
	_, err := res.Result()
	assert.Equal(t, errors2.ErrTimeout, err)

	// the operation keeps running on its own and completes
	v, err := op.Result()
	assert.Nil(t, err)
	assert.Equal(t, 42, v)
	// the wait outcome is reported once and never changes
	_, err = res.Result()
	assert.Equal(t, errors2.ErrTimeout, err)
}

func TestWithTimeout_LazyStartsOnce(t *testing.T) {
	var starts int32
	op := future.Lazy(context.Background(), func(_ context.Context) (int, error) {
		atomic.AddInt32(&starts, 1)
		time.Sleep(50 * time.Millisecond)
		return 7, nil
	})
	_, err := WithTimeout(context.Background(), op, 10*time.Millisecond).Result()
	assert.Equal(t, errors2.ErrTimeout, err)

	v, err := WithTimeout(context.Background(), op, time.Second).Result()
	assert.Nil(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&starts))
}

func TestWithTimeoutCause(t *testing.T) {
	cause := fmt.Errorf("the response did not arrive")
	_, err := WithTimeoutCause(context.Background(), future.New[int](), 20*time.Millisecond, cause).Result()
	assert.Equal(t, cause, err)

	// the cancellation is still reported as canceled
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = WithTimeoutCause(ctx, future.New[int](), time.Minute, cause).Result()
	assert.Equal(t, errors2.ErrCanceled, err)

	// the nil cause falls back to the default
	_, err = WithTimeoutCause(context.Background(), future.New[int](), 10*time.Millisecond, nil).Result()
	assert.Equal(t, errors2.ErrTimeout, err)
}

func TestWithDeadline(t *testing.T) {
	v, err := WithDeadline(context.Background(), future.Resolved(1), time.Now().Add(time.Second)).Result()
	assert.Nil(t, err)
	assert.Equal(t, 1, v)

	_, err = WithDeadline(context.Background(), future.New[int](), time.Now().Add(-time.Second)).Result()
	assert.Equal(t, errors2.ErrTimeout, err)

	start := time.Now()
	_, err = WithDeadline(context.Background(), future.New[int](), time.Now().Add(30*time.Millisecond)).Result()
	assert.Equal(t, errors2.ErrTimeout, err)
	assert.True(t, time.Now().Sub(start) >= 30*time.Millisecond)
}

func TestWithTimeoutVoid(t *testing.T) {
	op := future.NewVoid()
	go func() {
		time.Sleep(10 * time.Millisecond)
		op.Complete(struct{}{})
	}()
	assert.Nil(t, WithTimeoutVoid(context.Background(), op, 500*time.Millisecond).Err())

	assert.Equal(t, errors2.ErrTimeout, WithTimeoutVoid(context.Background(), future.NewVoid(), 20*time.Millisecond).Err())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, errors2.ErrCanceled, WithTimeoutVoid(ctx, future.NewVoid(), time.Minute).Err())

	opErr := fmt.Errorf("void op failed")
	vop := future.NewVoid()
	vop.Fail(opErr)
	assert.Equal(t, opErr, WithTimeoutVoid(context.Background(), vop, time.Minute).Err())

	assert.Panics(t, func() {
		WithTimeoutVoid(context.Background(), nil, time.Second)
	})
}

type chanOp struct {
	done chan struct{}
	v    string
}

func (c *chanOp) Done() <-chan struct{} { return c.done }

func (c *chanOp) Result() (string, error) { <-c.done; return c.v, nil }

func TestWithTimeout_CustomOperation(t *testing.T) {
	op := &chanOp{done: make(chan struct{})}
	go func() {
		op.v = "payload"
		close(op.done)
	}()
	v, err := WithTimeout[string](context.Background(), op, time.Second).Result()
	assert.Nil(t, err)
	assert.Equal(t, "payload", v)
}

func TestWithTimeout_Bunch(t *testing.T) {
	var timeouts, oks int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			op := future.Go(context.Background(), func(_ context.Context) (int, error) {
				time.Sleep(time.Duration(i) * time.Millisecond)
				return i, nil
			})
			_, err := WithTimeout(context.Background(), op, 50*time.Millisecond).Result()
			if err == nil {
				atomic.AddInt32(&oks, 1)
			} else {
				atomic.AddInt32(&timeouts, 1)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, int32(100), atomic.LoadInt32(&timeouts)+atomic.LoadInt32(&oks))
	assert.True(t, atomic.LoadInt32(&oks) >= 1)
	assert.True(t, atomic.LoadInt32(&timeouts) >= 1)
}
