// Copyright 2023 The acquirecloud Authors
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
package context

import (
	ctx "context"

	errors2 "github.com/solarisdb/await/errors"
)

// WrapChannel receives a channel ch and returns a context object, which will be
// closed as soon as the ch is closed. The context Err() reports errors.ErrClosed
// then. The values written to the channel, if any, are consumed by the wrapper
// and lost, so the function is intended for the signal channels.
func WrapChannel[V any](ch <-chan V) ctx.Context {
	if ch == nil {
		panic("cannot create context from nil channel")
	}
	c, cancel := WithCancelError(ctx.Background())
	go func() {
		for range ch {
		}
		cancel(errors2.ErrClosed)
	}()
	return c
}
