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
	"time"
)

// Sleep blocks the calling goroutine for the sleepTime or until the ctx is closed.
// It returns ctx.Err() if the context was closed before the sleepTime elapsed, or
// nil if the whole sleepTime passed
func Sleep(ctx ctx.Context, sleepTime time.Duration) error {
	if sleepTime <= 0 {
		return ctx.Err()
	}
	tmr := time.NewTimer(sleepTime)
	defer tmr.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-tmr.C:
		return nil
	}
}
