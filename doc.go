// Copyright 2024 The Solaris Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
/*
Package await allows to limit the time of waiting for an asynchronous operation
result. The operation is already in flight, so the package never starts or
re-runs it, but it watches the operation terminal state for the time provided.
The wait ends by the first of the three events - the operation is done, the
deadline fires, or the caller cancels the wait via the context. The outcome is
reported exactly once via the returned future:

  - the operation result (a value or the operation own error) as is, if the
    operation made it in time;
  - errors.ErrCanceled, if the caller context was closed before the operation
    was done. The cancellation takes precedence over the deadline when both of
    them happened;
  - errors.ErrTimeout (or the caller provided cause) otherwise.

The operation keeps running in the background even after the wait gives up on
it, the package does not cancel the operation work.
*/
package await
