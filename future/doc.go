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
Package future provides the handle for a result of an asynchronous computation.
The Future[T] object is written once, when the computation reaches its terminal
state, and it may be read many times by many goroutines after that. The package
offers several ways to get a handle - wrap an own computation started by Go(),
postpone the start until the first interest with Lazy(), or adopt an already
known result via Resolved() and Failed().

The handles are raced against deadlines and cancellations by the await package,
but they are useful on their own as a one-shot promise.
*/
package future
