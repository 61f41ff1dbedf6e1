// Copyright 2023 The acquirecloud Authors
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
Package watchdog allows arming one-shot actions, which fire when their deadlines
come. The armed action may be disarmed while it is not fired yet, so the package
serves the watchdog functionality - a special action is taken only if nobody
disarmed it in the specific time.

All the armed actions are kept in one heap and served by a small number of the
watcher goroutines, so arming an action is much cheaper than running a dedicated
timer goroutine per deadline.
*/
package watchdog
