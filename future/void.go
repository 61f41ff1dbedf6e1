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

// Void is the Future, which carries no value, but the completion fact only
type Void = Future[struct{}]

// NewVoid returns a not settled Void future
func NewVoid() *Void {
	return New[struct{}]()
}

// ResolvedVoid returns a Void future, which is already completed successfully
func ResolvedVoid() *Void {
	return Resolved(struct{}{})
}
