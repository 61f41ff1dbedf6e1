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
Package errors contains the general class of errors the library reports for
the operations it observes. It is proposed to use the globally defined error
variables to distinguish the termination causes - the deadline firing, an
external cancellation or an internal problem - with errors.Is, no matter how
deep the variables are wrapped.

The package also contains some gRPC helper functions that allows to encode the
general errors to the gRPC code-based errors, so the errors can be passed
through a distributed system and recovered back to the general classes on the
other side of the wire.
*/
package errors
