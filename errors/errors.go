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
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc/status"
)

var (
	// ErrTimeout indicates that an operation did not reach its terminal state
	// within the time allowed for the wait
	ErrTimeout = errors.New("timed out")
	// ErrCanceled indicates that the wait was interrupted by the caller before
	// the operation reached its terminal state
	ErrCanceled = errors.New("canceled")
	// ErrClosed indicates that an object is closed or shutdown, so it cannot be used anymore
	ErrClosed = errors.New("closed")
	// ErrInvalid indicates that a parameter or an object state is invalid for the call
	ErrInvalid = errors.New("invalid")
	// ErrInternal indicates an internal problem, which normally should not happen.
	// It is also the class for the errors that cannot be mapped to the other variables
	ErrInternal = errors.New("internal error")
)

// Is repeats the standard errors.Is behavior, but it also matches the gRPC
// code-based errors against the package variables, so the code is written
// like this:
//
//	if errors.Is(err, errors.ErrTimeout) {...
//
// works for both the wrapped package errors and the errors received from a
// gRPC call.
func Is(err, target error) bool {
	if errors.Is(err, target) {
		return true
	}
	if st, ok := status.FromError(err); ok && st != nil {
		if e, ok := grpcToErrors[st.Code()]; ok {
			return e == target
		}
	}
	return false
}

const jsonErrorMarker = "@#json:"

// EmbedObject allows to embed the obj, which must be serializable to JSON, into the
// error err message. The result error matches err for the Is() calls, and the object
// may be extracted from it by ExtractObject(). The function panics if obj or err is
// nil, or if the err already contains an embedded object.
//
// The embedding survives the gRPC wrapping (see GRPCWrap), so an object may be
// passed together with the error class through the wire.
func EmbedObject(obj interface{}, err error) error {
	if err == nil {
		panic("could not embed an object into the nil error")
	}
	if obj == nil {
		panic("could not embed the nil object into an error")
	}
	if strings.Contains(err.Error(), jsonErrorMarker) {
		panic(fmt.Sprintf("the error %q already contains an embedded object", err))
	}
	buf, mErr := json.Marshal(obj)
	if mErr != nil {
		panic(fmt.Sprintf("could not marshal the object %v: %v", obj, mErr))
	}
	return fmt.Errorf("%s%s%s %w", jsonErrorMarker, string(buf), jsonErrorMarker, err)
}

// ExtractObject scans the err message for an object embedded by EmbedObject and
// unmarshals it into obj. It returns true if the object is found and unmarshalled
// successfully.
func ExtractObject(err error, obj interface{}) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	start := strings.Index(msg, jsonErrorMarker)
	if start < 0 {
		return false
	}
	start += len(jsonErrorMarker)
	end := strings.Index(msg[start:], jsonErrorMarker)
	if end < 0 {
		return false
	}
	return json.Unmarshal([]byte(msg[start:start+end]), obj) == nil
}
