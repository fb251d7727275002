// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package array

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongBufferCount is the LayoutError kind for a buffer sequence
	// whose count does not match what the type tag dictates.
	ErrWrongBufferCount = errors.New("wrong number of buffers")

	// ErrBufferTooSmall is the LayoutError kind for a buffer whose length
	// cannot hold the declared number of elements.
	ErrBufferTooSmall = errors.New("buffer too small")

	// ErrOffsetOutOfRange is the LayoutError kind for an offset that points
	// outside the data buffer, or a negative length/offset.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrNonMonotonicOffsets is the LayoutError kind for an offsets buffer
	// that is not monotonically non-decreasing.
	ErrNonMonotonicOffsets = errors.New("offsets are not monotonically non-decreasing")

	// ErrIndexOutOfRange is carried by the panics raised on out-of-bounds
	// element access. It is a caller error and is never recovered internally.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// A LayoutError reports a mismatch between declared array metadata and the
// physical buffers supplied to NewDataFromBuffers. It wraps one of the kind
// sentinels above, so callers can dispatch with errors.Is, correct the
// buffers and retry.
type LayoutError struct {
	kind   error
	detail string
}

func layoutErrorf(kind error, format string, args ...interface{}) *LayoutError {
	return &LayoutError{kind: kind, detail: fmt.Sprintf(format, args...)}
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("array: %s: %s", e.kind.Error(), e.detail)
}

func (e *LayoutError) Unwrap() error { return e.kind }

func indexOutOfRange(i, n int) error {
	return fmt.Errorf("array: %w: index %d with length %d", ErrIndexOutOfRange, i, n)
}
