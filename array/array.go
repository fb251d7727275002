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
	"fmt"
	"sync/atomic"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/bitutil"
	"github.com/quiverdata/quiver/internal/debug"
)

// NullValueStr is the sentinel used when rendering a null element for
// diagnostics; the stored bytes of a null slot are unspecified and must
// not be interpreted.
const NullValueStr = "(null)"

// Interface represents an immutable sequence of values.
type Interface interface {
	// DataType returns the type tag of the array.
	DataType() quiver.DataType

	// NullN returns the number of null values in the array.
	NullN() int

	// Len returns the number of elements in the array.
	Len() int

	// IsNull returns true if value at index is null.
	IsNull(i int) bool

	// IsValid returns true if value at index is not null.
	IsValid(i int) bool

	// Data returns the underlying type-erased descriptor of the array.
	Data() *Data

	// Retain increases the reference count by 1.
	// Retain may be called simultaneously from multiple goroutines.
	Retain()

	// Release decreases the reference count by 1.
	// Release may be called simultaneously from multiple goroutines.
	Release()

	fmt.Stringer
}

type array struct {
	refCount        int64
	data            *Data
	nullBitmapBytes []byte
}

// Retain increases the reference count by 1.
// Retain may be called simultaneously from multiple goroutines.
func (a *array) Retain() {
	atomic.AddInt64(&a.refCount, 1)
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
// Release may be called simultaneously from multiple goroutines.
func (a *array) Release() {
	debug.Assert(atomic.LoadInt64(&a.refCount) > 0, "too many releases")

	if atomic.AddInt64(&a.refCount, -1) == 0 {
		a.data.Release()
		a.data, a.nullBitmapBytes = nil, nil
	}
}

func (a *array) setData(data *Data) {
	if a.data != nil {
		a.data.Release()
	}

	data.Retain()
	if data.nulls != nil {
		a.nullBitmapBytes = data.nulls.Bytes()
	}
	a.data = data
}

// DataType returns the type tag of the array.
func (a *array) DataType() quiver.DataType { return a.data.dtype }

// NullN returns the number of null values in the array.
func (a *array) NullN() int { return a.data.NullN() }

// Len returns the number of elements in the array.
func (a *array) Len() int { return a.data.length }

// Data returns the underlying type-erased descriptor.
func (a *array) Data() *Data { return a.data }

// Offset returns the logical offset of this array into its buffers.
func (a *array) Offset() int { return a.data.offset }

// IsNull returns true if value at index is null.
func (a *array) IsNull(i int) bool {
	return len(a.nullBitmapBytes) != 0 && bitutil.BitIsNotSet(a.nullBitmapBytes, a.data.offset+i)
}

// IsValid returns true if value at index is not null.
func (a *array) IsValid(i int) bool {
	return len(a.nullBitmapBytes) == 0 || bitutil.BitIsSet(a.nullBitmapBytes, a.data.offset+i)
}

// MakeFromData constructs a strongly-typed array from the type-erased
// descriptor, dispatching on its type tag. Viewing an array as Data and
// reconstructing it through MakeFromData is lossless: the result shares the
// same buffers bit for bit.
func MakeFromData(data *Data) Interface {
	switch data.dtype.ID() {
	case quiver.UINT8:
		return NewNumericData[uint8](data)
	case quiver.INT8:
		return NewNumericData[int8](data)
	case quiver.UINT16:
		return NewNumericData[uint16](data)
	case quiver.INT16:
		return NewNumericData[int16](data)
	case quiver.UINT32:
		return NewNumericData[uint32](data)
	case quiver.INT32:
		return NewNumericData[int32](data)
	case quiver.UINT64:
		return NewNumericData[uint64](data)
	case quiver.INT64:
		return NewNumericData[int64](data)
	case quiver.FLOAT32:
		return NewNumericData[float32](data)
	case quiver.FLOAT64:
		return NewNumericData[float64](data)
	case quiver.STRING:
		return NewStringData(data)
	case quiver.BINARY:
		return NewBinaryData(data)
	default:
		panic(fmt.Errorf("array: unknown data type %s", data.dtype.Name()))
	}
}

// NewSlice constructs a zero-copy slice of the array with the indicated
// indices i and j, only adjusting the descriptor's offset and length.
func NewSlice(arr Interface, i, j int) Interface {
	data := NewSliceData(arr.Data(), i, j)
	slice := MakeFromData(data)
	data.Release()
	return slice
}
