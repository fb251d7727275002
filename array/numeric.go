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
	"strings"

	json "github.com/goccy/go-json"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/memory"
)

// A Numeric is an immutable sequence of fixed-width values of type T: a
// values buffer of Len()*size_of(T) bytes plus an optional validity bitmap.
// The stored bytes of a null slot are unspecified and must not be
// interpreted.
type Numeric[T quiver.FixedWidthType] struct {
	array
	values []T
}

// NewNumericData creates a fixed-width array of T from the type-erased
// descriptor.
func NewNumericData[T quiver.FixedWidthType](data *Data) *Numeric[T] {
	a := &Numeric[T]{}
	a.refCount = 1
	a.setData(data)
	return a
}

// NumericFromSlice creates an all-valid array holding a copy of vs. The
// produced array carries no validity bitmap.
func NumericFromSlice[T quiver.FixedWidthType](mem memory.Allocator, vs []T) *Numeric[T] {
	bldr := NewNumericBuilderWithCapacity[T](mem, len(vs))
	defer bldr.Release()

	bldr.AppendValues(vs, nil)
	return bldr.NewNumericArray()
}

// NumericFromOptions creates an array from a slice of optional values,
// where a nil entry becomes a null element.
func NumericFromOptions[T quiver.FixedWidthType](mem memory.Allocator, vs []*T) *Numeric[T] {
	bldr := NewNumericBuilderWithCapacity[T](mem, len(vs))
	defer bldr.Release()

	for _, v := range vs {
		bldr.AppendOption(v)
	}
	return bldr.NewNumericArray()
}

// Value returns the value at index i. If the element is null the returned
// value is unspecified.
func (a *Numeric[T]) Value(i int) T { return a.values[i] }

// Values returns the logical window of the values buffer. Null slots hold
// unspecified values.
func (a *Numeric[T]) Values() []T { return a.values }

func (a *Numeric[T]) String() string {
	o := new(strings.Builder)
	o.WriteString("[")
	for i := 0; i < a.Len(); i++ {
		if i > 0 {
			o.WriteString(" ")
		}
		switch {
		case a.IsNull(i):
			o.WriteString(NullValueStr)
		default:
			fmt.Fprintf(o, "%v", a.values[i])
		}
	}
	o.WriteString("]")
	return o.String()
}

// MarshalJSON renders the logical values for diagnostics, nulls as JSON
// null. It is not a persisted format.
func (a *Numeric[T]) MarshalJSON() ([]byte, error) {
	vals := make([]interface{}, a.Len())
	for i := range vals {
		if a.IsValid(i) {
			vals[i] = a.values[i]
		}
	}
	return json.Marshal(vals)
}

func (a *Numeric[T]) setData(data *Data) {
	a.array.setData(data)
	if vals := data.buffers[0]; vals != nil {
		a.values = quiver.CastFromBytes[T](vals.Bytes())
		beg := data.offset
		end := beg + data.length
		a.values = a.values[beg:end]
	}
}

// Type aliases matching the element kinds, so callers can spell
// array.Int32 instead of array.Numeric[int32].
type (
	Uint8   = Numeric[uint8]
	Int8    = Numeric[int8]
	Uint16  = Numeric[uint16]
	Int16   = Numeric[int16]
	Uint32  = Numeric[uint32]
	Int32   = Numeric[int32]
	Uint64  = Numeric[uint64]
	Int64   = Numeric[int64]
	Float32 = Numeric[float32]
	Float64 = Numeric[float64]
)

var (
	_ Interface = (*Int32)(nil)
	_ Interface = (*Float64)(nil)
)
