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
	"sync/atomic"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/bitutil"
	"github.com/quiverdata/quiver/internal/debug"
	"github.com/quiverdata/quiver/memory"
)

// A NumericBuilder accumulates fixed-width values of type T one at a time
// or in bulk and finalizes them into a Numeric[T], growing its backing
// buffer geometrically as needed.
type NumericBuilder[T quiver.FixedWidthType] struct {
	builder

	dtype   quiver.FixedWidthDataType
	data    *memory.Buffer
	rawData []T
}

// NewNumericBuilder creates a builder for fixed-width values of type T.
// If mem is nil, memory.DefaultAllocator is used.
func NewNumericBuilder[T quiver.FixedWidthType](mem memory.Allocator) *NumericBuilder[T] {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	return &NumericBuilder[T]{builder: builder{refCount: 1, mem: mem}, dtype: quiver.TypeOf[T]()}
}

// NewNumericBuilderWithCapacity creates a builder preallocating space for
// n elements. The capacity is a starting point, not a limit.
func NewNumericBuilderWithCapacity[T quiver.FixedWidthType](mem memory.Allocator, n int) *NumericBuilder[T] {
	bldr := NewNumericBuilder[T](mem)
	bldr.Reserve(n)
	return bldr
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
func (b *NumericBuilder[T]) Release() {
	debug.Assert(atomic.LoadInt64(&b.refCount) > 0, "too many releases")

	if atomic.AddInt64(&b.refCount, -1) == 0 {
		if b.nullBitmap != nil {
			b.nullBitmap.Release()
			b.nullBitmap = nil
		}
		if b.data != nil {
			b.data.Release()
			b.data = nil
			b.rawData = nil
		}
	}
}

// Append appends v to the array being built, implicitly valid.
func (b *NumericBuilder[T]) Append(v T) {
	b.Reserve(1)
	b.UnsafeAppend(v)
}

// AppendNull appends a null element. The value slot's content is left
// unspecified.
func (b *NumericBuilder[T]) AppendNull() {
	b.Reserve(1)
	b.UnsafeAppendBoolToBitmap(false)
}

// AppendOption appends *v, or a null element when v is nil.
func (b *NumericBuilder[T]) AppendOption(v *T) {
	if v == nil {
		b.AppendNull()
	} else {
		b.Append(*v)
	}
}

// UnsafeAppend appends v without checking capacity; the caller must have
// reserved space first.
func (b *NumericBuilder[T]) UnsafeAppend(v T) {
	b.rawData[b.length] = v
	b.UnsafeAppendBoolToBitmap(true)
}

// AppendValues will append the values in the v slice. The valid slice determines which values
// in v are valid (not null). The valid slice must either be empty or be equal in length to v. If empty,
// all values in v are appended and considered valid. The whole slice is
// reserved at once.
func (b *NumericBuilder[T]) AppendValues(v []T, valid []bool) {
	if len(v) != len(valid) && len(valid) != 0 {
		panic("len(v) != len(valid) && len(valid) != 0")
	}

	if len(v) == 0 {
		return
	}

	b.Reserve(len(v))
	copy(b.rawData[b.length:], v)
	b.builder.unsafeAppendBoolsToBitmap(valid, len(v))
}

// Value returns the value accumulated at index i.
func (b *NumericBuilder[T]) Value(i int) T { return b.rawData[i] }

func (b *NumericBuilder[T]) init(capacity int) {
	b.builder.init(capacity)

	b.data = memory.NewResizableBuffer(b.mem)
	b.data.Resize(quiver.BytesRequired[T](capacity))
	b.rawData = quiver.CastFromBytes[T](b.data.Buf())
}

// Reserve ensures there is enough space for appending n elements
// by checking the capacity and calling Resize if necessary.
func (b *NumericBuilder[T]) Reserve(n int) {
	b.builder.reserve(n, b.Resize)
}

// Resize adjusts the space allocated by b to n elements. If n is greater than b.Cap(),
// additional memory will be allocated. If n is smaller, the allocated memory may be reduced.
func (b *NumericBuilder[T]) Resize(n int) {
	nBuilder := n
	if n < minBuilderCapacity {
		n = minBuilderCapacity
	}

	if b.capacity == 0 {
		b.init(n)
	} else {
		b.builder.resize(nBuilder, b.init)
		b.data.Resize(quiver.BytesRequired[T](n))
		b.rawData = quiver.CastFromBytes[T](b.data.Buf())
	}
}

// NewArray creates a Numeric[T] array from the memory buffers used by the
// builder and resets the builder so it can be used to build a new array.
func (b *NumericBuilder[T]) NewArray() Interface {
	return b.NewNumericArray()
}

// NewNumericArray creates a Numeric[T] array from the memory buffers used by the
// builder and resets the builder so it can be used to build a new array.
func (b *NumericBuilder[T]) NewNumericArray() (a *Numeric[T]) {
	data := b.newData()
	a = NewNumericData[T](data)
	data.Release()
	return
}

func (b *NumericBuilder[T]) newData() (data *Data) {
	if b.data != nil {
		bytesRequired := quiver.BytesRequired[T](b.length)
		if bytesRequired > 0 && bytesRequired < b.data.Len() {
			// trim buffers
			b.data.Resize(bytesRequired)
		}
	}
	if b.nullBitmap != nil {
		bytesRequired := bitutil.BytesForBits(b.length)
		if bytesRequired > 0 && bytesRequired < b.nullBitmap.Len() {
			b.nullBitmap.Resize(bytesRequired)
		}
	}

	data = NewData(b.dtype, b.length, b.nullBitmap, 0, []*memory.Buffer{b.data}, nil, b.nulls)
	b.reset()

	if b.data != nil {
		b.data.Release()
		b.data = nil
		b.rawData = nil
	}

	return
}

// Typed builder aliases and constructors for the closed set of element
// kinds, so callers can spell array.NewInt32Builder(mem).
type (
	Uint8Builder   = NumericBuilder[uint8]
	Int8Builder    = NumericBuilder[int8]
	Uint16Builder  = NumericBuilder[uint16]
	Int16Builder   = NumericBuilder[int16]
	Uint32Builder  = NumericBuilder[uint32]
	Int32Builder   = NumericBuilder[int32]
	Uint64Builder  = NumericBuilder[uint64]
	Int64Builder   = NumericBuilder[int64]
	Float32Builder = NumericBuilder[float32]
	Float64Builder = NumericBuilder[float64]
)

func NewUint8Builder(mem memory.Allocator) *Uint8Builder     { return NewNumericBuilder[uint8](mem) }
func NewInt8Builder(mem memory.Allocator) *Int8Builder       { return NewNumericBuilder[int8](mem) }
func NewUint16Builder(mem memory.Allocator) *Uint16Builder   { return NewNumericBuilder[uint16](mem) }
func NewInt16Builder(mem memory.Allocator) *Int16Builder     { return NewNumericBuilder[int16](mem) }
func NewUint32Builder(mem memory.Allocator) *Uint32Builder   { return NewNumericBuilder[uint32](mem) }
func NewInt32Builder(mem memory.Allocator) *Int32Builder     { return NewNumericBuilder[int32](mem) }
func NewUint64Builder(mem memory.Allocator) *Uint64Builder   { return NewNumericBuilder[uint64](mem) }
func NewInt64Builder(mem memory.Allocator) *Int64Builder     { return NewNumericBuilder[int64](mem) }
func NewFloat32Builder(mem memory.Allocator) *Float32Builder { return NewNumericBuilder[float32](mem) }
func NewFloat64Builder(mem memory.Allocator) *Float64Builder { return NewNumericBuilder[float64](mem) }

var (
	_ Builder = (*Int32Builder)(nil)
	_ Builder = (*Float64Builder)(nil)
)
