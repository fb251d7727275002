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
	"math"
	"sync/atomic"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/internal/debug"
	"github.com/quiverdata/quiver/memory"
)

const (
	binaryArrayMaximumCapacity = math.MaxInt32
)

// A BinaryBuilder is used to build a Binary array using the Append methods.
// The offsets buffer is seeded with a leading 0 before any append, so a
// finished array of n elements always carries n+1 offsets; each append
// records the new cumulative end of the data buffer.
type BinaryBuilder struct {
	builder

	dtype   quiver.BinaryDataType
	offsets *typedBufferBuilder[int32]
	values  *byteBufferBuilder
}

// NewBinaryBuilder creates a builder for variable-length byte content.
// If mem is nil, memory.DefaultAllocator is used.
func NewBinaryBuilder(mem memory.Allocator, dtype quiver.BinaryDataType) *BinaryBuilder {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	return &BinaryBuilder{
		builder: builder{refCount: 1, mem: mem},
		dtype:   dtype,
		offsets: newTypedBufferBuilder[int32](mem),
		values:  newByteBufferBuilder(mem),
	}
}

// NewBinaryBuilderWithCapacity creates a builder preallocating the offsets
// buffer for itemCount elements and the data buffer for dataSize bytes.
func NewBinaryBuilderWithCapacity(mem memory.Allocator, dtype quiver.BinaryDataType, itemCount, dataSize int) *BinaryBuilder {
	bldr := NewBinaryBuilder(mem, dtype)
	bldr.Resize(itemCount)
	bldr.ReserveData(dataSize)
	return bldr
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
// Release may be called simultaneously from multiple goroutines.
func (b *BinaryBuilder) Release() {
	debug.Assert(atomic.LoadInt64(&b.refCount) > 0, "too many releases")

	if atomic.AddInt64(&b.refCount, -1) == 0 {
		if b.nullBitmap != nil {
			b.nullBitmap.Release()
			b.nullBitmap = nil
		}
		if b.offsets != nil {
			b.offsets.Release()
			b.offsets = nil
		}
		if b.values != nil {
			b.values.Release()
			b.values = nil
		}
	}
}

// Append appends the byte slice to the binary builder.
func (b *BinaryBuilder) Append(v []byte) {
	b.Reserve(1)
	b.values.Append(v)
	b.appendNextOffset()
	b.UnsafeAppendBoolToBitmap(true)
}

// AppendString appends the string to the binary builder. This method will
// allocate a new byte slice.
func (b *BinaryBuilder) AppendString(v string) {
	b.Append([]byte(v))
}

// AppendNull appends a null element. No data bytes are written: the
// terminating offset equals the current data length, a zero-length span.
func (b *BinaryBuilder) AppendNull() {
	b.Reserve(1)
	b.appendNextOffset()
	b.UnsafeAppendBoolToBitmap(false)
}

// AppendOption appends v, or a null element when v is nil.
func (b *BinaryBuilder) AppendOption(v []byte) {
	if v == nil {
		b.AppendNull()
	} else {
		b.Append(v)
	}
}

// AppendValues will append the values in the v slice. The valid slice determines which values
// in v are valid (not null). The valid slice must either be empty or be equal in length to v. If empty,
// all values in v are appended and considered valid.
func (b *BinaryBuilder) AppendValues(v [][]byte, valid []bool) {
	if len(v) != len(valid) && len(valid) != 0 {
		panic("len(v) != len(valid) && len(valid) != 0")
	}

	if len(v) == 0 {
		return
	}

	b.Reserve(len(v))
	for _, vv := range v {
		b.values.Append(vv)
		b.appendNextOffset()
	}

	b.builder.unsafeAppendBoolsToBitmap(valid, len(v))
}

// AppendStringValues will append the values in the v slice. The valid slice determines which values
// in v are valid (not null). The valid slice must either be empty or be equal in length to v. If empty,
// all values in v are appended and considered valid.
func (b *BinaryBuilder) AppendStringValues(v []string, valid []bool) {
	if len(v) != len(valid) && len(valid) != 0 {
		panic("len(v) != len(valid) && len(valid) != 0")
	}

	if len(v) == 0 {
		return
	}

	b.Reserve(len(v))
	for _, vv := range v {
		b.values.Append([]byte(vv))
		b.appendNextOffset()
	}

	b.builder.unsafeAppendBoolsToBitmap(valid, len(v))
}

// Value returns the byte slice accumulated at index i.
func (b *BinaryBuilder) Value(i int) []byte {
	offsets := b.offsets.Values()
	start := offsets[i]
	end := offsets[i+1]
	return b.values.Bytes()[start:end]
}

// DataLen returns the number of bytes in the data buffer.
func (b *BinaryBuilder) DataLen() int { return b.values.length }

// DataCap returns the total number of bytes that can be stored
// without allocating additional memory.
func (b *BinaryBuilder) DataCap() int { return b.values.capacity }

func (b *BinaryBuilder) init(capacity int) {
	b.builder.init(capacity)
	b.offsets.resize((capacity + 1) * quiver.Int32SizeBytes)
	if b.offsets.Len() == 0 {
		// leading offset: element 0 starts at byte 0
		b.offsets.AppendValue(0)
	}
}

// Reserve ensures there is enough space for appending n elements
// by checking the capacity and calling Resize if necessary.
func (b *BinaryBuilder) Reserve(n int) {
	b.builder.reserve(n, b.Resize)
}

// ReserveData ensures there is enough space for appending n bytes
// by checking the capacity and resizing the data buffer if necessary.
func (b *BinaryBuilder) ReserveData(n int) {
	if b.values.capacity < b.values.length+n {
		b.values.resize(b.values.Len() + n)
	}
}

// Resize adjusts the space allocated by b to n elements. If n is greater than b.Cap(),
// additional memory will be allocated. If n is smaller, the allocated memory may be reduced.
func (b *BinaryBuilder) Resize(n int) {
	b.offsets.resize((n + 1) * quiver.Int32SizeBytes)
	b.builder.resize(n, b.init)
	if b.offsets.Len() == 0 {
		b.offsets.AppendValue(0)
	}
}

// NewArray creates a Binary array from the memory buffers used by the builder and resets the BinaryBuilder
// so it can be used to build a new array.
func (b *BinaryBuilder) NewArray() Interface {
	return b.NewBinaryArray()
}

// NewBinaryArray creates a Binary array from the memory buffers used by the builder and resets the BinaryBuilder
// so it can be used to build a new array.
func (b *BinaryBuilder) NewBinaryArray() (a *Binary) {
	data := b.newData()
	a = NewBinaryData(data)
	data.Release()
	return
}

func (b *BinaryBuilder) newData() (data *Data) {
	if b.offsets.Len() == 0 {
		b.offsets.AppendValue(0)
	}

	offsets := b.offsets.Finish()
	values := b.values.Finish()
	data = NewData(b.dtype, b.length, b.nullBitmap, 0, []*memory.Buffer{offsets, values}, nil, b.nulls)

	offsets.Release()
	values.Release()
	b.builder.reset()

	return
}

// appendNextOffset records the element's terminating offset, the new
// cumulative end of the data buffer.
func (b *BinaryBuilder) appendNextOffset() {
	numBytes := b.values.Len()
	if numBytes > binaryArrayMaximumCapacity {
		panic(fmt.Sprintf("BinaryBuilder: append would overflow offsets (data length %d)", numBytes))
	}
	b.offsets.AppendValue(int32(numBytes))
}

var (
	_ Builder = (*BinaryBuilder)(nil)
)
