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

	"github.com/quiverdata/quiver/bitutil"
	"github.com/quiverdata/quiver/memory"
)

const (
	minBuilderCapacity = 1 << 5
)

// Builder provides an interface to build arrays.
type Builder interface {
	// Retain increases the reference count by 1.
	// Retain may be called simultaneously from multiple goroutines.
	Retain()

	// Release decreases the reference count by 1.
	Release()

	// Len returns the number of elements in the array builder.
	Len() int

	// Cap returns the total number of elements that can be stored
	// without allocating additional memory.
	Cap() int

	// NullN returns the number of null values in the array builder.
	NullN() int

	// AppendNull adds a new null value to the array being built.
	AppendNull()

	// Reserve ensures there is enough space for appending n elements
	// by checking the capacity and calling Resize if necessary.
	Reserve(n int)

	// Resize adjusts the space allocated by b to n elements. If n is greater than b.Cap(),
	// additional memory will be allocated. If n is smaller, the allocated memory may be reduced.
	Resize(n int)

	// NewArray creates a new array from the memory buffers used
	// by the builder and resets the Builder so it can be used to build
	// a new array.
	NewArray() Interface

	init(capacity int)
	resize(newBits int, init func(int))
}

// builder provides common functionality for managing the validity bitmap
// (nulls) when building arrays. The bitmap is materialized lazily: it stays
// nil until the first null is appended, so arrays built without nulls carry
// no bitmap at all.
type builder struct {
	refCount   int64
	mem        memory.Allocator
	nullBitmap *memory.Buffer
	nulls      int
	length     int
	capacity   int
}

// Retain increases the reference count by 1.
// Retain may be called simultaneously from multiple goroutines.
func (b *builder) Retain() {
	atomic.AddInt64(&b.refCount, 1)
}

// Len returns the number of elements in the array builder.
func (b *builder) Len() int { return b.length }

// Cap returns the total number of elements that can be stored without allocating additional memory.
func (b *builder) Cap() int { return b.capacity }

// NullN returns the number of null values in the array builder.
func (b *builder) NullN() int { return b.nulls }

func (b *builder) init(capacity int) {
	b.capacity = capacity
	if b.nullBitmap != nil {
		b.nullBitmap.ResizeNoShrink(bitutil.BytesForBits(capacity))
	}
}

func (b *builder) reset() {
	if b.nullBitmap != nil {
		b.nullBitmap.Release()
		b.nullBitmap = nil
	}

	b.nulls = 0
	b.length = 0
	b.capacity = 0
}

func (b *builder) resize(newBits int, init func(int)) {
	if b.capacity == 0 {
		init(newBits)
		return
	}

	b.capacity = newBits
	if b.nullBitmap != nil {
		newBytesN := bitutil.BytesForBits(newBits)
		oldBytesN := b.nullBitmap.Len()
		b.nullBitmap.Resize(newBytesN)
		if oldBytesN < newBytesN {
			memory.Set(b.nullBitmap.Buf()[oldBytesN:], 0)
		}
	}
	if newBits < b.length {
		b.length = newBits
		if b.nullBitmap != nil {
			b.nulls = newBits - bitutil.CountSetBits(b.nullBitmap.Buf(), 0, newBits)
		}
	}
}

func (b *builder) reserve(elements int, resize func(int)) {
	if b.length+elements > b.capacity {
		newCap := bitutil.NextPowerOf2(b.length + elements)
		resize(newCap)
	}
}

// materializeNullBitmap allocates the validity bitmap on the first null,
// backfilling every position appended so far as valid. Until then the
// builder carries no bitmap, so a finished array with no nulls saves the
// buffer entirely.
func (b *builder) materializeNullBitmap() {
	if b.nullBitmap != nil {
		return
	}

	capacity := b.capacity
	if capacity < minBuilderCapacity {
		capacity = minBuilderCapacity
	}
	b.nullBitmap = memory.NewResizableBuffer(b.mem)
	b.nullBitmap.Resize(bitutil.BytesForBits(capacity))
	memory.Set(b.nullBitmap.Buf(), 0)
	bitutil.SetBitsTo(b.nullBitmap.Buf(), 0, b.length, true)
}

// unsafeAppendBoolsToBitmap appends the contents of valid to the validity bitmap.
// As an optimization, if the valid slice is empty, the next length bits will be set to valid (not null).
func (b *builder) unsafeAppendBoolsToBitmap(valid []bool, length int) {
	if len(valid) == 0 {
		b.unsafeSetValid(length)
		return
	}

	for _, v := range valid {
		if !v {
			b.materializeNullBitmap()
			break
		}
	}
	if b.nullBitmap == nil {
		b.length += len(valid)
		return
	}

	byteOffset := b.length / 8
	bitOffset := byte(b.length % 8)
	nullBitmap := b.nullBitmap.Bytes()
	bitSet := nullBitmap[byteOffset]

	for _, v := range valid {
		if bitOffset == 8 {
			bitOffset = 0
			nullBitmap[byteOffset] = bitSet
			byteOffset++
			bitSet = nullBitmap[byteOffset]
		}

		if v {
			bitSet |= bitutil.BitMask[bitOffset]
		} else {
			bitSet &= bitutil.FlippedBitMask[bitOffset]
			b.nulls++
		}
		bitOffset++
	}

	if bitOffset != 0 {
		nullBitmap[byteOffset] = bitSet
	}
	b.length += len(valid)
}

// unsafeSetValid sets the next length bits to valid in the validity bitmap.
// With no bitmap materialized every element is already valid, so only the
// length moves.
func (b *builder) unsafeSetValid(length int) {
	if b.nullBitmap != nil {
		bitutil.SetBitsTo(b.nullBitmap.Bytes(), b.length, length, true)
	}
	b.length += length
}

// UnsafeAppendBoolToBitmap records the validity of the element being
// appended. The caller must have reserved space first.
func (b *builder) UnsafeAppendBoolToBitmap(isValid bool) {
	if !isValid {
		b.materializeNullBitmap()
		bitutil.ClearBit(b.nullBitmap.Bytes(), b.length)
		b.nulls++
	} else if b.nullBitmap != nil {
		bitutil.SetBit(b.nullBitmap.Bytes(), b.length)
	}
	b.length++
}
