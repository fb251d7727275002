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
	"github.com/quiverdata/quiver/internal/debug"
	"github.com/quiverdata/quiver/memory"
)

// A Bitmap is a bit-packed presence mask layered over a Buffer: bit i set
// means logical element i is present (non-null). Bits beyond Len within the
// final byte are unspecified and ignored.
type Bitmap struct {
	refCount int64
	buf      *memory.Buffer
	length   int
}

// NewBitmap creates an empty, growable bitmap. If mem is nil,
// memory.DefaultAllocator is used.
func NewBitmap(mem memory.Allocator) *Bitmap {
	return &Bitmap{refCount: 1, buf: memory.NewResizableBuffer(mem)}
}

// NewBitmapAllValid creates a bitmap of n bits, all set.
func NewBitmapAllValid(mem memory.Allocator, n int) *Bitmap {
	b := NewBitmap(mem)
	b.buf.Resize(bitutil.BytesForBits(n))
	memory.Set(b.buf.Buf(), 0xff)
	b.length = n
	return b
}

// NewBitmapData creates a bitmap view covering n bits of an existing
// buffer, sharing (and retaining) its storage.
func NewBitmapData(buf *memory.Buffer, n int) *Bitmap {
	buf.Retain()
	return &Bitmap{refCount: 1, buf: buf, length: n}
}

// Retain increases the reference count by 1.
func (b *Bitmap) Retain() {
	atomic.AddInt64(&b.refCount, 1)
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
func (b *Bitmap) Release() {
	debug.Assert(atomic.LoadInt64(&b.refCount) > 0, "too many releases")

	if atomic.AddInt64(&b.refCount, -1) == 0 {
		b.buf.Release()
		b.buf = nil
		b.length = 0
	}
}

// Len returns the number of logical elements the bitmap covers.
func (b *Bitmap) Len() int { return b.length }

// Buffer returns the underlying bit-packed storage.
func (b *Bitmap) Buffer() *memory.Buffer { return b.buf }

// Set sets the presence of element i, growing the underlying buffer to
// cover i if needed. Bits between the previous length and i default to
// absent.
func (b *Bitmap) Set(i int, valid bool) {
	if i >= b.length {
		required := bitutil.BytesForBits(i + 1)
		if required > b.buf.Len() {
			b.buf.ResizeNoShrink(required)
		}
		b.length = i + 1
	}
	bitutil.SetBitTo(b.buf.Bytes(), i, valid)
}

// Value returns whether element i is present. It panics with a wrapped
// ErrIndexOutOfRange when i is outside [0, Len).
func (b *Bitmap) Value(i int) bool {
	if i < 0 || i >= b.length {
		panic(indexOutOfRange(i, b.length))
	}
	return bitutil.BitIsSet(b.buf.Bytes(), i)
}

// UnsetCount returns the number of absent (null) elements.
func (b *Bitmap) UnsetCount() int {
	return b.length - bitutil.CountSetBits(b.buf.Bytes(), 0, b.length)
}
