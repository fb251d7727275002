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

package memory

import (
	"sync/atomic"

	"github.com/quiverdata/quiver/internal/debug"
)

// A Buffer is an owned, reference-counted block of contiguous bytes with a
// used length and an allocated capacity. Bytes beyond Len are allocated but
// logically unused and must never be read by consumers.
type Buffer struct {
	refCount int64
	buf      []byte
	length   int
	mutable  bool
	mem      Allocator

	parent *Buffer
}

// NewBufferBytes creates a fixed-size buffer wrapping the passed data.
// The buffer reports len == cap == len(data) and is not resizable.
func NewBufferBytes(data []byte) *Buffer {
	return &Buffer{refCount: 1, buf: data, length: len(data)}
}

// NewResizableBuffer creates a mutable, resizable buffer with an initial
// length and capacity of 0. If mem is nil, DefaultAllocator is used.
func NewResizableBuffer(mem Allocator) *Buffer {
	if mem == nil {
		mem = DefaultAllocator
	}
	return &Buffer{refCount: 1, mutable: true, mem: mem}
}

// SliceBuffer returns a zero-copy view over buf[offset:offset+length].
// The returned buffer shares storage with, and retains, buf; it is not
// resizable.
func SliceBuffer(buf *Buffer, offset, length int) *Buffer {
	buf.Retain()
	return &Buffer{refCount: 1, parent: buf, buf: buf.Bytes()[offset : offset+length], length: length}
}

// Parent returns the buffer this buffer is a slice of, if any.
func (b *Buffer) Parent() *Buffer { return b.parent }

// Retain increases the reference count by 1.
// Retain may be called simultaneously from multiple goroutines.
func (b *Buffer) Retain() {
	if b.mem != nil || b.parent != nil {
		atomic.AddInt64(&b.refCount, 1)
	}
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
// Release may be called simultaneously from multiple goroutines.
func (b *Buffer) Release() {
	if b.mem != nil || b.parent != nil {
		debug.Assert(atomic.LoadInt64(&b.refCount) > 0, "too many releases")

		if atomic.AddInt64(&b.refCount, -1) == 0 {
			if b.mem != nil {
				b.mem.Free(b.buf)
			} else {
				b.parent.Release()
				b.parent = nil
			}
			b.buf, b.length = nil, 0
		}
	}
}

// Reset resets the buffer for reuse, wrapping the passed byte slice.
func (b *Buffer) Reset(buf []byte) {
	if b.parent != nil {
		b.parent.Release()
		b.parent = nil
	}
	b.buf = buf
	b.length = len(buf)
}

// Buf returns the full allocated slice, i.e. Cap bytes. Consumers must not
// read past Len via Bytes; Buf exists for writers filling reserved space.
func (b *Buffer) Buf() []byte { return b.buf }

// Bytes returns the used portion of the buffer, Len bytes.
func (b *Buffer) Bytes() []byte { return b.buf[:b.length] }

// Mutable returns whether the buffer can be resized or appended to.
func (b *Buffer) Mutable() bool { return b.mutable }

// Len returns the number of bytes in use.
func (b *Buffer) Len() int { return b.length }

// Cap returns the number of bytes allocated.
func (b *Buffer) Cap() int { return len(b.buf) }

// Addr returns the address of the first allocated byte, for introspection
// and debugging only. It is 0 for empty buffers. Callers must not use it
// for aliasing control.
func (b *Buffer) Addr() uintptr { return addressOf(b.buf) }

// Reserve ensures the buffer has at least capacity bytes allocated, growing
// by reallocation when insufficient. The used length is unchanged.
func (b *Buffer) Reserve(capacity int) {
	if capacity > len(b.buf) {
		newCap := roundUpToMultipleOf64(capacity)
		if len(b.buf) == 0 {
			b.buf = b.mem.Allocate(newCap)
		} else {
			b.buf = b.mem.Reallocate(newCap, b.buf)
		}
	}
}

// Resize resizes the buffer to the target size, shrinking the allocation
// when the target is smaller than the current length.
func (b *Buffer) Resize(newSize int) {
	b.resize(newSize, true)
}

// ResizeNoShrink resizes the buffer to the target size, but will not
// shrink the allocation.
func (b *Buffer) ResizeNoShrink(newSize int) {
	b.resize(newSize, false)
}

func (b *Buffer) resize(newSize int, shrink bool) {
	if !b.mutable {
		panic("memory: buffer is not resizable")
	}
	debug.Assert(newSize >= 0, "negative size")

	if !shrink || newSize > b.length {
		b.Reserve(newSize)
	} else {
		// buffer is shrinking; reallocate when the savings are substantial
		newCap := roundUpToMultipleOf64(newSize)
		if len(b.buf) != newCap {
			if newSize == 0 {
				b.mem.Free(b.buf)
				b.buf = nil
			} else {
				b.buf = b.mem.Reallocate(newCap, b.buf)
			}
		}
	}
	b.length = newSize
}

// Append appends data to the buffer, growing the allocation geometrically
// (doubling, floor 64 bytes) when the capacity is insufficient. Growth
// triggers only when Len+len(data) exceeds Cap, so appends are amortized
// O(1) per byte.
func (b *Buffer) Append(data []byte) {
	if required := b.length + len(data); required > len(b.buf) {
		b.grow(required)
	}
	b.length += copy(b.buf[b.length:], data)
}

// AppendByte is Append for a single byte.
func (b *Buffer) AppendByte(v byte) {
	if required := b.length + 1; required > len(b.buf) {
		b.grow(required)
	}
	b.buf[b.length] = v
	b.length++
}

func (b *Buffer) grow(required int) {
	if !b.mutable {
		panic("memory: buffer is not resizable")
	}
	newCap := len(b.buf) * 2
	if newCap < alignment {
		newCap = alignment
	}
	for newCap < required {
		newCap *= 2
	}
	b.Reserve(newCap)
}
