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

	"github.com/JohnCGriffin/overflow"
	"golang.org/x/exp/slices"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/bitutil"
	"github.com/quiverdata/quiver/internal/debug"
	"github.com/quiverdata/quiver/memory"
)

// UnknownNullCount specifies the NullN should be calculated from the null bitmap buffer.
const UnknownNullCount = -1

// Data is the type-erased descriptor of the memory and metadata of an
// array: its type tag, logical length, null bitmap, logical offset into the
// physical buffers, the ordered value buffers dictated by the type tag, and
// the ordered child descriptors for nested layouts. Every typed array is a
// view over a Data.
type Data struct {
	refCount  int64
	dtype     quiver.DataType
	nullN     int
	length    int
	offset    int
	nulls     *memory.Buffer
	buffers   []*memory.Buffer
	childData []*Data
}

// NewData creates a new Data from the buffers as laid out, without
// validating them against the type tag. It is the trusted path used by the
// builders; buffers assembled outside a builder go through
// NewDataFromBuffers instead. NewData retains all the passed buffers and
// children.
func NewData(dtype quiver.DataType, length int, nullBitmap *memory.Buffer, offset int, buffers []*memory.Buffer, childData []*Data, nulls int) *Data {
	if nullBitmap != nil {
		nullBitmap.Retain()
	}
	for _, b := range buffers {
		if b != nil {
			b.Retain()
		}
	}
	for _, child := range childData {
		if child != nil {
			child.Retain()
		}
	}

	return &Data{
		refCount:  1,
		dtype:     dtype,
		nullN:     nulls,
		length:    length,
		offset:    offset,
		nulls:     nullBitmap,
		buffers:   buffers,
		childData: childData,
	}
}

// NewDataFromBuffers creates a Data from externally supplied buffers,
// validating that the buffer sequence matches the count and minimum sizes
// the type tag and length dictate. It is the sole entry point for raw
// buffers and the only place these invariants are enforced; failures are
// reported as a *LayoutError and are recoverable by the caller.
func NewDataFromBuffers(dtype quiver.DataType, length int, nullBitmap *memory.Buffer, offset int, buffers []*memory.Buffer, childData []*Data) (*Data, error) {
	if length < 0 || offset < 0 {
		return nil, layoutErrorf(ErrOffsetOutOfRange, "negative length %d or offset %d", length, offset)
	}

	switch dt := dtype.(type) {
	case quiver.FixedWidthDataType:
		if len(buffers) != 1 {
			return nil, layoutErrorf(ErrWrongBufferCount, "%s expects 1 values buffer, got %d", dt.Name(), len(buffers))
		}
		width := dt.BitWidth() / 8
		minSize, ok := overflow.Mul(offset+length, width)
		if !ok {
			return nil, layoutErrorf(ErrBufferTooSmall, "%s size for %d elements overflows", dt.Name(), length)
		}
		if buffers[0] == nil || buffers[0].Len() < minSize {
			return nil, layoutErrorf(ErrBufferTooSmall, "%s values buffer needs %d bytes for %d elements at offset %d, got %d",
				dt.Name(), minSize, length, offset, bufferLen(buffers[0]))
		}

	case quiver.BinaryDataType:
		if len(buffers) != 2 {
			return nil, layoutErrorf(ErrWrongBufferCount, "%s expects offsets and data buffers, got %d", dt.Name(), len(buffers))
		}
		minOffsets, ok := overflow.Mul(offset+length+1, quiver.Int32SizeBytes)
		if !ok {
			return nil, layoutErrorf(ErrBufferTooSmall, "%s offsets size for %d elements overflows", dt.Name(), length)
		}
		if buffers[0] == nil || buffers[0].Len() < minOffsets {
			return nil, layoutErrorf(ErrBufferTooSmall, "%s offsets buffer needs %d slots, got %d bytes",
				dt.Name(), offset+length+1, bufferLen(buffers[0]))
		}
		if buffers[1] == nil {
			return nil, layoutErrorf(ErrBufferTooSmall, "%s data buffer is missing", dt.Name())
		}
		offsets := quiver.CastFromBytes[int32](buffers[0].Bytes())[offset : offset+length+1]
		if !slices.IsSorted(offsets) {
			return nil, layoutErrorf(ErrNonMonotonicOffsets, "%s offsets decrease within [%d, %d]", dt.Name(), offset, offset+length)
		}
		if offsets[0] < 0 || int(offsets[length]) > buffers[1].Len() {
			return nil, layoutErrorf(ErrOffsetOutOfRange, "%s offsets span [%d, %d] outside data buffer of %d bytes",
				dt.Name(), offsets[0], offsets[length], buffers[1].Len())
		}

	default:
		return nil, layoutErrorf(ErrWrongBufferCount, "unsupported data type %s", dtype.Name())
	}

	if nullBitmap != nil && nullBitmap.Len() < bitutil.BytesForBits(offset+length) {
		return nil, layoutErrorf(ErrBufferTooSmall, "null bitmap covers %d bits, need %d", nullBitmap.Len()*8, offset+length)
	}

	return NewData(dtype, length, nullBitmap, offset, buffers, childData, UnknownNullCount), nil
}

// NewSliceData returns a new slice of the passed in data interval [i, j).
// The returned Data shares the parent's buffers; only the metadata changes,
// so slicing never copies or mutates bytes.
func NewSliceData(data *Data, i, j int) *Data {
	if i > j || j > data.length {
		panic(indexOutOfRange(j, data.length))
	}

	nulls := UnknownNullCount
	if data.nullN == 0 {
		nulls = 0
	}

	sliced := NewData(data.dtype, j-i, data.nulls, data.offset+i, data.buffers, data.childData, nulls)
	if sliced.length == 0 {
		sliced.nullN = 0
	}
	return sliced
}

// Reset sets the Data for reuse. New buffers are retained before old ones
// are released, so resetting with the Data's own buffers is safe.
func (d *Data) Reset(dtype quiver.DataType, length int, nullBitmap *memory.Buffer, offset int, buffers []*memory.Buffer, childData []*Data, nulls int) {
	if nullBitmap != nil {
		nullBitmap.Retain()
	}
	for _, b := range buffers {
		if b != nil {
			b.Retain()
		}
	}
	for _, child := range childData {
		if child != nil {
			child.Retain()
		}
	}

	if d.nulls != nil {
		d.nulls.Release()
	}
	for _, b := range d.buffers {
		if b != nil {
			b.Release()
		}
	}
	for _, child := range d.childData {
		if child != nil {
			child.Release()
		}
	}

	d.dtype = dtype
	d.length = length
	d.offset = offset
	d.nulls = nullBitmap
	d.buffers = buffers
	d.childData = childData
	d.nullN = nulls
}

// Retain increases the reference count by 1.
// Retain may be called simultaneously from multiple goroutines.
func (d *Data) Retain() {
	atomic.AddInt64(&d.refCount, 1)
}

// Release decreases the reference count by 1.
// When the reference count goes to zero, the memory is freed.
// Release may be called simultaneously from multiple goroutines.
func (d *Data) Release() {
	debug.Assert(atomic.LoadInt64(&d.refCount) > 0, "too many releases")

	if atomic.AddInt64(&d.refCount, -1) == 0 {
		if d.nulls != nil {
			d.nulls.Release()
		}
		for _, b := range d.buffers {
			if b != nil {
				b.Release()
			}
		}
		for _, child := range d.childData {
			child.Release()
		}
		d.nulls, d.buffers, d.childData = nil, nil, nil
	}
}

// DataType returns the array's logical type tag.
func (d *Data) DataType() quiver.DataType { return d.dtype }

// Len returns the logical element count.
func (d *Data) Len() int { return d.length }

// Offset returns the logical offset into the physical buffers.
func (d *Data) Offset() int { return d.offset }

// NullN returns the number of nulls, counting the unset bits of the null
// bitmap on first use when the count was not supplied.
func (d *Data) NullN() int {
	if d.nullN == UnknownNullCount {
		d.nullN = 0
		if d.nulls != nil {
			d.nullN = d.length - bitutil.CountSetBits(d.nulls.Bytes(), d.offset, d.length)
		}
	}
	return d.nullN
}

// Buffers returns the ordered value buffers dictated by the type tag:
// one values buffer for fixed-width types, an offsets buffer followed by a
// data buffer for variable-width types. The null bitmap is not part of the
// sequence; see NullBuffer.
func (d *Data) Buffers() []*memory.Buffer { return d.buffers }

// Buffer returns the i-th value buffer.
func (d *Data) Buffer(i int) *memory.Buffer { return d.buffers[i] }

// NullBuffer returns the bit-packed null bitmap buffer, or nil when the
// array has no nulls.
func (d *Data) NullBuffer() *memory.Buffer { return d.nulls }

// NullBitmap returns a Bitmap view over the null buffer, covering the
// physical bits up to offset+length, or nil when the array has no nulls.
// The caller must Release it.
func (d *Data) NullBitmap() *Bitmap {
	if d.nulls == nil {
		return nil
	}
	return NewBitmapData(d.nulls, d.offset+d.length)
}

// Children returns the ordered child descriptors.
func (d *Data) Children() []*Data { return d.childData }

func bufferLen(b *memory.Buffer) int {
	if b == nil {
		return 0
	}
	return b.Len()
}
