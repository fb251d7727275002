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

package array_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/array"
	"github.com/quiverdata/quiver/memory"
)

func TestNewDataFromBuffersFixedWidth(t *testing.T) {
	values := memory.NewBufferBytes([]byte{1, 2, 3})

	data, err := array.NewDataFromBuffers(quiver.PrimitiveTypes.Uint8, 3, nil, 0, []*memory.Buffer{values}, nil)
	require.NoError(t, err)
	defer data.Release()

	assert.Equal(t, 3, data.Len())
	assert.Zero(t, data.NullN())

	a := array.MakeFromData(data).(*array.Uint8)
	defer a.Release()
	assert.Equal(t, []uint8{1, 2, 3}, a.Values())
	assert.Zero(t, a.NullN())
}

func TestNewDataFromBuffersBufferTooSmall(t *testing.T) {
	values := memory.NewBufferBytes([]byte{1, 2, 3})

	// 3 bytes cannot hold 5 uint8 elements
	_, err := array.NewDataFromBuffers(quiver.PrimitiveTypes.Uint8, 5, nil, 0, []*memory.Buffer{values}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, array.ErrBufferTooSmall), "unexpected error %v", err)

	var layoutErr *array.LayoutError
	assert.True(t, errors.As(err, &layoutErr))

	// offset shifts the window past the end of the buffer
	_, err = array.NewDataFromBuffers(quiver.PrimitiveTypes.Uint8, 3, nil, 1, []*memory.Buffer{values}, nil)
	assert.True(t, errors.Is(err, array.ErrBufferTooSmall), "unexpected error %v", err)

	// wider elements need more bytes
	_, err = array.NewDataFromBuffers(quiver.PrimitiveTypes.Int32, 1, nil, 0, []*memory.Buffer{values}, nil)
	assert.True(t, errors.Is(err, array.ErrBufferTooSmall), "unexpected error %v", err)
}

func TestNewDataFromBuffersWrongBufferCount(t *testing.T) {
	values := memory.NewBufferBytes([]byte{1, 2, 3})

	_, err := array.NewDataFromBuffers(quiver.PrimitiveTypes.Uint8, 3, nil, 0, []*memory.Buffer{values, values}, nil)
	assert.True(t, errors.Is(err, array.ErrWrongBufferCount), "unexpected error %v", err)

	_, err = array.NewDataFromBuffers(quiver.BinaryTypes.String, 1, nil, 0, []*memory.Buffer{values}, nil)
	assert.True(t, errors.Is(err, array.ErrWrongBufferCount), "unexpected error %v", err)
}

func TestNewDataFromBuffersNegativeBounds(t *testing.T) {
	values := memory.NewBufferBytes([]byte{1, 2, 3})

	_, err := array.NewDataFromBuffers(quiver.PrimitiveTypes.Uint8, -1, nil, 0, []*memory.Buffer{values}, nil)
	assert.True(t, errors.Is(err, array.ErrOffsetOutOfRange), "unexpected error %v", err)

	_, err = array.NewDataFromBuffers(quiver.PrimitiveTypes.Uint8, 3, nil, -2, []*memory.Buffer{values}, nil)
	assert.True(t, errors.Is(err, array.ErrOffsetOutOfRange), "unexpected error %v", err)
}

func TestNewDataFromBuffersVariableWidth(t *testing.T) {
	offsets := memory.NewBufferBytes(quiver.CastToBytes([]int32{0, 3, 6, 6, 12}))
	values := memory.NewBufferBytes([]byte("foobarfoobar"))

	data, err := array.NewDataFromBuffers(quiver.BinaryTypes.String, 4, nil, 0, []*memory.Buffer{offsets, values}, nil)
	require.NoError(t, err)
	defer data.Release()

	a := array.MakeFromData(data).(*array.String)
	defer a.Release()
	assert.Equal(t, "foo", a.Value(0))
	assert.Equal(t, "bar", a.Value(1))
	assert.Equal(t, "", a.Value(2))
	assert.Equal(t, "foobar", a.Value(3))
}

func TestNewDataFromBuffersNonMonotonicOffsets(t *testing.T) {
	offsets := memory.NewBufferBytes(quiver.CastToBytes([]int32{0, 6, 3}))
	values := memory.NewBufferBytes([]byte("foobar"))

	_, err := array.NewDataFromBuffers(quiver.BinaryTypes.Binary, 2, nil, 0, []*memory.Buffer{offsets, values}, nil)
	assert.True(t, errors.Is(err, array.ErrNonMonotonicOffsets), "unexpected error %v", err)
}

func TestNewDataFromBuffersOffsetOutOfRange(t *testing.T) {
	// final offset points past the end of the data buffer
	offsets := memory.NewBufferBytes(quiver.CastToBytes([]int32{0, 3, 10}))
	values := memory.NewBufferBytes([]byte("foobar"))

	_, err := array.NewDataFromBuffers(quiver.BinaryTypes.Binary, 2, nil, 0, []*memory.Buffer{offsets, values}, nil)
	assert.True(t, errors.Is(err, array.ErrOffsetOutOfRange), "unexpected error %v", err)

	// too few offset slots for the claimed length
	short := memory.NewBufferBytes(quiver.CastToBytes([]int32{0, 3}))
	_, err = array.NewDataFromBuffers(quiver.BinaryTypes.Binary, 2, nil, 0, []*memory.Buffer{short, values}, nil)
	assert.True(t, errors.Is(err, array.ErrBufferTooSmall), "unexpected error %v", err)
}

func TestNewDataFromBuffersNullBitmapTooSmall(t *testing.T) {
	values := memory.NewBufferBytes(make([]byte, 16))
	nulls := memory.NewBufferBytes([]byte{0xff})

	// 16 elements need 2 bitmap bytes
	_, err := array.NewDataFromBuffers(quiver.PrimitiveTypes.Uint8, 16, nulls, 0, []*memory.Buffer{values}, nil)
	assert.True(t, errors.Is(err, array.ErrBufferTooSmall), "unexpected error %v", err)
}

func TestDataRoundTrip(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	bldr := array.NewInt32Builder(mem)
	defer bldr.Release()

	bldr.Append(7)
	bldr.AppendNull()
	bldr.Append(9)

	a := bldr.NewNumericArray()
	defer a.Release()

	data := a.Data()
	got, err := array.NewDataFromBuffers(data.DataType(), data.Len(), data.NullBuffer(), data.Offset(), data.Buffers(), nil)
	require.NoError(t, err)
	defer got.Release()

	b := array.MakeFromData(got)
	defer b.Release()

	assert.True(t, array.Equal(a, b), "rebuilding an array from its own buffers must be lossless")
}

func TestDataNullNLazy(t *testing.T) {
	nulls := memory.NewBufferBytes([]byte{0x0b}) // 1101 LSB-first
	values := memory.NewBufferBytes([]byte{1, 2, 3, 4})

	data, err := array.NewDataFromBuffers(quiver.PrimitiveTypes.Uint8, 4, nulls, 0, []*memory.Buffer{values}, nil)
	require.NoError(t, err)
	defer data.Release()

	// computed from the bitmap on first call
	assert.Equal(t, 1, data.NullN())
	assert.Equal(t, 1, data.NullN())
}

func TestDataNullBitmapView(t *testing.T) {
	nulls := memory.NewBufferBytes([]byte{0x05}) // 101 LSB-first
	values := memory.NewBufferBytes([]byte{1, 2, 3})

	data, err := array.NewDataFromBuffers(quiver.PrimitiveTypes.Uint8, 3, nulls, 0, []*memory.Buffer{values}, nil)
	require.NoError(t, err)
	defer data.Release()

	bm := data.NullBitmap()
	require.NotNil(t, bm)
	defer bm.Release()

	assert.True(t, bm.Value(0))
	assert.False(t, bm.Value(1))
	assert.True(t, bm.Value(2))
}

func TestSliceDataBounds(t *testing.T) {
	values := memory.NewBufferBytes([]byte{1, 2, 3, 4})

	data, err := array.NewDataFromBuffers(quiver.PrimitiveTypes.Uint8, 4, nil, 0, []*memory.Buffer{values}, nil)
	require.NoError(t, err)
	defer data.Release()

	sub := array.NewSliceData(data, 1, 3)
	assert.Equal(t, 2, sub.Len())
	assert.Equal(t, 1, sub.Offset())
	sub.Release()

	assert.Panics(t, func() { array.NewSliceData(data, 3, 5) })
	assert.Panics(t, func() { array.NewSliceData(data, 3, 1) })
}

func TestDataReset(t *testing.T) {
	values := memory.NewBufferBytes([]byte{1, 2, 3})
	data, err := array.NewDataFromBuffers(quiver.PrimitiveTypes.Uint8, 3, nil, 0, []*memory.Buffer{values}, nil)
	require.NoError(t, err)
	defer data.Release()

	other := memory.NewBufferBytes(quiver.CastToBytes([]int32{10, 20}))
	data.Reset(quiver.PrimitiveTypes.Int32, 2, nil, 0, []*memory.Buffer{other}, nil, 0)

	assert.Equal(t, quiver.INT32, data.DataType().ID())
	assert.Equal(t, 2, data.Len())

	a := array.MakeFromData(data).(*array.Int32)
	defer a.Release()
	assert.Equal(t, []int32{10, 20}, a.Values())
}
