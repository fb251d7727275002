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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/array"
	"github.com/quiverdata/quiver/bitutil"
	"github.com/quiverdata/quiver/memory"
)

func TestNewInt32Builder(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewNumericBuilderWithCapacity[int32](mem, 8)
	defer ab.Release()

	ab.Append(1)
	ab.AppendNull()
	ab.Append(3)
	ab.Append(4)
	ab.Append(5)
	ab.AppendNull()
	ab.Append(8)

	// check state of builder before NewNumericArray
	assert.Equal(t, 7, ab.Len(), "unexpected Len()")
	assert.Equal(t, 2, ab.NullN(), "unexpected NullN()")
	assert.Equal(t, int32(5), ab.Value(4))

	a := ab.NewNumericArray()

	// check state of builder after NewNumericArray
	assert.Zero(t, ab.Len(), "unexpected Len(), NewNumericArray did not reset state")
	assert.Zero(t, ab.Cap(), "unexpected Cap(), NewNumericArray did not reset state")
	assert.Zero(t, ab.NullN(), "unexpected NullN(), NewNumericArray did not reset state")

	// check state of array
	assert.Equal(t, 7, a.Len())
	assert.Equal(t, 2, a.NullN(), "unexpected null count")
	assert.Equal(t, []int32{1, 0, 3, 4, 5, 0, 8}, a.Values())
	assert.True(t, a.IsNull(1))
	assert.True(t, a.IsNull(5))
	assert.True(t, a.IsValid(0))
	assert.True(t, a.IsValid(6))

	// validity bitmap: 1011101 LSB-first
	nulls := a.Data().NullBuffer()
	assert.NotNil(t, nulls)
	assert.Equal(t, byte(0x5d), nulls.Bytes()[0])

	a.Release()

	// the builder is reusable after NewNumericArray
	ab.Append(7)
	ab.Append(8)

	a = ab.NewNumericArray()

	assert.Equal(t, 0, a.NullN())
	assert.Equal(t, []int32{7, 8}, a.Values())

	a.Release()
}

func TestNumericBuilderNoNulls(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewFloat64Builder(mem)
	defer ab.Release()

	for i := 0; i < 10; i++ {
		ab.Append(float64(i))
	}

	a := ab.NewNumericArray()
	defer a.Release()

	// no null was ever appended, so no validity bitmap was allocated
	assert.Zero(t, a.NullN())
	assert.Nil(t, a.Data().NullBuffer())
	for i := 0; i < 10; i++ {
		assert.True(t, a.IsValid(i))
	}
}

func TestNumericBuilderLazyBitmapBackfill(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewInt64Builder(mem)
	defer ab.Release()

	ab.Append(1)
	ab.Append(2)
	ab.AppendNull() // first null materializes the bitmap
	ab.Append(3)

	a := ab.NewNumericArray()
	defer a.Release()

	assert.Equal(t, 1, a.NullN())
	nulls := a.Data().NullBuffer()
	assert.NotNil(t, nulls)

	// positions appended before the first null were backfilled as valid
	exp := []bool{true, true, false, true}
	for i, v := range exp {
		assert.Equal(t, v, bitutil.BitIsSet(nulls.Bytes(), i), "bit %d", i)
		assert.Equal(t, v, a.IsValid(i), "element %d", i)
	}
}

func TestUint8Builder_AppendValues(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewUint8Builder(mem)
	defer ab.Release()

	exp := []uint8{1, 2, 3, 4}
	ab.AppendValues(exp, nil)
	a := ab.NewNumericArray()
	assert.Equal(t, exp, a.Values())
	assert.Nil(t, a.Data().NullBuffer())
	a.Release()

	ab.AppendValues(exp, []bool{true, false, true, false})
	a = ab.NewNumericArray()
	assert.Equal(t, 2, a.NullN())
	assert.Equal(t, exp, a.Values())
	assert.True(t, a.IsNull(1))
	assert.True(t, a.IsNull(3))
	a.Release()
}

func TestNumericBuilder_AppendOption(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewFloat32Builder(mem)
	defer ab.Release()

	one := float32(1.5)
	ab.AppendOption(&one)
	ab.AppendOption(nil)

	a := ab.NewNumericArray()
	defer a.Release()

	assert.Equal(t, float32(1.5), a.Value(0))
	assert.True(t, a.IsNull(1))
}

func TestNumericBuilder_Resize(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewInt16Builder(mem)
	defer ab.Release()

	assert.Equal(t, 0, ab.Cap())
	assert.Equal(t, 0, ab.Len())

	ab.Reserve(63)
	assert.Equal(t, 64, ab.Cap())
	assert.Equal(t, 0, ab.Len())

	for i := 0; i < 63; i++ {
		ab.Append(int16(i))
	}
	assert.Equal(t, 64, ab.Cap())
	assert.Equal(t, 63, ab.Len())

	ab.Resize(5)
	assert.Equal(t, 5, ab.Len())
}

func TestNumericFromSlice(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a := array.NumericFromSlice(mem, []uint64{5, 6, 7})
	defer a.Release()

	assert.Equal(t, 3, a.Len())
	assert.Zero(t, a.NullN())
	assert.Equal(t, quiver.UINT64, a.DataType().ID())
	assert.Equal(t, []uint64{5, 6, 7}, a.Values())
}

func TestNumericFromOptions(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	one, three := int32(1), int32(3)
	a := array.NumericFromOptions(mem, []*int32{&one, nil, &three})
	defer a.Release()

	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 1, a.NullN())
	assert.Equal(t, int32(1), a.Value(0))
	assert.True(t, a.IsNull(1))
	assert.Equal(t, int32(3), a.Value(2))
}
