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
	"github.com/quiverdata/quiver/memory"
)

func TestBinaryBuilder(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewBinaryBuilder(mem, quiver.BinaryTypes.Binary)
	defer ab.Release()

	exp := [][]byte{[]byte("foo"), []byte("bar"), nil, []byte("sydney"), []byte("cameron")}
	for _, v := range exp {
		if v == nil {
			ab.AppendNull()
		} else {
			ab.Append(v)
		}
	}

	assert.Equal(t, len(exp), ab.Len(), "unexpected Len()")
	assert.Equal(t, 1, ab.NullN(), "unexpected NullN()")

	for i, v := range exp {
		if v == nil {
			v = []byte{}
		}
		assert.Equal(t, v, ab.Value(i), "unexpected BinaryBuilder.Value(%d)", i)
	}

	ar := ab.NewBinaryArray()
	defer ar.Release()

	// check state of builder after NewBinaryArray
	assert.Zero(t, ab.Len(), "unexpected Len(), NewBinaryArray did not reset state")
	assert.Zero(t, ab.Cap(), "unexpected Cap(), NewBinaryArray did not reset state")
	assert.Zero(t, ab.NullN(), "unexpected NullN(), NewBinaryArray did not reset state")

	assert.Equal(t, quiver.BINARY, ar.DataType().ID())
	assert.Equal(t, []byte("foo"), ar.Value(0))
	assert.Equal(t, "bar", ar.ValueString(1))
	assert.True(t, ar.IsNull(2))
	assert.Equal(t, []byte("sydney"), ar.Value(3))
	assert.Equal(t, 7, ar.ValueLen(4))
}

func TestBinaryBuilderWithCapacity(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewBinaryBuilderWithCapacity(mem, quiver.BinaryTypes.Binary, 16, 256)
	defer ab.Release()

	assert.GreaterOrEqual(t, ab.Cap(), 16)
	assert.GreaterOrEqual(t, ab.DataCap(), 256)
	assert.Zero(t, ab.DataLen())

	ab.Append([]byte("data"))
	assert.Equal(t, 4, ab.DataLen())
}

func TestBinaryBuilderAppendValues(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewBinaryBuilder(mem, quiver.BinaryTypes.Binary)
	defer ab.Release()

	ab.AppendValues([][]byte{[]byte("a"), []byte("bc")}, nil)
	ab.AppendValues([][]byte{nil, []byte("de")}, []bool{false, true})

	a := ab.NewBinaryArray()
	defer a.Release()

	assert.Equal(t, 4, a.Len())
	assert.Equal(t, 1, a.NullN())
	assert.Equal(t, []byte("a"), a.Value(0))
	assert.Equal(t, []byte("bc"), a.Value(1))
	assert.True(t, a.IsNull(2))
	assert.Equal(t, []byte("de"), a.Value(3))
}

func TestBinaryBuilderAppendOption(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	ab := array.NewBinaryBuilder(mem, quiver.BinaryTypes.Binary)
	defer ab.Release()

	ab.AppendOption([]byte("yes"))
	ab.AppendOption(nil)

	a := ab.NewBinaryArray()
	defer a.Release()

	assert.Equal(t, []byte("yes"), a.Value(0))
	assert.True(t, a.IsNull(1))
}

func TestBinaryFromSlices(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	a := array.BinaryFromSlices(mem, [][]byte{{0x01}, {0x02, 0x03}})
	defer a.Release()

	assert.Equal(t, 2, a.Len())
	assert.Zero(t, a.NullN())
	assert.Equal(t, []byte{0x02, 0x03}, a.Value(1))
}
