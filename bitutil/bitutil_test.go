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

package bitutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quiverdata/quiver/bitutil"
)

func TestBytesForBits(t *testing.T) {
	assert.Equal(t, 0, bitutil.BytesForBits(0))
	assert.Equal(t, 1, bitutil.BytesForBits(1))
	assert.Equal(t, 1, bitutil.BytesForBits(8))
	assert.Equal(t, 2, bitutil.BytesForBits(9))
}

func TestCeilByte(t *testing.T) {
	assert.Equal(t, 0, bitutil.CeilByte(0))
	assert.Equal(t, 8, bitutil.CeilByte(3))
	assert.Equal(t, 8, bitutil.CeilByte(8))
	assert.Equal(t, 16, bitutil.CeilByte(9))
}

func TestNextPowerOf2(t *testing.T) {
	assert.Equal(t, 2, bitutil.NextPowerOf2(1))
	assert.Equal(t, 8, bitutil.NextPowerOf2(5))
	assert.Equal(t, 16, bitutil.NextPowerOf2(8))
}

func TestSetClearBit(t *testing.T) {
	buf := make([]byte, 2)

	// LSB numbering within each byte
	bitutil.SetBit(buf, 0)
	assert.Equal(t, []byte{0x01, 0x00}, buf)

	bitutil.SetBit(buf, 9)
	assert.Equal(t, []byte{0x01, 0x02}, buf)
	assert.True(t, bitutil.BitIsSet(buf, 9))
	assert.True(t, bitutil.BitIsNotSet(buf, 8))

	bitutil.ClearBit(buf, 0)
	assert.Equal(t, []byte{0x00, 0x02}, buf)

	bitutil.SetBitTo(buf, 3, true)
	bitutil.SetBitTo(buf, 9, false)
	assert.Equal(t, []byte{0x08, 0x00}, buf)
}

func TestSetBitsTo(t *testing.T) {
	buf := make([]byte, 4)
	bitutil.SetBitsTo(buf, 3, 10, true)
	for i := 0; i < 32; i++ {
		assert.Equal(t, i >= 3 && i < 13, bitutil.BitIsSet(buf, i), "bit %d", i)
	}

	bitutil.SetBitsTo(buf, 5, 4, false)
	for i := 0; i < 32; i++ {
		exp := (i >= 3 && i < 5) || (i >= 9 && i < 13)
		assert.Equal(t, exp, bitutil.BitIsSet(buf, i), "bit %d", i)
	}
}

func TestCountSetBits(t *testing.T) {
	buf := make([]byte, 32)
	for _, i := range []int{0, 1, 7, 8, 63, 64, 100, 255} {
		bitutil.SetBit(buf, i)
	}

	assert.Equal(t, 8, bitutil.CountSetBits(buf, 0, 256))
	assert.Equal(t, 3, bitutil.CountSetBits(buf, 0, 8))
	assert.Equal(t, 3, bitutil.CountSetBits(buf, 1, 8))
	assert.Equal(t, 0, bitutil.CountSetBits(buf, 2, 5))
	assert.Equal(t, 2, bitutil.CountSetBits(buf, 8, 56))
	assert.Equal(t, 4, bitutil.CountSetBits(buf, 63, 193))
}
