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

// Package bitutil provides the bit-packing primitives shared by validity
// bitmaps. Packing is little-endian within each byte: bit 0 of byte 0 is
// element 0. The builder path and the raw-buffer path both rely on this
// ordering.
package bitutil

import (
	"math/bits"
)

var (
	BitMask        = [8]byte{1, 2, 4, 8, 16, 32, 64, 128}
	FlippedBitMask = [8]byte{254, 253, 251, 247, 239, 223, 191, 127}
)

// NextPowerOf2 rounds x to the next power of two.
func NextPowerOf2(x int) int { return 1 << uint(bits.Len(uint(x))) }

// CeilByte rounds size to the next multiple of 8.
func CeilByte(size int) int { return (size + 7) &^ 7 }

// BytesForBits returns the number of bytes required to store n bits.
func BytesForBits(n int) int { return (n + 7) >> 3 }

// BitIsSet returns true if the bit at index i in buf is set (1).
func BitIsSet(buf []byte, i int) bool { return (buf[uint(i)/8] & BitMask[byte(i)%8]) != 0 }

// BitIsNotSet returns true if the bit at index i in buf is not set (0).
func BitIsNotSet(buf []byte, i int) bool { return (buf[uint(i)/8] & BitMask[byte(i)%8]) == 0 }

// SetBit sets the bit at index i in buf to 1.
func SetBit(buf []byte, i int) { buf[uint(i)/8] |= BitMask[byte(i)%8] }

// ClearBit sets the bit at index i in buf to 0.
func ClearBit(buf []byte, i int) { buf[uint(i)/8] &= FlippedBitMask[byte(i)%8] }

// SetBitTo sets the bit at index i in buf to val.
func SetBitTo(buf []byte, i int, val bool) {
	if val {
		SetBit(buf, i)
	} else {
		ClearBit(buf, i)
	}
}

// SetBitsTo sets the bits in the range [offset, offset+length) to val,
// filling whole bytes where possible.
func SetBitsTo(buf []byte, offset, length int, val bool) {
	if length == 0 {
		return
	}

	fill := byte(0x00)
	if val {
		fill = 0xff
	}

	i := offset
	end := offset + length
	for ; i < end && i%8 != 0; i++ {
		SetBitTo(buf, i, val)
	}
	for ; i+8 <= end; i += 8 {
		buf[i/8] = fill
	}
	for ; i < end; i++ {
		SetBitTo(buf, i, val)
	}
}

// CountSetBits counts the number of 1's in buf within the bit range
// [offset, offset+n).
func CountSetBits(buf []byte, offset, n int) int {
	count := 0

	i := offset
	end := offset + n
	for ; i < end && i%8 != 0; i++ {
		if BitIsSet(buf, i) {
			count++
		}
	}
	for ; i+8 <= end; i += 8 {
		count += bits.OnesCount8(buf[i/8])
	}
	for ; i < end; i++ {
		if BitIsSet(buf, i) {
			count++
		}
	}

	return count
}
