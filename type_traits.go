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

package quiver

import (
	"fmt"
	"unsafe"
)

// FixedWidthType is the closed set of Go scalar kinds that can be stored in
// a fixed-width array. The bytes of a value are laid out exactly as the
// machine representation, little-endian on all supported platforms.
type FixedWidthType interface {
	int8 | uint8 | int16 | uint16 |
		int32 | uint32 | int64 | uint64 |
		float32 | float64
}

const (
	Uint8SizeBytes   = int(unsafe.Sizeof(uint8(0)))
	Int8SizeBytes    = int(unsafe.Sizeof(int8(0)))
	Uint16SizeBytes  = int(unsafe.Sizeof(uint16(0)))
	Int16SizeBytes   = int(unsafe.Sizeof(int16(0)))
	Uint32SizeBytes  = int(unsafe.Sizeof(uint32(0)))
	Int32SizeBytes   = int(unsafe.Sizeof(int32(0)))
	Uint64SizeBytes  = int(unsafe.Sizeof(uint64(0)))
	Int64SizeBytes   = int(unsafe.Sizeof(int64(0)))
	Float32SizeBytes = int(unsafe.Sizeof(float32(0)))
	Float64SizeBytes = int(unsafe.Sizeof(float64(0)))
)

// SizeBytes returns the physical width of T in bytes.
func SizeBytes[T FixedWidthType]() int {
	var z T
	return int(unsafe.Sizeof(z))
}

// BytesRequired returns the number of bytes required to store n elements of T.
func BytesRequired[T FixedWidthType](n int) int { return n * SizeBytes[T]() }

// CastFromBytes reinterprets the slice b to a slice of type T.
//
// NOTE: len(b) must be a multiple of T's size.
func CastFromBytes[T FixedWidthType](b []byte) []T {
	if len(b) == 0 {
		return nil
	}
	size := SizeBytes[T]()
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), cap(b)/size)[: len(b)/size : cap(b)/size]
}

// CastToBytes reinterprets the slice s to a slice of bytes.
func CastToBytes[T FixedWidthType](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	size := SizeBytes[T]()
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), cap(s)*size)[: len(s)*size : cap(s)*size]
}

// PutValue stores v's bytes at the start of b. len(b) must be at least T's size.
func PutValue[T FixedWidthType](b []byte, v T) {
	_ = b[SizeBytes[T]()-1]
	*(*T)(unsafe.Pointer(&b[0])) = v
}

// TypeOf returns the DataType tag corresponding to the Go scalar kind T.
func TypeOf[T FixedWidthType]() FixedWidthDataType {
	var z T
	switch any(z).(type) {
	case uint8:
		return PrimitiveTypes.Uint8
	case int8:
		return PrimitiveTypes.Int8
	case uint16:
		return PrimitiveTypes.Uint16
	case int16:
		return PrimitiveTypes.Int16
	case uint32:
		return PrimitiveTypes.Uint32
	case int32:
		return PrimitiveTypes.Int32
	case uint64:
		return PrimitiveTypes.Uint64
	case int64:
		return PrimitiveTypes.Int64
	case float32:
		return PrimitiveTypes.Float32
	case float64:
		return PrimitiveTypes.Float64
	}
	panic(fmt.Sprintf("quiver: no data type for %T", z))
}
