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

// Type is a logical type tag. Every tag maps to a fixed physical layout:
// a primitive of some fixed byte width, or a variable-width layout made of
// an offsets buffer plus a data buffer.
type Type int

const (
	// UINT8 is an Unsigned 8-bit little-endian integer
	UINT8 Type = iota

	// INT8 is a Signed 8-bit little-endian integer
	INT8

	// UINT16 is an Unsigned 16-bit little-endian integer
	UINT16

	// INT16 is a Signed 16-bit little-endian integer
	INT16

	// UINT32 is an Unsigned 32-bit little-endian integer
	UINT32

	// INT32 is a Signed 32-bit little-endian integer
	INT32

	// UINT64 is an Unsigned 64-bit little-endian integer
	UINT64

	// INT64 is a Signed 64-bit little-endian integer
	INT64

	// FLOAT32 is a 4-byte floating point value
	FLOAT32

	// FLOAT64 is an 8-byte floating point value
	FLOAT64

	// STRING is a UTF8 variable-length string
	STRING

	// BINARY is a Variable-length byte type (no guarantee of UTF8-ness)
	BINARY
)

// DataType is the representation of a logical type tag. It is implemented
// by a closed set of singleton types, exposed through PrimitiveTypes and
// BinaryTypes.
type DataType interface {
	ID() Type

	// Name is the string representation of the type name.
	Name() string
}

// FixedWidthDataType is the representation of a fixed-width type,
// where every value occupies the same number of bits.
type FixedWidthDataType interface {
	DataType

	// BitWidth returns the number of bits required to store a single element.
	BitWidth() int
}

// BinaryDataType marks the variable-width types, whose physical layout is
// an offsets buffer delimiting spans of a shared data buffer.
type BinaryDataType interface {
	DataType
	binary()
}

type Uint8Type struct{}

func (t *Uint8Type) ID() Type       { return UINT8 }
func (t *Uint8Type) Name() string   { return "uint8" }
func (t *Uint8Type) String() string { return "uint8" }
func (t *Uint8Type) BitWidth() int  { return 8 }

type Int8Type struct{}

func (t *Int8Type) ID() Type       { return INT8 }
func (t *Int8Type) Name() string   { return "int8" }
func (t *Int8Type) String() string { return "int8" }
func (t *Int8Type) BitWidth() int  { return 8 }

type Uint16Type struct{}

func (t *Uint16Type) ID() Type       { return UINT16 }
func (t *Uint16Type) Name() string   { return "uint16" }
func (t *Uint16Type) String() string { return "uint16" }
func (t *Uint16Type) BitWidth() int  { return 16 }

type Int16Type struct{}

func (t *Int16Type) ID() Type       { return INT16 }
func (t *Int16Type) Name() string   { return "int16" }
func (t *Int16Type) String() string { return "int16" }
func (t *Int16Type) BitWidth() int  { return 16 }

type Uint32Type struct{}

func (t *Uint32Type) ID() Type       { return UINT32 }
func (t *Uint32Type) Name() string   { return "uint32" }
func (t *Uint32Type) String() string { return "uint32" }
func (t *Uint32Type) BitWidth() int  { return 32 }

type Int32Type struct{}

func (t *Int32Type) ID() Type       { return INT32 }
func (t *Int32Type) Name() string   { return "int32" }
func (t *Int32Type) String() string { return "int32" }
func (t *Int32Type) BitWidth() int  { return 32 }

type Uint64Type struct{}

func (t *Uint64Type) ID() Type       { return UINT64 }
func (t *Uint64Type) Name() string   { return "uint64" }
func (t *Uint64Type) String() string { return "uint64" }
func (t *Uint64Type) BitWidth() int  { return 64 }

type Int64Type struct{}

func (t *Int64Type) ID() Type       { return INT64 }
func (t *Int64Type) Name() string   { return "int64" }
func (t *Int64Type) String() string { return "int64" }
func (t *Int64Type) BitWidth() int  { return 64 }

type Float32Type struct{}

func (t *Float32Type) ID() Type       { return FLOAT32 }
func (t *Float32Type) Name() string   { return "float32" }
func (t *Float32Type) String() string { return "float32" }
func (t *Float32Type) BitWidth() int  { return 32 }

type Float64Type struct{}

func (t *Float64Type) ID() Type       { return FLOAT64 }
func (t *Float64Type) Name() string   { return "float64" }
func (t *Float64Type) String() string { return "float64" }
func (t *Float64Type) BitWidth() int  { return 64 }

// StringType represents variable-length sequences of UTF-8 bytes.
type StringType struct{}

func (t *StringType) ID() Type       { return STRING }
func (t *StringType) Name() string   { return "utf8" }
func (t *StringType) String() string { return "utf8" }
func (t *StringType) binary()        {}

// BinaryType represents variable-length sequences of bytes.
type BinaryType struct{}

func (t *BinaryType) ID() Type       { return BINARY }
func (t *BinaryType) Name() string   { return "binary" }
func (t *BinaryType) String() string { return "binary" }
func (t *BinaryType) binary()        {}

var (
	// PrimitiveTypes provides a convenience selector of the fixed-width types.
	PrimitiveTypes = struct {
		Uint8   FixedWidthDataType
		Int8    FixedWidthDataType
		Uint16  FixedWidthDataType
		Int16   FixedWidthDataType
		Uint32  FixedWidthDataType
		Int32   FixedWidthDataType
		Uint64  FixedWidthDataType
		Int64   FixedWidthDataType
		Float32 FixedWidthDataType
		Float64 FixedWidthDataType
	}{
		Uint8:   &Uint8Type{},
		Int8:    &Int8Type{},
		Uint16:  &Uint16Type{},
		Int16:   &Int16Type{},
		Uint32:  &Uint32Type{},
		Int32:   &Int32Type{},
		Uint64:  &Uint64Type{},
		Int64:   &Int64Type{},
		Float32: &Float32Type{},
		Float64: &Float64Type{},
	}

	// BinaryTypes provides a convenience selector of the variable-width types.
	BinaryTypes = struct {
		String BinaryDataType
		Binary BinaryDataType
	}{
		String: &StringType{},
		Binary: &BinaryType{},
	}
)

var (
	_ FixedWidthDataType = (*Int32Type)(nil)
	_ BinaryDataType     = (*StringType)(nil)
)
