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
	"fmt"
	"strings"
	"unsafe"

	json "github.com/goccy/go-json"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/memory"
)

// A String is an immutable sequence of variable-length UTF-8 strings,
// sharing the physical layout of Binary: offsets plus concatenated data.
type String struct {
	array
	valueOffsets []int32
	valueBytes   []byte
}

// NewStringData constructs a new String array from data.
func NewStringData(data *Data) *String {
	a := &String{}
	a.refCount = 1
	a.setData(data)
	return a
}

// StringFromSlice creates an all-valid array holding a copy of vs. The
// produced array carries no validity bitmap. It is sugar over a
// StringBuilder with all-valid appends.
func StringFromSlice(mem memory.Allocator, vs []string) *String {
	bldr := NewStringBuilder(mem)
	defer bldr.Release()

	bldr.AppendValues(vs, nil)
	return bldr.NewStringArray()
}

// Value returns the string at index i. The returned string aliases the
// array's data buffer and is only valid for the array's lifetime.
func (a *String) Value(i int) string {
	if i < 0 || i >= a.array.data.length {
		panic(indexOutOfRange(i, a.array.data.length))
	}
	idx := a.array.data.offset + i
	b := a.valueBytes[a.valueOffsets[idx]:a.valueOffsets[idx+1]]
	return *(*string)(unsafe.Pointer(&b))
}

func (a *String) ValueOffset(i int) int { return int(a.valueOffsets[a.array.data.offset+i]) }
func (a *String) ValueLen(i int) int {
	idx := a.array.data.offset + i
	return int(a.valueOffsets[idx+1] - a.valueOffsets[idx])
}

// ValueOffsets returns the Len()+1 offsets delimiting the logical window.
func (a *String) ValueOffsets() []int32 {
	beg := a.array.data.offset
	return a.valueOffsets[beg : beg+a.array.data.length+1]
}

// ValueBytes returns the content of the data buffer.
func (a *String) ValueBytes() []byte { return a.valueBytes }

func (a *String) String() string {
	o := new(strings.Builder)
	o.WriteString("[")
	for i := 0; i < a.Len(); i++ {
		if i > 0 {
			o.WriteString(" ")
		}
		switch {
		case a.IsNull(i):
			o.WriteString(NullValueStr)
		default:
			fmt.Fprintf(o, "%q", a.Value(i))
		}
	}
	o.WriteString("]")
	return o.String()
}

// MarshalJSON renders the logical values for diagnostics, nulls as JSON
// null. It is not a persisted format.
func (a *String) MarshalJSON() ([]byte, error) {
	vals := make([]interface{}, a.Len())
	for i := range vals {
		if a.IsValid(i) {
			vals[i] = a.Value(i)
		}
	}
	return json.Marshal(vals)
}

func (a *String) setData(data *Data) {
	if len(data.buffers) != 2 {
		panic("array: string data should have 2 buffers")
	}

	a.array.setData(data)

	if valueOffsets := data.buffers[0]; valueOffsets != nil {
		a.valueOffsets = quiver.CastFromBytes[int32](valueOffsets.Bytes())
	}
	if valueData := data.buffers[1]; valueData != nil {
		a.valueBytes = valueData.Bytes()
	}
}

// A StringBuilder is used to build a String array using the Append methods.
// It shares the variable-width accumulation machinery of BinaryBuilder.
type StringBuilder struct {
	*BinaryBuilder
}

// NewStringBuilder creates a builder for UTF-8 string content.
// If mem is nil, memory.DefaultAllocator is used.
func NewStringBuilder(mem memory.Allocator) *StringBuilder {
	return &StringBuilder{NewBinaryBuilder(mem, quiver.BinaryTypes.String)}
}

// NewStringBuilderWithCapacity creates a builder preallocating the offsets
// buffer for itemCount elements and the data buffer for dataSize bytes of
// concatenated string content.
func NewStringBuilderWithCapacity(mem memory.Allocator, itemCount, dataSize int) *StringBuilder {
	return &StringBuilder{NewBinaryBuilderWithCapacity(mem, quiver.BinaryTypes.String, itemCount, dataSize)}
}

// Append appends a string to the array being built.
func (b *StringBuilder) Append(v string) {
	b.BinaryBuilder.Append([]byte(v))
}

// AppendOption appends *v, or a null element when v is nil.
func (b *StringBuilder) AppendOption(v *string) {
	if v == nil {
		b.AppendNull()
	} else {
		b.Append(*v)
	}
}

// AppendValues will append the values in the v slice. The valid slice determines which values
// in v are valid (not null). The valid slice must either be empty or be equal in length to v. If empty,
// all values in v are appended and considered valid.
func (b *StringBuilder) AppendValues(v []string, valid []bool) {
	b.BinaryBuilder.AppendStringValues(v, valid)
}

// Value returns the string accumulated at index i.
func (b *StringBuilder) Value(i int) string {
	return string(b.BinaryBuilder.Value(i))
}

// NewArray creates a String array from the memory buffers used by the builder and resets the StringBuilder
// so it can be used to build a new array.
func (b *StringBuilder) NewArray() Interface {
	return b.NewStringArray()
}

// NewStringArray creates a String array from the memory buffers used by the builder and resets the StringBuilder
// so it can be used to build a new array.
func (b *StringBuilder) NewStringArray() (a *String) {
	data := b.newData()
	a = NewStringData(data)
	data.Release()
	return
}

var (
	_ Interface = (*String)(nil)
	_ Builder   = (*StringBuilder)(nil)
)
