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
	"encoding/base64"
	"fmt"
	"strings"
	"unsafe"

	json "github.com/goccy/go-json"

	"github.com/quiverdata/quiver"
	"github.com/quiverdata/quiver/memory"
)

// A Binary is an immutable sequence of variable-length byte strings: an
// offsets buffer of Len()+1 monotonically non-decreasing int32 values and a
// data buffer holding the concatenated content. Element i's bytes are
// data[offsets[i]:offsets[i+1]]; a null element's span may be non-empty but
// its bytes are unspecified.
type Binary struct {
	array
	valueOffsets []int32
	valueBytes   []byte
}

// NewBinaryData constructs a new Binary array from data.
func NewBinaryData(data *Data) *Binary {
	a := &Binary{}
	a.refCount = 1
	a.setData(data)
	return a
}

// BinaryFromSlices creates an all-valid array holding a copy of vs. The
// produced array carries no validity bitmap.
func BinaryFromSlices(mem memory.Allocator, vs [][]byte) *Binary {
	bldr := NewBinaryBuilder(mem, quiver.BinaryTypes.Binary)
	defer bldr.Release()

	bldr.AppendValues(vs, nil)
	return bldr.NewBinaryArray()
}

// Value returns the slice at index i. This value should not be mutated.
func (a *Binary) Value(i int) []byte {
	if i < 0 || i >= a.array.data.length {
		panic(indexOutOfRange(i, a.array.data.length))
	}
	idx := a.array.data.offset + i
	return a.valueBytes[a.valueOffsets[idx]:a.valueOffsets[idx+1]]
}

// ValueString returns the string at index i without performing additional allocations.
// The string is only valid for the lifetime of the Binary array.
func (a *Binary) ValueString(i int) string {
	b := a.Value(i)
	return *(*string)(unsafe.Pointer(&b))
}

func (a *Binary) ValueOffset(i int) int { return int(a.valueOffsets[a.array.data.offset+i]) }
func (a *Binary) ValueLen(i int) int {
	idx := a.array.data.offset + i
	return int(a.valueOffsets[idx+1] - a.valueOffsets[idx])
}

// ValueOffsets returns the Len()+1 offsets delimiting the logical window.
func (a *Binary) ValueOffsets() []int32 {
	beg := a.array.data.offset
	return a.valueOffsets[beg : beg+a.array.data.length+1]
}

// ValueBytes returns the content of the data buffer.
func (a *Binary) ValueBytes() []byte { return a.valueBytes }

func (a *Binary) String() string {
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

// MarshalJSON renders the logical values for diagnostics, base64-encoded,
// nulls as JSON null. It is not a persisted format.
func (a *Binary) MarshalJSON() ([]byte, error) {
	vals := make([]interface{}, a.Len())
	for i := range vals {
		if a.IsValid(i) {
			vals[i] = base64.StdEncoding.EncodeToString(a.Value(i))
		}
	}
	return json.Marshal(vals)
}

func (a *Binary) setData(data *Data) {
	if len(data.buffers) != 2 {
		panic("array: binary data should have 2 buffers")
	}

	a.array.setData(data)

	if valueOffsets := data.buffers[0]; valueOffsets != nil {
		a.valueOffsets = quiver.CastFromBytes[int32](valueOffsets.Bytes())
	}
	if valueData := data.buffers[1]; valueData != nil {
		a.valueBytes = valueData.Bytes()
	}
}

var (
	_ Interface = (*Binary)(nil)
)
