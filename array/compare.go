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
	"bytes"
	"fmt"

	"github.com/quiverdata/quiver"
)

// Equal reports whether the two provided arrays are logically equal:
// same type, same length, nulls at the same positions and equal values
// at every valid position. Physical representation is not compared, so
// a sliced array and a freshly built one may still be equal.
func Equal(left, right Interface) bool {
	switch {
	case !baseArrayEqual(left, right):
		return false
	case left.Len() == 0:
		return true
	case left.NullN() == left.Len():
		return true
	}

	// at this point, we know both arrays have same type, same length,
	// same number of nulls and nulls at the same place.
	// compare the values.

	switch l := left.(type) {
	case *Binary:
		r := right.(*Binary)
		return binaryArrayEqual(l, r)
	case *String:
		r := right.(*String)
		return stringArrayEqual(l, r)
	case *Int8:
		return numericArrayEqual(l, right.(*Int8))
	case *Int16:
		return numericArrayEqual(l, right.(*Int16))
	case *Int32:
		return numericArrayEqual(l, right.(*Int32))
	case *Int64:
		return numericArrayEqual(l, right.(*Int64))
	case *Uint8:
		return numericArrayEqual(l, right.(*Uint8))
	case *Uint16:
		return numericArrayEqual(l, right.(*Uint16))
	case *Uint32:
		return numericArrayEqual(l, right.(*Uint32))
	case *Uint64:
		return numericArrayEqual(l, right.(*Uint64))
	case *Float32:
		return numericArrayEqual(l, right.(*Float32))
	case *Float64:
		return numericArrayEqual(l, right.(*Float64))
	default:
		panic(fmt.Errorf("array: unknown array type %T", l))
	}
}

func baseArrayEqual(left, right Interface) bool {
	switch {
	case left.Len() != right.Len():
		return false
	case left.NullN() != right.NullN():
		return false
	case left.DataType().ID() != right.DataType().ID():
		return false
	case !validityBitmapEqual(left, right):
		return false
	}
	return true
}

func validityBitmapEqual(left, right Interface) bool {
	n := left.Len()
	if n != right.Len() {
		return false
	}
	for i := 0; i < n; i++ {
		if left.IsNull(i) != right.IsNull(i) {
			return false
		}
	}
	return true
}

func numericArrayEqual[T quiver.FixedWidthType](left, right *Numeric[T]) bool {
	for i := 0; i < left.Len(); i++ {
		if left.IsNull(i) {
			continue
		}
		if left.Value(i) != right.Value(i) {
			return false
		}
	}
	return true
}

func binaryArrayEqual(left, right *Binary) bool {
	for i := 0; i < left.Len(); i++ {
		if left.IsNull(i) {
			continue
		}
		if !bytes.Equal(left.Value(i), right.Value(i)) {
			return false
		}
	}
	return true
}

func stringArrayEqual(left, right *String) bool {
	for i := 0; i < left.Len(); i++ {
		if left.IsNull(i) {
			continue
		}
		if left.Value(i) != right.Value(i) {
			return false
		}
	}
	return true
}
