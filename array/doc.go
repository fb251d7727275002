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

/*
Package array provides implementations of immutable columnar arrays.

Arrays are built with the corresponding builders, which accumulate
values and per-element validity, then sealed into immutable arrays:

	bldr := array.NewInt32Builder(memory.DefaultAllocator)
	defer bldr.Release()

	bldr.Append(1)
	bldr.AppendNull()
	bldr.Append(3)

	arr := bldr.NewInt32Array()
	defer arr.Release()

Every array is a typed view over a Data, the type-erased bundle of
length, offset, validity bitmap and value buffers. Data values built
from untrusted buffers are validated with NewDataFromBuffers.
*/
package array
