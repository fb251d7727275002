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
Package quiver provides the type tags and low-level traits of a columnar
in-memory array library.

Arrays are immutable sequences of typed, nullable values backed by
contiguous, reference-counted byte buffers. Fixed-width values are stored
back to back in a single values buffer; variable-width values (strings,
binary) are stored as one concatenated data buffer delimited by a
monotonically non-decreasing offsets buffer. Nulls are tracked in an
optional bit-packed validity bitmap, one bit per element, allocated only
when an array actually contains a null.

The array and builder implementations live in the quiver/array package;
buffer management lives in quiver/memory.
*/
package quiver
