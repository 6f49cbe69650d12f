// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hwy

import "unsafe"

// This file provides shuffle and permutation operations. Like the x86
// instructions they model, the in-block shuffles work on each 128-bit
// block independently.

// blockLanes returns how many T lanes fit in a 128-bit block.
func blockLanes[T Lanes]() int {
	var dummy T
	return 16 / int(unsafe.Sizeof(dummy))
}

// Reverse4 reverses each group of 4 lanes. For 32-bit lanes this is
// PSHUFD with _MM_SHUFFLE(0, 1, 2, 3).
// [0,1,2,3,4,5,6,7] -> [3,2,1,0,7,6,5,4]
func Reverse4[T Lanes](v Vec[T]) Vec[T] {
	n := len(v.data)
	result := make([]T, n)
	for base := 0; base < n; base += 4 {
		if base+4 > n {
			copy(result[base:], v.data[base:])
			break
		}
		result[base+0] = v.data[base+3]
		result[base+1] = v.data[base+2]
		result[base+2] = v.data[base+1]
		result[base+3] = v.data[base+0]
	}
	return Vec[T]{data: result}
}

// InterleaveLower interleaves the lower halves of each 128-bit block of a
// and b, like PUNPCKLDQ.
// For 32-bit lanes: [a0,a1,a2,a3], [b0,b1,b2,b3] -> [a0,b0,a1,b1]
func InterleaveLower[T Lanes](a, b Vec[T]) Vec[T] {
	return interleave(a, b, 0)
}

// InterleaveUpper interleaves the upper halves of each 128-bit block of a
// and b, like PUNPCKHDQ.
// For 32-bit lanes: [a0,a1,a2,a3], [b0,b1,b2,b3] -> [a2,b2,a3,b3]
func InterleaveUpper[T Lanes](a, b Vec[T]) Vec[T] {
	return interleave(a, b, blockLanes[T]()/2)
}

func interleave[T Lanes](a, b Vec[T], offset int) Vec[T] {
	n := min(len(a.data), len(b.data))
	block := blockLanes[T]()
	half := block / 2
	result := make([]T, n)
	for base := 0; base+block <= n; base += block {
		for i := 0; i < half; i++ {
			result[base+2*i] = a.data[base+offset+i]
			result[base+2*i+1] = b.data[base+offset+i]
		}
	}
	return Vec[T]{data: result}
}

// SwapAdjacentBlocks swaps adjacent 128-bit blocks.
// For AVX2 (256-bit), this swaps the two 128-bit halves.
// For AVX-512 (512-bit), this swaps pairs of 128-bit blocks.
func SwapAdjacentBlocks[T Lanes](v Vec[T]) Vec[T] {
	n := len(v.data)
	result := make([]T, n)
	block := blockLanes[T]()

	for i := 0; i < n; i += 2 * block {
		if i+2*block <= n {
			copy(result[i:i+block], v.data[i+block:i+2*block])
			copy(result[i+block:i+2*block], v.data[i:i+block])
		} else {
			copy(result[i:], v.data[i:])
		}
	}
	return Vec[T]{data: result}
}

// TableLookupLanes returns a vector whose lane i is tbl[idx[i]]. Like
// VPERMD and VPERMPS, only the low log2(N) bits of each index are used, so
// out of range indices wrap instead of producing zero. N must be a power
// of two.
func TableLookupLanes[T Lanes, I Integers](tbl Vec[T], idx Vec[I]) Vec[T] {
	n := min(len(tbl.data), len(idx.data))
	mask := uint64(len(tbl.data) - 1)
	result := make([]T, n)
	for i := 0; i < n; i++ {
		result[i] = tbl.data[toBits(idx.data[i])&mask]
	}
	return Vec[T]{data: result}
}
