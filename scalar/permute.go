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

package scalar

import "github.com/ajroetker/hwycheck/lane"

// int32 lanes in one 128-bit block.
const block = 4

// Shuffle0123 reverses the lanes of every 128-bit block.
func Shuffle0123(dst, a []int32) {
	for base := 0; base+block <= len(a); base += block {
		for i := range block {
			dst[base+i] = a[base+block-1-i]
		}
	}
}

// UnpackLo interleaves the low halves of each 128-bit block:
// a0 b0 a1 b1 | a4 b4 a5 b5.
func UnpackLo(dst, a, b []int32) {
	for base := 0; base+block <= len(a); base += block {
		dst[base+0] = a[base+0]
		dst[base+1] = b[base+0]
		dst[base+2] = a[base+1]
		dst[base+3] = b[base+1]
	}
}

// UnpackHi interleaves the high halves of each 128-bit block:
// a2 b2 a3 b3 | a6 b6 a7 b7.
func UnpackHi(dst, a, b []int32) {
	for base := 0; base+block <= len(a); base += block {
		dst[base+0] = a[base+2]
		dst[base+1] = b[base+2]
		dst[base+2] = a[base+3]
		dst[base+3] = b[base+3]
	}
}

// SwapLanes exchanges the two halves of a.
func SwapLanes(dst, a []int32) {
	half := len(a) / 2
	for i := range half {
		dst[i] = a[half+i]
		dst[half+i] = a[i]
	}
}

// PermuteVar sets dst[i] = a[idx[i] mod len(a)]. len(a) must be a power of
// two; only the low bits of each index are used.
func PermuteVar[T lane.Element, I lane.Mask](dst, a []T, idx []I) {
	n := len(a)
	for i := range a {
		dst[i] = a[int(idx[i])&(n-1)]
	}
}
