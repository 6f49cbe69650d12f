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

package kernels

import (
	"github.com/ajroetker/hwycheck/hwy"
	"github.com/ajroetker/hwycheck/lane"
)

// Shifts and permutes have no archsimd kernels yet; they always run on
// the portable layer.

// Sll returns a kernel shifting each lane of a left by the matching lane
// of k. Counts outside [0, 31] give 0.
func Sll(w lane.Width) Binary[int32] {
	d := tag(w)
	return func(dst, a, k []int32) {
		hwy.Store(hwy.Shl(hwy.Load(d, a), hwy.Load(d, k)), dst)
	}
}

// Srl returns a kernel shifting each lane of a right by the matching lane
// of k, filling with zeros.
func Srl(w lane.Width) Binary[int32] {
	d := tag(w)
	return func(dst, a, k []int32) {
		va := hwy.BitCast[uint32](hwy.Load(d, a))
		vk := hwy.BitCast[uint32](hwy.Load(d, k))
		hwy.Store(hwy.BitCast[int32](hwy.Shr(va, vk)), dst)
	}
}

// Sra returns a kernel shifting each lane of a right by the matching lane
// of k, filling with the sign bit.
func Sra(w lane.Width) Binary[int32] {
	d := tag(w)
	return func(dst, a, k []int32) {
		hwy.Store(hwy.Shr(hwy.Load(d, a), hwy.Load(d, k)), dst)
	}
}

// Unary is the shape of a one-input kernel.
type Unary[T lane.Elem] func(dst, a []T)

// Shuffle0123 returns a kernel reversing the lanes of each 128-bit block,
// PSHUFD with _MM_SHUFFLE(0, 1, 2, 3).
func Shuffle0123(w lane.Width) Unary[int32] {
	d := tag(w)
	return func(dst, a []int32) {
		hwy.Store(hwy.Reverse4(hwy.Load(d, a)), dst)
	}
}

// UnpackLo returns a kernel interleaving the low halves of each block.
func UnpackLo(w lane.Width) Binary[int32] {
	d := tag(w)
	return func(dst, a, b []int32) {
		hwy.Store(hwy.InterleaveLower(hwy.Load(d, a), hwy.Load(d, b)), dst)
	}
}

// UnpackHi returns a kernel interleaving the high halves of each block.
func UnpackHi(w lane.Width) Binary[int32] {
	d := tag(w)
	return func(dst, a, b []int32) {
		hwy.Store(hwy.InterleaveUpper(hwy.Load(d, a), hwy.Load(d, b)), dst)
	}
}

// SwapLanes returns a kernel exchanging adjacent 128-bit blocks.
func SwapLanes(w lane.Width) Unary[int32] {
	d := tag(w)
	return func(dst, a []int32) {
		hwy.Store(hwy.SwapAdjacentBlocks(hwy.Load(d, a)), dst)
	}
}

// Permute is the shape of a table lookup kernel.
type Permute[T lane.Element, I lane.Mask] func(dst, a []T, idx []I)

// PermuteVar returns a kernel setting dst[i] = a[idx[i] mod N], like
// VPERMD and VPERMPD.
func PermuteVar[T lane.Element, I lane.Mask](w lane.Width) Permute[T, I] {
	d := tag(w)
	return func(dst, a []T, idx []I) {
		hwy.Store(hwy.TableLookupLanes(hwy.Load(d, a), hwy.Load(d, idx)), dst)
	}
}
