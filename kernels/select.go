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

// Compare is the shape of a comparison kernel. M is either a lane mask
// (one -1/0 lane per element) or a packed mask (dst[0] holds one bit per
// lane).
type Compare[T lane.Element, M lane.Elem] func(dst []M, a, b []T)

func laneCompare[T lane.Element, M lane.Mask](op Op, w lane.Width, f func(a, b hwy.Vec[T]) hwy.Mask[T]) Compare[T, M] {
	if fn, ok := lookup[func(dst []M, a, b []T)](op, lane.KindOf[T](), w); ok {
		return fn
	}
	d := tag(w)
	return func(dst []M, a, b []T) {
		hwy.Store(hwy.VecFromMask[M](f(hwy.Load(d, a), hwy.Load(d, b))), dst)
	}
}

func packedCompare[T lane.Element, P lane.Packed](op Op, w lane.Width, f func(a, b hwy.Vec[T]) hwy.Mask[T]) Compare[T, P] {
	if fn, ok := lookup[func(dst []P, a, b []T)](op, lane.KindOf[T](), w); ok {
		return fn
	}
	d := tag(w)
	return func(dst []P, a, b []T) {
		dst[0] = P(f(hwy.Load(d, a), hwy.Load(d, b)).Bits())
	}
}

// CmpGT returns a kernel writing -1 where a > b and 0 elsewhere. NaN lanes
// compare false.
func CmpGT[T lane.Element, M lane.Mask](w lane.Width) Compare[T, M] {
	return laneCompare[T, M](OpCmpGT, w, hwy.Greater[T])
}

// CmpEQ returns a kernel writing -1 where a == b and 0 elsewhere.
func CmpEQ[T lane.Element, M lane.Mask](w lane.Width) Compare[T, M] {
	return laneCompare[T, M](OpCmpEQ, w, hwy.Equal[T])
}

// PackedGT returns a kernel setting bit i of dst[0] where a[i] > b[i].
func PackedGT[T lane.Element, P lane.Packed](w lane.Width) Compare[T, P] {
	return packedCompare[T, P](OpCmpGT, w, hwy.Greater[T])
}

// PackedEQ returns a kernel setting bit i of dst[0] where a[i] == b[i].
func PackedEQ[T lane.Element, P lane.Packed](w lane.Width) Compare[T, P] {
	return packedCompare[T, P](OpCmpEQ, w, hwy.Equal[T])
}

// Select is the shape of a blend kernel.
type Select[T lane.Element, M lane.Elem] func(dst, a, b []T, m []M)

// Blend returns a kernel computing (^m & a) | (m & b) bit by bit, the
// AVX2 and/andnot/or blend. Masks made of 0 and -1 lanes pick whole lanes.
func Blend[T lane.Element, M lane.Mask](w lane.Width) Select[T, M] {
	if fn, ok := lookup[func(dst, a, b []T, m []M)](OpBlend, lane.KindOf[T](), w); ok {
		return fn
	}
	d := tag(w)
	return func(dst, a, b []T, m []M) {
		mask := hwy.BitCast[T](hwy.Load(d, m))
		va, vb := hwy.Load(d, a), hwy.Load(d, b)
		hwy.Store(hwy.Or(hwy.AndNot(mask, va), hwy.And(mask, vb)), dst)
	}
}

// PackedBlend returns a kernel taking b[i] where bit i of m[0] is set and
// a[i] elsewhere, like VBLENDMPS with a k-mask.
func PackedBlend[T lane.Element, P lane.Packed](w lane.Width) Select[T, P] {
	if fn, ok := lookup[func(dst, a, b []T, m []P)](OpBlend, lane.KindOf[T](), w); ok {
		return fn
	}
	d := tag(w)
	return func(dst, a, b []T, m []P) {
		mask := hwy.MaskFromBits[T](d, uint64(m[0]))
		hwy.Store(hwy.IfThenElse(mask, hwy.Load(d, b), hwy.Load(d, a)), dst)
	}
}
