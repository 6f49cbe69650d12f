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

package optable

import (
	"github.com/ajroetker/hwycheck/gen"
	"github.com/ajroetker/hwycheck/hwy"
	"github.com/ajroetker/hwycheck/kernels"
	"github.com/ajroetker/hwycheck/lane"
	"github.com/ajroetker/hwycheck/scalar"
)

// Comparison, bitwise, blend and min/max families.

func laneCompares[T lane.Element, M lane.Mask](w lane.Width) []Descriptor {
	a := operand[T]("a", w, gen.Uniform)
	b := operand[T]("b", w, gen.Uniform)
	out := operand[M]("c", w, gen.Uniform)
	k := lane.KindOf[T]()
	return []Descriptor{
		Binary[T, T, M]("cmp_gt", a, b, out, kernels.CmpGT[T, M](w), scalar.CmpGT[T, M]).native(kernels.OpCmpGT, k, w),
		Binary[T, T, M]("cmp_eq", a, b, out, kernels.CmpEQ[T, M](w), scalar.CmpEQ[T, M]).native(kernels.OpCmpEQ, k, w),
	}
}

// buildCmp writes one -1/0 mask lane per element lane.
func buildCmp(k lane.Kind) Table {
	t := Table{Family: "AVX2_CMP", Elem: k, Width: lane.W256, Requires: hwy.FeatureAVX2}
	switch k {
	case lane.Int32:
		t.Ops = laneCompares[int32, int32](lane.W256)
	case lane.Float32:
		t.Ops = laneCompares[float32, int32](lane.W256)
	case lane.Float64:
		t.Ops = laneCompares[float64, int64](lane.W256)
	}
	return t
}

func packedCompares[T lane.Element, P lane.Packed](w lane.Width) []Descriptor {
	a := operand[T]("a", w, gen.Uniform)
	b := operand[T]("b", w, gen.Uniform)
	out := packed[P]("c", gen.Uniform)
	k := lane.KindOf[T]()
	return []Descriptor{
		Binary[T, T, P]("avx512 cmp gt", a, b, out, kernels.PackedGT[T, P](w), scalar.PackedGT[T, P]).native(kernels.OpCmpGT, k, w),
		Binary[T, T, P]("avx512 cmp eq", a, b, out, kernels.PackedEQ[T, P](w), scalar.PackedEQ[T, P]).native(kernels.OpCmpEQ, k, w),
	}
}

// buildCmp512 writes a single packed mask, one bit per lane.
func buildCmp512(k lane.Kind) Table {
	t := Table{Family: "AVX512_CMP", Elem: k, Width: lane.W512, Requires: hwy.FeatureAVX512F}
	switch k {
	case lane.Int32:
		t.Ops = packedCompares[int32, uint16](lane.W512)
	case lane.Float32:
		t.Ops = packedCompares[float32, uint16](lane.W512)
	case lane.Float64:
		t.Ops = packedCompares[float64, uint8](lane.W512)
	}
	return t
}

func bitwise[T lane.Element](prefix string, w lane.Width) []Descriptor {
	return []Descriptor{
		binaryOp(prefix+"and", w, kernels.OpAnd, kernels.And[T](w), scalar.And[T]),
		binaryOp(prefix+"or", w, kernels.OpOr, kernels.Or[T](w), scalar.Or[T]),
		binaryOp(prefix+"xor", w, kernels.OpXor, kernels.Xor[T](w), scalar.Xor[T]),
		binaryOp(prefix+"andnot", w, kernels.OpAndNot, kernels.AndNot[T](w), scalar.AndNot[T]),
	}
}

func buildBitwise(k lane.Kind) Table {
	t := Table{Family: "AVX2_BITWISE", Elem: k, Width: lane.W256, Requires: hwy.FeatureAVX2}
	switch k {
	case lane.Int32:
		t.Ops = bitwise[int32]("", lane.W256)
	case lane.Float32:
		t.Ops = bitwise[float32]("", lane.W256)
	case lane.Float64:
		t.Ops = bitwise[float64]("", lane.W256)
	}
	return t
}

func buildBitwise512(k lane.Kind) Table {
	t := Table{Family: "AVX512_BITWISE", Elem: k, Width: lane.W512, Requires: hwy.FeatureAVX512F}
	switch k {
	case lane.Int32:
		t.Ops = bitwise[int32]("avx512 ", lane.W512)
	case lane.Float32:
		t.Ops = bitwise[float32]("avx512 ", lane.W512)
	case lane.Float64:
		t.Ops = bitwise[float64]("avx512 ", lane.W512)
	}
	return t
}

func laneBlend[T lane.Element, M lane.Mask](w lane.Width) []Descriptor {
	a := operand[T]("a", w, gen.Uniform)
	b := operand[T]("b", w, gen.Uniform)
	m := operand[M]("c", w, gen.LaneMask)
	out := operand[T]("d", w, gen.Uniform)
	return []Descriptor{
		Ternary[T, T, M, T]("blend", a, b, m, out, kernels.Blend[T, M](w), scalar.Blend[T, M]).
			native(kernels.OpBlend, lane.KindOf[T](), w),
	}
}

// buildBlend selects b where the mask lane is all ones. The vector side
// blends bit by bit, so masks are generated as whole 0/-1 lanes.
func buildBlend(k lane.Kind) Table {
	t := Table{Family: "AVX2_BLEND", Elem: k, Width: lane.W256, Requires: hwy.FeatureAVX2}
	switch k {
	case lane.Int32:
		t.Ops = laneBlend[int32, int32](lane.W256)
	case lane.Float32:
		t.Ops = laneBlend[float32, int32](lane.W256)
	case lane.Float64:
		t.Ops = laneBlend[float64, int64](lane.W256)
	}
	return t
}

func packedBlend[T lane.Element, P lane.Packed](w lane.Width) []Descriptor {
	a := operand[T]("a", w, gen.Uniform)
	b := operand[T]("b", w, gen.Uniform)
	m := packed[P]("c", gen.PackedMask)
	out := operand[T]("d", w, gen.Uniform)
	return []Descriptor{
		Ternary[T, T, P, T]("avx512 blend", a, b, m, out, kernels.PackedBlend[T, P](w), scalar.PackedBlend[T, P]).
			native(kernels.OpBlend, lane.KindOf[T](), w),
	}
}

func buildBlend512(k lane.Kind) Table {
	t := Table{Family: "AVX512_BLEND", Elem: k, Width: lane.W512, Requires: hwy.FeatureAVX512F}
	switch k {
	case lane.Int32:
		t.Ops = packedBlend[int32, uint16](lane.W512)
	case lane.Float32:
		t.Ops = packedBlend[float32, uint16](lane.W512)
	case lane.Float64:
		t.Ops = packedBlend[float64, uint8](lane.W512)
	}
	return t
}

func minMax[T lane.Element](w lane.Width) []Descriptor {
	return []Descriptor{
		binaryOp("max", w, kernels.OpMax, kernels.Max[T](w), scalar.Max[T]),
		binaryOp("min", w, kernels.OpMin, kernels.Min[T](w), scalar.Min[T]),
	}
}

func buildMinMax(k lane.Kind) Table {
	t := Table{Family: "AVX2_MINMAX", Elem: k, Width: lane.W256, Requires: hwy.FeatureAVX2}
	switch k {
	case lane.Int32:
		t.Ops = minMax[int32](lane.W256)
	case lane.Float32:
		t.Ops = minMax[float32](lane.W256)
	case lane.Float64:
		t.Ops = minMax[float64](lane.W256)
	}
	return t
}
