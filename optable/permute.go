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

// Shift and permute families. Shifts take their counts from a Uniform
// operand so negative and oversized counts are exercised.

func shifts(prefix string, w lane.Width) []Descriptor {
	return []Descriptor{
		binaryOp(prefix+"sll", w, kernels.OpSll, kernels.Sll(w), scalar.Sll),
		binaryOp(prefix+"srl", w, kernels.OpSrl, kernels.Srl(w), scalar.Srl),
		binaryOp(prefix+"sra", w, kernels.OpSra, kernels.Sra(w), scalar.Sra),
	}
}

func buildShift(k lane.Kind) Table {
	t := Table{Family: "AVX2_SHIFT", Elem: k, Width: lane.W256, Requires: hwy.FeatureAVX2}
	if k == lane.Int32 {
		t.Ops = shifts("", lane.W256)
	}
	return t
}

func buildShift512(k lane.Kind) Table {
	t := Table{Family: "AVX512_SHIFT", Elem: k, Width: lane.W512, Requires: hwy.FeatureAVX512F}
	if k == lane.Int32 {
		t.Ops = shifts("avx512 ", lane.W512)
	}
	return t
}

func unaryInt(name string, w lane.Width, op kernels.Op, vec kernels.Unary[int32], ref func(dst, a []int32)) Descriptor {
	a := operand[int32]("a", w, gen.Uniform)
	out := operand[int32]("c", w, gen.Uniform)
	return Unary[int32, int32](name, a, out, vec, ref).native(op, lane.Int32, w)
}

// intOnly wraps a builder that only defines int32 operations.
func intOnly(family string, build func(w lane.Width) Descriptor) func(lane.Kind) Table {
	return func(k lane.Kind) Table {
		t := Table{Family: family, Elem: k, Width: lane.W256, Requires: hwy.FeatureAVX2}
		if k == lane.Int32 {
			t.Ops = []Descriptor{build(lane.W256)}
		}
		return t
	}
}

var (
	buildShuffle0123 = intOnly("AVX2_SHUFFLE_0123", func(w lane.Width) Descriptor {
		return unaryInt("shuffle_0123", w, kernels.OpShuffle, kernels.Shuffle0123(w), scalar.Shuffle0123)
	})
	buildUnpackLo = intOnly("AVX2_UNPACKLO", func(w lane.Width) Descriptor {
		return binaryOp("unpacklo", w, kernels.OpUnpackLo, kernels.UnpackLo(w), scalar.UnpackLo)
	})
	buildUnpackHi = intOnly("AVX2_UNPACKHI", func(w lane.Width) Descriptor {
		return binaryOp("unpackhi", w, kernels.OpUnpackHi, kernels.UnpackHi(w), scalar.UnpackHi)
	})
	buildSwapLanes = intOnly("AVX2_SWAP_LANES", func(w lane.Width) Descriptor {
		return unaryInt("swap_lanes", w, kernels.OpSwapLanes, kernels.SwapLanes(w), scalar.SwapLanes)
	})
	buildPermuteVar = intOnly("AVX2_PERMUTEVAR", permuteVar[int32, int32]("permutevar"))
)

func permuteVar[T lane.Element, I lane.Mask](name string) func(w lane.Width) Descriptor {
	return func(w lane.Width) Descriptor {
		a := operand[T]("a", w, gen.Uniform)
		idx := operand[I]("b", w, gen.Permutation)
		out := operand[T]("c", w, gen.Uniform)
		return Binary[T, I, T](name, a, idx, out, kernels.PermuteVar[T, I](w), scalar.PermuteVar[T, I]).
			native(kernels.OpPermute, lane.KindOf[T](), w)
	}
}

// buildPermute512 indexes double lanes with 64-bit indices.
func buildPermute512(k lane.Kind) Table {
	t := Table{Family: "AVX512_PERMUTE", Elem: k, Width: lane.W512, Requires: hwy.FeatureAVX512F}
	const name = "avx512 permutevar"
	switch k {
	case lane.Int32:
		t.Ops = []Descriptor{permuteVar[int32, int32](name)(lane.W512)}
	case lane.Float32:
		t.Ops = []Descriptor{permuteVar[float32, int32](name)(lane.W512)}
	case lane.Float64:
		t.Ops = []Descriptor{permuteVar[float64, int64](name)(lane.W512)}
	}
	return t
}
