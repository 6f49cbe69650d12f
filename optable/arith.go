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

// binaryOp builds a two-input descriptor whose operands and output are
// all full-width T vectors.
func binaryOp[T lane.Element](name string, w lane.Width, op kernels.Op, vec kernels.Binary[T], ref func(dst, a, b []T)) Descriptor {
	a := operand[T]("a", w, gen.Uniform)
	b := operand[T]("b", w, gen.Uniform)
	out := operand[T]("c", w, gen.Uniform)
	return Binary[T, T, T](name, a, b, out, vec, ref).native(op, lane.KindOf[T](), w)
}

func arith[T lane.Element](prefix string, w lane.Width) []Descriptor {
	return []Descriptor{
		binaryOp(prefix+" add", w, kernels.OpAdd, kernels.Add[T](w), scalar.Add[T]),
		binaryOp(prefix+" sub", w, kernels.OpSub, kernels.Sub[T](w), scalar.Sub[T]),
		binaryOp(prefix+" mul", w, kernels.OpMul, kernels.Mul[T](w), scalar.Mul[T]),
	}
}

func arithDiv[T lane.Float](prefix string, w lane.Width) []Descriptor {
	return append(arith[T](prefix, w),
		binaryOp(prefix+" div", w, kernels.OpDiv, kernels.Div[T](w), scalar.Div[T]))
}

// buildAVX checks integer arithmetic at SSE width and float arithmetic on
// 256-bit AVX registers.
func buildAVX(k lane.Kind) Table {
	t := Table{Family: "avx", Elem: k, Width: lane.W256, Requires: hwy.FeatureAVX}
	switch k {
	case lane.Int32:
		t.Width = lane.W128
		t.Ops = arith[int32]("sse", lane.W128)
	case lane.Float32:
		t.Ops = arithDiv[float32]("avx", lane.W256)
	case lane.Float64:
		t.Ops = arithDiv[float64]("avx", lane.W256)
	}
	return t
}

func buildAVX2(k lane.Kind) Table {
	t := Table{Family: "avx2", Elem: k, Width: lane.W256, Requires: hwy.FeatureAVX2}
	switch k {
	case lane.Int32:
		t.Ops = arith[int32]("avx2", lane.W256)
	case lane.Float32:
		t.Ops = arithDiv[float32]("avx2", lane.W256)
	case lane.Float64:
		t.Ops = arithDiv[float64]("avx2", lane.W256)
	}
	return t
}

// buildAVX512 has no integer division, like the instruction set.
func buildAVX512(k lane.Kind) Table {
	t := Table{Family: "avx512", Elem: k, Width: lane.W512, Requires: hwy.FeatureAVX512F}
	switch k {
	case lane.Int32:
		t.Ops = arith[int32]("avx512", lane.W512)
	case lane.Float32:
		t.Ops = arithDiv[float32]("avx512", lane.W512)
	case lane.Float64:
		t.Ops = arithDiv[float64]("avx512", lane.W512)
	}
	return t
}

func fusedOps[T lane.Float](w lane.Width) []Descriptor {
	a := operand[T]("a", w, gen.Uniform)
	b := operand[T]("b", w, gen.Uniform)
	c := operand[T]("c", w, gen.Uniform)
	out := operand[T]("d", w, gen.Uniform)
	k := lane.KindOf[T]()
	op := func(name string, o kernels.Op, vec kernels.Ternary[T], ref func(dst, a, b, c []T)) Descriptor {
		return Ternary[T, T, T, T](name, a, b, c, out, vec, ref).native(o, k, w)
	}
	return []Descriptor{
		op("fmadd", kernels.OpMulAdd, kernels.MulAdd[T](w), scalar.FMAdd[T]),
		op("fmsub", kernels.OpMulSub, kernels.MulSub[T](w), scalar.FMSub[T]),
		op("fnmadd", kernels.OpNegMulAdd, kernels.NegMulAdd[T](w), scalar.FNMAdd[T]),
		op("fnmsub", kernels.OpNegMulSub, kernels.NegMulSub[T](w), scalar.FNMSub[T]),
	}
}

// buildFMA is float only.
func buildFMA(k lane.Kind) Table {
	t := Table{Family: "AVX2_FMA", Elem: k, Width: lane.W256, Requires: hwy.FeatureAVX2 | hwy.FeatureFMA}
	switch k {
	case lane.Float32:
		t.Ops = fusedOps[float32](lane.W256)
	case lane.Float64:
		t.Ops = fusedOps[float64](lane.W256)
	}
	return t
}
