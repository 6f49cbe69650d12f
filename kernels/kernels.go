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

// Package kernels provides the vectorized side of every checked operation.
//
// Each exported function returns a kernel for one element type at one
// vector width. By default the kernel is built from the portable hwy
// operations. On amd64 builds with GOEXPERIMENT=simd, the init functions in
// kernels_avx2.go and kernels_avx512.go register archsimd kernels for the
// combinations the CPU supports, and those are returned instead.
//
// Kernels write exactly one vector: dst, a, b and c must each hold at least
// the width's lane count.
package kernels

import (
	"fmt"

	"github.com/ajroetker/hwycheck/hwy"
	"github.com/ajroetker/hwycheck/lane"
)

// Op names a vectorized operation in the native kernel registry.
type Op string

const (
	OpAdd       Op = "add"
	OpSub       Op = "sub"
	OpMul       Op = "mul"
	OpDiv       Op = "div"
	OpMulAdd    Op = "muladd"
	OpMulSub    Op = "mulsub"
	OpNegMulAdd Op = "negmuladd"
	OpNegMulSub Op = "negmulsub"
	OpCmpGT     Op = "cmpgt"
	OpCmpEQ     Op = "cmpeq"
	OpAnd       Op = "and"
	OpOr        Op = "or"
	OpXor       Op = "xor"
	OpAndNot    Op = "andnot"
	OpBlend     Op = "blend"
	OpMax       Op = "max"
	OpMin       Op = "min"
	OpSll       Op = "sll"
	OpSrl       Op = "srl"
	OpSra       Op = "sra"
	OpShuffle   Op = "shuffle0123"
	OpUnpackLo  Op = "unpacklo"
	OpUnpackHi  Op = "unpackhi"
	OpSwapLanes Op = "swaplanes"
	OpPermute   Op = "permutevar"
)

type key struct {
	op    Op
	kind  lane.Kind
	width lane.Width
}

// natives holds archsimd kernels keyed by operation, element kind and
// width. It is written only from init.
var natives = map[key]any{}

func register(op Op, kind lane.Kind, width lane.Width, fn any) {
	k := key{op, kind, width}
	if _, dup := natives[k]; dup {
		panic(fmt.Sprintf("kernels: duplicate native kernel %s/%v/%v", op, kind, width))
	}
	natives[k] = fn
}

func lookup[F any](op Op, kind lane.Kind, width lane.Width) (F, bool) {
	fn, ok := natives[key{op, kind, width}].(F)
	return fn, ok
}

// IsNative reports whether op on kind at width runs an archsimd kernel on
// this host.
func IsNative(op Op, kind lane.Kind, width lane.Width) bool {
	_, ok := natives[key{op, kind, width}]
	return ok
}

// NativeCount returns how many archsimd kernels are registered.
func NativeCount() int {
	return len(natives)
}

func tag(w lane.Width) hwy.Tag {
	return hwy.TagForBits(int(w))
}

// Binary is the shape of a two-input kernel.
type Binary[T lane.Elem] func(dst, a, b []T)

func binary[T lane.Element](op Op, w lane.Width, f func(a, b hwy.Vec[T]) hwy.Vec[T]) Binary[T] {
	if fn, ok := lookup[func(dst, a, b []T)](op, lane.KindOf[T](), w); ok {
		return fn
	}
	d := tag(w)
	return func(dst, a, b []T) {
		hwy.Store(f(hwy.Load(d, a), hwy.Load(d, b)), dst)
	}
}

// Add returns a kernel computing a+b.
func Add[T lane.Element](w lane.Width) Binary[T] {
	return binary(OpAdd, w, hwy.Add[T])
}

// Sub returns a kernel computing a-b.
func Sub[T lane.Element](w lane.Width) Binary[T] {
	return binary(OpSub, w, hwy.Sub[T])
}

// Mul returns a kernel computing a*b.
func Mul[T lane.Element](w lane.Width) Binary[T] {
	return binary(OpMul, w, hwy.Mul[T])
}

// Div returns a kernel computing a/b.
func Div[T lane.Float](w lane.Width) Binary[T] {
	if fn, ok := lookup[func(dst, a, b []T)](OpDiv, lane.KindOf[T](), w); ok {
		return fn
	}
	d := tag(w)
	return func(dst, a, b []T) {
		hwy.Store(hwy.Div(hwy.Load(d, a), hwy.Load(d, b)), dst)
	}
}

// Max returns a kernel computing the lane maximum. A NaN in either lane
// yields b.
func Max[T lane.Element](w lane.Width) Binary[T] {
	return binary(OpMax, w, hwy.Max[T])
}

// Min returns a kernel computing the lane minimum. A NaN in either lane
// yields b.
func Min[T lane.Element](w lane.Width) Binary[T] {
	return binary(OpMin, w, hwy.Min[T])
}

// And returns a kernel computing a&b on raw lane bits.
func And[T lane.Element](w lane.Width) Binary[T] {
	return binary(OpAnd, w, hwy.And[T])
}

// Or returns a kernel computing a|b on raw lane bits.
func Or[T lane.Element](w lane.Width) Binary[T] {
	return binary(OpOr, w, hwy.Or[T])
}

// Xor returns a kernel computing a^b on raw lane bits.
func Xor[T lane.Element](w lane.Width) Binary[T] {
	return binary(OpXor, w, hwy.Xor[T])
}

// AndNot returns a kernel computing ^a&b on raw lane bits.
func AndNot[T lane.Element](w lane.Width) Binary[T] {
	return binary(OpAndNot, w, hwy.AndNot[T])
}

// Ternary is the shape of a three-input kernel.
type Ternary[T lane.Elem] func(dst, a, b, c []T)

func fused[T lane.Float](op Op, w lane.Width, f func(a, b, c hwy.Vec[T]) hwy.Vec[T]) Ternary[T] {
	if fn, ok := lookup[func(dst, a, b, c []T)](op, lane.KindOf[T](), w); ok {
		return fn
	}
	d := tag(w)
	return func(dst, a, b, c []T) {
		hwy.Store(f(hwy.Load(d, a), hwy.Load(d, b), hwy.Load(d, c)), dst)
	}
}

// MulAdd returns a kernel computing a*b+c with one rounding.
func MulAdd[T lane.Float](w lane.Width) Ternary[T] {
	return fused(OpMulAdd, w, hwy.MulAdd[T])
}

// MulSub returns a kernel computing a*b-c with one rounding.
func MulSub[T lane.Float](w lane.Width) Ternary[T] {
	return fused(OpMulSub, w, hwy.MulSub[T])
}

// NegMulAdd returns a kernel computing -(a*b)+c with one rounding.
func NegMulAdd[T lane.Float](w lane.Width) Ternary[T] {
	return fused(OpNegMulAdd, w, hwy.NegMulAdd[T])
}

// NegMulSub returns a kernel computing -(a*b)-c with one rounding.
func NegMulSub[T lane.Float](w lane.Width) Ternary[T] {
	return fused(OpNegMulSub, w, hwy.NegMulSub[T])
}
