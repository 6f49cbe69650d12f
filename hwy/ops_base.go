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

import (
	"math"
	"unsafe"
)

// This file provides the pure Go implementations of the vector operations.
// Every operation follows the x86 instruction it models bit for bit, so a
// kernel written against Vec agrees with its archsimd counterpart.

// Load creates a vector covering d's lanes from src. Lanes past the end of
// src are zero.
func Load[T Lanes](d Tag, src []T) Vec[T] {
	data := make([]T, LanesOf[T](d))
	copy(data, src)
	return Vec[T]{data: data}
}

// Store writes a vector's data to a slice.
func Store[T Lanes](v Vec[T], dst []T) {
	n := min(len(dst), len(v.data))
	copy(dst[:n], v.data[:n])
}

// Add performs element-wise addition. Integer lanes wrap.
func Add[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = a.data[i] + b.data[i]
	}
	return Vec[T]{data: result}
}

// Sub performs element-wise subtraction. Integer lanes wrap.
func Sub[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = a.data[i] - b.data[i]
	}
	return Vec[T]{data: result}
}

// Mul performs element-wise multiplication. Integer lanes keep the low
// half of the product, like VPMULLD.
func Mul[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = a.data[i] * b.data[i]
	}
	return Vec[T]{data: result}
}

// Div performs element-wise division.
func Div[T Floats](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = a.data[i] / b.data[i]
	}
	return Vec[T]{data: result}
}

// MulAdd computes a*b + c with a single rounding.
func MulAdd[T Floats](a, b, c Vec[T]) Vec[T] {
	n := min(len(c.data), min(len(b.data), len(a.data)))
	result := make([]T, n)
	for i := range n {
		result[i] = fmaHelper(a.data[i], b.data[i], c.data[i])
	}
	return Vec[T]{data: result}
}

// MulSub computes a*b - c with a single rounding.
func MulSub[T Floats](a, b, c Vec[T]) Vec[T] {
	n := min(len(c.data), min(len(b.data), len(a.data)))
	result := make([]T, n)
	for i := range n {
		result[i] = fmaHelper(a.data[i], b.data[i], -c.data[i])
	}
	return Vec[T]{data: result}
}

// NegMulAdd computes -(a*b) + c with a single rounding.
func NegMulAdd[T Floats](a, b, c Vec[T]) Vec[T] {
	n := min(len(c.data), min(len(b.data), len(a.data)))
	result := make([]T, n)
	for i := range n {
		result[i] = fmaHelper(-a.data[i], b.data[i], c.data[i])
	}
	return Vec[T]{data: result}
}

// NegMulSub computes -(a*b) - c with a single rounding.
func NegMulSub[T Floats](a, b, c Vec[T]) Vec[T] {
	n := min(len(c.data), min(len(b.data), len(a.data)))
	result := make([]T, n)
	for i := range n {
		result[i] = fmaHelper(-a.data[i], b.data[i], -c.data[i])
	}
	return Vec[T]{data: result}
}

func fmaHelper[T Floats](a, b, c T) T {
	if unsafe.Sizeof(a) == 4 {
		return T(fma32(float32(a), float32(b), float32(c)))
	}
	return T(math.FMA(float64(a), float64(b), float64(c)))
}

// fma32 returns a*b+c rounded once to float32.
//
// The product of two float32 values is exact in float64. The sum is then
// rounded to odd, which leaves enough guard bits for the final conversion
// to round correctly.
func fma32(a, b, c float32) float32 {
	p := float64(float64(a) * float64(b))
	cc := float64(c)
	s := p + cc
	if math.IsInf(s, 0) || math.IsNaN(s) {
		return float32(s)
	}
	// TwoSum: s + e == p + cc exactly.
	bb := s - p
	e := (p - (s - bb)) + (cc - bb)
	if e != 0 && math.Float64bits(s)&1 == 0 {
		if e > 0 {
			s = math.Nextafter(s, math.Inf(1))
		} else {
			s = math.Nextafter(s, math.Inf(-1))
		}
	}
	return float32(s)
}

// Min returns the element-wise minimum. A lane where a < b is false,
// including when either side is NaN, takes b, matching MINPS.
func Min[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		if a.data[i] < b.data[i] {
			result[i] = a.data[i]
		} else {
			result[i] = b.data[i]
		}
	}
	return Vec[T]{data: result}
}

// Max returns the element-wise maximum. A lane where a > b is false,
// including when either side is NaN, takes b, matching MAXPS.
func Max[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		if a.data[i] > b.data[i] {
			result[i] = a.data[i]
		} else {
			result[i] = b.data[i]
		}
	}
	return Vec[T]{data: result}
}

// Equal performs element-wise equality comparison. NaN lanes compare
// false (ordered, quiet).
func Equal[T Lanes](a, b Vec[T]) Mask[T] {
	n := min(len(b.data), len(a.data))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = a.data[i] == b.data[i]
	}
	return Mask[T]{bits: bits}
}

// Greater performs element-wise greater-than comparison. NaN lanes compare
// false (ordered, quiet).
func Greater[T Lanes](a, b Vec[T]) Mask[T] {
	n := min(len(b.data), len(a.data))
	bits := make([]bool, n)
	for i := range n {
		bits[i] = a.data[i] > b.data[i]
	}
	return Mask[T]{bits: bits}
}

// VecFromMask expands a mask into M lanes that are all ones (-1) where the
// mask is active and zero elsewhere.
func VecFromMask[M SignedInts, T Lanes](m Mask[T]) Vec[M] {
	result := make([]M, len(m.bits))
	for i, bit := range m.bits {
		if bit {
			result[i] = -1
		}
	}
	return Vec[M]{data: result}
}

// MaskFromVec returns a mask that is active where v has any bit set.
func MaskFromVec[T Lanes](v Vec[T]) Mask[T] {
	bits := make([]bool, len(v.data))
	for i, x := range v.data {
		bits[i] = toBits(x) != 0
	}
	return Mask[T]{bits: bits}
}

// IfThenElse selects a where mask is active, b otherwise.
func IfThenElse[T Lanes](mask Mask[T], a, b Vec[T]) Vec[T] {
	n := min(len(b.data), min(len(a.data), len(mask.bits)))
	result := make([]T, n)
	for i := range n {
		if mask.bits[i] {
			result[i] = a.data[i]
		} else {
			result[i] = b.data[i]
		}
	}
	return Vec[T]{data: result}
}

// And performs element-wise bitwise AND on the raw lane bits.
func And[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = fromBits[T](toBits(a.data[i]) & toBits(b.data[i]))
	}
	return Vec[T]{data: result}
}

// Or performs element-wise bitwise OR on the raw lane bits.
func Or[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = fromBits[T](toBits(a.data[i]) | toBits(b.data[i]))
	}
	return Vec[T]{data: result}
}

// Xor performs element-wise bitwise XOR on the raw lane bits.
func Xor[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = fromBits[T](toBits(a.data[i]) ^ toBits(b.data[i]))
	}
	return Vec[T]{data: result}
}

// Not performs element-wise bitwise NOT (ones complement).
func Not[T Lanes](v Vec[T]) Vec[T] {
	result := make([]T, len(v.data))
	for i, x := range v.data {
		result[i] = fromBits[T](^toBits(x))
	}
	return Vec[T]{data: result}
}

// AndNot performs element-wise bitwise AND NOT (~a & b), like VANDNPS.
func AndNot[T Lanes](a, b Vec[T]) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = fromBits[T](^toBits(a.data[i]) & toBits(b.data[i]))
	}
	return Vec[T]{data: result}
}

// Shl shifts each lane of v left by the matching lane of counts. Counts
// are read as unsigned, and any count of at least the lane width yields
// zero, like VPSLLVD.
func Shl[T Integers](v, counts Vec[T]) Vec[T] {
	n := min(len(counts.data), len(v.data))
	result := make([]T, n)
	for i := range n {
		result[i] = v.data[i] << shiftCount(counts.data[i])
	}
	return Vec[T]{data: result}
}

// Shr shifts each lane of v right by the matching lane of counts. Signed
// lanes shift arithmetically and unsigned lanes logically. Counts are read
// as unsigned; an out of range count fills the lane with its sign (VPSRAVD)
// or with zeros (VPSRLVD).
func Shr[T Integers](v, counts Vec[T]) Vec[T] {
	n := min(len(counts.data), len(v.data))
	result := make([]T, n)
	for i := range n {
		result[i] = v.data[i] >> shiftCount(counts.data[i])
	}
	return Vec[T]{data: result}
}

// shiftCount reinterprets a lane as an unsigned shift amount. Go defines
// shifts past the operand width, so large counts saturate on their own.
func shiftCount[T Integers](c T) uint64 {
	return toBits(c)
}

// BitCast reinterprets the lanes of v as To without changing any bits.
// It panics if From and To differ in size.
func BitCast[To, From Lanes](v Vec[From]) Vec[To] {
	var from From
	var to To
	if unsafe.Sizeof(from) != unsafe.Sizeof(to) {
		panic("hwy: BitCast between lanes of different size")
	}
	result := make([]To, len(v.data))
	for i, x := range v.data {
		result[i] = fromBits[To](toBits(x))
	}
	return Vec[To]{data: result}
}

// toBits returns the raw bits of x, zero-extended to 64 bits.
func toBits[T Lanes](x T) uint64 {
	p := unsafe.Pointer(&x)
	switch unsafe.Sizeof(x) {
	case 1:
		return uint64(*(*uint8)(p))
	case 2:
		return uint64(*(*uint16)(p))
	case 4:
		return uint64(*(*uint32)(p))
	default:
		return *(*uint64)(p)
	}
}

// fromBits builds a T from the low bits of b.
func fromBits[T Lanes](b uint64) T {
	var x T
	p := unsafe.Pointer(&x)
	switch unsafe.Sizeof(x) {
	case 1:
		*(*uint8)(p) = uint8(b)
	case 2:
		*(*uint16)(p) = uint16(b)
	case 4:
		*(*uint32)(p) = uint32(b)
	default:
		*(*uint64)(p) = b
	}
	return x
}
