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

// Package scalar holds the lane-by-lane reference implementations that the
// vectorized kernels are checked against.
//
// Nothing here depends on package hwy. Every function writes len(a) lanes
// of dst and expects the other operands to be at least that long.
package scalar

import (
	"math"
	"math/big"

	"github.com/ajroetker/hwycheck/lane"
)

// Add sets dst[i] = a[i] + b[i]. Integers wrap.
func Add[T lane.Element](dst, a, b []T) {
	for i := range a {
		dst[i] = a[i] + b[i]
	}
}

// Sub sets dst[i] = a[i] - b[i].
func Sub[T lane.Element](dst, a, b []T) {
	for i := range a {
		dst[i] = a[i] - b[i]
	}
}

// Mul sets dst[i] = a[i] * b[i], keeping the low 32 bits for integers.
func Mul[T lane.Element](dst, a, b []T) {
	for i := range a {
		dst[i] = a[i] * b[i]
	}
}

// Div sets dst[i] = a[i] / b[i].
func Div[T lane.Float](dst, a, b []T) {
	for i := range a {
		dst[i] = a[i] / b[i]
	}
}

// FMAdd sets dst[i] = a[i]*b[i] + c[i], rounded once.
func FMAdd[T lane.Float](dst, a, b, c []T) {
	for i := range a {
		dst[i] = fma(a[i], b[i], c[i])
	}
}

// FMSub sets dst[i] = a[i]*b[i] - c[i], rounded once.
func FMSub[T lane.Float](dst, a, b, c []T) {
	for i := range a {
		dst[i] = fma(a[i], b[i], -c[i])
	}
}

// FNMAdd sets dst[i] = -(a[i]*b[i]) + c[i], rounded once.
func FNMAdd[T lane.Float](dst, a, b, c []T) {
	for i := range a {
		dst[i] = fma(-a[i], b[i], c[i])
	}
}

// FNMSub sets dst[i] = -(a[i]*b[i]) - c[i], rounded once.
func FNMSub[T lane.Float](dst, a, b, c []T) {
	for i := range a {
		dst[i] = fma(-a[i], b[i], -c[i])
	}
}

func fma[T lane.Float](a, b, c T) T {
	switch x := any(a).(type) {
	case float32:
		return T(FMA32(x, any(b).(float32), any(c).(float32)))
	default:
		return T(math.FMA(float64(a), float64(b), float64(c)))
	}
}

// exactPrec holds any a*b+c over float32 operands without rounding: the
// operands span about 280 bits of exponent range.
const exactPrec = 1024

// FMA32 returns a*b+c computed exactly and rounded once to float32.
func FMA32(a, b, c float32) float32 {
	if !finite32(a) || !finite32(b) || !finite32(c) {
		return float32(float64(a)*float64(b) + float64(c))
	}
	x := new(big.Float).SetPrec(exactPrec).SetFloat64(float64(a))
	y := new(big.Float).SetPrec(exactPrec).SetFloat64(float64(b))
	z := new(big.Float).SetPrec(exactPrec).SetFloat64(float64(c))
	x.Mul(x, y)
	x.Add(x, z)
	f, _ := x.Float32()
	if f == 0 {
		// big.Float has no signed zero for exact cancellation; the float64
		// fused result carries the IEEE sign and is exact near zero.
		return float32(math.FMA(float64(a), float64(b), float64(c)))
	}
	return f
}

func finite32(x float32) bool {
	return !math.IsInf(float64(x), 0) && !math.IsNaN(float64(x))
}

func isNaN[T lane.Element](x T) bool {
	return x != x
}

// Max sets dst[i] to the larger of a[i] and b[i]. If either lane is NaN
// the result is b[i].
func Max[T lane.Element](dst, a, b []T) {
	for i := range a {
		switch {
		case isNaN(a[i]) || isNaN(b[i]):
			dst[i] = b[i]
		case a[i] > b[i]:
			dst[i] = a[i]
		default:
			dst[i] = b[i]
		}
	}
}

// Min sets dst[i] to the smaller of a[i] and b[i]. If either lane is NaN
// the result is b[i].
func Min[T lane.Element](dst, a, b []T) {
	for i := range a {
		switch {
		case isNaN(a[i]) || isNaN(b[i]):
			dst[i] = b[i]
		case a[i] < b[i]:
			dst[i] = a[i]
		default:
			dst[i] = b[i]
		}
	}
}

// CmpGT sets dst[i] to -1 where a[i] > b[i] and 0 elsewhere. NaN compares
// false.
func CmpGT[T lane.Element, M lane.Mask](dst []M, a, b []T) {
	for i := range a {
		dst[i] = 0
		if a[i] > b[i] {
			dst[i] = -1
		}
	}
}

// CmpEQ sets dst[i] to -1 where a[i] == b[i] and 0 elsewhere.
func CmpEQ[T lane.Element, M lane.Mask](dst []M, a, b []T) {
	for i := range a {
		dst[i] = 0
		if a[i] == b[i] {
			dst[i] = -1
		}
	}
}

// PackedGT sets bit i of dst[0] where a[i] > b[i].
func PackedGT[T lane.Element, P lane.Packed](dst []P, a, b []T) {
	var bits P
	for i := range a {
		if a[i] > b[i] {
			bits |= 1 << i
		}
	}
	dst[0] = bits
}

// PackedEQ sets bit i of dst[0] where a[i] == b[i].
func PackedEQ[T lane.Element, P lane.Packed](dst []P, a, b []T) {
	var bits P
	for i := range a {
		if a[i] == b[i] {
			bits |= 1 << i
		}
	}
	dst[0] = bits
}
