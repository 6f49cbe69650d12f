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

// Package hwy provides the portable vector layer the harness kernels are
// written against.
//
// Vectors have an explicit width chosen by a tag, so the same generic code
// can be instantiated at 128, 256 or 512 bits regardless of the host:
//
//	d := hwy.FixedTag256[float32]{}
//	a := hwy.Load(d, left)
//	b := hwy.Load(d, right)
//	hwy.Store(hwy.Add(a, b), out)
//
// On amd64 builds with GOEXPERIMENT=simd, the dispatch files report the
// host's vector level so callers can swap in archsimd kernels; the
// helpers in ops_avx2.go and ops_avx512.go are the building blocks for
// those.
package hwy

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be stored in SIMD lanes.
type Lanes interface {
	Floats | Integers
}

// Vec is a portable vector handle. It owns a copy of its lanes, so
// operations never alias caller memory.
//
// Vec instances should not be created directly; use Load.
type Vec[T Lanes] struct {
	data []T
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return len(v.data)
}

// Store writes the vector's data to a slice.
// This is the method form of the hwy.Store function.
func (v Vec[T]) Store(dst []T) {
	Store(v, dst)
}

// Mask represents the result of a comparison operation, one boolean per
// lane. It is consumed by IfThenElse and VecFromMask, or packed into an
// integer with Bits.
type Mask[T Lanes] struct {
	bits []bool
}

// NumLanes returns the number of lanes in this mask.
func (m Mask[T]) NumLanes() int {
	return len(m.bits)
}

// Bits packs the mask into an integer: bit i is set when lane i is active.
// Lanes beyond 64 are dropped.
func (m Mask[T]) Bits() uint64 {
	var bits uint64
	for i, bit := range m.bits {
		if bit && i < 64 {
			bits |= 1 << i
		}
	}
	return bits
}

// MaskFromBits builds a mask covering d's lanes where lane i is active
// when bit i of bits is set.
func MaskFromBits[T Lanes](d Tag, bits uint64) Mask[T] {
	n := LanesOf[T](d)
	out := make([]bool, n)
	for i := range out {
		out[i] = i < 64 && bits&(1<<i) != 0
	}
	return Mask[T]{bits: out}
}
