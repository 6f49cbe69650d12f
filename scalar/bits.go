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

import (
	"math"

	"github.com/ajroetker/hwycheck/lane"
)

func toBits[T lane.Element](x T) uint64 {
	switch v := any(x).(type) {
	case float32:
		return uint64(math.Float32bits(v))
	case float64:
		return math.Float64bits(v)
	default:
		return uint64(uint32(any(x).(int32)))
	}
}

func fromBits[T lane.Element](b uint64) T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(math.Float32frombits(uint32(b))).(T)
	case float64:
		return any(math.Float64frombits(b)).(T)
	default:
		return any(int32(uint32(b))).(T)
	}
}

func bitwise[T lane.Element](dst, a, b []T, op func(x, y uint64) uint64) {
	for i := range a {
		dst[i] = fromBits[T](op(toBits(a[i]), toBits(b[i])))
	}
}

// And sets dst[i] = a[i] & b[i] on the raw bit patterns.
func And[T lane.Element](dst, a, b []T) {
	bitwise(dst, a, b, func(x, y uint64) uint64 { return x & y })
}

// Or sets dst[i] = a[i] | b[i] on the raw bit patterns.
func Or[T lane.Element](dst, a, b []T) {
	bitwise(dst, a, b, func(x, y uint64) uint64 { return x | y })
}

// Xor sets dst[i] = a[i] ^ b[i] on the raw bit patterns.
func Xor[T lane.Element](dst, a, b []T) {
	bitwise(dst, a, b, func(x, y uint64) uint64 { return x ^ y })
}

// AndNot sets dst[i] = ^a[i] & b[i] on the raw bit patterns.
func AndNot[T lane.Element](dst, a, b []T) {
	bitwise(dst, a, b, func(x, y uint64) uint64 { return ^x & y })
}

// Blend sets dst[i] to b[i] where m[i] is nonzero and a[i] elsewhere.
func Blend[T lane.Element, M lane.Mask](dst, a, b []T, m []M) {
	for i := range a {
		if m[i] != 0 {
			dst[i] = b[i]
		} else {
			dst[i] = a[i]
		}
	}
}

// PackedBlend sets dst[i] to b[i] where bit i of m[0] is set and a[i]
// elsewhere.
func PackedBlend[T lane.Element, P lane.Packed](dst, a, b []T, m []P) {
	for i := range a {
		if (uint64(m[0])>>i)&1 != 0 {
			dst[i] = b[i]
		} else {
			dst[i] = a[i]
		}
	}
}

// Sll shifts each lane left by k[i]. Counts of 32 or more, read as
// unsigned, give 0.
func Sll(dst, a, k []int32) {
	for i := range a {
		if uint32(k[i]) >= 32 {
			dst[i] = 0
		} else {
			dst[i] = a[i] << uint32(k[i])
		}
	}
}

// Srl shifts each lane right by k[i], filling with zeros. Any count
// outside [0, 31] gives 0.
func Srl(dst, a, k []int32) {
	for i := range a {
		if k[i]&^31 != 0 {
			dst[i] = 0
		} else {
			dst[i] = int32(uint32(a[i]) >> uint32(k[i]))
		}
	}
}

// Sra shifts each lane right by k[i], filling with the sign bit. Any count
// outside [0, 31] gives -1 for negative lanes and 0 otherwise.
func Sra(dst, a, k []int32) {
	for i := range a {
		switch {
		case k[i]&^31 == 0:
			dst[i] = a[i] >> uint32(k[i])
		case a[i] < 0:
			dst[i] = -1
		default:
			dst[i] = 0
		}
	}
}
