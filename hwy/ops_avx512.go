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

//go:build amd64 && goexperiment.simd

package hwy

import "simd/archsimd"

// AVX-512 counterparts of the helpers in ops_avx2.go. Comparisons here
// produce k-masks, which callers pack with ToBits.

// Blend_AVX512_F32x16 takes b where bit i of bits is set and a elsewhere,
// like VBLENDMPS.
func Blend_AVX512_F32x16(bits uint16, a, b archsimd.Float32x16) archsimd.Float32x16 {
	return b.AsInt32x16().Merge(a.AsInt32x16(), archsimd.Mask32x16FromBits(bits)).AsFloat32x16()
}

// Blend_AVX512_F64x8 takes b where bit i of bits is set and a elsewhere.
func Blend_AVX512_F64x8(bits uint8, a, b archsimd.Float64x8) archsimd.Float64x8 {
	return b.AsInt64x8().Merge(a.AsInt64x8(), archsimd.Mask64x8FromBits(bits)).AsFloat64x8()
}

// Blend_AVX512_I32x16 takes b where bit i of bits is set and a elsewhere.
func Blend_AVX512_I32x16(bits uint16, a, b archsimd.Int32x16) archsimd.Int32x16 {
	return b.Merge(a, archsimd.Mask32x16FromBits(bits))
}

// MaskBits_AVX512_32x16 packs a 16-lane k-mask into its integer form.
func MaskBits_AVX512_32x16(m archsimd.Mask32x16) uint16 {
	return uint16(m.ToBits())
}

// MaskBits_AVX512_64x8 packs an 8-lane k-mask into its integer form.
func MaskBits_AVX512_64x8(m archsimd.Mask64x8) uint8 {
	return uint8(m.ToBits())
}
