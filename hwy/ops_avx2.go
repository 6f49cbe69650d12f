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

import (
	"math"
	"simd/archsimd"
)

// This file provides AVX2 helpers on raw archsimd types for the operations
// archsimd does not expose directly with x86 semantics. Kernels that work
// on archsimd vectors compose these with the native methods.

var (
	avx2AllOnes32 = archsimd.BroadcastInt32x8(-1)
	avx2Zero32    = archsimd.BroadcastInt32x8(0)
	avx2Sign32    = archsimd.BroadcastInt32x8(math.MinInt32)
	avx2AllOnes64 = archsimd.BroadcastInt64x4(-1)
	avx2Zero64    = archsimd.BroadcastInt64x4(0)
	avx2Sign64    = archsimd.BroadcastInt64x4(math.MinInt64)
)

// MaskVec_AVX2_I32x8 expands a comparison mask into -1/0 lanes, the
// encoding VCMPPS and VPCMPGTD write to a register.
func MaskVec_AVX2_I32x8(m archsimd.Mask32x8) archsimd.Int32x8 {
	return avx2AllOnes32.Merge(avx2Zero32, m)
}

// MaskVec_AVX2_I64x4 expands a comparison mask into -1/0 lanes.
func MaskVec_AVX2_I64x4(m archsimd.Mask64x4) archsimd.Int64x4 {
	return avx2AllOnes64.Merge(avx2Zero64, m)
}

// BitSelect_AVX2_I32x8 returns (^m & a) | (m & b), the VANDNPS/VANDPS/VORPS
// blend sequence. Every bit of m picks between a and b independently.
func BitSelect_AVX2_I32x8(m, a, b archsimd.Int32x8) archsimd.Int32x8 {
	return a.AndNot(m).Or(m.And(b))
}

// BitSelect_AVX2_I64x4 returns (^m & a) | (m & b).
func BitSelect_AVX2_I64x4(m, a, b archsimd.Int64x4) archsimd.Int64x4 {
	return a.AndNot(m).Or(m.And(b))
}

// Neg_AVX2_F32x8 flips the sign bit of every lane.
func Neg_AVX2_F32x8(x archsimd.Float32x8) archsimd.Float32x8 {
	return x.AsInt32x8().Xor(avx2Sign32).AsFloat32x8()
}

// Neg_AVX2_F64x4 flips the sign bit of every lane.
func Neg_AVX2_F64x4(x archsimd.Float64x4) archsimd.Float64x4 {
	return x.AsInt64x4().Xor(avx2Sign64).AsFloat64x4()
}

// Max_AVX2_F32x8 returns a where a > b and b otherwise, so a NaN in either
// lane yields b, exactly like VMAXPS.
func Max_AVX2_F32x8(a, b archsimd.Float32x8) archsimd.Float32x8 {
	return a.AsInt32x8().Merge(b.AsInt32x8(), a.Greater(b)).AsFloat32x8()
}

// Min_AVX2_F32x8 returns a where a < b and b otherwise, like VMINPS.
func Min_AVX2_F32x8(a, b archsimd.Float32x8) archsimd.Float32x8 {
	return a.AsInt32x8().Merge(b.AsInt32x8(), a.Less(b)).AsFloat32x8()
}

// Max_AVX2_F64x4 returns a where a > b and b otherwise, like VMAXPD.
func Max_AVX2_F64x4(a, b archsimd.Float64x4) archsimd.Float64x4 {
	return a.AsInt64x4().Merge(b.AsInt64x4(), a.Greater(b)).AsFloat64x4()
}

// Min_AVX2_F64x4 returns a where a < b and b otherwise, like VMINPD.
func Min_AVX2_F64x4(a, b archsimd.Float64x4) archsimd.Float64x4 {
	return a.AsInt64x4().Merge(b.AsInt64x4(), a.Less(b)).AsFloat64x4()
}

// Max_AVX2_I32x8 returns the element-wise signed maximum.
func Max_AVX2_I32x8(a, b archsimd.Int32x8) archsimd.Int32x8 {
	return a.Merge(b, a.Greater(b))
}

// Min_AVX2_I32x8 returns the element-wise signed minimum.
func Min_AVX2_I32x8(a, b archsimd.Int32x8) archsimd.Int32x8 {
	return a.Merge(b, a.Less(b))
}
