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

package kernels

import (
	"simd/archsimd"

	"github.com/ajroetker/hwycheck/hwy"
	"github.com/ajroetker/hwycheck/lane"
)

func init() {
	if !hwy.HostFeatures().Has(hwy.FeatureAVX512F) {
		return
	}
	registerAVX512Arith()
	registerAVX512Bitwise()
	registerAVX512Masked()
}

func registerAVX512Arith() {
	register(OpAdd, lane.Int32, lane.W512, func(dst, a, b []int32) {
		archsimd.LoadInt32x16Slice(a).Add(archsimd.LoadInt32x16Slice(b)).StoreSlice(dst)
	})
	register(OpSub, lane.Int32, lane.W512, func(dst, a, b []int32) {
		archsimd.LoadInt32x16Slice(a).Sub(archsimd.LoadInt32x16Slice(b)).StoreSlice(dst)
	})
	register(OpMul, lane.Int32, lane.W512, func(dst, a, b []int32) {
		archsimd.LoadInt32x16Slice(a).Mul(archsimd.LoadInt32x16Slice(b)).StoreSlice(dst)
	})

	register(OpAdd, lane.Float32, lane.W512, func(dst, a, b []float32) {
		archsimd.LoadFloat32x16Slice(a).Add(archsimd.LoadFloat32x16Slice(b)).StoreSlice(dst)
	})
	register(OpSub, lane.Float32, lane.W512, func(dst, a, b []float32) {
		archsimd.LoadFloat32x16Slice(a).Sub(archsimd.LoadFloat32x16Slice(b)).StoreSlice(dst)
	})
	register(OpMul, lane.Float32, lane.W512, func(dst, a, b []float32) {
		archsimd.LoadFloat32x16Slice(a).Mul(archsimd.LoadFloat32x16Slice(b)).StoreSlice(dst)
	})
	register(OpDiv, lane.Float32, lane.W512, func(dst, a, b []float32) {
		archsimd.LoadFloat32x16Slice(a).Div(archsimd.LoadFloat32x16Slice(b)).StoreSlice(dst)
	})

	register(OpAdd, lane.Float64, lane.W512, func(dst, a, b []float64) {
		archsimd.LoadFloat64x8Slice(a).Add(archsimd.LoadFloat64x8Slice(b)).StoreSlice(dst)
	})
	register(OpSub, lane.Float64, lane.W512, func(dst, a, b []float64) {
		archsimd.LoadFloat64x8Slice(a).Sub(archsimd.LoadFloat64x8Slice(b)).StoreSlice(dst)
	})
	register(OpMul, lane.Float64, lane.W512, func(dst, a, b []float64) {
		archsimd.LoadFloat64x8Slice(a).Mul(archsimd.LoadFloat64x8Slice(b)).StoreSlice(dst)
	})
	register(OpDiv, lane.Float64, lane.W512, func(dst, a, b []float64) {
		archsimd.LoadFloat64x8Slice(a).Div(archsimd.LoadFloat64x8Slice(b)).StoreSlice(dst)
	})
}

// registerAVX512Bitwise runs float lanes through VPANDD/VPANDQ on their
// bit patterns, so only AVX512F is needed.
func registerAVX512Bitwise() {
	register(OpAnd, lane.Int32, lane.W512, func(dst, a, b []int32) {
		archsimd.LoadInt32x16Slice(a).And(archsimd.LoadInt32x16Slice(b)).StoreSlice(dst)
	})
	register(OpOr, lane.Int32, lane.W512, func(dst, a, b []int32) {
		archsimd.LoadInt32x16Slice(a).Or(archsimd.LoadInt32x16Slice(b)).StoreSlice(dst)
	})
	register(OpXor, lane.Int32, lane.W512, func(dst, a, b []int32) {
		archsimd.LoadInt32x16Slice(a).Xor(archsimd.LoadInt32x16Slice(b)).StoreSlice(dst)
	})
	register(OpAndNot, lane.Int32, lane.W512, func(dst, a, b []int32) {
		archsimd.LoadInt32x16Slice(b).AndNot(archsimd.LoadInt32x16Slice(a)).StoreSlice(dst)
	})

	register(OpAnd, lane.Float32, lane.W512, func(dst, a, b []float32) {
		loadBits32x16(a).And(loadBits32x16(b)).AsFloat32x16().StoreSlice(dst)
	})
	register(OpOr, lane.Float32, lane.W512, func(dst, a, b []float32) {
		loadBits32x16(a).Or(loadBits32x16(b)).AsFloat32x16().StoreSlice(dst)
	})
	register(OpXor, lane.Float32, lane.W512, func(dst, a, b []float32) {
		loadBits32x16(a).Xor(loadBits32x16(b)).AsFloat32x16().StoreSlice(dst)
	})
	register(OpAndNot, lane.Float32, lane.W512, func(dst, a, b []float32) {
		loadBits32x16(b).AndNot(loadBits32x16(a)).AsFloat32x16().StoreSlice(dst)
	})

	register(OpAnd, lane.Float64, lane.W512, func(dst, a, b []float64) {
		loadBits64x8(a).And(loadBits64x8(b)).AsFloat64x8().StoreSlice(dst)
	})
	register(OpOr, lane.Float64, lane.W512, func(dst, a, b []float64) {
		loadBits64x8(a).Or(loadBits64x8(b)).AsFloat64x8().StoreSlice(dst)
	})
	register(OpXor, lane.Float64, lane.W512, func(dst, a, b []float64) {
		loadBits64x8(a).Xor(loadBits64x8(b)).AsFloat64x8().StoreSlice(dst)
	})
	register(OpAndNot, lane.Float64, lane.W512, func(dst, a, b []float64) {
		loadBits64x8(b).AndNot(loadBits64x8(a)).AsFloat64x8().StoreSlice(dst)
	})
}

// registerAVX512Masked covers the k-mask operations: packed compares and
// packed blends.
func registerAVX512Masked() {
	register(OpCmpGT, lane.Int32, lane.W512, func(dst []uint16, a, b []int32) {
		dst[0] = hwy.MaskBits_AVX512_32x16(archsimd.LoadInt32x16Slice(a).Greater(archsimd.LoadInt32x16Slice(b)))
	})
	register(OpCmpEQ, lane.Int32, lane.W512, func(dst []uint16, a, b []int32) {
		dst[0] = hwy.MaskBits_AVX512_32x16(archsimd.LoadInt32x16Slice(a).Equal(archsimd.LoadInt32x16Slice(b)))
	})
	register(OpCmpGT, lane.Float32, lane.W512, func(dst []uint16, a, b []float32) {
		dst[0] = hwy.MaskBits_AVX512_32x16(archsimd.LoadFloat32x16Slice(a).Greater(archsimd.LoadFloat32x16Slice(b)))
	})
	register(OpCmpEQ, lane.Float32, lane.W512, func(dst []uint16, a, b []float32) {
		dst[0] = hwy.MaskBits_AVX512_32x16(archsimd.LoadFloat32x16Slice(a).Equal(archsimd.LoadFloat32x16Slice(b)))
	})
	register(OpCmpGT, lane.Float64, lane.W512, func(dst []uint8, a, b []float64) {
		dst[0] = hwy.MaskBits_AVX512_64x8(archsimd.LoadFloat64x8Slice(a).Greater(archsimd.LoadFloat64x8Slice(b)))
	})
	register(OpCmpEQ, lane.Float64, lane.W512, func(dst []uint8, a, b []float64) {
		dst[0] = hwy.MaskBits_AVX512_64x8(archsimd.LoadFloat64x8Slice(a).Equal(archsimd.LoadFloat64x8Slice(b)))
	})

	register(OpBlend, lane.Int32, lane.W512, func(dst, a, b []int32, m []uint16) {
		hwy.Blend_AVX512_I32x16(m[0], archsimd.LoadInt32x16Slice(a), archsimd.LoadInt32x16Slice(b)).StoreSlice(dst)
	})
	register(OpBlend, lane.Float32, lane.W512, func(dst, a, b []float32, m []uint16) {
		hwy.Blend_AVX512_F32x16(m[0], archsimd.LoadFloat32x16Slice(a), archsimd.LoadFloat32x16Slice(b)).StoreSlice(dst)
	})
	register(OpBlend, lane.Float64, lane.W512, func(dst, a, b []float64, m []uint8) {
		hwy.Blend_AVX512_F64x8(m[0], archsimd.LoadFloat64x8Slice(a), archsimd.LoadFloat64x8Slice(b)).StoreSlice(dst)
	})
}

func loadBits32x16(s []float32) archsimd.Int32x16 {
	return archsimd.LoadFloat32x16Slice(s).AsInt32x16()
}

func loadBits64x8(s []float64) archsimd.Int64x8 {
	return archsimd.LoadFloat64x8Slice(s).AsInt64x8()
}
