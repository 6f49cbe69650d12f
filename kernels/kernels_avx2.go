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
	f := hwy.HostFeatures()
	if f.Has(hwy.FeatureAVX) {
		registerAVXFloat()
	}
	if f.Has(hwy.FeatureAVX2) {
		registerAVX2Int()
		registerAVX2Select()
	}
	if f.Has(hwy.FeatureAVX2 | hwy.FeatureFMA) {
		registerFMA()
	}
}

// registerAVXFloat covers the 256-bit float arithmetic shared by the AVX
// and AVX2 tables.
func registerAVXFloat() {
	register(OpAdd, lane.Float32, lane.W256, func(dst, a, b []float32) {
		archsimd.LoadFloat32x8Slice(a).Add(archsimd.LoadFloat32x8Slice(b)).StoreSlice(dst)
	})
	register(OpSub, lane.Float32, lane.W256, func(dst, a, b []float32) {
		archsimd.LoadFloat32x8Slice(a).Sub(archsimd.LoadFloat32x8Slice(b)).StoreSlice(dst)
	})
	register(OpMul, lane.Float32, lane.W256, func(dst, a, b []float32) {
		archsimd.LoadFloat32x8Slice(a).Mul(archsimd.LoadFloat32x8Slice(b)).StoreSlice(dst)
	})
	register(OpDiv, lane.Float32, lane.W256, func(dst, a, b []float32) {
		archsimd.LoadFloat32x8Slice(a).Div(archsimd.LoadFloat32x8Slice(b)).StoreSlice(dst)
	})

	register(OpAdd, lane.Float64, lane.W256, func(dst, a, b []float64) {
		archsimd.LoadFloat64x4Slice(a).Add(archsimd.LoadFloat64x4Slice(b)).StoreSlice(dst)
	})
	register(OpSub, lane.Float64, lane.W256, func(dst, a, b []float64) {
		archsimd.LoadFloat64x4Slice(a).Sub(archsimd.LoadFloat64x4Slice(b)).StoreSlice(dst)
	})
	register(OpMul, lane.Float64, lane.W256, func(dst, a, b []float64) {
		archsimd.LoadFloat64x4Slice(a).Mul(archsimd.LoadFloat64x4Slice(b)).StoreSlice(dst)
	})
	register(OpDiv, lane.Float64, lane.W256, func(dst, a, b []float64) {
		archsimd.LoadFloat64x4Slice(a).Div(archsimd.LoadFloat64x4Slice(b)).StoreSlice(dst)
	})
}

func registerAVX2Int() {
	register(OpAdd, lane.Int32, lane.W256, func(dst, a, b []int32) {
		archsimd.LoadInt32x8Slice(a).Add(archsimd.LoadInt32x8Slice(b)).StoreSlice(dst)
	})
	register(OpSub, lane.Int32, lane.W256, func(dst, a, b []int32) {
		archsimd.LoadInt32x8Slice(a).Sub(archsimd.LoadInt32x8Slice(b)).StoreSlice(dst)
	})
	register(OpMul, lane.Int32, lane.W256, func(dst, a, b []int32) {
		archsimd.LoadInt32x8Slice(a).Mul(archsimd.LoadInt32x8Slice(b)).StoreSlice(dst)
	})
}

// registerAVX2Select covers comparisons, bitwise logic, blends and
// min/max. Float lanes go through their integer bit patterns wherever
// the operation is defined on bits.
func registerAVX2Select() {
	// Comparisons write -1/0 lanes.
	register(OpCmpGT, lane.Int32, lane.W256, func(dst []int32, a, b []int32) {
		m := archsimd.LoadInt32x8Slice(a).Greater(archsimd.LoadInt32x8Slice(b))
		hwy.MaskVec_AVX2_I32x8(m).StoreSlice(dst)
	})
	register(OpCmpEQ, lane.Int32, lane.W256, func(dst []int32, a, b []int32) {
		m := archsimd.LoadInt32x8Slice(a).Equal(archsimd.LoadInt32x8Slice(b))
		hwy.MaskVec_AVX2_I32x8(m).StoreSlice(dst)
	})
	register(OpCmpGT, lane.Float32, lane.W256, func(dst []int32, a, b []float32) {
		m := archsimd.LoadFloat32x8Slice(a).Greater(archsimd.LoadFloat32x8Slice(b))
		hwy.MaskVec_AVX2_I32x8(m).StoreSlice(dst)
	})
	register(OpCmpEQ, lane.Float32, lane.W256, func(dst []int32, a, b []float32) {
		m := archsimd.LoadFloat32x8Slice(a).Equal(archsimd.LoadFloat32x8Slice(b))
		hwy.MaskVec_AVX2_I32x8(m).StoreSlice(dst)
	})
	register(OpCmpGT, lane.Float64, lane.W256, func(dst []int64, a, b []float64) {
		m := archsimd.LoadFloat64x4Slice(a).Greater(archsimd.LoadFloat64x4Slice(b))
		hwy.MaskVec_AVX2_I64x4(m).StoreSlice(dst)
	})
	register(OpCmpEQ, lane.Float64, lane.W256, func(dst []int64, a, b []float64) {
		m := archsimd.LoadFloat64x4Slice(a).Equal(archsimd.LoadFloat64x4Slice(b))
		hwy.MaskVec_AVX2_I64x4(m).StoreSlice(dst)
	})

	register(OpAnd, lane.Int32, lane.W256, func(dst, a, b []int32) {
		archsimd.LoadInt32x8Slice(a).And(archsimd.LoadInt32x8Slice(b)).StoreSlice(dst)
	})
	register(OpOr, lane.Int32, lane.W256, func(dst, a, b []int32) {
		archsimd.LoadInt32x8Slice(a).Or(archsimd.LoadInt32x8Slice(b)).StoreSlice(dst)
	})
	register(OpXor, lane.Int32, lane.W256, func(dst, a, b []int32) {
		archsimd.LoadInt32x8Slice(a).Xor(archsimd.LoadInt32x8Slice(b)).StoreSlice(dst)
	})
	register(OpAndNot, lane.Int32, lane.W256, func(dst, a, b []int32) {
		archsimd.LoadInt32x8Slice(b).AndNot(archsimd.LoadInt32x8Slice(a)).StoreSlice(dst)
	})

	register(OpAnd, lane.Float32, lane.W256, func(dst, a, b []float32) {
		x, y := loadBits32x8(a), loadBits32x8(b)
		x.And(y).AsFloat32x8().StoreSlice(dst)
	})
	register(OpOr, lane.Float32, lane.W256, func(dst, a, b []float32) {
		x, y := loadBits32x8(a), loadBits32x8(b)
		x.Or(y).AsFloat32x8().StoreSlice(dst)
	})
	register(OpXor, lane.Float32, lane.W256, func(dst, a, b []float32) {
		x, y := loadBits32x8(a), loadBits32x8(b)
		x.Xor(y).AsFloat32x8().StoreSlice(dst)
	})
	register(OpAndNot, lane.Float32, lane.W256, func(dst, a, b []float32) {
		x, y := loadBits32x8(a), loadBits32x8(b)
		y.AndNot(x).AsFloat32x8().StoreSlice(dst)
	})

	register(OpAnd, lane.Float64, lane.W256, func(dst, a, b []float64) {
		x, y := loadBits64x4(a), loadBits64x4(b)
		x.And(y).AsFloat64x4().StoreSlice(dst)
	})
	register(OpOr, lane.Float64, lane.W256, func(dst, a, b []float64) {
		x, y := loadBits64x4(a), loadBits64x4(b)
		x.Or(y).AsFloat64x4().StoreSlice(dst)
	})
	register(OpXor, lane.Float64, lane.W256, func(dst, a, b []float64) {
		x, y := loadBits64x4(a), loadBits64x4(b)
		x.Xor(y).AsFloat64x4().StoreSlice(dst)
	})
	register(OpAndNot, lane.Float64, lane.W256, func(dst, a, b []float64) {
		x, y := loadBits64x4(a), loadBits64x4(b)
		y.AndNot(x).AsFloat64x4().StoreSlice(dst)
	})

	register(OpBlend, lane.Int32, lane.W256, func(dst, a, b []int32, m []int32) {
		hwy.BitSelect_AVX2_I32x8(archsimd.LoadInt32x8Slice(m),
			archsimd.LoadInt32x8Slice(a), archsimd.LoadInt32x8Slice(b)).StoreSlice(dst)
	})
	register(OpBlend, lane.Float32, lane.W256, func(dst, a, b []float32, m []int32) {
		hwy.BitSelect_AVX2_I32x8(archsimd.LoadInt32x8Slice(m),
			loadBits32x8(a), loadBits32x8(b)).AsFloat32x8().StoreSlice(dst)
	})
	register(OpBlend, lane.Float64, lane.W256, func(dst, a, b []float64, m []int64) {
		hwy.BitSelect_AVX2_I64x4(archsimd.LoadInt64x4Slice(m),
			loadBits64x4(a), loadBits64x4(b)).AsFloat64x4().StoreSlice(dst)
	})

	register(OpMax, lane.Int32, lane.W256, func(dst, a, b []int32) {
		hwy.Max_AVX2_I32x8(archsimd.LoadInt32x8Slice(a), archsimd.LoadInt32x8Slice(b)).StoreSlice(dst)
	})
	register(OpMin, lane.Int32, lane.W256, func(dst, a, b []int32) {
		hwy.Min_AVX2_I32x8(archsimd.LoadInt32x8Slice(a), archsimd.LoadInt32x8Slice(b)).StoreSlice(dst)
	})
	register(OpMax, lane.Float32, lane.W256, func(dst, a, b []float32) {
		hwy.Max_AVX2_F32x8(archsimd.LoadFloat32x8Slice(a), archsimd.LoadFloat32x8Slice(b)).StoreSlice(dst)
	})
	register(OpMin, lane.Float32, lane.W256, func(dst, a, b []float32) {
		hwy.Min_AVX2_F32x8(archsimd.LoadFloat32x8Slice(a), archsimd.LoadFloat32x8Slice(b)).StoreSlice(dst)
	})
	register(OpMax, lane.Float64, lane.W256, func(dst, a, b []float64) {
		hwy.Max_AVX2_F64x4(archsimd.LoadFloat64x4Slice(a), archsimd.LoadFloat64x4Slice(b)).StoreSlice(dst)
	})
	register(OpMin, lane.Float64, lane.W256, func(dst, a, b []float64) {
		hwy.Min_AVX2_F64x4(archsimd.LoadFloat64x4Slice(a), archsimd.LoadFloat64x4Slice(b)).StoreSlice(dst)
	})
}

func registerFMA() {
	register(OpMulAdd, lane.Float32, lane.W256, func(dst, a, b, c []float32) {
		x, y, z := archsimd.LoadFloat32x8Slice(a), archsimd.LoadFloat32x8Slice(b), archsimd.LoadFloat32x8Slice(c)
		x.MulAdd(y, z).StoreSlice(dst)
	})
	register(OpMulSub, lane.Float32, lane.W256, func(dst, a, b, c []float32) {
		x, y, z := archsimd.LoadFloat32x8Slice(a), archsimd.LoadFloat32x8Slice(b), archsimd.LoadFloat32x8Slice(c)
		x.MulAdd(y, hwy.Neg_AVX2_F32x8(z)).StoreSlice(dst)
	})
	register(OpNegMulAdd, lane.Float32, lane.W256, func(dst, a, b, c []float32) {
		x, y, z := archsimd.LoadFloat32x8Slice(a), archsimd.LoadFloat32x8Slice(b), archsimd.LoadFloat32x8Slice(c)
		hwy.Neg_AVX2_F32x8(x).MulAdd(y, z).StoreSlice(dst)
	})
	register(OpNegMulSub, lane.Float32, lane.W256, func(dst, a, b, c []float32) {
		x, y, z := archsimd.LoadFloat32x8Slice(a), archsimd.LoadFloat32x8Slice(b), archsimd.LoadFloat32x8Slice(c)
		hwy.Neg_AVX2_F32x8(x).MulAdd(y, hwy.Neg_AVX2_F32x8(z)).StoreSlice(dst)
	})

	register(OpMulAdd, lane.Float64, lane.W256, func(dst, a, b, c []float64) {
		x, y, z := archsimd.LoadFloat64x4Slice(a), archsimd.LoadFloat64x4Slice(b), archsimd.LoadFloat64x4Slice(c)
		x.MulAdd(y, z).StoreSlice(dst)
	})
	register(OpMulSub, lane.Float64, lane.W256, func(dst, a, b, c []float64) {
		x, y, z := archsimd.LoadFloat64x4Slice(a), archsimd.LoadFloat64x4Slice(b), archsimd.LoadFloat64x4Slice(c)
		x.MulAdd(y, hwy.Neg_AVX2_F64x4(z)).StoreSlice(dst)
	})
	register(OpNegMulAdd, lane.Float64, lane.W256, func(dst, a, b, c []float64) {
		x, y, z := archsimd.LoadFloat64x4Slice(a), archsimd.LoadFloat64x4Slice(b), archsimd.LoadFloat64x4Slice(c)
		hwy.Neg_AVX2_F64x4(x).MulAdd(y, z).StoreSlice(dst)
	})
	register(OpNegMulSub, lane.Float64, lane.W256, func(dst, a, b, c []float64) {
		x, y, z := archsimd.LoadFloat64x4Slice(a), archsimd.LoadFloat64x4Slice(b), archsimd.LoadFloat64x4Slice(c)
		hwy.Neg_AVX2_F64x4(x).MulAdd(y, hwy.Neg_AVX2_F64x4(z)).StoreSlice(dst)
	})
}

func loadBits32x8(s []float32) archsimd.Int32x8 {
	return archsimd.LoadFloat32x8Slice(s).AsInt32x8()
}

func loadBits64x4(s []float64) archsimd.Int64x4 {
	return archsimd.LoadFloat64x4Slice(s).AsInt64x4()
}
