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

package kernels

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/hwycheck/hwy"
	"github.com/ajroetker/hwycheck/lane"
	"github.com/ajroetker/hwycheck/scalar"
)

func randFloats[T lane.Float](r *rand.Rand, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = T(2*r.Float64() - 1)
	}
	return out
}

func randInts(r *rand.Rand, n int, lo, hi int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(lo + r.IntN(hi-lo+1))
	}
	return out
}

func sameBits[T lane.Elem](t *testing.T, want, got []T) {
	t.Helper()
	w, g := lane.Of(want...), lane.Of(got...)
	require.Equal(t, -1, lane.Diff(w, g), "want %v, got %v", w, g)
}

func TestAddScenario(t *testing.T) {
	a := []int32{1, 2, 3, 4, 5, 6, 7, 8}
	b := []int32{8, 7, 6, 5, 4, 3, 2, 1}
	dst := make([]int32, 8)
	Add[int32](lane.W256)(dst, a, b)
	assert.Equal(t, []int32{9, 9, 9, 9, 9, 9, 9, 9}, dst)
}

func checkArith[T lane.Float](t *testing.T, w lane.Width) {
	r := rand.New(rand.NewPCG(uint64(w), 1))
	n := w.Lanes(lane.KindOf[T]())
	want := make([]T, n)
	got := make([]T, n)
	for range 200 {
		a, b, c := randFloats[T](r, n), randFloats[T](r, n), randFloats[T](r, n)

		scalar.Add(want, a, b)
		Add[T](w)(got, a, b)
		sameBits(t, want, got)

		scalar.Sub(want, a, b)
		Sub[T](w)(got, a, b)
		sameBits(t, want, got)

		scalar.Mul(want, a, b)
		Mul[T](w)(got, a, b)
		sameBits(t, want, got)

		scalar.Div(want, a, b)
		Div[T](w)(got, a, b)
		sameBits(t, want, got)

		scalar.FMAdd(want, a, b, c)
		MulAdd[T](w)(got, a, b, c)
		sameBits(t, want, got)

		scalar.FMSub(want, a, b, c)
		MulSub[T](w)(got, a, b, c)
		sameBits(t, want, got)

		scalar.FNMAdd(want, a, b, c)
		NegMulAdd[T](w)(got, a, b, c)
		sameBits(t, want, got)

		scalar.FNMSub(want, a, b, c)
		NegMulSub[T](w)(got, a, b, c)
		sameBits(t, want, got)

		scalar.Max(want, a, b)
		Max[T](w)(got, a, b)
		sameBits(t, want, got)

		scalar.Min(want, a, b)
		Min[T](w)(got, a, b)
		sameBits(t, want, got)

		scalar.AndNot(want, a, b)
		AndNot[T](w)(got, a, b)
		sameBits(t, want, got)
	}
}

func TestFloatKernelsMatchScalar(t *testing.T) {
	for _, w := range []lane.Width{lane.W256, lane.W512} {
		t.Run("float32/"+w.String(), func(t *testing.T) { checkArith[float32](t, w) })
		t.Run("float64/"+w.String(), func(t *testing.T) { checkArith[float64](t, w) })
	}
}

func TestCompareKernels(t *testing.T) {
	a := []float32{1, 0, 0, 0, 0, 0, 0, 0}
	b := []float32{0, 1, 0, 0, 0, 0, 0, 0}
	dst := make([]int32, 8)
	CmpGT[float32, int32](lane.W256)(dst, a, b)
	assert.Equal(t, []int32{-1, 0, 0, 0, 0, 0, 0, 0}, dst)

	nan := float32(math.NaN())
	a[2], b[2] = nan, nan
	CmpEQ[float32, int32](lane.W256)(dst, a, b)
	assert.Equal(t, []int32{0, 0, 0, -1, -1, -1, -1, -1}, dst)

	wide := make([]int64, 4)
	CmpGT[float64, int64](lane.W256)(wide, []float64{2, 1, 0, -1}, []float64{1, 1, 1, 1})
	assert.Equal(t, []int64{-1, 0, 0, 0}, wide)
}

func TestPackedCompareScenario(t *testing.T) {
	a := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	b := []float64{0, -1, -1, 3, -1, -1, -1, 7}
	dst := make([]uint8, 1)
	PackedEQ[float64, uint8](lane.W512)(dst, a, b)
	assert.Equal(t, uint8(0x89), dst[0])

	r := rand.New(rand.NewPCG(3, 3))
	want := make([]uint16, 1)
	got := make([]uint16, 1)
	for range 200 {
		x, y := randInts(r, 16, -2, 2), randInts(r, 16, -2, 2)
		scalar.PackedGT(want, x, y)
		PackedGT[int32, uint16](lane.W512)(got, x, y)
		require.Equal(t, want, got)
		scalar.PackedEQ(want, x, y)
		PackedEQ[int32, uint16](lane.W512)(got, x, y)
		require.Equal(t, want, got)
	}
}

func TestBlendScenario(t *testing.T) {
	a := []float32{1, 1, 1, 1, 1, 1, 1, 1}
	b := []float32{2, 2, 2, 2, 2, 2, 2, 2}
	m := []int32{0, -1, 0, -1, 0, -1, 0, -1}
	dst := make([]float32, 8)
	Blend[float32, int32](lane.W256)(dst, a, b, m)
	assert.Equal(t, []float32{1, 2, 1, 2, 1, 2, 1, 2}, dst)

	d := make([]float64, 8)
	PackedBlend[float64, uint8](lane.W512)(d, []float64{0, 1, 2, 3, 4, 5, 6, 7}, []float64{10, 11, 12, 13, 14, 15, 16, 17}, []uint8{0x89})
	assert.Equal(t, []float64{10, 1, 2, 13, 4, 5, 6, 17}, d)
}

func TestBitwiseMatchesScalar(t *testing.T) {
	r := rand.New(rand.NewPCG(4, 4))
	for _, w := range []lane.Width{lane.W256, lane.W512} {
		n := w.Lanes(lane.Int32)
		want := make([]int32, n)
		got := make([]int32, n)
		for range 100 {
			a, b := randInts(r, n, math.MinInt32, math.MaxInt32), randInts(r, n, math.MinInt32, math.MaxInt32)
			scalar.And(want, a, b)
			And[int32](w)(got, a, b)
			require.Equal(t, want, got)
			scalar.Or(want, a, b)
			Or[int32](w)(got, a, b)
			require.Equal(t, want, got)
			scalar.Xor(want, a, b)
			Xor[int32](w)(got, a, b)
			require.Equal(t, want, got)
			scalar.AndNot(want, a, b)
			AndNot[int32](w)(got, a, b)
			require.Equal(t, want, got)
		}
	}
}

func TestShiftSaturation(t *testing.T) {
	counts := []int32{-1, 31, 32, 33, 100, math.MinInt32, 0, 4}
	for _, v := range []int32{-16, 16, math.MinInt32, math.MaxInt32} {
		a := []int32{v, v, v, v, v, v, v, v}
		want := make([]int32, 8)
		got := make([]int32, 8)

		scalar.Sll(want, a, counts)
		Sll(lane.W256)(got, a, counts)
		assert.Equal(t, want, got, "sll %d", v)

		scalar.Srl(want, a, counts)
		Srl(lane.W256)(got, a, counts)
		assert.Equal(t, want, got, "srl %d", v)

		scalar.Sra(want, a, counts)
		Sra(lane.W256)(got, a, counts)
		assert.Equal(t, want, got, "sra %d", v)
	}
}

func TestPermuteKernels(t *testing.T) {
	a := []int32{0, 1, 2, 3, 4, 5, 6, 7}
	b := []int32{10, 11, 12, 13, 14, 15, 16, 17}
	dst := make([]int32, 8)

	Shuffle0123(lane.W256)(dst, a)
	assert.Equal(t, []int32{3, 2, 1, 0, 7, 6, 5, 4}, dst)
	UnpackLo(lane.W256)(dst, a, b)
	assert.Equal(t, []int32{0, 10, 1, 11, 4, 14, 5, 15}, dst)
	UnpackHi(lane.W256)(dst, a, b)
	assert.Equal(t, []int32{2, 12, 3, 13, 6, 16, 7, 17}, dst)
	SwapLanes(lane.W256)(dst, a)
	assert.Equal(t, []int32{4, 5, 6, 7, 0, 1, 2, 3}, dst)
	PermuteVar[int32, int32](lane.W256)(dst, b, []int32{7, 6, 5, 4, 3, 2, 1, 0})
	assert.Equal(t, []int32{17, 16, 15, 14, 13, 12, 11, 10}, dst)

	f := make([]float64, 8)
	PermuteVar[float64, int64](lane.W512)(f, []float64{0, 1, 2, 3, 4, 5, 6, 7}, []int64{7, 0, 6, 1, 5, 2, 4, 3})
	assert.Equal(t, []float64{7, 0, 6, 1, 5, 2, 4, 3}, f)
}

func TestMinMaxNaN(t *testing.T) {
	nan := math.NaN()
	a := []float64{nan, 1, nan, 2}
	b := []float64{1, nan, nan, 3}
	got := make([]float64, 4)
	want := make([]float64, 4)

	Max[float64](lane.W256)(got, a, b)
	scalar.Max(want, a, b)
	sameBits(t, want, got)

	Min[float64](lane.W256)(got, a, b)
	scalar.Min(want, a, b)
	sameBits(t, want, got)
}

func TestNativeRegistration(t *testing.T) {
	if hwy.NoSimdEnv() {
		assert.Zero(t, NativeCount())
		return
	}
	f := hwy.HostFeatures()
	if !f.Has(hwy.FeatureAVX2) {
		t.Skip("no AVX2 on this host, or built without GOEXPERIMENT=simd")
	}
	if NativeCount() == 0 {
		t.Skip("built without GOEXPERIMENT=simd")
	}
	assert.True(t, IsNative(OpAdd, lane.Int32, lane.W256))
	assert.True(t, IsNative(OpBlend, lane.Float64, lane.W256))
	assert.False(t, IsNative(OpPermute, lane.Int32, lane.W256), "permutes are portable only")
	assert.Equal(t, f.Has(hwy.FeatureAVX512F), IsNative(OpCmpEQ, lane.Float64, lane.W512))
}

func TestRegisterDuplicatePanics(t *testing.T) {
	const op Op = "test-only"
	register(op, lane.Int32, lane.W128, func(dst, a, b []int32) {})
	defer delete(natives, key{op, lane.Int32, lane.W128})
	assert.Panics(t, func() {
		register(op, lane.Int32, lane.W128, func(dst, a, b []int32) {})
	})
}

func BenchmarkAddFloat32(b *testing.B) {
	r := rand.New(rand.NewPCG(1, 1))
	x, y := randFloats[float32](r, 8), randFloats[float32](r, 8)
	dst := make([]float32, 8)
	add := Add[float32](lane.W256)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		add(dst, x, y)
	}
}

func BenchmarkMulAddFloat64(b *testing.B) {
	r := rand.New(rand.NewPCG(1, 1))
	x, y, z := randFloats[float64](r, 4), randFloats[float64](r, 4), randFloats[float64](r, 4)
	dst := make([]float64, 4)
	fma := MulAdd[float64](lane.W256)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fma(dst, x, y, z)
	}
}
