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

package optable

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/hwycheck/gen"
	"github.com/ajroetker/hwycheck/lane"
)

func opNames(t Table) []string {
	if t.Empty() {
		return nil
	}
	return lo.Map(t.Ops, func(d Descriptor, _ int) string { return d.Name })
}

func TestFamilies(t *testing.T) {
	want := []string{
		"avx", "avx2", "AVX2_FMA", "AVX2_CMP", "AVX2_BITWISE", "AVX2_SHIFT",
		"AVX2_BLEND", "AVX2_MINMAX", "AVX2_SHUFFLE_0123", "AVX2_UNPACKLO",
		"AVX2_UNPACKHI", "AVX2_SWAP_LANES", "AVX2_PERMUTEVAR", "avx512",
		"AVX512_BITWISE", "AVX512_CMP", "AVX512_BLEND", "AVX512_PERMUTE",
		"AVX512_SHIFT",
	}
	if diff := cmp.Diff(want, Families()); diff != "" {
		t.Errorf("unexpected families (-want +got):\n%s", diff)
	}
}

func TestTableShapes(t *testing.T) {
	cases := []struct {
		family string
		kind   lane.Kind
		width  lane.Width
		ops    []string
	}{
		{"avx", lane.Int32, lane.W128, []string{"sse add", "sse sub", "sse mul"}},
		{"avx", lane.Float32, lane.W256, []string{"avx add", "avx sub", "avx mul", "avx div"}},
		{"avx2", lane.Int32, lane.W256, []string{"avx2 add", "avx2 sub", "avx2 mul"}},
		{"avx2", lane.Float64, lane.W256, []string{"avx2 add", "avx2 sub", "avx2 mul", "avx2 div"}},
		{"AVX2_FMA", lane.Float32, lane.W256, []string{"fmadd", "fmsub", "fnmadd", "fnmsub"}},
		{"AVX2_FMA", lane.Int32, lane.W256, nil},
		{"AVX2_CMP", lane.Float64, lane.W256, []string{"cmp_gt", "cmp_eq"}},
		{"AVX2_BITWISE", lane.Float32, lane.W256, []string{"and", "or", "xor", "andnot"}},
		{"AVX2_SHIFT", lane.Int32, lane.W256, []string{"sll", "srl", "sra"}},
		{"AVX2_SHIFT", lane.Float32, lane.W256, nil},
		{"AVX2_BLEND", lane.Float64, lane.W256, []string{"blend"}},
		{"AVX2_MINMAX", lane.Int32, lane.W256, []string{"max", "min"}},
		{"AVX2_SHUFFLE_0123", lane.Int32, lane.W256, []string{"shuffle_0123"}},
		{"AVX2_UNPACKLO", lane.Int32, lane.W256, []string{"unpacklo"}},
		{"AVX2_UNPACKHI", lane.Int32, lane.W256, []string{"unpackhi"}},
		{"AVX2_SWAP_LANES", lane.Int32, lane.W256, []string{"swap_lanes"}},
		{"AVX2_PERMUTEVAR", lane.Int32, lane.W256, []string{"permutevar"}},
		{"AVX2_PERMUTEVAR", lane.Float64, lane.W256, nil},
		{"avx512", lane.Int32, lane.W512, []string{"avx512 add", "avx512 sub", "avx512 mul"}},
		{"avx512", lane.Float32, lane.W512, []string{"avx512 add", "avx512 sub", "avx512 mul", "avx512 div"}},
		{"AVX512_BITWISE", lane.Float64, lane.W512, []string{"avx512 and", "avx512 or", "avx512 xor", "avx512 andnot"}},
		{"AVX512_CMP", lane.Int32, lane.W512, []string{"avx512 cmp gt", "avx512 cmp eq"}},
		{"AVX512_BLEND", lane.Float32, lane.W512, []string{"avx512 blend"}},
		{"AVX512_PERMUTE", lane.Float64, lane.W512, []string{"avx512 permutevar"}},
		{"AVX512_SHIFT", lane.Int32, lane.W512, []string{"avx512 sll", "avx512 srl", "avx512 sra"}},
	}
	for _, tc := range cases {
		t.Run(tc.family+"/"+tc.kind.String(), func(t *testing.T) {
			build, ok := Lookup(tc.family)
			require.True(t, ok)
			tbl := build(tc.kind)
			assert.Equal(t, tc.family, tbl.Family)
			assert.Equal(t, tc.kind, tbl.Elem)
			assert.Equal(t, tc.width, tbl.Width)
			assert.Equal(t, tc.ops, opNames(tbl))
			assert.Equal(t, len(tc.ops) == 0, tbl.Empty())
		})
	}
}

func TestOperandShapes(t *testing.T) {
	cmp256 := buildCmp(lane.Float64)
	d := cmp256.Ops[0]
	assert.Equal(t, lane.Int64, d.Output.Kind)
	assert.Equal(t, 4, d.Output.Lanes)
	assert.Equal(t, "c", d.Output.Label)

	cmp512 := buildCmp512(lane.Float32)
	d = cmp512.Ops[1]
	assert.Equal(t, lane.Uint16, d.Output.Kind)
	assert.Equal(t, 1, d.Output.Lanes, "packed compare writes one scalar")
	cmp512 = buildCmp512(lane.Float64)
	assert.Equal(t, lane.Uint8, cmp512.Ops[0].Output.Kind)

	blend := buildBlend(lane.Float32).Ops[0]
	require.Len(t, blend.Inputs, 3)
	assert.Equal(t, gen.LaneMask, blend.Inputs[2].Policy)
	assert.Equal(t, lane.Int32, blend.Inputs[2].Kind)
	assert.Equal(t, "d", blend.Output.Label)

	blend = buildBlend512(lane.Float64).Ops[0]
	assert.Equal(t, gen.PackedMask, blend.Inputs[2].Policy)
	assert.Equal(t, lane.Uint8, blend.Inputs[2].Kind)

	perm := buildPermute512(lane.Float64).Ops[0]
	assert.Equal(t, lane.Int64, perm.Inputs[1].Kind)
	assert.Equal(t, gen.Permutation, perm.Inputs[1].Policy)
	assert.Equal(t, 8, perm.Inputs[1].Lanes)

	fma := buildFMA(lane.Float32).Ops[0]
	assert.Equal(t, []string{"a", "b", "c"}, lo.Map(fma.Inputs, func(o Operand, _ int) string { return o.Label }))
	assert.Equal(t, "d", fma.Output.Label)

	sse := buildAVX(lane.Int32)
	assert.Equal(t, 4, sse.Lanes())
}

func TestAllOrder(t *testing.T) {
	tables := All()
	require.NotEmpty(t, tables)
	for _, tbl := range tables {
		assert.False(t, tbl.Empty(), tbl.String())
	}
	assert.Equal(t, "avx/int", tables[0].String())
	assert.Equal(t, "avx/float", tables[1].String())
	assert.Equal(t, "avx/double", tables[2].String())
	assert.Equal(t, "AVX512_SHIFT/int", tables[len(tables)-1].String())

	// 19 families; FMA has no int table, the AVX2 permute group and both
	// shift families are int only.
	assert.Len(t, tables, 19*3-1-5*2-2*2)
}

func run(d Descriptor, g *gen.Generator) (vec, ref lane.Buffer) {
	ins := make([]lane.Buffer, len(d.Inputs))
	for i, op := range d.Inputs {
		ins[i] = op.New()
		g.Fill(ins[i], op.Policy)
	}
	vec, ref = d.Output.New(), d.Output.New()
	d.Vector(vec, ins)
	d.Scalar(ref, ins)
	return vec, ref
}

func TestEveryDescriptorAgrees(t *testing.T) {
	g := gen.New(20250101)
	for _, tbl := range All() {
		for _, d := range tbl.Ops {
			for round := range 100 {
				vec, ref := run(d, g)
				if i := lane.Diff(vec, ref); i >= 0 {
					t.Fatalf("%s:%s round %d: lane %d: vector %s, scalar %s",
						tbl.Family, d.Name, round, i, vec.Lane(i), ref.Lane(i))
				}
			}
		}
	}
}

func TestSpecialValuesAgree(t *testing.T) {
	nan := math.NaN()
	specials := []float64{nan, math.Inf(1), math.Inf(-1), 0, math.Copysign(0, -1), 1, -1, math.SmallestNonzeroFloat64}
	for _, name := range []string{"AVX2_MINMAX", "AVX2_CMP", "AVX2_BITWISE", "avx2"} {
		build, _ := Lookup(name)
		tbl := build(lane.Float64)
		for _, d := range tbl.Ops {
			for i := range specials {
				for j := range specials {
					a := lane.Of(specials[i], specials[j], specials[(i+1)%len(specials)], 2)
					b := lane.Of(specials[j], specials[i], 3, specials[(j+3)%len(specials)])
					vec, ref := d.Output.New(), d.Output.New()
					d.Vector(vec, []lane.Buffer{a, b})
					d.Scalar(ref, []lane.Buffer{a, b})
					require.Equal(t, -1, lane.Diff(vec, ref), "%s:%s a=%v b=%v vec=%v ref=%v", name, d.Name, a, b, vec, ref)
				}
			}
		}
	}
}

// Fused ops are left out of TestSpecialValuesAgree: a NaN operand may give
// a different NaN payload in hardware. Generated operands never produce one.
func TestFusedOutputsFinite(t *testing.T) {
	g := gen.New(77)
	for _, k := range []lane.Kind{lane.Float32, lane.Float64} {
		tbl := buildFMA(k)
		require.Len(t, tbl.Ops, 4)
		for _, d := range tbl.Ops {
			for range 200 {
				vec, ref := run(d, g)
				for _, out := range []lane.Buffer{vec, ref} {
					switch k {
					case lane.Float32:
						for _, v := range lane.As[float32](out) {
							require.False(t, math.IsNaN(float64(v)) || math.IsInf(float64(v), 0), "%s: %v", d.Name, v)
						}
					case lane.Float64:
						for _, v := range lane.As[float64](out) {
							require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%s: %v", d.Name, v)
						}
					}
				}
			}
		}
	}
}

func TestSelect(t *testing.T) {
	got := Select(Filter{Families: []string{"avx2_cmp"}})
	assert.Equal(t, []string{"AVX2_CMP/int", "AVX2_CMP/float", "AVX2_CMP/double"},
		lo.Map(got, func(t Table, _ int) string { return t.String() }))

	got = Select(Filter{Families: []string{"AVX2_FMA", "avx512"}, Types: []lane.Kind{lane.Float64}})
	assert.Equal(t, []string{"AVX2_FMA/double", "avx512/double"},
		lo.Map(got, func(t Table, _ int) string { return t.String() }))

	assert.Empty(t, Select(Filter{Families: []string{"sse9"}}))
	assert.Empty(t, Select(Filter{Families: []string{"AVX2_SHIFT"}, Types: []lane.Kind{lane.Float32}}))
	assert.Len(t, Select(Filter{}), len(All()))

	for _, tbl := range Select(Filter{NativeOnly: true}) {
		assert.True(t, Native(tbl), tbl.String())
	}

	assert.Equal(t, []string{"sse9"}, Unknown([]string{"avx", "sse9", "Avx512_Cmp"}))
}

func TestByFamily(t *testing.T) {
	groups := ByFamily(All())
	assert.Len(t, groups, len(Families()))
	assert.Len(t, groups["AVX2_FMA"], 2)
	assert.Len(t, groups["AVX2_PERMUTEVAR"], 1)
}

func TestConstructorChecksKinds(t *testing.T) {
	a := operand[float32]("a", lane.W256, gen.Uniform)
	out := operand[int32]("c", lane.W256, gen.Uniform)
	assert.Panics(t, func() {
		Unary[int32, int32]("bad", a, out, func(dst, a []int32) {}, func(dst, a []int32) {})
	})
}

func TestKernelRejectsWrongBuffer(t *testing.T) {
	d := buildAVX2(lane.Int32).Ops[0]
	assert.Panics(t, func() {
		d.Scalar(lane.New(lane.Float32, 8), []lane.Buffer{lane.New(lane.Int32, 8), lane.New(lane.Int32, 8)})
	})
}
