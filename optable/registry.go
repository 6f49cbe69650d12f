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
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/ajroetker/hwycheck/hwy"
	"github.com/ajroetker/hwycheck/lane"
)

// Builder returns a family's table for one element type. The table is
// empty when the family defines nothing for that type.
type Builder func(lane.Kind) Table

type family struct {
	name  string
	build Builder
}

// families is the report order.
var families = []family{
	{"avx", buildAVX},
	{"avx2", buildAVX2},
	{"AVX2_FMA", buildFMA},
	{"AVX2_CMP", buildCmp},
	{"AVX2_BITWISE", buildBitwise},
	{"AVX2_SHIFT", buildShift},
	{"AVX2_BLEND", buildBlend},
	{"AVX2_MINMAX", buildMinMax},
	{"AVX2_SHUFFLE_0123", buildShuffle0123},
	{"AVX2_UNPACKLO", buildUnpackLo},
	{"AVX2_UNPACKHI", buildUnpackHi},
	{"AVX2_SWAP_LANES", buildSwapLanes},
	{"AVX2_PERMUTEVAR", buildPermuteVar},
	{"avx512", buildAVX512},
	{"AVX512_BITWISE", buildBitwise512},
	{"AVX512_CMP", buildCmp512},
	{"AVX512_BLEND", buildBlend512},
	{"AVX512_PERMUTE", buildPermute512},
	{"AVX512_SHIFT", buildShift512},
}

// Families returns every family name in report order.
func Families() []string {
	return lo.Map(families, func(f family, _ int) string { return f.name })
}

// Lookup returns the builder for a family, matching the name without
// regard to case.
func Lookup(name string) (Builder, bool) {
	f, ok := lo.Find(families, func(f family) bool { return strings.EqualFold(f.name, name) })
	return f.build, ok
}

var all = sync.OnceValue(func() []Table {
	var tables []Table
	for _, f := range families {
		for _, k := range lane.Elements {
			t := f.build(k)
			if t.Empty() {
				continue
			}
			tables = append(tables, t)
		}
	}
	slog.Debug("operation tables built", "tables", len(tables),
		"ops", lo.SumBy(tables, func(t Table) int { return len(t.Ops) }),
		"native", lo.CountBy(tables, Native))
	return tables
})

// All returns every non-empty table, ordered by family and then by element
// type (int, float, double). The slice is shared; callers must not modify
// it.
func All() []Table {
	return all()
}

// Filter narrows a selection of tables. Zero fields match everything.
type Filter struct {
	// Families are matched without regard to case.
	Families []string
	Types    []lane.Kind

	// NativeOnly drops tables with no archsimd kernel on this host.
	NativeOnly bool
}

// Select returns the tables of All that match f, in the same order.
// Unknown families or types select nothing.
func Select(f Filter) []Table {
	return lo.Filter(All(), func(t Table, _ int) bool {
		if len(f.Families) > 0 && !lo.ContainsBy(f.Families, func(name string) bool {
			return strings.EqualFold(name, t.Family)
		}) {
			return false
		}
		if len(f.Types) > 0 && !slices.Contains(f.Types, t.Elem) {
			return false
		}
		return !f.NativeOnly || Native(t)
	})
}

// Unknown returns the names that match no family.
func Unknown(names []string) []string {
	return lo.Filter(names, func(name string, _ int) bool {
		_, ok := Lookup(name)
		return !ok
	})
}

// Native reports whether any of t's operations runs an archsimd kernel on
// this host. When false, the vectorized side of t is the portable hwy
// code.
func Native(t Table) bool {
	return lo.SomeBy(t.Ops, func(d Descriptor) bool { return d.Native })
}

// Supported reports whether the host CPU has every extension t requires.
func Supported(t Table) bool {
	return hwy.HostFeatures().Has(t.Requires)
}

// ByFamily groups tables by family name.
func ByFamily(tables []Table) map[string][]Table {
	return lo.GroupBy(tables, func(t Table) string { return t.Family })
}
