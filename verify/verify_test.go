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

package verify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/hwycheck/gen"
	"github.com/ajroetker/hwycheck/lane"
	"github.com/ajroetker/hwycheck/optable"
)

func int32Operand(label string) optable.Operand {
	return optable.Operand{Label: label, Kind: lane.Int32, Lanes: 8, Policy: gen.Uniform}
}

func addInt32(dst, a, b []int32) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

// addTable is a one-op int32 table whose vector side is off by one in
// lane bad, or correct when bad is negative.
func addTable(family string, bad int) optable.Table {
	vec := func(dst, a, b []int32) {
		addInt32(dst, a, b)
		if bad >= 0 {
			dst[bad]++
		}
	}
	d := optable.Binary[int32, int32, int32]("add",
		int32Operand("a"), int32Operand("b"), int32Operand("c"), vec, addInt32)
	return optable.Table{Family: family, Elem: lane.Int32, Width: lane.W256, Ops: []optable.Descriptor{d}}
}

func TestTraceFormat(t *testing.T) {
	const seed = 1234
	var out bytes.Buffer
	s, err := Run(context.Background(), []optable.Table{addTable("TEST", -1)}, Options{Seed: seed, Out: &out})
	require.NoError(t, err)

	g := gen.New(seed).Fork(0)
	a := lane.New(lane.Int32, 8)
	b := lane.New(lane.Int32, 8)
	g.Fill(a, gen.Uniform)
	g.Fill(b, gen.Uniform)
	c := lane.New(lane.Int32, 8)
	addInt32(lane.As[int32](c), lane.As[int32](a), lane.As[int32](b))

	want := strings.Join([]string{
		"TEST:add",
		"a = " + a.String(),
		"b = " + b.String(),
		"avx_c = " + c.String(),
		"sisd_c = " + c.String(),
		"",
	}, "\n")
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("trace mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 1, s.Tables)
	assert.Equal(t, 1, s.Checks)
	assert.Equal(t, 8, s.Lanes)
	assert.Equal(t, uint64(seed), s.Seed)
}

func TestQuietPrintsOnlyFailures(t *testing.T) {
	var out bytes.Buffer
	tables := []optable.Table{addTable("GOOD", -1), addTable("BAD", 5)}
	_, err := Run(context.Background(), tables, Options{Seed: 7, Quiet: true, Out: &out})
	require.Error(t, err)
	assert.NotContains(t, out.String(), "GOOD:add")
	assert.True(t, strings.HasPrefix(out.String(), "BAD:add\n"), out.String())
}

func TestMismatch(t *testing.T) {
	var out bytes.Buffer
	tables := []optable.Table{addTable("GOOD", -1), addTable("BAD", 2), addTable("AFTER", -1)}
	s, err := Run(context.Background(), tables, Options{Seed: 99, Rounds: 3, Out: &out})

	var me *MismatchError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "BAD", me.Family)
	assert.Equal(t, "add", me.Op)
	assert.Equal(t, lane.Int32, me.Elem)
	assert.Equal(t, 0, me.Round)
	assert.Equal(t, 2, me.Lane)
	assert.Equal(t, uint64(99), me.Seed)
	assert.NotEqual(t, me.Vector, me.Scalar)
	require.Len(t, me.Inputs, 2)
	assert.Equal(t, "a", me.Inputs[0].Label)
	assert.Contains(t, err.Error(), "BAD:add")
	assert.Contains(t, err.Error(), "lane 2")
	assert.Contains(t, err.Error(), "seed 99")

	assert.Equal(t, 3, s.Checks, "three rounds of GOOD passed")
	assert.Equal(t, 3, strings.Count(out.String(), "GOOD:add\n"))
	assert.Equal(t, 1, strings.Count(out.String(), "BAD:add\n"))
	assert.NotContains(t, out.String(), "AFTER")
}

func TestEmptySelection(t *testing.T) {
	var out bytes.Buffer
	s, err := Run(context.Background(), nil, Options{Out: &out})
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Zero(t, s.Checks)
	assert.NotZero(t, s.Seed)
	assert.Equal(t, "no tables selected", s.String())

	empty := optable.Table{Family: "NONE", Elem: lane.Float64, Width: lane.W256}
	s, err = Run(context.Background(), []optable.Table{empty}, Options{Parallel: 4, Out: &out})
	require.NoError(t, err)
	assert.Zero(t, s.Tables)
	assert.Empty(t, out.String())
}

func TestAllTablesPass(t *testing.T) {
	var out bytes.Buffer
	s, err := Run(context.Background(), optable.All(), Options{Rounds: 5, Quiet: true, Out: &out})
	require.NoError(t, err, "seed %d", s.Seed)
	assert.Empty(t, out.String())
	assert.Equal(t, len(optable.All()), s.Tables)
	assert.Positive(t, s.Lanes)
}

func TestParallelMatchesSequential(t *testing.T) {
	run := func(parallel int) string {
		var out bytes.Buffer
		_, err := Run(context.Background(), optable.All(), Options{Seed: 42, Rounds: 2, Parallel: parallel, Out: &out})
		require.NoError(t, err)
		return out.String()
	}
	seq := run(1)
	require.NotEmpty(t, seq)
	for _, p := range []int{2, 8} {
		if diff := cmp.Diff(seq, run(p)); diff != "" {
			t.Errorf("parallel=%d trace differs (-sequential +parallel):\n%s", p, diff)
		}
	}
}

func TestParallelStopsAtMismatch(t *testing.T) {
	tables := make([]optable.Table, 0, 41)
	for range 20 {
		tables = append(tables, addTable("GOOD", -1))
	}
	tables = append(tables, addTable("BAD", 7))
	for range 20 {
		tables = append(tables, addTable("GOOD", -1))
	}

	var out bytes.Buffer
	_, err := Run(context.Background(), tables, Options{Seed: 3, Parallel: 4, Out: &out})
	var me *MismatchError
	require.ErrorAs(t, err, &me)
	assert.False(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 7, me.Lane)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "BAD:add", lines[len(lines)-5], "failing trace is flushed last")
	assert.LessOrEqual(t, strings.Count(out.String(), "GOOD:add"), 20)
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, p := range []int{1, 4} {
		var out bytes.Buffer
		s, err := Run(ctx, optable.All(), Options{Parallel: p, Out: &out})
		require.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, s.Checks)
	}
}

func TestSummaryString(t *testing.T) {
	s := Summary{
		Tables:   42,
		Portable: 3,
		Checks:   12345,
		Lanes:    1234567,
		Seed:     9876543210,
		Elapsed:  1500 * time.Millisecond,
	}
	assert.Equal(t, "42 tables (3 portable), 12,345 checks, 1,234,567 lanes in 1.5s, seed 9876543210", s.String())
}

func TestBench(t *testing.T) {
	tables := optable.All()[:2]
	res, err := Bench(context.Background(), tables, BenchOptions{Iterations: 100, Seed: 5})
	require.NoError(t, err)

	want := 0
	for _, tb := range tables {
		want += len(tb.Ops)
	}
	require.Len(t, res, want)
	for _, r := range res {
		assert.Positive(t, r.ScalarNs, r.Op)
		assert.Positive(t, r.VectorNs, r.Op)
		assert.Positive(t, r.Speedup(), r.Op)
	}

	_, err = Bench(context.Background(), []optable.Table{addTable("BAD", 0)}, BenchOptions{Iterations: 1, Seed: 21})
	var me *MismatchError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 0, me.Lane)
	assert.Equal(t, uint64(21), me.Seed)
	require.Len(t, me.Inputs, 2)
	assert.Equal(t, "a", me.Inputs[0].Label)
	assert.Equal(t, "b", me.Inputs[1].Label)
	assert.NotEmpty(t, me.Inputs[1].Values)
	assert.Contains(t, err.Error(), "a = ")

	assert.Zero(t, BenchResult{ScalarNs: 5}.Speedup())
}
