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
	"context"
	"log/slog"
	"time"

	"github.com/ajroetker/hwycheck/gen"
	"github.com/ajroetker/hwycheck/lane"
	"github.com/ajroetker/hwycheck/optable"
)

// DefaultIterations is the number of kernel calls timed per side when
// BenchOptions.Iterations is unset.
const DefaultIterations = 100_000

// BenchOptions controls Bench. A zero Seed picks a fresh one.
type BenchOptions struct {
	Iterations int
	Seed       uint64
}

// BenchResult is the mean cost of one kernel call for each side of a
// descriptor.
type BenchResult struct {
	Family string
	Elem   lane.Kind
	Op     string
	Native bool

	VectorNs float64
	ScalarNs float64
}

// Speedup is scalar time over vector time.
func (r BenchResult) Speedup() float64 {
	if r.VectorNs <= 0 {
		return 0
	}
	return r.ScalarNs / r.VectorNs
}

// Bench times both kernels of every descriptor on one set of generated
// operands. Outputs are still compared and a disagreement aborts with a
// *MismatchError.
func Bench(ctx context.Context, tables []optable.Table, opts BenchOptions) ([]BenchResult, error) {
	n := opts.Iterations
	if n <= 0 {
		n = DefaultIterations
	}
	root := gen.New(opts.Seed)
	slog.Debug("benchmarking", "tables", len(tables), "iterations", n, "seed", root.Seed())

	var results []BenchResult
	for i, c := range plan(tables, 1) {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		d := c.op
		g := root.Fork(i)
		ins := make([]lane.Buffer, len(d.Inputs))
		for j, op := range d.Inputs {
			ins[j] = op.New()
			g.Fill(ins[j], op.Policy)
		}
		vec, ref := d.Output.New(), d.Output.New()

		r := BenchResult{
			Family:   c.table.Family,
			Elem:     c.table.Elem,
			Op:       d.Name,
			Native:   d.Native,
			VectorNs: timeKernel(d.Vector, vec, ins, n),
			ScalarNs: timeKernel(d.Scalar, ref, ins, n),
		}
		if diff := lane.Diff(vec, ref); diff >= 0 {
			e := c.mismatch(diff, ins, vec, ref)
			e.Seed = root.Seed()
			return results, e
		}
		results = append(results, r)
	}
	return results, nil
}

func timeKernel(k optable.Kernel, out lane.Buffer, ins []lane.Buffer, n int) float64 {
	start := time.Now()
	for range n {
		k(out, ins)
	}
	return float64(time.Since(start).Nanoseconds()) / float64(n)
}
