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

// Package verify runs operation tables: for every descriptor it generates
// operands, runs the vectorized and scalar kernels on them, compares the
// outputs bit for bit and prints a trace.
//
// Each check gets its own generator forked from the run seed by check
// index, so a run prints the same trace for a given seed whether it is
// sequential or parallel.
package verify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/hwycheck/gen"
	"github.com/ajroetker/hwycheck/internal/logutil"
	"github.com/ajroetker/hwycheck/lane"
	"github.com/ajroetker/hwycheck/optable"
)

// Options controls a verification run.
type Options struct {
	// Parallel is the number of concurrent checks. Values below 2 run
	// sequentially.
	Parallel int

	// Rounds repeats every descriptor with fresh operands. Default 1.
	Rounds int

	// Quiet suppresses the trace of passing checks. A failing check is
	// always printed.
	Quiet bool

	// Seed for the operand generator. 0 picks a fresh seed.
	Seed uint64

	// Out receives the trace. Default os.Stdout.
	Out io.Writer
}

func (o Options) withDefaults() Options {
	if o.Parallel < 1 {
		o.Parallel = 1
	}
	if o.Rounds < 1 {
		o.Rounds = 1
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	return o
}

// check is one descriptor run.
type check struct {
	table *optable.Table
	op    *optable.Descriptor
	round int
}

func plan(tables []optable.Table, rounds int) []check {
	var checks []check
	for i := range tables {
		t := &tables[i]
		for j := range t.Ops {
			for r := range rounds {
				checks = append(checks, check{table: t, op: &t.Ops[j], round: r})
			}
		}
	}
	return checks
}

// run allocates and fills the operands, invokes both kernels, compares
// their outputs and writes the trace to w. It returns the number of lanes
// compared.
func (c check) run(g *gen.Generator, w io.Writer, quiet bool) (int, error) {
	defer logutil.Since(time.Now(), "checked", "family", c.table.Family, "op", c.op.Name, "round", c.round)

	d := c.op
	ins := make([]lane.Buffer, len(d.Inputs))
	for i, op := range d.Inputs {
		ins[i] = op.New()
		g.Fill(ins[i], op.Policy)
	}

	vec := d.Output.New()
	d.Vector(vec, ins)
	ref := d.Output.New()
	d.Scalar(ref, ins)

	diff := lane.Diff(vec, ref)
	if !quiet || diff >= 0 {
		writeTrace(w, c.table.Family, d, ins, vec, ref)
	}
	if diff < 0 {
		return vec.Len(), nil
	}

	return 0, c.mismatch(diff, ins, vec, ref)
}

// mismatch describes the first differing lane of a check along with the
// operands that produced it.
func (c check) mismatch(diff int, ins []lane.Buffer, vec, ref lane.Buffer) *MismatchError {
	e := &MismatchError{
		Family: c.table.Family,
		Elem:   c.table.Elem,
		Op:     c.op.Name,
		Round:  c.round,
		Lane:   diff,
		Vector: laneOrMissing(vec, diff),
		Scalar: laneOrMissing(ref, diff),
	}
	for i, op := range c.op.Inputs {
		e.Inputs = append(e.Inputs, Input{Label: op.Label, Values: ins[i].String()})
	}
	return e
}

func laneOrMissing(b lane.Buffer, i int) string {
	if i < b.Len() {
		return b.Lane(i)
	}
	return "<missing>"
}

// writeTrace prints one check:
//
//	AVX2_CMP:cmp_gt
//	a = ...
//	b = ...
//	avx_c = ...
//	sisd_c = ...
func writeTrace(w io.Writer, family string, d *optable.Descriptor, ins []lane.Buffer, vec, ref lane.Buffer) {
	fmt.Fprintf(w, "%s:%s\n", family, d.Name)
	for i, op := range d.Inputs {
		fmt.Fprintf(w, "%s = %s\n", op.Label, ins[i])
	}
	fmt.Fprintf(w, "avx_%s = %s\n", d.Output.Label, vec)
	fmt.Fprintf(w, "sisd_%s = %s\n", d.Output.Label, ref)
}

// Run checks every descriptor of tables and stops at the first mismatch,
// which is returned as a *MismatchError. An empty selection passes
// trivially. The returned Summary covers the checks that completed.
func Run(ctx context.Context, tables []optable.Table, opts Options) (Summary, error) {
	opts = opts.withDefaults()
	start := time.Now()
	root := gen.New(opts.Seed)

	s := Summary{Seed: root.Seed()}
	for _, t := range tables {
		if t.Empty() {
			continue
		}
		s.Tables++
		if !optable.Native(t) {
			s.Portable++
		}
	}

	checks := plan(tables, opts.Rounds)
	slog.Debug("verifying", "tables", s.Tables, "checks", len(checks),
		"parallel", opts.Parallel, "rounds", opts.Rounds, "seed", s.Seed)

	var err error
	if opts.Parallel > 1 {
		err = runParallel(ctx, checks, root, opts, &s)
	} else {
		err = runSequential(ctx, checks, root, opts, &s)
	}
	s.Elapsed = time.Since(start)

	var me *MismatchError
	if errors.As(err, &me) {
		me.Seed = s.Seed
	}
	return s, err
}

func runSequential(ctx context.Context, checks []check, root *gen.Generator, opts Options, s *Summary) error {
	for i, c := range checks {
		if err := ctx.Err(); err != nil {
			return err
		}
		lanes, err := c.run(root.Fork(i), opts.Out, opts.Quiet)
		if err != nil {
			return err
		}
		s.Checks++
		s.Lanes += lanes
	}
	return nil
}

type result struct {
	trace bytes.Buffer
	lanes int
	done  bool
	err   error
}

// runParallel runs checks on a bounded errgroup. The first mismatch
// cancels the group; checks that have not started are skipped. Traces are
// buffered per check and flushed in plan order, up to the first failure.
func runParallel(ctx context.Context, checks []check, root *gen.Generator, opts Options, s *Summary) error {
	results := make([]result, len(checks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallel)
	for i, c := range checks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			r := &results[i]
			r.lanes, r.err = c.run(root.Fork(i), &r.trace, opts.Quiet)
			r.done = true
			return r.err
		})
	}
	waitErr := g.Wait()

	for i := range results {
		r := &results[i]
		if !r.done {
			continue
		}
		if _, err := r.trace.WriteTo(opts.Out); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		if r.err != nil {
			return r.err
		}
		s.Checks++
		s.Lanes += r.lanes
	}
	if waitErr != nil {
		return waitErr
	}
	return ctx.Err()
}
