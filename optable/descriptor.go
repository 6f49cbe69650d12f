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

// Package optable declares the checked operations. Each family builder
// returns a Table of Descriptors for one element type, pairing the
// vectorized kernel with its scalar reference.
package optable

import (
	"fmt"

	"github.com/ajroetker/hwycheck/gen"
	"github.com/ajroetker/hwycheck/hwy"
	"github.com/ajroetker/hwycheck/kernels"
	"github.com/ajroetker/hwycheck/lane"
)

// Operand describes one input or output buffer of an operation.
type Operand struct {
	Label  string
	Kind   lane.Kind
	Lanes  int
	Policy gen.Policy
}

// New allocates a zeroed buffer for the operand.
func (o Operand) New() lane.Buffer {
	return lane.New(o.Kind, o.Lanes)
}

// Kernel runs one implementation of an operation, reading ins and writing
// out. The buffers must match the descriptor's operands.
type Kernel func(out lane.Buffer, ins []lane.Buffer)

// Descriptor is one checked operation. Vector and Scalar take the same
// buffers and must produce bit-identical output.
//
// NaN lanes are compared by bit pattern too. Hardware FMA may return a
// different NaN payload than the scalar reference when an operand is NaN,
// so the fused ops only hold to this rule for finite operands such as the
// ones gen.Uniform produces.
type Descriptor struct {
	Name   string
	Inputs []Operand
	Output Operand
	Vector Kernel
	Scalar Kernel

	// Native is set when Vector runs an archsimd kernel on this host.
	Native bool
}

func (d Descriptor) native(op kernels.Op, k lane.Kind, w lane.Width) Descriptor {
	d.Native = kernels.IsNative(op, k, w)
	return d
}

func checkOperand[T lane.Elem](o Operand) {
	if k := lane.KindOf[T](); o.Kind != k {
		panic(fmt.Sprintf("optable: operand %q declared %v but kernel takes %v", o.Label, o.Kind, k))
	}
}

// Unary builds a one-input descriptor from typed kernels.
func Unary[A, O lane.Elem](name string, a, out Operand, vec, ref func(dst []O, a []A)) Descriptor {
	checkOperand[A](a)
	checkOperand[O](out)
	wrap := func(f func(dst []O, a []A)) Kernel {
		return func(out lane.Buffer, ins []lane.Buffer) {
			f(lane.As[O](out), lane.As[A](ins[0]))
		}
	}
	return Descriptor{
		Name:   name,
		Inputs: []Operand{a},
		Output: out,
		Vector: wrap(vec),
		Scalar: wrap(ref),
	}
}

// Binary builds a two-input descriptor from typed kernels.
func Binary[A, B, O lane.Elem](name string, a, b, out Operand, vec, ref func(dst []O, a []A, b []B)) Descriptor {
	checkOperand[A](a)
	checkOperand[B](b)
	checkOperand[O](out)
	wrap := func(f func(dst []O, a []A, b []B)) Kernel {
		return func(out lane.Buffer, ins []lane.Buffer) {
			f(lane.As[O](out), lane.As[A](ins[0]), lane.As[B](ins[1]))
		}
	}
	return Descriptor{
		Name:   name,
		Inputs: []Operand{a, b},
		Output: out,
		Vector: wrap(vec),
		Scalar: wrap(ref),
	}
}

// Ternary builds a three-input descriptor from typed kernels.
func Ternary[A, B, C, O lane.Elem](name string, a, b, c, out Operand, vec, ref func(dst []O, a []A, b []B, c []C)) Descriptor {
	checkOperand[A](a)
	checkOperand[B](b)
	checkOperand[C](c)
	checkOperand[O](out)
	wrap := func(f func(dst []O, a []A, b []B, c []C)) Kernel {
		return func(out lane.Buffer, ins []lane.Buffer) {
			f(lane.As[O](out), lane.As[A](ins[0]), lane.As[B](ins[1]), lane.As[C](ins[2]))
		}
	}
	return Descriptor{
		Name:   name,
		Inputs: []Operand{a, b, c},
		Output: out,
		Vector: wrap(vec),
		Scalar: wrap(ref),
	}
}

// Table is the ordered list of operations one family defines for one
// element type. Tables are immutable once built.
type Table struct {
	Family   string
	Elem     lane.Kind
	Width    lane.Width
	Requires hwy.Feature
	Ops      []Descriptor
}

// Lanes returns the element lane count of the table's vectors.
func (t Table) Lanes() int {
	return t.Width.Lanes(t.Elem)
}

// Empty reports whether the family defines nothing for this element type.
func (t Table) Empty() bool {
	return len(t.Ops) == 0
}

func (t Table) String() string {
	return t.Family + "/" + t.Elem.String()
}

// operand returns a full-width operand of T lanes.
func operand[T lane.Elem](label string, w lane.Width, p gen.Policy) Operand {
	k := lane.KindOf[T]()
	return Operand{Label: label, Kind: k, Lanes: w.Lanes(k), Policy: p}
}

// packed returns a single-lane packed mask operand.
func packed[P lane.Packed](label string, p gen.Policy) Operand {
	return Operand{Label: label, Kind: lane.KindOf[P](), Lanes: 1, Policy: p}
}
