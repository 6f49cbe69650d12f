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

// Package gen fills operand buffers with random or structured values.
//
// A Generator is not safe for concurrent use. Parallel callers derive one
// per task with Fork, which also keeps a run reproducible from its seed
// regardless of scheduling.
package gen

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/ajroetker/hwycheck/lane"
)

// Ranges of the Uniform policy.
const (
	IntMin = -100
	IntMax = 100
)

// Policy selects how an operand is filled.
type Policy uint8

const (
	// Uniform draws every lane independently: floats in [-1, 1) and ints
	// in [IntMin, IntMax].
	Uniform Policy = iota

	// Permutation fills an index buffer with a random bijection on [0, N).
	Permutation

	// LaneMask sets every lane to all zeros or all ones (0 or -1).
	LaneMask

	// PackedMask fills a packed mask with random bits.
	PackedMask
)

func (p Policy) String() string {
	switch p {
	case Uniform:
		return "uniform"
	case Permutation:
		return "permutation"
	case LaneMask:
		return "lanemask"
	case PackedMask:
		return "packedmask"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// NewSeed returns a fresh nonzero seed mixing the clock with 64 bits from
// the system entropy source.
func NewSeed() uint64 {
	var b [8]byte
	_, _ = crand.Read(b[:])
	seed := uint64(time.Now().UnixNano()) ^ binary.LittleEndian.Uint64(b[:])
	if seed == 0 {
		seed = 1
	}
	return seed
}

// Generator produces operand values from a seeded PCG stream.
type Generator struct {
	seed uint64
	r    *rand.Rand
}

// New returns a generator for seed. A zero seed is replaced by NewSeed.
func New(seed uint64) *Generator {
	if seed == 0 {
		seed = NewSeed()
	}
	return &Generator{
		seed: seed,
		r:    rand.New(rand.NewPCG(seed, splitmix(seed))),
	}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Fork returns an independent generator for task i. Forks depend only on
// the parent's seed and i, never on how much of the parent was consumed.
func (g *Generator) Fork(i int) *Generator {
	s := splitmix(g.seed ^ splitmix(uint64(i)+1))
	if s == 0 {
		s = 1
	}
	return &Generator{seed: s, r: rand.New(rand.NewPCG(s, splitmix(s)))}
}

// Fill writes values into b according to p. It panics when p cannot fill
// b's kind, for example a LaneMask policy on a float buffer.
func (g *Generator) Fill(b lane.Buffer, p Policy) {
	switch p {
	case Uniform:
		g.uniform(b)
	case Permutation:
		switch s := b.(type) {
		case lane.Slice[int32]:
			permutation(g.r, s)
		case lane.Slice[int64]:
			permutation(g.r, s)
		default:
			badFill(b, p)
		}
	case LaneMask:
		switch s := b.(type) {
		case lane.Slice[int32]:
			laneMask(g.r, s)
		case lane.Slice[int64]:
			laneMask(g.r, s)
		default:
			badFill(b, p)
		}
	case PackedMask:
		switch s := b.(type) {
		case lane.Slice[uint8]:
			for i := range s {
				s[i] = uint8(g.r.Uint32())
			}
		case lane.Slice[uint16]:
			for i := range s {
				s[i] = uint16(g.r.Uint32())
			}
		default:
			badFill(b, p)
		}
	default:
		badFill(b, p)
	}
}

func (g *Generator) uniform(b lane.Buffer) {
	switch s := b.(type) {
	case lane.Slice[float32]:
		for i := range s {
			s[i] = 2*g.r.Float32() - 1
		}
	case lane.Slice[float64]:
		for i := range s {
			s[i] = 2*g.r.Float64() - 1
		}
	case lane.Slice[int32]:
		for i := range s {
			s[i] = int32(g.r.IntN(IntMax-IntMin+1) + IntMin)
		}
	case lane.Slice[int64]:
		for i := range s {
			s[i] = int64(g.r.IntN(IntMax-IntMin+1) + IntMin)
		}
	default:
		badFill(b, Uniform)
	}
}

func permutation[T int32 | int64](r *rand.Rand, s []T) {
	for i := range s {
		s[i] = T(i)
	}
	r.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

func laneMask[T int32 | int64](r *rand.Rand, s []T) {
	for i := range s {
		if r.Uint32()&1 != 0 {
			s[i] = -1
		} else {
			s[i] = 0
		}
	}
}

func badFill(b lane.Buffer, p Policy) {
	panic(fmt.Sprintf("gen: policy %v cannot fill a %v buffer", p, b.Kind()))
}

// splitmix is the SplitMix64 finalizer.
func splitmix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
