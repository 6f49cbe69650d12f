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

package hwy

import (
	"strconv"
	"unsafe"
)

// Tag represents a vector size tag that determines how many lanes
// are used in SIMD operations.
type Tag interface {
	// Width returns the width in bytes (16 for 128-bit, 32 for 256-bit, etc.)
	Width() int

	// Name returns a human-readable name for this tag ("128bit", "256bit", etc.)
	Name() string
}

// LanesOf returns how many T lanes fit in a vector described by d.
func LanesOf[T Lanes](d Tag) int {
	var dummy T
	return d.Width() / int(unsafe.Sizeof(dummy))
}

// widthTag is a Tag for a vector width only known at runtime.
type widthTag int

func (w widthTag) Width() int { return int(w) }

func (w widthTag) Name() string { return strconv.Itoa(int(w)*8) + "bit" }

// TagForBits returns a tag for a fixed vector of the given bit width.
// It panics unless bits is a positive multiple of 128.
func TagForBits(bits int) Tag {
	if bits <= 0 || bits%128 != 0 {
		panic("hwy: vector width must be a positive multiple of 128 bits, got " + strconv.Itoa(bits))
	}
	return widthTag(bits / 8)
}

// FixedTag128 describes a 128-bit vector (SSE, NEON). The AVX family
// uses it for integer lanes, which had no 256-bit arithmetic before AVX2.
type FixedTag128[T Lanes] struct{}

// Width returns 16 bytes (128 bits).
func (FixedTag128[T]) Width() int {
	return 16
}

// Name returns "128bit".
func (FixedTag128[T]) Name() string {
	return "128bit"
}

// FixedTag256 describes a 256-bit vector (AVX, AVX2).
type FixedTag256[T Lanes] struct{}

// Width returns 32 bytes (256 bits).
func (FixedTag256[T]) Width() int {
	return 32
}

// Name returns "256bit".
func (FixedTag256[T]) Name() string {
	return "256bit"
}

// FixedTag512 describes a 512-bit vector (AVX-512).
type FixedTag512[T Lanes] struct{}

// Width returns 64 bytes (512 bits).
func (FixedTag512[T]) Width() int {
	return 64
}

// Name returns "512bit".
func (FixedTag512[T]) Name() string {
	return "512bit"
}
