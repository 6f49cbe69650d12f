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

package lane

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Buffer is a fixed-length operand of a single kind.
type Buffer interface {
	Kind() Kind
	Len() int

	// Lane formats lane i the way the trace prints it.
	Lane(i int) string

	// Bits returns the raw bit pattern of lane i, zero-extended.
	Bits(i int) uint64

	// String returns all lanes separated by spaces.
	String() string
}

// Slice is the Buffer implementation for lanes of type T.
type Slice[T Elem] []T

// New allocates a zeroed buffer of n lanes of kind k. It panics on an
// invalid kind.
func New(k Kind, n int) Buffer {
	switch k {
	case Int32:
		return make(Slice[int32], n)
	case Float32:
		return make(Slice[float32], n)
	case Float64:
		return make(Slice[float64], n)
	case Int64:
		return make(Slice[int64], n)
	case Uint8:
		return make(Slice[uint8], n)
	case Uint16:
		return make(Slice[uint16], n)
	}
	panic(fmt.Sprintf("lane: cannot allocate buffer of kind %v", k))
}

// Of returns a buffer holding vals.
func Of[T Elem](vals ...T) Slice[T] {
	return Slice[T](vals)
}

// As returns the lanes of b as a []T. It panics if b does not hold T.
func As[T Elem](b Buffer) []T {
	s, ok := b.(Slice[T])
	if !ok {
		panic(fmt.Sprintf("lane: buffer of kind %v used as %v", b.Kind(), KindOf[T]()))
	}
	return s
}

func (s Slice[T]) Kind() Kind { return KindOf[T]() }

func (s Slice[T]) Len() int { return len(s) }

func (s Slice[T]) Lane(i int) string {
	switch v := any(s[i]).(type) {
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func (s Slice[T]) Bits(i int) uint64 {
	switch v := any(s[i]).(type) {
	case int32:
		return uint64(uint32(v))
	case float32:
		return uint64(math.Float32bits(v))
	case float64:
		return math.Float64bits(v)
	case int64:
		return uint64(v)
	case uint8:
		return uint64(v)
	case uint16:
		return uint64(v)
	}
	return 0
}

func (s Slice[T]) String() string {
	var sb strings.Builder
	for i := range s {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s.Lane(i))
	}
	return sb.String()
}

// Diff compares a and b bit for bit and returns the index of the first lane
// that differs, or -1 if they are identical. Floats compare by bit
// pattern, so two NaNs with the same payload are equal and +0 differs from
// -0. A length difference reports the first lane past the shorter buffer.
// It panics if the kinds differ.
func Diff(a, b Buffer) int {
	if a.Kind() != b.Kind() {
		panic(fmt.Sprintf("lane: comparing %v buffer with %v buffer", a.Kind(), b.Kind()))
	}
	n := min(a.Len(), b.Len())
	for i := range n {
		if a.Bits(i) != b.Bits(i) {
			return i
		}
	}
	if a.Len() != b.Len() {
		return n
	}
	return -1
}
