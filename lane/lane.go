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

// Package lane describes the element types the harness checks: their
// sizes, lane counts at each vector width, the mask and index types that
// go with them, and typed operand buffers.
package lane

import (
	"fmt"
	"strings"
)

// Kind identifies an element type.
type Kind uint8

const (
	Invalid Kind = iota
	Int32
	Float32
	Float64

	// Derived kinds appear only as mask, index or packed output operands.
	Int64
	Uint8
	Uint16
)

// Elements lists the element types tables are built for, in report order.
var Elements = []Kind{Int32, Float32, Float64}

var kindNames = [...]string{
	Invalid: "invalid",
	Int32:   "int",
	Float32: "float",
	Float64: "double",
	Int64:   "int64",
	Uint8:   "uint8",
	Uint16:  "uint16",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Size returns the byte width of one lane.
func (k Kind) Size() int {
	switch k {
	case Int32, Float32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8:
		return 1
	case Uint16:
		return 2
	default:
		return 0
	}
}

// IsFloat reports whether k is a floating-point kind.
func (k Kind) IsFloat() bool {
	return k == Float32 || k == Float64
}

// LaneMask returns the kind of a per-lane comparison mask for k. It has
// the same byte width as k.
func (k Kind) LaneMask() Kind {
	if k.Size() == 8 {
		return Int64
	}
	return Int32
}

// IndexKind returns the kind of a permute index vector for k.
func (k Kind) IndexKind() Kind {
	return k.LaneMask()
}

// PackedMask returns the unsigned kind that holds one bit per lane of k at
// width w.
func PackedMask(k Kind, w Width) Kind {
	if w.Lanes(k) <= 8 {
		return Uint8
	}
	return Uint16
}

// ParseKind accepts the report names ("int", "float", "double") and the Go
// names of the element types.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "int", "int32", "i32":
		return Int32, nil
	case "float", "float32", "f32":
		return Float32, nil
	case "double", "float64", "f64":
		return Float64, nil
	}
	return Invalid, fmt.Errorf("unknown element type %q (want int, float or double)", s)
}

// Width is a vector register width in bits.
type Width int

const (
	W128 Width = 128
	W256 Width = 256
	W512 Width = 512
)

// Bytes returns the width in bytes.
func (w Width) Bytes() int {
	return int(w) / 8
}

// Lanes returns how many k lanes fit in one vector of width w.
func (w Width) Lanes(k Kind) int {
	if k.Size() == 0 {
		return 0
	}
	return w.Bytes() / k.Size()
}

func (w Width) String() string {
	return fmt.Sprintf("%d", int(w))
}

// Elem is the closed set of Go types a lane can hold.
type Elem interface {
	int32 | float32 | float64 | int64 | uint8 | uint16
}

// Element is the set of element types operations are defined on.
type Element interface {
	int32 | float32 | float64
}

// Float is the set of floating-point element types.
type Float interface {
	float32 | float64
}

// Mask is the set of per-lane mask and index types.
type Mask interface {
	int32 | int64
}

// Packed is the set of one-bit-per-lane mask types.
type Packed interface {
	uint8 | uint16
}

// KindOf returns the Kind of T.
func KindOf[T Elem]() Kind {
	var zero T
	switch any(zero).(type) {
	case int32:
		return Int32
	case float32:
		return Float32
	case float64:
		return Float64
	case int64:
		return Int64
	case uint8:
		return Uint8
	default:
		return Uint16
	}
}
