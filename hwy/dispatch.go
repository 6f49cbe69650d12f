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
	"os"
	"strconv"
	"strings"
	"unsafe"
)

// DispatchLevel represents the current SIMD instruction set being used.
type DispatchLevel int

const (
	// DispatchScalar indicates no SIMD, pure Go implementation.
	DispatchScalar DispatchLevel = iota

	// DispatchSSE2 indicates SSE2 instructions (x86-64 baseline).
	DispatchSSE2

	// DispatchAVX2 indicates AVX2 instructions (256-bit SIMD).
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512 instructions (512-bit SIMD).
	DispatchAVX512

	// DispatchNEON indicates ARM NEON instructions (128-bit SIMD).
	DispatchNEON
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchSSE2:
		return "sse2"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	case DispatchNEON:
		return "neon"
	default:
		return "unknown"
	}
}

// currentLevel is the detected SIMD level for this runtime.
// Set by init() in dispatch_*.go files.
var currentLevel DispatchLevel

// currentWidth is the SIMD register width in bytes for the current level.
// Set by init() in dispatch_*.go files.
var currentWidth int

// CurrentLevel returns the SIMD instruction set being used.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the SIMD register width in bytes.
// For example: 16 for SSE2/NEON, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return currentWidth
}

// NoSimdEnv checks if the HWY_NO_SIMD environment variable is set.
// When set, the dispatch level is forced to scalar and no CPU features are
// reported, so every caller takes its portable path.
func NoSimdEnv() bool {
	val := os.Getenv("HWY_NO_SIMD")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// Feature is a set of x86 vector extensions.
type Feature uint32

const (
	FeatureAVX Feature = 1 << iota
	FeatureAVX2
	FeatureFMA
	FeatureAVX512F
	FeatureAVX512DQ
	FeatureAVX512BW
	FeatureAVX512VL
)

var featureNames = []struct {
	f    Feature
	name string
}{
	{FeatureAVX, "avx"},
	{FeatureAVX2, "avx2"},
	{FeatureFMA, "fma"},
	{FeatureAVX512F, "avx512f"},
	{FeatureAVX512DQ, "avx512dq"},
	{FeatureAVX512BW, "avx512bw"},
	{FeatureAVX512VL, "avx512vl"},
}

// Has reports whether every feature in want is present in f.
func (f Feature) Has(want Feature) bool {
	return f&want == want
}

// Names returns the names of the features in f, in a fixed order.
func (f Feature) Names() []string {
	var names []string
	for _, fn := range featureNames {
		if f&fn.f != 0 {
			names = append(names, fn.name)
		}
	}
	return names
}

// String joins the feature names with "+", or returns "none".
func (f Feature) String() string {
	names := f.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}

// hostFeatures holds the extensions the CPU reports.
// Set by init() in dispatch_*.go files.
var hostFeatures Feature

// HostFeatures returns the vector extensions detected on this CPU.
// It is empty when HWY_NO_SIMD is set or on non-x86 hosts.
func HostFeatures() Feature {
	return hostFeatures
}

// MaxLanes returns the maximum number of lanes for type T with the current SIMD width.
//
// For example, with AVX2 (256 bits / 32 bytes):
//   - float32: 32/4 = 8 lanes
//   - float64: 32/8 = 4 lanes
//   - int32: 32/4 = 8 lanes
func MaxLanes[T Lanes]() int {
	var dummy T
	elementSize := int(unsafe.Sizeof(dummy))
	if elementSize == 0 {
		return 0
	}
	return currentWidth / elementSize
}
