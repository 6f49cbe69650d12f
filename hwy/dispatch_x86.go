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

//go:build amd64

package hwy

import "golang.org/x/sys/cpu"

// detectX86Features reads the extension flags from CPUID via x/sys/cpu.
// AVX-512 is only reported when the OS saves the ZMM state, which
// cpu.X86.HasAVX512F already accounts for.
func detectX86Features() Feature {
	var f Feature
	if cpu.X86.HasAVX {
		f |= FeatureAVX
	}
	if cpu.X86.HasAVX2 {
		f |= FeatureAVX2
	}
	if cpu.X86.HasFMA {
		f |= FeatureFMA
	}
	if cpu.X86.HasAVX512F {
		f |= FeatureAVX512F
	}
	if cpu.X86.HasAVX512DQ {
		f |= FeatureAVX512DQ
	}
	if cpu.X86.HasAVX512BW {
		f |= FeatureAVX512BW
	}
	if cpu.X86.HasAVX512VL {
		f |= FeatureAVX512VL
	}
	return f
}
