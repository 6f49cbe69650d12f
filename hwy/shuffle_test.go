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
	"reflect"
	"testing"
)

func TestReverse4(t *testing.T) {
	tests := []struct {
		name   string
		input  []int32
		expect []int32
	}{
		{
			name:   "8 lanes",
			input:  []int32{0, 1, 2, 3, 4, 5, 6, 7},
			expect: []int32{3, 2, 1, 0, 7, 6, 5, 4},
		},
		{
			name:   "16 lanes",
			input:  []int32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
			expect: []int32{3, 2, 1, 0, 7, 6, 5, 4, 11, 10, 9, 8, 15, 14, 13, 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Vec[int32]{data: tt.input}
			result := Reverse4(v)
			if !reflect.DeepEqual(result.data, tt.expect) {
				t.Errorf("Reverse4() = %v, want %v", result.data, tt.expect)
			}
		})
	}
}

func TestInterleaveLowerPerBlock(t *testing.T) {
	a := Vec[int32]{data: []int32{0, 1, 2, 3, 4, 5, 6, 7}}
	b := Vec[int32]{data: []int32{10, 11, 12, 13, 14, 15, 16, 17}}

	result := InterleaveLower(a, b)
	expect := []int32{0, 10, 1, 11, 4, 14, 5, 15}
	if !reflect.DeepEqual(result.data, expect) {
		t.Errorf("InterleaveLower() = %v, want %v", result.data, expect)
	}
}

func TestInterleaveUpperPerBlock(t *testing.T) {
	a := Vec[int32]{data: []int32{0, 1, 2, 3, 4, 5, 6, 7}}
	b := Vec[int32]{data: []int32{10, 11, 12, 13, 14, 15, 16, 17}}

	result := InterleaveUpper(a, b)
	expect := []int32{2, 12, 3, 13, 6, 16, 7, 17}
	if !reflect.DeepEqual(result.data, expect) {
		t.Errorf("InterleaveUpper() = %v, want %v", result.data, expect)
	}
}

func TestInterleaveFloat64(t *testing.T) {
	a := Vec[float64]{data: []float64{0, 1, 2, 3}}
	b := Vec[float64]{data: []float64{10, 11, 12, 13}}

	lo := InterleaveLower(a, b)
	hi := InterleaveUpper(a, b)
	if !reflect.DeepEqual(lo.data, []float64{0, 10, 2, 12}) {
		t.Errorf("InterleaveLower() = %v, want [0 10 2 12]", lo.data)
	}
	if !reflect.DeepEqual(hi.data, []float64{1, 11, 3, 13}) {
		t.Errorf("InterleaveUpper() = %v, want [1 11 3 13]", hi.data)
	}
}

func TestSwapAdjacentBlocks(t *testing.T) {
	tests := []struct {
		name   string
		input  []int32
		expect []int32
	}{
		{
			name:   "256-bit",
			input:  []int32{0, 1, 2, 3, 4, 5, 6, 7},
			expect: []int32{4, 5, 6, 7, 0, 1, 2, 3},
		},
		{
			name:   "512-bit",
			input:  []int32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
			expect: []int32{4, 5, 6, 7, 0, 1, 2, 3, 12, 13, 14, 15, 8, 9, 10, 11},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SwapAdjacentBlocks(Vec[int32]{data: tt.input})
			if !reflect.DeepEqual(result.data, tt.expect) {
				t.Errorf("SwapAdjacentBlocks() = %v, want %v", result.data, tt.expect)
			}
		})
	}
}

func TestTableLookupLanes(t *testing.T) {
	tbl := Vec[float32]{data: []float32{10, 11, 12, 13, 14, 15, 16, 17}}
	idx := Vec[int32]{data: []int32{7, 6, 5, 4, 3, 2, 1, 0}}

	result := TableLookupLanes(tbl, idx)
	expect := []float32{17, 16, 15, 14, 13, 12, 11, 10}
	if !reflect.DeepEqual(result.data, expect) {
		t.Errorf("TableLookupLanes() = %v, want %v", result.data, expect)
	}
}

func TestTableLookupLanesWrapsIndices(t *testing.T) {
	tbl := Vec[int32]{data: []int32{10, 11, 12, 13, 14, 15, 16, 17}}
	idx := Vec[int32]{data: []int32{8, 9, -1, -8, 15, 100, 1 << 20, 3}}

	result := TableLookupLanes(tbl, idx)
	expect := []int32{10, 11, 17, 10, 17, 14, 10, 13}
	if !reflect.DeepEqual(result.data, expect) {
		t.Errorf("TableLookupLanes() = %v, want %v", result.data, expect)
	}
}

func TestTableLookupLanesInt64Index(t *testing.T) {
	tbl := Vec[float64]{data: []float64{0, 1, 2, 3, 4, 5, 6, 7}}
	idx := Vec[int64]{data: []int64{1, 9, -1, 2, 3, 4, 5, 6}}

	result := TableLookupLanes(tbl, idx)
	expect := []float64{1, 1, 7, 2, 3, 4, 5, 6}
	if !reflect.DeepEqual(result.data, expect) {
		t.Errorf("TableLookupLanes() = %v, want %v", result.data, expect)
	}
}
