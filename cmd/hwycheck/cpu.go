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

package main

import (
	"fmt"
	"runtime"

	"github.com/klauspost/cpuid/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"

	"github.com/ajroetker/hwycheck/hwy"
	"github.com/ajroetker/hwycheck/internal/envconfig"
	"github.com/ajroetker/hwycheck/optable"
)

// feature pairs an hwy extension with what cpuid and x/sys/cpu report for
// it. The two detectors should agree; hwy follows x/sys/cpu.
type feature struct {
	hwy   hwy.Feature
	cpuid cpuid.FeatureID
	sys   *bool
}

var features = []feature{
	{hwy.FeatureAVX, cpuid.AVX, &cpu.X86.HasAVX},
	{hwy.FeatureAVX2, cpuid.AVX2, &cpu.X86.HasAVX2},
	{hwy.FeatureFMA, cpuid.FMA3, &cpu.X86.HasFMA},
	{hwy.FeatureAVX512F, cpuid.AVX512F, &cpu.X86.HasAVX512F},
	{hwy.FeatureAVX512DQ, cpuid.AVX512DQ, &cpu.X86.HasAVX512DQ},
	{hwy.FeatureAVX512BW, cpuid.AVX512BW, &cpu.X86.HasAVX512BW},
	{hwy.FeatureAVX512VL, cpuid.AVX512VL, &cpu.X86.HasAVX512VL},
}

func CPUHandler(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	info := newTable(out, nil)
	info.SetTablePadding(" ")
	info.SetAutoWrapText(false)
	info.AppendBulk([][]string{
		{"CPU:", cpuid.CPU.BrandName},
		{"Vendor:", cpuid.CPU.VendorString},
		{"Family/Model:", fmt.Sprintf("%d/%d", cpuid.CPU.Family, cpuid.CPU.Model)},
		{"Cores:", fmt.Sprintf("%d physical, %d logical", cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores)},
		{"Platform:", fmt.Sprintf("%s/%s, %d CPUs", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())},
		{"Dispatch:", fmt.Sprintf("%v (%d bytes, %d float32 lanes, %d float64 lanes)",
			hwy.CurrentLevel(), hwy.CurrentWidth(), hwy.MaxLanes[float32](), hwy.MaxLanes[float64]())},
		{"HWY_NO_SIMD:", fmt.Sprint(envconfig.Values()["HWY_NO_SIMD"])},
	})
	info.Render()
	fmt.Fprintln(out)

	host := hwy.HostFeatures()
	var data [][]string
	for _, f := range features {
		data = append(data, []string{
			f.hwy.String(),
			yesNo(cpuid.CPU.Supports(f.cpuid)),
			yesNo(*f.sys),
			yesNo(host.Has(f.hwy)),
		})
	}
	table := newTable(out, []string{"FEATURE", "CPUID", "X/SYS/CPU", "USED"})
	table.AppendBulk(data)
	table.Render()
	fmt.Fprintln(out)

	byFamily := optable.ByFamily(optable.All())
	data = data[:0]
	for _, name := range optable.Families() {
		tables := byFamily[name]
		if len(tables) == 0 {
			continue
		}
		native := 0
		for _, t := range tables {
			if optable.Native(t) {
				native++
			}
		}
		data = append(data, []string{
			name,
			tables[0].Requires.String(),
			yesNo(optable.Supported(tables[0])),
			fmt.Sprintf("%d/%d", native, len(tables)),
		})
	}
	table = newTable(out, []string{"FAMILY", "REQUIRES", "SUPPORTED", "NATIVE TABLES"})
	table.AppendBulk(data)
	table.Render()
	return nil
}
