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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ajroetker/hwycheck/internal/envconfig"
	"github.com/ajroetker/hwycheck/internal/logutil"
	"github.com/ajroetker/hwycheck/lane"
	"github.com/ajroetker/hwycheck/optable"
	"github.com/ajroetker/hwycheck/verify"
)

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hwycheck",
		Short: "Check vectorized kernels against their scalar references",
		Args:  cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true

			switch v, _ := cmd.Flags().GetCount("verbose"); {
			case v > 1:
				envconfig.Debug, envconfig.Trace = true, true
			case v == 1:
				envconfig.Debug = true
			}
			slog.SetDefault(logutil.NewLogger(cmd.ErrOrStderr(), envconfig.LogLevel()))
		},
		RunE: CheckHandler,
	}
	rootCmd.PersistentFlags().CountP("verbose", "v", "Log debug information to stderr (-vv adds a trace line per check)")
	addSelectFlags(rootCmd)
	addCheckFlags(rootCmd)

	cobra.EnableCommandSorting = false

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Run every selected operation and compare vector and scalar results",
		Args:  cobra.NoArgs,
		RunE:  CheckHandler,
	}
	addSelectFlags(checkCmd)
	addCheckFlags(checkCmd)
	checkCmd.SetUsageTemplate(checkCmd.UsageTemplate() + envUsage())

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List operation tables",
		Args:    cobra.NoArgs,
		RunE:    ListHandler,
	}
	addSelectFlags(listCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Time vector and scalar kernels",
		Args:  cobra.NoArgs,
		RunE:  BenchHandler,
	}
	addSelectFlags(benchCmd)
	benchCmd.Flags().Int("iterations", verify.DefaultIterations, "Kernel calls timed per operation")
	benchCmd.Flags().Uint64("seed", envconfig.Seed, "Operand generator seed (0 picks a fresh one)")

	cpuCmd := &cobra.Command{
		Use:   "cpu",
		Short: "Show detected CPU features and which families run natively",
		Args:  cobra.NoArgs,
		RunE:  CPUHandler,
	}

	rootCmd.AddCommand(
		checkCmd,
		listCmd,
		benchCmd,
		cpuCmd,
	)

	return rootCmd
}

func addSelectFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("family", "f", nil, "Families to run (default all)")
	cmd.Flags().StringSliceP("type", "t", nil, "Element types to run: int, float, double (default all)")
	cmd.Flags().Bool("native-only", false, "Skip tables with no native kernel on this CPU")
}

func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("parallel", "p", envconfig.Parallel, "Operations checked concurrently")
	cmd.Flags().IntP("rounds", "n", envconfig.Rounds, "Rounds of fresh operands per operation")
	cmd.Flags().Uint64("seed", envconfig.Seed, "Operand generator seed (0 picks a fresh one)")
	cmd.Flags().BoolP("quiet", "q", false, "Only print the trace of a failing operation")
}

func envUsage() string {
	vars := envconfig.AsMap()
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var sb strings.Builder
	sb.WriteString("\nEnvironment Variables:\n")
	for _, k := range keys {
		fmt.Fprintf(&sb, "      %-20s %s\n", vars[k].Name, vars[k].Description)
	}
	return sb.String()
}

func selectTables(cmd *cobra.Command) ([]optable.Table, error) {
	families, err := cmd.Flags().GetStringSlice("family")
	if err != nil {
		return nil, err
	}
	names, err := cmd.Flags().GetStringSlice("type")
	if err != nil {
		return nil, err
	}
	nativeOnly, err := cmd.Flags().GetBool("native-only")
	if err != nil {
		return nil, err
	}

	if unknown := optable.Unknown(families); len(unknown) > 0 {
		slog.Warn("ignoring unknown families", "families", unknown, "known", optable.Families())
	}

	var kinds []lane.Kind
	for _, n := range names {
		k, err := lane.ParseKind(n)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}

	return optable.Select(optable.Filter{Families: families, Types: kinds, NativeOnly: nativeOnly}), nil
}

func CheckHandler(cmd *cobra.Command, _ []string) error {
	tables, err := selectTables(cmd)
	if err != nil {
		return err
	}

	var opts verify.Options
	if opts.Parallel, err = cmd.Flags().GetInt("parallel"); err != nil {
		return err
	}
	if opts.Rounds, err = cmd.Flags().GetInt("rounds"); err != nil {
		return err
	}
	if opts.Seed, err = cmd.Flags().GetUint64("seed"); err != nil {
		return err
	}
	if opts.Quiet, err = cmd.Flags().GetBool("quiet"); err != nil {
		return err
	}
	opts.Out = cmd.OutOrStdout()

	s, err := verify.Run(cmd.Context(), tables, opts)
	if err != nil {
		var me *verify.MismatchError
		if errors.As(err, &me) {
			return fmt.Errorf("FAIL: %w\nrerun with --seed %d to reproduce", err, me.Seed)
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "PASS:", s)
	return nil
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	return table
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func ListHandler(cmd *cobra.Command, _ []string) error {
	tables, err := selectTables(cmd)
	if err != nil {
		return err
	}

	var data [][]string
	for _, t := range tables {
		data = append(data, []string{
			t.Family,
			t.Elem.String(),
			t.Width.String(),
			fmt.Sprint(t.Lanes()),
			fmt.Sprint(len(t.Ops)),
			t.Requires.String(),
			yesNo(optable.Native(t)),
		})
	}

	table := newTable(cmd.OutOrStdout(), []string{"FAMILY", "TYPE", "WIDTH", "LANES", "OPS", "REQUIRES", "NATIVE"})
	table.AppendBulk(data)
	table.Render()
	return nil
}

func BenchHandler(cmd *cobra.Command, _ []string) error {
	tables, err := selectTables(cmd)
	if err != nil {
		return err
	}
	var opts verify.BenchOptions
	if opts.Iterations, err = cmd.Flags().GetInt("iterations"); err != nil {
		return err
	}
	if opts.Seed, err = cmd.Flags().GetUint64("seed"); err != nil {
		return err
	}

	results, err := verify.Bench(cmd.Context(), tables, opts)
	if err != nil {
		return err
	}

	var data [][]string
	for _, r := range results {
		data = append(data, []string{
			r.Family,
			r.Elem.String(),
			r.Op,
			yesNo(r.Native),
			fmt.Sprintf("%.1fns", r.VectorNs),
			fmt.Sprintf("%.1fns", r.ScalarNs),
			fmt.Sprintf("%.2fx", r.Speedup()),
		})
	}

	table := newTable(cmd.OutOrStdout(), []string{"FAMILY", "TYPE", "OP", "NATIVE", "VECTOR", "SCALAR", "SPEEDUP"})
	table.AppendBulk(data)
	table.Render()
	return nil
}
