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

package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ajroetker/hwycheck/hwy"
	"github.com/ajroetker/hwycheck/internal/logutil"
)

var (
	// Set via HWYCHECK_DEBUG in the environment
	Debug bool
	// Set via HWYCHECK_DEBUG=2 in the environment
	Trace bool
	// Set via HWYCHECK_PARALLEL in the environment
	Parallel int
	// Set via HWYCHECK_ROUNDS in the environment
	Rounds int
	// Set via HWYCHECK_SEED in the environment
	Seed uint64
)

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"HWYCHECK_DEBUG":    {"HWYCHECK_DEBUG", Debug, "Show additional debug information (e.g. HWYCHECK_DEBUG=1, or 2 for per-check trace)"},
		"HWYCHECK_PARALLEL": {"HWYCHECK_PARALLEL", Parallel, "Number of descriptors checked concurrently (default 1)"},
		"HWYCHECK_ROUNDS":   {"HWYCHECK_ROUNDS", Rounds, "Rounds of fresh operands per operation (default 1)"},
		"HWYCHECK_SEED":     {"HWYCHECK_SEED", Seed, "Operand generator seed; 0 picks a fresh one"},
		"HWY_NO_SIMD":       {"HWY_NO_SIMD", hwy.NoSimdEnv(), "Force the portable vector path"},
	}
}

func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// Clean quotes and spaces from the value
func clean(key string) string {
	return strings.Trim(os.Getenv(key), "\"' ")
}

func init() {
	// default values
	Parallel = 1
	Rounds = 1

	LoadConfig()
}

func LoadConfig() {
	if debug := clean("HWYCHECK_DEBUG"); debug != "" {
		if d, err := strconv.ParseBool(debug); err == nil {
			Debug, Trace = d, false
		} else if n, err := strconv.Atoi(debug); err == nil {
			Debug, Trace = n > 0, n > 1
		} else {
			Debug = true
		}
	}

	if p := clean("HWYCHECK_PARALLEL"); p != "" {
		val, err := strconv.Atoi(p)
		if err != nil || val <= 0 {
			slog.Error("invalid setting must be greater than zero", "HWYCHECK_PARALLEL", p, "error", err)
		} else {
			Parallel = val
		}
	}

	if r := clean("HWYCHECK_ROUNDS"); r != "" {
		val, err := strconv.Atoi(r)
		if err != nil || val <= 0 {
			slog.Error("invalid setting must be greater than zero", "HWYCHECK_ROUNDS", r, "error", err)
		} else {
			Rounds = val
		}
	}

	if s := clean("HWYCHECK_SEED"); s != "" {
		val, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			slog.Error("invalid setting, ignoring", "HWYCHECK_SEED", s, "error", err)
		} else {
			Seed = val
		}
	}
}

// LogLevel returns the slog level implied by Debug and Trace.
func LogLevel() slog.Level {
	if Trace {
		return logutil.LevelTrace
	}
	if Debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
