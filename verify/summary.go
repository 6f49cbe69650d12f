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

package verify

import (
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary counts what a run covered.
type Summary struct {
	// Tables is the number of non-empty tables selected.
	Tables int

	// Portable is how many of those have no native kernel on this host.
	Portable int

	// Checks is the number of descriptor runs that passed.
	Checks int

	// Lanes is the total number of output lanes compared.
	Lanes int

	Seed    uint64
	Elapsed time.Duration
}

var printer = message.NewPrinter(language.English)

func (s Summary) String() string {
	if s.Tables == 0 {
		return "no tables selected"
	}
	// The seed is not digit-grouped so it can be pasted into --seed.
	return printer.Sprintf("%d tables (%d portable), %d checks, %d lanes in %v, seed %v",
		s.Tables, s.Portable, s.Checks, s.Lanes, s.Elapsed.Round(time.Microsecond), strconv.FormatUint(s.Seed, 10))
}
