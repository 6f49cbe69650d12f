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
	"fmt"
	"strings"

	"github.com/ajroetker/hwycheck/lane"
)

// Input is one operand of a failing check, as printed in the trace.
type Input struct {
	Label  string
	Values string
}

// MismatchError reports the first lane where the vectorized and scalar
// implementations of an operation disagree.
type MismatchError struct {
	Family string
	Elem   lane.Kind
	Op     string
	Round  int

	// Lane is the first diverging lane. Vector and Scalar hold its two
	// values.
	Lane   int
	Vector string
	Scalar string

	Inputs []Input

	// Seed replays the run that found the mismatch.
	Seed uint64
}

func (e *MismatchError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:%s (%v) round %d: lane %d: vector %s, scalar %s",
		e.Family, e.Op, e.Elem, e.Round, e.Lane, e.Vector, e.Scalar)
	for _, in := range e.Inputs {
		fmt.Fprintf(&sb, "; %s = [%s]", in.Label, in.Values)
	}
	fmt.Fprintf(&sb, " (seed %d)", e.Seed)
	return sb.String()
}
