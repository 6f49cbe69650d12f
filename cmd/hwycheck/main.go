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

// Command hwycheck runs every vectorized operation against its scalar
// reference and fails on the first lane that differs.
//
// Usage:
//
//	hwycheck [check] [-f family] [-t int|float|double] [-p N] [-n rounds] [--seed S] [-q]
//	hwycheck list
//	hwycheck bench [--iterations N]
//	hwycheck cpu
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cobra.CheckErr(NewCLI().ExecuteContext(ctx))
}
