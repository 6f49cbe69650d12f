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

package logutil

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withDefault(t *testing.T, l *slog.Logger) {
	t.Helper()
	prev := slog.Default()
	slog.SetDefault(l)
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestTraceLevel(t *testing.T) {
	var buf bytes.Buffer
	withDefault(t, NewLogger(&buf, LevelTrace))

	Trace("checked", "op", "avx2 add")
	out := buf.String()
	assert.Contains(t, out, "level=TRACE")
	assert.Contains(t, out, "source=logutil_test.go:")
	assert.Contains(t, out, `op="avx2 add"`)
}

func TestTraceFilteredAtInfo(t *testing.T) {
	var buf bytes.Buffer
	withDefault(t, NewLogger(&buf, slog.LevelInfo))

	Trace("hidden")
	Since(time.Now(), "hidden too")
	assert.Empty(t, buf.String())

	slog.Info("shown")
	assert.Contains(t, buf.String(), "level=INFO")
}

func TestSince(t *testing.T) {
	var buf bytes.Buffer
	withDefault(t, NewLogger(&buf, LevelTrace))

	Since(time.Now().Add(-time.Millisecond), "table done", "family", "AVX2_CMP")
	out := buf.String()
	assert.Contains(t, out, "msg=\"table done\"")
	assert.Contains(t, out, "family=AVX2_CMP")
	assert.Contains(t, out, "elapsed=")
	assert.Contains(t, out, "source=logutil_test.go:")
}
