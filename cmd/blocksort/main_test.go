// Copyright 2025 go-blocksort Authors
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
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseKeys(t *testing.T) {
	got, err := parseKeys(strings.NewReader("5 3\n1\t4  2"))
	if err != nil {
		t.Fatalf("parseKeys: %v", err)
	}
	if diff := cmp.Diff([]uint32{5, 3, 1, 4, 2}, got); diff != "" {
		t.Errorf("parseKeys mismatch (-want +got):\n%s", diff)
	}
}

func TestParseKeysInvalid(t *testing.T) {
	for _, in := range []string{"1 -2", "1 x", "4294967296"} {
		if _, err := parseKeys(strings.NewReader(in)); err == nil {
			t.Errorf("parseKeys(%q) succeeded, want error", in)
		}
	}
}

func TestWriteBlocks(t *testing.T) {
	var buf bytes.Buffer
	writeBlocks(&buf, []uint32{0, 1, 2, 3, 4, 5}, 4)
	if got, want := buf.String(), "0 1 2 3\n4 5\n"; got != want {
		t.Errorf("writeBlocks = %q, want %q", got, want)
	}
}
