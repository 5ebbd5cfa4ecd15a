// This file is part of befreak - https://github.com/db47h/befreak
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
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
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/db47h/befreak/lang/befreak"
)

func TestPrintGraph(t *testing.T) {
	g, err := befreak.Graph("test", strings.NewReader("@(v\n  w"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err = printGraph(&buf, g); err != nil {
		t.Fatal(err)
	}
	// header and footer case depends on the table style
	out := strings.ToUpper(buf.String())
	for _, s := range []string{"BF_1_0_E_NORMAL *", "( V W", "HALT", "BLOCKS"} {
		if !strings.Contains(out, s) {
			t.Errorf("Missing %q in:\n%s", s, out)
		}
	}
}

func TestTTYInput(t *testing.T) {
	var out bytes.Buffer
	w := bufio.NewWriter(&out)
	w.WriteString("prompt> ")
	in := &ttyInput{bufio.NewReader(strings.NewReader("a\x04b")), w, true}
	r, _, err := in.ReadRune()
	if err != nil || r != 'a' {
		t.Fatalf("Expected 'a', got %q, %v", r, err)
	}
	if out.String() != "prompt> " {
		t.Errorf("Output not flushed before read: %q", out.String())
	}
	if _, _, err = in.ReadRune(); err != io.EOF {
		t.Errorf("Expected io.EOF on CTRL-D, got %v", err)
	}
	in.raw = false
	if r, _, err = in.ReadRune(); err != nil || r != 'b' {
		t.Errorf("Expected 'b', got %q, %v", r, err)
	}
}
