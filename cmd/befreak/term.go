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
	"io"
)

// ttyInput reads from a terminal. It flushes pending output before each read
// so that prompts are visible. In raw mode, the terminal does not handle
// CTRL-D so we turn it into io.EOF ourselves.
type ttyInput struct {
	*bufio.Reader
	out *bufio.Writer
	raw bool
}

func (t *ttyInput) ReadRune() (r rune, size int, err error) {
	if err = t.out.Flush(); err != nil {
		return 0, 0, err
	}
	r, size, err = t.Reader.ReadRune()
	if err == nil && t.raw && r == 4 {
		return 0, 0, io.EOF
	}
	return r, size, err
}
