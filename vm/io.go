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

package vm

import (
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var errNoInput = errors.New("no input")

type flusher interface {
	Flush() error
}

type runeWriter interface {
	WriteRune(r rune) (size int, err error)
}

// writeCell writes c as a rune to the output. Without an output, the cell is
// consumed and discarded.
func (i *Instance) writeCell(c Cell) {
	if i.output == nil {
		return
	}
	if _, err := i.output.WriteRune(rune(c)); err != nil {
		panic(errors.Wrap(err, "write failed"))
	}
}

// readCell reads the next rune from the input stack. Running out of input
// panics with an error whose cause is io.EOF.
func (i *Instance) readCell() Cell {
	if i.input == nil {
		panic(errors.Wrap(errNoInput, "read failed"))
	}
	r, size, err := i.input.ReadRune()
	if size == 0 {
		if err == nil {
			err = errNoInput
		}
		panic(errors.Wrap(err, "read failed"))
	}
	return Cell(r)
}

// byteWriter adapts a plain io.Writer to runeWriter by UTF-8 encoding cells.
type byteWriter struct {
	io.Writer
}

func (w *byteWriter) WriteRune(r rune) (int, error) {
	var b [utf8.UTFMax]byte
	return w.Writer.Write(b[:utf8.EncodeRune(b[:], r)])
}

func (w *byteWriter) Flush() error {
	if f, ok := w.Writer.(flusher); ok {
		return f.Flush()
	}
	return nil
}

func newWriter(w io.Writer) runeWriter {
	switch ww := w.(type) {
	case nil:
		return nil
	case runeWriter:
		return ww
	default:
		return &byteWriter{w}
	}
}

// byteReader decodes UTF-8 from a plain io.Reader one byte at a time, so
// that nothing past the current rune is consumed from an interactive source.
type byteReader struct {
	io.Reader
}

func (r *byteReader) ReadRune() (rune, int, error) {
	var (
		b   [utf8.UTFMax]byte
		n   int
		err error
	)
	for n < utf8.UTFMax && err == nil && !utf8.FullRune(b[:n]) {
		var k int
		k, err = r.Reader.Read(b[n : n+1])
		n += k
	}
	if n == 0 {
		return 0, 0, err
	}
	c, size := utf8.DecodeRune(b[:n])
	return c, size, err
}

func (r *byteReader) Close() error {
	if c, ok := r.Reader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func newRuneReader(r io.Reader) io.RuneReader {
	switch rr := r.(type) {
	case nil:
		return nil
	case io.RuneReader:
		return rr
	default:
		return &byteReader{r}
	}
}

// inputStack reads from the most recently pushed source first. Exhausted
// sources are closed and popped; io.EOF is only reported once all of them
// are.
type inputStack []io.RuneReader

func (s *inputStack) ReadRune() (rune, int, error) {
	for len(*s) > 0 {
		top := (*s)[len(*s)-1]
		r, size, err := top.ReadRune()
		if size > 0 {
			if err == io.EOF {
				err = nil
			}
			return r, size, err
		}
		if err != io.EOF {
			return r, size, err
		}
		if c, ok := top.(io.Closer); ok {
			c.Close()
		}
		*s = (*s)[:len(*s)-1]
	}
	return 0, 0, io.EOF
}

// PushInput sets r as the current input for the machine. When this reader
// reaches EOF, the previously pushed reader will be used.
func (i *Instance) PushInput(r io.Reader) {
	switch in := i.input.(type) {
	case nil:
		i.input = newRuneReader(r)
	case *inputStack:
		*in = append(*in, newRuneReader(r))
	default:
		i.input = &inputStack{in, newRuneReader(r)}
	}
}
