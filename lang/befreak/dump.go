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

package befreak

import (
	"io"
	"strconv"

	"github.com/db47h/befreak/internal/bfi"
	"github.com/db47h/befreak/vm"
)

func dumpSlice(w io.Writer, prefix string, a []vm.Cell) {
	b := make([]byte, 0, 64)
	b = append(b, prefix...)
	for _, v := range a {
		b = append(b, ' ')
		b = strconv.AppendInt(b, int64(v), 10)
	}
	b = append(b, '\n')
	w.Write(b)
}

// DumpVM dumps the machine stacks, bottom first, to the specified io.Writer.
func DumpVM(i *vm.Instance, w io.Writer) error {
	ew := bfi.NewErrWriter(w)
	dumpSlice(ew, "main:", i.Main.Values())
	dumpSlice(ew, "control:", i.Control.Values())
	return ew.Err
}
