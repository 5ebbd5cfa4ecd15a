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

// Package befreak wires together the stages of the Befreak compiler: grid
// loading, control flow graph construction and code generation for the
// machine of package vm.
package befreak

import (
	"io"
	"log/slog"

	"github.com/db47h/befreak/cfg"
	"github.com/db47h/befreak/codegen"
	"github.com/db47h/befreak/grid"
	"github.com/db47h/befreak/vm"
	"github.com/pkg/errors"
)

type config struct {
	log *slog.Logger
}

// Option interface
type Option func(*config) error

// Logger sets the logger passed down to the compiler stages.
func Logger(l *slog.Logger) Option {
	return func(c *config) error {
		if l == nil {
			return errors.New("nil logger")
		}
		c.log = l
		return nil
	}
}

func newConfig(opts []Option) (*config, error) {
	c := &config{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Graph reads a Befreak program from r and returns its control flow graph.
// The name parameter is used only in error messages.
func Graph(name string, r io.Reader, opts ...Option) (*cfg.Graph, error) {
	c, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return graph(c, name, r)
}

func graph(c *config, name string, r io.Reader) (*cfg.Graph, error) {
	g, err := grid.Read(r)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	c.log.Debug("grid", "name", name, "width", g.Width(), "height", g.Height())
	cg, err := cfg.Build(g, cfg.Logger(c.log))
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return cg, nil
}

// Compile reads a Befreak program from r and compiles it. The name parameter
// is used only in error messages.
//
// Typed errors from the compiler stages (grid.ErrMissingStart,
// *grid.MultipleStartError, *lex.InvalidCharacterError,
// *lex.OutOfBoundsLiteralError and *codegen.UnsupportedInverseError) can be
// retrieved with errors.Cause.
func Compile(name string, r io.Reader, opts ...Option) (*vm.Program, error) {
	c, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	g, err := graph(c, name, r)
	if err != nil {
		return nil, err
	}
	p, err := codegen.Generate(g, codegen.Logger(c.log))
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	c.log.Debug("compiled", "name", name, "blocks", len(g.Blocks), "procs", len(p.Procs), "consts", len(p.Consts))
	return p, nil
}
