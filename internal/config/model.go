// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the graph model: a tree of modules, each declaring
// boundary ports, components, submodules and the links between them.
package config

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Model is the complete graph definition loaded from one or more files.
type Model struct {
	Root *Module
}

// NewModel returns a Model with an empty root module.
func NewModel() *Model {
	return &Model{Root: &Module{}}
}

// Source points back to where a definition was written.
type Source struct {
	File string
	Line int
}

func (s Source) String() string {
	if s.File == "" {
		return "<unknown>"
	}
	if s.Line == 0 {
		return s.File
	}
	return fmt.Sprintf("%s:%d", s.File, s.Line)
}

// Port declares a named port with its extents.
type Port struct {
	Name   string
	Shape  []int
	Source Source
}

// Component is one `component "kind" "name"` definition.
type Component struct {
	Kind      string
	Name      string
	InPorts   []*Port
	OutPorts  []*Port
	Arguments map[string]cty.Value
	Source    Source
}

// Module is a nested collection. The root module has an empty Name.
type Module struct {
	Name       string
	InPorts    []*Port
	OutPorts   []*Port
	Components []*Component
	Modules    []*Module
	Links      []*Link
	Source     Source
}

// Merge appends everything declared in other to m. Duplicates are left for
// Validate to report.
func (m *Module) Merge(other *Module) {
	if other == nil {
		return
	}
	m.InPorts = append(m.InPorts, other.InPorts...)
	m.OutPorts = append(m.OutPorts, other.OutPorts...)
	m.Components = append(m.Components, other.Components...)
	m.Modules = append(m.Modules, other.Modules...)
	m.Links = append(m.Links, other.Links...)
}
