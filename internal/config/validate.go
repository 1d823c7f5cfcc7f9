// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file holds the checks every loader relies on: names are valid path
// segments, no name is declared twice in one namespace, shapes are usable and
// link addresses parse.
package config

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/gridflow/internal/address"
	"github.com/specialistvlad/gridflow/internal/array"
)

// Validate checks the whole tree and reports every problem found.
func (m *Model) Validate() error {
	if m == nil || m.Root == nil {
		return errors.New("model has no root module")
	}
	var problems []error
	validateModule(m.Root, address.Address{}, &problems)
	return errors.Join(problems...)
}

// ArrayShape converts the declared extents into an array.Shape.
func (p *Port) ArrayShape() (array.Shape, error) {
	s, err := array.NewShape(p.Shape...)
	if err != nil {
		return array.Shape{}, fmt.Errorf("port '%s' (%s): %w", p.Name, p.Source, err)
	}
	return s, nil
}

func validateModule(m *Module, path address.Address, problems *[]error) {
	where := func(name string) string {
		return path.Child(name).String()
	}
	report := func(src Source, format string, args ...any) {
		*problems = append(*problems, fmt.Errorf("%s: %s", src, fmt.Sprintf(format, args...)))
	}

	validatePorts(m.InPorts, "in", path, problems)
	validatePorts(m.OutPorts, "out", path, problems)

	children := make(map[string]Source)
	for _, c := range m.Components {
		if err := address.ValidateSegment(c.Name); err != nil {
			report(c.Source, "component: %v", err)
			continue
		}
		if prev, dup := children[c.Name]; dup {
			report(c.Source, "duplicate name '%s', first declared at %s", where(c.Name), prev)
			continue
		}
		children[c.Name] = c.Source
		if c.Kind == "" {
			report(c.Source, "component '%s' has no kind", where(c.Name))
		}
		validatePorts(c.InPorts, "in", path.Child(c.Name), problems)
		validatePorts(c.OutPorts, "out", path.Child(c.Name), problems)
	}
	for _, sub := range m.Modules {
		if err := address.ValidateSegment(sub.Name); err != nil {
			report(sub.Source, "module: %v", err)
			continue
		}
		if prev, dup := children[sub.Name]; dup {
			report(sub.Source, "duplicate name '%s', first declared at %s", where(sub.Name), prev)
			continue
		}
		children[sub.Name] = sub.Source
		validateModule(sub, path.Child(sub.Name), problems)
	}
	for _, l := range m.Links {
		if _, err := address.Parse(l.From); err != nil {
			report(l.Source, "%s: from: %v", l.Kind, err)
		}
		if _, err := address.Parse(l.To); err != nil {
			report(l.Source, "%s: to: %v", l.Kind, err)
		}
	}
}

func validatePorts(ports []*Port, direction string, owner address.Address, problems *[]error) {
	seen := make(map[string]Source)
	for _, p := range ports {
		if err := address.ValidateSegment(p.Name); err != nil {
			*problems = append(*problems, fmt.Errorf("%s: %s port: %w", p.Source, direction, err))
			continue
		}
		if prev, dup := seen[p.Name]; dup {
			*problems = append(*problems, fmt.Errorf("%s: duplicate %s port '%s', first declared at %s",
				p.Source, direction, owner.Child(p.Name), prev))
			continue
		}
		seen[p.Name] = p.Source
		if _, err := p.ArrayShape(); err != nil {
			*problems = append(*problems, err)
		}
	}
}
