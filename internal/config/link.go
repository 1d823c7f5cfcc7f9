// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines links. Data flows along a link from the From port to the
// To port: the To port is re-pointed at the cell of the From port. The kind
// says which port directions are involved.
package config

import "fmt"

// LinkKind selects which pair of port directions a link joins.
type LinkKind int

const (
	// Connect feeds an in-port from an out-port.
	Connect LinkKind = iota
	// AliasIn feeds an in-port from another in-port. It carries a module's
	// boundary input down to a child.
	AliasIn
	// AliasOut feeds an out-port from another out-port. It lifts a child's
	// output up to the module boundary.
	AliasOut
)

// String returns the block name used in graph files.
func (k LinkKind) String() string {
	switch k {
	case Connect:
		return "connect"
	case AliasIn:
		return "alias_in"
	case AliasOut:
		return "alias_out"
	default:
		return fmt.Sprintf("LinkKind(%d)", int(k))
	}
}

// ParseLinkKind is the inverse of LinkKind.String.
func ParseLinkKind(s string) (LinkKind, error) {
	switch s {
	case "connect":
		return Connect, nil
	case "alias_in":
		return AliasIn, nil
	case "alias_out":
		return AliasOut, nil
	}
	return 0, fmt.Errorf("unknown link kind %q", s)
}

// Link is one wiring statement. From and To are port addresses relative to
// the module that declares the link: "c1.out" for a port of a child, "in"
// for the module's own boundary.
type Link struct {
	Kind   LinkKind
	From   string
	To     string
	Source Source
}

func (l *Link) String() string {
	return fmt.Sprintf("%s %s -> %s", l.Kind, l.From, l.To)
}
