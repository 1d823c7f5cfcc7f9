// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file decodes module, component, port and link blocks into the
// format-agnostic config model. Every block is decoded against an explicit
// schema, so unknown attributes and blocks are reported with their location.
package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/gridflow/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// moduleBodySchema describes both a file body and a `module` block body.
var moduleBodySchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "in", LabelNames: []string{"name"}},
		{Type: "out", LabelNames: []string{"name"}},
		{Type: "component", LabelNames: []string{"kind", "name"}},
		{Type: "module", LabelNames: []string{"name"}},
		{Type: "connect"},
		{Type: "alias_in"},
		{Type: "alias_out"},
	},
}

var componentBodySchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "in", LabelNames: []string{"name"}},
		{Type: "out", LabelNames: []string{"name"}},
		{Type: "arguments"},
	},
}

var portBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "shape", Required: true},
	},
}

var linkBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "from", Required: true},
		{Name: "to", Required: true},
	},
}

func sourceOf(r hcl.Range) config.Source {
	return config.Source{File: r.Filename, Line: r.Start.Line}
}

// parseModuleBody fills m from a module body. It is used for the top level
// of every file and, recursively, for `module` blocks.
func parseModuleBody(body hcl.Body, m *config.Module) hcl.Diagnostics {
	content, diags := body.Content(moduleBodySchema)
	if diags.HasErrors() {
		return diags
	}

	for _, block := range content.Blocks {
		switch block.Type {
		case "in":
			p, portDiags := parsePort(block)
			diags = append(diags, portDiags...)
			if p != nil {
				m.InPorts = append(m.InPorts, p)
			}
		case "out":
			p, portDiags := parsePort(block)
			diags = append(diags, portDiags...)
			if p != nil {
				m.OutPorts = append(m.OutPorts, p)
			}
		case "component":
			c, compDiags := parseComponent(block)
			diags = append(diags, compDiags...)
			if c != nil {
				m.Components = append(m.Components, c)
			}
		case "module":
			sub := &config.Module{Name: block.Labels[0], Source: sourceOf(block.DefRange)}
			diags = append(diags, parseModuleBody(block.Body, sub)...)
			m.Modules = append(m.Modules, sub)
		case "connect", "alias_in", "alias_out":
			l, linkDiags := parseLink(block)
			diags = append(diags, linkDiags...)
			if l != nil {
				m.Links = append(m.Links, l)
			}
		}
	}
	return diags
}

func parseComponent(block *hcl.Block) (*config.Component, hcl.Diagnostics) {
	c := &config.Component{
		Kind:   block.Labels[0],
		Name:   block.Labels[1],
		Source: sourceOf(block.DefRange),
	}

	content, diags := block.Body.Content(componentBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	for _, pb := range content.Blocks.OfType("in") {
		p, portDiags := parsePort(pb)
		diags = append(diags, portDiags...)
		if p != nil {
			c.InPorts = append(c.InPorts, p)
		}
	}
	for _, pb := range content.Blocks.OfType("out") {
		p, portDiags := parsePort(pb)
		diags = append(diags, portDiags...)
		if p != nil {
			c.OutPorts = append(c.OutPorts, p)
		}
	}

	argBlock, argDiags := FindUniqueBlock(content.Blocks, "arguments")
	diags = append(diags, argDiags...)
	if argBlock != nil {
		args, valDiags := parseArguments(argBlock)
		diags = append(diags, valDiags...)
		c.Arguments = args
	}

	return c, diags
}

// parseArguments evaluates every attribute of an `arguments` block. Values
// must be literals; there is no evaluation context.
func parseArguments(block *hcl.Block) (map[string]cty.Value, hcl.Diagnostics) {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	args := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		args[name] = val
	}
	return args, diags
}

func parsePort(block *hcl.Block) (*config.Port, hcl.Diagnostics) {
	content, diags := block.Body.Content(portBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	var shape []int
	decodeDiags := gohcl.DecodeExpression(content.Attributes["shape"].Expr, nil, &shape)
	diags = append(diags, decodeDiags...)
	if decodeDiags.HasErrors() {
		return nil, diags
	}

	return &config.Port{
		Name:   block.Labels[0],
		Shape:  shape,
		Source: sourceOf(block.DefRange),
	}, diags
}

func parseLink(block *hcl.Block) (*config.Link, hcl.Diagnostics) {
	kind, err := config.ParseLinkKind(block.Type)
	if err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unknown link block",
			Detail:   err.Error(),
			Subject:  block.DefRange.Ptr(),
		}}
	}

	content, diags := block.Body.Content(linkBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	l := &config.Link{Kind: kind, Source: sourceOf(block.DefRange)}
	diags = append(diags, gohcl.DecodeExpression(content.Attributes["from"].Expr, nil, &l.From)...)
	diags = append(diags, gohcl.DecodeExpression(content.Attributes["to"].Expr, nil, &l.To)...)
	if diags.HasErrors() {
		return nil, diags
	}
	if l.From == "" || l.To == "" {
		return nil, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Incomplete %q block", block.Type),
			Detail:   "Both 'from' and 'to' must name a port.",
			Subject:  block.DefRange.Ptr(),
		})
	}
	return l, diags
}
