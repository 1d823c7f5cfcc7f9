// Package yamlgraph implements config.Loader for graph definitions written in
// YAML. The document mirrors the HCL layout: components, modules, in/out port
// maps from name to shape, and links written as single-key maps whose key is
// the link kind.
package yamlgraph

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/specialistvlad/gridflow/internal/config"
	"github.com/specialistvlad/gridflow/internal/ctxlog"
	"github.com/specialistvlad/gridflow/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Extensions are the file extensions this loader reads.
var Extensions = []string{".yaml", ".yml"}

type module struct {
	Name       string                `yaml:"name"`
	In         map[string][]int      `yaml:"in"`
	Out        map[string][]int      `yaml:"out"`
	Components []component           `yaml:"components"`
	Modules    []module              `yaml:"modules"`
	Links      []map[string]linkEnds `yaml:"links"`
}

type component struct {
	Kind      string           `yaml:"kind"`
	Name      string           `yaml:"name"`
	In        map[string][]int `yaml:"in"`
	Out       map[string][]int `yaml:"out"`
	Arguments map[string]any   `yaml:"arguments"`
}

type linkEnds struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML graph loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load parses every YAML file found in paths and merges them into the root
// module of one model. Unknown keys are errors.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	model := config.NewModel()
	for _, path := range paths {
		files, err := fsutil.FindFilesByExtension(path, Extensions...)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			part, err := loadFile(file)
			if err != nil {
				return nil, err
			}
			model.Root.Merge(part)
			logger.Debug("Loaded graph file.", "file", file,
				"components", len(part.Components), "modules", len(part.Modules), "links", len(part.Links))
		}
	}
	return model, nil
}

func loadFile(file string) (*config.Module, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", file, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var doc module
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &config.Module{}, nil
		}
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
	}

	m, err := translateModule(doc, config.Source{File: file})
	if err != nil {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
	}
	return m, nil
}

func translateModule(in module, src config.Source) (*config.Module, error) {
	out := &config.Module{
		Name:     in.Name,
		InPorts:  translatePorts(in.In, src),
		OutPorts: translatePorts(in.Out, src),
		Source:   src,
	}
	for _, c := range in.Components {
		comp, err := translateComponent(c, src)
		if err != nil {
			return nil, err
		}
		out.Components = append(out.Components, comp)
	}
	for _, sub := range in.Modules {
		if sub.Name == "" {
			return nil, fmt.Errorf("module without a name")
		}
		m, err := translateModule(sub, src)
		if err != nil {
			return nil, fmt.Errorf("module '%s': %w", sub.Name, err)
		}
		out.Modules = append(out.Modules, m)
	}
	for i, entry := range in.Links {
		if len(entry) != 1 {
			return nil, fmt.Errorf("link %d: expected exactly one of connect, alias_in, alias_out", i)
		}
		for key, ends := range entry {
			kind, err := config.ParseLinkKind(key)
			if err != nil {
				return nil, fmt.Errorf("link %d: %w", i, err)
			}
			out.Links = append(out.Links, &config.Link{Kind: kind, From: ends.From, To: ends.To, Source: src})
		}
	}
	return out, nil
}

func translateComponent(c component, src config.Source) (*config.Component, error) {
	out := &config.Component{
		Kind:     c.Kind,
		Name:     c.Name,
		InPorts:  translatePorts(c.In, src),
		OutPorts: translatePorts(c.Out, src),
		Source:   src,
	}
	if len(c.Arguments) > 0 {
		args, err := toCtyMap(c.Arguments)
		if err != nil {
			return nil, fmt.Errorf("component '%s': %w", c.Name, err)
		}
		out.Arguments = args
	}
	return out, nil
}

// translatePorts turns a name-to-shape map into ports sorted by name.
func translatePorts(ports map[string][]int, src config.Source) []*config.Port {
	if len(ports) == 0 {
		return nil
	}
	names := make([]string, 0, len(ports))
	for name := range ports {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*config.Port, 0, len(names))
	for _, name := range names {
		out = append(out, &config.Port{Name: name, Shape: ports[name], Source: src})
	}
	return out
}
