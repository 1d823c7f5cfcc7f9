package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/gridflow/internal/config"
	"github.com/specialistvlad/gridflow/internal/ctxlog"
	"github.com/specialistvlad/gridflow/internal/module"
	"github.com/specialistvlad/gridflow/internal/registry"
)

// Builder builds module trees using the kinds of one registry.
type Builder struct {
	registry *registry.Registry
}

// New creates a Builder.
func New(r *registry.Registry) *Builder {
	return &Builder{registry: r}
}

// Build constructs the root module described by model. The model should
// already have passed Model.Validate.
func (b *Builder) Build(ctx context.Context, model *config.Model) (*module.Module, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting module tree construction.")

	if model == nil || model.Root == nil {
		return nil, fmt.Errorf("model has no root module")
	}

	root, err := b.createNodes(ctx, model.Root, nil)
	if err != nil {
		return nil, err
	}
	logger.Debug("Build: Node creation complete.", "components", root.countComponents())

	linked, err := linkNodes(ctx, root)
	if err != nil {
		return nil, err
	}
	logger.Debug("Build: Linking complete.", "links", linked)

	for _, name := range root.unfedInPorts() {
		logger.Debug("Build: In port is not linked and will stay zero.", "port", name)
	}

	logger.Info("Build: Module tree construction successful.",
		"components", root.countComponents(), "links", linked)
	return root.mod, nil
}
