package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/specialistvlad/gridflow/internal/ctxlog"
	"github.com/specialistvlad/gridflow/internal/fsutil"
)

// Loader is the interface for a format-specific graph loader.
type Loader interface {
	// Load parses the given files or directories into a model. The result
	// is not validated; callers run Model.Validate once all sources are
	// merged.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// MultiLoader picks a Loader per file by extension and merges the results
// into one model.
type MultiLoader struct {
	byExt map[string]Loader
}

// NewMultiLoader creates a MultiLoader without any formats.
func NewMultiLoader() *MultiLoader {
	return &MultiLoader{byExt: make(map[string]Loader)}
}

// Register makes l responsible for files ending in each of exts.
func (ml *MultiLoader) Register(l Loader, exts ...string) {
	for _, ext := range exts {
		ml.byExt[ext] = l
	}
}

// Extensions lists the registered extensions in sorted order.
func (ml *MultiLoader) Extensions() []string {
	exts := make([]string, 0, len(ml.byExt))
	for ext := range ml.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load implements Loader and validates the merged model.
func (ml *MultiLoader) Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	exts := ml.Extensions()

	grouped := make(map[string][]string)
	seen := make(map[string]struct{})
	total := 0
	for _, path := range paths {
		files, err := fsutil.FindFilesByExtension(path, exts...)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			ext := filepath.Ext(f)
			grouped[ext] = append(grouped[ext], f)
			total++
		}
	}
	if total == 0 {
		return nil, fmt.Errorf("no graph files with extensions %v found in %v", exts, paths)
	}
	logger.Debug("Discovered graph files.", "count", total)

	model := NewModel()
	for _, ext := range exts {
		files := grouped[ext]
		if len(files) == 0 {
			continue
		}
		part, err := ml.byExt[ext].Load(ctx, files...)
		if err != nil {
			return nil, err
		}
		model.Root.Merge(part.Root)
	}

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid graph definition: %w", err)
	}
	logger.Debug("Graph definition loaded.",
		"components", len(model.Root.Components),
		"modules", len(model.Root.Modules),
		"links", len(model.Root.Links),
	)
	return model, nil
}
