package builder

import (
	"context"
	"fmt"
	"sort"

	"github.com/specialistvlad/gridflow/internal/address"
	"github.com/specialistvlad/gridflow/internal/config"
	"github.com/specialistvlad/gridflow/internal/ctxlog"
)

// scopedLink is a link together with the module that declared it.
type scopedLink struct {
	link  *config.Link
	owner *node
}

// planLinks orders every link in the tree: alias_out deepest first, then
// connect and alias_in shallowest first.
func planLinks(root *node) []scopedLink {
	var outs, rest []scopedLink
	root.walk(func(n *node) {
		for _, l := range n.cfg.Links {
			sl := scopedLink{link: l, owner: n}
			if l.Kind == config.AliasOut {
				outs = append(outs, sl)
			} else {
				rest = append(rest, sl)
			}
		}
	})
	sort.SliceStable(outs, func(i, j int) bool { return outs[i].owner.depth > outs[j].owner.depth })
	sort.SliceStable(rest, func(i, j int) bool { return rest[i].owner.depth < rest[j].owner.depth })
	return append(outs, rest...)
}

func linkNodes(ctx context.Context, root *node) (int, error) {
	logger := ctxlog.FromContext(ctx)
	plan := planLinks(root)
	for _, sl := range plan {
		if err := apply(sl); err != nil {
			return 0, fmt.Errorf("%s: %s: %w", sl.link.Source, sl.link, err)
		}
		logger.Debug("Build: Linked ports.", "module", sl.owner.path.String(), "link", sl.link.String())
	}
	return len(plan), nil
}

func apply(sl scopedLink) error {
	from, err := address.Parse(sl.link.From)
	if err != nil {
		return err
	}
	to, err := address.Parse(sl.link.To)
	if err != nil {
		return err
	}
	fromUnit, err := sl.owner.unit(from.Parent())
	if err != nil {
		return err
	}
	toUnit, err := sl.owner.unit(to.Parent())
	if err != nil {
		return err
	}

	switch sl.link.Kind {
	case config.Connect:
		err = toUnit.Connect(to.Last(), fromUnit, from.Last())
	case config.AliasIn:
		err = toUnit.AliasInPort(to.Last(), fromUnit, from.Last())
	case config.AliasOut:
		err = toUnit.AliasOutPort(to.Last(), fromUnit, from.Last())
	default:
		return fmt.Errorf("unsupported link kind %s", sl.link.Kind)
	}
	if err != nil {
		return err
	}

	if sl.link.Kind != config.AliasOut {
		sl.owner.fed[sl.owner.path.Join(to).String()] = struct{}{}
	}
	return nil
}
