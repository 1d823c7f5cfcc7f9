package app

import (
	"github.com/specialistvlad/gridflow/internal/config"
	"github.com/specialistvlad/gridflow/internal/hcl"
	"github.com/specialistvlad/gridflow/internal/registry"
	"github.com/specialistvlad/gridflow/internal/yamlgraph"
	"github.com/specialistvlad/gridflow/kinds/constant"
	"github.com/specialistvlad/gridflow/kinds/pipe"
	"github.com/specialistvlad/gridflow/kinds/print"
	"github.com/specialistvlad/gridflow/kinds/scale"
	"github.com/specialistvlad/gridflow/kinds/sink"
)

// coreKinds is the definitive list of component kinds compiled into the
// gridflow binary.
var coreKinds = []registry.Module{
	&constant.Module{},
	&pipe.Module{},
	&print.Module{},
	&scale.Module{},
	&sink.Module{},
}

// DefaultLoader reads HCL and YAML graph definitions.
func DefaultLoader() *config.MultiLoader {
	ml := config.NewMultiLoader()
	ml.Register(hcl.NewLoader(), hcl.Extension)
	ml.Register(yamlgraph.NewLoader(), yamlgraph.Extensions...)
	return ml
}
