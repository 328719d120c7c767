// Package api assembles the HTTP API for the application
package api

import (
	"context"

	"caseflow/internal/platform/config"
	"caseflow/internal/platform/logger"
	phttp "caseflow/internal/platform/net/http"
	"caseflow/internal/platform/store"

	"caseflow/internal/modkit"
	"caseflow/internal/modkit/httpkit"
	"caseflow/internal/modkit/module"
	"caseflow/internal/modkit/swaggerkit"

	leadsmod "caseflow/internal/services/leads/module"
	metamod "caseflow/internal/services/meta/module"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Store         *store.Store
	Logger        *logger.Logger
	EnableSwagger bool
}

// Mount mounts the API service onto the given router
func Mount(ctx context.Context, r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	mods := []module.Module{
		metamod.New(deps),
		leadsmod.New(deps, leadsmod.FromConfig(ctx, opt.Config)),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)

		for _, m := range mods {
			// register each module's ports under its own name for cross module lookups
			module.Register(m.Name(), m.Ports())

			m.MountRoutes(api)
		}
	})
}
