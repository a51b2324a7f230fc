// Package api provides the HTTP API for the application
package api

import (
	"wildwatch/internal/platform/config"
	"wildwatch/internal/platform/logger"
	phttp "wildwatch/internal/platform/net/http"
	"wildwatch/internal/platform/store"

	"wildwatch/internal/modkit"
	"wildwatch/internal/modkit/httpkit"
	"wildwatch/internal/modkit/module"
	"wildwatch/internal/modkit/swaggerkit"

	metamod "wildwatch/internal/services/api/meta/module"
	dashmod "wildwatch/internal/services/dashboard/module"
	detmod "wildwatch/internal/services/detections/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	mods := []module.Module{
		metamod.New(deps),
		detmod.New(deps),
		dashmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
