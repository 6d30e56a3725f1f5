// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/hue/internal/adapters/cdl"
	_ "go.trai.ch/hue/internal/adapters/config"
	_ "go.trai.ch/hue/internal/adapters/fs"
	_ "go.trai.ch/hue/internal/adapters/logger"
	_ "go.trai.ch/hue/internal/adapters/naga"
	_ "go.trai.ch/hue/internal/adapters/settings"
	_ "go.trai.ch/hue/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/hue/internal/app"
	_ "go.trai.ch/hue/internal/engine/compiler"
	_ "go.trai.ch/hue/internal/engine/configcache"
	_ "go.trai.ch/hue/internal/engine/graph"
	_ "go.trai.ch/hue/internal/engine/pipecache"
	_ "go.trai.ch/hue/internal/engine/resolver"
	_ "go.trai.ch/hue/internal/engine/thumbnail"
	_ "go.trai.ch/hue/internal/engine/uniforms"
)
