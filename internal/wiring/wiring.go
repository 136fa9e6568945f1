// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/envcache/internal/adapters/cas"
	_ "go.trai.ch/envcache/internal/adapters/config"
	_ "go.trai.ch/envcache/internal/adapters/interpreter"
	_ "go.trai.ch/envcache/internal/adapters/logger"
	_ "go.trai.ch/envcache/internal/adapters/pip"
	_ "go.trai.ch/envcache/internal/adapters/progress"
	_ "go.trai.ch/envcache/internal/adapters/shell"
	_ "go.trai.ch/envcache/internal/adapters/venv"
	// Register app and engine nodes.
	_ "go.trai.ch/envcache/internal/app"
	_ "go.trai.ch/envcache/internal/engine/environment"
)
