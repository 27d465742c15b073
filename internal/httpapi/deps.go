package httpapi

import (
	"database/sql"
	"sync/atomic"

	"jobscreen-engine/internal/analyze"
	"jobscreen-engine/internal/config"
	"jobscreen-engine/internal/discover"
	"jobscreen-engine/internal/events"
	"jobscreen-engine/internal/model"
)

type Deps struct {
	Analyzer *analyze.Analyzer

	DB  *sql.DB
	Hub *events.Hub

	// nil when enrichment.domain_lookup is off
	Finder *discover.Finder

	// Atomic store for hot config (stores config.Config)
	CfgVal *atomic.Value

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Bundle reload entrypoint (inject for testability)
	LoadBundle func() (*model.Bundle, error)

	// Admin token; empty disables admin routes entirely.
	AdminToken string
}
