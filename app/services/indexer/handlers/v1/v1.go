// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/utxoledger/indexer/app/services/indexer/handlers/v1/balancegrp"
	"github.com/utxoledger/indexer/app/services/indexer/handlers/v1/blockgrp"
	"github.com/utxoledger/indexer/business/core/chain"
	"github.com/utxoledger/indexer/foundation/events"
	"github.com/utxoledger/indexer/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	Chain *chain.Chain
	Evts  *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	bgh := balancegrp.Handlers{
		Log:   cfg.Log,
		Chain: cfg.Chain,
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/balances/:address", bgh.Balance)
	app.Handle(http.MethodGet, version, "/chain/height", bgh.Height)
	app.Handle(http.MethodGet, version, "/events", bgh.Events)
}

// PrivateRoutes binds all the version 1 private routes.
func PrivateRoutes(app *web.App, cfg Config) {
	blk := blockgrp.Handlers{
		Log:   cfg.Log,
		Chain: cfg.Chain,
	}

	app.Handle(http.MethodPost, version, "/blocks", blk.Submit)
	app.Handle(http.MethodPost, version, "/chain/rollback", blk.Rollback)
}
