// Package blockgrp maintains the group of handlers for block submission
// and rollback.
package blockgrp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/utxoledger/indexer/business/core/chain"
	"github.com/utxoledger/indexer/business/sys/validate"
	"github.com/utxoledger/indexer/business/web/errs"
	"github.com/utxoledger/indexer/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of block endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	Chain *chain.Chain
}

// Submit validates a candidate block and applies it to the ledger.
func (h Handlers) Submit(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var nb newBlock
	if err := web.Decode(r, &nb); err != nil {
		return errs.NewTrusted(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	if err := validate.Check(nb); err != nil {
		return err
	}

	h.Log.Infow("submit block", "traceid", v.TraceID, "height", nb.Height, "block", nb.ID, "txs", len(nb.Txs))

	if err := h.Chain.AddBlock(ctx, toChainBlock(nb)); err != nil {
		if chain.IsValidationError(err) {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return fmt.Errorf("accepting block: %w", err)
	}

	resp := struct {
		Status string `json:"status"`
		Height uint64 `json:"height"`
	}{
		Status: "block accepted",
		Height: nb.Height,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Rollback reverts the chain to the specified height.
func (h Handlers) Rollback(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var rb rollbackRequest
	if err := web.Decode(r, &rb); err != nil {
		return errs.NewTrusted(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	h.Log.Infow("rollback", "traceid", v.TraceID, "target", rb.Height)

	if err := h.Chain.Rollback(ctx, rb.Height); err != nil {
		if chain.IsValidationError(err) {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		return fmt.Errorf("rolling back: %w", err)
	}

	resp := struct {
		Status string `json:"status"`
		Height uint64 `json:"height"`
	}{
		Status: "chain rolled back",
		Height: rb.Height,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
