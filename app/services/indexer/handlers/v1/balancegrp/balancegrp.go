// Package balancegrp maintains the group of handlers for reading the
// balance projection and chain status.
package balancegrp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/utxoledger/indexer/business/core/chain"
	"github.com/utxoledger/indexer/foundation/events"
	"github.com/utxoledger/indexer/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of balance and status endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	Chain *chain.Chain
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Balance returns the projected balance for the specified address.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address := web.Param(r, "address")

	balance, err := h.Chain.Balance(ctx, address)
	if err != nil {
		return fmt.Errorf("querying balance: %w", err)
	}

	resp := struct {
		Address string `json:"address"`
		Balance uint64 `json:"balance"`
	}{
		Address: address,
		Balance: balance,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Height returns the current chain height.
func (h Handlers) Height(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	height, err := h.Chain.Height(ctx)
	if err != nil {
		return fmt.Errorf("querying height: %w", err)
	}

	resp := struct {
		Height uint64 `json:"height"`
	}{
		Height: height,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events handles a web socket to provide ledger events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}
