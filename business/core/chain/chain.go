// Package chain implements the ledger state machine. The chain is the only
// writer of the output ledger and the balance projection and drives both
// through atomic transitions: a block either applies in full or leaves the
// state untouched, and a rollback undoes exactly the effects of the
// discarded blocks.
package chain

import (
	"context"
	"errors"
	"sync"

	"github.com/utxoledger/indexer/foundation/blockid"
)

// EventHandler defines a function that is called when events occur in the
// processing of accepting and rolling back blocks.
type EventHandler func(v string, args ...any)

// Config represents the configuration required to construct the chain.
type Config struct {
	Storage   Storage
	EvHandler EventHandler
}

// Chain manages the chain state: the set of accepted blocks, the output
// ledger, and the derived balance projection. Height mutating operations are
// serialized so at most one is in flight at a time.
type Chain struct {
	storage   Storage
	evHandler EventHandler
	mu        sync.Mutex
}

// New constructs a chain over the specified storage.
func New(cfg Config) (*Chain, error) {
	if cfg.Storage == nil {
		return nil, errors.New("storage is required")
	}

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	c := Chain{
		storage:   cfg.Storage,
		evHandler: ev,
	}

	return &c, nil
}

// AddBlock validates the candidate block against the current chain state and
// applies its effects to the output ledger and balance projection.
// Acceptance is all or nothing: on any rule violation or storage failure the
// chain is left exactly as it was.
func (c *Chain) AddBlock(ctx context.Context, block Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.storage.WithinTran(ctx, func(tran Tran) error {
		height, err := tran.CurrentHeight()
		if err != nil {
			return err
		}

		if block.Height != height+1 {
			return &InvalidHeightError{Expected: height + 1, Got: block.Height}
		}

		if id := blockid.Compute(block.Height, block.TxIDs()); id != block.ID {
			return &InvalidBlockIDError{Expected: id, Got: block.ID}
		}

		if err := tran.InsertBlock(block.ID, block.Height); err != nil {
			return err
		}

		// Transactions apply strictly in submission order inside the open
		// unit of work, so a transaction may spend an output created by an
		// earlier transaction in this same block, and an intra-block double
		// spend fails the same unspent lookup as any other.
		for _, tx := range block.Txs {
			if err := applyTx(tran, block.Height, tx); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	c.evHandler("chain: AddBlock: accepted block %s height %d txs %d", block.ID, block.Height, len(block.Txs))

	return nil
}

// Rollback reverts the chain to the target height, undoing the effects of
// every block above it. Outputs spent by discarded blocks are reinstated,
// outputs created by them are deleted, and the balance projection is rebuilt
// from the remaining unspent outputs. A target equal to the current height
// is a no-op success.
func (c *Chain) Rollback(ctx context.Context, target uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.storage.WithinTran(ctx, func(tran Tran) error {
		height, err := tran.CurrentHeight()
		if err != nil {
			return err
		}

		if target > height {
			return &RollbackTargetError{Target: target, Current: height}
		}
		if target == height {
			return nil
		}

		// Outputs spent above the target may have been created at or below
		// it, so spends are undone for every output regardless of age.
		if err := tran.UnspendOutputsAbove(target); err != nil {
			return err
		}

		if err := tran.DeleteOutputsAbove(target); err != nil {
			return err
		}

		if err := tran.DeleteBlocksAbove(target); err != nil {
			return err
		}

		// The set of effects to undo is not a simple inverse of a recent
		// window, so the projection is rebuilt from the ledger in full.
		balances, err := tran.UnspentBalances()
		if err != nil {
			return err
		}

		return tran.ReplaceBalances(balances)
	})
	if err != nil {
		return err
	}

	c.evHandler("chain: Rollback: chain reverted to height %d", target)

	return nil
}

// Balance returns the projected balance for the specified address. An
// address with no unspent outputs reads as zero.
func (c *Chain) Balance(ctx context.Context, address string) (uint64, error) {
	return c.storage.Balance(ctx, address)
}

// Height returns the height of the most recently accepted block, or zero
// when no blocks have been accepted.
func (c *Chain) Height(ctx context.Context) (uint64, error) {
	return c.storage.CurrentHeight(ctx)
}

// =============================================================================

// applyTx spends the transaction's inputs, records its outputs, and checks
// conservation of value. Coinbase transactions mint value and are exempt
// from the conservation check.
func applyTx(tran Tran, height uint64, tx Tx) error {
	var inputSum uint64
	for _, input := range tx.Inputs {
		output, err := tran.UnspentOutput(input.TxID, input.Index)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return &UnspentOutputError{TxID: input.TxID, Index: input.Index}
			}
			return err
		}

		if err := tran.MarkOutputSpent(input.TxID, input.Index, tx.ID, height); err != nil {
			return err
		}

		if err := tran.AdjustBalance(output.Address, -int64(output.Value)); err != nil {
			return err
		}

		inputSum += output.Value
	}

	var outputSum uint64
	for i, txOut := range tx.Outputs {
		output := Output{
			TxID:            tx.ID,
			Index:           uint32(i),
			Address:         txOut.Address,
			Value:           txOut.Value,
			CreatedAtHeight: height,
		}
		if err := tran.InsertOutput(output); err != nil {
			return err
		}

		if err := tran.AdjustBalance(txOut.Address, int64(txOut.Value)); err != nil {
			return err
		}

		outputSum += txOut.Value
	}

	if len(tx.Inputs) > 0 && inputSum != outputSum {
		return &UnbalancedTxError{TxID: tx.ID, InputSum: inputSum, OutputSum: outputSum}
	}

	return nil
}
