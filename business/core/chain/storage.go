package chain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by storage implementations when a requested
// record does not exist.
var ErrNotFound = errors.New("not found")

// Tran represents the set of storage operations available inside one atomic
// unit of work. Mutations performed through a Tran become visible to other
// callers only when the unit of work commits, and either all of them apply
// or none do.
type Tran interface {
	CurrentHeight() (uint64, error)
	InsertBlock(id string, height uint64) error
	DeleteBlocksAbove(height uint64) error

	Output(txID string, index uint32) (Output, error)
	UnspentOutput(txID string, index uint32) (Output, error)
	InsertOutput(output Output) error
	MarkOutputSpent(txID string, index uint32, spendingTxID string, height uint64) error
	UnspendOutputsAbove(height uint64) error
	DeleteOutputsAbove(height uint64) error

	Balance(address string) (uint64, error)
	AdjustBalance(address string, delta int64) error
	UnspentBalances() (map[string]uint64, error)
	ReplaceBalances(balances map[string]uint64) error
}

// Storage represents the behavior required of the persistence engine backing
// the chain. WithinTran owns the commit-or-rollback decision: an error
// return from the function aborts the unit of work on every exit path.
type Storage interface {
	WithinTran(ctx context.Context, fn func(tran Tran) error) error
	CurrentHeight(ctx context.Context) (uint64, error)
	Balance(ctx context.Context, address string) (uint64, error)
}
