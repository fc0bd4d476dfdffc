package chain

import (
	"errors"
	"fmt"
)

// InvalidHeightError is returned when a candidate block's height is not
// exactly one above the current chain height.
type InvalidHeightError struct {
	Expected uint64
	Got      uint64
}

// Error implements the error interface.
func (e *InvalidHeightError) Error() string {
	return fmt.Sprintf("invalid block height, got %d, exp %d", e.Got, e.Expected)
}

// InvalidBlockIDError is returned when the recomputed block id does not
// match the id supplied with the candidate block.
type InvalidBlockIDError struct {
	Expected string
	Got      string
}

// Error implements the error interface.
func (e *InvalidBlockIDError) Error() string {
	return fmt.Sprintf("invalid block id, got %s, exp %s", e.Got, e.Expected)
}

// UnspentOutputError is returned when an input references an output that
// does not exist or has already been spent.
type UnspentOutputError struct {
	TxID  string
	Index uint32
}

// Error implements the error interface.
func (e *UnspentOutputError) Error() string {
	return fmt.Sprintf("unspent output %s:%d not found", e.TxID, e.Index)
}

// UnbalancedTxError is returned when a non-coinbase transaction's input sum
// does not equal its output sum.
type UnbalancedTxError struct {
	TxID      string
	InputSum  uint64
	OutputSum uint64
}

// Error implements the error interface.
func (e *UnbalancedTxError) Error() string {
	return fmt.Sprintf("transaction %s unbalanced, inputs %d, outputs %d", e.TxID, e.InputSum, e.OutputSum)
}

// RollbackTargetError is returned when a rollback target exceeds the
// current chain height.
type RollbackTargetError struct {
	Target  uint64
	Current uint64
}

// Error implements the error interface.
func (e *RollbackTargetError) Error() string {
	return fmt.Sprintf("rollback target %d above current height %d", e.Target, e.Current)
}

// IsValidationError reports whether the specified error represents rejected
// input rather than an infrastructure failure. Callers branch only on this
// classification, never on error contents.
func IsValidationError(err error) bool {
	var (
		invHeight *InvalidHeightError
		invID     *InvalidBlockIDError
		unspent   *UnspentOutputError
		unbal     *UnbalancedTxError
		target    *RollbackTargetError
	)

	switch {
	case errors.As(err, &invHeight),
		errors.As(err, &invID),
		errors.As(err, &unspent),
		errors.As(err, &unbal),
		errors.As(err, &target):
		return true
	}

	return false
}
