package chaindb_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/utxoledger/indexer/business/core/chain"
	"github.com/utxoledger/indexer/business/core/chain/stores/chaindb"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func newTestStore(t *testing.T) *chaindb.Store {
	t.Helper()

	store, err := chaindb.New(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("\t%s\tShould be able to open the store: %v", failed, err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestOutputLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Log("Given the need to store and spend ledger outputs.")
	{
		store := newTestStore(t)

		err := store.WithinTran(ctx, func(tran chain.Tran) error {
			if err := tran.InsertOutput(chain.Output{
				TxID:            "tx1",
				Index:           0,
				Address:         "addr1",
				Value:           100,
				CreatedAtHeight: 1,
			}); err != nil {
				return err
			}

			out, err := tran.UnspentOutput("tx1", 0)
			if err != nil {
				return err
			}
			if out.Spent {
				t.Fatalf("\t%s\tShould read the output back as unspent.", failed)
			}
			t.Logf("\t%s\tShould read the output back as unspent.", success)

			if err := tran.MarkOutputSpent("tx1", 0, "tx2", 2); err != nil {
				return err
			}

			if _, err := tran.UnspentOutput("tx1", 0); !errors.Is(err, chain.ErrNotFound) {
				t.Fatalf("\t%s\tShould not find a spent output via the unspent lookup: %v", failed, err)
			}
			t.Logf("\t%s\tShould not find a spent output via the unspent lookup.", success)

			if err := tran.MarkOutputSpent("tx1", 0, "tx3", 3); !errors.Is(err, chain.ErrNotFound) {
				t.Fatalf("\t%s\tShould reject a second spend of the same output: %v", failed, err)
			}
			t.Logf("\t%s\tShould reject a second spend of the same output.", success)

			out, err = tran.Output("tx1", 0)
			if err != nil {
				return err
			}
			if !out.Spent || out.SpentByTxID != "tx2" || out.SpentAtHeight != 2 {
				t.Fatalf("\t%s\tShould record the spending transaction and height, got %+v.", failed, out)
			}
			t.Logf("\t%s\tShould record the spending transaction and height.", success)

			return nil
		})
		if err != nil {
			t.Fatalf("\t%s\tShould complete the unit of work: %v", failed, err)
		}
	}
}

func TestRollbackOperations(t *testing.T) {
	ctx := context.Background()

	t.Log("Given the need to unspend and delete outputs above a height.")
	{
		store := newTestStore(t)

		err := store.WithinTran(ctx, func(tran chain.Tran) error {
			outputs := []chain.Output{
				{TxID: "tx1", Index: 0, Address: "addr1", Value: 100, CreatedAtHeight: 1},
				{TxID: "tx2", Index: 0, Address: "addr2", Value: 50, CreatedAtHeight: 2},
				{TxID: "tx3", Index: 0, Address: "addr3", Value: 25, CreatedAtHeight: 3},
			}
			for _, out := range outputs {
				if err := tran.InsertOutput(out); err != nil {
					return err
				}
			}

			// tx1:0 spent at height 3, above the eventual target.
			if err := tran.MarkOutputSpent("tx1", 0, "tx3", 3); err != nil {
				return err
			}

			if err := tran.UnspendOutputsAbove(2); err != nil {
				return err
			}
			if err := tran.DeleteOutputsAbove(2); err != nil {
				return err
			}

			out, err := tran.UnspentOutput("tx1", 0)
			if err != nil {
				return err
			}
			if out.Spent || out.SpentByTxID != "" || out.SpentAtHeight != 0 {
				t.Fatalf("\t%s\tShould reinstate the spent output, got %+v.", failed, out)
			}
			t.Logf("\t%s\tShould reinstate the spent output.", success)

			if _, err := tran.Output("tx3", 0); !errors.Is(err, chain.ErrNotFound) {
				t.Fatalf("\t%s\tShould delete outputs created above the height: %v", failed, err)
			}
			t.Logf("\t%s\tShould delete outputs created above the height.", success)

			balances, err := tran.UnspentBalances()
			if err != nil {
				return err
			}
			if balances["addr1"] != 100 || balances["addr2"] != 50 {
				t.Fatalf("\t%s\tShould compute unspent sums per address, got %v.", failed, balances)
			}
			if _, exists := balances["addr3"]; exists {
				t.Fatalf("\t%s\tShould not include addresses with no unspent outputs.", failed)
			}
			t.Logf("\t%s\tShould compute unspent sums per address.", success)

			return tran.ReplaceBalances(balances)
		})
		if err != nil {
			t.Fatalf("\t%s\tShould complete the unit of work: %v", failed, err)
		}

		balance, err := store.Balance(ctx, "addr1")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to read a balance: %v", failed, err)
		}
		if balance != 100 {
			t.Fatalf("\t%s\tShould read the replaced balance, got %d.", failed, balance)
		}
		t.Logf("\t%s\tShould read the replaced balance.", success)
	}
}

func TestBalanceAdjustments(t *testing.T) {
	ctx := context.Background()

	t.Log("Given the need to apply signed deltas to the balance projection.")
	{
		store := newTestStore(t)

		err := store.WithinTran(ctx, func(tran chain.Tran) error {
			if err := tran.AdjustBalance("addr1", 100); err != nil {
				return err
			}
			if err := tran.AdjustBalance("addr1", -40); err != nil {
				return err
			}

			balance, err := tran.Balance("addr1")
			if err != nil {
				return err
			}
			if balance != 60 {
				t.Fatalf("\t%s\tShould apply credits and debits, got %d.", failed, balance)
			}
			t.Logf("\t%s\tShould apply credits and debits.", success)

			if err := tran.AdjustBalance("addr2", -10); err == nil {
				t.Fatalf("\t%s\tShould reject a debit against a missing record.", failed)
			}
			t.Logf("\t%s\tShould reject a debit against a missing record.", success)

			balance, err = tran.Balance("missing")
			if err != nil {
				return err
			}
			if balance != 0 {
				t.Fatalf("\t%s\tShould read missing addresses as zero, got %d.", failed, balance)
			}
			t.Logf("\t%s\tShould read missing addresses as zero.", success)

			return nil
		})
		if err != nil {
			t.Fatalf("\t%s\tShould complete the unit of work: %v", failed, err)
		}
	}
}

func TestTranAbort(t *testing.T) {
	ctx := context.Background()

	t.Log("Given the need for an aborted unit of work to leave no effects.")
	{
		store := newTestStore(t)

		errAbort := errors.New("abort")

		err := store.WithinTran(ctx, func(tran chain.Tran) error {
			if err := tran.InsertBlock("aaaa", 1); err != nil {
				return err
			}
			if err := tran.InsertOutput(chain.Output{
				TxID:            "tx1",
				Index:           0,
				Address:         "addr1",
				Value:           100,
				CreatedAtHeight: 1,
			}); err != nil {
				return err
			}
			if err := tran.AdjustBalance("addr1", 100); err != nil {
				return err
			}
			return errAbort
		})
		if !errors.Is(err, errAbort) {
			t.Fatalf("\t%s\tShould surface the abort error: %v", failed, err)
		}
		t.Logf("\t%s\tShould surface the abort error.", success)

		height, err := store.CurrentHeight(ctx)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to read the height: %v", failed, err)
		}
		if height != 0 {
			t.Fatalf("\t%s\tShould have no committed blocks, got height %d.", failed, height)
		}
		t.Logf("\t%s\tShould have no committed blocks.", success)

		balance, err := store.Balance(ctx, "addr1")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to read the balance: %v", failed, err)
		}
		if balance != 0 {
			t.Fatalf("\t%s\tShould have no committed balance, got %d.", failed, balance)
		}
		t.Logf("\t%s\tShould have no committed balance.", success)
	}
}
