package blockid_test

import (
	"testing"

	"github.com/utxoledger/indexer/foundation/blockid"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestCompute(t *testing.T) {
	t.Log("Given the need to compute deterministic block identifiers.")
	{
		txIDs := []string{"tx1", "tx2", "tx3"}

		t.Log("\tWhen hashing the same height and transaction ids twice.")
		{
			id1 := blockid.Compute(1, txIDs)
			id2 := blockid.Compute(1, txIDs)

			if id1 != id2 {
				t.Fatalf("\t%s\tShould produce identical ids, got %s and %s.", failed, id1, id2)
			}
			t.Logf("\t%s\tShould produce identical ids.", success)

			if len(id1) != 64 {
				t.Fatalf("\t%s\tShould produce a 64 character hex digest, got %d characters.", failed, len(id1))
			}
			t.Logf("\t%s\tShould produce a 64 character hex digest.", success)

			for _, r := range id1 {
				if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
					t.Fatalf("\t%s\tShould produce lowercase hex, got %q.", failed, r)
				}
			}
			t.Logf("\t%s\tShould produce lowercase hex.", success)
		}

		t.Log("\tWhen changing the transaction order.")
		{
			id1 := blockid.Compute(1, []string{"tx1", "tx2"})
			id2 := blockid.Compute(1, []string{"tx2", "tx1"})

			if id1 == id2 {
				t.Fatalf("\t%s\tShould produce different ids for different orders.", failed)
			}
			t.Logf("\t%s\tShould produce different ids for different orders.", success)
		}

		t.Log("\tWhen changing the height.")
		{
			id1 := blockid.Compute(1, txIDs)
			id2 := blockid.Compute(2, txIDs)

			if id1 == id2 {
				t.Fatalf("\t%s\tShould produce different ids for different heights.", failed)
			}
			t.Logf("\t%s\tShould produce different ids for different heights.", success)
		}
	}
}
