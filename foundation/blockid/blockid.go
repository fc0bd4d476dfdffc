// Package blockid implements the canonical identity function for blocks. A
// block's id is the sha256 digest of its decimal height concatenated with
// every transaction id in block order. Changing the order of the transactions
// changes the id.
package blockid

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Compute returns the lowercase hex identifier for the specified height and
// ordered set of transaction ids.
func Compute(height uint64, txIDs []string) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(height, 10))
	for _, txID := range txIDs {
		sb.WriteString(txID)
	}

	hash := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(hash[:])
}
