package chain

// TxInput represents a reference to an existing unspent output being
// consumed by a transaction.
type TxInput struct {
	TxID  string
	Index uint32
}

// TxOutput represents a new unit of value being assigned to an address. The
// output's index is its position in the transaction's output list.
type TxOutput struct {
	Address string
	Value   uint64
}

// Tx represents the unit of atomicity for value transfer inside a block. A
// transaction with no inputs is a coinbase transaction and mints value.
type Tx struct {
	ID      string
	Inputs  []TxInput
	Outputs []TxOutput
}

// Block represents a candidate or committed unit of the chain.
type Block struct {
	ID     string
	Height uint64
	Txs    []Tx
}

// TxIDs returns the block's transaction ids in block order.
func (b Block) TxIDs() []string {
	txIDs := make([]string, len(b.Txs))
	for i, tx := range b.Txs {
		txIDs[i] = tx.ID
	}

	return txIDs
}

// Output represents one unit of value in the ledger, tagged with the height
// that created it and, once spent, the transaction and height that spent it.
// Spent is true exactly when SpentAtHeight is non zero.
type Output struct {
	TxID            string
	Index           uint32
	Address         string
	Value           uint64
	CreatedAtHeight uint64
	Spent           bool
	SpentByTxID     string
	SpentAtHeight   uint64
}
