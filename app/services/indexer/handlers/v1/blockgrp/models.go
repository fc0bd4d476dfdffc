package blockgrp

import "github.com/utxoledger/indexer/business/core/chain"

// newInput represents a reference to the unspent output being consumed.
type newInput struct {
	TxID  string `json:"txId" validate:"required"`
	Index uint32 `json:"index"`
}

// newOutput represents a new unit of value assigned to an address.
type newOutput struct {
	Address string `json:"address" validate:"required"`
	Value   uint64 `json:"value"`
}

// newTx represents one transaction inside a candidate block.
type newTx struct {
	ID      string      `json:"id" validate:"required"`
	Inputs  []newInput  `json:"inputs" validate:"dive"`
	Outputs []newOutput `json:"outputs" validate:"dive"`
}

// newBlock represents a candidate block submitted for acceptance.
type newBlock struct {
	ID     string  `json:"id" validate:"required,len=64,hexadecimal"`
	Height uint64  `json:"height" validate:"required,min=1"`
	Txs    []newTx `json:"transactions" validate:"dive"`
}

// rollbackRequest represents a request to revert the chain. A height of
// zero reverts the chain to empty, so no validation tags apply.
type rollbackRequest struct {
	Height uint64 `json:"height"`
}

// toChainBlock converts the request model to the core block model.
func toChainBlock(nb newBlock) chain.Block {
	txs := make([]chain.Tx, len(nb.Txs))
	for i, ntx := range nb.Txs {
		inputs := make([]chain.TxInput, len(ntx.Inputs))
		for j, nin := range ntx.Inputs {
			inputs[j] = chain.TxInput{
				TxID:  nin.TxID,
				Index: nin.Index,
			}
		}

		outputs := make([]chain.TxOutput, len(ntx.Outputs))
		for j, nout := range ntx.Outputs {
			outputs[j] = chain.TxOutput{
				Address: nout.Address,
				Value:   nout.Value,
			}
		}

		txs[i] = chain.Tx{
			ID:      ntx.ID,
			Inputs:  inputs,
			Outputs: outputs,
		}
	}

	return chain.Block{
		ID:     nb.ID,
		Height: nb.Height,
		Txs:    txs,
	}
}
