package chaindb

// Block represents the record of an accepted block.
type Block struct {
	Height  uint64 `gorm:"primaryKey"`
	BlockID string `gorm:"column:block_id;size:64;not null"`
}

// TableName overrides gorm's pluralized default.
func (Block) TableName() string {
	return "block"
}

// Output represents one ledger output. A spent_height of zero means the
// output is unspent; accepted blocks start at height one.
type Output struct {
	ID            uint   `gorm:"primarykey"`
	TxID          string `gorm:"column:tx_id;index:idx_tx_id_output_idx,unique"`
	OutputIdx     uint32 `gorm:"index:idx_tx_id_output_idx,unique"`
	Address       string `gorm:"index"`
	Value         uint64
	CreatedHeight uint64 `gorm:"index"`
	SpentHeight   uint64 `gorm:"index"`
	SpentByTxID   string `gorm:"column:spent_by_tx_id"`
}

// TableName overrides gorm's pluralized default.
func (Output) TableName() string {
	return "output"
}

// Balance represents the projected balance for one address.
type Balance struct {
	Address string `gorm:"primaryKey"`
	Balance uint64
}

// TableName overrides gorm's pluralized default.
func (Balance) TableName() string {
	return "balance"
}
