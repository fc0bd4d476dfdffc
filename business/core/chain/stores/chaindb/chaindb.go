// Package chaindb provides SQLite based storage for the chain using gorm.
// The store implements the chain storage contract: every mutation happens
// inside a database transaction scoped by WithinTran.
package chaindb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/utxoledger/indexer/business/core/chain"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store manages the chain database handle.
type Store struct {
	db *gorm.DB
}

// New opens or creates the chain database under the specified data
// directory. An empty dataDir opens a shared in-memory database, which is
// useful for testing.
func New(dataDir string) (*Store, error) {
	var dsn string

	switch dataDir {
	case "":
		dsn = "file::memory:?cache=shared"

	default:
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}

		// WAL journal mode plus a busy timeout so balance reads never
		// error out under an in-flight write transaction.
		const connOpts = "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		dsn = fmt.Sprintf("file:%s?%s", filepath.Join(dataDir, "chain.sqlite"), connOpts)
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Discard,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening chain db: %w", err)
	}

	if err := db.AutoMigrate(&Block{}, &Output{}, &Balance{}); err != nil {
		return nil, fmt.Errorf("migrating chain db: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// StatusCheck verifies the database is reachable. Used by the readiness
// probe.
func (s *Store) StatusCheck(ctx context.Context) error {
	var tmp bool
	return s.db.WithContext(ctx).Raw("SELECT true").Scan(&tmp).Error
}

// WithinTran runs the specified function inside one database transaction.
// An error return from the function rolls every mutation back.
func (s *Store) WithinTran(ctx context.Context, fn func(tran chain.Tran) error) error {
	return s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&tran{db: db})
	})
}

// CurrentHeight returns the committed chain height.
func (s *Store) CurrentHeight(ctx context.Context) (uint64, error) {
	t := tran{db: s.db.WithContext(ctx)}
	return t.CurrentHeight()
}

// Balance returns the committed projected balance for the address.
func (s *Store) Balance(ctx context.Context, address string) (uint64, error) {
	t := tran{db: s.db.WithContext(ctx)}
	return t.Balance(address)
}

// =============================================================================

// tran implements the chain.Tran contract over a gorm session.
type tran struct {
	db *gorm.DB
}

// CurrentHeight returns the height of the latest block, zero when the chain
// is empty.
func (t *tran) CurrentHeight() (uint64, error) {
	var height uint64
	if err := t.db.Model(&Block{}).Select("COALESCE(MAX(height), 0)").Scan(&height).Error; err != nil {
		return 0, err
	}

	return height, nil
}

// InsertBlock records an accepted block.
func (t *tran) InsertBlock(id string, height uint64) error {
	return t.db.Create(&Block{Height: height, BlockID: id}).Error
}

// DeleteBlocksAbove removes every block record above the specified height.
func (t *tran) DeleteBlocksAbove(height uint64) error {
	return t.db.Where("height > ?", height).Delete(&Block{}).Error
}

// Output returns the output with the specified identity regardless of its
// spent state.
func (t *tran) Output(txID string, index uint32) (chain.Output, error) {
	var out Output
	if err := t.db.First(&out, "tx_id = ? AND output_idx = ?", txID, index).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return chain.Output{}, chain.ErrNotFound
		}
		return chain.Output{}, err
	}

	return toChainOutput(out), nil
}

// UnspentOutput returns the output with the specified identity only if it
// has not been spent.
func (t *tran) UnspentOutput(txID string, index uint32) (chain.Output, error) {
	var out Output
	if err := t.db.First(&out, "tx_id = ? AND output_idx = ? AND spent_height = 0", txID, index).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return chain.Output{}, chain.ErrNotFound
		}
		return chain.Output{}, err
	}

	return toChainOutput(out), nil
}

// InsertOutput records a newly created output.
func (t *tran) InsertOutput(output chain.Output) error {
	out := Output{
		TxID:          output.TxID,
		OutputIdx:     output.Index,
		Address:       output.Address,
		Value:         output.Value,
		CreatedHeight: output.CreatedAtHeight,
	}

	return t.db.Create(&out).Error
}

// MarkOutputSpent flips the specified output to spent. The unspent guard in
// the WHERE clause makes a second spend report not found.
func (t *tran) MarkOutputSpent(txID string, index uint32, spendingTxID string, height uint64) error {
	result := t.db.Model(&Output{}).
		Where("tx_id = ? AND output_idx = ? AND spent_height = 0", txID, index).
		Updates(map[string]any{"spent_height": height, "spent_by_tx_id": spendingTxID})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return chain.ErrNotFound
	}

	return nil
}

// UnspendOutputsAbove resets every output spent above the specified height
// back to unspent.
func (t *tran) UnspendOutputsAbove(height uint64) error {
	return t.db.Model(&Output{}).
		Where("spent_height > ?", height).
		Updates(map[string]any{"spent_height": 0, "spent_by_tx_id": ""}).Error
}

// DeleteOutputsAbove removes every output created above the specified
// height.
func (t *tran) DeleteOutputsAbove(height uint64) error {
	return t.db.Where("created_height > ?", height).Delete(&Output{}).Error
}

// Balance returns the projected balance for the address, zero when no
// record exists.
func (t *tran) Balance(address string) (uint64, error) {
	var bal Balance
	if err := t.db.First(&bal, "address = ?", address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return bal.Balance, nil
}

// AdjustBalance applies a signed delta to the address's balance, creating
// the record on first credit. A debit against a missing record means the
// ledger and projection have diverged, which the transaction must abort.
func (t *tran) AdjustBalance(address string, delta int64) error {
	result := t.db.Model(&Balance{}).
		Where("address = ?", address).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		if delta < 0 {
			return fmt.Errorf("no balance record for address %s to debit", address)
		}
		return t.db.Create(&Balance{Address: address, Balance: uint64(delta)}).Error
	}

	return nil
}

// UnspentBalances computes the per-address sum of unspent output values.
func (t *tran) UnspentBalances() (map[string]uint64, error) {
	var rows []struct {
		Address string
		Total   uint64
	}

	err := t.db.Model(&Output{}).
		Select("address, COALESCE(SUM(value), 0) AS total").
		Where("spent_height = 0").
		Group("address").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	balances := make(map[string]uint64, len(rows))
	for _, row := range rows {
		balances[row.Address] = row.Total
	}

	return balances, nil
}

// ReplaceBalances swaps the entire balance projection for the specified
// mapping.
func (t *tran) ReplaceBalances(balances map[string]uint64) error {
	if err := t.db.Where("1 = 1").Delete(&Balance{}).Error; err != nil {
		return err
	}

	for address, balance := range balances {
		if err := t.db.Create(&Balance{Address: address, Balance: balance}).Error; err != nil {
			return err
		}
	}

	return nil
}

// toChainOutput converts a database row to the core output model.
func toChainOutput(out Output) chain.Output {
	return chain.Output{
		TxID:            out.TxID,
		Index:           out.OutputIdx,
		Address:         out.Address,
		Value:           out.Value,
		CreatedAtHeight: out.CreatedHeight,
		Spent:           out.SpentHeight != 0,
		SpentByTxID:     out.SpentByTxID,
		SpentAtHeight:   out.SpentHeight,
	}
}
