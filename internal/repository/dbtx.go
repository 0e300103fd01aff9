// filepath: internal/repository/dbtx.go
package repository

import "database/sql"

const (
	tierLive    = "live"
	tierArchive = "archive"
)

// updateStatsInTx atomically adjusts the denormalized counters for one
// storage tier. Counters are clamped at zero so estimate drift from the
// approximate row sizes can never go negative.
func updateStatsInTx(tx *sql.Tx, tier string, rowDelta, dataDelta, indexDelta int64) error {
	query := `
		UPDATE storage_stats
		SET
			row_count = MAX(0, row_count + ?),
			data_bytes = MAX(0, data_bytes + ?),
			index_bytes = MAX(0, index_bytes + ?)
		WHERE tier = ?
	`
	_, err := tx.Exec(query, rowDelta, dataDelta, indexDelta, tier)
	return err
}
