package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

func updateBalances(tx *sql.Tx, userID string, rec types.EntitlementRecord, now time.Time) error {
	premium := 0
	if rec.Premium {
		premium = 1
	}
	_, err := tx.Exec(
		"UPDATE entitlements SET xp = ?, credits = ?, premium = ?, updated_at = ? WHERE user_id = ?",
		rec.XP, rec.Credits, premium, formatTime(now), userID,
	)
	if err != nil {
		return fmt.Errorf("updating record %s: %w", userID, err)
	}
	return nil
}

func insertLedger(tx *sql.Tx, e types.LedgerEntry) error {
	var partID *string
	if e.PartID != "" {
		partID = &e.PartID
	}
	_, err := tx.Exec(
		"INSERT INTO ledger (entry_id, user_id, part_id, operation, credits_delta, xp_delta, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		e.EntryID, e.UserID, partID, e.Operation, e.CreditsDelta, e.XPDelta, formatTime(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("recording ledger entry: %w", err)
	}
	return nil
}

// Ledger returns the user's ledger entries, oldest first. UUID v7 entry IDs
// sort by creation time.
func (b *Backend) Ledger(userID string) ([]types.LedgerEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkUser(userID); err != nil {
		return nil, err
	}
	rows, err := b.db.Query(
		"SELECT entry_id, user_id, part_id, operation, credits_delta, xp_delta, created_at FROM ledger WHERE user_id = ? ORDER BY entry_id ASC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var entries []types.LedgerEntry
	for rows.Next() {
		var (
			e         types.LedgerEntry
			partID    sql.NullString
			createdAt string
		)
		if err := rows.Scan(&e.EntryID, &e.UserID, &partID, &e.Operation, &e.CreditsDelta, &e.XPDelta, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}
		e.PartID = partID.String
		if e.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing ledger timestamp: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger: %w", err)
	}
	return entries, nil
}

// ExportLedger writes the user's ledger to path as JSONL, one entry per
// line, replacing the file atomically.
func (b *Backend) ExportLedger(userID, path string) (int, error) {
	entries, err := b.Ledger(userID)
	if err != nil {
		return 0, err
	}
	records := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return 0, fmt.Errorf("encoding ledger entry %s: %w", e.EntryID, err)
		}
		records = append(records, data)
	}
	if err := writeJSONL(path, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
