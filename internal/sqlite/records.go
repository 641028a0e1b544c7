package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
}

// EnsureRecord returns the user's record, creating the default record on
// first use.
func (b *Backend) EnsureRecord(userID string) (types.EntitlementRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkUser(userID); err != nil {
		return types.EntitlementRecord{}, err
	}
	now := formatTime(b.now())
	if _, err := b.db.Exec(
		"INSERT OR IGNORE INTO entitlements (user_id, xp, credits, premium, created_at, updated_at) VALUES (?, 0, 0, 0, ?, ?)",
		userID, now, now,
	); err != nil {
		return types.EntitlementRecord{}, fmt.Errorf("creating record for %s: %w", userID, err)
	}
	return readRecord(b.db, userID)
}

// GetRecord returns the user's record or ErrNotFound.
func (b *Backend) GetRecord(userID string) (types.EntitlementRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkUser(userID); err != nil {
		return types.EntitlementRecord{}, err
	}
	return readRecord(b.db, userID)
}

// Adjust applies economy changes supplied by an external service: signed XP
// and credit deltas and, when premium is non-nil, a new premium status. The
// result must keep both balances non-negative. A ledger entry is written in
// the same transaction.
func (b *Backend) Adjust(userID string, xpDelta, creditsDelta int, premium *bool) (types.EntitlementRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkUser(userID); err != nil {
		return types.EntitlementRecord{}, err
	}

	tx, err := b.db.Begin()
	if err != nil {
		return types.EntitlementRecord{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	rec, err := readRecord(tx, userID)
	if err != nil {
		return types.EntitlementRecord{}, err
	}
	rec.XP += xpDelta
	rec.Credits += creditsDelta
	if premium != nil {
		rec.Premium = *premium
	}
	if err := rec.Validate(); err != nil {
		return types.EntitlementRecord{}, err
	}

	now := b.now()
	if err := updateBalances(tx, userID, rec, now); err != nil {
		return types.EntitlementRecord{}, err
	}
	if err := insertLedger(tx, types.LedgerEntry{
		EntryID:      generateUUID(),
		UserID:       userID,
		Operation:    types.LedgerOpAdjust,
		CreditsDelta: creditsDelta,
		XPDelta:      xpDelta,
		CreatedAt:    now,
	}); err != nil {
		return types.EntitlementRecord{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.EntitlementRecord{}, fmt.Errorf("committing adjustment: %w", err)
	}
	return rec, nil
}

// CommitAcquisition persists the result of a purchase or unlock. next is the
// record returned by the purchase service and chargedCredits the amount it
// debited. The stored credit balance must equal next.Credits+chargedCredits,
// and for zero-cost grants the stored XP must equal next.XP, otherwise the
// record changed since it was read and ErrStaleRecord is returned with
// nothing written. Owned parts are only ever added.
func (b *Backend) CommitAcquisition(userID, partID, operation string, next types.EntitlementRecord, chargedCredits int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkUser(userID); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stored, err := readRecord(tx, userID)
	if err != nil {
		return err
	}
	if stored.Owns(partID) {
		// Idempotent repeat; nothing to record.
		return nil
	}
	if stored.Credits != next.Credits+chargedCredits {
		return fmt.Errorf("%w: stored credits %d, expected %d",
			types.ErrStaleRecord, stored.Credits, next.Credits+chargedCredits)
	}
	// An unlock may have been granted on an XP total that has since dropped.
	if chargedCredits == 0 && stored.XP != next.XP {
		return fmt.Errorf("%w: stored xp %d, expected %d", types.ErrStaleRecord, stored.XP, next.XP)
	}

	now := b.now()
	stored.Credits = next.Credits
	if err := updateBalances(tx, userID, stored, now); err != nil {
		return err
	}
	for _, id := range next.Owned() {
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO owned_parts (user_id, part_id, acquired_at) VALUES (?, ?, ?)",
			userID, id, formatTime(now),
		); err != nil {
			return fmt.Errorf("recording owned part %s: %w", id, err)
		}
	}
	if err := insertLedger(tx, types.LedgerEntry{
		EntryID:      generateUUID(),
		UserID:       userID,
		PartID:       partID,
		Operation:    operation,
		CreditsDelta: -chargedCredits,
		CreatedAt:    now,
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing acquisition: %w", err)
	}
	return nil
}

func readRecord(q queryer, userID string) (types.EntitlementRecord, error) {
	rec := types.NewEntitlementRecord()
	var premium int
	err := q.QueryRow(
		"SELECT xp, credits, premium FROM entitlements WHERE user_id = ?", userID,
	).Scan(&rec.XP, &rec.Credits, &premium)
	if errors.Is(err, sql.ErrNoRows) {
		return types.EntitlementRecord{}, fmt.Errorf("%w: %s", types.ErrNotFound, userID)
	}
	if err != nil {
		return types.EntitlementRecord{}, fmt.Errorf("reading record %s: %w", userID, err)
	}
	rec.Premium = premium != 0

	rows, err := q.Query("SELECT part_id FROM owned_parts WHERE user_id = ?", userID)
	if err != nil {
		return types.EntitlementRecord{}, fmt.Errorf("reading owned parts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return types.EntitlementRecord{}, fmt.Errorf("scanning owned part: %w", err)
		}
		rec.OwnedPartIDs[id] = true
	}
	if err := rows.Err(); err != nil {
		return types.EntitlementRecord{}, fmt.Errorf("iterating owned parts: %w", err)
	}
	return rec, nil
}
