package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// SaveSelection stores an opaque selection blob for the user, replacing any
// previous one.
func (b *Backend) SaveSelection(userID string, blob []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkUser(userID); err != nil {
		return err
	}
	_, err := b.db.Exec(
		`INSERT INTO selections (user_id, snapshot, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET snapshot = excluded.snapshot, updated_at = excluded.updated_at`,
		userID, blob, formatTime(b.now()),
	)
	if err != nil {
		return fmt.Errorf("saving selection for %s: %w", userID, err)
	}
	return nil
}

// LoadSelection returns the user's saved blob or ErrNotFound.
func (b *Backend) LoadSelection(userID string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkUser(userID); err != nil {
		return nil, err
	}
	var blob []byte
	err := b.db.QueryRow("SELECT snapshot FROM selections WHERE user_id = ?", userID).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no saved selection for %s", types.ErrNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading selection for %s: %w", userID, err)
	}
	return blob, nil
}

// DeleteSelection removes the user's saved blob. Deleting a missing blob
// succeeds.
func (b *Backend) DeleteSelection(userID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkUser(userID); err != nil {
		return err
	}
	if _, err := b.db.Exec("DELETE FROM selections WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("deleting selection for %s: %w", userID, err)
	}
	return nil
}
