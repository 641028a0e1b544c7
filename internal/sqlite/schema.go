package sqlite

// Schema DDL for all tables. Statements are idempotent so Attach can run
// them against an existing database.
const (
	createEntitlements = `CREATE TABLE IF NOT EXISTS entitlements (
    user_id TEXT PRIMARY KEY,
    xp INTEGER NOT NULL CHECK (xp >= 0),
    credits INTEGER NOT NULL CHECK (credits >= 0),
    premium INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createOwnedParts = `CREATE TABLE IF NOT EXISTS owned_parts (
    user_id TEXT NOT NULL,
    part_id TEXT NOT NULL,
    acquired_at TEXT NOT NULL,
    PRIMARY KEY (user_id, part_id),
    FOREIGN KEY (user_id) REFERENCES entitlements(user_id)
);`

	createSelections = `CREATE TABLE IF NOT EXISTS selections (
    user_id TEXT PRIMARY KEY,
    snapshot BLOB NOT NULL,
    updated_at TEXT NOT NULL
);`

	createLedger = `CREATE TABLE IF NOT EXISTS ledger (
    entry_id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    part_id TEXT,
    operation TEXT NOT NULL,
    credits_delta INTEGER NOT NULL,
    xp_delta INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    FOREIGN KEY (user_id) REFERENCES entitlements(user_id)
);`
)

// Index DDL for common queries.
const (
	idxLedgerUser = `CREATE INDEX IF NOT EXISTS idx_ledger_user ON ledger(user_id, entry_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createEntitlements,
	createOwnedParts,
	createSelections,
	createLedger,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxLedgerUser,
}
