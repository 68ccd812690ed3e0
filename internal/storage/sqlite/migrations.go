package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS bills (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    type TEXT NOT NULL,
    name TEXT NOT NULL,
    amount INTEGER NOT NULL,
    date TEXT NOT NULL,
    vat TEXT NOT NULL DEFAULT '',
    pct INTEGER NOT NULL DEFAULT 20,
    commentary TEXT NOT NULL DEFAULT '',
    file_url TEXT NOT NULL DEFAULT '',
    file_name TEXT NOT NULL DEFAULT '',
    file_key TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'pending',
    comment_admin TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_bills_email ON bills(email);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
