package sqlite

// initSchema creates the database schema if it doesn't exist.
func (db *DB) initSchema() error {
	schema := `
	-- Files opened or saved by the editor, one row per path
	CREATE TABLE IF NOT EXISTS recent_files (
		path TEXT PRIMARY KEY,
		action TEXT NOT NULL,
		size_bytes INTEGER NOT NULL DEFAULT 0,
		touched_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_recent_files_touched_at ON recent_files(touched_at DESC);
	`

	_, err := db.conn.Exec(schema)
	return err
}
