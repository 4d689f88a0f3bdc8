package sqlite

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// maxRecentFiles bounds the recent_files table.
const maxRecentFiles = 100

// Recent-file actions.
const (
	ActionOpen = "open"
	ActionSave = "save"
)

// RecentFile is a file the editor opened or saved.
type RecentFile struct {
	Path      string
	Action    string
	SizeBytes int64
	TouchedAt time.Time
}

// RecentStore records and lists recently used files.
type RecentStore struct {
	db  *DB
	now func() time.Time
}

// NewRecentStore creates a new recent-files store.
func NewRecentStore(db *DB) *RecentStore {
	return &RecentStore{db: db, now: time.Now}
}

// Record stores a file transfer. Paths are made absolute so the same file
// reached from different working directories shares one entry; an existing
// entry is updated and moves to the top.
func (s *RecentStore) Record(path, action string, size int) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if action != ActionOpen && action != ActionSave {
		return fmt.Errorf("unknown recent-file action %q", action)
	}

	_, err := s.db.conn.Exec(`
		INSERT INTO recent_files (path, action, size_bytes, touched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			action = excluded.action,
			size_bytes = excluded.size_bytes,
			touched_at = excluded.touched_at
	`, path, action, size, s.now())
	if err != nil {
		return fmt.Errorf("failed to record recent file: %w", err)
	}

	// Cleanup old entries
	_, err = s.db.conn.Exec(`
		DELETE FROM recent_files
		WHERE path NOT IN (
			SELECT path FROM recent_files
			ORDER BY touched_at DESC
			LIMIT ?
		)
	`, maxRecentFiles)
	if err != nil {
		return fmt.Errorf("failed to trim recent files: %w", err)
	}

	return nil
}

// GetRecent returns up to limit entries, newest first.
func (s *RecentStore) GetRecent(limit int) ([]RecentFile, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.conn.Query(`
		SELECT path, action, size_bytes, touched_at
		FROM recent_files
		ORDER BY touched_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []RecentFile
	for rows.Next() {
		var f RecentFile
		if err := rows.Scan(&f.Path, &f.Action, &f.SizeBytes, &f.TouchedAt); err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

// Clear removes all entries.
func (s *RecentStore) Clear() error {
	_, err := s.db.conn.Exec(`DELETE FROM recent_files`)
	return err
}
