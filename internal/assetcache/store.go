// Package assetcache persists the API asset listing between runs so
// symbol resolution does not re-fetch it on every process start.
package assetcache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Row is one cached asset listing entry.
type Row struct {
	Chain     int64
	Contract  string
	Symbol    string
	IsDefault bool
}

// Store is a single-file sqlite cache of the asset listing.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates or opens the cache file, creating parent directories
// as needed.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("asset cache path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func ensureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS assets (
			chain INTEGER NOT NULL,
			contract TEXT NOT NULL,
			symbol TEXT NOT NULL,
			is_default INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (chain, contract)
		);`,
		`CREATE TABLE IF NOT EXISTS assets_meta (
			key TEXT PRIMARY KEY,
			refreshed_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_assets_symbol ON assets(symbol);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("asset cache schema failed: %w", err)
		}
	}
	return nil
}

// Close closes the cache file.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Load returns the cached rows when they are younger than maxAge. The
// second return reports whether the cache was usable.
func (s *Store) Load(ctx context.Context, maxAge time.Duration) ([]Row, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, false, fmt.Errorf("asset cache is closed")
	}

	var refreshedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT refreshed_at FROM assets_meta WHERE key = 'assets'`).Scan(&refreshedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if time.Since(time.UnixMilli(refreshedAt)) > maxAge {
		return nil, false, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT chain, contract, symbol, is_default FROM assets ORDER BY chain, contract`)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var list []Row
	for rows.Next() {
		var r Row
		var isDefault int64
		if err := rows.Scan(&r.Chain, &r.Contract, &r.Symbol, &isDefault); err != nil {
			return nil, false, err
		}
		r.IsDefault = isDefault != 0
		list = append(list, r)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return list, true, nil
}

// Replace swaps the cached listing for the given rows and stamps the
// refresh time.
func (s *Store) Replace(ctx context.Context, list []Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return fmt.Errorf("asset cache is closed")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM assets`); err != nil {
		return err
	}
	for _, r := range list {
		isDefault := 0
		if r.IsDefault {
			isDefault = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO assets (chain, contract, symbol, is_default) VALUES (?, ?, ?, ?)`,
			r.Chain, r.Contract, r.Symbol, isDefault); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO assets_meta (key, refreshed_at) VALUES ('assets', ?)`,
		time.Now().UnixMilli()); err != nil {
		return err
	}
	return tx.Commit()
}
