package cache

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/elvisding0307/durian-cli/internal/domain/account"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore implements Store on a local sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the cache database at path
// and brings its schema up to date.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// WAL keeps a concurrent reader from blocking the replace transaction.
	pragmas := `PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;`
	if _, err := db.Exec(pragmas); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure cache database: %w", err)
	}

	if err := migrateSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func migrateSchema(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to prepare migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate cache schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, owner string) (*account.Snapshot, error) {
	watermark, err := s.Watermark(ctx, owner)
	if err != nil {
		return nil, err
	}
	// A zero watermark means no accepted pull yet; there is nothing to
	// serve even if stray rows existed.
	if watermark == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT rid, website, account, password FROM accounts WHERE username = ? ORDER BY website`,
		owner)
	if err != nil {
		return nil, fmt.Errorf("failed to select cached accounts: %w", err)
	}
	defer rows.Close()

	var records []account.Record
	for rows.Next() {
		var rec account.Record
		if err := rows.Scan(&rec.RID, &rec.Website, &rec.Account, &rec.Password); err != nil {
			return nil, fmt.Errorf("failed to scan cached account: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cached accounts: %w", err)
	}

	return &account.Snapshot{
		Owner:     owner,
		Watermark: watermark,
		Records:   records,
	}, nil
}

func (s *SQLiteStore) Replace(ctx context.Context, snapshot *account.Snapshot) error {
	if snapshot == nil || snapshot.Owner == "" {
		return fmt.Errorf("snapshot owner must not be empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO cache_metadata (username, last_update_time) VALUES (?, ?)`,
		snapshot.Owner, snapshot.Watermark); err != nil {
		return fmt.Errorf("failed to store watermark: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM accounts WHERE username = ?`, snapshot.Owner); err != nil {
		return fmt.Errorf("failed to drop previous snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO accounts (rid, username, website, account, password) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range snapshot.Records {
		if _, err := stmt.ExecContext(ctx,
			rec.RID, snapshot.Owner, rec.Website, rec.Account, rec.Password); err != nil {
			return fmt.Errorf("failed to insert account %d: %w", rec.RID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Watermark(ctx context.Context, owner string) (int64, error) {
	var watermark int64
	err := s.db.QueryRowContext(ctx,
		`SELECT last_update_time FROM cache_metadata WHERE username = ?`, owner).
		Scan(&watermark)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read watermark: %w", err)
	}
	return watermark, nil
}

func (s *SQLiteStore) Clear(ctx context.Context, owner string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE username = ?`, owner); err != nil {
		return fmt.Errorf("failed to clear cached accounts: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cache_metadata WHERE username = ?`, owner); err != nil {
		return fmt.Errorf("failed to clear cache metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
