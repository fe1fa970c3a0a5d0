package store

import (
	"database/sql"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists records in a single-table sqlite database. Batches are
// applied inside one transaction.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed migrates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS accounts (
		address TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Get(addr solanago.PublicKey) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM accounts WHERE address = ?`, addr.String()).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *SQLiteStore) Apply(batch Batch) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, rec := range batch.Puts {
		if _, err := tx.Exec(
			`INSERT INTO accounts (address, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(address) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
			rec.Address.String(), rec.Data,
		); err != nil {
			return err
		}
	}
	for _, addr := range batch.Deletes {
		if _, err := tx.Exec(`DELETE FROM accounts WHERE address = ?`, addr.String()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
