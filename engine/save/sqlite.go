package save

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps all slots in a single database file, one row per slot.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the save database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening save database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		slot TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating saves table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (st *SQLiteStore) Close() error {
	return st.db.Close()
}

// Put writes slot data, replacing any existing save.
func (st *SQLiteStore) Put(slot string, data []byte) error {
	_, err := st.db.Exec(`
		INSERT INTO saves (slot, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slot) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		slot, string(data))
	return err
}

// Get reads slot data, or ErrNotFound.
func (st *SQLiteStore) Get(slot string) ([]byte, error) {
	var data string
	err := st.db.QueryRow(`SELECT data FROM saves WHERE slot = ?`, slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

// List returns slot names sorted alphabetically.
func (st *SQLiteStore) List() ([]string, error) {
	rows, err := st.db.Query(`SELECT slot FROM saves ORDER BY slot`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}
