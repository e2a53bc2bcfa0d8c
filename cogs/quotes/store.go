package quotes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

var ErrQuoteNotFound = errors.New("quote not found")

type Quote struct {
	ID      int64
	ChatID  int64
	Text    string
	AddedBy string
}

// Store persists quotes per chat in a local sqlite database.
type Store struct {
	db *sql.DB
}

func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open quotes database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS quotes (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			chat_id  INTEGER NOT NULL,
			text     TEXT    NOT NULL,
			added_by TEXT    NOT NULL,
			added_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_quotes_chat_id ON quotes (chat_id);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate quotes database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Add(ctx context.Context, chatID int64, text string, addedBy string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO quotes (chat_id, text, added_by) VALUES (?, ?, ?)`,
		chatID, text, addedBy,
	)
	if err != nil {
		return 0, err
	}

	return result.LastInsertId()
}

func (s *Store) Get(ctx context.Context, chatID int64, id int64) (Quote, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, chat_id, text, added_by FROM quotes WHERE chat_id = ? AND id = ?`,
		chatID, id,
	))
}

func (s *Store) Random(ctx context.Context, chatID int64) (Quote, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, chat_id, text, added_by FROM quotes WHERE chat_id = ? ORDER BY RANDOM() LIMIT 1`,
		chatID,
	))
}

func (s *Store) scanOne(row *sql.Row) (Quote, error) {
	var q Quote

	err := row.Scan(&q.ID, &q.ChatID, &q.Text, &q.AddedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return Quote{}, ErrQuoteNotFound
	}
	if err != nil {
		return Quote{}, err
	}

	return q, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
