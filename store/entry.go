package store

import (
	"context"
	"database/sql"
	"errors"

	"daybook/models"
)

var (
	ErrEntryNotFound      = errors.New("entry not found")
	ErrDuplicateEntryDate = errors.New("entry already exists for this date")
)

// EntryStore handles journal entry persistence.
type EntryStore struct {
	db *sql.DB
}

func NewEntryStore(db *sql.DB) *EntryStore {
	return &EntryStore{db: db}
}

// ListByUser returns all of a user's entries, most recent date first.
func (s *EntryStore) ListByUser(ctx context.Context, userID int) ([]models.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, entry_date, content, created_at FROM journal_entries WHERE user_id = ? ORDER BY entry_date DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.EntryDate, &e.Content, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Create inserts a new entry for the user and returns it with the generated id.
func (s *EntryStore) Create(ctx context.Context, userID int, entryDate, content string) (*models.JournalEntry, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO journal_entries (user_id, entry_date, content) VALUES (?, ?, ?)",
		userID, entryDate, content)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEntryDate
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.getOwned(ctx, int(id), userID)
}

// Update rewrites an entry's content and date. The statement is keyed by
// (id, user_id), so a missing row and someone else's row are indistinguishable.
func (s *EntryStore) Update(ctx context.Context, userID, entryID int, entryDate, content string) (*models.JournalEntry, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE journal_entries SET content = ?, entry_date = ? WHERE id = ? AND user_id = ?",
		content, entryDate, entryID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEntryDate
		}
		return nil, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrEntryNotFound
	}
	return s.getOwned(ctx, entryID, userID)
}

// Delete removes an entry, with the same ownership semantics as Update.
func (s *EntryStore) Delete(ctx context.Context, userID, entryID int) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM journal_entries WHERE id = ? AND user_id = ?", entryID, userID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (s *EntryStore) getOwned(ctx context.Context, id, userID int) (*models.JournalEntry, error) {
	var e models.JournalEntry
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, entry_date, content, created_at FROM journal_entries WHERE id = ? AND user_id = ?",
		id, userID).
		Scan(&e.ID, &e.UserID, &e.EntryDate, &e.Content, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}
