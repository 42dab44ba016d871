package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type JournalEntry struct {
	ID     int `json:"id"`
	UserID int `json:"user_id"`
	// EntryDate is the plain calendar date, YYYY-MM-DD.
	EntryDate string `json:"entry_date"`
	// FormattedDate is derived from EntryDate at read time ("5 June 2025"),
	// never stored.
	FormattedDate string    `json:"formatted_date,omitempty"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
}
