package db

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the SQLite database at dataSourceName and creates the schema if
// it does not exist yet. The UNIQUE(user_id, entry_date) constraint is what
// makes "one entry per day" hold under concurrent inserts.
func Open(dataSourceName string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", dataSourceName+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	createTables := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS journal_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		entry_date TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		UNIQUE (user_id, entry_date)
	);
	`

	if _, err := conn.Exec(createTables); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}
