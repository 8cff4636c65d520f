/*
Package database uses SQLite to store known good PGM2 memory card images
so that blank cards can be reissued with working contents, keyed by the
title they belong to.
*/
package database

import (
	"crypto/sha1"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bodgit/pgm2/memcard"

	// Database driver
	_ "github.com/mattn/go-sqlite3"
)

var (
	errNoFile      = errors.New("no file")
	errInvalidCard = errors.New("database: invalid card image")

	// ErrCardNotFound is returned when no image is stored for a title
	ErrCardNotFound = errors.New("database: card not found")
)

// Card is one stored card image
type Card struct {
	Title string
	SHA1  string
	Data  []byte
}

// Database holds the SQLite database handle
type Database struct {
	db *sql.DB
}

// New opens an existing database or returns a new empty one
func New(file string) (*Database, error) {
	if file == "" {
		return nil, errNoFile
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS card (id INTEGER PRIMARY KEY NOT NULL, title TEXT NOT NULL, sha1 TEXT NOT NULL UNIQUE, data BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

// Close closes the database
func (d *Database) Close() error {
	return d.db.Close()
}

// Import stores a card image for a title. Duplicate images are rejected by
// their checksum
func (d *Database) Import(title string, data []byte) error {
	if len(data) != memcard.Size {
		return errInvalidCard
	}

	_, err := d.db.Exec("INSERT INTO card (title, sha1, data) VALUES (?, ?, ?)", title, fmt.Sprintf("%x", sha1.Sum(data)), data)

	return err
}

// Export returns the most recently stored card image for a title
func (d *Database) Export(title string) ([]byte, error) {
	var data []byte
	if err := d.db.QueryRow("SELECT data FROM card WHERE title = ? ORDER BY id DESC LIMIT 1", title).Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCardNotFound
		}
		return nil, err
	}

	return data, nil
}

// Cards returns every stored card image
func (d *Database) Cards() ([]Card, error) {
	rows, err := d.db.Query("SELECT title, sha1, data FROM card ORDER BY title, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []Card
	for rows.Next() {
		var c Card
		if err := rows.Scan(&c.Title, &c.SHA1, &c.Data); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}

	return cards, rows.Err()
}
