// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package eeconfig persists keyboard settings across restarts, the way the
// firmware keeps them in EEPROM.
//
// Settings are integers stored by name in a sqlite database.
package eeconfig

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a sqlite backed settings store.
//
// It implements rgbmatrix.Store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. ":memory:" keeps the settings
// in memory only.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, wrap(err)
	}
	// A memory database only lives as long as its connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`create table if not exists settings(key text primary key, value integer not null);`); err != nil {
		return nil, errors.Join(wrap(err), db.Close())
	}
	return &Store{db: db}, nil
}

// Get returns the value stored under key. The bool is false when key was
// never set.
func (s *Store) Get(key string) (int64, bool, error) {
	var v int64
	err := s.db.QueryRow(`select value from settings where key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, wrap(err)
	}
	return v, true, nil
}

// Set stores v under key.
func (s *Store) Set(key string, v int64) error {
	_, err := s.db.Exec(`insert into settings(key, value) values(?, ?)
	    on conflict(key) do update set value = excluded.value`, key, v)
	return wrap(err)
}

// All returns every stored setting.
func (s *Store) All() (map[string]int64, error) {
	rows, err := s.db.Query(`select key, value from settings order by key`)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()
	out := map[string]int64{}
	for rows.Next() {
		var k string
		var v int64
		if err := rows.Scan(&k, &v); err != nil {
			return nil, wrap(err)
		}
		out[k] = v
	}
	return out, wrap(rows.Err())
}

// Reset forgets every setting, like clearing the EEPROM.
func (s *Store) Reset() error {
	_, err := s.db.Exec(`delete from settings`)
	return wrap(err)
}

// Close closes the database.
func (s *Store) Close() error {
	return wrap(s.db.Close())
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("eeconfig: %w", err)
}
