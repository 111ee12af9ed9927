// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fixturestore keeps transaction fixtures in a bbolt database, keyed
// by the hash of their CBOR encoding and indexed by name
package fixturestore

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/blinklabs-io/votesecure/host"
)

var (
	bucketFixtures = []byte("fixtures_by_id")
	bucketNames    = []byte("fixture_id_by_name")
)

var ErrNameRequired = errors.New("fixture name required")

// Entry summarizes a stored fixture
type Entry struct {
	Id       [32]byte
	Name     string
	Expected int8
}

type Store struct {
	db     *bolt.DB
	logger *slog.Logger
}

// StoreOptionFunc is a type that represents functions that modify the Store config
type StoreOptionFunc func(*Store)

// WithLogger specifies the logger for store operations
func WithLogger(logger *slog.Logger) StoreOptionFunc {
	return func(s *Store) {
		s.logger = logger
	}
}

func Open(path string, opts ...StoreOptionFunc) (*Store, error) {
	if path == "" {
		return nil, errors.New("database path required")
	}
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open bbolt: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketFixtures, bucketNames} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", string(b), err)
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	s.db = db
	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put stores the fixture and points its name at it. A fixture stored under
// an existing name replaces the previous one in the name index
func (s *Store) Put(f *host.Fixture) ([32]byte, error) {
	if f.Name == "" {
		return [32]byte{}, ErrNameRequired
	}
	data := f.Cbor()
	if data == nil {
		var err error
		data, err = f.Encode()
		if err != nil {
			return [32]byte{}, fmt.Errorf("encode fixture: %w", err)
		}
	}
	id, err := f.Id()
	if err != nil {
		return [32]byte{}, err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketFixtures).Put(id[:], data); err != nil {
			return err
		}
		return tx.Bucket(bucketNames).Put([]byte(f.Name), id[:])
	})
	if err != nil {
		return [32]byte{}, err
	}
	s.logger.Debug(
		"stored fixture",
		"name", f.Name,
		"id", fmt.Sprintf("%x", id),
		"size", len(data),
	)
	return id, nil
}

func (s *Store) Get(id [32]byte) (*host.Fixture, bool, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketFixtures).Get(id[:])
		if v == nil {
			return nil
		}
		out = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if out == nil {
		return nil, false, nil
	}
	f, err := host.DecodeFixture(out)
	if err != nil {
		return nil, false, fmt.Errorf("fixture %x: %w", id, err)
	}
	return f, true, nil
}

func (s *Store) GetByName(name string) (*host.Fixture, bool, error) {
	var id [32]byte
	var found bool
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketNames).Get([]byte(name))
		if v == nil {
			return nil
		}
		if len(v) != len(id) {
			return fmt.Errorf("corrupt name index entry for %q", name)
		}
		copy(id[:], v)
		found = true
		return nil
	})
	if err != nil || !found {
		return nil, false, err
	}
	return s.Get(id)
}

// List returns the named fixtures ordered by name
func (s *Store) List() ([]Entry, error) {
	var ret []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		fixtures := tx.Bucket(bucketFixtures)
		return tx.Bucket(bucketNames).ForEach(func(k, v []byte) error {
			data := fixtures.Get(v)
			if data == nil {
				return fmt.Errorf("name %q points at missing fixture %x", k, v)
			}
			f, err := host.DecodeFixture(data)
			if err != nil {
				return fmt.Errorf("fixture %q: %w", k, err)
			}
			entry := Entry{
				Name:     string(k),
				Expected: f.Expected,
			}
			copy(entry.Id[:], v)
			ret = append(ret, entry)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Delete removes a fixture by name
func (s *Store) Delete(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		names := tx.Bucket(bucketNames)
		id := append([]byte(nil), names.Get([]byte(name))...)
		if id == nil {
			return nil
		}
		// Keep the fixture while another name still references it
		shared := false
		if err := names.ForEach(func(k, v []byte) error {
			if string(k) != name && string(v) == string(id) {
				shared = true
			}
			return nil
		}); err != nil {
			return err
		}
		if !shared {
			if err := tx.Bucket(bucketFixtures).Delete(id); err != nil {
				return err
			}
		}
		return names.Delete([]byte(name))
	})
}
