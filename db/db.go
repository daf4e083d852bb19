// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
//
// Package db stores named queries in a bolt file.
package db

import (
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/karmarun/lsq/qvm/err"
	"github.com/karmarun/lsq/qvm/xpr"
	"github.com/karmarun/lsq/query"
)

const (
	Perm    = 0600
	Timeout = time.Second * 3
)

var queriesBucket = []byte("queries")

type Store struct {
	db *bolt.DB
}

// Open opens the store at path, creating it if missing.
func Open(path string) (*Store, err.Error) {
	db, e := bolt.Open(path, Perm, &bolt.Options{Timeout: Timeout})
	if e != nil {
		return nil, err.StoreError{Problem: "opening " + path + ": " + e.Error()}
	}
	e = db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(queriesBucket)
		return e
	})
	if e != nil {
		db.Close()
		return nil, err.StoreError{Problem: e.Error()}
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() err.Error {
	if e := s.db.Close(); e != nil {
		return err.StoreError{Problem: e.Error()}
	}
	return nil
}

// Save stores source under name. The source must parse.
func (s *Store) Save(name, source string) err.Error {
	if !xpr.IsName(name) {
		return err.StoreError{Problem: "invalid query name", Name: name}
	}
	if _, e := query.Parse(source); e != nil {
		return e
	}
	e := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(queriesBucket).Put([]byte(name), []byte(source))
	})
	if e != nil {
		return err.StoreError{Problem: e.Error(), Name: name}
	}
	return nil
}

func (s *Store) Load(name string) (string, err.Error) {
	source := ""
	found := false
	e := s.db.View(func(tx *bolt.Tx) error {
		bs := tx.Bucket(queriesBucket).Get([]byte(name))
		if bs != nil {
			source, found = string(bs), true // copy, bs is only valid inside the transaction
		}
		return nil
	})
	if e != nil {
		return "", err.StoreError{Problem: e.Error(), Name: name}
	}
	if !found {
		return "", err.StoreError{Problem: "no such saved query", Name: name}
	}
	return source, nil
}

func (s *Store) Forget(name string) err.Error {
	found := false
	e := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(queriesBucket)
		if b.Get([]byte(name)) == nil {
			return nil
		}
		found = true
		return b.Delete([]byte(name))
	})
	if e != nil {
		return err.StoreError{Problem: e.Error(), Name: name}
	}
	if !found {
		return err.StoreError{Problem: "no such saved query", Name: name}
	}
	return nil
}

// List returns all saved query names, sorted.
func (s *Store) List() ([]string, err.Error) {
	names := make([]string, 0, 16)
	e := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(queriesBucket).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if e != nil {
		return nil, err.StoreError{Problem: e.Error()}
	}
	sort.Strings(names)
	return names, nil
}
