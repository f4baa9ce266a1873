package client

import (
	"encoding/json"
	"errors"

	badger "github.com/dgraph-io/badger/v4"
)

// LocalStore is the device-local key/value store the cart and wishlist are
// persisted to between sessions.
type LocalStore struct {
	db *badger.DB
}

func OpenLocalStore(dir string) (*LocalStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &LocalStore{db: db}, nil
}

// Get unmarshals the value under key into out. The second return reports
// whether the key existed.
func (s *LocalStore) Get(key string, out interface{}) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *LocalStore) Put(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (s *LocalStore) Close() error {
	return s.db.Close()
}
