// File: session/bolt_store.go
package session

import (
	"time"

	"go.etcd.io/bbolt"
)

const boltBucketSession = "session" // key: FlagKey -> "true"

// BoltStore keeps the flag in a local bbolt file.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) the state file at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketSession))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the state file.
func (b *BoltStore) Close() error {
	return b.db.Close()
}

// LoadFlag implements FlagStore.
func (b *BoltStore) LoadFlag() (bool, error) {
	var flag bool
	err := b.db.View(func(tx *bbolt.Tx) error {
		flag = string(tx.Bucket([]byte(boltBucketSession)).Get([]byte(FlagKey))) == "true"
		return nil
	})
	return flag, err
}

// SaveFlag implements FlagStore.
func (b *BoltStore) SaveFlag(loggedIn bool) error {
	value := "false"
	if loggedIn {
		value = "true"
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketSession)).Put([]byte(FlagKey), []byte(value))
	})
}

// ClearFlag implements FlagStore.
func (b *BoltStore) ClearFlag() error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketSession)).Delete([]byte(FlagKey))
	})
}
