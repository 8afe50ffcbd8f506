package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerBackend keeps every collection under "collection/<name>" in one
// badger database. A multi-document Write is a single transaction.
type BadgerBackend struct {
	db *badger.DB
}

func NewBadgerBackend(path string, inMemory bool, collections []string) (*BadgerBackend, error) {
	opts := badger.DefaultOptions(path)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	err = db.Update(func(txn *badger.Txn) error {
		for _, c := range collections {
			_, err := txn.Get(badgerKey(c))
			if errors.Is(err, badger.ErrKeyNotFound) {
				if err := txn.Set(badgerKey(c), emptyCollection); err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("seed badger collections: %w", err)
	}

	return &BadgerBackend{db: db}, nil
}

func badgerKey(collection string) []byte {
	return []byte("collection/" + collection)
}

func (b *BadgerBackend) Read(ctx context.Context, collection string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(collection))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("read %s: %w", collection, ErrMissingCollection)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	return data, nil
}

func (b *BadgerBackend) Write(ctx context.Context, docs ...Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		for _, d := range docs {
			if err := txn.Set(badgerKey(d.Collection), d.Data); err != nil {
				return fmt.Errorf("set %s: %w", d.Collection, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("badger write: %w", err)
	}
	return nil
}

func (b *BadgerBackend) Close() error {
	return b.db.Close()
}
