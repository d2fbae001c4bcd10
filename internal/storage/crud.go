package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/logging"
)

// maxTxnRetries bounds how often a conflicting read-modify-write is replayed.
const maxTxnRetries = 5

var (
	// ErrKeyNotFound is returned when a key is not found in the database.
	ErrKeyNotFound = fmt.Errorf("key %w", errs.ErrNotFound)
)

// IsErrKeyNotFound returns true if the error is a key not found error.
func IsErrKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, badger.ErrKeyNotFound)
}

// decode unmarshals a stored value. Corrupt bytes are logged and reported as absent.
func decode[T any](key string, val []byte) (*T, bool) {
	v := new(T)
	if err := json.Unmarshal(val, v); err != nil {
		logging.Warn("skipping corrupt record", logging.KeyRecord, key, logging.KeyError, err)
		return nil, false
	}
	return v, true
}

// getIn reads and decodes key inside txn.
func getIn[T any](txn *badger.Txn, key string) (*T, bool, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var (
		v  *T
		ok bool
	)
	err = item.Value(func(val []byte) error {
		v, ok = decode[T](key, val)
		return nil
	})
	return v, ok, err
}

// setIn encodes v and writes it under key inside txn.
func setIn(txn *badger.Txn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return txn.Set([]byte(key), data)
}

// scanIn decodes every value under prefix inside txn, skipping corrupt records.
func scanIn[T any](txn *badger.Txn, prefix string) ([]*T, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchSize = 100
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	var results []*T
	for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
		item := it.Item()
		key := string(item.KeyCopy(nil))
		err := item.Value(func(val []byte) error {
			if v, ok := decode[T](key, val); ok {
				results = append(results, v)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// update runs fn in a read-write transaction, replaying it when badger reports
// a conflict with a concurrent writer.
func (d *DB) update(op string, fn func(txn *badger.Txn) error) error {
	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	var err error
	for attempt := 1; attempt <= maxTxnRetries; attempt++ {
		err = d.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return errs.StoreError(op, err)
		}
		logging.DebugLog("retrying conflicting transaction", logging.KeyOperation, op, "attempt", attempt)
	}

	re := errs.NewRecoverableError(op+" kept conflicting with concurrent writes", fmt.Errorf("%w: %w", errs.ErrConflict, err), maxTxnRetries)
	re.RetryCount = maxTxnRetries
	re.CanRetry = false
	return re
}

// GetOr returns the value stored under key, or fallback when the key is absent
// or its bytes no longer decode. Only I/O failures return an error.
func GetOr[T any](d *DB, key string, fallback T) (T, error) {
	out := fallback
	err := d.db.View(func(txn *badger.Txn) error {
		v, ok, err := getIn[T](txn, key)
		if err != nil {
			return err
		}
		if ok {
			out = *v
		}
		return nil
	})
	if err != nil {
		return fallback, errs.StoreError("get "+key, err)
	}
	return out, nil
}

// Get returns the value stored under key, or ErrKeyNotFound.
func Get[T any](d *DB, key string) (*T, error) {
	var out *T
	err := d.db.View(func(txn *badger.Txn) error {
		v, ok, err := getIn[T](txn, key)
		if err != nil {
			return err
		}
		if !ok {
			return ErrKeyNotFound
		}
		out = v
		return nil
	})
	if err != nil {
		return nil, errs.StoreError("get "+key, err)
	}
	return out, nil
}

// Set encodes v as JSON and stores it under key. The last write wins.
func (d *DB) Set(key string, v any) error {
	return d.update("set "+key, func(txn *badger.Txn) error {
		return setIn(txn, key, v)
	})
}

// Delete removes a key from the database. Deleting an absent key is not an error.
func (d *DB) Delete(key string) error {
	return d.update("delete "+key, func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// deleteIfExists removes key, skipping the write transaction when it is absent.
func (d *DB) deleteIfExists(key string) error {
	ok, err := d.Exists(key)
	if err != nil || !ok {
		return err
	}
	return d.Delete(key)
}

// Exists checks if a key exists in the database.
func (d *DB) Exists(key string) (bool, error) {
	var exists bool
	err := d.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				exists = false
				return nil
			}
			return err
		}
		exists = true
		return nil
	})
	return exists, errs.StoreError("exists "+key, err)
}

// ListByPrefix retrieves all keys with the given prefix.
func (d *DB) ListByPrefix(prefix string) ([]string, error) {
	var keys []string
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	return keys, errs.StoreError("list "+prefix, err)
}

// GetAllByPrefix retrieves all values with the given prefix, skipping records
// whose bytes no longer decode.
func GetAllByPrefix[T any](d *DB, prefix string) ([]*T, error) {
	var results []*T
	err := d.db.View(func(txn *badger.Txn) error {
		var err error
		results, err = scanIn[T](txn, prefix)
		return err
	})
	if err != nil {
		return nil, errs.StoreError("scan "+prefix, err)
	}
	return results, nil
}

// GetOrCreate returns the value under key, creating it with create when absent.
// The check and the insert happen in one transaction, so exactly one concurrent
// caller observes created == true.
func GetOrCreate[T any](d *DB, key string, create func() (*T, error)) (*T, bool, error) {
	var (
		out     *T
		created bool
	)
	err := d.update("get-or-create "+key, func(txn *badger.Txn) error {
		out, created = nil, false
		v, ok, err := getIn[T](txn, key)
		if err != nil {
			return err
		}
		if ok {
			out = v
			return nil
		}
		v, err = create()
		if err != nil {
			return err
		}
		if err := setIn(txn, key, v); err != nil {
			return err
		}
		out, created = v, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, created, nil
}

// Mutate performs a read-modify-write of key in one transaction. fn receives the
// current value (nil when absent) and returns the value to store; returning nil
// leaves the key untouched.
func Mutate[T any](d *DB, key string, fn func(cur *T, found bool) (*T, error)) (*T, error) {
	var out *T
	err := d.update("mutate "+key, func(txn *badger.Txn) error {
		cur, found, err := getIn[T](txn, key)
		if err != nil {
			return err
		}
		next, err := fn(cur, found)
		if err != nil {
			return err
		}
		out = next
		if next == nil {
			return nil
		}
		return setIn(txn, key, next)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
