package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/logging"
	"github.com/manav03panchal/careeros/internal/model"
)

// Health is the result of an integrity scan of the local store.
type Health struct {
	Healthy   bool           `json:"healthy"`
	CheckedAt time.Time      `json:"checked_at"`
	Records   map[string]int `json:"records"`
	Corrupt   []string       `json:"corrupt,omitempty"`
	Unknown   []string       `json:"unknown,omitempty"`
}

// decoders check that a stored value decodes as its table's type.
var decoders = map[string]func([]byte) error{
	model.TableKPIs:           decodeAs[model.KPI],
	model.TableCompanies:      decodeAs[model.Company],
	model.TableScheduleBlocks: decodeAs[model.ScheduleBlock],
	model.TableNonNegotiables: decodeAs[model.NonNegotiable],
	model.TableCompletions:    decodeAs[model.DailyCompletion],
	model.TableSeedMarkers:    decodeAs[model.SeedMarker],
}

func decodeAs[T any](val []byte) error {
	return json.Unmarshal(val, new(T))
}

// CheckIntegrity reads every record and reports values that no longer decode
// and keys that belong to no table. Corrupt records are skipped by every list
// operation, so the scan is the only place they surface.
func CheckIntegrity(db *DB) (*Health, error) {
	h := &Health{
		Healthy:   true,
		CheckedAt: model.Now(),
		Records:   map[string]int{},
	}

	err := db.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.Key())
			table, _, _ := strings.Cut(key, ":")

			check, ok := decoders[table]
			if !ok {
				h.Unknown = append(h.Unknown, key)
				continue
			}
			if err := item.Value(check); err != nil {
				h.Corrupt = append(h.Corrupt, key)
				continue
			}
			h.Records[table]++
		}
		return nil
	})
	if err != nil {
		return nil, errs.StoreError("check", err)
	}

	if len(h.Corrupt) > 0 {
		h.Healthy = false
		logging.Warn("corrupt records found", logging.KeyCount, len(h.Corrupt))
	}
	return h, nil
}

// Backup writes a full backup of the store to w and returns its version.
func Backup(db *DB, w io.Writer) (uint64, error) {
	version, err := db.db.Backup(w, 0)
	if err != nil {
		return 0, errs.StoreError("backup", err)
	}
	logging.Info("store backed up", "version", version)
	return version, nil
}

// Restore loads a backup written by Backup. Keys in the backup overwrite
// existing ones; other keys are kept.
func Restore(db *DB, r io.Reader) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	if err := db.db.Load(r, 16); err != nil {
		return errs.StoreError("restore", err)
	}
	logging.Info("store restored")
	return nil
}

// corruptionPatterns are fragments of badger errors raised for damaged files.
var corruptionPatterns = []string{
	"checksum mismatch",
	"corrupt",
	"unexpected eof",
	"bad magic",
	"truncate",
}

// IsCorrupted reports whether err means the store's files are damaged.
func IsCorrupted(err error) bool {
	if err == nil {
		return false
	}
	if errs.Is(err, errs.ErrStoreCorrupted) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range corruptionPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// openError classifies a failure to open the store at path.
func openError(path string, err error) error {
	if IsCorrupted(err) {
		return errs.NewSystemErrorWithOp("open", "local store at "+path+" is damaged",
			fmt.Errorf("%w: %w", errs.ErrStoreCorrupted, err))
	}
	return err
}
