// Package model defines the domain models for Career OS.
package model

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Entity is the interface that all account-scoped records implement.
type Entity interface {
	// Meta returns the shared record header.
	Meta() *Record
	// Table returns the table (and key prefix) the entity is stored under.
	Table() string
}

// Table names double as key prefixes in the key-value store.
const (
	TableKPIs           = "kpis"
	TableCompanies      = "companies"
	TableScheduleBlocks = "schedule_blocks"
	TableNonNegotiables = "non_negotiables"
	TableCompletions    = "daily_completions"
	TableSeedMarkers    = "seed_markers"
)

// SeedTables lists the tables populated by the bootstrap service, in insert order.
var SeedTables = []string{
	TableKPIs,
	TableCompanies,
	TableScheduleBlocks,
	TableNonNegotiables,
}

// Record is the header embedded in every entity.
type Record struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Meta returns the record itself so embedding types satisfy Entity.
func (r *Record) Meta() *Record {
	return r
}

// Stamp assigns a fresh identifier, the owning account and both timestamps.
func (r *Record) Stamp(accountID string, now time.Time) error {
	id, err := NewID()
	if err != nil {
		return err
	}
	r.ID = id
	r.AccountID = accountID
	r.CreatedAt = now.UTC()
	r.UpdatedAt = now.UTC()
	return nil
}

// Touch refreshes the update timestamp.
func (r *Record) Touch(now time.Time) {
	r.UpdatedAt = now.UTC()
}

// NewID generates a UUID v7 so identifiers sort in creation order.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// KeyPart escapes one key segment so it never contains the ':' separator.
// Distinct segments always give distinct keys, and one account's prefix
// never covers another account's records.
func KeyPart(s string) string {
	return url.QueryEscape(s)
}

// AccountPrefix returns the key prefix holding every record of one table for one account.
func AccountPrefix(table, accountID string) string {
	return fmt.Sprintf("%s:%s:", table, KeyPart(accountID))
}

// EntityKey returns the key-value store key of a record.
func EntityKey(table, accountID, id string) string {
	return AccountPrefix(table, accountID) + KeyPart(id)
}

// KeyOf returns the key-value store key of an entity.
func KeyOf(e Entity) string {
	m := e.Meta()
	return EntityKey(e.Table(), m.AccountID, m.ID)
}

// Now is the clock used for timestamps. Tests may replace it.
var Now = func() time.Time {
	return time.Now().UTC()
}
