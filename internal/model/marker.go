package model

import (
	"slices"
	"time"
)

// SeedMarker records how far the bootstrap service got for one account.
type SeedMarker struct {
	AccountID   string     `json:"account_id"`
	Tables      []string   `json:"tables"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// MarkerKey returns the key-value store key of an account's seed marker.
func MarkerKey(accountID string) string {
	return TableSeedMarkers + ":" + KeyPart(accountID)
}

// NewSeedMarker creates an empty, incomplete marker.
func NewSeedMarker(accountID string, now time.Time) *SeedMarker {
	return &SeedMarker{
		AccountID: accountID,
		Tables:    []string{},
		CreatedAt: now.UTC(),
	}
}

// IsComplete reports whether every table was seeded.
func (m *SeedMarker) IsComplete() bool {
	return m.CompletedAt != nil
}

// HasTable reports whether the table's defaults were already inserted.
func (m *SeedMarker) HasTable(table string) bool {
	return slices.Contains(m.Tables, table)
}

// AddTable records a seeded table once.
func (m *SeedMarker) AddTable(table string) {
	if !m.HasTable(table) {
		m.Tables = append(m.Tables, table)
	}
}
