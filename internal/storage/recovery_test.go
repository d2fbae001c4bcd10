package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Integrity Tests
// =============================================================================

func TestCheckIntegrityHealthy(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	_, err := store.KPIs.Create(ctx, "acct", &model.KPI{Key: "gym", Label: "Gym", Phase: 1, Target: 48})
	require.NoError(t, err)
	_, err = store.Companies.Create(ctx, "acct", &model.Company{Name: "Citadel", Tier: model.TierT1A, Status: model.StatusLead})
	require.NoError(t, err)

	h, err := CheckIntegrity(db)
	require.NoError(t, err)
	assert.True(t, h.Healthy)
	assert.Equal(t, 1, h.Records[model.TableKPIs])
	assert.Equal(t, 1, h.Records[model.TableCompanies])
	assert.Empty(t, h.Corrupt)
	assert.Empty(t, h.Unknown)
}

func TestCheckIntegrityFindsCorruptRecords(t *testing.T) {
	db := setupTestDB(t)

	writeRaw(t, db, model.EntityKey(model.TableKPIs, "acct", "broken"), "{not json")
	writeRaw(t, db, "stray-key", "{}")

	h, err := CheckIntegrity(db)
	require.NoError(t, err)
	assert.False(t, h.Healthy)
	assert.Equal(t, []string{"kpis:acct:broken"}, h.Corrupt)
	assert.Equal(t, []string{"stray-key"}, h.Unknown)
}

// =============================================================================
// Backup Tests
// =============================================================================

func TestBackupRestore(t *testing.T) {
	src := setupTestDB(t)
	ctx := context.Background()

	created, err := NewStore(src).Companies.Create(ctx, "acct",
		&model.Company{Name: "Jane Street", Tier: model.TierT1A, Status: model.StatusApplied})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = Backup(src, &buf)
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())

	dst := setupTestDB(t)
	require.NoError(t, Restore(dst, &buf))

	got, err := NewStore(dst).Companies.Get(ctx, "acct", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Street", got.Name)
	assert.Equal(t, model.StatusApplied, got.Status)
}

func TestIsCorrupted(t *testing.T) {
	assert.False(t, IsCorrupted(nil))
	assert.True(t, IsCorrupted(errors.New("checksum mismatch in table 000001.sst")))
	assert.True(t, IsCorrupted(errors.New("Unexpected EOF while reading manifest")))
	assert.True(t, IsCorrupted(errs.ErrStoreCorrupted))
	assert.False(t, IsCorrupted(errors.New("permission denied")))
}

func TestOpenDamagedStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "MANIFEST"), []byte("garbage"), 0o600))

	_, err := Open(Options{Path: dir})
	require.Error(t, err)
}

// =============================================================================
// Safety Tests
// =============================================================================

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")

	require.NoError(t, WriteFileAtomic(path, []byte(`{"a":1}`), 0o600))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	require.NoError(t, WriteFileAtomic(path, []byte(`{"a":2}`), 0o600))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(data))

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".careeros-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "export.json")
	assert.Error(t, WriteFileAtomic(path, []byte("x"), 0o600))
}

func TestEnsureDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDirectory(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGetDiskSpace(t *testing.T) {
	info, err := GetDiskSpace(filepath.Join(t.TempDir(), "does", "not", "exist"))
	require.NoError(t, err)
	assert.NotZero(t, info.TotalBytes)
	assert.GreaterOrEqual(t, info.FreePercent(), 0.0)
	assert.LessOrEqual(t, info.FreePercent(), 100.0)
}
