package storage

import (
	"fmt"
	"os"
	"path/filepath"

	errs "github.com/manav03panchal/careeros/internal/errors"
)

// MinFreeSpace is the free space required before the store or an export file is written (10MB).
const MinFreeSpace = 10 * 1024 * 1024

// DiskSpaceInfo contains information about available disk space.
type DiskSpaceInfo struct {
	Path       string
	TotalBytes uint64
	FreeBytes  uint64
}

// FreePercent returns the percentage of free space.
func (d *DiskSpaceInfo) FreePercent() float64 {
	if d.TotalBytes == 0 {
		return 0
	}
	return float64(d.FreeBytes) / float64(d.TotalBytes) * 100
}

// existingAncestor returns path or its nearest parent that exists.
func existingAncestor(path string) string {
	for {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}

// CheckDiskSpace fails when the filesystem holding path is nearly full.
// Filesystems that cannot be queried pass.
func CheckDiskSpace(path string) error {
	info, err := GetDiskSpace(path)
	if err != nil {
		return nil
	}
	if info.FreeBytes < MinFreeSpace {
		return errs.NewSystemError(
			fmt.Sprintf("insufficient disk space: %d MB free, need at least %d MB",
				info.FreeBytes/(1024*1024), MinFreeSpace/(1024*1024)),
			errs.ErrDiskFull,
		)
	}
	return nil
}

// EnsureDirectory creates a directory with private permissions if it doesn't exist.
func EnsureDirectory(path string) error {
	if err := CheckDiskSpace(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.MkdirAll(path, 0o700); err != nil {
		if isDiskFullError(err) {
			return errs.NewSystemErrorWithOp("mkdir", "disk full", errs.ErrDiskFull)
		}
		return fmt.Errorf("create directory: %w", err)
	}
	return nil
}

// WriteFileAtomic writes data next to path and renames it into place, so a
// reader sees either the old file or the complete new one.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := CheckDiskSpace(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".careeros-*.tmp")
	if err != nil {
		return diskError("create temp file", err)
	}
	tmpPath := tmp.Name()

	ok := false
	defer func() {
		if !ok {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return diskError("write", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return diskError("sync", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	ok = true
	return nil
}

func diskError(op string, err error) error {
	if isDiskFullError(err) {
		return errs.NewSystemErrorWithOp(op, "disk full", errs.ErrDiskFull)
	}
	return fmt.Errorf("%s: %w", op, err)
}
