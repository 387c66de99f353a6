package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStorage keeps receipts in a local uploads directory.
type DiskStorage struct {
	tmpDir     string
	uploadsDir string
}

// NewDiskStorage creates both directories when missing.
func NewDiskStorage(tmpDir, uploadsDir string) (*DiskStorage, error) {
	for _, dir := range []string{tmpDir, uploadsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
		}
	}
	return &DiskStorage{tmpDir: tmpDir, uploadsDir: uploadsDir}, nil
}

func (s *DiskStorage) Save(_ context.Context, tempName, originalName string) (string, error) {
	if err := checkName(tempName); err != nil {
		return "", err
	}
	storedName, err := StoredName(originalName)
	if err != nil {
		return "", fmt.Errorf("generate stored name: %w", err)
	}

	src := filepath.Join(s.tmpDir, tempName)
	dst := filepath.Join(s.uploadsDir, storedName)
	if err := os.Rename(src, dst); err != nil {
		// rename fails across filesystems; fall back to copy and remove
		if copyErr := copyFile(src, dst); copyErr != nil {
			return "", fmt.Errorf("move %s: %w", tempName, errors.Join(err, copyErr))
		}
		if err := os.Remove(src); err != nil {
			return "", fmt.Errorf("remove temp %s: %w", tempName, err)
		}
	}
	return storedName, nil
}

func (s *DiskStorage) Delete(_ context.Context, name string, location Location) error {
	if err := checkName(name); err != nil {
		return err
	}
	dir, err := s.dir(location)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// TmpDir is where the ingestion boundary writes incoming files.
func (s *DiskStorage) TmpDir() string {
	return s.tmpDir
}

func (s *DiskStorage) dir(location Location) (string, error) {
	switch location {
	case LocationTmp:
		return s.tmpDir, nil
	case LocationUpload:
		return s.uploadsDir, nil
	default:
		return "", fmt.Errorf("unknown storage location %q", location)
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = os.Remove(dst)
		return err
	}
	return out.Close()
}
