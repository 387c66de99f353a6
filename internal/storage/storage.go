// Package storage moves validated receipts from temporary to permanent storage.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"path/filepath"
	"strings"
)

// Location identifies where a stored file lives.
type Location string

const (
	LocationTmp    Location = "tmp"
	LocationUpload Location = "upload"
)

// ErrInvalidName is returned for names that could escape the storage directory.
var ErrInvalidName = errors.New("invalid file name")

// FileStorage is the collaborator the upload orchestrator relies on.
type FileStorage interface {
	// Save promotes tempName into permanent storage and returns the stored name.
	Save(ctx context.Context, tempName, originalName string) (string, error)
	// Delete removes name from the given location.
	Delete(ctx context.Context, name string, location Location) error
}

// StoredName prefixes a sanitized original name with 10 random bytes in hex.
func StoredName(originalName string) (string, error) {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf) + "-" + SanitizeFilename(originalName), nil
}

// SanitizeFilename keeps only the base name and drops control and path characters.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return "file"
	}

	var builder strings.Builder
	for _, r := range name {
		if r < 32 || r == 127 || r == '/' || r == '\\' {
			continue
		}
		builder.WriteRune(r)
	}
	cleaned := strings.TrimLeft(builder.String(), ".")
	if cleaned == "" {
		return "file"
	}
	return cleaned
}

func checkName(name string) error {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return ErrInvalidName
	}
	return nil
}
