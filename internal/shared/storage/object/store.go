package object

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"legal-backend/internal/shared/util"
)

// ErrNotFound is returned when a storage key has no object behind it.
var ErrNotFound = errors.New("object not found")

// ObjectStore defines the contract for storing and retrieving binary objects by key.
type ObjectStore interface {
	Put(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Exists(ctx context.Context, storageKey string) (bool, error)
}

// UploadKey returns the key for a raw upload: uploads/<user>/<unix>_<name>.
func UploadKey(userID, fileName string, now time.Time) (string, error) {
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	return path.Join("uploads", util.HashUserKey(userID), fmt.Sprintf("%d_%s", now.Unix(), name)), nil
}

// DocumentKey returns the key for a rendered document: documents/<user>/<slug>-<unix>.<ext>.
func DocumentKey(userID, title, ext string, now time.Time) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "html"
	}
	slug := util.Slugify(title)
	if slug == "" {
		slug = "document"
	}
	return path.Join("documents", util.HashUserKey(userID), fmt.Sprintf("%s-%d.%s", slug, now.Unix(), ext))
}

// ContentTypeFor guesses the content type of a key from its extension.
func ContentTypeFor(storageKey string) string {
	ext := strings.ToLower(path.Ext(storageKey))
	switch ext {
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain; charset=utf-8"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

// ReadAll opens a key and reads it fully.
func ReadAll(ctx context.Context, store ObjectStore, storageKey string) ([]byte, error) {
	rc, err := store.Open(ctx, storageKey)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// JoinKey prefixes a storage key, normalizing slashes on both sides.
func JoinKey(prefix, key string) string {
	cleanPrefix := strings.Trim(strings.TrimSpace(prefix), "/")
	cleanKey := strings.TrimLeft(key, "/")
	if cleanPrefix == "" {
		return cleanKey
	}
	if cleanKey == "" {
		return cleanPrefix
	}
	return cleanPrefix + "/" + cleanKey
}
