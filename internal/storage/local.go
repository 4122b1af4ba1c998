package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Local keeps product images on disk under BaseDir. The router mounts
// BaseDir at URLPrefix, so the returned URLs are relative paths the
// storefront can fetch directly.
type Local struct {
	BaseDir   string
	URLPrefix string
}

func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{BaseDir: baseDir, URLPrefix: urlPrefix}
}

func (l *Local) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	_ = ctx

	if err := os.MkdirAll(l.BaseDir, 0o755); err != nil {
		return PutResult{}, err
	}

	// Keys are fresh UUIDs; the client filename only contributes its
	// extension, and only when it is a known image type.
	key := uuid.NewString() + imageExt(in.Filename)

	f, err := os.OpenFile(filepath.Join(l.BaseDir, key), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return PutResult{}, err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return PutResult{}, err
	}

	return PutResult{
		Key: key,
		URL: strings.TrimRight(l.URLPrefix, "/") + "/" + key,
	}, nil
}

// Delete removes the stored file. A key that is already gone is not an
// error: product deletion may race an earlier image delete.
func (l *Local) Delete(ctx context.Context, key string) error {
	_ = ctx
	err := os.Remove(filepath.Join(l.BaseDir, filepath.Base(key)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// imageExt returns the lowercased extension when it is an allowed image
// type, otherwise empty so the key carries no extension at all.
func imageExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return ext
	default:
		return ""
	}
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }
