// Package storage menyimpan file bukti (foto C1, foto kehadiran, logo partai).
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Object adalah file yang sudah tersimpan. Key dipakai untuk menghapus,
// URL disimpan di database dan dikirim ke client.
type Object struct {
	Key string
	URL string
}

type Store interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader, size int64) (Object, error)
	Delete(ctx context.Context, key string) error
}

// NewKey membuat key unik, contoh: pilgub/c1/tps-12-<uuid>.jpg
func NewKey(folder, prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(folder, fmt.Sprintf("%s-%s%s", prefix, uuid.NewString(), ext))
}
