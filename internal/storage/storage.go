package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"strings"
)

// Storage - именованный диск для файлов вложений.
// Пути всегда со слешами, относительно корня диска.
type Storage interface {
	// Put записывает файл, перезаписывая существующий
	Put(ctx context.Context, path string, reader io.Reader, contentType string) error

	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete удаляет файл; отсутствующий файл не ошибка
	Delete(ctx context.Context, path string) error

	// Move переносит файл; отсутствующий источник - ошибка IsNotExist
	Move(ctx context.Context, from, to string) error

	Exists(ctx context.Context, path string) (bool, error)

	// URL - публичный адрес файла
	URL(path string) string
}

// Типы дисков
const (
	TypeLocal  = "local"
	TypeMemory = "memory"
	TypeS3     = "s3"
	TypeGCS    = "gcs"
)

// IsNotExist сообщает, что файла нет на диске
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

// cleanPath нормализует ключ: без ведущего слеша и без выхода за корень
func cleanPath(p string) (string, error) {
	p = strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(p, "\\", "/")), "/")
	if p == "" || p == "." {
		return "", errors.New("storage: empty path")
	}
	return p, nil
}
