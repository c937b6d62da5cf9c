package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// FsStorage реализует Storage поверх afero.Fs: локальный диск, память, S3, GCS
type FsStorage struct {
	fs      afero.Fs
	kind    string
	baseURL string
}

// NewFsStorage оборачивает готовую файловую систему
func NewFsStorage(fs afero.Fs, kind, baseURL string) *FsStorage {
	return &FsStorage{fs: fs, kind: kind, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Fs - нижележащая файловая система, для тестов
func (s *FsStorage) Fs() afero.Fs {
	return s.fs
}

// hasDirs: у объектных хранилищ нет настоящих каталогов
func (s *FsStorage) hasDirs() bool {
	return s.kind == TypeLocal || s.kind == TypeMemory
}

func (s *FsStorage) Put(ctx context.Context, p string, reader io.Reader, contentType string) error {
	key, err := cleanPath(p)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.hasDirs() {
		if err := s.fs.MkdirAll(path.Dir(key), 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w, key: %s", err, key)
		}
	}

	file, err := s.fs.Create(key)
	if err != nil {
		return fmt.Errorf("failed to create file: %w, key: %s", err, key)
	}
	if _, err := io.Copy(file, reader); err != nil {
		_ = file.Close()
		_ = s.fs.Remove(key)
		return fmt.Errorf("failed to write file: %w, key: %s", err, key)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w, key: %s", err, key)
	}
	return nil
}

func (s *FsStorage) Get(ctx context.Context, p string) (io.ReadCloser, error) {
	key, err := cleanPath(p)
	if err != nil {
		return nil, err
	}
	file, err := s.fs.Open(key)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w, key: %s", err, key)
	}
	return file, nil
}

func (s *FsStorage) Delete(ctx context.Context, p string) error {
	key, err := cleanPath(p)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(key); err != nil {
		if IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to remove file: %w, key: %s", err, key)
	}
	return nil
}

func (s *FsStorage) Move(ctx context.Context, from, to string) error {
	src, err := cleanPath(from)
	if err != nil {
		return err
	}
	dst, err := cleanPath(to)
	if err != nil {
		return err
	}

	if s.hasDirs() {
		if _, err := s.fs.Stat(src); err != nil {
			return fmt.Errorf("failed to stat file: %w, key: %s", err, src)
		}
		if err := s.fs.MkdirAll(path.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w, key: %s", err, dst)
		}
		if err := s.fs.Rename(src, dst); err != nil {
			return fmt.Errorf("failed to move file: %w, from: %s, to: %s", err, src, dst)
		}
		return nil
	}

	// в бакетах переименование = копия + удаление
	in, err := s.fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open file: %w, key: %s", err, src)
	}
	defer in.Close()

	if err := s.Put(ctx, dst, in, ""); err != nil {
		return err
	}
	if err := s.fs.Remove(src); err != nil && !IsNotExist(err) {
		_ = s.fs.Remove(dst)
		return fmt.Errorf("failed to remove file: %w, key: %s", err, src)
	}
	return nil
}

func (s *FsStorage) Exists(ctx context.Context, p string) (bool, error) {
	key, err := cleanPath(p)
	if err != nil {
		return false, err
	}
	_, err = s.fs.Stat(key)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (s *FsStorage) URL(p string) string {
	key, err := cleanPath(p)
	if err != nil {
		return ""
	}
	if s.baseURL == "" {
		return "/" + key
	}
	return s.baseURL + "/" + key
}
