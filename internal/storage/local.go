package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"Fishing_Forum/internal/pkg"

	"go.uber.org/zap"
)

type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &LocalStorage{basePath: basePath, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStorage) Save(_ context.Context, file *multipart.FileHeader, dir string) (string, error) {
	if _, err := CheckImage(file); err != nil {
		return "", err
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := ObjectName(dir, file.Filename)
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	pkg.Logger.Debug("file saved", zap.String("path", fullPath))
	return name, nil
}

// URL 相对地址，由 view 层补全 scheme 和 host
func (s *LocalStorage) URL(p string) string {
	return s.baseURL + "/" + strings.TrimLeft(p, "/")
}

func (s *LocalStorage) Delete(_ context.Context, p string) error {
	err := os.Remove(filepath.Join(s.basePath, filepath.FromSlash(p)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
