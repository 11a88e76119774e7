package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const MaxImageSize = 10 << 20

var (
	ErrNotImage = errors.New("file is not an image")
	ErrTooLarge = errors.New("file too large")
)

// FileStore 上传文件存储，Save 返回存储路径，URL 把路径转成访问地址
type FileStore interface {
	Save(ctx context.Context, file *multipart.FileHeader, dir string) (string, error)
	URL(p string) string
	Delete(ctx context.Context, p string) error
}

// ObjectName posts/<uuid><ext>
func ObjectName(dir, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(dir, uuid.NewString()+ext)
}

// CheckImage 只接受 image/* 且不超过 MaxImageSize
func CheckImage(file *multipart.FileHeader) (string, error) {
	if file.Size > MaxImageSize {
		return "", ErrTooLarge
	}
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, _ := f.Read(head)
	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, contentType)
	}
	return contentType, nil
}
