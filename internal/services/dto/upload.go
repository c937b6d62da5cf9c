package dto

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// UploadFile - входящий файл, независимо от источника (multipart, байты в тестах)
type UploadFile struct {
	Name     string // исходное имя клиента
	MimeType string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// FromBytes; пустой mimeType определяется по содержимому
func FromBytes(name, mimeType string, data []byte) UploadFile {
	if mimeType == "" {
		mimeType = baseType(mimetype.Detect(data).String())
	}
	return UploadFile{
		Name:     name,
		MimeType: mimeType,
		Size:     int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// FromMultipart берёт заявленный Content-Type, иначе определяет по содержимому
func FromMultipart(fh *multipart.FileHeader) (UploadFile, error) {
	file := UploadFile{
		Name:     fh.Filename,
		MimeType: baseType(fh.Header.Get("Content-Type")),
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}

	if file.MimeType == "" || file.MimeType == "application/octet-stream" {
		src, err := fh.Open()
		if err != nil {
			return UploadFile{}, fmt.Errorf("failed to open uploaded file: %w", err)
		}
		defer src.Close()

		detected, err := mimetype.DetectReader(src)
		if err != nil {
			return UploadFile{}, fmt.Errorf("failed to detect mime type: %w", err)
		}
		file.MimeType = baseType(detected.String())
	}
	return file, nil
}

// baseType отрезает параметры: "text/plain; charset=utf-8" -> "text/plain"
func baseType(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

// StorageTarget - куда класть файлы вложения
type StorageTarget struct {
	Disk      string
	Directory string
}

// AttachmentResponse - вложение для клиента
type AttachmentResponse struct {
	ID           uint           `json:"id"`
	Type         string         `json:"type"`
	OriginalName string         `json:"original_name"`
	FileName     string         `json:"file_name"`
	MimeType     string         `json:"mime_type"`
	Size         int64          `json:"file_size"`
	URL          string         `json:"url"`
	IsImage      bool           `json:"is_image"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}
