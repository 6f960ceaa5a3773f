package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var ErrInvalidUpload = errors.New("invalid upload")

// ReadUpload loads an uploaded resume into memory. Only the extension is checked;
// whether the bytes are really a PDF is left to the rasterizer.
func ReadUpload(file *multipart.FileHeader, maxFileSize int64) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return nil, fmt.Errorf("%w: only PDF files are accepted, got %q", ErrInvalidUpload, file.Filename)
	}

	if maxFileSize > 0 && file.Size > maxFileSize {
		return nil, fmt.Errorf("%w: file too large, max size is %d bytes", ErrInvalidUpload, maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, src); err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	// A zero-byte upload is still an upload; the rasterizer reports it.
	data := buf.Bytes()
	if data == nil {
		data = []byte{}
	}
	return data, nil
}
