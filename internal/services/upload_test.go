package services

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("resume", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["resume"][0]
}

func TestReadUpload(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  []byte
		maxSize  int64
		wantErr  bool
	}{
		{name: "pdf", filename: "resume.pdf", content: []byte("%PDF-1.4 data")},
		{name: "uppercase extension", filename: "RESUME.PDF", content: []byte("%PDF-1.4")},
		{name: "empty pdf", filename: "empty.pdf", content: []byte{}},
		{name: "docx rejected", filename: "resume.docx", content: []byte("PK"), wantErr: true},
		{name: "no extension", filename: "resume", content: []byte("%PDF"), wantErr: true},
		{name: "too large", filename: "big.pdf", content: bytes.Repeat([]byte("x"), 64), maxSize: 32, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadUpload(fileHeader(t, tt.filename, tt.content), tt.maxSize)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidUpload)
				assert.Nil(t, data)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, data)
			assert.Equal(t, tt.content, data)
		})
	}
}
