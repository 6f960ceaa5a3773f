package models

const MimeTypeJPEG = "image/jpeg"

// PageImage is the first page of an uploaded PDF, JPEG encoded and base64 wrapped.
type PageImage struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}
