package domain

// RawDocument is an uploaded file before text extraction.
type RawDocument struct {
	// Name is the file name the document will be stored under.
	Name string

	// MIMEType is the declared content type (e.g., "application/pdf").
	// May be empty, in which case it is derived from the name.
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}
