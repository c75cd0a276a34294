package storage

import (
	"fmt"
	"path"
	"slices"
	"strings"
)

// MaxUploadSize is the default upload limit: 5 MB.
const MaxUploadSize int64 = 5 << 20

// MIME types of the accepted document formats.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOC  = "application/msword"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMEPPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MIMEJPEG = "image/jpeg"
	MIMEPNG  = "image/png"
)

// mimeTypes pairs each known extension with the MIME types it may carry.
var mimeTypes = map[string][]string{
	".pdf":  {MIMEPDF},
	".doc":  {MIMEDOC},
	".docx": {MIMEDOCX},
	".xlsx": {MIMEXLSX},
	".jpg":  {MIMEJPEG},
	".jpeg": {MIMEJPEG},
	".png":  {MIMEPNG},
	".pptx": {MIMEPPTX},
}

// DefaultExtensions are accepted unless a policy says otherwise.
var DefaultExtensions = []string{".pdf", ".docx", ".xlsx", ".jpg", ".png", ".pptx"}

// Policy restricts what may be uploaded.
type Policy struct {
	MaxSize    int64
	Extensions []string
}

// DefaultPolicy accepts the default extensions up to MaxUploadSize.
func DefaultPolicy() Policy {
	return Policy{MaxSize: MaxUploadSize, Extensions: slices.Clone(DefaultExtensions)}
}

// ValidateUpload checks an upload against the default policy.
func ValidateUpload(filename, contentType string, size int64) error {
	return DefaultPolicy().Validate(filename, contentType, size)
}

// Validate checks size, extension and that the MIME type matches the extension.
func (p Policy) Validate(filename, contentType string, size int64) error {
	maxSize := p.MaxSize
	if maxSize <= 0 {
		maxSize = MaxUploadSize
	}
	allowed := p.Extensions
	if len(allowed) == 0 {
		allowed = DefaultExtensions
	}

	if size <= 0 {
		return fmt.Errorf("%w: %q", ErrEmptyFile, filename)
	}
	if size > maxSize {
		return fmt.Errorf("%w: %q exceeds maximum size of %.1fMB", ErrFileTooLarge, filename, float64(maxSize)/(1<<20))
	}

	ext := ExtensionOf(filename)
	if !slices.Contains(allowed, ext) {
		return fmt.Errorf("%w: extension %q, allowed types: %s", ErrTypeNotAllowed, ext, strings.Join(allowed, ", "))
	}
	expected, ok := mimeTypes[ext]
	if !ok {
		return fmt.Errorf("%w: no MIME type known for %s", ErrTypeNotAllowed, ext)
	}

	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if !slices.Contains(expected, ct) {
		return fmt.Errorf("%w: %s for %s, expected %s", ErrMIMETypeMismatch, contentType, ext, strings.Join(expected, " or "))
	}
	return nil
}

// ExtensionOf returns the lowercase extension of a filename with its dot,
// or "" when there is none.
func ExtensionOf(filename string) string {
	ext := path.Ext(filename)
	if ext == "." {
		return ""
	}
	return strings.ToLower(ext)
}

// ContentTypeOf returns the first MIME type known for a filename's extension.
func ContentTypeOf(filename string) string {
	if types, ok := mimeTypes[ExtensionOf(filename)]; ok {
		return types[0]
	}
	return "application/octet-stream"
}

// FileType is a coarse display category of a document.
type FileType string

const (
	FileTypeImage        FileType = "image"
	FileTypePDF          FileType = "pdf"
	FileTypeSpreadsheet  FileType = "spreadsheet"
	FileTypePresentation FileType = "presentation"
	FileTypeDocument     FileType = "document"
	FileTypeOther        FileType = "file"
)

// FileTypeOf classifies a filename by its extension.
func FileTypeOf(filename string) FileType {
	switch ExtensionOf(filename) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return FileTypeImage
	case ".pdf":
		return FileTypePDF
	case ".xls", ".xlsx", ".csv":
		return FileTypeSpreadsheet
	case ".ppt", ".pptx":
		return FileTypePresentation
	case ".doc", ".docx", ".txt":
		return FileTypeDocument
	}
	return FileTypeOther
}

// CleanKey normalizes an object key and rejects traversal.
func CleanKey(key string) (string, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}
	return key, nil
}
