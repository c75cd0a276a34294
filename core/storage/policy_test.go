package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onboarding/core/storage"
)

func TestValidateUpload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		wantErr     error
	}{
		{"pdf", "plan.pdf", storage.MIMEPDF, 1024, nil},
		{"uppercase extension", "SCAN.PNG", storage.MIMEPNG, 1024, nil},
		{"content type parameters", "plan.pdf", "application/pdf; charset=binary", 10, nil},
		{"exactly the limit", "deck.pptx", storage.MIMEPPTX, storage.MaxUploadSize, nil},
		{"empty", "plan.pdf", storage.MIMEPDF, 0, storage.ErrEmptyFile},
		{"too large", "plan.pdf", storage.MIMEPDF, storage.MaxUploadSize + 1, storage.ErrFileTooLarge},
		{"executable", "setup.exe", "application/octet-stream", 10, storage.ErrTypeNotAllowed},
		{"no extension", "README", "text/plain", 10, storage.ErrTypeNotAllowed},
		{"doc not in default set", "old.doc", storage.MIMEDOC, 10, storage.ErrTypeNotAllowed},
		{"mismatched mime", "photo.jpg", storage.MIMEPNG, 10, storage.ErrMIMETypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := storage.ValidateUpload(tt.filename, tt.contentType, tt.size)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPolicy(t *testing.T) {
	t.Parallel()

	p := storage.Policy{MaxSize: 100, Extensions: []string{".doc"}}
	require.NoError(t, p.Validate("old.doc", storage.MIMEDOC, 100))
	assert.ErrorIs(t, p.Validate("old.doc", storage.MIMEDOC, 101), storage.ErrFileTooLarge)
	assert.ErrorIs(t, p.Validate("plan.pdf", storage.MIMEPDF, 10), storage.ErrTypeNotAllowed)

	err := storage.Policy{MaxSize: 5 << 20}.Validate("plan.pdf", storage.MIMEPDF, 6<<20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5.0MB")
}

func TestExtensionOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".pdf", storage.ExtensionOf("a.b.PDF"))
	assert.Equal(t, "", storage.ExtensionOf("noext"))
	assert.Equal(t, "", storage.ExtensionOf("trailing."))
}

func TestContentTypeOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, storage.MIMEJPEG, storage.ContentTypeOf("photo.jpeg"))
	assert.Equal(t, "application/octet-stream", storage.ContentTypeOf("archive.zip"))
}

func TestFileTypeOf(t *testing.T) {
	t.Parallel()

	tests := map[string]storage.FileType{
		"photo.webp": storage.FileTypeImage,
		"plan.pdf":   storage.FileTypePDF,
		"model.xlsx": storage.FileTypeSpreadsheet,
		"deck.pptx":  storage.FileTypePresentation,
		"notes.txt":  storage.FileTypeDocument,
		"data.bin":   storage.FileTypeOther,
	}
	for name, want := range tests {
		assert.Equal(t, want, storage.FileTypeOf(name), name)
	}
}

func TestCleanKey(t *testing.T) {
	t.Parallel()

	key, err := storage.CleanKey("/accounts/a1/plan.pdf")
	require.NoError(t, err)
	assert.Equal(t, "accounts/a1/plan.pdf", key)

	_, err = storage.CleanKey("accounts/../secret")
	assert.ErrorIs(t, err, storage.ErrInvalidPath)
	_, err = storage.CleanKey("  ")
	assert.ErrorIs(t, err, storage.ErrInvalidPath)
}
