package storage

import (
	"context"
	"io"
	"time"
)

// Storage is a flat key-value object store for uploaded documents.
// Keys use forward slashes; a leading slash is ignored.
type Storage interface {
	// Save writes an object and returns its stored description.
	Save(ctx context.Context, obj Object) (*File, error)
	// Open returns the content of an object. The caller closes the reader.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Stat returns an object's description including its metadata.
	Stat(ctx context.Context, key string) (*File, error)
	// Delete removes an object. Deleting a missing key is ErrFileNotFound.
	Delete(ctx context.Context, key string) error
	// Exists reports whether an object is present.
	Exists(ctx context.Context, key string) (bool, error)
	// List returns every object under prefix, recursively.
	List(ctx context.Context, prefix string) ([]Entry, error)
	// URL returns the public address of a key.
	URL(key string) string
}

// Object is content to be saved.
type Object struct {
	Key         string
	Body        io.Reader
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// File describes a stored object.
type File struct {
	Key          string
	Size         int64
	ContentType  string
	Metadata     map[string]string
	LastModified time.Time
}

// Entry is one object returned by List.
type Entry struct {
	Key          string
	Size         int64
	LastModified time.Time
}
