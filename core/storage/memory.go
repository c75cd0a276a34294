package storage

import (
	"bytes"
	"context"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"
)

// Memory is an in-process Storage. It backs the command line tools and tests.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	baseURL string
	now     func() time.Time
}

type memoryObject struct {
	data []byte
	file File
}

// NewMemory creates an empty store. URLs are baseURL joined with the key.
func NewMemory(baseURL string) *Memory {
	return &Memory{
		objects: make(map[string]memoryObject),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		now:     time.Now,
	}
}

func (m *Memory) Save(ctx context.Context, obj Object) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrOperationCanceled
	}
	key, err := CleanKey(obj.Key)
	if err != nil {
		return nil, err
	}
	if obj.Body == nil {
		return nil, ErrNilBody
	}
	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, err
	}

	f := File{
		Key:          key,
		Size:         int64(len(data)),
		ContentType:  obj.ContentType,
		Metadata:     maps.Clone(obj.Metadata),
		LastModified: m.now().UTC(),
	}
	m.mu.Lock()
	m.objects[key] = memoryObject{data: data, file: f}
	m.mu.Unlock()
	return &f, nil
}

func (m *Memory) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	o, err := m.get(ctx, key)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(o.data)), nil
}

func (m *Memory) Stat(ctx context.Context, key string) (*File, error) {
	o, err := m.get(ctx, key)
	if err != nil {
		return nil, err
	}
	f := o.file
	f.Metadata = maps.Clone(f.Metadata)
	return &f, nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	if _, err := m.get(ctx, key); err != nil {
		return err
	}
	key, _ = CleanKey(key)
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.get(ctx, key)
	switch err {
	case nil:
		return true, nil
	case ErrFileNotFound:
		return false, nil
	}
	return false, err
}

// List returns entries under prefix sorted by key.
func (m *Memory) List(ctx context.Context, prefix string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrOperationCanceled
	}
	prefix = strings.TrimPrefix(prefix, "/")

	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]Entry, 0, len(m.objects))
	for _, key := range slices.Sorted(maps.Keys(m.objects)) {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		f := m.objects[key].file
		entries = append(entries, Entry{Key: key, Size: f.Size, LastModified: f.LastModified})
	}
	return entries, nil
}

func (m *Memory) URL(key string) string {
	return m.baseURL + "/" + strings.TrimPrefix(key, "/")
}

func (m *Memory) get(ctx context.Context, key string) (memoryObject, error) {
	if err := ctx.Err(); err != nil {
		return memoryObject{}, ErrOperationCanceled
	}
	key, err := CleanKey(key)
	if err != nil {
		return memoryObject{}, err
	}
	m.mu.RLock()
	o, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return memoryObject{}, ErrFileNotFound
	}
	return o, nil
}

var _ Storage = (*Memory)(nil)
