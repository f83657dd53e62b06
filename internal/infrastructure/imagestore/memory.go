package imagestore

import (
	"context"
	"io"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/leon37/socializer/internal/model"
)

// MemoryStore 内存图床，单测和本地联调用
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) Upload(_ context.Context, filename string, reader io.Reader, _ int64, _ string) (model.Avatar, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return model.Avatar{}, err
	}

	id, _ := uuid.NewV7()
	objectName := id.String() + filepath.Ext(filename)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectName] = data
	return model.Avatar{
		PublicID: objectName,
		URL:      "memory://" + objectName,
	}, nil
}

func (s *MemoryStore) Delete(_ context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, publicID)
	s.deleted = append(s.deleted, publicID)
	return nil
}

// Has 某个对象当前是否还在
func (s *MemoryStore) Has(publicID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[publicID]
	return ok
}

// Deleted 删除过的对象名，按调用顺序
func (s *MemoryStore) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}
