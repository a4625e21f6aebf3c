package storage

import (
	"context"
	"sync"

	"leak-watch/internal/domain/entity"
	"leak-watch/internal/domain/port"
)

// MemoryResultRepository in-memory список результатов текущего запуска
type MemoryResultRepository struct {
	mu      sync.RWMutex
	results []entity.ImageResult
}

// NewMemoryResultRepository создаёт пустое хранилище
func NewMemoryResultRepository() *MemoryResultRepository {
	return &MemoryResultRepository{
		results: make([]entity.ImageResult, 0),
	}
}

// Append добавляет результат в конец списка
func (r *MemoryResultRepository) Append(ctx context.Context, result entity.ImageResult) error {
	r.mu.Lock()
	r.results = append(r.results, result)
	r.mu.Unlock()

	return nil
}

// List возвращает копию списка, чтобы вызывающий не мог его изменить
func (r *MemoryResultRepository) List(ctx context.Context) ([]entity.ImageResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.ImageResult, len(r.results))
	copy(out, r.results)
	return out, nil
}

// Проверка реализации интерфейса
var _ port.ResultRepository = (*MemoryResultRepository)(nil)
