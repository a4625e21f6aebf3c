package port

import (
	"context"

	"leak-watch/internal/domain/entity"
)

// ResultRepository интерфейс хранилища результатов текущего запуска
type ResultRepository interface {
	// Append добавляет результат в конец списка
	Append(ctx context.Context, result entity.ImageResult) error

	// List возвращает результаты в порядке добавления
	List(ctx context.Context) ([]entity.ImageResult, error)
}
