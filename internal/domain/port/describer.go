package port

import (
	"context"

	"leak-watch/internal/domain/entity"
)

// SummaryDescriber интерфейс описателя итогов запуска
type SummaryDescriber interface {
	// Describe генерирует текстовое описание итогов
	Describe(ctx context.Context, summary *entity.RunSummary) (*entity.AiDescription, error)
}
