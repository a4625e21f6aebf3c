package port

import (
	"context"

	"leak-watch/internal/domain/entity"
)

// Predictor интерфейс модели детекции
type Predictor interface {
	// Predict отправляет изображение в модель и возвращает список рамок.
	// confidence: порог уверенности в процентах.
	Predict(ctx context.Context, imageName string, imageData []byte, confidence int) (*entity.PredictionResponse, error)
}

// ModelResolver находит версию модели по workspace → project → version
type ModelResolver interface {
	ResolveModel(ctx context.Context, ref entity.ModelRef) (Predictor, error)
}
