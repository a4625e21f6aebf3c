package port

import (
	"context"

	"leak-watch/internal/domain/entity"
)

// AlertPublisher интерфейс публикации оповещений
type AlertPublisher interface {
	Publish(ctx context.Context, alert entity.Alert) error
}
