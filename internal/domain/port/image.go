package port

import "leak-watch/internal/domain/entity"

// ImageLoader читает изображение с диска и готовит его к отправке
type ImageLoader interface {
	Load(path string) ([]byte, error)
}

// Annotator рисует найденные рамки поверх изображения
type Annotator interface {
	// Annotate сохраняет размеченную копию и возвращает путь к ней
	Annotate(imageData []byte, imageName string, detections []entity.Detection) (string, error)
}
