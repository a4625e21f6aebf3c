//go:build !gocv
// +build !gocv

package vision

import (
	"errors"
	"fmt"
	"os"

	"leak-watch/internal/domain/entity"
)

type ImageProcessor struct {
	MaxSide     int
	OutputDir   string
	JPEGQuality int
}

// NewImageProcessor создаёт обработчик-заглушку (без OpenCV): файлы уходят как есть.
func NewImageProcessor(maxSide int, outputDir string) *ImageProcessor {
	if maxSide <= 0 {
		maxSide = DefaultMaxSide
	}
	return &ImageProcessor{
		MaxSide:     maxSide,
		OutputDir:   outputDir,
		JPEGQuality: 90,
	}
}

// Load возвращает содержимое файла без изменений.
func (p *ImageProcessor) Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

// Annotate возвращает ошибку, если сборка без тега gocv.
func (p *ImageProcessor) Annotate(imageData []byte, imageName string, detections []entity.Detection) (string, error) {
	_ = imageData
	_ = imageName
	_ = detections
	return "", errors.New("gocv build tag is not enabled")
}
