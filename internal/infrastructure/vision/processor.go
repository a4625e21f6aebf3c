//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	"leak-watch/internal/domain/entity"
)

type ImageProcessor struct {
	MaxSide     int
	OutputDir   string
	JPEGQuality int
}

// NewImageProcessor создаёт обработчик: уменьшает большие снимки перед отправкой
// и сохраняет разметку в outputDir.
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

// Load читает файл. Если длинная сторона больше MaxSide, изображение уменьшается
// и перекодируется в JPEG, иначе байты возвращаются как есть.
func (p *ImageProcessor) Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	mat, err := decodeToMat(data)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	if mat.Cols() <= p.MaxSide && mat.Rows() <= p.MaxSide {
		return data, nil
	}

	// Приводим к MaxSide по длинной стороне, иначе hosted API отвечает 413.
	scale := float64(p.MaxSide) / float64(max(mat.Cols(), mat.Rows()))
	newW := int(float64(mat.Cols()) * scale)
	newH := int(float64(mat.Rows()) * scale)
	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(mat, &resized, image.Pt(newW, newH), 0, 0, gocv.InterpolationArea)

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, resized, []int{int(gocv.IMWriteJpegQuality), p.JPEGQuality})
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	defer buf.Close()

	return bytes.Clone(buf.GetBytes()), nil
}

// Annotate рисует рамки: красные для протечек, зелёные для остального.
func (p *ImageProcessor) Annotate(imageData []byte, imageName string, detections []entity.Detection) (string, error) {
	if p.OutputDir == "" {
		return "", errors.New("annotation directory is not configured")
	}

	mat, err := decodeToMat(imageData)
	if err != nil {
		return "", err
	}
	defer mat.Close()

	red := color.RGBA{R: 255, A: 255}
	green := color.RGBA{G: 255, A: 255}
	for _, d := range detections {
		c := green
		if d.IsLeak() {
			c = red
		}
		rect := d.BBox.Rect()
		gocv.Rectangle(&mat, rect, c, 2)
		label := fmt.Sprintf("%s %.0f%%", d.Class, d.Confidence*100)
		gocv.PutText(&mat, label, image.Pt(rect.Min.X, max(rect.Min.Y-6, 12)), gocv.FontHersheySimplex, 0.5, c, 1)
	}

	if err := os.MkdirAll(p.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create annotation dir: %w", err)
	}
	out := filepath.Join(p.OutputDir, annotatedName(imageName))
	if ok := gocv.IMWrite(out, mat); !ok {
		return "", fmt.Errorf("write annotated image %s", out)
	}

	return out, nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

func annotatedName(imageName string) string {
	return strings.TrimSuffix(imageName, filepath.Ext(imageName)) + "_annotated.jpg"
}
