package entity

import (
	"image"
	"strings"
)

// BoundingBox область найденного объекта. X и Y задают центр рамки, как отдаёт модель.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect возвращает прямоугольник в координатах левого верхнего и правого нижнего углов
func (b BoundingBox) Rect() image.Rectangle {
	x0 := int(b.X - b.Width/2)
	y0 := int(b.Y - b.Height/2)
	return image.Rect(x0, y0, x0+int(b.Width), y0+int(b.Height))
}

// Detection одна рамка с классом, найденная моделью на изображении
type Detection struct {
	Class      string      `json:"class"`
	Confidence float64     `json:"confidence"`
	BBox       BoundingBox `json:"bbox"`
}

// IsLeak сообщает, что в имени класса есть "leak" в любом регистре
func (d Detection) IsLeak() bool {
	return strings.Contains(strings.ToLower(d.Class), "leak")
}

// IsNormal сообщает, что в имени класса есть "normal" в любом регистре
func (d Detection) IsNormal() bool {
	return strings.Contains(strings.ToLower(d.Class), "normal")
}

// RawPrediction элемент списка predictions в ответе модели, без схемы
type RawPrediction map[string]any

// String возвращает строковое поле или def, если поля нет или оно другого типа
func (p RawPrediction) String(key, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

// Float возвращает числовое поле или def
func (p RawPrediction) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

// PredictionResponse ответ модели на одно изображение
type PredictionResponse struct {
	Predictions []RawPrediction `json:"predictions"`
}
