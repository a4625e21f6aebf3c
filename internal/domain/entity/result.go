package entity

import (
	"encoding/json"
	"path"
	"strings"
)

// DetectionCounts итог классификации одного изображения
type DetectionCounts struct {
	Leaked     int         // рамки с "leak" в имени класса
	Normal     int         // рамки с "normal" в имени класса
	Detections []Detection // все рамки в порядке ответа модели
}

// Total возвращает общее число рамок, включая неклассифицированные
func (c DetectionCounts) Total() int {
	return len(c.Detections)
}

// ImageResult итог обработки одного изображения: либо Counts, либо Err.
type ImageResult struct {
	Image  string
	Counts *DetectionCounts
	Err    error
}

// NewImageSuccess создаёт успешный результат
func NewImageSuccess(image string, counts DetectionCounts) ImageResult {
	return ImageResult{Image: image, Counts: &counts}
}

// NewImageFailure создаёт результат с ошибкой
func NewImageFailure(image string, err error) ImageResult {
	return ImageResult{Image: image, Err: err}
}

// Failed сообщает, завершилась ли обработка ошибкой
func (r ImageResult) Failed() bool {
	return r.Err != nil
}

// Tally возвращает счётчики или пустые счётчики для неудачного результата
func (r ImageResult) Tally() DetectionCounts {
	if r.Counts == nil {
		return DetectionCounts{}
	}
	return *r.Counts
}

func (r ImageResult) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(struct {
			Image string `json:"image"`
			Error string `json:"error"`
		}{r.Image, r.Err.Error()})
	}

	counts := r.Tally()
	detections := counts.Detections
	if detections == nil {
		detections = []Detection{}
	}
	return json.Marshal(struct {
		Image           string      `json:"image"`
		LeakedPumps     int         `json:"leaked_pumps"`
		NormalPumps     int         `json:"normal_pumps"`
		TotalDetections int         `json:"total_detections"`
		Detections      []Detection `json:"detections"`
	}{r.Image, counts.Leaked, counts.Normal, counts.Total(), detections})
}

// ImageName возвращает имя файла из пути с любыми разделителями
func ImageName(p string) string {
	return path.Base(strings.ReplaceAll(p, `\`, "/"))
}
