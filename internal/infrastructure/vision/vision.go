package vision

import "leak-watch/internal/domain/port"

// DefaultMaxSide длинная сторона, до которой уменьшаются снимки
const DefaultMaxSide = 1024

var (
	_ port.ImageLoader = (*ImageProcessor)(nil)
	_ port.Annotator   = (*ImageProcessor)(nil)
)
