package app

import "time"

// Clock источник времени, подменяется в тестах
type Clock interface {
	Now() time.Time
}

// SystemClock реализация по умолчанию
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
