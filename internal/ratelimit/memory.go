package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore хранит окна в памяти процесса. Перезапуск процесса
// обнуляет бюджеты всех пользователей; при нескольких экземплярах
// сервиса каждый ведёт собственный учёт.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
}

// Каждое окно защищено собственным мьютексом, чтобы запросы разных
// пользователей не сериализовались друг о друга.
type window struct {
	mu     sync.Mutex
	stamps []time.Time
}

// NewMemoryStore создаёт пустое хранилище окон.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*window),
	}
}

// Take реализует Store поверх карты окон в памяти.
func (s *MemoryStore) Take(_ context.Context, key string, now time.Time, max int, windowDur time.Duration) (Decision, error) {
	s.mu.Lock()
	w, ok := s.windows[key]
	if !ok {
		w = &window{}
		s.windows[key] = w
	}
	s.mu.Unlock()

	w.mu.Lock()
	defer w.mu.Unlock()

	w.prune(now.Add(-windowDur))

	if len(w.stamps) >= max {
		return Decision{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: retryAfter(w.stamps[0], now, windowDur),
		}, nil
	}

	w.stamps = append(w.stamps, now)
	return Decision{
		Allowed:   true,
		Remaining: max - len(w.stamps),
	}, nil
}

// prune выбрасывает отметки старше границы окна. Отметки упорядочены
// по времени добавления, поэтому достаточно найти первую живую.
// Повторный вызов с той же границей ничего не меняет.
func (w *window) prune(cutoff time.Time) {
	idx := 0
	for idx < len(w.stamps) && !w.stamps[idx].After(cutoff) {
		idx++
	}
	if idx > 0 {
		w.stamps = append(w.stamps[:0], w.stamps[idx:]...)
	}
}
