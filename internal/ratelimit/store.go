// Package ratelimit реализует лимит запросов по скользящему журналу:
// для каждого ключа хранятся точные отметки времени допущенных запросов,
// устаревшие отметки вычищаются при каждой проверке. В отличие от
// фиксированных окон и token bucket учёт получается точным.
//
// Хранилище окон вынесено за интерфейс Store: внутрипроцессная реализация
// действует на один экземпляр сервиса, реализация на redis делает лимит
// общим для всех экземпляров.
package ratelimit

import (
	"context"
	"time"
)

// Decision — результат проверки одного запроса.
type Decision struct {
	Allowed    bool          // Допущен ли запрос
	Remaining  int           // Остаток бюджета после решения
	RetryAfter time.Duration // Через сколько освободится слот (при отказе)
}

// Store — хранилище скользящих окон, ключ — идентификатор пользователя.
//
// Take за одну операцию вычищает отметки старше now-window, сравнивает
// остаток с max и при допуске дописывает now. Последовательность
// prune-count-append обязана быть атомарной в пределах ключа, иначе два
// одновременных запроса одного пользователя прочитают одинаковый счётчик
// и оба пройдут, превысив лимит.
type Store interface {
	Take(ctx context.Context, key string, now time.Time, max int, window time.Duration) (Decision, error)
}

// retryAfter считает время до выхода самой старой отметки окна за его
// границу, округляя вверх до целых секунд.
func retryAfter(oldest, now time.Time, window time.Duration) time.Duration {
	d := oldest.Add(window).Sub(now)
	if d <= 0 {
		return time.Second
	}
	secs := d / time.Second
	if d%time.Second != 0 {
		secs++
	}
	return secs * time.Second
}
