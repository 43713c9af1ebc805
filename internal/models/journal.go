package models

import "time"

// JournalEntry представляет запись личного журнала пользователя.
type JournalEntry struct {
	ID        int       // Идентификатор записи
	UserUID   string    // Автор записи
	Title     string    // Заголовок
	Content   string    // Текст записи
	Tags      []string  // Произвольные метки
	CreatedAt time.Time // Дата создания
}

// DummyJournalEntry используется для приёма данных из JSON-запроса.
type DummyJournalEntry struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags" validate:"max=20,dive,max=50"`
}

// JournalFilter описывает параметры выборки записей журнала.
type JournalFilter struct {
	UserUID string
	Search  string
	Limit   int
	Offset  int
}
