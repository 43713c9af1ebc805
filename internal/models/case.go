package models

import "time"

// Case представляет юридическое дело пользователя.
type Case struct {
	ID          int       // Идентификатор дела
	UserUID     string    // Владелец дела
	Title       string    // Краткое название
	Description string    // Описание обстоятельств
	CaseType    string    // Тип дела (трудовое, жилищное и т.д.)
	Status      string    // Статус: open, in_progress, closed
	CreatedAt   time.Time // Дата создания
	UpdatedAt   time.Time // Дата последнего изменения
}

// DummyCase используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Case.
type DummyCase struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	CaseType    string `json:"case_type" validate:"required"`
	Status      string `json:"status" validate:"omitempty,oneof=open in_progress closed"`
}

// CaseFilter описывает параметры выборки списка дел.
type CaseFilter struct {
	UserUID string // Владелец
	Status  string // Фильтр по статусу, пустая строка — без фильтра
	Search  string // Подстрока для поиска по названию и описанию
	Limit   int
	Offset  int
}
