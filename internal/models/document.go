package models

import "time"

// Document описывает загруженный пользователем файл. Содержимое файла
// хранится в блоб-хранилище по ключу StorageKey, здесь только метаданные.
type Document struct {
	ID          int       // Идентификатор документа
	UserUID     string    // Владелец документа
	CaseID      *int      // Дело, к которому прикреплён документ (может отсутствовать)
	FileName    string    // Исходное имя файла
	ContentType string    // MIME-тип содержимого
	SizeBytes   int64     // Размер файла в байтах
	StorageKey  string    // Ключ в блоб-хранилище
	UploadedAt  time.Time // Дата загрузки
}
