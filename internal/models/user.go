// Package models содержит доменные структуры сервиса юридического помощника:
// пользователей, дела, документы, записи журнала, чаты и оценку рисков.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей. Проверка роли admin выполняется строгим сравнением,
// неизвестная роль не приравнивается ни к одной из известных.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string     // Уникальный идентификатор пользователя
	Email        string     // Электронная почта
	Username     string     // Имя пользователя (уникальное)
	PasswordHash string     // Хэш пароля пользователя
	Role         string     // Роль пользователя, admin или user
	Plan         Plan       // Тарифный план подписки
	Active       bool       // Признак активной учётной записи
	CreatedAt    time.Time  // Дата регистрации
	LastLoginAt  *time.Time // Дата последнего входа
}

// Principal — разрешённая личность текущего запроса. Создаётся middleware
// аутентификации на время одного запроса и никогда не сохраняется.
// Хэш пароля в Principal не попадает.
type Principal struct {
	UID    string `json:"uid"`
	Role   string `json:"role"`
	Plan   Plan   `json:"plan"`
	Active bool   `json:"active"`
}

// NewPrincipal строит Principal из записи пользователя, исключая секретные поля.
func NewPrincipal(u *User) *Principal {
	return &Principal{
		UID:    u.UID,
		Role:   u.Role,
		Plan:   u.Plan,
		Active: u.Active,
	}
}

// IsAdmin возвращает true, если роль принципала — admin (строгое сравнение).
func (p *Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
