// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// Maker определяет интерфейс для создания и проверки токенов с идентификатором
// пользователя, ролью и тарифным планом. MakerImpl — конкретная реализация
// с использованием секретного ключа и срока жизни.
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Ошибки парсинга токена. ErrTokenExpired отделяет истёкший токен от
// любого другого дефекта (подпись, формат), потому что наверху они
// превращаются в разные коды ответа.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	UserUID              string `json:"user_uid"` // Идентификатор пользователя
	Role                 string `json:"role"`     // Роль пользователя
	Plan                 string `json:"plan"`     // Тарифный план на момент выдачи
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateToken создаёт токен с user uid, ролью и планом.
	GenerateToken(userUID, role, plan string) (string, error)
	// ParseToken возвращает *CustomClaims, либо ErrTokenExpired / ErrTokenInvalid.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
	now       func() time.Time
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
		now:       time.Now,
	}
}
