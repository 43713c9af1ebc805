// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Успешные ответы несут
// статус и данные; ошибки несут человекочитаемое сообщение и машинный код,
// по которому определяется HTTP-статус.
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"
)

// Машинные коды ошибок API.
const (
	CodeTokenRequired           = "TOKEN_REQUIRED"
	CodeTokenExpired            = "TOKEN_EXPIRED"
	CodeInvalidToken            = "INVALID_TOKEN"
	CodeTokenVerificationFailed = "TOKEN_VERIFICATION_FAILED"
	CodeResourceNotFound        = "RESOURCE_NOT_FOUND"
	CodeAccessDenied            = "ACCESS_DENIED"
	CodeSubscriptionRequired    = "SUBSCRIPTION_REQUIRED"
	CodeAdminRequired           = "ADMIN_REQUIRED"
	CodeRateLimitExceeded       = "RATE_LIMIT_EXCEEDED"
	CodeValidationError         = "VALIDATION_ERROR"
	CodeNotFound                = "NOT_FOUND"
	CodeInternalError           = "INTERNAL_ERROR"
)

// Response описывает стандартную структуру успешного JSON‑ответа сервера.
type Response struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

// StatusOK — значение статуса для успешного ответа.
const StatusOK = "OK"

// OK возвращает успешный Response без данных.
func OK() Response {
	return Response{Status: StatusOK}
}

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// APIError — единая форма ошибки API: сообщение, код и дополнительные
// поля для отдельных видов ошибок (уровни подписки, время повтора).
type APIError struct {
	Message       string `json:"message"`
	Code          string `json:"code"`
	RequiredLevel string `json:"requiredLevel,omitempty"`
	CurrentLevel  string `json:"currentLevel,omitempty"`
	RetryAfter    int    `json:"retryAfter,omitempty"`
}

// Error реализует интерфейс error, чтобы APIError можно было
// возвращать из guard-функций как обычную ошибку.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HTTPStatus возвращает HTTP-статус, соответствующий коду ошибки.
func (e *APIError) HTTPStatus() int {
	switch e.Code {
	case CodeTokenRequired, CodeTokenExpired, CodeInvalidToken:
		return http.StatusUnauthorized
	case CodeAccessDenied, CodeSubscriptionRequired, CodeAdminRequired:
		return http.StatusForbidden
	case CodeResourceNotFound, CodeValidationError:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Err возвращает APIError с заданным кодом и сообщением.
func Err(code, msg string) *APIError {
	return &APIError{
		Message: msg,
		Code:    code,
	}
}

// Internal возвращает ошибку внутреннего класса. В продуктивном режиме
// деталь скрывается, наружу уходит общее сообщение.
func Internal(detail string, production bool) *APIError {
	if production || detail == "" {
		return Err(CodeInternalError, "internal server error")
	}
	return Err(CodeInternalError, detail)
}

// ValidationError формирует APIError на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) *APIError {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "alphanum":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers and letters", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Err(CodeValidationError, strings.Join(errsMsgs, ", "))
}
