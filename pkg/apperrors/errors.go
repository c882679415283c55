package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// FieldError - ошибка валидации конкретного поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// AppError - основная структура ошибки приложения
type AppError struct {
	Code     ErrorCode    `json:"code"`
	Message  string       `json:"message"`
	Errors   []FieldError `json:"errors,omitempty"`
	Err      error        `json:"-"`
	HTTPCode int          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New - базовый конструктор
func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap - оборачивает существующую ошибку в AppError
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithFieldErrors(errs []FieldError) *AppError {
	e.Errors = errs
	return e
}

// Is - обертка над стандартной функцией errors.Is
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As - обертка над стандартной функцией errors.As
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// --- Хелперы под таксономию ошибок API ---

// InternalError оборачивает неожиданную системную ошибку, не раскрывая деталей клиенту
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Внутренняя ошибка сервера", http.StatusInternalServerError)
}

// ValidationError создает ошибку валидации со списком ошибок по полям
func ValidationError(errs []FieldError) *AppError {
	return New(CodeValidationError, "Ошибка валидации данных", http.StatusUnprocessableEntity).WithFieldErrors(errs)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewNotFoundError(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func NewConflictError(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}

func NewUnsupportedMediaTypeError(message string) *AppError {
	return New(CodeUnsupportedMediaType, message, http.StatusUnsupportedMediaType)
}

func NewQuotaExceededError(message string) *AppError {
	return New(CodeQuotaExceeded, message, http.StatusBadRequest)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationError, message, http.StatusBadRequest)
}
