package validator

import (
	"fmt"
	"reflect"
	"strings"

	"ume_backend/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

// ValidationError — кастомный тип ошибки со списком ошибок по полям
// в формате конверта API: {field, message, type}.
type ValidationError struct {
	Errors []apperrors.FieldError
}

// Error реализует стандартный интерфейс error.
func (e *ValidationError) Error() string {
	var errMsgs []string
	for _, fe := range e.Errors {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", fe.Field, fe.Message))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// Validator — обертка над go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// New создает новый экземпляр Validator.
func New() *Validator {
	v := validator.New()

	// Используем JSON-теги в сообщениях об ошибках, чтобы клиент
	// получал имена полей как они определены в DTO
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomRules(v)

	return &Validator{
		validate: v,
	}
}

// Validate выполняет валидацию переданной структуры.
// Если есть ошибки, возвращает *ValidationError.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Это какая-то другая ошибка (например, ошибка рефлексии)
		return err
	}

	fieldErrors := make([]apperrors.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		// fe.Field() вернет имя из json-тега благодаря RegisterTagNameFunc
		fieldErrors = append(fieldErrors, apperrors.FieldError{
			Field:   fe.Field(),
			Message: v.getErrorMessage(fe),
			Type:    fe.Tag(),
		})
	}

	return &ValidationError{Errors: fieldErrors}
}

// getErrorMessage - вспомогательная функция для генерации сообщений.
func (v *Validator) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Поле '%s' обязательно для заполнения", fe.Field())
	case "email":
		return "Некорректный email адрес"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Минимальная длина: %s символов", fe.Param())
		}
		return fmt.Sprintf("Минимальное значение: %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Максимальная длина: %s символов", fe.Param())
		}
		return fmt.Sprintf("Максимальное значение: %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Допустимые значения: %s", strings.Replace(fe.Param(), " ", ", ", -1))
	case "personname":
		return "Имя может содержать только буквы, пробелы и дефисы"
	case "adult":
		return "Вам должно быть больше 18 лет"
	case "eqfield":
		return "Новые пароли не совпадают"
	case "nefield":
		return "Новый пароль должен отличаться от старого"
	default:
		return fmt.Sprintf("Некорректное значение (правило '%s')", fe.Tag())
	}
}
