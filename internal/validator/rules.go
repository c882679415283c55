package validator

import (
	"log"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// Имя: только буквы (включая кириллицу), пробелы и дефисы
var nameRe = regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ\s\-]+$`)

// registerCustomRules регистрирует кастомные функции валидации
// в переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Критическая ошибка конфигурации: без правила не стартуем
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'personname': имя из формы регистрации
	mustRegister("personname", validatePersonName)

	// 'adult': дата рождения дает возраст 18..100
	mustRegister("adult", validateAdult)
}

func validatePersonName(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' обрабатывает пустые
	}
	return nameRe.MatchString(value)
}

func validateAdult(fl validator.FieldLevel) bool {
	var birthDate time.Time

	switch v := fl.Field().Interface().(type) {
	case time.Time:
		birthDate = v
	case string:
		// Дата из JSON приходит строкой "2006-01-02";
		// формат проверяет правило 'datetime'
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return true
		}
		birthDate = parsed
	default:
		return true
	}

	if birthDate.IsZero() {
		return true
	}

	age := ageAt(birthDate, time.Now())
	return age >= 18 && age <= 100
}

func ageAt(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	return age
}
