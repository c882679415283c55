package auth

import (
	"crypto/rand"
	"errors"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength - минимальная допустимая длина генерируемого пароля
	MinPasswordLength = 8
	// DefaultPasswordLength - длина одноразового пароля по умолчанию
	DefaultPasswordLength = 8
)

const passwordCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ErrInvalidLength возвращается при запросе пароля короче политики
var ErrInvalidLength = errors.New("password length is below the policy minimum")

// GeneratePassword генерирует случайный пароль из [A-Za-z0-9]
// криптографически стойким источником
func GeneratePassword(length int) (string, error) {
	if length < MinPasswordLength {
		return "", ErrInvalidLength
	}

	buf := make([]byte, length)
	max := big.NewInt(int64(len(passwordCharset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = passwordCharset[n.Int64()]
	}
	return string(buf), nil
}

// HashPassword создает bcrypt хеш пароля.
// Соль генерируется на каждый вызов, одинаковые пароли дают разные дайджесты.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash проверяет пароль против хеша.
// Никогда не возвращает ошибку при несовпадении, только false.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
