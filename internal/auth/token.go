package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// tokenEntropyBytes - байты энтропии непрозрачного bearer-токена
const tokenEntropyBytes = 32

// GenerateToken генерирует непрозрачный URL-safe токен
// с 32 байтами энтропии
func GenerateToken() (string, error) {
	buf := make([]byte, tokenEntropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
