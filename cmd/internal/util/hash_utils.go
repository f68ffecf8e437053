package util

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// GetSHA256Hash вычисляет хеш SHA-256 для входной строки.
func GetSHA256Hash(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}

// FingerprintJSON вычисляет стабильный отпечаток произвольной структуры
// через её JSON-представление. Используется для проверки стабильности
// оценок: один и тот же вход обязан давать один и тот же отпечаток
// результата (без учёта ID и временной метки).
func FingerprintJSON(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return GetSHA256Hash(string(b)), nil
}
