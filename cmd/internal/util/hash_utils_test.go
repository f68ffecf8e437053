package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========== Тесты для GetSHA256Hash ==========

func TestGetSHA256Hash(t *testing.T) {
	t.Run("известный вектор", func(t *testing.T) {
		// SHA-256("hello") — стандартный тестовый вектор
		expected := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

		assert.Equal(t, expected, GetSHA256Hash("hello"))
	})

	t.Run("детерминированность", func(t *testing.T) {
		assert.Equal(t, GetSHA256Hash("payload"), GetSHA256Hash("payload"))
	})

	t.Run("разные входы дают разные хеши", func(t *testing.T) {
		assert.NotEqual(t, GetSHA256Hash("a"), GetSHA256Hash("b"))
	})

	t.Run("пустая строка", func(t *testing.T) {
		hash := GetSHA256Hash("")

		assert.Len(t, hash, 64, "хеш всегда 64 hex-символа")
	})
}

// ========== Тесты для FingerprintJSON ==========

func TestFingerprintJSON(t *testing.T) {
	type payload struct {
		Name  string   `json:"name"`
		Score int      `json:"score"`
		Tags  []string `json:"tags"`
	}

	t.Run("одинаковые структуры дают одинаковый отпечаток", func(t *testing.T) {
		a := payload{Name: "devis", Score: 720, Tags: []string{"x", "y"}}
		b := payload{Name: "devis", Score: 720, Tags: []string{"x", "y"}}

		fpA, err := FingerprintJSON(a)
		require.NoError(t, err)
		fpB, err := FingerprintJSON(b)
		require.NoError(t, err)

		assert.Equal(t, fpA, fpB)
	})

	t.Run("изменение поля меняет отпечаток", func(t *testing.T) {
		a := payload{Name: "devis", Score: 720}
		b := payload{Name: "devis", Score: 721}

		fpA, err := FingerprintJSON(a)
		require.NoError(t, err)
		fpB, err := FingerprintJSON(b)
		require.NoError(t, err)

		assert.NotEqual(t, fpA, fpB)
	})

	t.Run("map сериализуется с отсортированными ключами", func(t *testing.T) {
		// encoding/json сортирует ключи map, поэтому отпечаток
		// не зависит от порядка вставки.
		a := map[string]int{"alpha": 1, "beta": 2, "gamma": 3}
		b := map[string]int{"gamma": 3, "alpha": 1, "beta": 2}

		fpA, err := FingerprintJSON(a)
		require.NoError(t, err)
		fpB, err := FingerprintJSON(b)
		require.NoError(t, err)

		assert.Equal(t, fpA, fpB)
	})

	t.Run("несериализуемое значение возвращает ошибку", func(t *testing.T) {
		_, err := FingerprintJSON(make(chan int))

		assert.Error(t, err)
	})
}
