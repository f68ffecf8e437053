package util

import (
	"database/sql"
	"time"
)

// NullableString преобразует *string в sql.NullString.
// Пустая строка ("") также будет считаться NULL для базы данных.
func NullableString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

// NullableFloat64 преобразует *float64 в sql.NullFloat64.
// Используется для опционального перцентиля бенчмарка.
func NullableFloat64(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// NullableTime преобразует *time.Time в sql.NullTime.
func NullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// NilIfEmpty возвращает nil для пустой строки, чтобы в БД ушёл NULL,
// а не пустое значение.
func NilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
