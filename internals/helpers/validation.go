package helper

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ValidatorErrorsToMap meratakan error validator.v10 jadi map field -> pesan tag.
func ValidatorErrorsToMap(err error) map[string][]string {
	out := map[string][]string{}
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			out[fe.Field()] = append(out[fe.Field()], fe.Tag())
		}
	}
	return out
}

/* ===============================
   Duplicate key detection (PG)
=================================*/

type pgSQLErr interface {
	SQLState() string
	Error() string
}

// IsDuplicateKey: cek pelanggaran unique Postgres (SQLSTATE 23505).
// String fallback kompatibel untuk lib/pq & pgx yang dibungkus.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr pgSQLErr
	if errors.As(err, &pgErr) && pgErr.SQLState() == "23505" {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "sqlstate 23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}
