package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

// isCheckViolation verifica si un error es una violación de CHECK (23514).
func isCheckViolation(err error) bool {
	return hasCode(err, "23514")
}

// isNumericOverflow verifica si un valor no cabe en la columna NUMERIC (22003).
func isNumericOverflow(err error) bool {
	return hasCode(err, "22003")
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}
