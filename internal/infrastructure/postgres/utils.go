package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/invorya/inventory-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// isIntegrityViolation verifica violaciones de integridad distintas de la
// unicidad: FK inexistente (23503), CHECK (23514) y NOT NULL (23502).
func isIntegrityViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503", "23514", "23502":
			return true
		}
	}
	return false
}

// translateConstraint mapea errores de constraint a errores de dominio:
// unicidad -> ErrDuplicate, resto de integridad -> ErrConstraint.
// Devuelve nil si el error no es de constraint.
func translateConstraint(err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isIntegrityViolation(err):
		return domain.ErrConstraint
	}
	return nil
}
