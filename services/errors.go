package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("already exists")

	// ErrUnknownCliente is returned when an order references a missing client.
	ErrUnknownCliente = errors.New("cliente does not exist")

	// ErrUnknownIngrediente is returned when a menu names a missing ingredient.
	ErrUnknownIngrediente = errors.New("ingrediente does not exist")

	// ErrInsufficientStock is returned when a stock change would go below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ValidationError reports a field that failed input validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

// listSafe rejects the separators of the "nombre:cantidad, ..." menu syntax.
func listSafe(field, value string) error {
	if strings.ContainsAny(value, ",:") {
		return &ValidationError{Field: field, Message: `must not contain "," or ":"`}
	}
	return nil
}

func nonNegative(field string, v int64) error {
	if v < 0 {
		return &ValidationError{Field: field, Message: "must be >= 0"}
	}
	return nil
}

func positive(field string, v int64) error {
	if v <= 0 {
		return &ValidationError{Field: field, Message: "must be > 0"}
	}
	return nil
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// classify maps driver errors onto the package's sentinel errors. what names
// the entity for the error message.
func classify(what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%s: %w", what, ErrDuplicate)
		case pgerrcode.ForeignKeyViolation:
			if strings.HasSuffix(pgErr.ConstraintName, "cliente_email_fkey") {
				return fmt.Errorf("%s: %w", what, ErrUnknownCliente)
			}
			if strings.HasSuffix(pgErr.ConstraintName, "ingrediente_id_fkey") {
				return fmt.Errorf("%s: %w", what, ErrUnknownIngrediente)
			}
		case pgerrcode.CheckViolation:
			if pgErr.ConstraintName == "ingredientes_cantidad_check" {
				return fmt.Errorf("%s: %w", what, ErrInsufficientStock)
			}
			return &ValidationError{Field: pgErr.ConstraintName, Message: "violates check constraint"}
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}
