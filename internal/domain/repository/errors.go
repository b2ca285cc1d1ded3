package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indica que el documento solicitado no existe.
	ErrNotFound = errors.New("not found")

	// ErrConflict indica una violación de unique constraint o un ID duplicado.
	ErrConflict = errors.New("conflict")

	// ErrInvalidArgument indica que falta un argumento requerido (role name, claim).
	// Se reporta antes de cualquier I/O.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownEntity indica que el destino de un update/delete no existe en el store.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrRoleNotFound indica que el rol referenciado por nombre no existe.
	ErrRoleNotFound = errors.New("role not found")
)

// PersistenceError envuelve un rechazo del store al persistir (commit).
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsNotFound verifica si el error es ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict verifica si el error es ErrConflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsUnknownEntity verifica si el error es ErrUnknownEntity.
func IsUnknownEntity(err error) bool {
	return errors.Is(err, ErrUnknownEntity)
}

// IsRoleNotFound verifica si el error es ErrRoleNotFound.
func IsRoleNotFound(err error) bool {
	return errors.Is(err, ErrRoleNotFound)
}

// IsPersistence verifica si el error proviene de un commit rechazado.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
