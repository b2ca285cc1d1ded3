package identity

import (
	"time"

	"github.com/dropDatabas3/hellojohn-identity/internal/domain/repository"
)

// La política de lockout vive en el framework; acá sólo se guarda el estado.

func (s *Store) LockoutEnd(u *repository.User) *time.Time { return u.LockoutEnd }

func (s *Store) SetLockoutEnd(u *repository.User, end *time.Time) { u.LockoutEnd = end }

// IncrementAccessFailedCount incrementa el contador y retorna el nuevo valor.
func (s *Store) IncrementAccessFailedCount(u *repository.User) int {
	u.AccessFailedCount++
	return u.AccessFailedCount
}

func (s *Store) ResetAccessFailedCount(u *repository.User) { u.AccessFailedCount = 0 }

func (s *Store) AccessFailedCount(u *repository.User) int { return u.AccessFailedCount }

func (s *Store) LockoutEnabled(u *repository.User) bool { return u.LockoutEnabled }

func (s *Store) SetLockoutEnabled(u *repository.User, enabled bool) { u.LockoutEnabled = enabled }
