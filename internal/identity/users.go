package identity

import (
	"context"

	"github.com/dropDatabas3/hellojohn-identity/internal/domain/repository"
	"github.com/dropDatabas3/hellojohn-identity/internal/observability/logger"
	"github.com/dropDatabas3/hellojohn-identity/internal/store"
)

// CreateUser asigna ID si está vacío, trackea y commitea.
// Si el store rechaza el write el usuario deja de trackearse, así la sesión
// sigue siendo usable.
func (s *Store) CreateUser(ctx context.Context, u *repository.User) error {
	if u == nil {
		return repository.ErrInvalidArgument
	}
	if err := s.session.Store(ctx, u); err != nil {
		return &repository.PersistenceError{Op: "create user", Err: err}
	}
	if err := s.commit(ctx, "create user"); err != nil {
		s.session.Delete(u)
		s.log.Warn("create user rejected", logger.UserID(u.ID), logger.Err(err))
		return err
	}
	s.log.Debug("user created", logger.UserID(u.ID))
	return nil
}

// UpdateUser sobrescribe la copia persistida con todos los campos de u
// (last-write-wins) y commitea.
func (s *Store) UpdateUser(ctx context.Context, u *repository.User) error {
	if u == nil {
		return repository.ErrUnknownEntity
	}
	stored, err := s.loadUser(ctx, u.ID)
	if err != nil {
		return err
	}
	if stored == nil {
		return repository.ErrUnknownEntity
	}
	if stored != u {
		stored.CopyFrom(u)
	}
	if err := s.commit(ctx, "update user"); err != nil {
		return err
	}
	s.log.Debug("user updated", logger.UserID(u.ID))
	return nil
}

// DeleteUser recarga la copia autoritativa por ID y la elimina.
func (s *Store) DeleteUser(ctx context.Context, u *repository.User) error {
	if u == nil {
		return repository.ErrUnknownEntity
	}
	stored, err := s.loadUser(ctx, u.ID)
	if err != nil {
		return err
	}
	if stored == nil {
		return repository.ErrUnknownEntity
	}
	s.session.Delete(stored)
	if err := s.commit(ctx, "delete user"); err != nil {
		return err
	}
	s.log.Debug("user deleted", logger.UserID(u.ID))
	return nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*repository.User, error) {
	return s.loadUser(ctx, id)
}

func (s *Store) FindUserByName(ctx context.Context, normalizedName string) (*repository.User, error) {
	return s.loadUserByUnique(ctx, repository.FieldNormalizedUserName, normalizedName)
}

func (s *Store) FindUserByEmail(ctx context.Context, normalizedEmail string) (*repository.User, error) {
	return s.loadUserByUnique(ctx, repository.FieldNormalizedEmail, normalizedEmail)
}

// Users lista todos los usuarios persistidos.
func (s *Store) Users(ctx context.Context) ([]*repository.User, error) {
	return s.queryUsers(ctx, store.All{})
}

func (s *Store) UserID(u *repository.User) string { return u.ID }

func (s *Store) UserName(u *repository.User) string { return u.UserName }

func (s *Store) SetUserName(u *repository.User, name string) { u.UserName = name }

func (s *Store) NormalizedUserName(u *repository.User) string { return u.NormalizedUserName }

func (s *Store) SetNormalizedUserName(u *repository.User, name string) {
	u.NormalizedUserName = name
}

// ─── Email / Phone / Password / Stamp / 2FA ───

func (s *Store) SetEmail(u *repository.User, email string) { u.Email = email }

func (s *Store) Email(u *repository.User) string { return u.Email }

func (s *Store) SetEmailConfirmed(u *repository.User, confirmed bool) { u.EmailConfirmed = confirmed }

func (s *Store) EmailConfirmed(u *repository.User) bool { return u.EmailConfirmed }

func (s *Store) SetNormalizedEmail(u *repository.User, email string) { u.NormalizedEmail = email }

func (s *Store) NormalizedEmail(u *repository.User) string { return u.NormalizedEmail }

func (s *Store) SetPhoneNumber(u *repository.User, phone string) { u.PhoneNumber = phone }

func (s *Store) PhoneNumber(u *repository.User) string { return u.PhoneNumber }

func (s *Store) SetPhoneNumberConfirmed(u *repository.User, confirmed bool) {
	u.PhoneNumberConfirmed = confirmed
}

func (s *Store) PhoneNumberConfirmed(u *repository.User) bool { return u.PhoneNumberConfirmed }

func (s *Store) SetPasswordHash(u *repository.User, hash *string) { u.PasswordHash = hash }

func (s *Store) PasswordHash(u *repository.User) *string { return u.PasswordHash }

// HasPassword indica si el usuario tiene password hash (no nil).
func (s *Store) HasPassword(u *repository.User) bool { return u.PasswordHash != nil }

func (s *Store) SetSecurityStamp(u *repository.User, stamp string) { u.SecurityStamp = stamp }

func (s *Store) SecurityStamp(u *repository.User) string { return u.SecurityStamp }

func (s *Store) SetTwoFactorEnabled(u *repository.User, enabled bool) { u.TwoFactorEnabled = enabled }

func (s *Store) TwoFactorEnabled(u *repository.User) bool { return u.TwoFactorEnabled }
