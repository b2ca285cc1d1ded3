package repository

import (
	"context"
	"time"
)

// UnitOfWork persiste los cambios staged en la sesión.
// Los setters de los stores NO persisten: mutan la entidad y dependen de
// un SaveChanges posterior.
type UnitOfWork interface {
	SaveChanges(ctx context.Context) error
}

// UserStore define el ciclo de vida y lookups de usuarios.
type UserStore interface {
	// CreateUser persiste un usuario nuevo. Retorna *PersistenceError si el
	// store rechaza el write (ej: unique constraint).
	CreateUser(ctx context.Context, u *User) error

	// UpdateUser sobrescribe la copia persistida con todos los campos de u.
	// Retorna ErrUnknownEntity si no existe copia persistida.
	UpdateUser(ctx context.Context, u *User) error

	// DeleteUser recarga por ID y elimina. Retorna ErrUnknownEntity si no existe.
	DeleteUser(ctx context.Context, u *User) error

	// FindUserByID retorna (nil, nil) si no existe.
	FindUserByID(ctx context.Context, id string) (*User, error)

	// FindUserByName busca por normalized user name. (nil, nil) si no existe.
	FindUserByName(ctx context.Context, normalizedName string) (*User, error)

	UserID(u *User) string
	UserName(u *User) string
	SetUserName(u *User, name string)
	NormalizedUserName(u *User) string
	SetNormalizedUserName(u *User, name string)
}

// QueryableUserStore expone el listado completo de usuarios.
type QueryableUserStore interface {
	Users(ctx context.Context) ([]*User, error)
}

// UserClaimStore define operaciones sobre los claims del usuario.
type UserClaimStore interface {
	Claims(u *User) []Claim
	AddClaims(u *User, claims ...Claim)
	ReplaceClaim(u *User, claim, newClaim Claim)
	RemoveClaims(u *User, claims ...Claim)

	// UsersForClaim retorna ErrInvalidArgument si claim es nil.
	UsersForClaim(ctx context.Context, claim *Claim) ([]*User, error)
}

// UserLoginStore define operaciones sobre logins externos.
type UserLoginStore interface {
	AddLogin(u *User, login Login)
	RemoveLogin(u *User, loginProvider, providerKey string)
	Logins(u *User) []Login
	FindUserByLogin(ctx context.Context, loginProvider, providerKey string) (*User, error)
}

// UserRoleStore define la membresía de usuarios en roles.
type UserRoleStore interface {
	// AddUserToRole no hace nada si el rol no existe. RemoveUserFromRole
	// retorna ErrRoleNotFound. En ambos casos el role reference set queda
	// sin cambios.
	AddUserToRole(ctx context.Context, u *User, roleName string) error
	RemoveUserFromRole(ctx context.Context, u *User, roleName string) error
	UserRoles(u *User) []string
	IsUserInRole(u *User, roleName string) bool

	// UsersInRole retorna ErrInvalidArgument si roleName es vacío.
	UsersInRole(ctx context.Context, roleName string) ([]*User, error)
}

// UserPasswordStore define el almacenamiento del password hash.
type UserPasswordStore interface {
	SetPasswordHash(u *User, hash *string)
	PasswordHash(u *User) *string
	HasPassword(u *User) bool
}

// UserSecurityStampStore define el security stamp.
type UserSecurityStampStore interface {
	SetSecurityStamp(u *User, stamp string)
	SecurityStamp(u *User) string
}

// UserEmailStore define email, confirmación y lookup por email.
type UserEmailStore interface {
	SetEmail(u *User, email string)
	Email(u *User) string
	SetEmailConfirmed(u *User, confirmed bool)
	EmailConfirmed(u *User) bool
	SetNormalizedEmail(u *User, email string)
	NormalizedEmail(u *User) string
	FindUserByEmail(ctx context.Context, normalizedEmail string) (*User, error)
}

// UserLockoutStore define los contadores de lockout.
type UserLockoutStore interface {
	LockoutEnd(u *User) *time.Time
	SetLockoutEnd(u *User, end *time.Time)
	IncrementAccessFailedCount(u *User) int
	ResetAccessFailedCount(u *User)
	AccessFailedCount(u *User) int
	LockoutEnabled(u *User) bool
	SetLockoutEnabled(u *User, enabled bool)
}

// UserPhoneNumberStore define teléfono y confirmación.
type UserPhoneNumberStore interface {
	SetPhoneNumber(u *User, phone string)
	PhoneNumber(u *User) string
	SetPhoneNumberConfirmed(u *User, confirmed bool)
	PhoneNumberConfirmed(u *User) bool
}

// UserTwoFactorStore define el flag de 2FA.
type UserTwoFactorStore interface {
	SetTwoFactorEnabled(u *User, enabled bool)
	TwoFactorEnabled(u *User) bool
}

// UserTokenStore define tokens nombrados por (provider, name).
type UserTokenStore interface {
	SetToken(u *User, loginProvider, name, value string)
	RemoveToken(u *User, loginProvider, name string)
	Token(u *User, loginProvider, name string) (string, bool)
}

// RoleStore define el ciclo de vida de roles.
type RoleStore interface {
	CreateRole(ctx context.Context, r *Role) error
	UpdateRole(ctx context.Context, r *Role) error

	// DeleteRole retorna ErrUnknownEntity si el rol no existe y quita el rol
	// del role reference set de todos los usuarios que lo referencian.
	DeleteRole(ctx context.Context, r *Role) error

	FindRoleByID(ctx context.Context, id string) (*Role, error)
	FindRoleByName(ctx context.Context, name string) (*Role, error)
	Roles(ctx context.Context) ([]*Role, error)

	RoleID(r *Role) string
	RoleName(r *Role) string
	SetRoleName(r *Role, name string)
	NormalizedRoleName(r *Role) string
	SetNormalizedRoleName(r *Role, name string)
}

// RoleClaimStore define los claims de un rol.
type RoleClaimStore interface {
	RoleClaims(r *Role) []Claim
	AddRoleClaim(r *Role, claim Claim)
	RemoveRoleClaim(r *Role, claim Claim)
}
