package identity

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dropDatabas3/hellojohn-identity/internal/domain/repository"
	"github.com/dropDatabas3/hellojohn-identity/internal/observability/logger"
	"github.com/dropDatabas3/hellojohn-identity/internal/store"
)

// Store implementa todos los contratos de repository sobre una sesión.
type Store struct {
	session store.Session
	log     *zap.Logger
}

var (
	_ repository.UnitOfWork             = (*Store)(nil)
	_ repository.UserStore              = (*Store)(nil)
	_ repository.QueryableUserStore     = (*Store)(nil)
	_ repository.UserClaimStore         = (*Store)(nil)
	_ repository.UserLoginStore         = (*Store)(nil)
	_ repository.UserRoleStore          = (*Store)(nil)
	_ repository.UserPasswordStore      = (*Store)(nil)
	_ repository.UserSecurityStampStore = (*Store)(nil)
	_ repository.UserEmailStore         = (*Store)(nil)
	_ repository.UserLockoutStore       = (*Store)(nil)
	_ repository.UserPhoneNumberStore   = (*Store)(nil)
	_ repository.UserTwoFactorStore     = (*Store)(nil)
	_ repository.UserTokenStore         = (*Store)(nil)
	_ repository.RoleStore              = (*Store)(nil)
	_ repository.RoleClaimStore         = (*Store)(nil)
)

// Option configura un Store.
type Option func(*Store)

// WithLogger reemplaza el logger (default: logger.Named("identity")).
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New crea un Store sobre la sesión dada.
func New(session store.Session, opts ...Option) *Store {
	s := &Store{session: session}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Named("identity")
	}
	return s
}

// SaveChanges persiste todas las mutaciones staged en la sesión.
func (s *Store) SaveChanges(ctx context.Context) error {
	if err := s.session.SaveChanges(ctx); err != nil {
		return &repository.PersistenceError{Op: "save changes", Err: err}
	}
	return nil
}

func newUserDoc() store.Document { return &repository.User{} }

func newRoleDoc() store.Document { return &repository.Role{} }

// loadUser retorna (nil, nil) si el usuario no existe.
func (s *Store) loadUser(ctx context.Context, id string) (*repository.User, error) {
	if id == "" {
		return nil, nil
	}
	doc, err := s.session.Load(ctx, id, newUserDoc)
	if repository.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("identity: load user %s: %w", id, err)
	}
	return doc.(*repository.User), nil
}

func (s *Store) loadUserByUnique(ctx context.Context, field, value string) (*repository.User, error) {
	if value == "" {
		return nil, nil
	}
	doc, err := s.session.LoadByUnique(ctx, field, value, newUserDoc)
	if repository.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("identity: load user by %s: %w", field, err)
	}
	return doc.(*repository.User), nil
}

func (s *Store) queryUsers(ctx context.Context, filter store.Filter) ([]*repository.User, error) {
	docs, err := s.session.Query(ctx, filter, newUserDoc)
	if err != nil {
		return nil, fmt.Errorf("identity: query users: %w", err)
	}
	users := make([]*repository.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.(*repository.User))
	}
	return users, nil
}

// loadRole retorna (nil, nil) si el rol no existe.
func (s *Store) loadRole(ctx context.Context, id string) (*repository.Role, error) {
	if id == "" {
		return nil, nil
	}
	doc, err := s.session.Load(ctx, id, newRoleDoc)
	if repository.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("identity: load role %s: %w", id, err)
	}
	return doc.(*repository.Role), nil
}

// commit persiste la sesión; un rechazo del store se reporta como
// *repository.PersistenceError.
func (s *Store) commit(ctx context.Context, op string) error {
	if err := s.session.SaveChanges(ctx); err != nil {
		return &repository.PersistenceError{Op: op, Err: err}
	}
	return nil
}
