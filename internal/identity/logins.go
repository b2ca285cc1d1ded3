package identity

import (
	"context"

	"github.com/dropDatabas3/hellojohn-identity/internal/domain/repository"
	"github.com/dropDatabas3/hellojohn-identity/internal/observability/logger"
	"github.com/dropDatabas3/hellojohn-identity/internal/store"
)

// AddLogin asocia un login externo. Un login con el mismo (provider, key)
// se reemplaza.
func (s *Store) AddLogin(u *repository.User, login repository.Login) {
	for i := range u.Logins {
		if sameLogin(u.Logins[i], login.LoginProvider, login.ProviderKey) {
			u.Logins[i] = login
			return
		}
	}
	u.Logins = append(u.Logins, login)
}

func (s *Store) RemoveLogin(u *repository.User, loginProvider, providerKey string) {
	out := make([]repository.Login, 0, len(u.Logins))
	for _, l := range u.Logins {
		if !sameLogin(l, loginProvider, providerKey) {
			out = append(out, l)
		}
	}
	if len(out) < len(u.Logins) {
		u.Logins = out
	}
}

func (s *Store) Logins(u *repository.User) []repository.Login { return u.Logins }

// FindUserByLogin retorna el usuario dueño del login, o (nil, nil).
func (s *Store) FindUserByLogin(ctx context.Context, loginProvider, providerKey string) (*repository.User, error) {
	if loginProvider == "" || providerKey == "" {
		return nil, nil
	}
	match := map[string]string{
		"loginProvider": loginProvider,
		"providerKey":   providerKey,
	}
	users, err := s.queryUsers(ctx, store.ElemMatch{Field: repository.FieldLogins, Fields: match})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	if len(users) > 1 {
		s.log.Warn("login owned by more than one user",
			logger.LoginProvider(loginProvider), logger.Count(len(users)))
	}
	return users[0], nil
}

func sameLogin(l repository.Login, provider, key string) bool {
	return l.LoginProvider == provider && l.ProviderKey == key
}
