package identity

import "github.com/dropDatabas3/hellojohn-identity/internal/domain/repository"

// SetToken inserta o actualiza el token (provider, name).
func (s *Store) SetToken(u *repository.User, loginProvider, name, value string) {
	for i := range u.Tokens {
		if u.Tokens[i].LoginProvider == loginProvider && u.Tokens[i].Name == name {
			u.Tokens[i].Value = value
			return
		}
	}
	u.Tokens = append(u.Tokens, repository.Token{LoginProvider: loginProvider, Name: name, Value: value})
}

func (s *Store) RemoveToken(u *repository.User, loginProvider, name string) {
	out := make([]repository.Token, 0, len(u.Tokens))
	for _, t := range u.Tokens {
		if t.LoginProvider != loginProvider || t.Name != name {
			out = append(out, t)
		}
	}
	if len(out) < len(u.Tokens) {
		u.Tokens = out
	}
}

// Token retorna el valor del token y si existe.
func (s *Store) Token(u *repository.User, loginProvider, name string) (string, bool) {
	for _, t := range u.Tokens {
		if t.LoginProvider == loginProvider && t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}
