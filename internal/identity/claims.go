package identity

import (
	"context"

	"github.com/dropDatabas3/hellojohn-identity/internal/domain/repository"
	"github.com/dropDatabas3/hellojohn-identity/internal/store"
)

func (s *Store) Claims(u *repository.User) []repository.Claim { return u.Claims }

// AddClaims agrega los claims tal cual; se permiten duplicados.
func (s *Store) AddClaims(u *repository.User, claims ...repository.Claim) {
	u.Claims = append(u.Claims, claims...)
}

// ReplaceClaim reemplaza type y value de cada claim que coincide con claim.
func (s *Store) ReplaceClaim(u *repository.User, claim, newClaim repository.Claim) {
	for i := range u.Claims {
		if u.Claims[i].Matches(claim) {
			u.Claims[i] = newClaim
		}
	}
}

// RemoveClaims quita todos los claims que coinciden en type y value.
func (s *Store) RemoveClaims(u *repository.User, claims ...repository.Claim) {
	for _, c := range claims {
		u.Claims = removeClaim(u.Claims, c)
	}
}

// UsersForClaim retorna los usuarios con un claim que coincide en type y value.
func (s *Store) UsersForClaim(ctx context.Context, claim *repository.Claim) ([]*repository.User, error) {
	if claim == nil {
		return nil, repository.ErrInvalidArgument
	}
	return s.queryUsers(ctx, claimFilter(repository.FieldClaims, *claim))
}

func (s *Store) RoleClaims(r *repository.Role) []repository.Claim { return r.Claims }

func (s *Store) AddRoleClaim(r *repository.Role, claim repository.Claim) {
	r.Claims = append(r.Claims, claim)
}

func (s *Store) RemoveRoleClaim(r *repository.Role, claim repository.Claim) {
	r.Claims = removeClaim(r.Claims, claim)
}

func claimFilter(field string, c repository.Claim) store.Filter {
	return store.ElemMatch{Field: field, Fields: map[string]string{"type": c.Type, "value": c.Value}}
}

func removeClaim(claims []repository.Claim, c repository.Claim) []repository.Claim {
	out := make([]repository.Claim, 0, len(claims))
	for _, existing := range claims {
		if !existing.Matches(c) {
			out = append(out, existing)
		}
	}
	if len(out) == len(claims) {
		return claims
	}
	return out
}
