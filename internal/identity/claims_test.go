package identity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellojohn-identity/internal/domain/repository"
)

func TestClaims_AddReplaceRemove(t *testing.T) {
	s := newEnv().Open()
	u := &repository.User{}
	dept := repository.Claim{Type: "dept", Value: "eng"}
	level := repository.Claim{Type: "level", Value: "3"}

	s.AddClaims(u, dept, level, dept)
	require.ElementsMatch(t, []repository.Claim{dept, level, dept}, s.Claims(u))

	ops := repository.Claim{Type: "dept", Value: "ops"}
	s.ReplaceClaim(u, dept, ops)
	require.ElementsMatch(t, []repository.Claim{ops, level, ops}, s.Claims(u))

	// type igual pero value distinto: no matchea
	s.RemoveClaims(u, repository.Claim{Type: "level", Value: "4"})
	require.Len(t, s.Claims(u), 3)

	s.RemoveClaims(u, ops)
	require.Equal(t, []repository.Claim{level}, s.Claims(u))
}

func TestUsersForClaim(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	a := createUser(t, e, "a")
	b := createUser(t, e, "b")

	s := e.Open()
	ua, err := s.FindUserByID(ctx, a.ID)
	require.NoError(t, err)
	s.AddClaims(ua, repository.Claim{Type: "dept", Value: "eng"})
	ub, err := s.FindUserByID(ctx, b.ID)
	require.NoError(t, err)
	s.AddClaims(ub, repository.Claim{Type: "dept", Value: "ops"}, repository.Claim{Type: "eng", Value: "dept"})
	require.NoError(t, s.SaveChanges(ctx))

	_, err = e.Open().UsersForClaim(ctx, nil)
	require.ErrorIs(t, err, repository.ErrInvalidArgument)

	users, err := e.Open().UsersForClaim(ctx, &repository.Claim{Type: "dept", Value: "eng"})
	require.NoError(t, err)
	require.Equal(t, []string{a.ID}, userIDs(users))
}

func TestRemoveClaims_WithOwnClaimsSlice(t *testing.T) {
	s := newEnv().Open()
	u := &repository.User{}
	s.AddClaims(u,
		repository.Claim{Type: "a", Value: "1"},
		repository.Claim{Type: "b", Value: "2"},
		repository.Claim{Type: "c", Value: "3"},
	)

	s.RemoveClaims(u, s.Claims(u)...)
	require.Empty(t, s.Claims(u))

	r := repository.NewRole("Ops")
	s.AddRoleClaim(r, repository.Claim{Type: "a", Value: "1"})
	s.AddRoleClaim(r, repository.Claim{Type: "b", Value: "2"})
	for _, c := range s.RoleClaims(r) {
		s.RemoveRoleClaim(r, c)
	}
	require.Empty(t, s.RoleClaims(r))
}

func TestRemoveClaims_NoMatchKeepsSlice(t *testing.T) {
	s := newEnv().Open()
	u := &repository.User{}
	s.RemoveClaims(u, repository.Claim{Type: "a", Value: "1"})
	require.Nil(t, u.Claims)
}
