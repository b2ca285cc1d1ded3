package identity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellojohn-identity/internal/domain/repository"
)

func TestAddUserToRole(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	createRole(t, e, "Admin")
	u := createUser(t, e, "alice")

	s := e.Open()
	loaded, err := s.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NoError(t, s.AddUserToRole(ctx, loaded, "Admin"))
	require.NoError(t, s.AddUserToRole(ctx, loaded, "Admin"))
	require.True(t, s.IsUserInRole(loaded, "Admin"))
	require.Equal(t, []string{"Admin"}, s.UserRoles(loaded))
	require.Equal(t, []string{"Roles/Admin"}, loaded.Roles)
	require.NoError(t, s.SaveChanges(ctx))

	require.NoError(t, s.RemoveUserFromRole(ctx, loaded, "Admin"))
	require.False(t, s.IsUserInRole(loaded, "Admin"))
	require.Empty(t, s.UserRoles(loaded))
}

func TestRoleMembership_UnknownRole(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	createRole(t, e, "Admin")
	s := e.Open()
	u := &repository.User{Roles: []string{"Roles/Admin"}}

	require.NoError(t, s.AddUserToRole(ctx, u, "Nope"))
	require.Equal(t, []string{"Roles/Admin"}, u.Roles)
	require.False(t, s.IsUserInRole(u, "Nope"))

	err := s.RemoveUserFromRole(ctx, u, "Nope")
	require.True(t, repository.IsRoleNotFound(err))
	require.Equal(t, []string{"Roles/Admin"}, u.Roles)

	require.ErrorIs(t, s.AddUserToRole(ctx, u, ""), repository.ErrInvalidArgument)
}

func TestUsersInRole(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	createRole(t, e, "Admin")
	createRole(t, e, "Ops")
	a := createUser(t, e, "a")
	b := createUser(t, e, "b")
	createUser(t, e, "c")

	s := e.Open()
	for _, id := range []string{a.ID, b.ID} {
		u, err := s.FindUserByID(ctx, id)
		require.NoError(t, err)
		require.NoError(t, s.AddUserToRole(ctx, u, "Admin"))
	}
	ub, err := s.FindUserByID(ctx, b.ID)
	require.NoError(t, err)
	require.NoError(t, s.AddUserToRole(ctx, ub, "Ops"))
	require.NoError(t, s.SaveChanges(ctx))

	_, err = e.Open().UsersInRole(ctx, "")
	require.ErrorIs(t, err, repository.ErrInvalidArgument)

	admins, err := e.Open().UsersInRole(ctx, "Admin")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{a.ID, b.ID}, userIDs(admins))

	ops, err := e.Open().UsersInRole(ctx, "Ops")
	require.NoError(t, err)
	require.Equal(t, []string{b.ID}, userIDs(ops))
}

func TestRoleCRUD(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	r := createRole(t, e, "Editor")
	require.Equal(t, "Roles/Editor", r.ID)

	s := e.Open()
	got, err := s.FindRoleByName(ctx, "Editor")
	require.NoError(t, err)
	require.Equal(t, r, got)

	byID, err := s.FindRoleByID(ctx, "Roles/Editor")
	require.NoError(t, err)
	require.Same(t, got, byID)

	missing, err := s.FindRoleByName(ctx, "Nope")
	require.NoError(t, err)
	require.Nil(t, missing)

	err = e.Open().CreateRole(ctx, repository.NewRole("Editor"))
	require.True(t, repository.IsPersistence(err))
	require.True(t, repository.IsConflict(err))

	s.SetNormalizedRoleName(got, "EDITORS")
	s.AddRoleClaim(got, repository.Claim{Type: "perm", Value: "write"})
	require.NoError(t, s.UpdateRole(ctx, got))

	reloaded, err := e.Open().FindRoleByID(ctx, r.ID)
	require.NoError(t, err)
	require.Equal(t, "EDITORS", reloaded.NormalizedName)
	require.Equal(t, []repository.Claim{{Type: "perm", Value: "write"}}, reloaded.Claims)

	roles, err := e.Open().Roles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 1)
}

func TestUpdateRole_Upserts(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	require.NoError(t, e.Open().UpdateRole(ctx, &repository.Role{Name: "Viewer"}))

	got, err := e.Open().FindRoleByName(ctx, "Viewer")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Roles/Viewer", got.ID)
}

func TestDeleteRole_CascadesMembership(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	admin := createRole(t, e, "Admin")
	createRole(t, e, "Ops")
	u := createUser(t, e, "alice")

	s := e.Open()
	loaded, err := s.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NoError(t, s.AddUserToRole(ctx, loaded, "Admin"))
	require.NoError(t, s.AddUserToRole(ctx, loaded, "Ops"))
	require.NoError(t, s.SaveChanges(ctx))

	require.NoError(t, e.Open().DeleteRole(ctx, admin))

	after, err := e.Open().FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"Roles/Ops"}, after.Roles)

	gone, err := e.Open().FindRoleByName(ctx, "Admin")
	require.NoError(t, err)
	require.Nil(t, gone)

	require.True(t, repository.IsUnknownEntity(e.Open().DeleteRole(ctx, admin)))
}

func TestRoleAccessors(t *testing.T) {
	s := newEnv().Open()
	r := repository.NewRole("Dev")

	require.Equal(t, "Roles/Dev", s.RoleID(r))
	s.SetRoleName(r, "Developers")
	require.Equal(t, "Developers", s.RoleName(r))
	s.SetNormalizedRoleName(r, "DEVELOPERS")
	require.Equal(t, "DEVELOPERS", s.NormalizedRoleName(r))

	c := repository.Claim{Type: "perm", Value: "deploy"}
	s.AddRoleClaim(r, c)
	s.AddRoleClaim(r, c)
	require.Len(t, s.RoleClaims(r), 2)
	s.RemoveRoleClaim(r, c)
	require.Empty(t, s.RoleClaims(r))
}

func userIDs(users []*repository.User) []string {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

func TestDeleteRole_CascadesStagedMembership(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	admin := createRole(t, e, "Admin")
	u := createUser(t, e, "alice")

	s := e.Open()
	fresh := &repository.User{UserName: "bob", NormalizedUserName: "BOB", Roles: []string{admin.ID}}
	require.NoError(t, s.CreateUser(ctx, fresh))

	// membresía staged, sin SaveChanges
	loaded, err := s.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NoError(t, s.AddUserToRole(ctx, loaded, "Admin"))

	role, err := s.FindRoleByName(ctx, "Admin")
	require.NoError(t, err)
	require.NoError(t, s.DeleteRole(ctx, role))
	require.False(t, s.IsUserInRole(loaded, "Admin"))

	for _, id := range []string{u.ID, fresh.ID} {
		after, err := e.Open().FindUserByID(ctx, id)
		require.NoError(t, err)
		require.Empty(t, after.Roles)
	}
}
