package identity

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/hellojohn-identity/internal/domain/repository"
	"github.com/dropDatabas3/hellojohn-identity/internal/observability/logger"
	"github.com/dropDatabas3/hellojohn-identity/internal/store"
)

// ─── Membresía ───

// AddUserToRole agrega el rol al role reference set del usuario.
// Con un rol inexistente no hace nada; una membresía existente no se duplica.
func (s *Store) AddUserToRole(ctx context.Context, u *repository.User, roleName string) error {
	role, err := s.requireRole(ctx, roleName)
	if repository.IsRoleNotFound(err) {
		s.log.Debug("add to unknown role ignored", logger.UserID(u.ID), logger.RoleName(roleName))
		return nil
	}
	if err != nil {
		return err
	}
	if containsString(u.Roles, role.ID) {
		return nil
	}
	u.Roles = append(u.Roles, role.ID)
	s.log.Debug("user added to role", logger.UserID(u.ID), logger.RoleName(roleName))
	return nil
}

// RemoveUserFromRole quita el rol del role reference set del usuario.
// Con un rol inexistente retorna ErrRoleNotFound y el set queda sin cambios.
func (s *Store) RemoveUserFromRole(ctx context.Context, u *repository.User, roleName string) error {
	role, err := s.requireRole(ctx, roleName)
	if err != nil {
		return err
	}
	u.Roles = removeString(u.Roles, role.ID)
	s.log.Debug("user removed from role", logger.UserID(u.ID), logger.RoleName(roleName))
	return nil
}

// UserRoles retorna los nombres de rol del usuario (sin el prefijo del ID).
func (s *Store) UserRoles(u *repository.User) []string {
	names := make([]string, 0, len(u.Roles))
	for _, id := range u.Roles {
		names = append(names, repository.RoleNameFromID(id))
	}
	return names
}

func (s *Store) IsUserInRole(u *repository.User, roleName string) bool {
	return containsString(u.Roles, repository.RoleID(roleName))
}

// UsersInRole retorna los usuarios cuyo role reference set contiene el rol.
func (s *Store) UsersInRole(ctx context.Context, roleName string) ([]*repository.User, error) {
	if roleName == "" {
		return nil, repository.ErrInvalidArgument
	}
	return s.queryUsers(ctx, store.ArrayContains{Field: repository.FieldRoles, Value: repository.RoleID(roleName)})
}

func (s *Store) requireRole(ctx context.Context, roleName string) (*repository.Role, error) {
	if roleName == "" {
		return nil, repository.ErrInvalidArgument
	}
	role, err := s.loadRole(ctx, repository.RoleID(roleName))
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("%w: %s", repository.ErrRoleNotFound, roleName)
	}
	return role, nil
}

// ─── Role store ───

// CreateRole persiste un rol nuevo. Sin ID se usa el convencional
// ("Roles/" + name); un rol con el mismo ID es un conflicto.
func (s *Store) CreateRole(ctx context.Context, r *repository.Role) error {
	if r == nil || (r.ID == "" && r.Name == "") {
		return repository.ErrInvalidArgument
	}
	if r.ID == "" {
		r.ID = repository.RoleID(r.Name)
	}
	if err := s.session.Store(ctx, r); err != nil {
		return &repository.PersistenceError{Op: "create role", Err: err}
	}
	if err := s.commit(ctx, "create role"); err != nil {
		s.session.Delete(r)
		return err
	}
	s.log.Debug("role created", logger.RoleName(r.Name))
	return nil
}

// UpdateRole hace upsert del rol y commitea.
func (s *Store) UpdateRole(ctx context.Context, r *repository.Role) error {
	if r == nil {
		return repository.ErrInvalidArgument
	}
	if r.ID == "" {
		r.ID = repository.RoleID(r.Name)
	}
	stored, err := s.loadRole(ctx, r.ID)
	if err != nil {
		return err
	}
	switch {
	case stored == nil:
		if err := s.session.Store(ctx, r); err != nil {
			return &repository.PersistenceError{Op: "update role", Err: err}
		}
	case stored != r:
		stored.Name = r.Name
		stored.NormalizedName = r.NormalizedName
		stored.Claims = append([]repository.Claim(nil), r.Claims...)
	}
	if err := s.commit(ctx, "update role"); err != nil {
		return err
	}
	s.log.Debug("role updated", logger.RoleName(r.Name))
	return nil
}

// DeleteRole elimina el rol y lo quita del role reference set de todos los
// usuarios que lo referencian, en un único commit.
func (s *Store) DeleteRole(ctx context.Context, r *repository.Role) error {
	if r == nil {
		return repository.ErrUnknownEntity
	}
	stored, err := s.loadRole(ctx, r.ID)
	if err != nil {
		return err
	}
	if stored == nil {
		return repository.ErrUnknownEntity
	}

	// La query trackea los miembros persistidos; el barrido sobre la sesión
	// cubre también membresías staged sin commitear.
	if _, err := s.queryUsers(ctx, store.ArrayContains{Field: repository.FieldRoles, Value: stored.ID}); err != nil {
		return err
	}
	members := 0
	for _, doc := range s.session.Tracked(newUserDoc) {
		u := doc.(*repository.User)
		if containsString(u.Roles, stored.ID) {
			u.Roles = removeString(u.Roles, stored.ID)
			members++
		}
	}
	s.session.Delete(stored)

	if err := s.commit(ctx, "delete role"); err != nil {
		return err
	}
	s.log.Debug("role deleted", logger.RoleName(stored.Name), logger.Count(members))
	return nil
}

func (s *Store) FindRoleByID(ctx context.Context, id string) (*repository.Role, error) {
	return s.loadRole(ctx, id)
}

// FindRoleByName es un fetch directo por key: el ID se deriva del nombre.
func (s *Store) FindRoleByName(ctx context.Context, name string) (*repository.Role, error) {
	if name == "" {
		return nil, nil
	}
	return s.loadRole(ctx, repository.RoleID(name))
}

// Roles lista todos los roles persistidos.
func (s *Store) Roles(ctx context.Context) ([]*repository.Role, error) {
	docs, err := s.session.Query(ctx, store.All{}, newRoleDoc)
	if err != nil {
		return nil, fmt.Errorf("identity: query roles: %w", err)
	}
	roles := make([]*repository.Role, 0, len(docs))
	for _, d := range docs {
		roles = append(roles, d.(*repository.Role))
	}
	return roles, nil
}

func (s *Store) RoleID(r *repository.Role) string { return r.ID }

func (s *Store) RoleName(r *repository.Role) string { return r.Name }

func (s *Store) SetRoleName(r *repository.Role, name string) { r.Name = name }

func (s *Store) NormalizedRoleName(r *repository.Role) string { return r.NormalizedName }

func (s *Store) SetNormalizedRoleName(r *repository.Role, name string) { r.NormalizedName = name }

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func removeString(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	if len(out) == len(list) {
		return list
	}
	return out
}
