package repository

import "strings"

// RolesCollection es la colección de documentos Role.
const RolesCollection = "Roles"

// RoleIDPrefix es el prefijo fijo del ID de un rol: ID = RoleIDPrefix + name.
const RoleIDPrefix = RolesCollection + "/"

// Role representa un rol. El ID se deriva del nombre, por lo que buscar un
// rol por nombre es un fetch directo por key.
type Role struct {
	ID             string  `bson:"_id"`
	Name           string  `bson:"name"`
	NormalizedName string  `bson:"normalizedName"`
	Claims         []Claim `bson:"claims"`
}

// NewRole crea un rol con el ID convencional.
func NewRole(name string) *Role {
	return &Role{ID: RoleID(name), Name: name}
}

// RoleID retorna el ID convencional del rol con ese nombre.
func RoleID(name string) string {
	return RoleIDPrefix + name
}

// RoleNameFromID quita el prefijo fijo de un ID de rol.
func RoleNameFromID(id string) string {
	return strings.TrimPrefix(id, RoleIDPrefix)
}

func (r *Role) Collection() string      { return RolesCollection }
func (r *Role) DocumentID() string      { return r.ID }
func (r *Role) SetDocumentID(id string) { r.ID = id }

// UniqueFields: el ID ya es la clave única del rol.
func (r *Role) UniqueFields() map[string]string { return nil }
