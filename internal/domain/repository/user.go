package repository

import "time"

// UsersCollection es la colección de documentos User.
const UsersCollection = "Users"

// Nombres de campo persistidos usados en lookups y queries.
const (
	FieldNormalizedUserName = "normalizedUserName"
	FieldNormalizedEmail    = "normalizedEmail"
	FieldRoles              = "roles"
	FieldClaims             = "claims"
	FieldLogins             = "logins"
)

// User representa un usuario del framework de identidad.
// Las colecciones (claims, logins, tokens, roles) viven embebidas en el documento.
type User struct {
	ID                   string     `bson:"_id"`
	UserName             string     `bson:"userName"`
	NormalizedUserName   string     `bson:"normalizedUserName"`
	Email                string     `bson:"email"`
	NormalizedEmail      string     `bson:"normalizedEmail"`
	EmailConfirmed       bool       `bson:"emailConfirmed"`
	PhoneNumber          string     `bson:"phoneNumber"`
	PhoneNumberConfirmed bool       `bson:"phoneNumberConfirmed"`
	PasswordHash         *string    `bson:"passwordHash"`
	SecurityStamp        string     `bson:"securityStamp"`
	TwoFactorEnabled     bool       `bson:"twoFactorEnabled"`
	LockoutEnd           *time.Time `bson:"lockoutEnd"`
	LockoutEnabled       bool       `bson:"lockoutEnabled"`
	AccessFailedCount    int        `bson:"accessFailedCount"`

	Claims []Claim  `bson:"claims"`
	Logins []Login  `bson:"logins"`
	Tokens []Token  `bson:"tokens"`
	Roles  []string `bson:"roles"` // role reference set: IDs "Roles/<name>"
}

// Login es un login externo (provider + key) asociado al usuario.
type Login struct {
	LoginProvider       string `bson:"loginProvider"`
	ProviderKey         string `bson:"providerKey"`
	ProviderDisplayName string `bson:"providerDisplayName"`
}

// Token es un valor nombrado por (provider, name) asociado al usuario.
type Token struct {
	LoginProvider string `bson:"loginProvider"`
	Name          string `bson:"name"`
	Value         string `bson:"value"`
}

func (u *User) Collection() string      { return UsersCollection }
func (u *User) DocumentID() string      { return u.ID }
func (u *User) SetDocumentID(id string) { u.ID = id }

// UniqueFields retorna los campos con unique constraint. Los valores vacíos
// no participan del constraint (el backend los ignora).
func (u *User) UniqueFields() map[string]string {
	return map[string]string{
		FieldNormalizedUserName: u.NormalizedUserName,
		FieldNormalizedEmail:    u.NormalizedEmail,
	}
}

// CopyFrom sobrescribe todos los campos con los de src (excepto el ID).
// Las colecciones se copian para no compartir backing arrays.
func (u *User) CopyFrom(src *User) {
	id := u.ID
	*u = *src
	u.ID = id
	u.Claims = append([]Claim(nil), src.Claims...)
	u.Logins = append([]Login(nil), src.Logins...)
	u.Tokens = append([]Token(nil), src.Tokens...)
	u.Roles = append([]string(nil), src.Roles...)
	if src.PasswordHash != nil {
		h := *src.PasswordHash
		u.PasswordHash = &h
	}
	if src.LockoutEnd != nil {
		t := *src.LockoutEnd
		u.LockoutEnd = &t
	}
}
