// Package identity implementa los stores del framework de identidad
// (usuarios, roles, claims, logins, tokens y metadata de lockout) sobre una
// store.Session.
//
// Un Store envuelve una única sesión, acotada a una unidad de trabajo del
// caller (ej: un request). Los setters sólo mutan la entidad trackeada;
// SaveChanges persiste. CreateUser/UpdateUser/DeleteUser y sus equivalentes
// de rol commitean por sí mismos.
//
// Un Store no es seguro para uso concurrente.
package identity
