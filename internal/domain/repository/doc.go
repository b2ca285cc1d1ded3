// Package repository define el modelo de identidad (User, Role) y los
// contratos que el framework de identidad espera del almacenamiento.
//
// Estas interfaces son independientes del document store subyacente
// (MongoDB, Redis, memoria). La implementación vive en internal/identity,
// que traduce cada operación a cargas/escrituras sobre una store.Session.
//
// Arquitectura:
//
//	┌─────────────────────────────────────────────────────┐
//	│        Framework de identidad (managers)            │
//	└─────────────────────────────────────────────────────┘
//	                        │
//	                        ▼
//	┌─────────────────────────────────────────────────────┐
//	│        domain/repository (interfaces)               │
//	│  UserStore, UserRoleStore, RoleStore, ...           │
//	└─────────────────────────────────────────────────────┘
//	                        │
//	                        ▼
//	┌─────────────────────────────────────────────────────┐
//	│   identity.Store  ──►  store.Session (unit of work) │
//	└─────────────────────────────────────────────────────┘
//	                        │
//	         ┌──────────────┼──────────────┐
//	         ▼              ▼              ▼
//	┌─────────────┐  ┌─────────────┐  ┌─────────────┐
//	│  adapters/  │  │  adapters/  │  │  adapters/  │
//	│    mongo    │  │   memory    │  │    redis    │
//	└─────────────┘  └─────────────┘  └─────────────┘
//
// Convenciones:
//   - Context siempre es el primer parámetro en operaciones con I/O
//   - Los setters sólo mutan la entidad en memoria; persiste SaveChanges
//   - Errores de dominio están en errors.go
package repository
