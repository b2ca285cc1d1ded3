package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// Document es una entidad persistible como documento.
type Document interface {
	// Collection nombre de la colección ("Users", "Roles").
	Collection() string

	DocumentID() string
	SetDocumentID(id string)

	// UniqueFields campos con unique constraint (nombre persistido → valor).
	// Los valores vacíos no participan del constraint.
	UniqueFields() map[string]string
}

// OpKind tipo de operación en un commit.
type OpKind int

const (
	OpInsert OpKind = iota + 1
	OpReplace
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpReplace:
		return "replace"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Op es una mutación staged que el backend aplica en Commit.
type Op struct {
	Kind       OpKind
	Collection string
	ID         string
	Doc        bson.Raw          // nil para OpDelete
	Unique     map[string]string // constraints del documento; en OpDelete sólo importan los nombres
}

// Backend es el contrato que implementa cada adapter: acceso crudo a
// documentos BSON. Identity map, dirty tracking e IDs viven en la sesión.
type Backend interface {
	Name() string

	// Get carga un documento por ID. Retorna repository.ErrNotFound si no existe.
	Get(ctx context.Context, collection, id string) (bson.Raw, error)

	// GetByUnique carga por unique constraint. Retorna repository.ErrNotFound
	// si no existe; cualquier otro error es una falla de infraestructura.
	GetByUnique(ctx context.Context, collection, field, value string) (bson.Raw, error)

	// Find retorna los documentos de la colección que cumplen el filtro.
	Find(ctx context.Context, collection string, filter Filter) ([]bson.Raw, error)

	// Commit aplica las operaciones en orden. Un insert con ID existente o una
	// violación de unique constraint retorna repository.ErrConflict.
	// No hay rollback garantizado ante falla parcial salvo que el backend
	// use transacciones.
	Commit(ctx context.Context, ops []Op) error
}
