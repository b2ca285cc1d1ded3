// Package memory implementa un document store in-process sobre go-cache.
//
// Los documentos se guardan como BSON (mismo encoding que mongo) sin
// expiración. Los unique constraints se validan en Commit y los filtros se
// evalúan in-process. Pensado para desarrollo y tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	gocache "github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/dropDatabas3/hellojohn-identity/internal/domain/repository"
	store "github.com/dropDatabas3/hellojohn-identity/internal/store"
)

func init() {
	store.RegisterAdapter(&memoryAdapter{})
}

type memoryAdapter struct{}

func (a *memoryAdapter) Name() string { return "memory" }

// Connect crea un store vacío; cada conexión es independiente.
func (a *memoryAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.AdapterConnection, error) {
	return &memoryConnection{backend: NewBackend()}, nil
}

type memoryConnection struct {
	backend *Backend
}

func (c *memoryConnection) Name() string { return "memory" }

func (c *memoryConnection) Ping(ctx context.Context) error { return nil }

func (c *memoryConnection) Close() error {
	c.backend.docs.Flush()
	return nil
}

func (c *memoryConnection) Backend() store.Backend { return c.backend }

// Backend implementa store.Backend en memoria.
type Backend struct {
	mu   sync.RWMutex
	docs *gocache.Cache // key: collection|id → []byte (bson)
}

var _ store.Backend = (*Backend)(nil)

// NewBackend crea un backend vacío.
func NewBackend() *Backend {
	return &Backend{docs: gocache.New(gocache.NoExpiration, 0)}
}

func (b *Backend) Name() string { return "memory" }

func docKey(collection, id string) string {
	return collection + "|" + id
}

func (b *Backend) Get(ctx context.Context, collection, id string) (bson.Raw, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.docs.Get(docKey(collection, id))
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(v.([]byte)), nil
}

func (b *Backend) GetByUnique(ctx context.Context, collection, field, value string) (bson.Raw, error) {
	if value == "" {
		return nil, repository.ErrNotFound
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, raw := range b.collection(collection, nil) {
		if (store.Eq{Field: field, Value: value}).Match(raw) {
			return clone(raw), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (b *Backend) Find(ctx context.Context, collection string, filter store.Filter) ([]bson.Raw, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	docs := b.collection(collection, nil)
	ids := make([]string, 0, len(docs))
	for id, raw := range docs {
		if filter.Match(raw) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	out := make([]bson.Raw, 0, len(ids))
	for _, id := range ids {
		out = append(out, clone(docs[id]))
	}
	return out, nil
}

// Commit valida todas las operaciones contra una vista (cache + overlay) y
// sólo entonces las aplica: el batch es atómico en este backend.
func (b *Backend) Commit(ctx context.Context, ops []store.Op) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	overlay := make(map[string][]byte) // nil => eliminado
	for _, op := range ops {
		key := docKey(op.Collection, op.ID)
		_, exists := b.lookup(key, overlay)
		switch op.Kind {
		case store.OpInsert:
			if exists {
				return conflict(op, "_id")
			}
		case store.OpReplace:
			if !exists {
				return repository.ErrNotFound
			}
		case store.OpDelete:
			overlay[key] = nil
			continue
		}
		if field, ok := b.violatesUnique(op, overlay); ok {
			return conflict(op, field)
		}
		overlay[key] = op.Doc
	}

	for key, raw := range overlay {
		if raw == nil {
			b.docs.Delete(key)
			continue
		}
		b.docs.Set(key, []byte(clone(raw)), gocache.NoExpiration)
	}
	return nil
}

func (b *Backend) lookup(key string, overlay map[string][]byte) ([]byte, bool) {
	if raw, ok := overlay[key]; ok {
		return raw, raw != nil
	}
	v, ok := b.docs.Get(key)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

// collection retorna los documentos de la colección (id → raw) aplicando overlay.
func (b *Backend) collection(collection string, overlay map[string][]byte) map[string]bson.Raw {
	prefix := collection + "|"
	out := make(map[string]bson.Raw)
	for key, item := range b.docs.Items() {
		if strings.HasPrefix(key, prefix) {
			out[strings.TrimPrefix(key, prefix)] = item.Object.([]byte)
		}
	}
	for key, raw := range overlay {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		id := strings.TrimPrefix(key, prefix)
		if raw == nil {
			delete(out, id)
			continue
		}
		out[id] = raw
	}
	return out
}

func (b *Backend) violatesUnique(op store.Op, overlay map[string][]byte) (string, bool) {
	var docs map[string]bson.Raw
	for field, value := range op.Unique {
		if value == "" {
			continue
		}
		if docs == nil {
			docs = b.collection(op.Collection, overlay)
		}
		for id, raw := range docs {
			if id != op.ID && (store.Eq{Field: field, Value: value}).Match(raw) {
				return field, true
			}
		}
	}
	return "", false
}

func conflict(op store.Op, field string) error {
	return &conflictError{collection: op.Collection, id: op.ID, field: field}
}

type conflictError struct {
	collection, id, field string
}

func (e *conflictError) Error() string {
	return "memory: " + e.collection + " " + e.id + ": duplicate " + e.field
}

func (e *conflictError) Unwrap() error { return repository.ErrConflict }

func clone(b []byte) bson.Raw {
	return append(bson.Raw(nil), b...)
}
