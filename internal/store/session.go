package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/dropDatabas3/hellojohn-identity/internal/domain/repository"
	"github.com/dropDatabas3/hellojohn-identity/internal/metrics"
	"github.com/dropDatabas3/hellojohn-identity/internal/observability/logger"
)

// Session es una unidad de trabajo sobre el document store.
//
// Las cargas retornan instancias trackeadas (identity map: dos Load del mismo
// ID retornan el mismo puntero). Las mutaciones sobre esas instancias, los
// Store y los Delete quedan staged hasta SaveChanges.
//
// Una Session no es thread-safe: debe confinarse a un único flujo de control
// (ej: un request).
type Session interface {
	// Load carga por ID. Retorna repository.ErrNotFound si no existe.
	Load(ctx context.Context, id string, newDoc func() Document) (Document, error)

	// LoadByUnique carga por unique constraint. Retorna repository.ErrNotFound
	// si no existe.
	LoadByUnique(ctx context.Context, field, value string, newDoc func() Document) (Document, error)

	// Query retorna los documentos persistidos que cumplen el filtro.
	// Los cambios staged no commiteados no afectan el filtrado.
	Query(ctx context.Context, filter Filter, newDoc func() Document) ([]Document, error)

	// Store trackea un documento nuevo (asigna ID si está vacío).
	Store(ctx context.Context, doc Document) error

	// Delete marca el documento para eliminación.
	Delete(doc Document)

	// SaveChanges commitea todas las mutaciones staged.
	SaveChanges(ctx context.Context) error

	// HasChanges indica si hay mutaciones pendientes.
	HasChanges() bool

	// Tracked retorna las instancias trackeadas (no eliminadas) de la
	// colección de newDoc, incluidas las nuevas aún no commiteadas.
	Tracked(newDoc func() Document) []Document
}

// SessionOption configura una sesión.
type SessionOption func(*session)

// WithIDGenerator reemplaza la generación de IDs ("<Collection>/<uuid>").
func WithIDGenerator(gen func(collection string) string) SessionOption {
	return func(s *session) { s.newID = gen }
}

type entryState int

const (
	stateLoaded entryState = iota
	stateNew
	stateDeleted
)

type entry struct {
	doc      Document
	snapshot []byte
	state    entryState
}

type session struct {
	backend Backend
	entries map[string]*entry
	order   []string
	newID   func(collection string) string
}

// NewSession abre una unidad de trabajo sobre el backend.
func NewSession(b Backend, opts ...SessionOption) Session {
	s := &session{
		backend: b,
		entries: make(map[string]*entry),
		newID: func(collection string) string {
			return collection + "/" + uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func entryKey(collection, id string) string {
	return collection + "|" + id
}

func (s *session) Load(ctx context.Context, id string, newDoc func() Document) (Document, error) {
	doc := newDoc()
	key := entryKey(doc.Collection(), id)
	if e, ok := s.entries[key]; ok {
		if e.state == stateDeleted {
			return nil, repository.ErrNotFound
		}
		return e.doc, nil
	}

	var raw bson.Raw
	err := s.observe(ctx, "get", func() error {
		var err error
		raw, err = s.backend.Get(ctx, doc.Collection(), id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.track(raw, doc)
}

func (s *session) LoadByUnique(ctx context.Context, field, value string, newDoc func() Document) (Document, error) {
	doc := newDoc()
	var raw bson.Raw
	err := s.observe(ctx, "get_by_unique", func() error {
		var err error
		raw, err = s.backend.GetByUnique(ctx, doc.Collection(), field, value)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.track(raw, doc)
}

func (s *session) Query(ctx context.Context, filter Filter, newDoc func() Document) ([]Document, error) {
	collection := newDoc().Collection()
	var raws []bson.Raw
	err := s.observe(ctx, "find", func() error {
		var err error
		raws, err = s.backend.Find(ctx, collection, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]Document, 0, len(raws))
	for _, raw := range raws {
		doc, err := s.track(raw, newDoc())
		if errors.Is(err, repository.ErrNotFound) {
			continue // eliminado en esta sesión
		}
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// track decodifica raw en doc, o retorna la instancia ya trackeada con ese ID.
func (s *session) track(raw bson.Raw, doc Document) (Document, error) {
	idVal, err := raw.LookupErr("_id")
	if err != nil {
		return nil, fmt.Errorf("store: document without _id in %s", doc.Collection())
	}
	id, ok := idVal.StringValueOK()
	if !ok {
		return nil, fmt.Errorf("store: non-string _id in %s", doc.Collection())
	}

	key := entryKey(doc.Collection(), id)
	if e, ok := s.entries[key]; ok {
		if e.state == stateDeleted {
			return nil, repository.ErrNotFound
		}
		return e.doc, nil
	}

	if err := bson.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", id, err)
	}
	snap, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("store: snapshot %s: %w", id, err)
	}
	s.add(key, &entry{doc: doc, snapshot: snap, state: stateLoaded})
	return doc, nil
}

func (s *session) add(key string, e *entry) {
	if _, ok := s.entries[key]; !ok {
		s.order = append(s.order, key)
	}
	s.entries[key] = e
}

func (s *session) Store(ctx context.Context, doc Document) error {
	if doc.DocumentID() == "" {
		doc.SetDocumentID(s.newID(doc.Collection()))
	}
	key := entryKey(doc.Collection(), doc.DocumentID())
	if e, ok := s.entries[key]; ok {
		if e.doc != doc {
			return fmt.Errorf("store: another instance of %s is already tracked: %w", doc.DocumentID(), repository.ErrConflict)
		}
		if e.state == stateDeleted {
			// Store después de Delete sobre la misma instancia: revive como replace.
			e.state = stateLoaded
			if e.snapshot == nil {
				e.state = stateNew
			}
		}
		return nil
	}
	s.add(key, &entry{doc: doc, state: stateNew})
	logger.From(ctx).Debug("document staged",
		logger.Collection(doc.Collection()), logger.DocumentID(doc.DocumentID()))
	return nil
}

func (s *session) Delete(doc Document) {
	key := entryKey(doc.Collection(), doc.DocumentID())
	e, ok := s.entries[key]
	if !ok {
		s.add(key, &entry{doc: doc, state: stateDeleted})
		return
	}
	if e.state == stateNew {
		// nunca persistido: basta con dejar de trackearlo
		delete(s.entries, key)
		s.order = removeKey(s.order, key)
		return
	}
	e.state = stateDeleted
}

func removeKey(keys []string, key string) []string {
	out := keys[:0]
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}

// pending construye las operaciones a commitear y los snapshots nuevos.
func (s *session) pending() ([]Op, map[string][]byte, error) {
	var ops []Op
	snaps := make(map[string][]byte)
	for _, key := range s.order {
		e := s.entries[key]
		doc := e.doc
		switch e.state {
		case stateDeleted:
			ops = append(ops, Op{
				Kind:       OpDelete,
				Collection: doc.Collection(),
				ID:         doc.DocumentID(),
				Unique:     doc.UniqueFields(),
			})
		case stateNew, stateLoaded:
			raw, err := bson.Marshal(doc)
			if err != nil {
				return nil, nil, fmt.Errorf("store: encode %s: %w", doc.DocumentID(), err)
			}
			if e.state == stateLoaded && bytes.Equal(raw, e.snapshot) {
				continue
			}
			kind := OpReplace
			if e.state == stateNew {
				kind = OpInsert
			}
			ops = append(ops, Op{
				Kind:       kind,
				Collection: doc.Collection(),
				ID:         doc.DocumentID(),
				Doc:        raw,
				Unique:     doc.UniqueFields(),
			})
			snaps[key] = raw
		}
	}
	return ops, snaps, nil
}

func (s *session) Tracked(newDoc func() Document) []Document {
	collection := newDoc().Collection()
	var out []Document
	for _, key := range s.order {
		e := s.entries[key]
		if e.state == stateDeleted || e.doc.Collection() != collection {
			continue
		}
		out = append(out, e.doc)
	}
	return out
}

func (s *session) HasChanges() bool {
	ops, _, err := s.pending()
	return err != nil || len(ops) > 0
}

func (s *session) SaveChanges(ctx context.Context) error {
	ops, snaps, err := s.pending()
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		return nil
	}

	metrics.StoreCommitOps.Observe(float64(len(ops)))
	err = s.observe(ctx, "commit", func() error {
		return s.backend.Commit(ctx, ops)
	})
	if err != nil {
		// Sin rollback: la sesión queda con los cambios staged.
		logger.From(ctx).Warn("commit failed",
			logger.Adapter(s.backend.Name()), logger.Count(len(ops)), logger.Err(err))
		return err
	}

	for key, snap := range snaps {
		e := s.entries[key]
		e.snapshot = snap
		e.state = stateLoaded
	}
	kept := s.order[:0]
	for _, key := range s.order {
		if s.entries[key].state == stateDeleted {
			delete(s.entries, key)
			continue
		}
		kept = append(kept, key)
	}
	s.order = kept

	logger.From(ctx).Debug("changes saved",
		logger.Adapter(s.backend.Name()), logger.Count(len(ops)))
	return nil
}

func (s *session) observe(ctx context.Context, op string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	err := fn()
	metrics.ObserveOp(s.backend.Name(), op, metrics.Result(err, classify), time.Since(start))
	return err
}

func classify(err error) string {
	switch {
	case repository.IsNotFound(err):
		return "not_found"
	case repository.IsConflict(err):
		return "conflict"
	}
	return ""
}
