// Package redis implementa un document store sobre Redis.
//
// Layout de keys (prefix = AdapterConfig.Database, default "identity"):
//
//	<prefix>:doc:<collection>:<id>                   → documento BSON
//	<prefix>:uniq:<collection>:<field>:<value>       → id del dueño del constraint
//
// Los unique constraints se toman con SETNX antes de escribir el documento.
// Find recorre la colección con SCAN y evalúa el filtro in-process.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/dropDatabas3/hellojohn-identity/internal/domain/repository"
	"github.com/dropDatabas3/hellojohn-identity/internal/observability/logger"
	store "github.com/dropDatabas3/hellojohn-identity/internal/store"
)

// DefaultPrefix se usa si AdapterConfig.Database está vacío.
const DefaultPrefix = "identity"

const scanCount = 200

func init() {
	store.RegisterAdapter(&redisAdapter{})
}

type redisAdapter struct{}

func (a *redisAdapter) Name() string { return "redis" }

// Connect acepta un DSN redis://... o host:port.
func (a *redisAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.AdapterConnection, error) {
	if cfg.DSN == "" {
		return nil, errors.New("redis: DSN is required")
	}

	var opts *redis.Options
	if strings.HasPrefix(cfg.DSN, "redis://") || strings.HasPrefix(cfg.DSN, "rediss://") {
		parsed, err := redis.ParseURL(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("redis: parse url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: cfg.DSN, Password: cfg.Password, DB: cfg.DB}
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping failed: %w", err)
	}

	logger.From(ctx).Info("redis adapter connected",
		logger.Adapter("redis"), logger.String("addr", opts.Addr))
	return &redisConnection{backend: NewBackend(rdb, cfg.Database)}, nil
}

type redisConnection struct {
	backend *Backend
}

func (c *redisConnection) Name() string { return "redis" }

func (c *redisConnection) Ping(ctx context.Context) error {
	return c.backend.rdb.Ping(ctx).Err()
}

func (c *redisConnection) Close() error { return c.backend.rdb.Close() }

func (c *redisConnection) Backend() store.Backend { return c.backend }

// Backend implementa store.Backend sobre un cliente Redis.
type Backend struct {
	rdb    redis.UniversalClient
	prefix string
}

var _ store.Backend = (*Backend)(nil)

// NewBackend crea un backend sobre un cliente existente.
func NewBackend(rdb redis.UniversalClient, prefix string) *Backend {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Backend{rdb: rdb, prefix: prefix}
}

func (b *Backend) Name() string { return "redis" }

func (b *Backend) docKey(collection, id string) string {
	return b.prefix + ":doc:" + collection + ":" + id
}

func (b *Backend) uniqKey(collection, field, value string) string {
	return b.prefix + ":uniq:" + collection + ":" + field + ":" + value
}

func (b *Backend) Get(ctx context.Context, collection, id string) (bson.Raw, error) {
	raw, err := b.rdb.Get(ctx, b.docKey(collection, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get %s: %w", id, err)
	}
	return raw, nil
}

func (b *Backend) GetByUnique(ctx context.Context, collection, field, value string) (bson.Raw, error) {
	if value == "" {
		return nil, repository.ErrNotFound
	}
	id, err := b.rdb.Get(ctx, b.uniqKey(collection, field, value)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get unique %s: %w", field, err)
	}
	return b.Get(ctx, collection, id)
}

func (b *Backend) Find(ctx context.Context, collection string, filter store.Filter) ([]bson.Raw, error) {
	match := b.docKey(collection, "*")
	var keys []string
	iter := b.rdb.Scan(ctx, 0, match, scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis: scan %s: %w", collection, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}
	sort.Strings(keys)

	vals, err := b.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: mget %s: %w", collection, err)
	}
	var out []bson.Raw
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue // eliminado entre SCAN y MGET
		}
		raw := bson.Raw(s)
		if filter.Match(raw) {
			out = append(out, raw)
		}
	}
	return out, nil
}

// Commit aplica las operaciones en orden. No hay rollback entre operaciones:
// sólo los constraints tomados por la operación que falla se liberan.
func (b *Backend) Commit(ctx context.Context, ops []store.Op) error {
	for _, op := range ops {
		var err error
		switch op.Kind {
		case store.OpInsert:
			err = b.insert(ctx, op)
		case store.OpReplace:
			err = b.replace(ctx, op)
		case store.OpDelete:
			err = b.delete(ctx, op)
		default:
			err = fmt.Errorf("redis: unknown op kind %d", op.Kind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *Backend) insert(ctx context.Context, op store.Op) error {
	acquired, err := b.acquire(ctx, op, nil)
	if err != nil {
		return err
	}
	ok, err := b.rdb.SetNX(ctx, b.docKey(op.Collection, op.ID), []byte(op.Doc), 0).Result()
	if err != nil || !ok {
		b.release(ctx, op.Collection, op.ID, acquired)
		if err != nil {
			return fmt.Errorf("redis: insert %s: %w", op.ID, err)
		}
		return fmt.Errorf("redis: insert %s: %w", op.ID, repository.ErrConflict)
	}
	return nil
}

func (b *Backend) replace(ctx context.Context, op store.Op) error {
	old, err := b.Get(ctx, op.Collection, op.ID)
	if err != nil {
		return err
	}
	oldUnique := uniqueValues(old, op.Unique)

	acquired, err := b.acquire(ctx, op, oldUnique)
	if err != nil {
		return err
	}
	if err := b.rdb.Set(ctx, b.docKey(op.Collection, op.ID), []byte(op.Doc), 0).Err(); err != nil {
		b.release(ctx, op.Collection, op.ID, acquired)
		return fmt.Errorf("redis: replace %s: %w", op.ID, err)
	}

	stale := make(map[string]string)
	for field, value := range oldUnique {
		if value != "" && op.Unique[field] != value {
			stale[field] = value
		}
	}
	b.release(ctx, op.Collection, op.ID, stale)
	return nil
}

func (b *Backend) delete(ctx context.Context, op store.Op) error {
	old, err := b.Get(ctx, op.Collection, op.ID)
	if repository.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := b.rdb.Del(ctx, b.docKey(op.Collection, op.ID)).Err(); err != nil {
		return fmt.Errorf("redis: delete %s: %w", op.ID, err)
	}
	b.release(ctx, op.Collection, op.ID, uniqueValues(old, op.Unique))
	return nil
}

// acquire toma los constraints nuevos de op (los ya tomados en held se saltean).
// Retorna los tomados en esta llamada.
func (b *Backend) acquire(ctx context.Context, op store.Op, held map[string]string) (map[string]string, error) {
	acquired := make(map[string]string)
	for field, value := range op.Unique {
		if value == "" || held[field] == value {
			continue
		}
		key := b.uniqKey(op.Collection, field, value)
		ok, err := b.rdb.SetNX(ctx, key, op.ID, 0).Result()
		if err != nil {
			b.release(ctx, op.Collection, op.ID, acquired)
			return nil, fmt.Errorf("redis: unique %s: %w", field, err)
		}
		if !ok {
			owner, _ := b.rdb.Get(ctx, key).Result()
			if owner != op.ID {
				b.release(ctx, op.Collection, op.ID, acquired)
				return nil, fmt.Errorf("redis: %s %s: duplicate %s: %w", op.Kind, op.ID, field, repository.ErrConflict)
			}
			continue
		}
		acquired[field] = value
	}
	return acquired, nil
}

// release borra los constraints cuyo dueño es id.
func (b *Backend) release(ctx context.Context, collection, id string, values map[string]string) {
	for field, value := range values {
		if value == "" {
			continue
		}
		key := b.uniqKey(collection, field, value)
		if owner, err := b.rdb.Get(ctx, key).Result(); err == nil && owner == id {
			if err := b.rdb.Del(ctx, key).Err(); err != nil {
				logger.From(ctx).Warn("release unique constraint failed",
					logger.Adapter("redis"), logger.DocumentID(id), logger.Err(err))
			}
		}
	}
}

// uniqueValues lee del documento persistido los campos nombrados en fields.
func uniqueValues(raw bson.Raw, fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for field := range fields {
		if v, err := raw.LookupErr(field); err == nil {
			if s, ok := v.StringValueOK(); ok {
				out[field] = s
			}
		}
	}
	return out
}
