// Package store provee la sesión (unit of work) sobre un document store y el
// registry de adaptadores que la respaldan.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Adapter representa un adaptador de document store.
type Adapter interface {
	// Name retorna el nombre del adapter (ej: "mongo", "memory", "redis").
	Name() string

	// Connect establece conexión con el almacenamiento.
	Connect(ctx context.Context, cfg AdapterConfig) (AdapterConnection, error)
}

// AdapterConnection representa una conexión activa.
// Cada unidad de trabajo abre su propia sesión sobre el Backend compartido.
type AdapterConnection interface {
	// Name retorna el nombre del adapter.
	Name() string

	// Ping verifica la conexión.
	Ping(ctx context.Context) error

	// Close cierra la conexión.
	Close() error

	// Backend retorna el backend de documentos de esta conexión.
	Backend() Backend
}

// AdapterConfig configuración para conectar a un almacenamiento.
type AdapterConfig struct {
	// Name del adapter: "mongo", "memory", "redis"
	Name string

	// DSN connection string (mongodb://..., redis://... o host:port)
	DSN string

	// Database nombre de la base (mongo) o prefijo de keys (redis)
	Database string

	// Password/DB sólo para redis
	Password string
	DB       int

	// Transactions habilita commits multi-documento (mongo, requiere replica set)
	Transactions bool

	// ConnectTimeout timeout para conexión + ping inicial
	ConnectTimeout time.Duration
}

// ─── Registry Global ───

var (
	registryMu sync.RWMutex
	adapters   = make(map[string]Adapter)
)

// RegisterAdapter registra un adapter en el registry global.
// Llamar en init() de cada adapter.
func RegisterAdapter(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := a.Name()
	if _, exists := adapters[name]; exists {
		panic(fmt.Sprintf("adapter: %q already registered", name))
	}
	adapters[name] = a
}

// GetAdapter obtiene un adapter por nombre.
func GetAdapter(name string) (Adapter, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := adapters[name]
	return a, ok
}

// ListAdapters retorna los nombres de los adapters registrados, ordenados.
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(adapters))
	for name := range adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenAdapter abre una conexión usando el adapter especificado en la config.
func OpenAdapter(ctx context.Context, cfg AdapterConfig) (AdapterConnection, error) {
	a, ok := GetAdapter(cfg.Name)
	if !ok {
		return nil, fmt.Errorf("adapter: %q not registered", cfg.Name)
	}
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	return a.Connect(ctx, cfg)
}
