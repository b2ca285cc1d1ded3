package logger

import (
	"time"

	"go.uber.org/zap"
)

// =================================================================================
// CAMPOS ESTÁNDAR - IDENTIDAD
// =================================================================================

// UserID crea un campo para el ID del usuario.
func UserID(v string) zap.Field {
	return zap.String("user_id", v)
}

// RoleName crea un campo para el nombre del rol.
func RoleName(v string) zap.Field {
	return zap.String("role", v)
}

// LoginProvider crea un campo para el provider de un login o token.
func LoginProvider(v string) zap.Field {
	return zap.String("login_provider", v)
}

// =================================================================================
// CAMPOS ESTÁNDAR - STORE
// =================================================================================

// Adapter crea un campo para el nombre del adapter ("mongo", "memory", "redis").
func Adapter(v string) zap.Field {
	return zap.String("adapter", v)
}

// Collection crea un campo para la colección del documento.
func Collection(v string) zap.Field {
	return zap.String("collection", v)
}

// DocumentID crea un campo para el ID del documento.
func DocumentID(v string) zap.Field {
	return zap.String("doc_id", v)
}

// Op crea un campo para la operación actual.
func Op(v string) zap.Field {
	return zap.String("op", v)
}

// Count crea un campo para un conteo.
func Count(v int) zap.Field {
	return zap.Int("count", v)
}

// Duration crea un campo para una duración.
func Duration(v time.Duration) zap.Field {
	return zap.Duration("duration", v)
}

// Component crea un campo para el componente/módulo.
func Component(v string) zap.Field {
	return zap.String("component", v)
}

// Err crea un campo para un error.
func Err(err error) zap.Field {
	return zap.Error(err)
}

// String crea un campo string genérico.
func String(key, v string) zap.Field {
	return zap.String(key, v)
}
