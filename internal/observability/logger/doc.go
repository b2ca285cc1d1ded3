// Package logger provee un logger Zap singleton con scoping por contexto.
//
// Init se llama una vez desde el binario (cmd/identityctl); los paquetes de
// store y adapters usan From(ctx) para heredar los campos de la operación en
// curso (adapter, collection, user_id) sin crear un nuevo core.
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
//	defer logger.Sync()
//
//	log := logger.From(ctx)
//	log.Debug("user created", logger.UserID(u.ID))
//
// Entornos: "dev" usa consola con colores, "prod" usa JSON.
package logger
