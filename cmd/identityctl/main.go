// identityctl administra usuarios y roles del identity store desde la línea
// de comandos y expone la superficie operativa (/healthz, /metrics).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/hellojohn-identity/internal/config"
	"github.com/dropDatabas3/hellojohn-identity/internal/identity"
	"github.com/dropDatabas3/hellojohn-identity/internal/metrics"
	"github.com/dropDatabas3/hellojohn-identity/internal/observability/logger"
	"github.com/dropDatabas3/hellojohn-identity/internal/store"
	_ "github.com/dropDatabas3/hellojohn-identity/internal/store/adapters/dal"
)

var version = "dev"

const rootLong = `Administración del identity store (usuarios, roles, claims).

El driver default es "memory": cada invocación arranca con un store vacío y
nada persiste entre comandos. Para datos persistentes usar STORAGE_DRIVER=mongo
(MONGO_URI) o STORAGE_DRIVER=redis (REDIS_ADDR), o storage.driver en --config.`

// app es el estado compartido por los subcomandos.
type app struct {
	cfgPath string
	out     string // text | json

	cfg  *config.Config
	conn store.AdapterConnection
}

// open carga config, logger y conexión al store.
func (a *app) open(ctx context.Context) error {
	_ = godotenv.Load(".env")

	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.App.LogLevel,
		ServiceName: "identityctl",
		Version:     version,
	})
	if err := metrics.RegisterStore(nil); err != nil {
		return err
	}

	conn, err := store.OpenAdapter(ctx, cfg.AdapterConfig())
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Storage.Driver, err)
	}
	a.conn = conn
	if cfg.Storage.Driver == "memory" {
		logger.L().Warn("memory driver: changes are discarded when the command exits",
			logger.Adapter("memory"))
	}
	return nil
}

func (a *app) close() {
	if a.conn != nil {
		_ = a.conn.Close()
	}
	_ = logger.Sync()
}

// identity abre una unidad de trabajo nueva sobre la conexión.
func (a *app) identity() *identity.Store {
	return identity.New(store.NewSession(a.conn.Backend()))
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// normalize es la normalización de nombres y emails usada por el CLI.
func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "identityctl",
		Short:         "Administración del identity store (usuarios, roles, claims)",
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.out != "text" && a.out != "json" {
				return fmt.Errorf("--out debe ser text|json")
			}
			return a.open(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", os.Getenv("IDENTITY_CONFIG"), "Path al YAML de config (env IDENTITY_CONFIG)")
	root.PersistentFlags().StringVar(&a.out, "out", "text", "Formato de salida: text|json")

	root.AddCommand(
		newUserCmd(a),
		newRoleCmd(a),
		newClaimCmd(a),
		newPingCmd(a),
		newServeCmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
