package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	opshttp "github.com/dropDatabas3/hellojohn-identity/internal/http"
)

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Verificar la conexión al store",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			if err := a.conn.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("ping %s: %w", a.conn.Name(), err)
			}
			fmt.Printf("ok (%s, %s)\n", a.conn.Name(), time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Exponer /healthz y /metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Ops.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			h := opshttp.NewOpsRouter(opshttp.OpsConfig{Store: a.conn, Version: version})
			return opshttp.Serve(ctx, addr, h)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Dirección de escucha (default: ops.addr de la config)")
	return cmd
}
