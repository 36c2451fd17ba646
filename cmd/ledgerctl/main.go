// ledgerctl tareas de operación del libro: migraciones, auditoría de agregados y emisión de tokens.
//
// Uso:
//
//	ledgerctl --db-url $DATABASE_URL migrate
//	ledgerctl --db-url $DATABASE_URL audit --enterprise 1 [--brand 3 --brand 4]
//	ledgerctl token --secret $JWT_SECRET --enterprise 1 --role Admin
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/retail-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/retail-ledger/pkg/config"
	"github.com/jhoicas/retail-ledger/pkg/logger"
)

type ctxKey struct{}

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "connection string de PostgreSQL",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	pool, err := postgres.NewPool(c.Context, config.DBConfig{DatabaseURL: c.String("db-url"), MaxConns: 8})
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	c.Context = context.WithValue(c.Context, ctxKey{}, pool)
	return nil
}

func closeDB(c *cli.Context) error {
	if pool := poolFrom(c); pool != nil {
		pool.Close()
	}
	return nil
}

func poolFrom(c *cli.Context) *pgxpool.Pool {
	pool, _ := c.Context.Value(ctxKey{}).(*pgxpool.Pool)
	return pool
}

func newLogger(c *cli.Context) *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: c.String("log-level"), Out: os.Stderr})
}

func main() {
	app := &cli.App{
		Name:  "ledgerctl",
		Usage: "Operación del libro de compras y ventas",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Aplicar migraciones pendientes",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runMigrate,
			},
			{
				Name:  "audit",
				Usage: "Comparar count/stock de cada marca con la suma de sus productos",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.Int64Flag{
						Name:     "enterprise",
						Usage:    "ID de la empresa",
						Required: true,
					},
					&cli.Int64SliceFlag{
						Name:  "brand",
						Usage: "ID de marca (repetible); por defecto todas las de la empresa",
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "auditorías en paralelo",
						Value: 4,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runAudit,
			},
			{
				Name:  "token",
				Usage: "Emitir un JWT de servicio para la API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "secret", Required: true, EnvVars: []string{"JWT_SECRET"}},
					&cli.StringFlag{Name: "issuer", Value: "retail-ledger", EnvVars: []string{"JWT_ISSUER"}},
					&cli.StringFlag{Name: "user", Value: "ledgerctl"},
					&cli.Int64Flag{Name: "enterprise", Required: true},
					&cli.Int64Flag{Name: "branch", Usage: "0 = toda la empresa"},
					&cli.StringFlag{Name: "role", Value: "Admin"},
					&cli.IntFlag{Name: "minutes", Value: 60},
				},
				Action: runToken,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ledgerctl: %v\n", err)
		os.Exit(1)
	}
}
