package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/retail-ledger/internal/application/dto"
	"github.com/jhoicas/retail-ledger/internal/application/ledger"
	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/retail-ledger/pkg/jwt"
)

func runMigrate(c *cli.Context) error {
	log := newLogger(c)
	applied, err := postgres.Migrate(c.Context, poolFrom(c), log.Zerolog())
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		log.Info().Msg("sin migraciones pendientes")
		return nil
	}
	log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	return nil
}

func runAudit(c *cli.Context) error {
	log := newLogger(c)
	pool := poolFrom(c)
	scope := entity.Scope{EnterpriseID: c.Int64("enterprise")}

	brandIDs := c.Int64Slice("brand")
	if len(brandIDs) == 0 {
		ids, err := postgres.NewBrandRepository(pool).ListIDsByEnterprise(c.Context, scope.EnterpriseID)
		if err != nil {
			return err
		}
		brandIDs = ids
	}

	catalog := ledger.NewCatalogUseCase(postgres.NewTxRunner(pool), ledger.Options{Logger: log.Component("audit")})
	reports := make([]*dto.BrandAuditResponse, len(brandIDs))

	g, ctx := errgroup.WithContext(c.Context)
	g.SetLimit(max(1, c.Int("concurrency")))
	for i, id := range brandIDs {
		i, id := i, id
		g.Go(func() error {
			r, err := catalog.AuditBrand(ctx, scope, id)
			if err != nil {
				return fmt.Errorf("marca %d: %w", id, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].BrandID < reports[j].BrandID })
	inconsistent := 0
	for _, r := range reports {
		ev := log.Info()
		if !r.Consistent {
			inconsistent++
			ev = log.Error().Strs("violations", r.Violations)
		}
		ev.Int64("brand_id", r.BrandID).
			Int64("carried_count", r.CarriedCount).
			Int64("product_count", r.ProductCount).
			Str("carried_stock", r.CarriedStock.String()).
			Str("product_stock", r.ProductStock.String()).
			Bool("consistent", r.Consistent).
			Msg("auditoría de marca")
	}
	if inconsistent > 0 {
		return cli.Exit(fmt.Sprintf("%d de %d marcas inconsistentes", inconsistent, len(reports)), 2)
	}
	return nil
}

func runToken(c *cli.Context) error {
	id := jwt.Identity{
		UserID:       c.String("user"),
		EnterpriseID: c.Int64("enterprise"),
		Role:         c.String("role"),
	}
	if branch := c.Int64("branch"); branch > 0 {
		id.BranchID = &branch
	}
	token, err := jwt.Generate(c.String("secret"), id, c.String("issuer"), c.Int("minutes"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, token)
	return err
}
