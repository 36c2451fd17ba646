package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/domain/repository"
	"github.com/jhoicas/retail-ledger/internal/infrastructure/memory"
)

var scope = entity.Scope{EnterpriseID: 1}

func TestRun_ErrorRestauraEstado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now()

	var brandID int64
	require.NoError(t, store.Run(ctx, func(repos repository.Repositories) error {
		b := entity.NewBrand(scope, "Samsung", now)
		if err := repos.Brands.Create(ctx, b); err != nil {
			return err
		}
		brandID = b.ID
		return nil
	}))

	boom := errors.New("boom")
	err := store.Run(ctx, func(repos repository.Repositories) error {
		b, err := repos.Brands.GetForUpdate(ctx, brandID)
		if err != nil {
			return err
		}
		b.Count = 10
		b.Stock = decimal.NewFromInt(1000)
		if err := repos.Brands.UpdateAggregates(ctx, b); err != nil {
			return err
		}
		if err := repos.Brands.Create(ctx, entity.NewBrand(scope, "Xiaomi", now)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	require.NoError(t, store.Run(ctx, func(repos repository.Repositories) error {
		b, err := repos.Brands.GetByID(ctx, brandID)
		require.NoError(t, err)
		assert.Zero(t, b.Count, "agregados restaurados")
		assert.True(t, b.Stock.IsZero())

		other, err := repos.Brands.GetByID(ctx, brandID+1)
		require.NoError(t, err)
		assert.Nil(t, other, "la marca creada en la unidad fallida no existe")

		fresh := entity.NewBrand(scope, "Motorola", now)
		require.NoError(t, repos.Brands.Create(ctx, fresh))
		assert.Equal(t, brandID+1, fresh.ID, "la secuencia también vuelve atrás")
		return nil
	}))
}

func TestRun_CopiasAisladas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	require.NoError(t, store.Run(ctx, func(repos repository.Repositories) error {
		b := entity.NewBrand(scope, "Samsung", time.Now())
		require.NoError(t, repos.Brands.Create(ctx, b))
		b.Count = 99 // sin UpdateAggregates no se persiste

		got, err := repos.Brands.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Zero(t, got.Count)
		return nil
	}))
}

func TestSoldUnits_VentanaYDevoluciones(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, store.Run(ctx, func(repos repository.Repositories) error {
		add := func(kind entity.TransactionKind, date time.Time, qty int64, returned bool) {
			tx := &entity.Transaction{EnterpriseID: 1, Kind: kind, Date: date, Method: entity.MethodCash}
			require.NoError(t, repos.Transactions.Create(ctx, tx))
			require.NoError(t, repos.Transactions.CreateLine(ctx, &entity.LineItem{
				TransactionID: tx.ID, ProductID: 7, Quantity: qty, Returned: returned,
			}))
		}
		add(entity.TransactionSale, day(5), 2, false)
		add(entity.TransactionSale, day(6), 3, true)
		add(entity.TransactionPurchase, day(6), 10, false)
		add(entity.TransactionSale, day(31), 4, false)

		sold, err := repos.Transactions.SoldUnits(ctx, 7, day(1), day(31))
		require.NoError(t, err)
		assert.Equal(t, int64(2), sold, "el límite superior es exclusivo")
		return nil
	}))
}
