package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ledger/internal/application/dto"
	"github.com/jhoicas/retail-ledger/internal/domain"
	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/domain/ledger"
	"github.com/jhoicas/retail-ledger/internal/domain/repository"
)

// CatalogUseCase marcas, productos y contrapartes: altas, consultas, cambio de precio,
// auditoría de agregados y estado de cuenta.
type CatalogUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(txRunner TxRunner, opts Options) *CatalogUseCase {
	return &CatalogUseCase{txRunner: txRunner, now: opts.clock()}
}

// CreateBrand crea una marca con agregados en cero.
func (uc *CatalogUseCase) CreateBrand(ctx context.Context, scope entity.Scope, in dto.CreateBrandRequest) (*dto.BrandResponse, error) {
	if in.Name == "" {
		return nil, domain.NewValidationError("name", "es obligatorio")
	}
	b := entity.NewBrand(scope, in.Name, uc.now())
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		return repos.Brands.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return toBrandResponse(b), nil
}

// GetBrand devuelve la marca con sus agregados.
func (uc *CatalogUseCase) GetBrand(ctx context.Context, scope entity.Scope, id int64) (*dto.BrandResponse, error) {
	var out *dto.BrandResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		b, err := loadBrand(ctx, repos, scope, id)
		if err != nil {
			return err
		}
		out = toBrandResponse(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduct crea un producto bajo una marca de la empresa, con Count y Stock en cero.
func (uc *CatalogUseCase) CreateProduct(ctx context.Context, scope entity.Scope, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	verr := &domain.ValidationError{}
	if in.Name == "" {
		verr.Add("name", "es obligatorio")
	}
	if in.UnitPrice.IsNegative() {
		verr.Add("unit_price", "no puede ser negativo")
	}
	if in.SellingPrice.IsNegative() {
		verr.Add("selling_price", "no puede ser negativo")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	p := entity.NewProduct(scope, in.BrandID, in.Name, in.UnitPrice, in.SellingPrice, uc.now())
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if _, err := loadBrand(ctx, repos, scope, in.BrandID); err != nil {
			return err
		}
		return repos.Products.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetProduct devuelve el producto.
func (uc *CatalogUseCase) GetProduct(ctx context.Context, scope entity.Scope, id int64) (*dto.ProductResponse, error) {
	var out *dto.ProductResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		p, err := scopedProduct(ctx, repos, scope, id)
		if err != nil {
			return err
		}
		out = toProductResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RepriceProduct cambia el precio de referencia, reexpresa stock = count * precio y traslada la
// diferencia a la marca. SellingPrice se actualiza si viene.
func (uc *CatalogUseCase) RepriceProduct(ctx context.Context, scope entity.Scope, id int64, in dto.RepriceProductRequest) (*dto.ProductResponse, error) {
	if in.SellingPrice != nil && in.SellingPrice.IsNegative() {
		return nil, domain.NewValidationError("selling_price", "no puede ser negativo")
	}
	var out *dto.ProductResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return notFound("producto", id)
		}
		if err := checkScope(scope, p.EnterpriseID); err != nil {
			return err
		}
		b, err := repos.Brands.GetForUpdate(ctx, p.BrandID)
		if err != nil {
			return err
		}
		if b == nil {
			return fmt.Errorf("marca %d del producto %d: %w", p.BrandID, p.ID, domain.ErrConsistency)
		}
		if err := ledger.Reprice(p, b, in.UnitPrice); err != nil {
			return err
		}
		if in.SellingPrice != nil {
			p.SellingPrice = *in.SellingPrice
		}
		now := uc.now()
		p.UpdatedAt = now
		b.UpdatedAt = now
		if err := repos.Products.Update(ctx, p); err != nil {
			return err
		}
		if err := repos.Brands.UpdateAggregates(ctx, b); err != nil {
			return err
		}
		out = toProductResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AuditBrand compara Count y Stock acarreados de la marca con la suma de sus productos.
func (uc *CatalogUseCase) AuditBrand(ctx context.Context, scope entity.Scope, id int64) (*dto.BrandAuditResponse, error) {
	var out *dto.BrandAuditResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		b, err := loadBrand(ctx, repos, scope, id)
		if err != nil {
			return err
		}
		products, err := repos.Products.ListByBrand(ctx, b.ID)
		if err != nil {
			return err
		}
		out = auditBrand(b, products)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func auditBrand(b *entity.Brand, products []*entity.Product) *dto.BrandAuditResponse {
	res := &dto.BrandAuditResponse{
		BrandID:      b.ID,
		CarriedCount: b.Count,
		CarriedStock: b.Stock,
		ProductStock: decimal.Zero,
	}
	for _, p := range products {
		res.ProductCount += p.Count
		res.ProductStock = res.ProductStock.Add(p.Stock)
		if expected := ledger.StockValue(p, p.Count); !expected.Equal(p.Stock) {
			res.Violations = append(res.Violations,
				fmt.Sprintf("producto %d: stock %s, count*unit_price %s", p.ID, p.Stock, expected))
		}
	}
	if res.ProductCount != b.Count {
		res.Violations = append(res.Violations,
			fmt.Sprintf("count de marca %d, suma de productos %d", b.Count, res.ProductCount))
	}
	if !res.ProductStock.Equal(b.Stock) {
		res.Violations = append(res.Violations,
			fmt.Sprintf("stock de marca %s, suma de productos %s", b.Stock, res.ProductStock))
	}
	res.Consistent = len(res.Violations) == 0
	return res
}

// CreateCounterparty crea un proveedor o deudor con Due en cero.
func (uc *CatalogUseCase) CreateCounterparty(ctx context.Context, scope entity.Scope, kind entity.CounterpartyKind, in dto.CreateCounterpartyRequest) (*dto.CounterpartyResponse, error) {
	if !kind.Valid() {
		return nil, domain.NewValidationError("kind", "debe ser vendor o debtor")
	}
	if in.Name == "" {
		return nil, domain.NewValidationError("name", "es obligatorio")
	}
	cp := entity.NewCounterparty(scope, kind, in.Name, in.Phone, in.BrandID, uc.now())
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if in.BrandID != nil {
			if _, err := loadBrand(ctx, repos, scope, *in.BrandID); err != nil {
				return err
			}
		}
		return repos.Counterparties.Create(ctx, cp)
	})
	if err != nil {
		return nil, err
	}
	return toCounterpartyResponse(cp), nil
}

// GetCounterparty devuelve el proveedor o deudor con su Due actual.
func (uc *CatalogUseCase) GetCounterparty(ctx context.Context, scope entity.Scope, kind entity.CounterpartyKind, id int64) (*dto.CounterpartyResponse, error) {
	var out *dto.CounterpartyResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		cp, err := loadCounterparty(ctx, repos, scope, kind, id)
		if err != nil {
			return err
		}
		out = toCounterpartyResponse(cp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Statement estado de cuenta: Due actual y asientos, más recientes primero.
func (uc *CatalogUseCase) Statement(ctx context.Context, scope entity.Scope, kind entity.CounterpartyKind, id int64, page dto.PageRequest) (*dto.StatementResponse, error) {
	page.DefaultPage()
	var out *dto.StatementResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		cp, err := loadCounterparty(ctx, repos, scope, kind, id)
		if err != nil {
			return err
		}
		entries, err := repos.BalanceEntries.ListByCounterparty(ctx, cp.ID, page.Limit, page.Offset)
		if err != nil {
			return err
		}
		items := make([]dto.BalanceEntryResponse, 0, len(entries))
		for _, e := range entries {
			items = append(items, toBalanceEntryResponse(e))
		}
		out = &dto.StatementResponse{
			Counterparty: *toCounterpartyResponse(cp),
			Entries:      items,
			Page:         dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func loadBrand(ctx context.Context, repos repository.Repositories, scope entity.Scope, id int64) (*entity.Brand, error) {
	b, err := repos.Brands.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, notFound("marca", id)
	}
	if err := checkScope(scope, b.EnterpriseID); err != nil {
		return nil, err
	}
	return b, nil
}

func loadCounterparty(ctx context.Context, repos repository.Repositories, scope entity.Scope, kind entity.CounterpartyKind, id int64) (*entity.Counterparty, error) {
	cp, err := repos.Counterparties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cp == nil || cp.Kind != kind {
		return nil, notFound(string(kind), id)
	}
	if err := checkScope(scope, cp.EnterpriseID); err != nil {
		return nil, err
	}
	return cp, nil
}
