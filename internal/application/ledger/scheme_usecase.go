package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-ledger/internal/application/dto"
	"github.com/jhoicas/retail-ledger/internal/domain"
	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/domain/ledger"
	"github.com/jhoicas/retail-ledger/internal/domain/repository"
)

// SchemeUseCase esquemas de cashback y protecciones de precio. Sold y Receivable se recalculan
// desde las ventas; el estado sólo lo cambia SetStatus.
type SchemeUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewSchemeUseCase construye el caso de uso.
func NewSchemeUseCase(txRunner TxRunner, opts Options) *SchemeUseCase {
	return &SchemeUseCase{txRunner: txRunner, now: opts.clock()}
}

func parsePeriod(verr *domain.ValidationError, from, to string) (time.Time, time.Time) {
	f := parseDate(verr, "from_date", from)
	t := parseDate(verr, "to_date", to)
	if verr.Empty() && t.Before(f) {
		verr.Add("to_date", "debe ser posterior o igual a from_date")
	}
	return f, t
}

// CreateScheme crea el esquema sobre el producto (la marca se toma del producto) y calcula su receivable.
func (uc *SchemeUseCase) CreateScheme(ctx context.Context, scope entity.Scope, in dto.CreateSchemeRequest) (*dto.SchemeResponse, error) {
	now := uc.now()
	verr := &domain.ValidationError{}
	from, to := parsePeriod(verr, in.FromDate, in.ToDate)
	tiers := make([]entity.SchemeTier, 0, len(in.Tiers))
	for _, t := range in.Tiers {
		tiers = append(tiers, entity.SchemeTier{Lower: t.Lower, Upper: t.Upper, Cashback: t.Cashback})
	}
	verr.Merge(ledger.ValidateTiers(tiers))
	if err := verr.Err(); err != nil {
		return nil, err
	}

	s := &entity.Scheme{
		EnterpriseID: scope.EnterpriseID,
		BranchID:     scope.BranchID,
		ProductID:    in.ProductID,
		FromDate:     from,
		ToDate:       to,
		Status:       entity.PromotionActive,
		Tiers:        tiers,
		Receivable:   decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		product, err := scopedProduct(ctx, repos, scope, in.ProductID)
		if err != nil {
			return err
		}
		s.BrandID = product.BrandID
		if err := repos.Schemes.Create(ctx, s); err != nil {
			return err
		}
		return refreshScheme(ctx, repos, s, now)
	})
	if err != nil {
		return nil, err
	}
	return toSchemeResponse(s), nil
}

// GetScheme devuelve el esquema.
func (uc *SchemeUseCase) GetScheme(ctx context.Context, scope entity.Scope, id int64) (*dto.SchemeResponse, error) {
	var out *dto.SchemeResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		s, err := loadScheme(ctx, repos, scope, id)
		if err != nil {
			return err
		}
		out = toSchemeResponse(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetSchemeStatus cambia el estado (active/expired).
func (uc *SchemeUseCase) SetSchemeStatus(ctx context.Context, scope entity.Scope, id int64, in dto.SetStatusRequest) (*dto.SchemeResponse, error) {
	status, err := parseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	var out *dto.SchemeResponse
	err = uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		s, err := loadScheme(ctx, repos, scope, id)
		if err != nil {
			return err
		}
		s.Status = status
		s.UpdatedAt = uc.now()
		if err := repos.Schemes.Update(ctx, s); err != nil {
			return err
		}
		out = toSchemeResponse(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePriceProtection crea la protección de precio y calcula su receivable.
func (uc *SchemeUseCase) CreatePriceProtection(ctx context.Context, scope entity.Scope, in dto.CreatePriceProtectionRequest) (*dto.PriceProtectionResponse, error) {
	now := uc.now()
	verr := &domain.ValidationError{}
	from, to := parsePeriod(verr, in.FromDate, in.ToDate)
	if in.AmountPerUnit.IsNegative() {
		verr.Add("amount_per_unit", "no puede ser negativo")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	pp := &entity.PriceProtection{
		EnterpriseID:  scope.EnterpriseID,
		BranchID:      scope.BranchID,
		ProductID:     in.ProductID,
		FromDate:      from,
		ToDate:        to,
		Status:        entity.PromotionActive,
		AmountPerUnit: in.AmountPerUnit,
		Receivable:    decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		product, err := scopedProduct(ctx, repos, scope, in.ProductID)
		if err != nil {
			return err
		}
		pp.BrandID = product.BrandID
		if err := repos.PriceProtections.Create(ctx, pp); err != nil {
			return err
		}
		return refreshPriceProtection(ctx, repos, pp, now)
	})
	if err != nil {
		return nil, err
	}
	return toPriceProtectionResponse(pp), nil
}

// GetPriceProtection devuelve la protección de precio.
func (uc *SchemeUseCase) GetPriceProtection(ctx context.Context, scope entity.Scope, id int64) (*dto.PriceProtectionResponse, error) {
	var out *dto.PriceProtectionResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		pp, err := loadPriceProtection(ctx, repos, scope, id)
		if err != nil {
			return err
		}
		out = toPriceProtectionResponse(pp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetPriceProtectionStatus cambia el estado (active/expired).
func (uc *SchemeUseCase) SetPriceProtectionStatus(ctx context.Context, scope entity.Scope, id int64, in dto.SetStatusRequest) (*dto.PriceProtectionResponse, error) {
	status, err := parseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	var out *dto.PriceProtectionResponse
	err = uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		pp, err := loadPriceProtection(ctx, repos, scope, id)
		if err != nil {
			return err
		}
		pp.Status = status
		pp.UpdatedAt = uc.now()
		if err := repos.PriceProtections.Update(ctx, pp); err != nil {
			return err
		}
		out = toPriceProtectionResponse(pp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func parseStatus(s string) (string, error) {
	if s != entity.PromotionActive && s != entity.PromotionExpired {
		return "", domain.NewValidationError("status", "debe ser active o expired")
	}
	return s, nil
}

func scopedProduct(ctx context.Context, repos repository.Repositories, scope entity.Scope, id int64) (*entity.Product, error) {
	p, err := repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("producto", id)
	}
	if err := checkScope(scope, p.EnterpriseID); err != nil {
		return nil, err
	}
	return p, nil
}

func loadScheme(ctx context.Context, repos repository.Repositories, scope entity.Scope, id int64) (*entity.Scheme, error) {
	s, err := repos.Schemes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, notFound("esquema", id)
	}
	if err := checkScope(scope, s.EnterpriseID); err != nil {
		return nil, err
	}
	return s, nil
}

func loadPriceProtection(ctx context.Context, repos repository.Repositories, scope entity.Scope, id int64) (*entity.PriceProtection, error) {
	pp, err := repos.PriceProtections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pp == nil {
		return nil, notFound("protección de precio", id)
	}
	if err := checkScope(scope, pp.EnterpriseID); err != nil {
		return nil, err
	}
	return pp, nil
}
