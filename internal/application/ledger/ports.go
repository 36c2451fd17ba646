package ledger

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/retail-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una unidad de trabajo, pasando repositorios atados a ella.
// Si fn retorna error no queda ninguna escritura (Rollback); si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}

// Options configuración compartida por los casos de uso del libro.
type Options struct {
	// AllowNegativeStock permite que una venta deje el conteo de un producto en negativo.
	AllowNegativeStock bool
	Logger             *zerolog.Logger
	Now                func() time.Time
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return &log.Logger
}

func (o Options) clock() func() time.Time {
	if o.Now != nil {
		return o.Now
	}
	return time.Now
}
