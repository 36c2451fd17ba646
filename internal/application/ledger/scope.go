package ledger

import (
	"fmt"
	"time"

	"github.com/jhoicas/retail-ledger/internal/application/dto"
	"github.com/jhoicas/retail-ledger/internal/domain"
	"github.com/jhoicas/retail-ledger/internal/domain/entity"
)

// checkScope devuelve ErrForbidden si el registro es de otra empresa.
func checkScope(scope entity.Scope, enterpriseID int64) error {
	if !scope.Owns(enterpriseID) {
		return domain.ErrForbidden
	}
	return nil
}

func notFound(what string, id int64) error {
	return fmt.Errorf("%s %d: %w", what, id, domain.ErrNotFound)
}

// parseDate interpreta una fecha del payload; registra el campo en verr si es inválida.
func parseDate(verr *domain.ValidationError, field, value string) time.Time {
	t, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		verr.Add(field, "fecha inválida, formato "+dto.DateLayout)
		return time.Time{}
	}
	return t
}

func parseOptionalDate(verr *domain.ValidationError, field, value string) *time.Time {
	if value == "" {
		return nil
	}
	t := parseDate(verr, field, value)
	return &t
}

func parseMethod(verr *domain.ValidationError, field, value string) entity.Method {
	m := entity.Method(value)
	if !m.Valid() {
		verr.Add(field, "debe ser cash, cheque o credit")
	}
	return m
}

func formatDate(t time.Time) string {
	return t.Format(dto.DateLayout)
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}
