package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/retail-ledger/internal/domain/entity"
	"github.com/jhoicas/retail-ledger/internal/domain/repository"
)

// Store guarda todo en memoria (modo desarrollo o tests, sin DATABASE_URL).
// Run serializa las unidades de trabajo con un mutex y restaura una copia del estado si fn falla.
type Store struct {
	mu    sync.Mutex
	state *state
}

type state struct {
	nextID           map[string]int64
	brands           map[int64]*entity.Brand
	products         map[int64]*entity.Product
	counterparties   map[int64]*entity.Counterparty
	transactions     map[int64]*entity.Transaction
	lines            map[int64]*entity.LineItem
	payments         map[int64]*entity.Payment
	entries          map[int64]*entity.BalanceEntry
	schemes          map[int64]*entity.Scheme
	priceProtections map[int64]*entity.PriceProtection
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

func newState() *state {
	return &state{
		nextID:           map[string]int64{},
		brands:           map[int64]*entity.Brand{},
		products:         map[int64]*entity.Product{},
		counterparties:   map[int64]*entity.Counterparty{},
		transactions:     map[int64]*entity.Transaction{},
		lines:            map[int64]*entity.LineItem{},
		payments:         map[int64]*entity.Payment{},
		entries:          map[int64]*entity.BalanceEntry{},
		schemes:          map[int64]*entity.Scheme{},
		priceProtections: map[int64]*entity.PriceProtection{},
	}
}

func (s *state) next(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

// Run ejecuta fn con repositorios sobre el estado actual. Si fn retorna error el estado vuelve al previo.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(s.repositories()); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func (s *Store) repositories() repository.Repositories {
	return repository.Repositories{
		Brands:           &brandRepo{s: s},
		Products:         &productRepo{s: s},
		Counterparties:   &counterpartyRepo{s: s},
		Transactions:     &transactionRepo{s: s},
		Payments:         &paymentRepo{s: s},
		BalanceEntries:   &balanceEntryRepo{s: s},
		Schemes:          &schemeRepo{s: s},
		PriceProtections: &priceProtectionRepo{s: s},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.nextID {
		c.nextID[k] = v
	}
	for id, v := range s.brands {
		c.brands[id] = copyBrand(v)
	}
	for id, v := range s.products {
		c.products[id] = copyProduct(v)
	}
	for id, v := range s.counterparties {
		c.counterparties[id] = copyCounterparty(v)
	}
	for id, v := range s.transactions {
		c.transactions[id] = copyTransaction(v)
	}
	for id, v := range s.lines {
		c.lines[id] = copyLine(v)
	}
	for id, v := range s.payments {
		c.payments[id] = copyPayment(v)
	}
	for id, v := range s.entries {
		e := *v
		c.entries[id] = &e
	}
	for id, v := range s.schemes {
		c.schemes[id] = copyScheme(v)
	}
	for id, v := range s.priceProtections {
		pp := *v
		c.priceProtections[id] = &pp
	}
	return c
}

func copyBrand(b *entity.Brand) *entity.Brand {
	c := *b
	return &c
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func copyCounterparty(cp *entity.Counterparty) *entity.Counterparty {
	c := *cp
	return &c
}

// copyTransaction copia la cabecera; las líneas se guardan aparte.
func copyTransaction(tx *entity.Transaction) *entity.Transaction {
	c := *tx
	c.Lines = nil
	if tx.CounterpartyID != nil {
		id := *tx.CounterpartyID
		c.CounterpartyID = &id
	}
	return &c
}

func copyLine(l *entity.LineItem) *entity.LineItem {
	c := *l
	return &c
}

func copyPayment(p *entity.Payment) *entity.Payment {
	c := *p
	if p.TransactionID != nil {
		id := *p.TransactionID
		c.TransactionID = &id
	}
	return &c
}

func copyScheme(s *entity.Scheme) *entity.Scheme {
	c := *s
	c.Tiers = append([]entity.SchemeTier(nil), s.Tiers...)
	return &c
}
