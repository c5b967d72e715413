// Package memrepo implementa los puertos de repositorio en memoria para los tests de casos de uso.
// TxRunner copia el estado antes del callback y lo restaura si devuelve error, igual que un Rollback.
package memrepo

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/micro-erp/internal/domain"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

// ErrInjected error que devuelven las operaciones marcadas con FailOn.
var ErrInjected = errors.New("memrepo: fallo inyectado")

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex

	Roles       map[int64]entity.Role
	Employees   map[int64]entity.Employee
	Categories  map[int64]entity.Category
	Products    map[int64]entity.Product
	Customers   map[int64]entity.Customer
	Sales       map[int64]entity.Sale
	Items       map[int64]entity.SaleItem
	Movements   []entity.InventoryMovement
	Commissions map[int64]entity.Commission
	Revoked     map[string]time.Time

	// FailOn hace fallar la operación con ese nombre ("SaleRepo.CreateItem", "CommissionRepo.Create", ...).
	FailOn map[string]error

	seq       int64
	saleSeq   int
	Commits   int
	Rollbacks int
}

// New crea un Store vacío.
func New() *Store {
	return &Store{
		Roles:       map[int64]entity.Role{},
		Employees:   map[int64]entity.Employee{},
		Categories:  map[int64]entity.Category{},
		Products:    map[int64]entity.Product{},
		Customers:   map[int64]entity.Customer{},
		Sales:       map[int64]entity.Sale{},
		Items:       map[int64]entity.SaleItem{},
		Commissions: map[int64]entity.Commission{},
		Revoked:     map[string]time.Time{},
		FailOn:      map[string]error{},
	}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *Store) fail(op string) error {
	if err, ok := s.FailOn[op]; ok {
		if err == nil {
			return ErrInjected
		}
		return err
	}
	return nil
}

type snapshot struct {
	roles       map[int64]entity.Role
	employees   map[int64]entity.Employee
	categories  map[int64]entity.Category
	products    map[int64]entity.Product
	customers   map[int64]entity.Customer
	sales       map[int64]entity.Sale
	items       map[int64]entity.SaleItem
	movements   []entity.InventoryMovement
	commissions map[int64]entity.Commission
	revoked     map[string]time.Time
	seq         int64
	saleSeq     int
}

func clone[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		roles:       clone(s.Roles),
		employees:   clone(s.Employees),
		categories:  clone(s.Categories),
		products:    clone(s.Products),
		customers:   clone(s.Customers),
		sales:       clone(s.Sales),
		items:       clone(s.Items),
		movements:   append([]entity.InventoryMovement(nil), s.Movements...),
		commissions: clone(s.Commissions),
		revoked:     clone(s.Revoked),
		seq:         s.seq,
		saleSeq:     s.saleSeq,
	}
}

func (s *Store) restore(sn snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Roles, s.Employees, s.Categories = sn.roles, sn.employees, sn.categories
	s.Products, s.Customers, s.Sales, s.Items = sn.products, sn.customers, sn.sales, sn.items
	s.Movements, s.Commissions, s.Revoked = sn.movements, sn.commissions, sn.revoked
	s.seq, s.saleSeq = sn.seq, sn.saleSeq
}

// TxRunner implementa inventory.TxRunner y sales.SalesTxRunner.
type TxRunner struct {
	s *Store
}

// TxRunner devuelve el runner transaccional del Store.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

func (t *TxRunner) within(fn func() error) error {
	sn := t.s.snapshot()
	if err := fn(); err != nil {
		t.s.restore(sn)
		t.s.Rollbacks++
		return err
	}
	t.s.Commits++
	return nil
}

func (t *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	return t.within(func() error { return fn(t.s.ProductRepo(), t.s.MovementRepo()) })
}

func (t *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	commissionRepo repository.CommissionRepository,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	return t.within(func() error {
		return fn(t.s.SaleRepo(), t.s.CommissionRepo(), t.s.ProductRepo(), t.s.MovementRepo())
	})
}

func contains(haystack *string, needle string) bool {
	return haystack != nil && strings.Contains(strings.ToLower(*haystack), strings.ToLower(needle))
}

func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func notFound(msg string) error {
	return &domain.NotFoundError{Message: msg}
}
