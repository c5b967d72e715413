package memrepo

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/micro-erp/internal/domain"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

// ── Productos ────────────────────────────────────────────────────────────────

type ProductRepo struct{ s *Store }

func (s *Store) ProductRepo() *ProductRepo { return &ProductRepo{s: s} }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Product{}
	for _, id := range sortedIDs(r.s.Products) {
		p := r.s.Products[id]
		if f.Active != nil && p.Active != *f.Active {
			continue
		}
		if f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID) {
			continue
		}
		if f.LowStock && !p.LowStock() {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Code), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.Products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) checkCode(p *entity.Product) error {
	for id, other := range r.s.Products {
		if id != p.ID && other.Code == p.Code {
			return &domain.DuplicateError{Field: "codigo", Message: "Código já cadastrado"}
		}
	}
	return nil
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("ProductRepo.Create"); err != nil {
		return err
	}
	if err := r.checkCode(p); err != nil {
		return err
	}
	p.ID = r.s.nextID()
	p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
	r.s.Products[p.ID] = *p
	return nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.Products[p.ID]
	if !ok {
		return notFound("Produto não encontrado")
	}
	if err := r.checkCode(p); err != nil {
		return err
	}
	upd := *p
	upd.StockCurrent = cur.StockCurrent
	r.s.Products[p.ID] = upd
	return nil
}

func (r *ProductRepo) SetStock(_ context.Context, id int64, stock int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("ProductRepo.SetStock"); err != nil {
		return err
	}
	p, ok := r.s.Products[id]
	if !ok {
		return notFound("Produto não encontrado")
	}
	p.StockCurrent = stock
	r.s.Products[id] = p
	return nil
}

func (r *ProductRepo) SetCostPrice(_ context.Context, id int64, cost decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.Products[id]
	if !ok {
		return notFound("Produto não encontrado")
	}
	p.CostPrice = cost
	r.s.Products[id] = p
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Products[id]; !ok {
		return notFound("Produto não encontrado")
	}
	delete(r.s.Products, id)
	return nil
}

func (r *ProductRepo) Deactivate(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.Products[id]
	if !ok {
		return notFound("Produto não encontrado")
	}
	p.Active = false
	r.s.Products[id] = p
	return nil
}

func (r *ProductRepo) CountSaleItems(_ context.Context, id int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, it := range r.s.Items {
		if it.ProductID == id {
			n++
		}
	}
	return n, nil
}

func (r *ProductRepo) MaxGeneratedCode(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	max := 0
	for _, p := range r.s.Products {
		if len(p.Code) < 2 || p.Code[0] != 'P' {
			continue
		}
		if n, err := strconv.Atoi(p.Code[1:]); err == nil && n > max {
			max = n
		}
	}
	return max, nil
}

// ── Movimientos ──────────────────────────────────────────────────────────────

type MovementRepo struct{ s *Store }

func (s *Store) MovementRepo() *MovementRepo { return &MovementRepo{s: s} }

var _ repository.InventoryMovementRepository = (*MovementRepo)(nil)

func (r *MovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("MovementRepo.Create"); err != nil {
		return err
	}
	m.ID = r.s.nextID()
	m.CreatedAt = time.Now()
	r.s.Movements = append(r.s.Movements, *m)
	return nil
}

func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]entity.InventoryMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.InventoryMovement{}
	for i := len(r.s.Movements) - 1; i >= 0; i-- {
		m := r.s.Movements[i]
		if f.ProductID != nil && m.ProductID != *f.ProductID {
			continue
		}
		if f.SaleID != nil && (m.SaleID == nil || *m.SaleID != *f.SaleID) {
			continue
		}
		out = append(out, m)
		if f.Limit > 0 && uint64(len(out)) >= f.Limit {
			break
		}
	}
	return out, nil
}
