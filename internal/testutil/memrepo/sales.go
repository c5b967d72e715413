package memrepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

// ── Ventas ───────────────────────────────────────────────────────────────────

type SaleRepo struct{ s *Store }

func (s *Store) SaleRepo() *SaleRepo { return &SaleRepo{s: s} }

var _ repository.SaleRepository = (*SaleRepo)(nil)

func (r *SaleRepo) withNames(v entity.Sale) entity.Sale {
	if c, ok := r.s.Customers[v.CustomerID]; ok {
		v.CustomerName = c.DisplayName()
	}
	if e, ok := r.s.Employees[v.SalespersonID]; ok {
		v.SalespersonName = e.DisplayName()
	}
	return v
}

func (r *SaleRepo) List(_ context.Context, f repository.SaleFilter) ([]entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Sale{}
	for _, id := range sortedIDs(r.s.Sales) {
		v := r.s.Sales[id]
		if f.From != nil && v.SaleDate.Before(*f.From) {
			continue
		}
		if f.To != nil && !v.SaleDate.Before(*f.To) {
			continue
		}
		if f.SalespersonID != nil && v.SalespersonID != *f.SalespersonID {
			continue
		}
		if f.CustomerID != nil && v.CustomerID != *f.CustomerID {
			continue
		}
		if f.Status != "" && v.Status != f.Status {
			continue
		}
		out = append(out, r.withNames(v))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })
	return out, nil
}

func (r *SaleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.Sales[id]
	if !ok {
		return nil, nil
	}
	v = r.withNames(v)
	return &v, nil
}

func (r *SaleRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Sale, error) {
	r.s.mu.Lock()
	err := r.s.fail("SaleRepo.GetForUpdate")
	r.s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *SaleRepo) Create(_ context.Context, v *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("SaleRepo.Create"); err != nil {
		return err
	}
	if _, ok := r.s.Customers[v.CustomerID]; !ok {
		return notFound("Cliente não encontrado")
	}
	if _, ok := r.s.Employees[v.SalespersonID]; !ok {
		return notFound("Vendedor não encontrado")
	}
	r.s.saleSeq++
	v.ID = r.s.nextID()
	v.Number = fmt.Sprintf("V%06d", r.s.saleSeq)
	v.CreatedAt, v.UpdatedAt = time.Now(), time.Now()
	r.s.Sales[v.ID] = *v
	return nil
}

func (r *SaleRepo) CreateItem(_ context.Context, it *entity.SaleItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("SaleRepo.CreateItem"); err != nil {
		return err
	}
	if _, ok := r.s.Products[it.ProductID]; !ok {
		return notFound("Produto não encontrado")
	}
	it.ID = r.s.nextID()
	r.s.Items[it.ID] = *it
	return nil
}

func (r *SaleRepo) ListItems(_ context.Context, saleID int64) ([]entity.SaleItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.SaleItem{}
	for _, id := range sortedIDs(r.s.Items) {
		it := r.s.Items[id]
		if it.SaleID != saleID {
			continue
		}
		if p, ok := r.s.Products[it.ProductID]; ok {
			it.ProductCode, it.ProductName = p.Code, p.Name
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *SaleRepo) UpdateStatus(_ context.Context, id int64, status entity.SaleStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.Sales[id]
	if !ok {
		return notFound("Venda não encontrada")
	}
	v.Status = status
	r.s.Sales[id] = v
	return nil
}

// ── Comisiones ───────────────────────────────────────────────────────────────

type CommissionRepo struct{ s *Store }

func (s *Store) CommissionRepo() *CommissionRepo { return &CommissionRepo{s: s} }

var _ repository.CommissionRepository = (*CommissionRepo)(nil)

func (r *CommissionRepo) Create(_ context.Context, c *entity.Commission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("CommissionRepo.Create"); err != nil {
		return err
	}
	c.ID = r.s.nextID()
	c.CreatedAt = time.Now()
	r.s.Commissions[c.ID] = *c
	return nil
}

func (r *CommissionRepo) ListPending(_ context.Context, employeeID *int64) ([]entity.Commission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Commission{}
	for _, id := range sortedIDs(r.s.Commissions) {
		c := r.s.Commissions[id]
		if c.Status != entity.PaymentPending {
			continue
		}
		if employeeID != nil && c.EmployeeID != *employeeID {
			continue
		}
		sale, ok := r.s.Sales[c.SaleID]
		if !ok || sale.Status == entity.SaleCancelled {
			continue
		}
		c.SaleNumber, c.SaleDate = sale.Number, sale.SaleDate
		if e, ok := r.s.Employees[c.EmployeeID]; ok {
			c.EmployeeName = e.DisplayName()
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *CommissionRepo) MarkPaid(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.Commissions[id]
	if !ok || c.Status != entity.PaymentPending {
		return notFound("Comissão pendente não encontrada")
	}
	now := time.Now()
	c.Status, c.PaidAt = entity.PaymentPaid, &now
	r.s.Commissions[id] = c
	return nil
}

func (r *CommissionRepo) CancelBySale(_ context.Context, saleID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, c := range r.s.Commissions {
		if c.SaleID == saleID && c.Status == entity.PaymentPending {
			c.Status = entity.PaymentCancelled
			r.s.Commissions[id] = c
		}
	}
	return nil
}

// ── Sesiones ─────────────────────────────────────────────────────────────────

type SessionRepo struct{ s *Store }

func (s *Store) SessionRepo() *SessionRepo { return &SessionRepo{s: s} }

var _ repository.SessionRepository = (*SessionRepo)(nil)

func (r *SessionRepo) Revoke(_ context.Context, jti string, _ int64, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Revoked[jti] = expiresAt
	return nil
}

func (r *SessionRepo) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.Revoked[jti]
	return ok, nil
}

func (r *SessionRepo) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for jti, exp := range r.s.Revoked {
		if exp.Before(now) {
			delete(r.s.Revoked, jti)
			n++
		}
	}
	return n, nil
}

// ── Relatórios ───────────────────────────────────────────────────────────────

type ReportRepo struct{ s *Store }

func (s *Store) ReportRepo() *ReportRepo { return &ReportRepo{s: s} }

var _ repository.ReportRepository = (*ReportRepo)(nil)

func (r *ReportRepo) DashboardCards(_ context.Context, since time.Time) (*repository.DashboardCards, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cards := &repository.DashboardCards{Revenue: decimal.Zero}
	for _, v := range r.s.Sales {
		if v.Status == entity.SaleCancelled || v.SaleDate.Before(since) {
			continue
		}
		cards.SalesCount++
		cards.Revenue = cards.Revenue.Add(v.Total)
	}
	for _, e := range r.s.Employees {
		if e.Active {
			cards.ActiveEmployees++
		}
	}
	for _, p := range r.s.Products {
		if p.Active && p.LowStock() {
			cards.LowStock++
		}
	}
	return cards, nil
}

func (r *ReportRepo) SalesByMonth(_ context.Context, since time.Time) ([]repository.MonthlySales, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byMonth := map[string]*repository.MonthlySales{}
	for _, v := range r.s.Sales {
		if v.Status == entity.SaleCancelled || v.SaleDate.Before(since) {
			continue
		}
		key := v.SaleDate.Format("2006-01")
		m, ok := byMonth[key]
		if !ok {
			m = &repository.MonthlySales{Month: key, Total: decimal.Zero}
			byMonth[key] = m
		}
		m.SalesCount++
		m.Total = m.Total.Add(v.Total)
	}
	out := make([]repository.MonthlySales, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (r *ReportRepo) TopSalespeople(_ context.Context, since time.Time, limit uint64) ([]repository.SalespersonRanking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byEmp := map[int64]*repository.SalespersonRanking{}
	for _, v := range r.s.Sales {
		if v.Status == entity.SaleCancelled || v.SaleDate.Before(since) {
			continue
		}
		row, ok := byEmp[v.SalespersonID]
		if !ok {
			e := r.s.Employees[v.SalespersonID]
			row = &repository.SalespersonRanking{EmployeeID: v.SalespersonID, Name: e.DisplayName(), Total: decimal.Zero}
			byEmp[v.SalespersonID] = row
		}
		row.SalesCount++
		row.Total = row.Total.Add(v.Total)
	}
	out := make([]repository.SalespersonRanking, 0, len(byEmp))
	for _, row := range byEmp {
		row.AverageTicket = row.Total.Div(decimal.NewFromInt(int64(row.SalesCount))).Round(2)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	if limit > 0 && uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}
