package memrepo

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/micro-erp/internal/domain"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
	"github.com/jhoicas/micro-erp/pkg/taxid"
)

// ── Cargos ───────────────────────────────────────────────────────────────────

type RoleRepo struct{ s *Store }

func (s *Store) RoleRepo() *RoleRepo { return &RoleRepo{s: s} }

var _ repository.RoleRepository = (*RoleRepo)(nil)

func (r *RoleRepo) List(_ context.Context, f repository.RoleFilter) ([]entity.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Role{}
	for _, id := range sortedIDs(r.s.Roles) {
		role := r.s.Roles[id]
		if f.Active != nil && role.Active != *f.Active {
			continue
		}
		out = append(out, role)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *RoleRepo) GetByID(_ context.Context, id int64) (*entity.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	role, ok := r.s.Roles[id]
	if !ok {
		return nil, nil
	}
	return &role, nil
}

func (r *RoleRepo) Create(_ context.Context, role *entity.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("RoleRepo.Create"); err != nil {
		return err
	}
	role.ID = r.s.nextID()
	role.CreatedAt, role.UpdatedAt = time.Now(), time.Now()
	r.s.Roles[role.ID] = *role
	return nil
}

func (r *RoleRepo) Update(_ context.Context, role *entity.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Roles[role.ID]; !ok {
		return notFound("Cargo não encontrado")
	}
	r.s.Roles[role.ID] = *role
	return nil
}

func (r *RoleRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Roles[id]; !ok {
		return notFound("Cargo não encontrado")
	}
	delete(r.s.Roles, id)
	return nil
}

func (r *RoleRepo) CountEmployees(_ context.Context, roleID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, e := range r.s.Employees {
		if e.RoleID == roleID {
			n++
		}
	}
	return n, nil
}

// ── Colaboradores ────────────────────────────────────────────────────────────

type EmployeeRepo struct{ s *Store }

func (s *Store) EmployeeRepo() *EmployeeRepo { return &EmployeeRepo{s: s} }

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

func (r *EmployeeRepo) withRole(e entity.Employee) entity.Employee {
	if role, ok := r.s.Roles[e.RoleID]; ok {
		e.RoleName = role.Name
		e.RoleAccessLevel = role.AccessLevel
	}
	return e
}

func (r *EmployeeRepo) List(_ context.Context, f repository.EmployeeFilter) ([]entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Employee{}
	for _, id := range sortedIDs(r.s.Employees) {
		e := r.s.Employees[id]
		if f.Active != nil && e.Active != *f.Active {
			continue
		}
		if f.RoleID != nil && e.RoleID != *f.RoleID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(e.DisplayName()+" "+e.Username), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, r.withRole(e))
	}
	return out, nil
}

func (r *EmployeeRepo) GetByID(_ context.Context, id int64) (*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.Employees[id]
	if !ok {
		return nil, nil
	}
	e = r.withRole(e)
	return &e, nil
}

func (r *EmployeeRepo) GetByUsername(_ context.Context, username string) (*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.Employees {
		if e.Username == username {
			e = r.withRole(e)
			return &e, nil
		}
	}
	return nil, nil
}

func (r *EmployeeRepo) checkUnique(e *entity.Employee) error {
	for id, other := range r.s.Employees {
		if id == e.ID {
			continue
		}
		if taxid.Digits(other.CPF) == taxid.Digits(e.CPF) {
			return &domain.DuplicateError{Field: "cpf", Message: "CPF já cadastrado"}
		}
		if other.Username == e.Username {
			return &domain.DuplicateError{Field: "usuario", Message: "Usuário já cadastrado"}
		}
	}
	if _, ok := r.s.Roles[e.RoleID]; !ok {
		return notFound("Cargo não encontrado")
	}
	return nil
}

func (r *EmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkUnique(e); err != nil {
		return err
	}
	e.ID = r.s.nextID()
	e.CreatedAt, e.UpdatedAt = time.Now(), time.Now()
	r.s.Employees[e.ID] = *e
	return nil
}

func (r *EmployeeRepo) Update(_ context.Context, e *entity.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.Employees[e.ID]
	if !ok {
		return notFound("Colaborador não encontrado")
	}
	if err := r.checkUnique(e); err != nil {
		return err
	}
	upd := *e
	upd.PasswordHash = cur.PasswordHash
	upd.Locked, upd.LockedAt, upd.FailedLoginAttempts = cur.Locked, cur.LockedAt, cur.FailedLoginAttempts
	r.s.Employees[e.ID] = upd
	return nil
}

func (r *EmployeeRepo) mutate(id int64, fn func(e *entity.Employee)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.Employees[id]
	if !ok {
		return notFound("Colaborador não encontrado")
	}
	fn(&e)
	r.s.Employees[id] = e
	return nil
}

func (r *EmployeeRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	return r.mutate(id, func(e *entity.Employee) { e.PasswordHash = hash })
}

func (r *EmployeeRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Employees[id]; !ok {
		return notFound("Colaborador não encontrado")
	}
	delete(r.s.Employees, id)
	return nil
}

func (r *EmployeeRepo) Deactivate(_ context.Context, id int64) error {
	return r.mutate(id, func(e *entity.Employee) { e.Active = false })
}

func (r *EmployeeRepo) CountSales(_ context.Context, id int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, s := range r.s.Sales {
		if s.SalespersonID == id {
			n++
		}
	}
	return n, nil
}

func (r *EmployeeRepo) RegisterLoginSuccess(_ context.Context, id int64) error {
	now := time.Now()
	return r.mutate(id, func(e *entity.Employee) {
		e.FailedLoginAttempts = 0
		e.LastAccess = &now
	})
}

func (r *EmployeeRepo) RegisterLoginFailure(_ context.Context, username string, maxAttempts int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, e := range r.s.Employees {
		if e.Username != username {
			continue
		}
		e.FailedLoginAttempts++
		if !e.Locked && e.FailedLoginAttempts >= maxAttempts {
			now := time.Now()
			e.Locked, e.LockedAt = true, &now
		}
		r.s.Employees[id] = e
	}
	return nil
}

func (r *EmployeeRepo) UnlockExpired(_ context.Context, username string, lockedBefore time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, e := range r.s.Employees {
		if e.Username == username && e.Locked && e.LockedAt != nil && e.LockedAt.Before(lockedBefore) {
			e.Locked, e.LockedAt, e.FailedLoginAttempts = false, nil, 0
			r.s.Employees[id] = e
		}
	}
	return nil
}

func (r *EmployeeRepo) Unlock(_ context.Context, id int64) error {
	return r.mutate(id, func(e *entity.Employee) {
		e.Locked, e.LockedAt, e.FailedLoginAttempts = false, nil, 0
	})
}

// ── Categorías ───────────────────────────────────────────────────────────────

type CategoryRepo struct{ s *Store }

func (s *Store) CategoryRepo() *CategoryRepo { return &CategoryRepo{s: s} }

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

func (r *CategoryRepo) List(_ context.Context, onlyActive bool) ([]entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Category{}
	for _, id := range sortedIDs(r.s.Categories) {
		if c := r.s.Categories[id]; !onlyActive || c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.Categories {
		if strings.EqualFold(other.Name, c.Name) {
			return &domain.DuplicateError{Field: "nome", Message: "Categoria já cadastrada"}
		}
	}
	c.ID = r.s.nextID()
	c.CreatedAt = time.Now()
	r.s.Categories[c.ID] = *c
	return nil
}

// ── Clientes ─────────────────────────────────────────────────────────────────

type CustomerRepo struct{ s *Store }

func (s *Store) CustomerRepo() *CustomerRepo { return &CustomerRepo{s: s} }

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

func (r *CustomerRepo) List(_ context.Context, f repository.CustomerFilter) ([]entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Customer{}
	for _, id := range sortedIDs(r.s.Customers) {
		c := r.s.Customers[id]
		if f.Active != nil && c.Active != *f.Active {
			continue
		}
		if f.PersonType != "" && c.PersonType != f.PersonType {
			continue
		}
		if f.Search != "" && !(contains(c.FirstName, f.Search) || contains(c.LastName, f.Search) ||
			contains(c.LegalName, f.Search) || contains(c.CPF, f.Search) || contains(c.CNPJ, f.Search)) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *CustomerRepo) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.Customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CustomerRepo) checkUnique(c *entity.Customer) error {
	for id, other := range r.s.Customers {
		if id == c.ID {
			continue
		}
		if c.CPF != nil && other.CPF != nil && *c.CPF == *other.CPF {
			return &domain.DuplicateError{Field: "cpf", Message: "CPF já cadastrado"}
		}
		if c.CNPJ != nil && other.CNPJ != nil && *c.CNPJ == *other.CNPJ {
			return &domain.DuplicateError{Field: "cnpj", Message: "CNPJ já cadastrado"}
		}
	}
	return nil
}

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkUnique(c); err != nil {
		return err
	}
	c.ID = r.s.nextID()
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	r.s.Customers[c.ID] = *c
	return nil
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Customers[c.ID]; !ok {
		return notFound("Cliente não encontrado")
	}
	if err := r.checkUnique(c); err != nil {
		return err
	}
	r.s.Customers[c.ID] = *c
	return nil
}

func (r *CustomerRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.Customers[id]; !ok {
		return notFound("Cliente não encontrado")
	}
	delete(r.s.Customers, id)
	return nil
}

func (r *CustomerRepo) Deactivate(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.Customers[id]
	if !ok {
		return notFound("Cliente não encontrado")
	}
	c.Active = false
	r.s.Customers[id] = c
	return nil
}

func (r *CustomerRepo) CountSales(_ context.Context, id int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, s := range r.s.Sales {
		if s.CustomerID == id {
			n++
		}
	}
	return n, nil
}
