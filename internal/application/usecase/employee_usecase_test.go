package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/domain"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/testutil/memrepo"
)

func newEmployeeFixture(t *testing.T) (*EmployeeUseCase, *memrepo.Store, int64) {
	t.Helper()
	store := memrepo.New()
	role := &entity.Role{Name: "Vendedor", AccessLevel: entity.LevelVendedor, Active: true}
	require.NoError(t, store.RoleRepo().Create(context.Background(), role))
	uc := NewEmployeeUseCase(store.EmployeeRepo(), store.RoleRepo())
	uc.hashCost = bcrypt.MinCost
	return uc, store, role.ID
}

func employeeRequest(roleID int64) dto.EmployeeRequest {
	email := "ana@empresa.com.br"
	return dto.EmployeeRequest{
		FirstName: "Ana",
		LastName:  "Souza",
		BirthDate: &entity.Date{Time: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)},
		CPF:       "529.982.247-25",
		Email:     &email,
		RoleID:    roleID,
		Username:  "ana",
		Password:  "segredo",
	}
}

func TestEmployeeUseCase_CreateHasheaYNormalizaCPF(t *testing.T) {
	uc, store, roleID := newEmployeeFixture(t)

	emp, err := uc.Create(context.Background(), employeeRequest(roleID))
	require.NoError(t, err)

	saved := store.Employees[emp.ID]
	assert.Equal(t, "52998224725", saved.CPF)
	assert.True(t, saved.Active)
	assert.NotEqual(t, "segredo", saved.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("segredo")))
}

func TestEmployeeUseCase_Validacion(t *testing.T) {
	uc, _, roleID := newEmployeeFixture(t)

	in := employeeRequest(roleID)
	in.CPF = "529.982.247-26"
	bad := "sem-arroba"
	in.Email = &bad
	in.Password = ""
	_, err := uc.Create(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "CPF inválido")
	assert.Contains(t, err.Error(), "Email inválido")
	assert.Contains(t, err.Error(), "Senha é obrigatória")
}

func TestEmployeeUseCase_Duplicados(t *testing.T) {
	uc, _, roleID := newEmployeeFixture(t)
	_, err := uc.Create(context.Background(), employeeRequest(roleID))
	require.NoError(t, err)

	in := employeeRequest(roleID)
	in.Username = "outra"
	_, err = uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, err.Error(), "CPF já cadastrado")
}

func TestEmployeeUseCase_CargoInexistente(t *testing.T) {
	uc, _, _ := newEmployeeFixture(t)
	_, err := uc.Create(context.Background(), employeeRequest(4242))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmployeeUseCase_UpdateSinSenhaConservaHash(t *testing.T) {
	uc, store, roleID := newEmployeeFixture(t)
	emp, err := uc.Create(context.Background(), employeeRequest(roleID))
	require.NoError(t, err)
	before := store.Employees[emp.ID].PasswordHash

	in := employeeRequest(roleID)
	in.Password = ""
	in.LastName = "Pereira"
	_, err = uc.Update(context.Background(), emp.ID, in)
	require.NoError(t, err)
	assert.Equal(t, before, store.Employees[emp.ID].PasswordHash)
	assert.Equal(t, "Pereira", store.Employees[emp.ID].LastName)

	in.Password = "nova-senha"
	_, err = uc.Update(context.Background(), emp.ID, in)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.Employees[emp.ID].PasswordHash), []byte("nova-senha")))
}

func TestEmployeeUseCase_DeleteSoftOHard(t *testing.T) {
	uc, store, roleID := newEmployeeFixture(t)
	ctx := context.Background()

	withSales, err := uc.Create(ctx, employeeRequest(roleID))
	require.NoError(t, err)
	store.Sales[500] = entity.Sale{ID: 500, SalespersonID: withSales.ID}

	res, err := uc.Delete(ctx, withSales.ID)
	require.NoError(t, err)
	assert.True(t, res.Deactivated)
	assert.Equal(t, "Colaborador inativado (possui vendas cadastradas)", res.Message)
	assert.False(t, store.Employees[withSales.ID].Active)

	in := employeeRequest(roleID)
	in.CPF, in.Username = "111.444.777-35", "bia"
	noSales, err := uc.Create(ctx, in)
	require.NoError(t, err)

	res, err = uc.Delete(ctx, noSales.ID)
	require.NoError(t, err)
	assert.False(t, res.Deactivated)
	assert.NotContains(t, store.Employees, noSales.ID)
}

func TestEmployeeUseCase_Unlock(t *testing.T) {
	uc, store, roleID := newEmployeeFixture(t)
	emp, err := uc.Create(context.Background(), employeeRequest(roleID))
	require.NoError(t, err)
	e := store.Employees[emp.ID]
	e.Locked, e.FailedLoginAttempts = true, 5
	store.Employees[emp.ID] = e

	require.NoError(t, uc.Unlock(context.Background(), emp.ID))
	assert.False(t, store.Employees[emp.ID].Locked)
	assert.Zero(t, store.Employees[emp.ID].FailedLoginAttempts)
}
