package auth

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
	"github.com/jhoicas/micro-erp/pkg/jwt"
)

func newAuthFixture(t *testing.T, lockout LockoutConfig) (*AuthUseCase, *memrepo.Store, int64) {
	t.Helper()
	ctx := context.Background()
	store := memrepo.New()
	role := &entity.Role{Name: "Gerente", AccessLevel: entity.LevelGerente, Active: true}
	require.NoError(t, store.RoleRepo().Create(ctx, role))

	hash, err := bcrypt.GenerateFromPassword([]byte("s3nh4-forte"), bcrypt.MinCost)
	require.NoError(t, err)
	emp := &entity.Employee{
		FirstName: "Carla", LastName: "Lima", CPF: "52998224725",
		RoleID: role.ID, Username: "carla", PasswordHash: string(hash), Active: true,
	}
	require.NoError(t, store.EmployeeRepo().Create(ctx, emp))

	signer, err := jwt.NewSigner("secreto-de-prueba", "micro-erp", 30)
	require.NoError(t, err)
	return NewAuthUseCase(store.EmployeeRepo(), store.SessionRepo(), signer, lockout), store, emp.ID
}

// ─── Login ───────────────────────────────────────────────────────────────────

func TestLogin_Exitoso(t *testing.T) {
	uc, store, id := newAuthFixture(t, LockoutConfig{})

	res, err := uc.Login(context.Background(), dto.LoginRequest{Username: "carla", Password: "s3nh4-forte"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, id, res.User.EmployeeID)
	assert.Equal(t, "Carla Lima", res.User.Name)
	assert.Equal(t, entity.LevelGerente, res.User.AccessLevel)
	assert.Equal(t, "Gerente", res.User.RoleName)
	assert.NotNil(t, store.Employees[id].LastAccess)
}

func TestLogin_SenhaErradaCuentaIntento(t *testing.T) {
	uc, store, id := newAuthFixture(t, LockoutConfig{})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "carla", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, 1, store.Employees[id].FailedLoginAttempts)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "carla", Password: "s3nh4-forte"})
	require.NoError(t, err)
	assert.Equal(t, 0, store.Employees[id].FailedLoginAttempts)
}

func TestLogin_CincoFallosBloquean(t *testing.T) {
	uc, store, id := newAuthFixture(t, LockoutConfig{MaxAttempts: 5})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := uc.Login(ctx, dto.LoginRequest{Username: "carla", Password: "errada"})
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}
	assert.True(t, store.Employees[id].Locked)

	// la senha correcta ya no entra
	_, err := uc.Login(ctx, dto.LoginRequest{Username: "carla", Password: "s3nh4-forte"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.True(t, store.Employees[id].Locked)
}

func TestLogin_BloqueoExpiraConVentana(t *testing.T) {
	uc, store, id := newAuthFixture(t, LockoutConfig{MaxAttempts: 2, Window: 15 * time.Minute})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, _ = uc.Login(ctx, dto.LoginRequest{Username: "carla", Password: "errada"})
	}
	require.True(t, store.Employees[id].Locked)

	uc.now = func() time.Time { return time.Now().Add(20 * time.Minute) }
	_, err := uc.Login(ctx, dto.LoginRequest{Username: "carla", Password: "s3nh4-forte"})
	require.NoError(t, err)
	assert.False(t, store.Employees[id].Locked)
}

func TestLogin_InactivoOInexistente(t *testing.T) {
	uc, store, id := newAuthFixture(t, LockoutConfig{})
	e := store.Employees[id]
	e.Active = false
	store.Employees[id] = e

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "carla", Password: "s3nh4-forte"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// ─── Sesión ──────────────────────────────────────────────────────────────────

func TestAuthenticate_YLogoutRevoca(t *testing.T) {
	uc, _, id := newAuthFixture(t, LockoutConfig{})
	ctx := context.Background()

	res, err := uc.Login(ctx, dto.LoginRequest{Username: "carla", Password: "s3nh4-forte"})
	require.NoError(t, err)

	p, err := uc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, id, p.EmployeeID)
	assert.NotEmpty(t, p.TokenID)

	require.NoError(t, uc.Logout(ctx, p))
	_, err = uc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthenticate_ReflejaElEstadoActualDelColaborador(t *testing.T) {
	uc, store, id := newAuthFixture(t, LockoutConfig{})
	ctx := context.Background()
	res, err := uc.Login(ctx, dto.LoginRequest{Username: "carla", Password: "s3nh4-forte"})
	require.NoError(t, err)

	roleID := store.Employees[id].RoleID
	role := store.Roles[roleID]
	role.AccessLevel, role.Name = entity.LevelVendedor, "Vendedor"
	store.Roles[roleID] = role

	p, err := uc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.LevelVendedor, p.AccessLevel)
	assert.Equal(t, "Vendedor", p.RoleName)

	emp := store.Employees[id]
	emp.Locked = true
	store.Employees[id] = emp
	_, err = uc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	emp.Locked, emp.Active = false, false
	store.Employees[id] = emp
	_, err = uc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	delete(store.Employees, id)
	_, err = uc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthenticate_TokenInvalido(t *testing.T) {
	uc, _, _ := newAuthFixture(t, LockoutConfig{})

	_, err := uc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Authenticate(context.Background(), "no.es.jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPurgeRevoked(t *testing.T) {
	uc, store, _ := newAuthFixture(t, LockoutConfig{})
	store.Revoked["viejo"] = time.Now().Add(-time.Hour)
	store.Revoked["vigente"] = time.Now().Add(time.Hour)

	n, err := uc.PurgeRevoked(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Contains(t, store.Revoked, "vigente")
}
