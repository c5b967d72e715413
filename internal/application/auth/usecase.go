package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/micro-erp/internal/application/dto"
	"github.com/jhoicas/micro-erp/internal/domain"
	"github.com/jhoicas/micro-erp/internal/domain/entity"
	"github.com/jhoicas/micro-erp/internal/domain/repository"
	"github.com/jhoicas/micro-erp/pkg/jwt"
)

// LockoutConfig reglas de bloqueo por intentos fallidos.
type LockoutConfig struct {
	MaxAttempts int
	// Window 0 = el bloqueo solo se levanta a mano.
	Window time.Duration
}

// AuthUseCase casos de uso de autenticación: login con bloqueo, logout y validación de sesión.
type AuthUseCase struct {
	employeeRepo repository.EmployeeRepository
	sessionRepo  repository.SessionRepository
	signer       *jwt.Signer
	lockout      LockoutConfig
	now          func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. MaxAttempts <= 0 usa 5.
func NewAuthUseCase(
	employeeRepo repository.EmployeeRepository,
	sessionRepo repository.SessionRepository,
	signer *jwt.Signer,
	lockout LockoutConfig,
) *AuthUseCase {
	if lockout.MaxAttempts <= 0 {
		lockout.MaxAttempts = 5
	}
	return &AuthUseCase{
		employeeRepo: employeeRepo,
		sessionRepo:  sessionRepo,
		signer:       signer,
		lockout:      lockout,
		now:          time.Now,
	}
}

// Login verifica usuario/senha y emite el token de sesión.
// Usuario inexistente, inactivo, bloqueado o senha errada devuelven ErrInvalidCredentials
// sin distinguir el motivo; cada fallo suma un intento al usuario informado.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResult, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if uc.lockout.Window > 0 {
		if err := uc.employeeRepo.UnlockExpired(ctx, username, uc.now().Add(-uc.lockout.Window)); err != nil {
			return nil, fmt.Errorf("login: desbloqueo: %w", err)
		}
	}

	emp, err := uc.employeeRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("login: buscar colaborador: %w", err)
	}
	if emp == nil || !emp.Active || emp.Locked ||
		bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(in.Password)) != nil {
		if err := uc.employeeRepo.RegisterLoginFailure(ctx, username, uc.lockout.MaxAttempts); err != nil {
			return nil, fmt.Errorf("login: registrar fallo: %w", err)
		}
		return nil, domain.ErrInvalidCredentials
	}

	if err := uc.employeeRepo.RegisterLoginSuccess(ctx, emp.ID); err != nil {
		return nil, fmt.Errorf("login: registrar acceso: %w", err)
	}

	token, claims, err := uc.signer.Generate(jwt.Session{
		EmployeeID:  emp.ID,
		Name:        emp.DisplayName(),
		AccessLevel: string(emp.RoleAccessLevel),
		RoleName:    emp.RoleName,
	})
	if err != nil {
		return nil, fmt.Errorf("login: firmar token: %w", err)
	}
	return &dto.LoginResult{User: principalFrom(claims), Token: token}, nil
}

// Logout revoca el jti del token actual hasta su expiración.
func (uc *AuthUseCase) Logout(ctx context.Context, p *entity.Principal) error {
	if p == nil || p.TokenID == "" {
		return nil
	}
	return uc.sessionRepo.Revoke(ctx, p.TokenID, p.EmployeeID, p.ExpiresAt)
}

// Authenticate valida el token, que no haya sido revocado y que el colaborador siga
// activo y sin bloqueo. Nivel, cargo y nombre salen del registro actual, no del token.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.Principal, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	claims, err := uc.signer.Parse(token)
	if err != nil {
		return nil, errors.Join(domain.ErrUnauthorized, err)
	}
	revoked, err := uc.sessionRepo.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("auth: consultar revocación: %w", err)
	}
	if revoked {
		return nil, domain.ErrUnauthorized
	}
	emp, err := uc.employeeRepo.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("auth: buscar colaborador: %w", err)
	}
	if emp == nil || !emp.Active || emp.Locked {
		return nil, domain.ErrUnauthorized
	}
	p := principalFrom(claims)
	p.Name = emp.DisplayName()
	p.AccessLevel = emp.RoleAccessLevel
	p.RoleName = emp.RoleName
	return &p, nil
}

// PurgeRevoked limpia revocaciones de tokens ya expirados.
func (uc *AuthUseCase) PurgeRevoked(ctx context.Context) (int64, error) {
	return uc.sessionRepo.PurgeExpired(ctx, uc.now())
}

func principalFrom(c *jwt.Claims) entity.Principal {
	p := entity.Principal{
		EmployeeID:  c.EmployeeID,
		Name:        c.Name,
		AccessLevel: entity.AccessLevel(c.AccessLevel),
		RoleName:    c.RoleName,
		TokenID:     c.ID,
	}
	if c.ExpiresAt != nil {
		p.ExpiresAt = c.ExpiresAt.Time
	}
	return p
}
