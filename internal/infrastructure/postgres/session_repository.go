package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/micro-erp/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo revocaciones de tokens en sessoes_revogadas.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador.
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// Revoke es idempotente: revocar dos veces el mismo jti no falla.
func (r *SessionRepo) Revoke(ctx context.Context, jti string, employeeID int64, expiresAt time.Time) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sessoes_revogadas (jti, colaborador_id, expira_em) VALUES ($1, $2, $3)
		ON CONFLICT (jti) DO NOTHING`, jti, employeeID, expiresAt)
	if err != nil {
		return fmt.Errorf("revogar sessao: %w", err)
	}
	return nil
}

func (r *SessionRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var revoked bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sessoes_revogadas WHERE jti = $1)`, jti).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("consultar sessao revogada: %w", err)
	}
	return revoked, nil
}

func (r *SessionRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM sessoes_revogadas WHERE expira_em < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("limpar sessoes revogadas: %w", err)
	}
	return tag.RowsAffected(), nil
}
