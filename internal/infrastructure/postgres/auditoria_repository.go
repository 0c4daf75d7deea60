package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dparedes/sial-api/internal/domain/entity"
	"github.com/dparedes/sial-api/internal/domain/repository"
)

var _ repository.AuditoriaRepository = (*AuditoriaRepo)(nil)

// AuditoriaRepo implementación append-only de AuditoriaRepository sobre PostgreSQL.
type AuditoriaRepo struct {
	q Querier
}

// NewAuditoriaRepository construye el adaptador de auditoría. Pasar pool o tx (Querier).
func NewAuditoriaRepository(q Querier) *AuditoriaRepo {
	return &AuditoriaRepo{q: q}
}

// Crear persiste una entrada del historial.
func (r *AuditoriaRepo) Crear(a *entity.Auditoria) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO auditoria (id, cedula_usuario, accion, descripcion, fecha)
		VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.CedulaUsuario, a.Accion, a.Descripcion, a.Fecha)
	if err != nil {
		return fmt.Errorf("insert auditoría: %w", err)
	}
	return nil
}

// ListarPorRango devuelve entradas del historial, las más recientes primero.
// desde/hasta en nil no filtran.
func (r *AuditoriaRepo) ListarPorRango(desde, hasta *time.Time, limit, offset int) ([]entity.Auditoria, error) {
	query := `
		SELECT id, cedula_usuario, accion, descripcion, fecha
		FROM auditoria
		WHERE ($1::timestamptz IS NULL OR fecha >= $1)
		  AND ($2::timestamptz IS NULL OR fecha <= $2)
		ORDER BY fecha DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, desde, hasta, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar auditoría: %w", err)
	}
	defer rows.Close()

	var out []entity.Auditoria
	for rows.Next() {
		var a entity.Auditoria
		if err := rows.Scan(&a.ID, &a.CedulaUsuario, &a.Accion, &a.Descripcion, &a.Fecha); err != nil {
			return nil, fmt.Errorf("scan auditoría: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
