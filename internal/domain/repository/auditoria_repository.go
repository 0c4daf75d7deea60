package repository

import (
	"time"

	"github.com/dparedes/sial-api/internal/domain/entity"
)

// AuditoriaRepository define el puerto append-only del registro de auditoría.
type AuditoriaRepository interface {
	Crear(a *entity.Auditoria) error
	ListarPorRango(desde, hasta *time.Time, limit, offset int) ([]entity.Auditoria, error)
}
