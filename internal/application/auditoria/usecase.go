package auditoria

import (
	"time"

	"github.com/google/uuid"

	"github.com/dparedes/sial-api/internal/domain"
	"github.com/dparedes/sial-api/internal/domain/entity"
	"github.com/dparedes/sial-api/internal/domain/repository"
)

// UseCase registra y consulta el historial de auditoría.
// Satisface el puerto Auditor del flujo de despachos.
type UseCase struct {
	repo repository.AuditoriaRepository
}

// NewUseCase construye el caso de uso de auditoría.
func NewUseCase(repo repository.AuditoriaRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Registrar persiste una entrada del historial con id y fecha propios.
func (uc *UseCase) Registrar(cedulaUsuario, accion, descripcion string) error {
	return uc.repo.Crear(&entity.Auditoria{
		ID:            uuid.New().String(),
		CedulaUsuario: cedulaUsuario,
		Accion:        accion,
		Descripcion:   descripcion,
		Fecha:         time.Now(),
	})
}

// ListarPorRango devuelve entradas del historial, las más recientes primero.
// desde/hasta acotan el rango; en nil no filtran.
func (uc *UseCase) ListarPorRango(sesion *entity.Sesion, desde, hasta *time.Time, limit, offset int) ([]entity.Auditoria, error) {
	if sesion == nil {
		return nil, domain.ErrUnauthorized
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.ListarPorRango(desde, hasta, limit, offset)
}
