package despacho

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dparedes/sial-api/internal/application/dto"
	"github.com/dparedes/sial-api/internal/domain"
	"github.com/dparedes/sial-api/internal/domain/entity"
)

// ListarPorServicio devuelve los despachos del servicio con sus relaciones,
// del más recientemente actualizado al más antiguo. Solo exige sesión; la
// lectura no tiene puerta de permiso. El resultado se sirve desde caché hasta
// la próxima mutación del servicio.
func (uc *UseCase) ListarPorServicio(ctx context.Context, sesion *entity.Sesion, servicio string) ([]dto.DespachoDetalleResponse, error) {
	if sesion == nil {
		return nil, domain.ErrUnauthorized
	}
	if cacheados, ok := uc.cache.Obtener(servicio); ok {
		return cacheados, nil
	}

	lista, err := uc.despachoRepo.ListarPorServicio(servicio)
	if err != nil {
		return nil, err
	}
	respuestas := make([]dto.DespachoDetalleResponse, 0, len(lista))
	for i := range lista {
		respuestas = append(respuestas, proyectarDetalle(&lista[i]))
	}
	uc.cache.Guardar(servicio, respuestas)
	return respuestas, nil
}

// ObtenerPorID devuelve el detalle de un despacho con la vista uniforme de
// seriales por renglón.
func (uc *UseCase) ObtenerPorID(ctx context.Context, sesion *entity.Sesion, id int) (*dto.DespachoDetalleResponse, error) {
	if sesion == nil {
		return nil, domain.ErrUnauthorized
	}
	detalle, err := uc.despachoRepo.ObtenerDetalle(id)
	if err != nil {
		return nil, err
	}
	if detalle == nil {
		return nil, domain.ErrDespachoNotFound
	}
	resp := proyectarDetalle(detalle)
	return &resp, nil
}

// proyectarDetalle normaliza los seriales de cada renglón a la vista
// "serial con peso", sin importar el modo de seguimiento. Para renglones
// líquidos el peso despachado sale de la tabla intermedia y el peso actual
// del serial; para discretos ambos pesos quedan en cero.
func proyectarDetalle(d *entity.DespachoDetalle) dto.DespachoDetalleResponse {
	renglones := make([]dto.RenglonDetalleResponse, 0, len(d.Renglones))
	for i := range d.Renglones {
		r := &d.Renglones[i]
		renglones = append(renglones, dto.RenglonDetalleResponse{
			DespachoRenglon: r.DespachoRenglon,
			Renglon:         r.Renglon,
			UnidadEmpaque:   r.UnidadEmpaque,
			Seriales:        proyectarSeriales(r),
		})
	}
	return dto.DespachoDetalleResponse{
		Despacho:     d.Despacho,
		Destinatario: d.Destinatario,
		Abastecedor:  d.Abastecedor,
		Supervisor:   d.Supervisor,
		Autorizador:  d.Autorizador,
		Renglones:    renglones,
	}
}

func proyectarSeriales(r *entity.RenglonDespachado) []entity.SerialPeso {
	if r.EsDespachoLiquidos {
		seriales := make([]entity.SerialPeso, 0, len(r.SerialesLiquidos))
		for _, s := range r.SerialesLiquidos {
			seriales = append(seriales, entity.SerialPeso{
				ID:             s.IDSerial,
				Serial:         s.Serial,
				IDRenglon:      r.IDRenglon,
				PesoDespachado: s.PesoDespachado,
				PesoActual:     s.PesoActual,
			})
		}
		return seriales
	}
	seriales := make([]entity.SerialPeso, 0, len(r.Seriales))
	for _, s := range r.Seriales {
		seriales = append(seriales, entity.SerialPeso{
			ID:             0,
			Serial:         s.Serial,
			IDRenglon:      r.IDRenglon,
			PesoDespachado: decimal.Zero,
			PesoActual:     decimal.Zero,
		})
	}
	return seriales
}
