package despacho

import (
	"context"
	"fmt"
	"strings"

	"github.com/dparedes/sial-api/internal/application/dto"
	"github.com/dparedes/sial-api/internal/domain/entity"
	"github.com/dparedes/sial-api/internal/domain/permiso"
	"github.com/dparedes/sial-api/internal/domain/repository"
)

// Recuperar revierte una eliminación suave: limpia la marca de la cabecera,
// regresa los seriales atados a Despachado y reincrementa el stock.
// Comparte la puerta de permiso ELIMINAR con la eliminación; no existe una
// acción RECUPERAR separada. Recuperar un despacho que no está eliminado
// vuelve a aplicar las mutaciones de seriales y stock.
func (uc *UseCase) Recuperar(ctx context.Context, sesion *entity.Sesion, servicio string, id int) (*dto.DespachoResult, error) {
	if res := autorizar(sesion, permiso.SeccionDespachos(servicio), permiso.AccionEliminar); res != nil {
		return res, nil
	}

	detalle, err := uc.despachoRepo.ObtenerDetalle(id)
	if err != nil {
		return nil, err
	}
	if detalle == nil {
		return dto.ResultadoError(dto.CodeNotFound, MsgDespachoNoExiste), nil
	}

	err = uc.txRunner.Run(ctx, func(
		despachoRepo repository.DespachoRepository,
		serialRepo repository.SerialRepository,
		renglonRepo repository.RenglonRepository,
	) error {
		if err := despachoRepo.LimpiarFechaEliminacion(id); err != nil {
			return err
		}
		if err := serialRepo.ActualizarEstado(serialesAtados(detalle), entity.SerialDespachado); err != nil {
			return err
		}
		for i := range detalle.Renglones {
			r := &detalle.Renglones[i]
			if err := renglonRepo.IncrementarStock(r.IDRenglon, cantidadDe(r)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.registrarAuditoria(sesion, permiso.AccionRecuperar,
		fmt.Sprintf("Se recuperó el despacho en %s con el id: %d", strings.ToLower(servicio), id))
	uc.cache.Invalidar(servicio)

	return dto.ResultadoOK("Despacho recuperado exitosamente"), nil
}
