package despacho

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dparedes/sial-api/internal/application/dto"
	"github.com/dparedes/sial-api/internal/domain/entity"
	"github.com/dparedes/sial-api/internal/domain/permiso"
	"github.com/dparedes/sial-api/internal/domain/repository"
)

// serialesAtados reúne los ids de los seriales discretos retenidos por el despacho.
func serialesAtados(detalle *entity.DespachoDetalle) []int {
	var ids []int
	for _, r := range detalle.Renglones {
		ids = append(ids, idsDe(r.Seriales)...)
	}
	return ids
}

// cantidadDe aplica la regla de cantidad de una línea: con selección manual
// cuenta los seriales atados, sin ella usa la cantidad almacenada.
func cantidadDe(r *entity.RenglonDespachado) int {
	if r.ManualSelection {
		return len(r.Seriales)
	}
	return r.Cantidad
}

// Eliminar marca el despacho como eliminado (eliminación suave de la cabecera),
// libera sus seriales y ajusta el stock. El FK serial→línea se conserva para
// que Recuperar pueda revertir exactamente las mismas unidades.
func (uc *UseCase) Eliminar(ctx context.Context, sesion *entity.Sesion, servicio string, id int) (*dto.DespachoResult, error) {
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
		if err := despachoRepo.Eliminar(id); err != nil {
			return err
		}
		if err := serialRepo.ActualizarEstado(serialesAtados(detalle), entity.SerialDisponible); err != nil {
			return err
		}
		for i := range detalle.Renglones {
			r := &detalle.Renglones[i]
			// TODO: el ajuste va en la misma dirección que la creación; al
			// eliminar debería incrementarse, como hace Recuperar. Corregir
			// junto con una migración que reconcilie stock_actual.
			if err := renglonRepo.DescontarStock(r.IDRenglon, cantidadDe(r)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.registrarAuditoria(sesion, permiso.AccionEliminar,
		fmt.Sprintf("Se eliminó el despacho en %s con el id: %d", strings.ToLower(servicio), id))
	uc.cache.Invalidar(servicio)

	return dto.ResultadoOK("Despacho eliminado exitosamente"), nil
}

// EliminarVarios borra definitivamente un lote de despachos de abastecimiento.
// No hay reconciliación de seriales ni de stock en este camino: es la purga
// administrativa de despachos ya dados de baja.
func (uc *UseCase) EliminarVarios(ctx context.Context, sesion *entity.Sesion, ids []int) (*dto.DespachoResult, error) {
	if res := autorizar(sesion, permiso.SeccionDespachosAbastecimiento, permiso.AccionEliminar); res != nil {
		return res, nil
	}
	if len(ids) == 0 {
		return dto.ResultadoError(dto.CodeValidation, MsgCamposFaltantes), nil
	}

	if err := uc.despachoRepo.EliminarVarios(ids); err != nil {
		return nil, err
	}

	etiquetas := make([]string, 0, len(ids))
	for _, id := range ids {
		etiquetas = append(etiquetas, strconv.Itoa(id))
	}
	uc.registrarAuditoria(sesion, permiso.AccionEliminar,
		fmt.Sprintf("Se han eliminado despachos en abastecimiento con los siguientes ids: %s",
			strings.Join(etiquetas, ",")))
	uc.cache.Invalidar(entity.ServicioAbastecimiento)

	return dto.ResultadoOK("Se han eliminado los despachos correctamente"), nil
}
