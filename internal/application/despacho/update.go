package despacho

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dparedes/sial-api/internal/application/dto"
	"github.com/dparedes/sial-api/internal/domain/entity"
	"github.com/dparedes/sial-api/internal/domain/permiso"
)

// Actualizar persiste los campos de cabecera de un despacho existente.
// Los renglones se validan contra lo ya despachado pero no se reescriben.
func (uc *UseCase) Actualizar(ctx context.Context, sesion *entity.Sesion, servicio string, id int, in *dto.DespachoRequest) (*dto.DespachoResult, error) {
	if res := autorizar(sesion, permiso.SeccionDespachos(servicio), permiso.AccionActualizar); res != nil {
		return res, nil
	}
	if res := validarFormulario(in); res != nil {
		return res, nil
	}

	// La disponibilidad se reevalúa contra los seriales ya despachados: las
	// unidades de este despacho están en estado Despachado, no Disponible.
	for i := range in.Renglones {
		item := &in.Renglones[i]
		if item.ManualSelection {
			continue
		}
		seriales, err := uc.serialRepo.ListarPorRenglonYEstados(item.IDRenglon,
			[]string{entity.SerialDespachado}, item.Cantidad)
		if err != nil {
			return nil, err
		}
		if len(seriales) < item.Cantidad {
			faltan := &errSerialesInsuficientes{idRenglon: item.IDRenglon, cantidad: item.Cantidad}
			return dto.ResultadoError(dto.CodeSerialesInsuficientes, faltan.Error(), item.IDRenglon), nil
		}
	}

	existente, err := uc.despachoRepo.ObtenerPorID(id)
	if err != nil {
		return nil, err
	}
	if existente == nil {
		return dto.ResultadoError(dto.CodeNotFound, MsgDespachoNoExiste), nil
	}

	existente.CedulaDestinatario = in.CedulaDestinatario
	existente.CedulaAbastecedor = in.CedulaAbastecedor
	existente.CedulaSupervisor = opcional(in.CedulaSupervisor)
	existente.CedulaAutorizador = opcional(in.CedulaAutorizador)
	existente.Motivo = in.Motivo
	existente.MotivoFecha = opcional(in.MotivoFecha)
	existente.FechaDespacho = in.FechaDespacho
	existente.UltimaActualizacion = time.Now()

	if err := uc.despachoRepo.ActualizarCabecera(existente); err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Se actualizó el despacho en %s con el id %d", strings.ToLower(servicio), id)
	if in.MotivoFecha != "" {
		desc += fmt.Sprintf(", la fecha de creación fue: %s, la fecha de despacho: %s, motivo de la fecha: %s",
			existente.FechaCreacion.Format("02-01-2006 15:04"),
			in.FechaDespacho.Format("02-01-2006 15:04"),
			in.MotivoFecha)
	}
	uc.registrarAuditoria(sesion, permiso.AccionActualizar, desc)
	uc.cache.Invalidar(servicio)

	return dto.ResultadoOK(""), nil
}
