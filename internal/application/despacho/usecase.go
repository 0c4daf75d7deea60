package despacho

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dparedes/sial-api/internal/application/dto"
	"github.com/dparedes/sial-api/internal/domain/entity"
	"github.com/dparedes/sial-api/internal/domain/permiso"
	"github.com/dparedes/sial-api/internal/domain/repository"
	"github.com/dparedes/sial-api/pkg/logger"
)

// Mensajes que consume el formulario del cliente tal cual.
const (
	MsgSinSesion          = "Debes iniciar sesión para realizar esta acción"
	MsgSinPermisos        = "No tienes permisos para realizar esta acción"
	MsgCamposFaltantes    = "Missing Fields"
	MsgSinRenglones       = "No se han seleccionado renglones"
	MsgRenglonesInvalidos = "Revisa que todos los renglones esten correctamente"
	MsgDespachoNoExiste   = "Despacho no existe"
)

// errSerialesInsuficientes se propaga desde dentro de la transacción cuando la
// asignación automática no alcanza la cantidad pedida; revierte todo el despacho.
type errSerialesInsuficientes struct {
	idRenglon int
	cantidad  int
}

func (e *errSerialesInsuficientes) Error() string {
	return fmt.Sprintf("No hay suficientes seriales en el renglon%d  Cantidad a despachar:%d", e.idRenglon, e.cantidad)
}

// UseCase orquesta el ciclo de vida de los despachos: creación, actualización,
// eliminación, recuperación, lecturas y guía de exportación.
type UseCase struct {
	txRunner     TxRunner
	despachoRepo repository.DespachoRepository
	serialRepo   repository.SerialRepository
	auditor      Auditor
	cache        ListadoCache
	pdfGen       GuiaPDFGenerator
	log          *logger.Logger
}

// NewUseCase construye el caso de uso de despachos.
func NewUseCase(
	txRunner TxRunner,
	despachoRepo repository.DespachoRepository,
	serialRepo repository.SerialRepository,
	auditor Auditor,
	cache ListadoCache,
	pdfGen GuiaPDFGenerator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		despachoRepo: despachoRepo,
		serialRepo:   serialRepo,
		auditor:      auditor,
		cache:        cache,
		pdfGen:       pdfGen,
		log:          log,
	}
}

// autorizar valida sesión y permiso en ese orden. Devuelve nil si puede continuar.
func autorizar(sesion *entity.Sesion, seccion, accion string) *dto.DespachoResult {
	if sesion == nil {
		return dto.ResultadoError(dto.CodeUnauthenticated, MsgSinSesion)
	}
	if !permiso.Validar(sesion.Permisos, seccion, accion) {
		return dto.ResultadoError(dto.CodeForbidden, MsgSinPermisos)
	}
	return nil
}

// validarFormulario aplica las reglas de forma del cuerpo del despacho.
// El orden de los chequeos determina qué error ve primero el operador.
func validarFormulario(in *dto.DespachoRequest) *dto.DespachoResult {
	if in.Motivo == "" || in.CedulaDestinatario == "" || in.CedulaAbastecedor == "" ||
		in.FechaDespacho.IsZero() || in.Renglones == nil {
		return dto.ResultadoError(dto.CodeValidation, MsgCamposFaltantes)
	}
	if len(in.Renglones) == 0 {
		return dto.ResultadoError(dto.CodeValidation, MsgSinRenglones)
	}
	var invalidos []int
	for _, r := range in.Renglones {
		if r.ManualSelection && len(r.Seriales) == 0 {
			invalidos = append(invalidos, r.IDRenglon)
		}
	}
	if len(invalidos) > 0 {
		return dto.ResultadoError(dto.CodeValidation, MsgRenglonesInvalidos, invalidos...)
	}
	return nil
}

// resolverManuales convierte la selección manual del formulario en seriales con
// id resuelto. Los ids en cero se buscan por la cadena serial dentro del renglón.
func resolverManuales(serialRepo repository.SerialRepository, item *dto.RenglonDespachoRequest) ([]entity.Serial, error) {
	resueltos := make([]entity.Serial, 0, len(item.Seriales))
	var pendientes []string
	for _, s := range item.Seriales {
		if s.ID > 0 {
			resueltos = append(resueltos, entity.Serial{ID: s.ID, Serial: s.Serial, IDRenglon: item.IDRenglon})
			continue
		}
		pendientes = append(pendientes, s.Serial)
	}
	if len(pendientes) > 0 {
		encontrados, err := serialRepo.BuscarPorSeriales(item.IDRenglon, pendientes)
		if err != nil {
			return nil, err
		}
		if len(encontrados) != len(pendientes) {
			return nil, fmt.Errorf("seriales no encontrados en el renglón %d: pedidos %d, hallados %d",
				item.IDRenglon, len(pendientes), len(encontrados))
		}
		resueltos = append(resueltos, encontrados...)
	}
	return resueltos, nil
}

// pesosPorSerial indexa el peso a despachar por cadena serial para renglones líquidos.
func pesosPorSerial(item *dto.RenglonDespachoRequest) map[string]decimal.Decimal {
	pesos := make(map[string]decimal.Decimal, len(item.Seriales))
	for _, s := range item.Seriales {
		pesos[s.Serial] = s.PesoDespachado
	}
	return pesos
}

func idsDe(seriales []entity.Serial) []int {
	ids := make([]int, 0, len(seriales))
	for _, s := range seriales {
		ids = append(ids, s.ID)
	}
	return ids
}

// Crear registra un despacho completo: cabecera, renglones, asignación de
// seriales (manual o automática con bloqueo de filas) y ajuste de stock, todo
// dentro de una transacción. La auditoría y la invalidación de caché ocurren
// después del commit.
func (uc *UseCase) Crear(ctx context.Context, sesion *entity.Sesion, servicio string, in *dto.DespachoRequest) (*dto.DespachoResult, error) {
	if res := autorizar(sesion, permiso.SeccionDespachos(servicio), permiso.AccionCrear); res != nil {
		return res, nil
	}
	if res := validarFormulario(in); res != nil {
		return res, nil
	}

	now := time.Now()
	cabecera := &entity.Despacho{
		Servicio:            servicio,
		CedulaDestinatario:  in.CedulaDestinatario,
		CedulaAbastecedor:   in.CedulaAbastecedor,
		CedulaSupervisor:    opcional(in.CedulaSupervisor),
		CedulaAutorizador:   opcional(in.CedulaAutorizador),
		Motivo:              in.Motivo,
		MotivoFecha:         opcional(in.MotivoFecha),
		FechaDespacho:       in.FechaDespacho,
		FechaCreacion:       now,
		UltimaActualizacion: now,
	}

	var idDespacho int
	err := uc.txRunner.Run(ctx, func(
		despachoRepo repository.DespachoRepository,
		serialRepo repository.SerialRepository,
		renglonRepo repository.RenglonRepository,
	) error {
		// Primero se resuelven todos los seriales; la asignación automática
		// bloquea las filas elegidas para que despachos concurrentes no
		// reclamen las mismas unidades.
		asignados := make(map[int][]entity.Serial, len(in.Renglones))
		for i := range in.Renglones {
			item := &in.Renglones[i]
			if item.ManualSelection {
				seriales, err := resolverManuales(serialRepo, item)
				if err != nil {
					return err
				}
				asignados[item.IDRenglon] = seriales
				continue
			}
			seriales, err := serialRepo.SeleccionarParaDespacho(item.IDRenglon,
				[]string{entity.SerialDisponible, entity.SerialDevuelto}, item.Cantidad)
			if err != nil {
				return err
			}
			if len(seriales) < item.Cantidad {
				return &errSerialesInsuficientes{idRenglon: item.IDRenglon, cantidad: item.Cantidad}
			}
			asignados[item.IDRenglon] = seriales
		}

		id, err := despachoRepo.Crear(cabecera)
		if err != nil {
			return err
		}
		idDespacho = id

		var todos []int
		for i := range in.Renglones {
			item := &in.Renglones[i]
			seriales := asignados[item.IDRenglon]
			idRenglonDespacho, err := despachoRepo.CrearRenglon(&entity.DespachoRenglon{
				IDDespacho:         id,
				IDRenglon:          item.IDRenglon,
				Cantidad:           len(seriales),
				ManualSelection:    item.ManualSelection,
				EsDespachoLiquidos: item.EsDespachoLiquidos,
				Observacion:        opcional(item.Observacion),
			})
			if err != nil {
				return err
			}

			if item.EsDespachoLiquidos {
				pesos := pesosPorSerial(item)
				for _, s := range seriales {
					if err := despachoRepo.CrearDespachoSerial(&entity.DespachoSerial{
						IDDespachoRenglon: idRenglonDespacho,
						IDSerial:          s.ID,
						PesoDespachado:    pesos[s.Serial],
					}); err != nil {
						return err
					}
				}
			} else {
				if err := serialRepo.AtarADespachoRenglon(idsDe(seriales), idRenglonDespacho); err != nil {
					return err
				}
			}
			todos = append(todos, idsDe(seriales)...)
		}

		if err := serialRepo.ActualizarEstado(todos, entity.SerialDespachado); err != nil {
			return err
		}

		// Líquidos: se consume peso y el serial vuelve a estar disponible.
		for i := range in.Renglones {
			item := &in.Renglones[i]
			if !item.EsDespachoLiquidos {
				continue
			}
			pesos := pesosPorSerial(item)
			seriales := asignados[item.IDRenglon]
			for _, s := range seriales {
				if err := serialRepo.DescontarPeso(s.ID, pesos[s.Serial]); err != nil {
					return err
				}
			}
			if err := serialRepo.ActualizarEstado(idsDe(seriales), entity.SerialDisponible); err != nil {
				return err
			}
		}

		// Discretos: el contador derivado stock_actual baja con el despacho.
		for i := range in.Renglones {
			item := &in.Renglones[i]
			if item.EsDespachoLiquidos {
				continue
			}
			cantidad := item.Cantidad
			if item.ManualSelection {
				cantidad = len(item.Seriales)
			}
			if err := renglonRepo.DescontarStock(item.IDRenglon, cantidad); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var faltan *errSerialesInsuficientes
		if errors.As(err, &faltan) {
			return dto.ResultadoError(dto.CodeSerialesInsuficientes, faltan.Error(), faltan.idRenglon), nil
		}
		return nil, err
	}

	desc := fmt.Sprintf("Se realizó un despacho en %s con el siguiente motivo: %s. El id del despacho es: %d",
		strings.ToLower(servicio), in.Motivo, idDespacho)
	if in.MotivoFecha != "" {
		desc += fmt.Sprintf(", la fecha de creación fue: %s, la fecha de despacho: %s, motivo de la fecha: %s",
			cabecera.FechaCreacion.Format("2006-01-02 15:04"),
			in.FechaDespacho.Format("2006-01-02 15:04"),
			in.MotivoFecha)
	}
	uc.registrarAuditoria(sesion, permiso.AccionCrear, desc)
	uc.cache.Invalidar(servicio)

	return dto.ResultadoOK(""), nil
}

// registrarAuditoria escribe el rastro después del commit. Un fallo aquí se
// loguea y no altera el resultado de la operación.
func (uc *UseCase) registrarAuditoria(sesion *entity.Sesion, accion, descripcion string) {
	if err := uc.auditor.Registrar(sesion.Cedula, accion, descripcion); err != nil {
		uc.log.Warn().Err(err).Str("accion", accion).Msg("no se pudo registrar la auditoría")
	}
}

func opcional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
