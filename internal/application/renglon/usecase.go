package renglon

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dparedes/sial-api/internal/application/dto"
	"github.com/dparedes/sial-api/internal/domain"
	"github.com/dparedes/sial-api/internal/domain/entity"
	"github.com/dparedes/sial-api/internal/domain/permiso"
	"github.com/dparedes/sial-api/internal/domain/repository"
)

// Auditor registra acciones sobre la ficha de inventario.
type Auditor interface {
	Registrar(cedulaUsuario, accion, descripcion string) error
}

// UseCase administra la ficha maestra de inventario (renglones) y sus
// catálogos de clasificación.
type UseCase struct {
	renglonRepo repository.RenglonRepository
	serialRepo  repository.SerialRepository
	auditor     Auditor
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(renglonRepo repository.RenglonRepository, serialRepo repository.SerialRepository, auditor Auditor) *UseCase {
	return &UseCase{renglonRepo: renglonRepo, serialRepo: serialRepo, auditor: auditor}
}

func autorizar(sesion *entity.Sesion, servicio, accion string) error {
	if sesion == nil {
		return domain.ErrUnauthorized
	}
	if !permiso.Validar(sesion.Permisos, permiso.SeccionInventario(servicio), accion) {
		return domain.ErrForbidden
	}
	return nil
}

// Crear registra un renglón nuevo con stock en cero.
func (uc *UseCase) Crear(sesion *entity.Sesion, servicio string, in *dto.RenglonRequest) (*entity.Renglon, error) {
	if err := autorizar(sesion, servicio, permiso.AccionCrear); err != nil {
		return nil, err
	}
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	r := &entity.Renglon{
		Nombre:              in.Nombre,
		Descripcion:         in.Descripcion,
		StockMinimo:         in.StockMinimo,
		TipoMedidaUnidad:    in.TipoMedidaUnidad,
		IDUnidadEmpaque:     in.IDUnidadEmpaque,
		IDClasificacion:     in.IDClasificacion,
		IDSubsistema:        in.IDSubsistema,
		FechaCreacion:       now,
		UltimaActualizacion: now,
	}
	id, err := uc.renglonRepo.Crear(r)
	if err != nil {
		return nil, err
	}
	r.ID = id
	uc.auditar(sesion, permiso.AccionCrear,
		fmt.Sprintf("Se creó el renglón %q con el id: %d", r.Nombre, id))
	return r, nil
}

// Actualizar modifica la ficha de un renglón; no toca el stock.
func (uc *UseCase) Actualizar(sesion *entity.Sesion, servicio string, id int, in *dto.RenglonRequest) (*entity.Renglon, error) {
	if err := autorizar(sesion, servicio, permiso.AccionActualizar); err != nil {
		return nil, err
	}
	r, err := uc.renglonRepo.ObtenerPorID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	r.Nombre = in.Nombre
	r.Descripcion = in.Descripcion
	r.StockMinimo = in.StockMinimo
	r.TipoMedidaUnidad = in.TipoMedidaUnidad
	r.IDUnidadEmpaque = in.IDUnidadEmpaque
	r.IDClasificacion = in.IDClasificacion
	r.IDSubsistema = in.IDSubsistema
	r.UltimaActualizacion = time.Now()
	if err := uc.renglonRepo.Actualizar(r); err != nil {
		return nil, err
	}
	uc.auditar(sesion, permiso.AccionActualizar,
		fmt.Sprintf("Se actualizó el renglón %q con el id: %d", r.Nombre, id))
	return r, nil
}

// Eliminar borra la ficha del renglón.
func (uc *UseCase) Eliminar(sesion *entity.Sesion, servicio string, id int) error {
	if err := autorizar(sesion, servicio, permiso.AccionEliminar); err != nil {
		return err
	}
	r, err := uc.renglonRepo.ObtenerPorID(id)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}
	if err := uc.renglonRepo.Eliminar(id); err != nil {
		return err
	}
	uc.auditar(sesion, permiso.AccionEliminar,
		fmt.Sprintf("Se eliminó el renglón %q con el id: %d", r.Nombre, id))
	return nil
}

// ObtenerPorID devuelve la ficha del renglón.
func (uc *UseCase) ObtenerPorID(sesion *entity.Sesion, id int) (*entity.Renglon, error) {
	if sesion == nil {
		return nil, domain.ErrUnauthorized
	}
	r, err := uc.renglonRepo.ObtenerPorID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// Listar devuelve los renglones cuyo nombre o descripción contengan el filtro.
// La comparación ignora mayúsculas y acentos ("munición" encuentra "MUNICION").
func (uc *UseCase) Listar(sesion *entity.Sesion, filtro string) ([]entity.Renglon, error) {
	if sesion == nil {
		return nil, domain.ErrUnauthorized
	}
	renglones, err := uc.renglonRepo.Listar()
	if err != nil {
		return nil, err
	}
	if filtro == "" {
		return renglones, nil
	}
	clave := normalizar(filtro)
	out := make([]entity.Renglon, 0, len(renglones))
	for _, r := range renglones {
		if strings.Contains(normalizar(r.Nombre), clave) ||
			strings.Contains(normalizar(r.Descripcion), clave) {
			out = append(out, r)
		}
	}
	return out, nil
}

// ListarSeriales devuelve los seriales del renglón, opcionalmente filtrados por estado.
func (uc *UseCase) ListarSeriales(sesion *entity.Sesion, idRenglon int, estados []string) ([]entity.Serial, error) {
	if sesion == nil {
		return nil, domain.ErrUnauthorized
	}
	if len(estados) == 0 {
		estados = []string{entity.SerialDisponible, entity.SerialDespachado, entity.SerialDevuelto}
	}
	return uc.serialRepo.ListarPorRenglonYEstados(idRenglon, estados, 0)
}

// ListarClasificaciones devuelve el catálogo de clasificaciones.
func (uc *UseCase) ListarClasificaciones(sesion *entity.Sesion) ([]entity.Clasificacion, error) {
	if sesion == nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.renglonRepo.ListarClasificaciones()
}

// CrearClasificacion agrega una clasificación al catálogo.
func (uc *UseCase) CrearClasificacion(sesion *entity.Sesion, servicio string, in *dto.ClasificacionRequest) (*entity.Clasificacion, error) {
	if err := autorizar(sesion, servicio, permiso.AccionCrear); err != nil {
		return nil, err
	}
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Clasificacion{Nombre: in.Nombre, Descripcion: in.Descripcion}
	id, err := uc.renglonRepo.CrearClasificacion(c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	return c, nil
}

// ListarSubsistemas devuelve el catálogo de subsistemas.
func (uc *UseCase) ListarSubsistemas(sesion *entity.Sesion) ([]entity.Subsistema, error) {
	if sesion == nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.renglonRepo.ListarSubsistemas()
}

// CrearSubsistema agrega un subsistema al catálogo.
func (uc *UseCase) CrearSubsistema(sesion *entity.Sesion, servicio string, in *dto.SubsistemaRequest) (*entity.Subsistema, error) {
	if err := autorizar(sesion, servicio, permiso.AccionCrear); err != nil {
		return nil, err
	}
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	s := &entity.Subsistema{Nombre: in.Nombre, Descripcion: in.Descripcion}
	id, err := uc.renglonRepo.CrearSubsistema(s)
	if err != nil {
		return nil, err
	}
	s.ID = id
	return s, nil
}

func (uc *UseCase) auditar(sesion *entity.Sesion, accion, descripcion string) {
	// Mejor esfuerzo, igual que en despachos
	_ = uc.auditor.Registrar(sesion.Cedula, accion, descripcion)
}

var quitarAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizar baja a minúsculas y elimina marcas diacríticas para comparar.
func normalizar(s string) string {
	limpio, _, err := transform.String(quitarAcentos, s)
	if err != nil {
		limpio = s
	}
	return strings.ToLower(limpio)
}
