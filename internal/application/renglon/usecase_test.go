package renglon_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopspring/decimal"

	"github.com/dparedes/sial-api/internal/application/dto"
	"github.com/dparedes/sial-api/internal/application/renglon"
	"github.com/dparedes/sial-api/internal/domain"
	"github.com/dparedes/sial-api/internal/domain/entity"
	"github.com/dparedes/sial-api/internal/domain/permiso"
)

type fakeRenglonRepo struct {
	renglones map[int]*entity.Renglon
	nextID    int
}

func (f *fakeRenglonRepo) Crear(r *entity.Renglon) (int, error) {
	f.nextID++
	c := *r
	c.ID = f.nextID
	f.renglones[c.ID] = &c
	return c.ID, nil
}

func (f *fakeRenglonRepo) Actualizar(r *entity.Renglon) error {
	c := *r
	f.renglones[r.ID] = &c
	return nil
}

func (f *fakeRenglonRepo) Eliminar(id int) error {
	delete(f.renglones, id)
	return nil
}

func (f *fakeRenglonRepo) ObtenerPorID(id int) (*entity.Renglon, error) {
	r, ok := f.renglones[id]
	if !ok {
		return nil, nil
	}
	c := *r
	return &c, nil
}

func (f *fakeRenglonRepo) Listar() ([]entity.Renglon, error) {
	ids := make([]int, 0, len(f.renglones))
	for id := range f.renglones {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]entity.Renglon, 0, len(ids))
	for _, id := range ids {
		out = append(out, *f.renglones[id])
	}
	return out, nil
}

func (f *fakeRenglonRepo) DescontarStock(id, cantidad int) error   { return nil }
func (f *fakeRenglonRepo) IncrementarStock(id, cantidad int) error { return nil }

func (f *fakeRenglonRepo) ObtenerUnidadEmpaque(id int) (*entity.UnidadEmpaque, error) {
	return nil, nil
}
func (f *fakeRenglonRepo) ListarClasificaciones() ([]entity.Clasificacion, error)  { return nil, nil }
func (f *fakeRenglonRepo) CrearClasificacion(c *entity.Clasificacion) (int, error) { return 1, nil }
func (f *fakeRenglonRepo) ListarSubsistemas() ([]entity.Subsistema, error)         { return nil, nil }
func (f *fakeRenglonRepo) CrearSubsistema(s *entity.Subsistema) (int, error)       { return 1, nil }

type fakeSerialRepo struct {
	seriales []entity.Serial
}

func (f *fakeSerialRepo) ListarPorRenglonYEstados(idRenglon int, estados []string, limite int) ([]entity.Serial, error) {
	var out []entity.Serial
	for _, s := range f.seriales {
		if s.IDRenglon != idRenglon {
			continue
		}
		for _, e := range estados {
			if s.Estado == e {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeSerialRepo) SeleccionarParaDespacho(idRenglon int, estados []string, limite int) ([]entity.Serial, error) {
	return f.ListarPorRenglonYEstados(idRenglon, estados, limite)
}

func (f *fakeSerialRepo) BuscarPorSeriales(idRenglon int, seriales []string) ([]entity.Serial, error) {
	return nil, nil
}
func (f *fakeSerialRepo) ActualizarEstado(ids []int, estado string) error            { return nil }
func (f *fakeSerialRepo) AtarADespachoRenglon(ids []int, idDespachoRenglon int) error { return nil }
func (f *fakeSerialRepo) DescontarPeso(id int, peso decimal.Decimal) error            { return nil }

type fakeAuditor struct{ registros []string }

func (f *fakeAuditor) Registrar(cedula, accion, descripcion string) error {
	f.registros = append(f.registros, accion+" | "+descripcion)
	return nil
}

func nuevoUseCase() (*renglon.UseCase, *fakeRenglonRepo, *fakeAuditor) {
	repo := &fakeRenglonRepo{renglones: map[int]*entity.Renglon{}}
	auditor := &fakeAuditor{}
	uc := renglon.NewUseCase(repo, &fakeSerialRepo{}, auditor)
	return uc, repo, auditor
}

func sesionInventario(accion string) *entity.Sesion {
	return &entity.Sesion{
		Cedula:   "87654321",
		Permisos: []string{permiso.SeccionInventarioAbastecimiento + ":" + accion},
	}
}

func TestCrear_SinSesion(t *testing.T) {
	uc, _, _ := nuevoUseCase()
	_, err := uc.Crear(nil, entity.ServicioAbastecimiento, &dto.RenglonRequest{Nombre: "Botas"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCrear_SinPermisoDeInventario(t *testing.T) {
	uc, _, _ := nuevoUseCase()
	sesion := sesionInventario(permiso.AccionEliminar)
	_, err := uc.Crear(sesion, entity.ServicioAbastecimiento, &dto.RenglonRequest{Nombre: "Botas"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCrear_RegistraYAudita(t *testing.T) {
	uc, repo, auditor := nuevoUseCase()
	r, err := uc.Crear(sesionInventario(permiso.AccionCrear), entity.ServicioAbastecimiento,
		&dto.RenglonRequest{Nombre: "Botas tácticas", StockMinimo: 5, TipoMedidaUnidad: "UNIDADES"})
	require.NoError(t, err)
	assert.Equal(t, 1, r.ID)
	assert.Equal(t, 0, r.StockActual)
	require.Contains(t, repo.renglones, 1)
	require.Len(t, auditor.registros, 1)
	assert.Contains(t, auditor.registros[0], `Se creó el renglón "Botas tácticas" con el id: 1`)
}

func TestActualizar_NoExiste(t *testing.T) {
	uc, _, _ := nuevoUseCase()
	_, err := uc.Actualizar(sesionInventario(permiso.AccionActualizar), entity.ServicioAbastecimiento,
		9, &dto.RenglonRequest{Nombre: "Botas"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActualizar_NoTocaElStock(t *testing.T) {
	uc, repo, _ := nuevoUseCase()
	repo.renglones[1] = &entity.Renglon{ID: 1, Nombre: "Botas", StockActual: 7}
	repo.nextID = 1

	r, err := uc.Actualizar(sesionInventario(permiso.AccionActualizar), entity.ServicioAbastecimiento,
		1, &dto.RenglonRequest{Nombre: "Botas de cuero"})
	require.NoError(t, err)
	assert.Equal(t, "Botas de cuero", r.Nombre)
	assert.Equal(t, 7, r.StockActual)
}

func TestEliminar_BorraYAudita(t *testing.T) {
	uc, repo, auditor := nuevoUseCase()
	repo.renglones[1] = &entity.Renglon{ID: 1, Nombre: "Botas"}

	err := uc.Eliminar(sesionInventario(permiso.AccionEliminar), entity.ServicioAbastecimiento, 1)
	require.NoError(t, err)
	assert.Empty(t, repo.renglones)
	require.Len(t, auditor.registros, 1)
	assert.Contains(t, auditor.registros[0], "ELIMINAR")
}

func TestListar_FiltroIgnoraAcentosYMayusculas(t *testing.T) {
	uc, repo, _ := nuevoUseCase()
	repo.renglones[1] = &entity.Renglon{ID: 1, Nombre: "MUNICION 5.56"}
	repo.renglones[2] = &entity.Renglon{ID: 2, Nombre: "Botas", Descripcion: "dotación básica"}
	repo.renglones[3] = &entity.Renglon{ID: 3, Nombre: "Aceite"}

	sesion := sesionInventario(permiso.AccionCrear)

	lista, err := uc.Listar(sesion, "munición")
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, 1, lista[0].ID)

	// También busca en la descripción
	lista, err = uc.Listar(sesion, "DOTACION")
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, 2, lista[0].ID)

	// Sin filtro devuelve todo
	lista, err = uc.Listar(sesion, "")
	require.NoError(t, err)
	assert.Len(t, lista, 3)
}

func TestListarSeriales_FiltraPorEstado(t *testing.T) {
	repo := &fakeRenglonRepo{renglones: map[int]*entity.Renglon{}}
	seriales := &fakeSerialRepo{seriales: []entity.Serial{
		{ID: 1, IDRenglon: 1, Estado: entity.SerialDisponible},
		{ID: 2, IDRenglon: 1, Estado: entity.SerialDespachado},
		{ID: 3, IDRenglon: 2, Estado: entity.SerialDisponible},
	}}
	uc := renglon.NewUseCase(repo, seriales, &fakeAuditor{})
	sesion := sesionInventario(permiso.AccionCrear)

	lista, err := uc.ListarSeriales(sesion, 1, []string{entity.SerialDisponible})
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, 1, lista[0].ID)

	// Sin estados pedidos devuelve todos los del renglón
	lista, err = uc.ListarSeriales(sesion, 1, nil)
	require.NoError(t, err)
	assert.Len(t, lista, 2)
}
