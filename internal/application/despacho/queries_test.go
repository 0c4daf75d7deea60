package despacho_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dparedes/sial-api/internal/application/despacho"
	"github.com/dparedes/sial-api/internal/application/dto"
	"github.com/dparedes/sial-api/internal/domain"
	"github.com/dparedes/sial-api/internal/domain/entity"
)

func solicitudLiquidos() *dto.DespachoRequest {
	in := solicitudBase()
	in.Renglones = []dto.RenglonDespachoRequest{
		{
			IDRenglon:          2,
			ManualSelection:    true,
			EsDespachoLiquidos: true,
			Seriales: []dto.SerialDespachoRequest{
				{ID: 10, Serial: "LOTE-A", PesoDespachado: decimal.NewFromInt(25)},
			},
		},
	}
	return in
}

func TestListarPorServicio_ExigeSesion(t *testing.T) {
	e := nuevoEntorno(t)
	_, err := e.uc.ListarPorServicio(context.Background(), nil, entity.ServicioAbastecimiento)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestListarPorServicio_SirveDesdeCacheHastaInvalidar(t *testing.T) {
	e := nuevoEntorno(t)
	_, err := e.uc.Crear(context.Background(), sesionAdmin(), entity.ServicioAbastecimiento, solicitudBase())
	require.NoError(t, err)

	lista, err := e.uc.ListarPorServicio(context.Background(), sesionAdmin(), entity.ServicioAbastecimiento)
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, 1, e.cache.guardados)

	// Segunda lectura: mismo resultado sin volver a guardar
	lista, err = e.uc.ListarPorServicio(context.Background(), sesionAdmin(), entity.ServicioAbastecimiento)
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, 1, e.cache.guardados)

	// Una mutación invalida y la próxima lectura reconstruye
	in := solicitudBase()
	in.Renglones[0].Cantidad = 1
	_, err = e.uc.Crear(context.Background(), sesionAdmin(), entity.ServicioAbastecimiento, in)
	require.NoError(t, err)

	lista, err = e.uc.ListarPorServicio(context.Background(), sesionAdmin(), entity.ServicioAbastecimiento)
	require.NoError(t, err)
	require.Len(t, lista, 2)
	assert.Equal(t, 2, e.cache.guardados)
}

func TestListarPorServicio_SeparaServicios(t *testing.T) {
	e := nuevoEntorno(t)
	_, err := e.uc.Crear(context.Background(), sesionAdmin(), entity.ServicioAbastecimiento, solicitudBase())
	require.NoError(t, err)

	lista, err := e.uc.ListarPorServicio(context.Background(), sesionAdmin(), entity.ServicioArmamento)
	require.NoError(t, err)
	assert.Empty(t, lista)
}

func TestObtenerPorID_ProyeccionUniformeDiscretos(t *testing.T) {
	e := nuevoEntorno(t)
	_, err := e.uc.Crear(context.Background(), sesionAdmin(), entity.ServicioAbastecimiento, solicitudBase())
	require.NoError(t, err)

	detalle, err := e.uc.ObtenerPorID(context.Background(), sesionAdmin(), 1)
	require.NoError(t, err)
	require.Len(t, detalle.Renglones, 1)

	seriales := detalle.Renglones[0].Seriales
	require.Len(t, seriales, 2)
	// Discretos: id y pesos en cero, solo importa la cadena serial
	assert.Equal(t, 0, seriales[0].ID)
	assert.Equal(t, "FUS-001", seriales[0].Serial)
	assert.Equal(t, 1, seriales[0].IDRenglon)
	assert.True(t, seriales[0].PesoDespachado.IsZero())
	assert.True(t, seriales[0].PesoActual.IsZero())
}

func TestObtenerPorID_ProyeccionUniformeLiquidos(t *testing.T) {
	e := nuevoEntorno(t)
	_, err := e.uc.Crear(context.Background(), sesionAdmin(), entity.ServicioAbastecimiento, solicitudLiquidos())
	require.NoError(t, err)

	detalle, err := e.uc.ObtenerPorID(context.Background(), sesionAdmin(), 1)
	require.NoError(t, err)
	require.Len(t, detalle.Renglones, 1)

	seriales := detalle.Renglones[0].Seriales
	require.Len(t, seriales, 1)
	// Líquidos: el peso despachado sale de la tabla intermedia y el actual del serial
	assert.Equal(t, 10, seriales[0].ID)
	assert.Equal(t, "LOTE-A", seriales[0].Serial)
	assert.True(t, seriales[0].PesoDespachado.Equal(decimal.NewFromInt(25)))
	assert.True(t, seriales[0].PesoActual.Equal(decimal.NewFromInt(175)))
}

func TestObtenerPorID_NoExiste(t *testing.T) {
	e := nuevoEntorno(t)
	_, err := e.uc.ObtenerPorID(context.Background(), sesionAdmin(), 42)
	assert.ErrorIs(t, err, domain.ErrDespachoNotFound)
}

func TestObtenerGuia_DatosDelDestinatarioYReservas(t *testing.T) {
	e := nuevoEntorno(t)
	_, err := e.uc.Crear(context.Background(), sesionAdmin(), entity.ServicioAbastecimiento, solicitudBase())
	require.NoError(t, err)

	guia, err := e.uc.ObtenerGuia(context.Background(), sesionAdmin(), 1)
	require.NoError(t, err)

	assert.Equal(t, "G-DES-00001", guia.Codigo)
	assert.Equal(t, "Dotación trimestral", guia.Motivo)
	assert.Equal(t, "V-12345678", guia.DestinatarioCedula)
	assert.Equal(t, "Sargento", guia.DestinatarioGrado)
	assert.Equal(t, "s/c", guia.DestinatarioCargo)
	assert.Equal(t, "BATALLÓN BOLÍVAR", guia.Unidad)

	require.Len(t, guia.Renglones, 1)
	r := guia.Renglones[0]
	assert.Equal(t, "Fusil", r.Nombre)
	// Sin unidad de empaque definida cae en la reserva
	assert.Equal(t, "UND", r.UnidadEmpaque)
	assert.Equal(t, 2, r.Cantidad)
	assert.Equal(t, []string{"FUS-001", "FUS-002"}, r.Seriales)
}

func TestObtenerGuia_LiquidosFormateaSerialesYUnidad(t *testing.T) {
	e := nuevoEntorno(t)
	_, err := e.uc.Crear(context.Background(), sesionAdmin(), entity.ServicioAbastecimiento, solicitudLiquidos())
	require.NoError(t, err)

	guia, err := e.uc.ObtenerGuia(context.Background(), sesionAdmin(), 1)
	require.NoError(t, err)
	require.Len(t, guia.Renglones, 1)

	r := guia.Renglones[0]
	assert.Equal(t, "LTS/TAMBOR", r.UnidadEmpaque)
	// Para líquidos la cantidad es el número de seriales intervenidos
	assert.Equal(t, 1, r.Cantidad)
	assert.Equal(t, []string{"LOTE-A - 25 litros"}, r.Seriales)
}

func TestCodigoGuia_Formato(t *testing.T) {
	assert.Equal(t, "G-DES-00007", despacho.CodigoGuia(7))
	assert.Equal(t, "G-DES-12345", despacho.CodigoGuia(12345))
}

func TestGuiaPDF_DelegaEnElGenerador(t *testing.T) {
	e := nuevoEntorno(t)
	_, err := e.uc.Crear(context.Background(), sesionAdmin(), entity.ServicioAbastecimiento, solicitudBase())
	require.NoError(t, err)

	pdf, err := e.uc.GuiaPDF(context.Background(), sesionAdmin(), 1)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, 1, e.pdf.llamadas)
}
