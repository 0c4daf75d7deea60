package despacho

import (
	"context"
	"fmt"
	"strings"

	"github.com/dparedes/sial-api/internal/application/dto"
	"github.com/dparedes/sial-api/internal/domain/entity"
)

// Abreviaturas por tipo de medida para la guía impresa.
var abreviaturas = map[string]string{
	"UNIDADES":   "und",
	"KILOGRAMOS": "kg",
	"GRAMOS":     "gr",
	"LITROS":     "lts",
	"MILILITROS": "ml",
	"METROS":     "mts",
	"TONELADAS":  "ton",
	"GALONES":    "gal",
}

// CodigoGuia formatea el código correlativo de la guía de despacho.
func CodigoGuia(id int) string {
	return fmt.Sprintf("G-DES-%05d", id)
}

// unidadEmpaqueGuia formatea "ABREVIATURA/NOMBRE" para la guía; sin unidad de
// empaque cae en "UND".
func unidadEmpaqueGuia(ue *entity.UnidadEmpaque) string {
	if ue == nil {
		return "UND"
	}
	abrev := abreviaturas[ue.TipoMedida]
	if abrev == "" {
		abrev = ue.Abreviacion
	}
	return strings.ToUpper(abrev) + "/" + strings.ToUpper(ue.Nombre)
}

// ObtenerGuia proyecta un despacho a la estructura plana de la guía de
// exportación: nombres resueltos, abreviaturas formateadas y un string por
// serial, con reservas "s/c", "s/u" y "s/m" para los datos ausentes.
func (uc *UseCase) ObtenerGuia(ctx context.Context, sesion *entity.Sesion, id int) (*dto.GuiaDespacho, error) {
	detalle, err := uc.ObtenerPorID(ctx, sesion, id)
	if err != nil {
		return nil, err
	}

	guia := &dto.GuiaDespacho{
		Codigo:        CodigoGuia(detalle.ID),
		Motivo:        oReserva(detalle.Motivo, "s/m"),
		FechaDespacho: detalle.FechaDespacho,
		Abastecedor:   detalle.Abastecedor,
		Supervisor:    detalle.Supervisor,
		Autorizador:   detalle.Autorizador,
		Unidad:        "s/u",
	}

	if d := detalle.Destinatario; d != nil {
		guia.DestinatarioCedula = d.TipoCedula + "-" + d.Cedula
		guia.DestinatarioNombres = d.Nombres
		guia.DestinatarioApellidos = d.Apellidos
		guia.DestinatarioGrado = oReserva(valorDe(d.Grado), "s/c")
		guia.DestinatarioCargo = oReserva(valorDe(d.CargoProfesional), "s/c")
		guia.DestinatarioTelefono = d.Telefono
		if d.Unidad != nil && *d.Unidad != "" {
			guia.Unidad = strings.ToUpper(*d.Unidad)
		}
	}

	guia.Renglones = make([]dto.GuiaRenglon, 0, len(detalle.Renglones))
	for i := range detalle.Renglones {
		r := &detalle.Renglones[i]
		gr := dto.GuiaRenglon{
			UnidadEmpaque: unidadEmpaqueGuia(r.UnidadEmpaque),
			Cantidad:      r.Cantidad,
			Observacion:   valorDe(r.Observacion),
		}
		if r.Renglon != nil {
			gr.Nombre = r.Renglon.Nombre
		}
		if r.EsDespachoLiquidos {
			gr.Cantidad = len(r.Seriales)
			medida := ""
			if r.Renglon != nil {
				medida = strings.ToLower(r.Renglon.TipoMedidaUnidad)
			}
			for _, s := range r.Seriales {
				gr.Seriales = append(gr.Seriales,
					fmt.Sprintf("%s - %s %s", s.Serial, s.PesoDespachado.String(), medida))
			}
		} else {
			for _, s := range r.Seriales {
				gr.Seriales = append(gr.Seriales, s.Serial)
			}
		}
		guia.Renglones = append(guia.Renglones, gr)
	}

	return guia, nil
}

// GuiaPDF genera el documento imprimible de la guía de despacho.
func (uc *UseCase) GuiaPDF(ctx context.Context, sesion *entity.Sesion, id int) ([]byte, error) {
	guia, err := uc.ObtenerGuia(ctx, sesion, id)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerarGuiaPDF(ctx, guia)
}

func oReserva(s, reserva string) string {
	if s == "" {
		return reserva
	}
	return s
}

func valorDe(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
