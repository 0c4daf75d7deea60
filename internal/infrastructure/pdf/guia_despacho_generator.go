// Package pdf genera la representación imprimible de la Guía de Despacho.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Unidad + Código de guía + Fecha de despacho         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DESTINATARIO: nombre, cédula, grado, cargo, teléfono        │
//	│  MOTIVO                                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Renglón | Unidad de empaque | Seriales        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FIRMAS: Abastecedor | Supervisor | Autorizador | Recibe     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/dparedes/sial-api/internal/application/despacho"
	"github.com/dparedes/sial-api/internal/application/dto"
	"github.com/dparedes/sial-api/internal/domain/entity"
)

var (
	colorPrimario = &props.Color{Red: 20, Green: 60, Blue: 30}
	colorGris     = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ despacho.GuiaPDFGenerator = (*MarotoGuiaGenerator)(nil)

// MarotoGuiaGenerator implementa despacho.GuiaPDFGenerator usando Maroto v2.
type MarotoGuiaGenerator struct{}

// NewMarotoGuiaGenerator construye el generador.
func NewMarotoGuiaGenerator() *MarotoGuiaGenerator { return &MarotoGuiaGenerator{} }

// GenerarGuiaPDF genera el documento y devuelve sus bytes.
func (g *MarotoGuiaGenerator) GenerarGuiaPDF(_ context.Context, guia *dto.GuiaDespacho) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Guía de Despacho "+guia.Codigo, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(encabezadoRow(guia))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimario, Thickness: 0.5}))
	m.AddRows(destinatarioRow(guia))
	m.AddRows(motivoRow(guia))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimario, Thickness: 0.3}))

	m.AddRows(tablaEncabezadoRow())
	for _, r := range tablaRenglonesRows(guia.Renglones) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGris, Thickness: 0.3}))
	m.AddRows(firmasRow(guia))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar guía: %w", err)
	}
	return doc.GetBytes(), nil
}

// encabezadoRow: unidad (izq) y código + fecha (der).
func encabezadoRow(guia *dto.GuiaDespacho) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(guia.Unidad, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimario, Top: 1,
			}),
			text.New("GUÍA DE DESPACHO DE MATERIAL", props.Text{
				Size: 9, Top: 9, Color: colorGris,
			}),
		),
		col.New(5).Add(
			text.New(guia.Codigo, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Fecha de despacho: "+guia.FechaDespacho.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGris,
			}),
		),
	)
}

// destinatarioRow: quien recibe el material.
func destinatarioRow(guia *dto.GuiaDespacho) core.Row {
	nombre := strings.TrimSpace(guia.DestinatarioNombres + " " + guia.DestinatarioApellidos)
	return row.New(16).Add(
		col.New(12).Add(
			text.New("DESTINATARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimario, Top: 1,
			}),
			text.New(fmt.Sprintf("%s %s", guia.DestinatarioGrado, nombre), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Cédula: %s   |   Cargo: %s   |   Tel: %s",
				guia.DestinatarioCedula, guia.DestinatarioCargo, guia.DestinatarioTelefono,
			), props.Text{Size: 8, Top: 12, Color: colorGris}),
		),
	)
}

func motivoRow(guia *dto.GuiaDespacho) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Motivo: "+guia.Motivo, props.Text{Size: 9, Top: 2}),
		),
	)
}

// tablaEncabezadoRow: cabecera de la tabla de renglones.
func tablaEncabezadoRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimario, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Renglón", 4, align.Left),
		h("Unidad de empaque", 3, align.Left),
		h("Seriales", 4, align.Left),
	)
}

// tablaRenglonesRows: una fila por renglón; los seriales se listan en líneas
// dentro de la celda, con la observación al final si existe.
func tablaRenglonesRows(renglones []dto.GuiaRenglon) []core.Row {
	result := make([]core.Row, 0, len(renglones))
	for _, r := range renglones {
		detalle := strings.Join(r.Seriales, "\n")
		if r.Observacion != "" {
			detalle += "\nObs: " + r.Observacion
		}
		alto := float64(7 + 4*len(r.Seriales))
		result = append(result, row.New(alto).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", r.Cantidad),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				r.Nombre,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				r.UnidadEmpaque,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				detalle,
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1, Color: colorGris},
			)),
		))
	}
	return result
}

// firmasRow: espacios de firma del personal interviniente y de quien recibe.
func firmasRow(guia *dto.GuiaDespacho) core.Row {
	firma := func(titulo string, p *entity.Profesional) core.Col {
		nombre := "________________"
		if p != nil {
			nombre = strings.TrimSpace(p.Nombres + " " + p.Apellidos)
		}
		return col.New(3).Add(
			text.New("_____________________", props.Text{Size: 8, Align: align.Center, Top: 10}),
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Center, Top: 15, Color: colorPrimario,
			}),
			text.New(nombre, props.Text{Size: 7, Align: align.Center, Top: 19, Color: colorGris}),
		)
	}
	recibe := col.New(3).Add(
		text.New("_____________________", props.Text{Size: 8, Align: align.Center, Top: 10}),
		text.New("RECIBE", props.Text{
			Style: fontstyle.Bold, Size: 7, Align: align.Center, Top: 15, Color: colorPrimario,
		}),
		text.New(strings.TrimSpace(guia.DestinatarioNombres+" "+guia.DestinatarioApellidos),
			props.Text{Size: 7, Align: align.Center, Top: 19, Color: colorGris}),
	)
	return row.New(26).Add(
		firma("ABASTECEDOR", guia.Abastecedor),
		firma("SUPERVISOR", guia.Supervisor),
		firma("AUTORIZADOR", guia.Autorizador),
		recibe,
	)
}
