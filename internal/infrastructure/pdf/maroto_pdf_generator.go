// Package pdf maqueta los reportes de la imprenta con Maroto v2.
//
// Layout de la página A4 (horizontal):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio    │  Título + fecha de emisión  │
//	│  Rango de fechas aplicado                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: columnas del reporte (cabecera con fondo)            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES                                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/imprentacamiri/imprenta-api/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorZebra   = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	businessName string
	now          func() time.Time
}

// NewMarotoPDFGenerator construye el generador. businessName encabeza cada reporte.
func NewMarotoPDFGenerator(businessName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{businessName: businessName, now: time.Now}
}

// GenerateReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReport(_ context.Context, doc report.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.businessName, doc.Title, g.now()))
	m.AddRows(subtitleRow(doc.Subtitle))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow(doc.Columns))
	if len(doc.Rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin registros en el rango seleccionado.", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		)))
	}
	m.AddRows(tableDetailRows(doc.Columns, doc.Rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(doc.Totals)...)

	pdfDoc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return pdfDoc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del negocio (izq) y título + fecha de emisión (der).
func headerRow(business, title string, now time.Time) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New(business, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(6).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Emitido: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func subtitleRow(subtitle string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(nonEmpty(subtitle, "Todos los registros"), props.Text{Size: 8, Color: colorGray, Top: 1}),
	))
}

// tableHeaderRow: cabecera de la tabla con fondo azul.
func tableHeaderRow(columns []report.Column) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(c.Width).Add(text.New(c.Label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: toAlign(c.Align),
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por registro, con filas alternas sombreadas.
func tableDetailRows(columns []report.Column, rows [][]string) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for i, cells := range rows {
		cols := make([]core.Col, 0, len(columns))
		for j, c := range columns {
			value := ""
			if j < len(cells) {
				value = cells[j]
			}
			cols = append(cols, col.New(c.Width).Add(text.New(
				nonEmpty(value, "—"),
				props.Text{Size: 8, Align: toAlign(c.Align), Top: 1, Left: 1, Right: 1},
			)))
		}
		r := row.New(7).Add(cols...)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorZebra})
		}
		result = append(result, r)
	}
	return result
}

// totalsRows: bloque de totales alineado a la derecha.
func totalsRows(totals []report.Total) []core.Row {
	rows := make([]core.Row, 0, len(totals))
	for i, t := range totals {
		labelProps := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1}
		valueProps := props.Text{Size: 9, Align: align.Right, Right: 1, Top: 1}
		if i == len(totals)-1 {
			labelProps.Color = colorPrimary
			valueProps.Style = fontstyle.Bold
			valueProps.Color = colorPrimary
		}
		rows = append(rows, row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(t.Label, labelProps)),
			col.New(3).Add(text.New(t.Value, valueProps)),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func toAlign(a report.Align) align.Type {
	switch a {
	case report.AlignCenter:
		return align.Center
	case report.AlignRight:
		return align.Right
	}
	return align.Left
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
