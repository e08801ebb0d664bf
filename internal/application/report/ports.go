package report

import "context"

// Align alineación de una columna.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Column columna de la tabla del reporte. Width usa la grilla de 12 columnas.
type Column struct {
	Label string
	Width int
	Align Align
}

// Total par etiqueta/valor al pie del reporte.
type Total struct {
	Label string
	Value string
}

// Document contenido del reporte listo para maquetar.
type Document struct {
	Title    string
	Subtitle string // rango de fechas aplicado
	Columns  []Column
	Rows     [][]string
	Totals   []Total
}

// PDFGenerator maqueta un Document como PDF.
type PDFGenerator interface {
	GenerateReport(ctx context.Context, doc Document) ([]byte, error)
}
