package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imprentacamiri/imprenta-api/internal/application/report"
)

func TestGenerateReport_ProducePDF(t *testing.T) {
	g := NewMarotoPDFGenerator("Imprenta Camiri")
	doc := report.Document{
		Title:    "Reporte de pedidos",
		Subtitle: "Del 01/03/2026 al 05/03/2026",
		Columns: []report.Column{
			{Label: "Cliente", Width: 6},
			{Label: "Total", Width: 6, Align: report.AlignRight},
		},
		Rows: [][]string{
			{"Ana Rojas", "Bs 150,00"},
			{"Luis Pérez", ""},
			{"Sin total"},
		},
		Totals: []report.Total{{Label: "Total:", Value: "Bs 150,00"}},
	}

	out, err := g.GenerateReport(context.Background(), doc)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe empezar con la firma PDF")
}

func TestGenerateReport_SinFilas(t *testing.T) {
	g := NewMarotoPDFGenerator("Imprenta Camiri")

	out, err := g.GenerateReport(context.Background(), report.Document{
		Title:   "Reporte de clientes",
		Columns: []report.Column{{Label: "Nombre", Width: 12}},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestToAlign(t *testing.T) {
	assert.Equal(t, "C", string(toAlign(report.AlignCenter)))
	assert.Equal(t, "R", string(toAlign(report.AlignRight)))
	assert.Equal(t, "L", string(toAlign(report.AlignLeft)))
}
