package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwagger_DocumentoRegistradoEsJSONValido(t *testing.T) {
	raw, err := swag.ReadDoc("swagger")
	require.NoError(t, err)

	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	for _, p := range []string{"/api/pedidos", "/api/pedidos/{id}/estado", "/api/reporte-pdf", "/api/usuarios/login"} {
		assert.Contains(t, doc.Paths, p)
	}
}
