package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(args ...string) (string, error) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRoot_RegistraSubcomandos(t *testing.T) {
	root := NewRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["migrar"])
	assert.True(t, names["crear-admin"])
}

func TestMigrar_RechazaComandoDesconocido(t *testing.T) {
	_, err := run("migrar", "redo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")
}

func TestMigrar_ExigeUnArgumento(t *testing.T) {
	_, err := run("migrar")
	require.Error(t, err)
}

func TestCrearAdmin_ExigeEmailYContrasena(t *testing.T) {
	_, err := run("crear-admin", "--nombre", "Dueña")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--email")
}
