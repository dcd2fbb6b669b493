package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-inventario/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	token, err := jwt.Generate("s3cr3t", "user-1", "empleado", "pos", 10)
	require.NoError(t, err)

	userID, role, err := jwt.Parse("s3cr3t", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "empleado", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("s3cr3t", "user-1", "admin", "pos", 10)
	require.NoError(t, err)
	_, _, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("s3cr3t", "user-1", "admin", "pos", -5)
	require.NoError(t, err)
	_, _, err = jwt.Parse("s3cr3t", token)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u", "admin", "pos", 10)
	assert.Error(t, err)
	_, _, err = jwt.Parse("", "x.y.z")
	assert.Error(t, err)
}
