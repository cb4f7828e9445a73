package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/ascari-panel/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "sess-1", "magaza", "sales", "ascari-test", 60)
	require.NoError(t, err)

	sid, user, role, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", sid)
	assert.Equal(t, "magaza", user)
	assert.Equal(t, "sales", role)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "sess-1", "magaza", "admin", "ascari-test", -1)
	require.NoError(t, err)
	_, _, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, _ := pkgjwt.Generate(testSecret, "sess-1", "magaza", "admin", "ascari-test", 60)
	_, _, _, err := pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestGenerate_SinSesionFalla(t *testing.T) {
	_, err := pkgjwt.Generate(testSecret, "", "magaza", "admin", "ascari-test", 60)
	assert.Error(t, err)
}
