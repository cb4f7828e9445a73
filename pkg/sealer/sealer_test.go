package sealer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ascari-panel/pkg/sealer"
)

func testKey() []byte { return bytes.Repeat([]byte{7}, 32) }

func TestSealOpen_RecuperaElTextoOriginal(t *testing.T) {
	s, err := sealer.New(testKey())
	require.NoError(t, err)

	sealed, err := s.Seal("şifre-123")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "şifre")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "şifre-123", plain)
}

func TestSeal_NonceDistintoCadaVez(t *testing.T) {
	s, _ := sealer.New(testKey())
	a, _ := s.Seal("x")
	b, _ := s.Seal("x")
	assert.NotEqual(t, a, b)
}

func TestOpen_ClaveIncorrectaFalla(t *testing.T) {
	s1, _ := sealer.New(testKey())
	s2, _ := sealer.New(bytes.Repeat([]byte{9}, 32))
	sealed, _ := s1.Seal("secreto")

	_, err := s2.Open(sealed)
	assert.Error(t, err)
}

func TestNewFromHex(t *testing.T) {
	_, err := sealer.NewFromHex(strings.Repeat("ab", 32))
	assert.NoError(t, err)

	_, err = sealer.NewFromHex("abcd")
	assert.ErrorIs(t, err, sealer.ErrInvalidKey)

	_, err = sealer.NewFromHex("zz")
	assert.Error(t, err)
}
