package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ascari-panel/internal/domain"
)

func TestRegistry_ExpiraPorInactividad(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	r := NewRegistry(30 * time.Minute)
	r.now = func() time.Time { return now }

	r.Put(&Session{ID: "s1"})
	r.Put(&Session{ID: "s2"})

	now = now.Add(20 * time.Minute)
	_, err := r.Get("s1")
	require.NoError(t, err, "Get renueva la actividad")

	now = now.Add(20 * time.Minute)
	_, err = r.Get("s1")
	require.NoError(t, err)

	_, err = r.Get("s2")
	assert.ErrorIs(t, err, domain.ErrSessionExpired)

	_, err = r.Get("s3")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegistry_Sweep(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	r := NewRegistry(time.Minute)
	r.now = func() time.Time { return now }
	r.Put(&Session{ID: "a"})
	r.Put(&Session{ID: "b"})

	now = now.Add(2 * time.Minute)
	r.Put(&Session{ID: "c"})

	assert.Equal(t, 2, r.Sweep())
	assert.Equal(t, 1, r.Len())

	r.Delete("c")
	assert.Equal(t, 0, r.Len())
}
