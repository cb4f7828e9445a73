package qr

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ascari-panel/internal/domain"
)

func TestRenderQR(t *testing.T) {
	r := NewPNGRenderer()

	out, err := r.RenderQR("https://ascari.com.tr/t/ASC-SJ3K2O-7Q4M2A", 200)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestRenderQR_TamanoPorDefectoYMaximo(t *testing.T) {
	r := NewPNGRenderer()

	out, err := r.RenderQR("ASC-1", 0)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, defaultSize, img.Bounds().Dx())

	out, err = r.RenderQR("ASC-1", 5000)
	require.NoError(t, err)
	img, err = png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, maxSize, img.Bounds().Dx())
}

func TestRenderQR_ContenidoVacio(t *testing.T) {
	_, err := NewPNGRenderer().RenderQR("  ", 100)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
