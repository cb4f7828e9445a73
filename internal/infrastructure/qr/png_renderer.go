// Package qr genera la imagen PNG del código de verificación de una cotización.
package qr

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/jhoicas/ascari-panel/internal/application/ports"
	"github.com/jhoicas/ascari-panel/internal/domain"
)

const (
	defaultSize = 256
	maxSize     = 1024
)

var _ ports.QRRenderer = (*PNGRenderer)(nil)

// PNGRenderer implementa ports.QRRenderer con skip2/go-qrcode.
type PNGRenderer struct{}

// NewPNGRenderer construye el renderer.
func NewPNGRenderer() *PNGRenderer { return &PNGRenderer{} }

// RenderQR devuelve el PNG (size×size px). size <= 0 usa el tamaño por defecto.
func (PNGRenderer) RenderQR(payload string, size int) ([]byte, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, fmt.Errorf("%w: contenido del QR vacío", domain.ErrInvalidInput)
	}
	if size <= 0 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr: codificar: %w", err)
	}
	return png, nil
}
