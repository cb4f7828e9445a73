package ports

import "github.com/jhoicas/ascari-panel/internal/domain/entity"

// QuotationRenderer genera el documento imprimible. Debe ser idempotente y sin efectos secundarios.
type QuotationRenderer interface {
	RenderQuotation(q entity.Quotation) ([]byte, error)
}

// QRRenderer genera la imagen PNG de un código QR.
type QRRenderer interface {
	RenderQR(payload string, size int) ([]byte, error)
}
