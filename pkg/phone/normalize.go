// Package phone normaliza los teléfonos de clientes que se imprimen en la cotización.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion región usada cuando el número no trae prefijo internacional.
const DefaultRegion = "TR"

// NormalizeE164 formatea un número a E.164. Si no se puede interpretar devuelve la entrada recortada;
// el teléfono es opcional e informativo, nunca se rechaza la cotización por él.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	number, err := phonenumbers.Parse(trimmed, DefaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return trimmed
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

// Display devuelve el formato internacional legible (+90 532 123 45 67) para el documento impreso.
func Display(e164 string) string {
	if e164 == "" {
		return ""
	}
	number, err := phonenumbers.Parse(e164, DefaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return e164
	}
	return phonenumbers.Format(number, phonenumbers.INTERNATIONAL)
}
