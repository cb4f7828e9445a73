package phone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ascari-panel/pkg/phone"
)

func TestNormalizeE164(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"vacío", "   ", ""},
		{"móvil nacional con cero", "0532 123 45 67", "+905321234567"},
		{"ya internacional", "+90 532 123 45 67", "+905321234567"},
		{"texto libre se conserva", "sin teléfono", "sin teléfono"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, phone.NormalizeE164(tc.in))
		})
	}
}

func TestDisplay_NumeroInvalidoSeDevuelveIgual(t *testing.T) {
	assert.Equal(t, "12", phone.Display("12"))
	assert.Equal(t, "", phone.Display(""))
}
