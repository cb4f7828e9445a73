package quote

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// crockford alfabeto base32 sin I, L, O, U (se lee bien en papel y por teléfono).
const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const randomChars = 6

// CodeGenerator produce códigos de cotización PREFIJO-MINUTO-AZAR, por ejemplo ASC-T3J9QK-7XM2PD.
// Es una referencia legible, no un secreto. Recuerda los códigos emitidos y vuelve a sortear ante
// una colisión, así que nunca repite dentro del proceso. Solo guarda los del minuto en curso: los
// anteriores no pueden repetirse porque su fragmento de minuto es distinto.
type CodeGenerator struct {
	prefix string
	now    func() time.Time
	random func() [16]byte

	mu     sync.Mutex
	minute int64 // nunca retrocede, aunque el reloj lo haga
	issued map[string]struct{}
}

// NewCodeGenerator generador con reloj real y UUIDv4 como fuente de azar.
func NewCodeGenerator(prefix string) *CodeGenerator {
	return newCodeGenerator(prefix, time.Now, func() [16]byte { return uuid.New() })
}

func newCodeGenerator(prefix string, now func() time.Time, random func() [16]byte) *CodeGenerator {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = "Q"
	}
	return &CodeGenerator{prefix: prefix, now: now, random: random, issued: map[string]struct{}{}}
}

// Next devuelve un código nuevo.
func (g *CodeGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if m := g.now().Unix() / 60; m > g.minute {
		g.minute = m
		clear(g.issued)
	}
	minute := strings.ToUpper(strconv.FormatInt(g.minute, 36))
	for {
		code := g.prefix + "-" + minute + "-" + encodeRandom(g.random())
		if _, dup := g.issued[code]; dup {
			continue
		}
		g.issued[code] = struct{}{}
		return code
	}
}

// issuedCount códigos retenidos para detectar colisiones.
func (g *CodeGenerator) issuedCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.issued)
}

// encodeRandom toma 30 bits del UUID (sus primeros 4 bytes son todos aleatorios).
func encodeRandom(b [16]byte) string {
	v := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	out := make([]byte, randomChars)
	for i := randomChars - 1; i >= 0; i-- {
		out[i] = crockford[v&31]
		v >>= 5
	}
	return string(out)
}
