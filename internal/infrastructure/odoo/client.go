// Package odoo implementa el Session Gateway sobre la API XML-RPC de Odoo
// (/xmlrpc/2/common y /xmlrpc/2/object). Es el único paquete que hace I/O de red con el backend.
package odoo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jhoicas/ascari-panel/internal/application/ports"
	"github.com/jhoicas/ascari-panel/internal/domain"
	"github.com/jhoicas/ascari-panel/internal/domain/entity"
)

const (
	commonPath = "/xmlrpc/2/common"
	objectPath = "/xmlrpc/2/object"

	maxResponseBytes = 64 << 20 // las miniaturas en base64 pesan
)

// Config parámetros del adaptador.
type Config struct {
	Timeout         time.Duration
	RatePerSecond   float64
	Burst           int
	CategoryModel   string
	ProductLimit    int
	SearchLimit     int
	DimensionFields []string // [ancho, fondo, alto]
	HTTPClient      *http.Client
}

// ── URL ───────────────────────────────────────────────────────────────────────

// NormalizeURL limpia la URL que el usuario copia del navegador: quita espacios, barras finales,
// el fragmento (#...) y los sufijos /web, /web/login y /odoo; agrega https:// si falta el esquema.
func NormalizeURL(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	if i := strings.Index(u, "#"); i >= 0 {
		u = u[:i]
	}
	for {
		u = strings.TrimRight(u, "/")
		trimmed := false
		for _, suffix := range []string{"/web/login", "/web", "/odoo"} {
			if strings.HasSuffix(u, suffix) {
				u = strings.TrimSuffix(u, suffix)
				trimmed = true
			}
		}
		if !trimmed {
			break
		}
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	parsed, err := url.Parse(u)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("%w: url del backend %q", domain.ErrInvalidInput, raw)
	}
	return u, nil
}

// ── Transporte ────────────────────────────────────────────────────────────────

// client transporte XML-RPC contra una URL base; limita el ritmo de llamadas por sesión.
type client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func newClient(baseURL string, cfg Config) *client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &client{baseURL: baseURL, httpClient: hc, limiter: rate.NewLimiter(limit, burst)}
}

// call ejecuta un methodCall y devuelve el valor decodificado.
func (c *client) call(ctx context.Context, path, method string, params ...any) (any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("xmlrpc: espera del limitador: %w", err)
	}
	payload, err := encodeCall(method, params...)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("xmlrpc: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: xmlrpc: timeout o cancelación: %v", domain.ErrGatewayUnavailable, ctx.Err())
		}
		return nil, fmt.Errorf("%w: xmlrpc: llamada HTTP fallida: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: xmlrpc: leer respuesta: %v", domain.ErrGatewayUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: xmlrpc: %s respondió HTTP %d", domain.ErrGatewayUnavailable, path, resp.StatusCode)
	}
	return decodeResponse(body)
}

func (c *client) version(ctx context.Context) (string, error) {
	res, err := c.call(ctx, commonPath, "version")
	if err != nil {
		return "", err
	}
	m, _ := res.(map[string]any)
	return asString(m["server_version"]), nil
}

// authenticate devuelve el uid; Odoo responde false si las credenciales no son válidas.
func (c *client) authenticate(ctx context.Context, db, username, password string) (int, error) {
	res, err := c.call(ctx, commonPath, "authenticate", db, username, password, map[string]any{})
	if err != nil {
		return 0, err
	}
	uid, ok := res.(int)
	if !ok || uid <= 0 {
		return 0, domain.ErrUnauthorized
	}
	return uid, nil
}

// unavailable marca err como ErrGatewayUnavailable si call no lo hizo ya.
func unavailable(err error) error {
	if errors.Is(err, domain.ErrGatewayUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
}

// ── Connector ─────────────────────────────────────────────────────────────────

var _ ports.Connector = (*Connector)(nil)

// Connector abre sesiones contra Odoo.
type Connector struct {
	cfg Config
	log zerolog.Logger
}

// NewConnector construye el connector.
func NewConnector(cfg Config, log zerolog.Logger) *Connector {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.CategoryModel == "" {
		cfg.CategoryModel = "product.category"
	}
	if cfg.ProductLimit <= 0 {
		cfg.ProductLimit = 2000
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 50
	}
	return &Connector{cfg: cfg, log: log}
}

// Connect normaliza la URL, comprueba version() (si https falla se reintenta por http) y autentica.
func (c *Connector) Connect(ctx context.Context, creds entity.Credentials) (*ports.Connection, error) {
	base, err := NormalizeURL(creds.URL)
	if err != nil {
		return nil, err
	}

	cl := newClient(base, c.cfg)
	version, err := cl.version(ctx)
	if err != nil && strings.HasPrefix(base, "https://") {
		c.log.Debug().Err(err).Str("url", base).Msg("version() por https falló, se reintenta por http")
		base = "http://" + strings.TrimPrefix(base, "https://")
		cl = newClient(base, c.cfg)
		version, err = cl.version(ctx)
	}
	if err != nil {
		return nil, unavailable(err)
	}

	uid, err := cl.authenticate(ctx, creds.DB, creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, err
		}
		var fault *Fault
		if errors.As(err, &fault) {
			// base de datos inexistente u otro rechazo del servidor
			return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, fault)
		}
		return nil, unavailable(err)
	}

	return &ports.Connection{
		UID:           uid,
		BackendURL:    base,
		ServerVersion: version,
		Gateway: &Gateway{
			client:   cl,
			cfg:      c.cfg,
			db:       creds.DB,
			uid:      uid,
			password: creds.Password,
			log:      c.log.With().Str("backend", base).Int("uid", uid).Logger(),
		},
	}, nil
}
