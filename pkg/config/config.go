package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Odoo    OdooConfig
	Quote   QuoteConfig
	Pricing PricingConfig
	Company CompanyConfig
	Session SessionConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL (solo guarda las credenciales recordadas).
// Si DatabaseURL no está vacío, se usa como connection string completo.
// Con Enabled=false el panel funciona sin base de datos.
type DBConfig struct {
	Enabled     bool
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de los tokens de sesión del personal.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// OdooConfig parámetros del backend de gestión (Odoo vía XML-RPC).
type OdooConfig struct {
	URL             string // valor por defecto del formulario de conexión
	DB              string
	TimeoutSeconds  int
	RatePerSecond   float64
	Burst           int
	CategoryModel   string // product.category o product.public.category
	ProductLimit    int
	SearchLimit     int
	DimensionFields []string // campos x_ opcionales: ancho, fondo, alto
}

// QuoteConfig parámetros del generador de cotizaciones.
type QuoteConfig struct {
	Prefix          string
	VerifyURL       string
	DefaultCustomer string
	SyncMaxInFlight int
	SyncTimeoutSecs int
}

// PricingConfig modo de precios activo para el despliegue.
// Mode: "installment" (se descuenta la prima de cuotas) o "tax" (se suma impuesto plano). Nunca ambos.
type PricingConfig struct {
	Mode               string
	InstallmentPremium string
	TaxRate            string
	RoundPlaces        int
}

// CompanyConfig datos impresos en la cabecera de la cotización.
type CompanyConfig struct {
	Name    string
	Tagline string
}

// SessionConfig sesiones del personal y credenciales recordadas.
type SessionConfig struct {
	TTLMinutes     int
	CredentialsKey string // hex, 32 bytes
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, ODOO_URL, PRICING_MODE, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "ascari-panel"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Enabled:     getBool(v, "DB_ENABLED", true),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "ascari_panel"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 720),
			Issuer:     getString(v, "JWT_ISSUER", "ascari-panel"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 5000),
		},
		Odoo: OdooConfig{
			URL:             getString(v, "ODOO_URL", ""),
			DB:              getString(v, "ODOO_DB", ""),
			TimeoutSeconds:  getInt(v, "ODOO_TIMEOUT_SECONDS", 20),
			RatePerSecond:   getFloat(v, "ODOO_RATE_PER_SECOND", 8),
			Burst:           getInt(v, "ODOO_BURST", 4),
			CategoryModel:   getString(v, "ODOO_CATEGORY_MODEL", "product.category"),
			ProductLimit:    getInt(v, "ODOO_PRODUCT_LIMIT", 2000),
			SearchLimit:     getInt(v, "ODOO_SEARCH_LIMIT", 50),
			DimensionFields: getList(v, "ODOO_DIMENSION_FIELDS"),
		},
		Quote: QuoteConfig{
			Prefix:          getString(v, "QUOTE_PREFIX", "ASC"),
			VerifyURL:       getString(v, "QUOTE_VERIFY_URL", "https://ascari.com.tr/t"),
			DefaultCustomer: getString(v, "QUOTE_DEFAULT_CUSTOMER", "Müşteri"),
			SyncMaxInFlight: getInt(v, "SYNC_MAX_IN_FLIGHT", 4),
			SyncTimeoutSecs: getInt(v, "SYNC_TIMEOUT_SECONDS", 30),
		},
		Pricing: PricingConfig{
			Mode:               getString(v, "PRICING_MODE", "installment"),
			InstallmentPremium: getString(v, "PRICING_INSTALLMENT_PREMIUM", "0.15"),
			TaxRate:            getString(v, "PRICING_TAX_RATE", "0.20"),
			RoundPlaces:        getInt(v, "PRICING_ROUND_PLACES", 2),
		},
		Company: CompanyConfig{
			Name:    getString(v, "COMPANY_NAME", "ASCARI"),
			Tagline: getString(v, "COMPANY_TAGLINE", "Mobilya & Tasarım"),
		},
		Session: SessionConfig{
			TTLMinutes:     getInt(v, "SESSION_TTL_MINUTES", 720),
			CredentialsKey: getString(v, "CREDENTIALS_KEY", ""),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}

// getList lee listas separadas por coma (ej: "x_width,x_depth,x_height").
func getList(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v.GetString(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
