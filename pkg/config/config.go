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
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Security SecurityConfig
	Sales    SalesConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// IsProduction indica si los errores internos deben ocultarse al cliente.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	AutoMigrate bool // aplica las migraciones embebidas al arrancar la API
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

// JWTConfig configuración del token de sesión.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
	CookieName string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SecurityConfig reglas de bloqueo por intentos de login fallidos.
type SecurityConfig struct {
	MaxLoginAttempts int
	LockoutMinutes   int // 0 = sin expiración, solo desbloqueo manual
}

// SalesConfig comportamiento de la creación de ventas.
type SalesConfig struct {
	DecrementStock bool // registra salida de estoque por item dentro de la transacción de la venta
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := FromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromViper construye la configuración aplicando los valores por defecto.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "micro-erp"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "micro_erp"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", false),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "micro-erp"),
			CookieName: getString(v, "SESSION_COOKIE", "micro_erp_session"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			CORSOrigins: getString(v, "CORS_ORIGINS", "*"),
		},
		Security: SecurityConfig{
			MaxLoginAttempts: getInt(v, "MAX_LOGIN_ATTEMPTS", 5),
			LockoutMinutes:   getInt(v, "LOCKOUT_MINUTES", 0),
		},
		Sales: SalesConfig{
			DecrementStock: getBool(v, "SALES_DECREMENT_STOCK", false),
		},
	}
}

// Validate rechaza configuraciones con las que la API no puede arrancar.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET es obligatorio")
	}
	if c.Security.MaxLoginAttempts <= 0 {
		return fmt.Errorf("config: MAX_LOGIN_ATTEMPTS debe ser mayor que cero")
	}
	if c.Security.LockoutMinutes < 0 {
		return fmt.Errorf("config: LOCKOUT_MINUTES no puede ser negativo")
	}
	return nil
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
		switch v.Get(key).(type) {
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return b
		default:
			return v.GetBool(key)
		}
	}
	return def
}
