package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	StoreDriverPGX          = "pgx"
	StoreDriverGormPostgres = "gorm-postgres"
	StoreDriverSQLite       = "sqlite"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	HTTP     HTTPConfig
	Web      WebConfig
	RabbitMQ RabbitMQConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración del almacén de productos.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Driver      string // pgx | gorm-postgres | sqlite
	SQLitePath  string
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

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	SwaggerFile string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// WebConfig configuración de la página del catálogo.
type WebConfig struct {
	Enabled    bool
	APIBaseURL string // base de /api/products consumida por la UI
}

// RabbitMQConfig publicación de eventos. URL vacía = eventos desactivados.
type RabbitMQConfig struct {
	URL      string
	Exchange string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORE_DRIVER, DB_HOST, HTTP_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración a partir de una instancia de Viper ya preparada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "product-catalog"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Driver:      strings.ToLower(getString(v, "STORE_DRIVER", StoreDriverPGX)),
			SQLitePath:  getString(v, "SQLITE_PATH", "catalog.db"),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "catalog"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      getString(v, "RABBITMQ_URL", ""),
			Exchange: getString(v, "RABBITMQ_EXCHANGE", "catalog.events"),
		},
	}
	cfg.Web = WebConfig{
		Enabled:    getBool(v, "WEB_ENABLED", true),
		APIBaseURL: getString(v, "WEB_API_BASE_URL", fmt.Sprintf("http://127.0.0.1:%d", cfg.HTTP.Port)),
	}

	switch cfg.DB.Driver {
	case StoreDriverPGX, StoreDriverGormPostgres, StoreDriverSQLite:
	default:
		return nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.DB.Driver)
	}
	if cfg.HTTP.Port <= 0 {
		return nil, fmt.Errorf("HTTP_PORT inválido: %d", cfg.HTTP.Port)
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
		case int:
			return v.GetInt(key)
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
		return v.GetBool(key)
	}
	return def
}
