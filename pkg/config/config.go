package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	Data DataConfig
	DB   DBConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
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

// DataConfig origen del dataset de transacciones.
type DataConfig struct {
	Source   string // xlsx | csv | postgres; vacío = deducir de la extensión de Path
	Path     string // ruta al .xlsx / .csv
	Sheet    string // hoja del libro; vacío = primera
	Encoding string // solo CSV: utf8 | latin1 | windows1252
	Table    string // solo postgres: tabla o esquema.tabla
}

// UsesPostgres indica si el dataset se lee desde PostgreSQL.
func (c DataConfig) UsesPostgres() bool {
	return strings.EqualFold(c.Source, "postgres")
}

// DBConfig configuración de PostgreSQL (solo con DATA_SOURCE=postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
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

// DSN devuelve el connection string con URL encoding para caracteres especiales de la contraseña.
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

// Load lee la configuración desde variables de entorno (y opcionalmente desde .env / config.env).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, DATA_PATH, DB_HOST, etc.
func Load() (*Config, error) {
	return LoadWithFlags(nil, nil)
}

// LoadWithFlags igual que Load, pero los flags de línea de comandos indicados en bindings
// (clave de config → nombre del flag) tienen prioridad sobre env y archivos cuando se usan.
func LoadWithFlags(flags *pflag.FlagSet, bindings map[string]string) (*Config, error) {
	v := viper.New()
	for key, name := range bindings {
		f := flags.Lookup(name)
		if f == nil {
			return nil, fmt.Errorf("config: flag %q no definido", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("config: enlazar flag %q: %w", name, err)
		}
	}

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "retail-analytics"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Data: DataConfig{
			Source:   strings.ToLower(getString(v, "DATA_SOURCE", "")),
			Path:     getString(v, "DATA_PATH", "data/Online Retail.xlsx"),
			Sheet:    getString(v, "DATA_SHEET", ""),
			Encoding: getString(v, "DATA_ENCODING", "utf8"),
			Table:    getString(v, "DATA_TABLE", "online_retail"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "retail"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
	}

	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return nil, fmt.Errorf("config: HTTP_PORT fuera de rango: %d", cfg.HTTP.Port)
	}
	switch cfg.Data.Source {
	case "", "xlsx", "csv", "postgres":
	default:
		return nil, fmt.Errorf("config: DATA_SOURCE no soportado: %q", cfg.Data.Source)
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
				return -1
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
