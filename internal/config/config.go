package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"tradedash/pkg/utils"
)

// Драйверы хранилища
const (
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
	DriverPostgREST = "postgrest"
	DriverFile      = "file"
)

// Поддерживаемые локали интерфейса
var supportedLocales = map[string]bool{
	"zh-CN": true,
	"en":    true,
}

// Config содержит всю конфигурацию приложения
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Dashboard DashboardConfig
	Logging   LoggingConfig
	Metrics   MetricsConfig
	CORS      CORSConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Port            int
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig - настройки подключения к хранилищу
//
// Driver выбирается явно через DB_DRIVER. Если он не задан, драйвер
// определяется по тому, что настроено: SUPABASE_URL -> postgrest,
// DATABASE_URL или DB_HOST -> postgres, DB_PATH -> sqlite, DATA_DIR -> file.
// Если не настроено ничего, Driver остается пустым: сервис стартует,
// но все запросы к хранилищу завершаются ошибкой.
type DatabaseConfig struct {
	Driver string

	// postgres
	URL      string
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string

	// sqlite
	Path string

	// file: каталог с JSON файлами, которые торговый процесс пишет без базы
	DataDir string

	// postgrest (Supabase)
	SupabaseURL string
	SupabaseKey string
	// Лимит запросов к REST API в секунду, 0 - без ограничения
	RateLimit float64

	Schema       string
	Tables       TableNames
	QueryTimeout time.Duration

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// Проверка доступности при старте
	PingAttempts int
	PingTimeout  time.Duration
}

// TableNames - имена таблиц, которые пишет торговый процесс
type TableNames struct {
	Stats     string
	Decisions string
	Runtime   string
	Account   string
}

// DashboardConfig - параметры страницы мониторинга
type DashboardConfig struct {
	Title        string
	Subtitle     string
	PollInterval time.Duration
	HistoryLimit int
	Locale       string
	Timezone     string
}

// LoggingConfig - настройки логирования
type LoggingConfig struct {
	Level       string
	Format      string
	Output      string
	Development bool
	MaxSizeMB   int
	MaxBackups  int
	MaxAgeDays  int
}

// MetricsConfig - настройки Prometheus endpoint
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// CORSConfig - дополнительные разрешенные origins
type CORSConfig struct {
	AllowedOrigins []string
}

// LoadEnvFile подгружает переменные из .env файла.
//
// Уже заданные переменные окружения не перезаписываются.
// Отсутствие файла по умолчанию (.env) не считается ошибкой.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}

	err := godotenv.Load(path)
	if err != nil && errors.Is(err, os.ErrNotExist) && path == ".env" {
		return nil
	}
	return err
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Driver:      strings.ToLower(getEnv("DB_DRIVER", "")),
			URL:         getEnv("DATABASE_URL", ""),
			Host:        getEnv("DB_HOST", ""),
			Port:        getEnvAsInt("DB_PORT", 5432),
			Name:        getEnv("DB_NAME", "postgres"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", ""),
			SSLMode:     getEnv("DB_SSL_MODE", "require"),
			Path:        getEnv("DB_PATH", ""),
			DataDir:     getEnv("DATA_DIR", ""),
			SupabaseURL: strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
			// SUPABASE_KEY - имя, под которым ключ хранит торговый процесс
			SupabaseKey: getEnv("SUPABASE_ANON_KEY", getEnv("SUPABASE_KEY", "")),
			RateLimit:   getEnvAsFloat("SUPABASE_RATE_LIMIT", 10),
			Schema:      getEnv("DB_SCHEMA", ""),
			Tables: TableNames{
				Stats:     getEnv("TABLE_TRADING_STATS", "trading_stats"),
				Decisions: getEnv("TABLE_AI_DECISIONS", "ai_decisions"),
				Runtime:   getEnv("TABLE_RUNTIME_INFO", "runtime_info"),
				Account:   getEnv("TABLE_ACCOUNT_INFO", "account_info"),
			},
			QueryTimeout:    getEnvAsDuration("QUERY_TIMEOUT", 10*time.Second),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			PingAttempts:    getEnvAsInt("DB_PING_ATTEMPTS", 3),
			PingTimeout:     getEnvAsDuration("DB_PING_TIMEOUT", 5*time.Second),
		},
		Dashboard: DashboardConfig{
			Title:        getEnv("DASHBOARD_TITLE", ""),
			Subtitle:     getEnv("DASHBOARD_SUBTITLE", ""),
			PollInterval: getEnvAsDuration("DASHBOARD_POLL_INTERVAL", 30*time.Second),
			HistoryLimit: getEnvAsInt("DASHBOARD_HISTORY_LIMIT", 20),
			Locale:       getEnv("DASHBOARD_LOCALE", "zh-CN"),
			Timezone:     getEnv("DASHBOARD_TIMEZONE", "Local"),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Format:      getEnv("LOG_FORMAT", "json"),
			Output:      getEnv("LOG_OUTPUT", "stdout"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
			MaxSizeMB:   getEnvAsInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups:  getEnvAsInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays:  getEnvAsInt("LOG_MAX_AGE_DAYS", 30),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		},
	}

	cfg.Database.Driver = cfg.Database.resolveDriver()

	if err := cfg.validateRanges(); err != nil {
		return nil, err
	}

	if err := cfg.validateNames(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveDriver определяет драйвер, если DB_DRIVER не задан явно
func (d DatabaseConfig) resolveDriver() string {
	if d.Driver != "" {
		return d.Driver
	}

	switch {
	case d.SupabaseURL != "":
		return DriverPostgREST
	case d.URL != "" || d.Host != "":
		return DriverPostgres
	case d.Path != "":
		return DriverSQLite
	case d.DataDir != "":
		return DriverFile
	default:
		return ""
	}
}

// Configured сообщает, достаточно ли настроек для подключения к хранилищу
func (d DatabaseConfig) Configured() bool {
	switch d.Driver {
	case DriverPostgres:
		return d.URL != "" || d.Host != ""
	case DriverSQLite:
		return d.Path != ""
	case DriverPostgREST:
		return d.SupabaseURL != "" && d.SupabaseKey != ""
	case DriverFile:
		return d.DataDir != ""
	default:
		return false
	}
}

// validateRanges проверяет числовые диапазоны и перечисления
func (c *Config) validateRanges() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("DB_PORT must be between 1 and 65535, got %d", c.Database.Port)
	}

	switch c.Database.Driver {
	case "", DriverPostgres, DriverSQLite, DriverPostgREST, DriverFile:
	default:
		return fmt.Errorf("DB_DRIVER must be one of postgres, sqlite, postgrest, file, got %q", c.Database.Driver)
	}

	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("QUERY_TIMEOUT must be positive, got %v", c.Database.QueryTimeout)
	}

	if c.Database.RateLimit < 0 {
		return fmt.Errorf("SUPABASE_RATE_LIMIT must not be negative, got %v", c.Database.RateLimit)
	}

	if c.Database.PingAttempts < 1 || c.Database.PingAttempts > 10 {
		return fmt.Errorf("DB_PING_ATTEMPTS must be between 1 and 10, got %d", c.Database.PingAttempts)
	}

	if c.Dashboard.PollInterval < time.Second {
		return fmt.Errorf("DASHBOARD_POLL_INTERVAL must be at least 1s, got %v", c.Dashboard.PollInterval)
	}

	if c.Dashboard.HistoryLimit < 1 || c.Dashboard.HistoryLimit > 200 {
		return fmt.Errorf("DASHBOARD_HISTORY_LIMIT must be between 1 and 200, got %d", c.Dashboard.HistoryLimit)
	}

	if !supportedLocales[c.Dashboard.Locale] {
		return fmt.Errorf("DASHBOARD_LOCALE must be zh-CN or en, got %q", c.Dashboard.Locale)
	}

	if _, err := time.LoadLocation(c.Dashboard.Timezone); err != nil {
		return fmt.Errorf("DASHBOARD_TIMEZONE: %w", err)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("METRICS_PATH must start with '/', got %q", c.Metrics.Path)
	}

	return nil
}

// validateNames проверяет имена схемы и таблиц, которые подставляются в SQL
func (c *Config) validateNames() error {
	if c.Database.Schema != "" {
		if err := utils.ValidateIdentifier(c.Database.Schema); err != nil {
			return fmt.Errorf("DB_SCHEMA: %w", err)
		}
	}

	names := map[string]string{
		"TABLE_TRADING_STATS": c.Database.Tables.Stats,
		"TABLE_AI_DECISIONS":  c.Database.Tables.Decisions,
		"TABLE_RUNTIME_INFO":  c.Database.Tables.Runtime,
		"TABLE_ACCOUNT_INFO":  c.Database.Tables.Account,
	}
	for key, name := range names {
		if err := utils.ValidateIdentifier(name); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	return nil
}

// Location возвращает часовой пояс для отображения времени
func (d DashboardConfig) Location() *time.Location {
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// DSN возвращает строку подключения к Postgres
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// DSNWithoutPassword возвращает описание подключения без секретов (для логирования)
func (d DatabaseConfig) DSNWithoutPassword() string {
	switch d.Driver {
	case DriverSQLite:
		return "sqlite:" + d.Path
	case DriverPostgREST:
		return d.SupabaseURL + "/rest/v1"
	case DriverFile:
		return "file:" + d.DataDir
	}
	if d.URL != "" {
		return "postgres url (redacted)"
	}
	return fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Name, d.SSLMode)
}

// Вспомогательные функции для чтения переменных окружения

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string) []string {
	var result []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
