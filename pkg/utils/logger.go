package utils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig - настройки логирования
//
// Output:
//   - "" или "stdout" - стандартный вывод
//   - "stderr" - поток ошибок
//   - путь к файлу - запись в файл с ротацией (lumberjack)
//
// Если директория файла не существует, логгер откатывается на stderr.
type LogConfig struct {
	Level       string
	Format      string // json | text
	Output      string
	Development bool

	// Ротация (только для файлового вывода)
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Logger - обертка над zap.Logger с sugar-версией для форматированных сообщений
type Logger struct {
	*zap.Logger
	sugar *zap.SugaredLogger
}

var (
	globalLogger *Logger
	globalMu     sync.RWMutex
)

// InitLogger создает logger по конфигурации. Никогда не возвращает nil.
func InitLogger(cfg LogConfig) *Logger {
	level := parseLevel(cfg.Level)

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if strings.EqualFold(cfg.Format, "text") || strings.EqualFold(cfg.Format, "console") {
		if cfg.Development {
			encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, openOutput(cfg), level)

	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	}
	if cfg.Development {
		opts = append(opts, zap.Development())
	}

	l := zap.New(core, opts...)
	return &Logger{
		Logger: l,
		sugar:  l.Sugar(),
	}
}

// openOutput выбирает writer для core
func openOutput(cfg LogConfig) zapcore.WriteSyncer {
	switch strings.ToLower(cfg.Output) {
	case "", "stdout":
		return zapcore.Lock(os.Stdout)
	case "stderr":
		return zapcore.Lock(os.Stderr)
	}

	dir := filepath.Dir(cfg.Output)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return zapcore.Lock(os.Stderr)
	}

	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 100
	}

	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.Output,
		MaxSize:    maxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  true,
	})
}

// parseLevel переводит строку в уровень zap; неизвестное значение - info
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// ============================================================
// Глобальный логгер
// ============================================================

// InitGlobalLogger создает logger и делает его глобальным
func InitGlobalLogger(cfg LogConfig) *Logger {
	logger := InitLogger(cfg)
	SetGlobalLogger(logger)
	return logger
}

// SetGlobalLogger заменяет глобальный logger
func SetGlobalLogger(logger *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// GetGlobalLogger возвращает глобальный logger, создавая logger по умолчанию при первом вызове
func GetGlobalLogger() *Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = InitLogger(LogConfig{Level: "info", Format: "json"})
	}
	return globalLogger
}

// L - короткий алиас GetGlobalLogger
func L() *Logger {
	return GetGlobalLogger()
}

// ============================================================
// Методы Logger
// ============================================================

// With возвращает дочерний logger с дополнительными полями
func (l *Logger) With(fields ...zap.Field) *Logger {
	child := l.Logger.With(fields...)
	return &Logger{Logger: child, sugar: child.Sugar()}
}

// WithComponent добавляет имя компонента
func (l *Logger) WithComponent(name string) *Logger {
	return l.With(Component(name))
}

// WithTable добавляет имя таблицы хранилища
func (l *Logger) WithTable(table string) *Logger {
	return l.With(Table(table))
}

// WithRequestID добавляет идентификатор HTTP запроса
func (l *Logger) WithRequestID(id string) *Logger {
	return l.With(RequestID(id))
}

// Sugar возвращает sugared logger
func (l *Logger) Sugar() *zap.SugaredLogger {
	return l.sugar
}

// ============================================================
// Глобальные функции логирования
// ============================================================

func Debug(msg string, fields ...zap.Field) { L().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { L().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { L().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { L().Error(msg, fields...) }

func Debugf(template string, args ...interface{}) { L().sugar.Debugf(template, args...) }
func Infof(template string, args ...interface{})  { L().sugar.Infof(template, args...) }
func Warnf(template string, args ...interface{})  { L().sugar.Warnf(template, args...) }
func Errorf(template string, args ...interface{}) { L().sugar.Errorf(template, args...) }

// ============================================================
// Конструкторы полей
// ============================================================

func Table(name string) zap.Field       { return zap.String("table", name) }
func Backend(name string) zap.Field     { return zap.String("backend", name) }
func Path(path string) zap.Field        { return zap.String("path", path) }
func Method(method string) zap.Field    { return zap.String("method", method) }
func Status(code int) zap.Field         { return zap.Int("status", code) }
func RequestID(id string) zap.Field     { return zap.String("request_id", id) }
func ClientIP(addr string) zap.Field    { return zap.String("client_ip", addr) }
func Component(name string) zap.Field   { return zap.String("component", name) }
func Bytes(n int64) zap.Field           { return zap.Int64("bytes", n) }
func Latency(d time.Duration) zap.Field { return zap.Float64("latency_ms", float64(d.Microseconds())/1000) }

// Переэкспорт стандартных конструкторов zap
var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Float64  = zap.Float64
	Bool     = zap.Bool
	Err      = zap.Error
	Any      = zap.Any
	Duration = zap.Duration
)
