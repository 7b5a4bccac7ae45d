package utils

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ============================================================
// Тесты InitLogger
// ============================================================

func TestInitLogger_Defaults(t *testing.T) {
	logger := InitLogger(LogConfig{})

	if logger == nil {
		t.Fatal("InitLogger returned nil")
	}
	if logger.Logger == nil {
		t.Fatal("Logger.Logger is nil")
	}
	if logger.sugar == nil {
		t.Fatal("Logger.sugar is nil")
	}
}

func TestInitLogger_Formats(t *testing.T) {
	configs := []LogConfig{
		{Level: "info", Format: "json"},
		{Level: "debug", Format: "text"},
		{Level: "debug", Format: "text", Development: true},
		{Level: "warn", Output: "stderr"},
	}

	for _, cfg := range configs {
		if logger := InitLogger(cfg); logger == nil {
			t.Fatalf("InitLogger returned nil for %+v", cfg)
		}
	}
}

func TestInitLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.log")

	logger := InitLogger(LogConfig{
		Level:  "info",
		Format: "json",
		Output: path,
	})

	logger.Info("Test message", zap.String("key", "value"))
	logger.Sync()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if len(content) == 0 {
		t.Fatal("Log file is empty")
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(content, &entry); err != nil {
		t.Errorf("Log entry is not valid JSON: %v", err)
	}
	if entry["key"] != "value" {
		t.Errorf("expected key=value in entry, got %v", entry)
	}
}

func TestInitLogger_InvalidFileOutput(t *testing.T) {
	// Несуществующая директория - fallback на stderr, без паники
	logger := InitLogger(LogConfig{
		Level:  "info",
		Output: "/nonexistent/directory/log.txt",
	})

	if logger == nil {
		t.Fatal("InitLogger returned nil for invalid output")
	}
	if _, err := os.Stat("/nonexistent/directory"); err == nil {
		t.Error("logger must not create missing directories")
	}
}

// ============================================================
// Тесты глобального логгера
// ============================================================

func TestGlobalLogger(t *testing.T) {
	globalMu.Lock()
	globalLogger = nil
	globalMu.Unlock()

	logger := GetGlobalLogger()
	if logger == nil {
		t.Fatal("GetGlobalLogger returned nil")
	}
	if GetGlobalLogger() != logger {
		t.Error("GetGlobalLogger returned different loggers")
	}
	if L() != logger {
		t.Error("L() returned different logger")
	}
}

func TestInitGlobalLogger(t *testing.T) {
	logger := InitGlobalLogger(LogConfig{Level: "debug", Format: "text"})
	if GetGlobalLogger() != logger {
		t.Error("Global logger was not set")
	}
}

// ============================================================
// Тесты parseLevel
// ============================================================

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"ERROR", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{" info ", zapcore.InfoLevel},
		{"invalid", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := parseLevel(tt.input); result != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

// ============================================================
// Тесты методов Logger
// ============================================================

func TestLogger_WithHelpers(t *testing.T) {
	logger := InitLogger(LogConfig{Level: "info"})

	tests := []struct {
		name   string
		helper func() *Logger
	}{
		{"With", func() *Logger { return logger.With(zap.String("key", "value")) }},
		{"WithComponent", func() *Logger { return logger.WithComponent("status") }},
		{"WithTable", func() *Logger { return logger.WithTable("ai_decisions") }},
		{"WithRequestID", func() *Logger { return logger.WithRequestID("req-1") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newLogger := tt.helper()
			if newLogger == nil {
				t.Fatalf("%s returned nil", tt.name)
			}
			if newLogger == logger {
				t.Errorf("%s should return a new logger", tt.name)
			}
			if newLogger.Sugar() == nil {
				t.Errorf("%s returned logger without sugar", tt.name)
			}
		})
	}
}

// newBufferLogger создает logger, пишущий в буфер
func newBufferLogger(buf *bytes.Buffer, level zapcore.Level) *Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			MessageKey: "message",
			LevelKey:   "level",
		}),
		zapcore.AddSync(buf),
		level,
	)
	l := zap.New(core)
	return &Logger{Logger: l, sugar: l.Sugar()}
}

// ============================================================
// Тесты глобальных функций логирования
// ============================================================

func TestGlobalLoggingFunctions(t *testing.T) {
	var buf bytes.Buffer
	testLogger := newBufferLogger(&buf, zapcore.DebugLevel)
	SetGlobalLogger(testLogger)

	Debug("debug message", zap.String("key", "debug"))
	Info("info message", zap.String("key", "info"))
	Warn("warn message", zap.String("key", "warn"))
	Error("error message", zap.String("key", "error"))
	Debugf("debug %s %d", "test", 1)
	Infof("info %s %d", "test", 2)
	Warnf("warn %s %d", "test", 3)
	Errorf("error %s %d", "test", 4)

	testLogger.Sync()
	output := buf.String()

	for _, want := range []string{
		"debug message", "info message", "warn message", "error message",
		"debug test 1", "info test 2", "warn test 3", "error test 4",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("%q not found in output", want)
		}
	}
}

// ============================================================
// Тесты конструкторов полей
// ============================================================

func TestFieldConstructors(t *testing.T) {
	var buf bytes.Buffer
	testLogger := newBufferLogger(&buf, zapcore.InfoLevel)

	testLogger.Info("test",
		Table("trading_stats"),
		Backend("postgres"),
		Path("/api/status"),
		Method("GET"),
		Status(200),
		RequestID("req-789"),
		ClientIP("10.0.0.1"),
		Component("status"),
		Bytes(512),
		Latency(15500*time.Microsecond),
	)

	testLogger.Sync()
	output := buf.String()

	expectedFields := []string{
		`"table":"trading_stats"`,
		`"backend":"postgres"`,
		`"path":"/api/status"`,
		`"method":"GET"`,
		`"status":200`,
		`"request_id":"req-789"`,
		`"client_ip":"10.0.0.1"`,
		`"component":"status"`,
		`"bytes":512`,
		`"latency_ms":15.5`,
	}

	for _, field := range expectedFields {
		if !strings.Contains(output, field) {
			t.Errorf("Field %s not found in output: %s", field, output)
		}
	}
}

func TestReexportedFieldConstructors(t *testing.T) {
	_ = String("key", "value")
	_ = Int("key", 42)
	_ = Int64("key", 42)
	_ = Float64("key", 3.14)
	_ = Bool("key", true)
	_ = Err(nil)
	_ = Any("key", struct{}{})
	_ = Duration("key", time.Second)
}

// ============================================================
// Бенчмарки
// ============================================================

func BenchmarkLogger_Info(b *testing.B) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf, zapcore.InfoLevel)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("Benchmark message",
			zap.String("key", "value"),
			zap.Int("count", i),
		)
		buf.Reset()
	}
}
