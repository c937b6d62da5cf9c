package logger

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log *zap.SugaredLogger

// Config настройки логгера
type Config struct {
	Env        string // "development" или "production"
	Level      string
	File       string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// Init инициализирует глобальный логгер
func Init(cfg Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	log = l.Sugar()
	zap.ReplaceGlobals(l)
	return nil
}

// New собирает zap.Logger по конфигу
func New(cfg Config) (*zap.Logger, error) {
	dev := cfg.Env == "development"

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
		if dev {
			level = zapcore.DebugLevel
		}
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if dev {
		// Development: читаемый текстовый формат
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		// Production: JSON формат для парсинга
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	writeSyncer := zapcore.AddSync(os.Stdout)
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, err
		}
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		writeSyncer = zapcore.NewMultiWriteSyncer(zapcore.AddSync(rotating), writeSyncer)
	}

	core := zapcore.NewCore(encoder, writeSyncer, level)
	opts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1)}
	if dev {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}
	return zap.New(core, opts...), nil
}

// GetLogger возвращает глобальный логгер
func GetLogger() *zap.SugaredLogger {
	if log == nil {
		// Fallback если Init не вызван
		log = zap.NewNop().Sugar()
	}
	return log
}

// SetLogger подменяет глобальный логгер (используется в тестах)
func SetLogger(l *zap.SugaredLogger) {
	log = l
}

// ============================================
// Convenience функции для быстрого логирования
// ============================================

func Debug(msg string, args ...any) { GetLogger().Debugw(msg, args...) }

func Info(msg string, args ...any) { GetLogger().Infow(msg, args...) }

func Warn(msg string, args ...any) { GetLogger().Warnw(msg, args...) }

func Error(msg string, args ...any) { GetLogger().Errorw(msg, args...) }

// Fatal логирует fatal ошибку и завершает программу
func Fatal(msg string, args ...any) {
	GetLogger().Fatalw(msg, args...)
}

// Sync сбрасывает буферы
func Sync() {
	_ = GetLogger().Sync()
}

// ============================================
// Логирование с дополнительными полями
// ============================================

// With создает новый логгер с дополнительными полями
// Пример: logger.With("user_id", 123, "action", "login").Infow("user logged in")
func With(args ...any) *zap.SugaredLogger {
	return GetLogger().With(args...)
}

// WithError создает логгер с полем error
func WithError(err error) *zap.SugaredLogger {
	return GetLogger().With("error", err.Error())
}

// ============================================
// Специализированные логгеры
// ============================================

// HTTPLog логирует HTTP запрос
func HTTPLog(method, path string, status int, duration time.Duration, size int) {
	fields := []any{
		"method", method,
		"path", path,
		"status", status,
		"duration_ms", duration.Milliseconds(),
		"size_bytes", size,
	}
	switch {
	case status >= 500:
		GetLogger().Errorw("http server error", fields...)
	case status >= 400:
		GetLogger().Warnw("http client error", fields...)
	default:
		GetLogger().Infow("http request", fields...)
	}
}

// DBLog логирует database операцию
func DBLog(operation, query string, duration time.Duration, err error) {
	fields := []any{
		"operation", operation,
		"query", query,
		"duration_ms", duration.Milliseconds(),
	}

	if err != nil {
		fields = append(fields, "error", err.Error())
		GetLogger().Errorw("database operation failed", fields...)
	} else {
		GetLogger().Debugw("database operation", fields...)
	}
}
