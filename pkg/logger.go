package pkg

import (
	"context"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"io"
	"os"
)

type ctxKey struct{}

type LoggerConfig struct {
	ServiceName string
	LogPath     string
	Level       string
	MaxSize     int
	MaxBackups  int
	MaxAge      int
	Compress    bool
	// Console defaults to os.Stdout.
	Console io.Writer
}

func NewLogger(cfg LoggerConfig) *zap.Logger {
	console := cfg.Console
	if console == nil {
		console = os.Stdout
	}
	stdout := zapcore.AddSync(console)

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zap.InfoLevel
	}
	logLevel := zap.NewAtomicLevelAt(level)

	developmentCfg := zap.NewDevelopmentEncoderConfig()
	developmentCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(developmentCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, stdout, logLevel),
	}

	// log to multiple destinations (console and file)
	// extra fields are added to the JSON output alone
	if cfg.LogPath != "" {
		file := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogPath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
		fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEncoder, file, logLevel))
	}

	return zap.New(zapcore.NewTee(cores...)).With(zap.String("application", cfg.ServiceName))
}

// LoggerFromCtx returns nil when ctx carries no logger.
func LoggerFromCtx(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}

	return nil
}

func LoggerWithCtx(ctx context.Context, l *zap.Logger) context.Context {
	if lp, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		if lp == l {
			return ctx
		}
	}

	return context.WithValue(ctx, ctxKey{}, l)
}
