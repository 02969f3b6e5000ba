package container

import (
	"go.uber.org/dig"
	"go.uber.org/zap"
	"io"
	"linked-queue/config"
	"linked-queue/internal/interpreter"
	"linked-queue/pkg"
	"os"
)

// Output is the writer command results are printed to.
type Output struct {
	io.Writer
}

func BuildContainer(cfg *config.Config, out io.Writer) (*dig.Container, error) {
	container := dig.New()

	providers := []any{
		func() *config.Config { return cfg },
		func() Output { return Output{Writer: out} },
		func(cfg *config.Config) *zap.Logger {
			return pkg.NewLogger(pkg.LoggerConfig{
				ServiceName: cfg.App.Name,
				LogPath:     cfg.Log.Path,
				Level:       cfg.Log.Level,
				MaxSize:     cfg.Log.MaxSize,
				MaxBackups:  cfg.Log.MaxBackups,
				MaxAge:      cfg.Log.MaxAge,
				Compress:    cfg.Log.Compress,
				Console:     os.Stderr,
			})
		},
		pkg.NewPrometheus,
		func(cfg *config.Config, out Output, logger *zap.Logger, metrics *pkg.Prometheus) *interpreter.Interpreter {
			return interpreter.NewInterpreter(interpreter.Options{
				BufSize: cfg.Queue.BufSize,
				Out:     out.Writer,
				Logger:  logger,
				Metrics: metrics,
			})
		},
	}
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return nil, err
		}
	}
	return container, nil
}

func GetLoggerAndInterpreterFromContainer(container *dig.Container) (*zap.Logger, *interpreter.Interpreter, error) {
	var (
		logger *zap.Logger
		in     *interpreter.Interpreter
	)
	err := container.Invoke(func(l *zap.Logger, i *interpreter.Interpreter) {
		logger = l
		in = i
	})
	if err != nil {
		return nil, nil, err
	}
	return logger, in, nil
}
