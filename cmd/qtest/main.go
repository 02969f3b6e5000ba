package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/chzyer/readline"
	"github.com/oklog/run"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"io"
	"linked-queue/application"
	"linked-queue/config"
	"linked-queue/container"
	"linked-queue/internal/interpreter"
	"linked-queue/pkg"
	"os"
	"sync"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		quiet      bool
	)
	root := &cobra.Command{
		Use:          "qtest",
		Short:        "Interactive harness for the linked string queue",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHarness(cmd, configPath, quiet)
		},
	}
	root.Flags().StringVar(&configPath, "config", "config.yaml", "path to the config file")
	root.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the prompt")
	return root
}

func runHarness(cmd *cobra.Command, configPath string, quiet bool) error {
	cfg, err := config.GetConfig(configPath)
	if err != nil {
		return err
	}

	digContainer, err := container.BuildContainer(cfg, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("build container: %w", err)
	}
	logger, in, err := container.GetLoggerAndInterpreterFromContainer(digContainer)
	if err != nil {
		return fmt.Errorf("resolve services: %w", err)
	}

	father, cancel := context.WithCancel(cmd.Context())
	father = pkg.LoggerWithCtx(father, logger)
	defer cancel()

	app := application.NewApp(father, logger)
	app.Start(cancel)
	defer app.Stop()
	defer app.RegisterRecovers()()

	app.RegisterShutdown("logger", func() error {
		// stderr sync fails on some terminals, nothing to do about it
		_ = logger.Sync()
		return nil
	}, 101)

	prompt := cfg.Queue.Prompt
	if quiet {
		prompt = ""
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("create readline: %w", err)
	}
	closeReader := sync.OnceValue(rl.Close)
	app.RegisterShutdown("readline", closeReader, 1)
	app.RegisterShutdown("queue", func() error {
		in.Close()
		return nil
	}, 10)

	logger.Info("harness started",
		zap.String("session", in.Session()),
		zap.Int("buf_size", cfg.Queue.BufSize),
	)

	var g run.Group
	g.Add(serveActor(father, app, in, rl), func(error) {
		cancel()
		_ = closeReader()
	})
	g.Add(func() error {
		<-father.Done()
		return nil
	}, func(error) {
		cancel()
	})

	if err := g.Run(); err != nil {
		logger.Error("harness stopped", zap.Error(err))
		return err
	}

	if n := in.Errors(); n > 0 {
		logger.Warn("harness finished with errors", zap.Int("errors", n))
		return fmt.Errorf("%d command(s) failed", n)
	}
	logger.Info("harness finished")
	return nil
}

// serveActor runs the interpreter on its own goroutine, so it carries
// its own panic handler.
func serveActor(ctx context.Context, app *application.App, in *interpreter.Interpreter, r interpreter.LineReader) func() error {
	return func() error {
		defer app.RegisterRecovers()()
		err := in.Serve(ctx, r)
		if errors.Is(err, readline.ErrInterrupt) {
			return nil
		}
		return err
	}
}
