package application

import (
	"context"
	"go.uber.org/zap"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"
	"syscall"
)

type shutdownList struct {
	node *shutdown
}

type shutdown struct {
	priority     int
	name         string
	next         *shutdown
	shutdownFunc func() error
}

type App struct {
	ctx         context.Context
	shutdownRWM sync.RWMutex
	shutdown    *shutdownList
	logger      *zap.Logger
	sig         chan os.Signal
	exit        func(code int)
}

func NewApp(ctx context.Context, logger *zap.Logger) *App {
	return &App{
		shutdown: &shutdownList{},
		logger:   logger,
		ctx:      ctx,
		sig:      make(chan os.Signal, 1),
		exit:     os.Exit,
	}
}

// OnExit replaces os.Exit in the panic handler.
func (app *App) OnExit(fn func(code int)) {
	app.exit = fn
}

// RegisterShutdown registers a shutdown function with a priority.
// priority 0 runs first; equal priorities run in registration order.
func (app *App) RegisterShutdown(name string, fn func() error, priority int) {
	app.shutdownRWM.Lock()
	defer app.shutdownRWM.Unlock()
	newShutdown := &shutdown{
		name:         name,
		priority:     priority,
		shutdownFunc: fn,
	}
	if app.shutdown.node == nil || app.shutdown.node.priority > priority {
		newShutdown.next = app.shutdown.node
		app.shutdown.node = newShutdown
		return
	}
	current := app.shutdown.node
	for current.next != nil && current.next.priority <= priority {
		current = current.next
	}
	newShutdown.next = current.next
	current.next = newShutdown
}

// ShutdownByName runs and unregisters the first shutdown function with that name.
func (app *App) ShutdownByName(name string) bool {
	app.shutdownRWM.Lock()
	defer app.shutdownRWM.Unlock()
	if app.shutdown.node == nil {
		return false
	}
	if app.shutdown.node.name == name {
		app.run(app.shutdown.node)
		app.shutdown.node = app.shutdown.node.next
		return true
	}
	current := app.shutdown.node
	for current.next != nil {
		if current.next.name == name {
			app.run(current.next)
			current.next = current.next.next
			return true
		}
		current = current.next
	}
	return false
}

func (app *App) Registered() []string {
	app.shutdownRWM.RLock()
	defer app.shutdownRWM.RUnlock()
	var names []string
	for current := app.shutdown.node; current != nil; current = current.next {
		names = append(names, current.name)
	}
	return names
}

func (app *App) shutdownAll() {
	app.shutdownRWM.Lock()
	defer app.shutdownRWM.Unlock()
	for app.shutdown.node != nil {
		app.run(app.shutdown.node)
		app.shutdown.node = app.shutdown.node.next
	}
}

func (app *App) run(s *shutdown) {
	if err := s.shutdownFunc(); err != nil {
		app.logger.Warn("shutdown failed", zap.String("name", s.name), zap.Int("priority", s.priority), zap.Error(err))
		return
	}
	app.logger.Debug("shutdown done", zap.String("name", s.name), zap.Int("priority", s.priority))
}

func (app *App) Stop() {
	app.logger.Debug("stopping application")
	app.shutdownAll()
}

// Start cancels the application context on SIGINT or SIGTERM.
func (app *App) Start(cancel context.CancelFunc) {
	signal.Notify(app.sig, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(app.sig)
		select {
		case <-app.sig:
			app.logger.Info("signal received, shutting down")
			cancel()
		case <-app.ctx.Done():
		}
	}()
}

// RegisterRecovers must be deferred at the top of every goroutine that can
// panic: recover only sees panics of its own goroutine.
func (app *App) RegisterRecovers() func() {
	return func() {
		if r := recover(); r != nil {
			app.logger.Error("panic in application",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())),
			)
			app.Stop()
			app.exit(2)
		}
	}
}
