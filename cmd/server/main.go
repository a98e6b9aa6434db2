// Package main is the entry point of the clock server
package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tecu23/chess-clock/internal/auth"
	"github.com/tecu23/chess-clock/internal/metrics"
	"github.com/tecu23/chess-clock/pkg/config"
	"github.com/tecu23/chess-clock/pkg/events"
	"github.com/tecu23/chess-clock/pkg/manager"
	"github.com/tecu23/chess-clock/pkg/presets"
	"github.com/tecu23/chess-clock/pkg/server"
)

// App encapsulates global dependencies
type application struct {
	Auth      *auth.APIKeyAuth
	Logger    *zap.Logger
	Config    *config.Config
	Publisher *events.Publisher
	Manager   *manager.Manager
	Hub       *server.Hub
	Server    *http.Server
	Upgrader  websocket.Upgrader

	StartTime time.Time
}

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	port := flag.String("port", "8080", "server port")
	presetsFile := flag.String("presets", "", "YAML file with additional presets")
	flag.Parse()

	// Initialize logger
	logger := initLogger(*debug)
	defer logger.Sync()

	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("no .env file loaded, using the process environment", zap.Error(err))
	}

	cfg, err := config.FromEnv(config.Config{
		Debug:       *debug,
		Port:        *port,
		PresetsFile: *presetsFile,
	}, os.Getenv)
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	registry, err := loadPresets(cfg.PresetsFile, logger)
	if err != nil {
		logger.Fatal("loading presets", zap.Error(err))
	}

	// Initialize event publisher
	publisher := events.NewPublisher()
	m := metrics.Get()

	// Initialize session manager
	sm := manager.NewManager(logger, publisher, registry, m, manager.WithTickInterval(cfg.TickInterval))

	hub := server.NewHub(sm, registry, publisher, m, logger)

	app := &application{
		Auth:      auth.NewAPIKeyAuth(cfg.APIKeys),
		Logger:    logger,
		Config:    &cfg,
		Publisher: publisher,
		Manager:   sm,
		Hub:       hub,
		Upgrader:  newUpgrader(cfg.FrontendOrigin),
		StartTime: time.Now(),
	}

	if !app.Auth.Enabled() {
		logger.Warn("API_KEYS is empty, the websocket endpoint is open to everyone")
	}

	go app.Hub.Run()

	if err := app.serve(); err != nil {
		logger.Fatal("error serving", zap.Error(err))
	}
}

func initLogger(debug bool) *zap.Logger {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	return logger
}

// loadPresets builds the preset registry from the built-ins plus the optional file.
func loadPresets(file string, logger *zap.Logger) (*presets.Registry, error) {
	registry, err := presets.NewRegistry(presets.Defaults()...)
	if err != nil {
		return nil, err
	}
	if file == "" {
		return registry, nil
	}

	list, err := presets.LoadFile(file)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		if err := registry.Add(p); err != nil {
			return nil, err
		}
	}

	logger.Info("loaded presets", zap.String("file", file), zap.Int("count", len(list)))
	return registry, nil
}

func newUpgrader(origin string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,

		CheckOrigin: func(r *http.Request) bool {
			if origin == "" {
				return true
			}
			return origin == r.Header.Get("Origin")
		},
	}
}

// Shutdown cleans up resources
func (app *application) Shutdown() {
	if app.Manager != nil {
		app.Manager.Shutdown()
	}

	if app.Hub != nil {
		app.Hub.Shutdown()
	}

	app.Logger.Info("All components shut down successfully")
}
