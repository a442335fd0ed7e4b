package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dragon-editor/dragondata/internal/config"
	"github.com/dragon-editor/dragondata/internal/gamefolder"
	"github.com/dragon-editor/dragondata/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// app holds the state shared by every command of one invocation.
type app struct {
	configDir string

	sessionStart time.Time
	fs           afero.Fs

	slogManager *logging.SlogManager
	logger      *slog.Logger
	dbLogger    zerolog.Logger
	logFile     *os.File
}

func newApp() *app {
	return &app{
		sessionStart: time.Now(),
		fs:           afero.NewOsFs(),
		slogManager:  logging.NewSlogManager(),
		logger:       slog.Default(),
		dbLogger:     zerolog.Nop(),
	}
}

// setup loads configuration and starts logging. A missing config file is not fatal.
func (a *app) setup() error {
	cfgErr := config.Load(a.configDir)

	level := viper.GetString("logLevel")
	logsDir := viper.GetString("logsDir")

	var logOut io.Writer
	f, logErr := logging.OpenSessionLog(logsDir, AppName, a.sessionStart)
	if logErr == nil {
		a.logFile = f
		logOut = f
	}

	var remote io.Writer
	var remoteErr error
	if gl := config.GetGraylogConfig(); gl.Enabled {
		remote, remoteErr = logging.NewGelfWriter(gl.Address)
	}

	if logOut != nil {
		a.slogManager.Setup(logOut, level, remote)
		a.dbLogger = logging.Zerolog(logOut, level)
	} else {
		a.slogManager.Setup(nil, level, remote)
		a.dbLogger = logging.Zerolog(os.Stderr, level)
	}
	a.logger = a.slogManager.Logger()

	if cfgErr != nil {
		a.logger.Warn("Failed to load config, using defaults!", "error", cfgErr)
	} else {
		a.logger.Info("Loaded config", "file", viper.ConfigFileUsed())
	}
	if logErr != nil {
		a.logger.Warn("Logging to console only", "logsDir", logsDir, "error", logErr)
	} else {
		a.logger.Info("Begin logging in logs directory", "path", a.logFile.Name())
	}
	if remoteErr != nil {
		a.logger.Warn("Graylog disabled", "error", remoteErr)
	}
	a.logger.Info("Starting", "app", AppName, "version", CurrentVersion, "build", BuildDate)
	return nil
}

func (a *app) close() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}

// openFolder loads the configured game folder. Scan problems are logged and the
// partially loaded folder is still returned.
func (a *app) openFolder(ctx context.Context) (*gamefolder.Folder, error) {
	cfg := config.GetFolderConfig()
	if cfg.Path == "" {
		return nil, errors.New("game folder not set (use --game-folder or gameFolder in config)")
	}

	f, err := gamefolder.Open(ctx, cfg.Path, gamefolder.Options{
		Fs:      a.fs,
		Workers: cfg.Workers,
		Logger:  a.logger,
	})
	if f == nil {
		return nil, err
	}
	if err != nil {
		a.logger.Warn("Game folder incomplete", "root", cfg.Path, "error", err)
	}
	return f, nil
}
