// Package internal provides the App struct that wires all components of
// taskdeck together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/taskdeck/taskdeck/internal/cli"
	"github.com/taskdeck/taskdeck/internal/core"
	"github.com/taskdeck/taskdeck/internal/observability"
	"github.com/taskdeck/taskdeck/internal/storage"
	"github.com/taskdeck/taskdeck/pkg/models"
)

// App holds all service dependencies for taskdeck.
type App struct {
	BasePath string
	Config   models.Config

	// Storage layer
	Slot storage.SlotManager

	// Core services
	Store     *core.TaskStore
	Scheduler *core.ReminderScheduler

	// Observability
	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
	Notifier    observability.Notifier
}

// NewApp creates and wires all components of taskdeck. basePath is the root
// directory where all data is stored (typically ~/.taskdeck).
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	cfg, cfgErr := core.NewConfigManager(basePath).LoadConfig()
	if cfgErr != nil {
		// A broken config file falls back to defaults, but not silently.
		fmt.Fprintf(os.Stderr, "Warning: ignoring config: %v\n", cfgErr)
		cfg = models.DefaultConfig()
	}
	if cfg.StorageDir == "" {
		cfg.StorageDir = basePath
	}
	app.Config = cfg

	// --- Storage layer ---
	app.Slot = storage.NewSlotManager(cfg.StorageDir)

	// --- Observability ---
	eventLogPath := filepath.Join(cfg.StorageDir, "events.jsonl")
	eventLog, err := observability.NewJSONLEventLog(eventLogPath)
	if err == nil {
		app.EventLog = eventLog
	}
	if cfgErr != nil && app.EventLog != nil {
		_ = app.EventLog.LogEvent("config.load_error", map[string]any{"error": cfgErr.Error()})
	}
	app.AlertEngine = observability.NewAlertEngine(observability.DefaultAlertThresholds())
	if app.EventLog != nil {
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}
	if cfg.NotificationsEnabled && cfg.SlackWebhookURL != "" {
		app.Notifier = observability.NewSlackNotifier(cfg.SlackWebhookURL)
	}

	// --- Core services ---
	var events core.EventLogger
	if app.EventLog != nil {
		events = app.EventLog
	}
	history := core.NewPersistentHistory(cfg.HistoryLimit, storage.NewHistoryManager(cfg.StorageDir))
	if err := history.Load(); err != nil {
		// A corrupt history log costs undo depth, never task data.
		if app.EventLog != nil {
			_ = app.EventLog.LogEvent("history.load_error", map[string]any{"error": err.Error()})
		}
	}
	app.Store = core.NewTaskStore(app.Slot, history, events)
	if err := app.Store.Load(); err != nil {
		return nil, err
	}

	if cfg.NotificationsEnabled {
		var notifier core.Notifier
		if app.Notifier != nil {
			notifier = app.Notifier
		}
		app.Scheduler = core.NewReminderScheduler(app.Store, notifier, events, cfg)
	}

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Cfg = cfg
	cli.Store = app.Store
	cli.Scheduler = app.Scheduler
	cli.EventLog = app.EventLog
	cli.AlertEngine = app.AlertEngine
	cli.MetricsCalc = app.MetricsCalc
	cli.Notifier = app.Notifier

	return app, nil
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the taskdeck home directory. It checks the
// TASKDECK_HOME env var, then falls back to ~/.taskdeck.
func ResolveBasePath() string {
	if home := os.Getenv("TASKDECK_HOME"); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskdeck"
	}
	return filepath.Join(home, ".taskdeck")
}
