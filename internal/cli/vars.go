package cli

import (
	"github.com/taskdeck/taskdeck/internal/core"
	"github.com/taskdeck/taskdeck/internal/observability"
	"github.com/taskdeck/taskdeck/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	// BasePath is the taskdeck home directory.
	BasePath string

	// Cfg is the loaded configuration.
	Cfg models.Config

	// Store owns the task list.
	Store *core.TaskStore

	// Scheduler fires reminder notifications. Nil when notifications are
	// disabled.
	Scheduler *core.ReminderScheduler

	// Observability services.
	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
	Notifier    observability.Notifier
)
