package core

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/taskdeck/taskdeck/pkg/models"
)

// ConfigManager loads the application configuration from a .taskdeckrc file.
type ConfigManager interface {
	LoadConfig() (models.Config, error)
}

// viperConfigManager implements ConfigManager using Viper to read the YAML
// .taskdeckrc in the base path.
type viperConfigManager struct {
	basePath string
}

// NewConfigManager creates a ConfigManager that reads .taskdeckrc from
// basePath. A missing file yields defaults.
func NewConfigManager(basePath string) ConfigManager {
	return &viperConfigManager{basePath: basePath}
}

func (cm *viperConfigManager) LoadConfig() (models.Config, error) {
	cfg := models.DefaultConfig()
	cfg.StorageDir = cm.basePath

	v := viper.New()
	v.SetConfigName(".taskdeckrc")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("storage.dir", cfg.StorageDir)
	v.SetDefault("reminders.poll_interval", cfg.PollInterval)
	v.SetDefault("reminders.window_ahead", cfg.WindowAhead)
	v.SetDefault("reminders.window_behind", cfg.WindowBehind)
	v.SetDefault("notifications.enabled", cfg.NotificationsEnabled)
	v.SetDefault("notifications.slack.webhook_url", cfg.SlackWebhookURL)
	v.SetDefault("defaults.priority", string(cfg.DefaultPriority))
	v.SetDefault("defaults.category", string(cfg.DefaultCategory))
	v.SetDefault("history.limit", cfg.HistoryLimit)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading .taskdeckrc: %w", err)
	}

	cfg.StorageDir = v.GetString("storage.dir")
	if !filepath.IsAbs(cfg.StorageDir) {
		cfg.StorageDir = filepath.Join(cm.basePath, cfg.StorageDir)
	}
	cfg.PollInterval = v.GetDuration("reminders.poll_interval")
	cfg.WindowAhead = v.GetDuration("reminders.window_ahead")
	cfg.WindowBehind = v.GetDuration("reminders.window_behind")
	cfg.NotificationsEnabled = v.GetBool("notifications.enabled")
	cfg.SlackWebhookURL = v.GetString("notifications.slack.webhook_url")
	cfg.HistoryLimit = v.GetInt("history.limit")

	if p := models.Priority(v.GetString("defaults.priority")); p.Valid() {
		cfg.DefaultPriority = p
	}
	if c := models.Category(v.GetString("defaults.category")); c.Valid() {
		cfg.DefaultCategory = c
	}

	if cfg.PollInterval <= 0 {
		return cfg, fmt.Errorf("reading .taskdeckrc: reminders.poll_interval must be positive, got %s", cfg.PollInterval)
	}

	return cfg, nil
}
