// Package storage persists the canonical task list to a single YAML slot
// on disk. The whole list is written on every save; there is no incremental
// or partial persistence.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/taskdeck/taskdeck/pkg/models"
	"gopkg.in/yaml.v3"
)

// slotFileName is the single persistence slot under the storage directory.
const slotFileName = "tasks.yaml"

// ErrCorruptSlot reports that the slot file exists but could not be parsed.
// Callers are expected to recover by starting from an empty list.
var ErrCorruptSlot = errors.New("task slot is corrupt")

// slotFile is the on-disk envelope around the task list.
type slotFile struct {
	Version string        `yaml:"version"`
	Tasks   []models.Task `yaml:"tasks"`
}

// SlotManager loads and saves the canonical task list as a whole.
type SlotManager interface {
	Load() ([]models.Task, error)
	Save(tasks []models.Task) error
}

type fileSlotManager struct {
	basePath string
}

// NewSlotManager creates a SlotManager backed by a tasks.yaml file in the
// given base directory.
func NewSlotManager(basePath string) SlotManager {
	return &fileSlotManager{basePath: basePath}
}

func (m *fileSlotManager) filePath() string {
	return filepath.Join(m.basePath, slotFileName)
}

// Load reads the slot file and returns the task list. A missing file yields
// an empty list and no error. An unparseable file yields an empty list and
// an error wrapping ErrCorruptSlot so the caller can log and continue.
func (m *fileSlotManager) Load() ([]models.Task, error) {
	data, err := os.ReadFile(m.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	var sf slotFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("loading tasks: %w: %w", ErrCorruptSlot, err)
	}
	return sf.Tasks, nil
}

// Save serializes the full task list to the slot file, creating the storage
// directory if needed.
func (m *fileSlotManager) Save(tasks []models.Task) error {
	if err := os.MkdirAll(m.basePath, 0o750); err != nil {
		return fmt.Errorf("saving tasks: creating directory: %w", err)
	}
	data, err := yaml.Marshal(&slotFile{Version: "1", Tasks: tasks})
	if err != nil {
		return fmt.Errorf("saving tasks: marshaling YAML: %w", err)
	}
	if err := os.WriteFile(m.filePath(), data, 0o600); err != nil {
		return fmt.Errorf("saving tasks: writing file: %w", err)
	}
	return nil
}
