package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/taskdeck/taskdeck/pkg/models"
	"gopkg.in/yaml.v3"
)

// historyFileName holds the undo/redo snapshots under the storage directory.
const historyFileName = "history.yaml"

// ErrCorruptHistory reports that the history file exists but could not be
// parsed. Callers are expected to recover by starting with empty history.
var ErrCorruptHistory = errors.New("history file is corrupt")

// historyFile is the on-disk envelope around the snapshot log.
type historyFile struct {
	Version   string          `yaml:"version"`
	Index     int             `yaml:"index"`
	Snapshots [][]models.Task `yaml:"snapshots"`
}

// HistoryManager loads and saves the undo/redo snapshot log as a whole, so
// undo works across processes and not just within one session.
type HistoryManager interface {
	Load() (snapshots [][]models.Task, index int, err error)
	Save(snapshots [][]models.Task, index int) error
}

type fileHistoryManager struct {
	basePath string
}

// NewHistoryManager creates a HistoryManager backed by a history.yaml file
// in the given base directory.
func NewHistoryManager(basePath string) HistoryManager {
	return &fileHistoryManager{basePath: basePath}
}

func (m *fileHistoryManager) filePath() string {
	return filepath.Join(m.basePath, historyFileName)
}

// Load reads the history file. A missing file yields empty history and no
// error. An unparseable file, or one whose index does not point into its
// snapshots, yields empty history and an error wrapping ErrCorruptHistory
// so the caller can log and continue.
func (m *fileHistoryManager) Load() ([][]models.Task, int, error) {
	data, err := os.ReadFile(m.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, -1, nil
		}
		return nil, -1, fmt.Errorf("loading history: %w", err)
	}

	var hf historyFile
	if err := yaml.Unmarshal(data, &hf); err != nil {
		return nil, -1, fmt.Errorf("loading history: %w: %w", ErrCorruptHistory, err)
	}
	if hf.Index < -1 || hf.Index >= len(hf.Snapshots) {
		return nil, -1, fmt.Errorf("loading history: %w: index %d out of range for %d snapshots",
			ErrCorruptHistory, hf.Index, len(hf.Snapshots))
	}
	return hf.Snapshots, hf.Index, nil
}

// Save serializes the full snapshot log to the history file, creating the
// storage directory if needed.
func (m *fileHistoryManager) Save(snapshots [][]models.Task, index int) error {
	if err := os.MkdirAll(m.basePath, 0o750); err != nil {
		return fmt.Errorf("saving history: creating directory: %w", err)
	}
	data, err := yaml.Marshal(&historyFile{Version: "1", Index: index, Snapshots: snapshots})
	if err != nil {
		return fmt.Errorf("saving history: marshaling YAML: %w", err)
	}
	if err := os.WriteFile(m.filePath(), data, 0o600); err != nil {
		return fmt.Errorf("saving history: writing file: %w", err)
	}
	return nil
}
