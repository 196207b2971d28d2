package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	biderrors "bidwriter/internal/errors"
	"bidwriter/internal/logging"
)

// Store persists proposal documents under the upload directory.
type Store struct {
	baseDir string
	logger  logging.Logger
}

// NewStore builds a store rooted at baseDir.
func NewStore(baseDir string, logger logging.Logger) *Store {
	return &Store{baseDir: baseDir, logger: logging.OrNop(logger)}
}

// SaveHTML writes the proposal markup to
// <base>/proposals/<name>_<unix>.html and returns the path.
func (s *Store) SaveHTML(content, projectName string) (string, error) {
	dir := filepath.Join(s.baseDir, "proposals")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", biderrors.Internal(fmt.Errorf("create proposals dir: %w", err))
	}

	name := SanitizeName(projectName)
	path := filepath.Join(dir, fmt.Sprintf("%s_%d.html", name, time.Now().Unix()))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", biderrors.Internal(fmt.Errorf("write proposal: %w", err))
	}
	s.logger.Info("saved proposal %s (%d bytes)", path, len(content))
	return path, nil
}

// SanitizeName makes a project name safe to embed in a filename. Empty names
// fall back to "unnamed_project".
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "unnamed_project"
	}
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", "..", "_", ":", "_",
		"*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_",
	)
	return replacer.Replace(name)
}
