package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aalvaropc/meshviz/internal/domain"
)

// FileName is the configuration file searched for by Finder.
const FileName = "meshviz.yaml"

// Finder locates meshviz.yaml by searching upward from a directory.
type Finder struct {
	ConfigFile string // defaults to "meshviz.yaml"
}

func NewFinder() *Finder {
	return &Finder{ConfigFile: FileName}
}

// FindFile returns the path of the nearest config file at or above startDir.
func (f *Finder) FindFile(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "config.findfile",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "config.findfile",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	// If user passes a file path, use its directory.
	info, statErr := os.Stat(abs)
	if statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	cur := filepath.Clean(abs)
	for {
		cfgPath := filepath.Join(cur, f.ConfigFile)
		if _, err := os.Stat(cfgPath); err == nil {
			return cfgPath, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached filesystem root.
			return "", &domain.OpError{
				Op:   "config.findfile",
				Kind: domain.KindNotFound,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}
