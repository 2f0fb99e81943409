// Package appdir locates the per-user directory holding the log database and
// saved transcripts.
package appdir

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// EnvOverride names an environment variable that replaces the default
// location.
const EnvOverride = "DES_HOME"

var (
	once        sync.Once
	appDirCache string
)

func AppDir() string {
	once.Do(func() {
		dir := os.Getenv(EnvOverride)
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				log.Fatalf("%v", err)
			}
			dir = filepath.Join(home, ".des-go")
		}
		if err := ensureDirectory(dir); err != nil {
			log.Fatalf("%v", err)
		}
		appDirCache = dir
	})
	return appDirCache
}

// Path joins name onto AppDir unless it is already absolute.
func Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(AppDir(), name)
}

func ensureDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create app directory %s: %w", dir, err)
	}
	return nil
}
