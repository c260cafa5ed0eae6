package file

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadEnv loads KEY=value pairs from .env files into the process
// environment. Variables already set are left untouched. With no paths it
// tries ./.env and then ~/.study-assistant/.env. Missing files are skipped.
// It returns the files that were loaded.
func LoadEnv(paths ...string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
		if dir, err := DefaultDir(); err == nil {
			paths = append(paths, filepath.Join(dir, ".env"))
		}
	}

	var loaded []string
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, fmt.Errorf("load %s: %w", p, err)
		}
		loaded = append(loaded, p)
	}
	return loaded, nil
}
