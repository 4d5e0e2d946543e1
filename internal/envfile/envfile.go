// Package envfile loads database credentials and other settings from .env
// files. Variables already set in the environment take precedence.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DefaultFiles are loaded by the CLI, most specific first.
var DefaultFiles = []string{".env.local", ".env"}

// Load reads a .env file and sets any variables not already in the
// environment. An empty variable counts as unset. A missing file is not an
// error.
func Load(path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading env file %s: %w", path, err)
	}

	for key, value := range vars {
		if os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("setting %s from %s: %w", key, path, err)
		}
	}
	return nil
}

// LoadAll loads each file in order, so earlier files win.
func LoadAll(paths ...string) error {
	for _, path := range paths {
		if err := Load(path); err != nil {
			return err
		}
	}
	return nil
}
