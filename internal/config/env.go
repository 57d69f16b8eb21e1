package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	ferrors "git.home.luguber.info/inful/mublog/internal/foundation/errors"
)

// loadEnvFiles loads .env and .env.local from the config file's directory.
// Existing process environment variables are never overwritten and missing
// files are ignored; a file that exists but does not parse is an error.
func loadEnvFiles(configPath string) error {
	dir := filepath.Dir(configPath)
	for _, name := range []string{".env", ".env.local"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryConfig, "failed to load env file").
				WithContext("path", path).
				Build()
		}
	}
	return nil
}
