package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadTestConfig walks up from the working directory to the project root,
// loads .env.test, and verifies the variables the tests depend on.
func LoadTestConfig() error {
	projectRoot, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(projectRoot, ".env.test")); err == nil {
			break
		}
		parent := filepath.Dir(projectRoot)
		if parent == projectRoot {
			return fmt.Errorf("could not find .env.test file")
		}
		projectRoot = parent
	}

	os.Chdir(projectRoot)
	if err := godotenv.Load(".env.test"); err != nil {
		return fmt.Errorf("error loading .env.test: %w", err)
	}

	if os.Getenv("JWT_SECRET") == "" {
		return fmt.Errorf("JWT_SECRET not set in .env.test")
	}

	return nil
}
