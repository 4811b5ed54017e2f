package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loadDotEnv loads .env, plus the file named by CALCULATOR_ENV_FILE when set.
// Missing files are skipped and existing process variables are not overridden.
func loadDotEnv() error {
	files := []string{".env"}
	if extra := os.Getenv("CALCULATOR_ENV_FILE"); extra != "" {
		files = append(files, extra)
	}

	for _, f := range files {
		err := godotenv.Load(f)
		if err == nil || errors.Is(err, os.ErrNotExist) {
			continue
		}
		return fmt.Errorf("load %s: %w", f, err)
	}

	return nil
}
