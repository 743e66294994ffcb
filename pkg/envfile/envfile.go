package envfile

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// ErrNotFound reports a declared env file path that does not exist on disk.
var ErrNotFound = errors.New("file not found")

// Read parses the env file at path into a name to value map without touching
// the process environment.
func Read(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, classify(path, err)
	}
	return values, nil
}

// Load reads the env file at path into the process environment. Variables
// that are already set keep their current value.
func Load(path string) error {
	if err := godotenv.Load(path); err != nil {
		return classify(path, err)
	}
	return nil
}

// Overload reads the env file at path into the process environment,
// overriding variables that are already set.
func Overload(path string) error {
	if err := godotenv.Overload(path); err != nil {
		return classify(path, err)
	}
	return nil
}

// Write renders values in KEY="VALUE" form to path, replacing any existing
// file.
func Write(values map[string]string, path string) error {
	if err := godotenv.Write(values, path); err != nil {
		return fmt.Errorf("failed to write env file %s: %w", path, err)
	}
	return nil
}

// classify maps missing-file failures onto ErrNotFound so callers can branch
// with errors.Is.
func classify(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w at %s", ErrNotFound, path)
	}
	return fmt.Errorf("failed to read env file %s: %w", path, err)
}
