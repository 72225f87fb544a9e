package csvsearch

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// validatePath checks that path names an existing regular file.
func validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s: %w", path, err)
		}
		return fmt.Errorf("failed to stat path %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory: %s", path)
	}
	return nil
}

// validatePaths checks every path before any of them is loaded, so a bad
// argument fails startup without partially loading the others.
func validatePaths(paths []string) error {
	for _, path := range paths {
		if err := validatePath(path); err != nil {
			return NewErrorContext("import", path).Error(ErrLoad, err)
		}
	}
	return nil
}
