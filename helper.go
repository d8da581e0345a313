package options

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// flattenMap converts a nested map[string]any to a flat map keyed by
// dot-notation names, so file sections become dotted option names.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		if nestedMap, isMap := value.(map[string]any); isMap {
			for subName, subValue := range flattenMap(nestedMap, name) {
				flat[subName] = subValue
			}
		} else {
			flat[name] = value
		}
	}

	return flat
}

// setNestedValue sets a value in a nested map using a dot-notation name,
// creating intermediate maps as needed. A non-map segment in the way is
// overwritten by a new map.
func setNestedValue(nested map[string]any, name string, value any) {
	segments := strings.Split(name, ".")
	current := nested

	for i := 0; i < len(segments)-1; i++ {
		segment := segments[i]

		next, exists := current[segment]
		if !exists {
			newMap := make(map[string]any)
			current[segment] = newMap
			current = newMap
			continue
		}

		if nextMap, isMap := next.(map[string]any); isMap {
			current = nextMap
		} else {
			newMap := make(map[string]any)
			current[segment] = newMap
			current = newMap
		}
	}

	current[segments[len(segments)-1]] = value
}

// atomicWriteFile writes data to path via a temp file and rename.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
