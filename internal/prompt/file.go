package prompt

import (
	"fmt"
	"os"
)

// ReadFile loads a bundled prompt file in full. Prompt files are a
// few KB at most, so no streaming.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return "", fmt.Errorf("read prompt file %s: %w", path, err)
	}
	return string(data), nil
}
