package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveRoot resolves the corpus root: the -root flag when given,
// otherwise the current working directory.
func ResolveRoot(flagValue string) (string, error) {
	root := flagValue
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		root = cwd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve corpus root: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("stat corpus root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("corpus root is not a directory: %s", abs)
	}

	return abs, nil
}
