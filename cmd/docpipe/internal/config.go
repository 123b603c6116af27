package internal

import (
	"fmt"
	"os"

	"github.com/docpipe/docpipe/internal/config"
)

// LoadConfig loads the config from configPath, or from the default
// location when empty. A missing config file is not fatal: when
// createTemplate is set a commented default template is written for
// the next run, and built-in defaults are used either way.
func LoadConfig(configPath string, createTemplate bool) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}

	if err != nil {
		if notFound, ok := err.(*config.ConfigNotFoundError); ok {
			if createTemplate {
				created, createErr := config.WriteDefaultTemplate(notFound.RequestedPath)
				if createErr != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to create default config at %s: %v\n",
						notFound.RequestedPath, createErr)
				} else if created {
					fmt.Fprintf(os.Stderr, "Created default config at %s\n", notFound.RequestedPath)
				}
			}
			return config.Default(), nil
		}
		return nil, err
	}

	return cfg, nil
}
