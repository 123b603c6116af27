package internal

import (
	"github.com/docpipe/docpipe/internal/corpus"
	"github.com/docpipe/docpipe/internal/logging"
)

// SetupLogging initializes the per-run log file under ~/.docpipe/logs.
func SetupLogging(command string) error {
	base, err := corpus.BaseDir()
	if err != nil {
		return err
	}
	_, err = logging.Init(base, command)
	return err
}
