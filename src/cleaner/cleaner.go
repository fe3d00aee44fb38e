package cleaner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	logger "github.com/sirupsen/logrus"
)

// Cleaner invokes the external cleaning script that strips broker metadata
// from a raw export and reduces it to the nine-column CSV the normalizer
// expects. The script is an opaque collaborator: it reads inputPath, writes
// the simplified CSV to outputPath and exits zero on success.
type Cleaner struct {
	interpreter string
	script      string
}

// New creates a cleaner from the package configuration.
func New() *Cleaner {
	config := GetConfig()
	return &Cleaner{
		interpreter: config.Interpreter,
		script:      config.Script,
	}
}

// Clean runs the cleaning step for one uploaded file. Any non-zero exit is
// pipeline-fatal for the upload; stderr is folded into the returned error.
func (c *Cleaner) Clean(ctx context.Context, inputPath, outputPath string) error {
	logger.WithFields(map[string]interface{}{
		"component": "Cleaner",
		"input":     inputPath,
		"output":    outputPath,
	}).Debug("Running CSV cleaning step")

	cmd := exec.CommandContext(ctx, c.interpreter, c.script, inputPath, outputPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		logger.WithFields(map[string]interface{}{
			"component": "Cleaner",
			"stderr":    stderr.String(),
		}).WithError(err).Error("CSV cleaning step failed")

		return fmt.Errorf("csv cleaner failed: %w: %s", err, stderr.String())
	}

	return nil
}
