package cleaner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake_cleaner.sh")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
	return path
}

func TestCleanerSuccess(t *testing.T) {
	script := writeScript(t, "#!/bin/sh\ncp \"$1\" \"$2\"\n")
	c := &Cleaner{interpreter: "sh", script: script}

	dir := t.TempDir()
	input := filepath.Join(dir, "raw.csv")
	output := filepath.Join(dir, "raw.csv_cleaned.csv")
	require.NoError(t, os.WriteFile(input, []byte("header\nrow\n"), 0o644))

	require.NoError(t, c.Clean(context.Background(), input, output))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "header\nrow\n", string(data))
}

func TestCleanerNonZeroExit(t *testing.T) {
	script := writeScript(t, "#!/bin/sh\necho 'boom' >&2\nexit 1\n")
	c := &Cleaner{interpreter: "sh", script: script}

	dir := t.TempDir()
	err := c.Clean(context.Background(), filepath.Join(dir, "in"), filepath.Join(dir, "out"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
