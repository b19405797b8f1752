package logger

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/esimov/ascii-particles/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "particles-log")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "debug.log")
	log, err := New(config.Log{Level: "warn", File: file})
	require.NoError(t, err)

	log.Infow("hidden", "frame", 1)
	log.Warnw("explosion storm", "frame", 2)
	_ = log.Sync()

	out, err := ioutil.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(out), "explosion storm")
	assert.NotContains(t, string(out), "hidden")
}
