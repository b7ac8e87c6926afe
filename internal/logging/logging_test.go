package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	log, err := New(Config{Level: "info", Format: "json", Writer: &buf})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("results loaded", zap.Int("count", 3))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "results loaded", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, 3.0, entry["count"])
}

func TestNew_DefaultLevelIsWarn(t *testing.T) {
	var buf bytes.Buffer

	log, err := New(Config{Writer: &buf})
	require.NoError(t, err)

	log.Info("quiet")
	assert.Empty(t, buf.String())

	log.Warn("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harstat.log")

	log, err := New(Config{Level: "debug", FilePath: path})
	require.NoError(t, err)

	log.Debug("written to file")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)

	_, err = New(Config{Format: "xml"})
	assert.Error(t, err)
}
