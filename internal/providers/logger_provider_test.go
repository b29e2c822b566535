package providers

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"informant/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogTypeByRequestType_POST(t *testing.T) {
	assert.Equal(t, TypeEnum(TypePost), GetLogTypeByRequestType("POST"))
}

func TestGetLogTypeByRequestType_GET(t *testing.T) {
	assert.Equal(t, TypeEnum(TypeGet), GetLogTypeByRequestType("GET"))
}

func TestGetLogTypeByRequestType_Other(t *testing.T) {
	assert.Equal(t, TypeEnum(TypeGet), GetLogTypeByRequestType("PUT"))
	assert.Equal(t, TypeEnum(TypeGet), GetLogTypeByRequestType("DELETE"))
}

func TestNewLogProvider_CreatesLogFiles(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
		Workrave: structures.WorkraveConfig{
			ReloadInterval: 10 * time.Second,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)

	logger.Infof(TypeApp, "test message")
	logger.Debugf(TypeGet, "get message")
	logger.Warnf(TypeLoad, "line %d: unrecognized %q", 3, "G 1")
	logger.Close()

	for _, name := range []string{"app.log", "get.log", "post.log", "load.log"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "load.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "unrecognized")
	assert.Contains(t, string(data), `"type":"load"`)

	// below the configured level
	data, err = os.ReadFile(filepath.Join(dir, "get.log"))
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/nonexistent/directory/path",
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "verbose",
			Mode:  0644,
			Dir:   t.TempDir(),
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewConsoleLogger_FallsBackToInfo(t *testing.T) {
	logger := NewConsoleLogger("nonsense")
	require.NotNil(t, logger)
	logger.Infof(TypeLoad, "loaded %d days", 3)
	logger.Close()
}

func TestNewWriterLogger_TagsType(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, "warn")

	logger.Infof(TypeLoad, "hidden")
	logger.Warnf(TypeLoad, "line %d skipped", 4)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"type":"load"`)
	assert.Contains(t, out, "line 4 skipped")
}
