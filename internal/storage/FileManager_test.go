package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"informant/internal/models"
	"informant/internal/testutil"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDay(day int, keystrokes int64) models.Day {
	start := time.Date(2022, time.November, day, 8, 0, 0, 0, time.UTC)
	return models.Day{
		Range: models.DateRange{Start: start, End: start.Add(time.Hour)},
		Stats: models.InputStats{TotalKeystrokes: keystrokes},
	}
}

func TestFileManager_SaveToFile_AtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "informant.dat")
	svc := testutil.NewMockHistoryService(testDay(8, 1))
	fm := NewFileManager(&testutil.MockCompressor{}, svc, &testutil.MockLogger{})

	require.NoError(t, fm.SaveToFile(path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileManager_SaveToFile_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "informant.dat")
	svc := testutil.NewMockHistoryService(testDay(9, 2), testDay(8, 1))
	fm := NewFileManager(&testutil.MockCompressor{}, svc, &testutil.MockLogger{})
	require.NoError(t, fm.SaveToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw struct {
		Version int `json:"version"`
		Days    []struct {
			Stats map[string]float64 `json:"stats"`
		} `json:"days"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, 1, raw.Version)
	require.Len(t, raw.Days, 2)
	assert.Equal(t, float64(1), raw.Days[0].Stats["total_keystrokes"])
}

func TestFileManager_LoadFromFile_FileNotExist(t *testing.T) {
	svc := testutil.NewMockHistoryService()
	fm := NewFileManager(&testutil.MockCompressor{}, svc, &testutil.MockLogger{})

	assert.NoError(t, fm.LoadFromFile("/nonexistent/path/informant.dat"))
	assert.Empty(t, svc.PutSnapshots)
}

func TestFileManager_LoadFromFile_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.dat")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0644))

	fm := NewFileManager(&testutil.MockCompressor{}, testutil.NewMockHistoryService(), &testutil.MockLogger{})
	assert.Error(t, fm.LoadFromFile(path))
}

func TestFileManager_LoadFromFile_ServiceRejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v9.dat")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":9,"days":[]}`), 0644))

	svc := testutil.NewMockHistoryService()
	svc.PutErr = errors.New("unsupported snapshot version 9")
	fm := NewFileManager(&testutil.MockCompressor{}, svc, &testutil.MockLogger{})

	err := fm.LoadFromFile(path)
	assert.ErrorContains(t, err, "unsupported snapshot version 9")
}

func TestFileManager_CompressError(t *testing.T) {
	comp := &testutil.MockCompressor{
		CompressFn: func(b []byte) ([]byte, error) {
			return nil, errors.New("compress failed")
		},
	}
	fm := NewFileManager(comp, testutil.NewMockHistoryService(), &testutil.MockLogger{})

	err := fm.SaveToFile(filepath.Join(t.TempDir(), "err.dat"))
	assert.ErrorContains(t, err, "compress failed")
}

func TestFileManager_DecompressError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dec.dat")
	require.NoError(t, os.WriteFile(path, []byte("some data"), 0644))

	comp := &testutil.MockCompressor{
		DecompressFn: func(b []byte) ([]byte, error) {
			return nil, errors.New("decompress failed")
		},
	}
	fm := NewFileManager(comp, testutil.NewMockHistoryService(), &testutil.MockLogger{})

	err := fm.LoadFromFile(path)
	assert.ErrorContains(t, err, "decompress failed")
}

func TestFileManager_RoundtripWithZstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.dat")
	comp, err := NewZstdCompressor()
	require.NoError(t, err)

	src := testutil.NewMockHistoryService(testDay(8, 1), testDay(10, 3))
	require.NoError(t, NewFileManager(comp, src, &testutil.MockLogger{}).SaveToFile(path))

	dst := testutil.NewMockHistoryService()
	fm := NewFileManager(comp, dst, &testutil.MockLogger{})
	require.NoError(t, fm.LoadFromFile(path))
	fm.Close()

	require.Len(t, dst.PutSnapshots, 1)
	restored, err := dst.PutSnapshots[0].Store()
	require.NoError(t, err)
	assert.Equal(t, 2, restored.Len())
	day, ok := restored.Get(models.Date{Year: 2022, Month: time.November, Day: 10})
	require.True(t, ok)
	assert.Equal(t, int64(3), day.Stats.TotalKeystrokes)
}
