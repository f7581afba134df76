package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/cheercast/internal/config"
	"github.com/nguyentantai21042004/cheercast/internal/metrics"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd("1.0.0")

	assert.Equal(t, "cheercast", cmd.Use)
	assert.Equal(t, "1.0.0", cmd.Version)

	for _, name := range []string{"config", "env-file", "log-level"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing persistent flag %q", name)
	}

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"generate", "preview", "add-bgm", "watch"})
}

func TestGenerateRequiresSource(t *testing.T) {
	cmd := NewRootCmd("dev")
	cmd.SetArgs([]string{"generate", "-o", filepath.Join(t.TempDir(), "out.mp3")})
	cmd.SetOut(new(nopWriter))
	cmd.SetErr(new(nopWriter))

	assert.Error(t, cmd.Execute())
}

func TestSplitKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitKeys(" a, ,b "))
	assert.Nil(t, splitKeys(""))
}

func TestLoadConfigUsesEnvKey(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GEMINI_API_KEY=k1,k2\n"), 0644))
	t.Setenv("GEMINI_API_KEY", "")
	require.NoError(t, os.Unsetenv("GEMINI_API_KEY"))

	cmd := NewRootCmd("dev")
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", filepath.Join(dir, "missing.yaml"),
		"--env-file", envFile,
		"--log-level", "debug",
	}))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2"}, cfg.Gemini.APIKeys)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestBgmSpecOverrides(t *testing.T) {
	cmd := NewAddBgmCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--ducking", "0.2", "--intro", "0"}))

	defaults := config.BGMConfig{Volume: 0.3, Ducking: 0.15, FadeIn: 3, FadeOut: 3, Intro: 3, Outro: 2}
	spec := bgmSpec(cmd, "bgm.mp3", defaults)

	assert.Equal(t, "bgm.mp3", spec.Path)
	assert.Equal(t, 0.3, spec.Volume)
	assert.Equal(t, 0.2, spec.Ducking)
	assert.Equal(t, 0.0, spec.Intro, "explicit zero wins over config")
	assert.Equal(t, 2.0, spec.Outro)
}

func TestStatusRouter(t *testing.T) {
	router := newStatusRouter(metrics.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
