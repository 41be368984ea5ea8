package configparser

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	HTTP struct {
		Port    string        `envconfig:"PORT" default:"8080"`
		Timeout time.Duration `envconfig:"TIMEOUT" default:"5s"`
	} `envconfig:"HTTP"`
	Session struct {
		Secret   string `envconfig:"SECRET" default:"dev"`
		Capacity int    `envconfig:"CAPACITY" default:"10"`
	} `envconfig:"SESSION"`
	Tags []string `envconfig:"TAGS"`
}

func writeYaml(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAndParseYaml_FlattensNestedKeys(t *testing.T) {
	// registered with t.Setenv so the values are restored after the test
	t.Setenv("HTTP_PORT", "")
	t.Setenv("SESSION_CAPACITY", "")
	t.Setenv("TAGS", "")

	path := writeYaml(t, `
http:
  port: 9090
session:
  capacity: 3
tags:
  - a
  - b
`)

	var cfg testConfig
	require.NoError(t, LoadAndParseYaml(path, &cfg))

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 3, cfg.Session.Capacity)
	assert.Equal(t, "dev", cfg.Session.Secret)
	assert.Equal(t, []string{"a", "b"}, cfg.Tags)
}

func TestLoadYamlFile_DoesNotOverrideEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "7000")

	path := writeYaml(t, "http:\n  port: 9090\n")
	require.NoError(t, LoadYamlFile(path))

	assert.Equal(t, "7000", os.Getenv("HTTP_PORT"))
}

func TestLoadYamlFile_ExpandsDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("RIDE_SECRET_SOURCE", "")

	path := writeYaml(t, "session:\n  secret: ${RIDE_SECRET_SOURCE:-fallback}\n")
	require.NoError(t, LoadYamlFile(path))
	assert.Equal(t, "fallback", os.Getenv("SESSION_SECRET"))
}

func TestLoadAndParseYaml_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	require.NoError(t, os.Unsetenv("HTTP_PORT"))

	var cfg testConfig
	require.NoError(t, LoadAndParseYaml(filepath.Join(t.TempDir(), "absent.yaml"), &cfg))
	assert.Equal(t, "8080", cfg.HTTP.Port)
}

func TestLoadYamlFile_EmptyPath(t *testing.T) {
	assert.ErrorIs(t, LoadYamlFile(""), ErrNoFilePath)
}
