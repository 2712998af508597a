package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TDiblik/as2org/as2org"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LOG_LEVEL", "INPUT_FILE", "OUTPUT_FILE", "DOWNLOAD_DIR", "CHARSET", "JSON_FILE", "SQLITE_FILE", "LEGACY_HEADER"} {
		t.Setenv(envPrefix+key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "WARN", cfg.LogLevel)
	assert.Equal(t, DefaultInputFile, cfg.InputFile)
	assert.Equal(t, DefaultOutputFile, cfg.OutputFile)
	assert.Equal(t, as2org.Header, cfg.Header())
}

func TestLoadShortAndLongFlags(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		args []string
	}{
		{name: "short", args: []string{"-l", "debug", "-i", "in.txt", "-o", "out.txt"}},
		{name: "long", args: []string{"--log-level", "debug", "--input-file", "in.txt", "--output-file", "out.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.args)
			require.NoError(t, err)
			assert.Equal(t, "debug", cfg.LogLevel)
			assert.Equal(t, "in.txt", cfg.InputFile)
			assert.Equal(t, "out.txt", cfg.OutputFile)
		})
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "as2org.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"log_level: info\n"+
			"input_file: from-file.txt\n"+
			"output_file: from-file.out\n"+
			"charset: latin1\n"+
			"legacy_header: true\n"), as2org.FilePermissions))

	t.Setenv("AS2ORG_INPUT_FILE", "from-env.txt")
	t.Setenv("AS2ORG_OUTPUT_FILE", "from-env.out")

	cfg, err := Load([]string{"-c", path, "-o", "from-flag.out"})
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "latin1", cfg.Charset)
	assert.True(t, cfg.LegacyHeader)
	assert.Equal(t, as2org.LegacyHeader, cfg.Header())
	assert.Equal(t, "from-env.txt", cfg.InputFile)
	assert.Equal(t, "from-flag.out", cfg.OutputFile)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"--nope"}},
		{name: "positional argument", args: []string{"extra"}},
		{name: "unknown level", args: []string{"-l", "loud"}},
		{name: "unknown charset", args: []string{"--charset", "ebcdic"}},
		{name: "missing config file", args: []string{"-c", filepath.Join(t.TempDir(), "missing.yaml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args)
			require.Error(t, err)
			assert.ErrorIs(t, err, as2org.ErrConfig)
		})
	}
}

func TestLoadHelp(t *testing.T) {
	clearEnv(t)
	_, err := Load([]string{"--help"})
	assert.ErrorIs(t, err, ErrHelp)
	assert.Contains(t, Usage(), "output-file")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.InputFile = " "
	cfg.OutputFile = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, as2org.ErrConfig)
	assert.Contains(t, err.Error(), "no input file specified")
	assert.Contains(t, err.Error(), "no output file specified")
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("AS2ORG_TEST_BOOL", "true")
	assert.True(t, getEnvBool("AS2ORG_TEST_BOOL", false))
	t.Setenv("AS2ORG_TEST_BOOL", "garbage")
	assert.False(t, getEnvBool("AS2ORG_TEST_BOOL", false))
	assert.True(t, getEnvBool("AS2ORG_TEST_BOOL_UNSET", true))
}
