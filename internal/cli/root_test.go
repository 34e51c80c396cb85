package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/mztabm/internal/config"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

func TestLoadConfig_PersistentFlags(t *testing.T) {
	_, dir := sandbox(t, validateCmd)
	t.Cleanup(func() { resetFlags(t, rootCmd) })
	cfgFile := writeFile(t, dir, "conf/custom.yaml", "max_errors: 7\nontology:\n  backend: ols\n")
	envFile := writeFile(t, dir, "local.env", "MZTABM_CONCURRENCY=3\n")
	t.Setenv("MZTABM_CONCURRENCY", "")
	os.Unsetenv("MZTABM_CONCURRENCY")

	require.NoError(t, rootCmd.PersistentFlags().Set("config", cfgFile))
	require.NoError(t, rootCmd.PersistentFlags().Set("env-file", envFile))
	require.NoError(t, rootCmd.PersistentFlags().Set("verbose", "true"))

	cfg, err := loadConfig(validateCmd)

	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxErrors)
	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, config.BackendOLS, cfg.Ontology.Backend)
	assert.True(t, cfg.Verbose)
	assert.True(t, getVerboseFlag(validateCmd))
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, dir := sandbox(t, validateCmd)
	t.Cleanup(func() { resetFlags(t, rootCmd) })
	require.NoError(t, rootCmd.PersistentFlags().Set("config", filepath.Join(dir, "absent.yaml")))

	_, err := loadConfig(validateCmd)

	assert.ErrorIs(t, err, config.ErrConfigNotFound)
	assert.Equal(t, mztab.ExitConfigError, mztab.ExitCodeForError(err))
}
