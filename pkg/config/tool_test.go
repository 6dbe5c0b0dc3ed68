// pkg/config/tool_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test layered tool configuration loading

package config_test

import (
	"os"
	"testing"

	"github.com/arthur-debert/p8prep/pkg/config"
	"github.com/arthur-debert/p8prep/pkg/errors"
	"github.com/arthur-debert/p8prep/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadTool_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.LoadTool("")
	require.NoError(t, err)

	assert.Equal(t, "cadius", cfg.Cadius)
	assert.Equal(t, "build/prodos8emu_run", cfg.Runner)
	assert.Equal(t, "EDASM", cfg.VolumeName)
	assert.Equal(t, "dn-..-wr", cfg.Access)
	assert.False(t, cfg.LossyText)
}

func TestLoadTool_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "custom.toml", `
volume_name = "WORK"
lossy_text = true
`)

	cfg, err := config.LoadTool(path)
	require.NoError(t, err)

	assert.Equal(t, "WORK", cfg.VolumeName)
	assert.True(t, cfg.LossyText)
	// Untouched keys keep defaults
	assert.Equal(t, "cadius", cfg.Cadius)
	assert.Equal(t, "dn-..-wr", cfg.Access)
}

func TestLoadTool_CandidateFileDiscovered(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, ".p8prep.toml", `volume_name = "DISCOVERED"`)
	chdir(t, dir)

	cfg, err := config.LoadTool("")
	require.NoError(t, err)
	assert.Equal(t, "DISCOVERED", cfg.VolumeName)
}

func TestLoadTool_ExplicitMissingFileIsError(t *testing.T) {
	_, err := config.LoadTool(t.TempDir() + "/nope.toml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoadTool_MalformedFileIsError(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "bad.toml", `volume_name = [unclosed`)

	_, err := config.LoadTool(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestDefaultToolTOML(t *testing.T) {
	data, err := config.DefaultToolTOML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "volume_name = 'EDASM'")
	assert.Contains(t, string(data), "access = 'dn-..-wr'")
}
