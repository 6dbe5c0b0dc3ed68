// pkg/system/system_test.go
// TEST TYPE: Unit Test (isolated filesystem)
// DEPENDENCIES: Real temp directory
// PURPOSE: Test disk image validation and system file discovery

package system_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/p8prep/pkg/errors"
	"github.com/arthur-debert/p8prep/pkg/prodosmeta"
	"github.com/arthur-debert/p8prep/pkg/system"
	"github.com/arthur-debert/p8prep/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImagePath(t *testing.T) {
	assert.NoError(t, system.ValidateImagePath("EDASM.2mg"))
	assert.NoError(t, system.ValidateImagePath("DISK.2MG"))

	for _, bad := range []string{"disk.dsk", "disk.po", "disk", "disk.2mgx"} {
		err := system.ValidateImagePath(bad)
		require.Error(t, err, "path %q", bad)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	}
}

func TestValidateSystemFile(t *testing.T) {
	dir := t.TempDir()
	full := testutil.CreateFile(t, dir, "GOOD.SYSTEM", "content")
	empty := testutil.CreateFileBytes(t, dir, "EMPTY.SYSTEM", nil, 0644)

	ok, err := system.ValidateSystemFile(full)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = system.ValidateSystemFile(empty)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = system.ValidateSystemFile(filepath.Join(dir, "MISSING"))
	require.Error(t, err)
}

func TestDiscover_ByExtension(t *testing.T) {
	dir := t.TempDir()
	sys := testutil.CreateFile(t, dir, "SUB/EDASM.SYSTEM", "boot")
	testutil.CreateFile(t, dir, "DATA.TXT", "data")

	found, err := system.Discover(dir, prodosmeta.NewSidecarTagger())
	require.NoError(t, err)
	assert.Equal(t, sys, found)
}

func TestDiscover_EmptySystemFileIgnored(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFileBytes(t, dir, "EMPTY.SYSTEM", nil, 0644)
	sys := testutil.CreateFile(t, dir, "REAL.SYS", "boot")

	found, err := system.Discover(dir, prodosmeta.NewSidecarTagger())
	require.NoError(t, err)
	assert.Equal(t, sys, found)
}

func TestDiscover_ByFileTypeFallback(t *testing.T) {
	dir := t.TempDir()
	boot := testutil.CreateFile(t, dir, "LAUNCHER", "boot")
	testutil.CreateFile(t, dir, "DATA", "data")
	tg := prodosmeta.NewSidecarTagger()
	require.NoError(t, tg.Set(boot, prodosmeta.KeyFileType, "ff"))

	found, err := system.Discover(dir, tg)
	require.NoError(t, err)
	assert.Equal(t, boot, found)
}

func TestDiscover_ExtensionBeatsFileType(t *testing.T) {
	dir := t.TempDir()
	sys := testutil.CreateFile(t, dir, "A.SYSTEM", "boot")
	tagged := testutil.CreateFile(t, dir, "LAUNCHER", "boot")
	tg := prodosmeta.NewSidecarTagger()
	require.NoError(t, tg.Set(tagged, prodosmeta.KeyFileType, "ff"))

	found, err := system.Discover(dir, tg)
	require.NoError(t, err)
	assert.Equal(t, sys, found, "tag fallback only applies when no extension candidates exist")
}

func TestDiscover_NoCandidates(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "DATA.TXT", "data")

	_, err := system.Discover(dir, prodosmeta.NewSidecarTagger())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSystemNotFound))
}

func TestDiscover_Ambiguous(t *testing.T) {
	dir := t.TempDir()
	a := testutil.CreateFile(t, dir, "A.SYSTEM", "boot")
	b := testutil.CreateFile(t, dir, "B.SYSTEM", "boot")

	_, err := system.Discover(dir, prodosmeta.NewSidecarTagger())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSystemAmbiguous))
	assert.Contains(t, err.Error(), a)
	assert.Contains(t, err.Error(), b)
}
