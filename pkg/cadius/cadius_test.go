// pkg/cadius/cadius_test.go
// TEST TYPE: Unit Test (isolated filesystem)
// DEPENDENCIES: Real temp directory
// PURPOSE: Test cadius suffix parsing and metadata conversion passes

package cadius_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/p8prep/pkg/cadius"
	"github.com/arthur-debert/p8prep/pkg/errors"
	"github.com/arthur-debert/p8prep/pkg/prodosmeta"
	"github.com/arthur-debert/p8prep/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuffix(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOK   bool
		wantStem string
		wantFT   byte
		wantAux  uint16
	}{
		{name: "uppercase", input: "EDASM.SYSTEM#FF0000", wantOK: true, wantStem: "EDASM.SYSTEM", wantFT: 0xFF, wantAux: 0x0000},
		{name: "lowercase", input: "prog#062000", wantOK: true, wantStem: "prog", wantFT: 0x06, wantAux: 0x2000},
		{name: "no_suffix", input: "README", wantOK: false},
		{name: "short_hex", input: "A#0620", wantOK: false},
		{name: "bad_hex", input: "A#zz0000", wantOK: false},
		{name: "empty_stem", input: "#040000", wantOK: true, wantStem: "", wantFT: 0x04, wantAux: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := cadius.ParseSuffix(tt.input)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantStem, parsed.Stem)
			assert.Equal(t, tt.wantFT, parsed.FileType)
			assert.Equal(t, tt.wantAux, parsed.AuxType)
		})
	}
}

func TestFormatSuffix(t *testing.T) {
	assert.Equal(t, "#FF0000", cadius.FormatSuffix(0xFF, 0, true))
	assert.Equal(t, "#062000", cadius.FormatSuffix(0x06, 0x2000, true))
	assert.Equal(t, "#ff2000", cadius.FormatSuffix(0xFF, 0x2000, false))
}

func TestConvertToXattrs(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "EDASM.SYSTEM#FF0000", "system")
	testutil.CreateFile(t, root, "SUB/PROG#062000", "prog")
	testutil.CreateFile(t, root, "README", "plain")
	tg := prodosmeta.NewSidecarTagger()

	require.NoError(t, cadius.ConvertToXattrs(root, tg, false))

	// Suffixes stripped, tags set
	sys := filepath.Join(root, "EDASM.SYSTEM")
	require.True(t, testutil.FileExists(t, sys))
	ft, ok, err := tg.Get(sys, prodosmeta.KeyFileType)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ff", ft)

	prog := filepath.Join(root, "SUB", "PROG")
	require.True(t, testutil.FileExists(t, prog))
	aux, ok, err := tg.Get(prog, prodosmeta.KeyAuxType)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2000", aux)

	// Untagged file untouched
	assert.True(t, testutil.FileExists(t, filepath.Join(root, "README")))
}

func TestConvertToXattrs_KeepNames(t *testing.T) {
	root := t.TempDir()
	path := testutil.CreateFile(t, root, "PROG#062000", "prog")
	tg := prodosmeta.NewSidecarTagger()

	require.NoError(t, cadius.ConvertToXattrs(root, tg, true))

	assert.True(t, testutil.FileExists(t, path), "keepNames must not rename")
	ft, ok, err := tg.Get(path, prodosmeta.KeyFileType)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "06", ft)
}

func TestConvertToXattrs_RenameConflict(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "PROG#062000", "suffixed")
	testutil.CreateFile(t, root, "PROG", "already here")

	err := cadius.ConvertToXattrs(root, prodosmeta.NewSidecarTagger(), false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMoveConflict))
	testutil.AssertFileContent(t, filepath.Join(root, "PROG"), []byte("already here"))
}

func TestConvertToSuffixes_RoundTrip(t *testing.T) {
	root := t.TempDir()
	testutil.CreateFile(t, root, "PROG#062000", "prog")
	tg := prodosmeta.NewSidecarTagger()

	require.NoError(t, cadius.ConvertToXattrs(root, tg, false))
	require.NoError(t, cadius.ConvertToSuffixes(root, tg, true, false))

	assert.True(t, testutil.FileExists(t, filepath.Join(root, "PROG#062000")))
}

func TestConvertToSuffixes_SkipsUntagged(t *testing.T) {
	root := t.TempDir()
	path := testutil.CreateFile(t, root, "README", "plain")

	require.NoError(t, cadius.ConvertToSuffixes(root, prodosmeta.NewSidecarTagger(), true, false))
	assert.True(t, testutil.FileExists(t, path))
}

func TestResolve_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	exe := testutil.CreateFileBytes(t, dir, "cadius", []byte("#!/bin/sh\n"), 0755)

	resolved, err := cadius.Resolve(exe)
	require.NoError(t, err)
	assert.Equal(t, exe, resolved)

	plain := testutil.CreateFileBytes(t, dir, "notexec", []byte("x"), 0644)
	_, err = cadius.Resolve(plain)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCadiusNotFound))
}

func TestResolve_RejectsUnsafePath(t *testing.T) {
	_, err := cadius.Resolve("cadius;rm -rf /")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsafePath))
}
