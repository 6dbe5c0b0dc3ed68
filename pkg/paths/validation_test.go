// pkg/paths/validation_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test shell-safety checks and pattern normalization

package paths_test

import (
	"testing"

	"github.com/arthur-debert/p8prep/pkg/errors"
	"github.com/arthur-debert/p8prep/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSafePath(t *testing.T) {
	for _, ok := range []string{
		"work/volumes/EDASM",
		"/usr/local/bin/cadius",
		"disk image.2mg",
		"a-b_c.1",
	} {
		assert.NoError(t, paths.ValidateSafePath(ok, "path"), "path %q", ok)
	}

	for _, bad := range []string{
		"a;b", "a|b", "a&b", "a$b", "a`b", "a\nb", "a\rb",
		"a>b", "a<b", "a(b", "a)b", "a{b", "a}b", "",
	} {
		err := paths.ValidateSafePath(bad, "--disk-image")
		require.Error(t, err, "path %q", bad)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnsafePath))
	}
}

func TestValidateSafePath_NamesParameter(t *testing.T) {
	err := paths.ValidateSafePath("evil;rm", "--cadius")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--cadius")
}

func TestNormalizePattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
		wantErr errors.ErrorCode
	}{
		{name: "plain", pattern: "*.TXT", want: "*.TXT"},
		{name: "leading_slash_stripped", pattern: "/SUBDIR/*.TXT", want: "SUBDIR/*.TXT"},
		{name: "single_slash_only", pattern: "//A.TXT", wantErr: errors.ErrInvalidPattern},
		{name: "dotdot_rejected", pattern: "../A.TXT", wantErr: errors.ErrInvalidPattern},
		{name: "nested_dotdot_rejected", pattern: "SUB/../A.TXT", wantErr: errors.ErrInvalidPattern},
		{name: "empty_rejected", pattern: "", wantErr: errors.ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := paths.NormalizePattern(tt.pattern)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
